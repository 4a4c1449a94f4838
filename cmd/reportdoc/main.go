package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/reportdoc/internal/config"
	"git.home.luguber.info/inful/reportdoc/internal/imaging"
	"git.home.luguber.info/inful/reportdoc/internal/inline"
)

var CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Demo struct {
		Out    string `short:"o" help:"Output path; extension is derived per format" default:"./report.*"`
		Config string `short:"c" help:"Document profile file (YAML)"`
		Format string `short:"f" help:"Override the profile's output formats" default:"all" enum:"md,html,all"`
	} `cmd:"" help:"Write a showcase document exercising every element type"`

	Init struct {
		Config string `short:"c" help:"Profile file path" default:"report.yaml"`
		Force  bool   `help:"Overwrite an existing profile file"`
	} `cmd:"" help:"Initialize an example document profile"`

	Inline struct {
		Path     string        `arg:"" help:"Markdown file or directory to process"`
		Encoding string        `short:"e" help:"Re-encoding for embedded images (png or jpg)" default:"jpg" enum:"png,jpg"`
		Watch    bool          `short:"w" help:"Keep watching the directory and re-process on change"`
		Debounce time.Duration `help:"Debounce window for watch mode" default:"300ms"`
	} `cmd:"" help:"Embed sibling images of Markdown files as inline data URIs"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	switch ctx.Command() {
	case "demo":
		profile, err := loadProfile(CLI.Demo.Config)
		if err != nil {
			slog.Error("Failed to load profile", "error", err)
			os.Exit(1)
		}
		if CLI.Demo.Format != "all" {
			profile.Formats = []string{CLI.Demo.Format}
		}
		if err := runDemo(profile, CLI.Demo.Out); err != nil {
			slog.Error("Demo failed", "error", err)
			os.Exit(1)
		}
	case "init":
		if err := config.Init(CLI.Init.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Profile written", "path", CLI.Init.Config)
	case "inline <path>":
		if err := runInline(); err != nil {
			slog.Error("Inline failed", "error", err)
			os.Exit(1)
		}
	}
}

func loadProfile(path string) (*config.Profile, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func runInline() error {
	enc := imaging.Encoding(CLI.Inline.Encoding)
	runID := uuid.NewString()
	slog.Info("Starting inline run", "run_id", runID, "path", CLI.Inline.Path)

	info, err := os.Stat(CLI.Inline.Path)
	if err != nil {
		return err
	}

	if CLI.Inline.Watch {
		if !info.IsDir() {
			slog.Warn("Watch mode expects a directory", "path", CLI.Inline.Path)
		}
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return inline.Watch(ctx, CLI.Inline.Path, enc, CLI.Inline.Debounce)
	}

	if info.IsDir() {
		results, err := inline.Dir(CLI.Inline.Path, enc)
		for _, res := range results {
			logResult(res)
		}
		return err
	}
	res, err := inline.File(CLI.Inline.Path, enc)
	if err != nil {
		return err
	}
	logResult(res)
	return nil
}

func logResult(res *inline.Result) {
	slog.Info("Processed markdown file",
		"path", res.Path,
		"inlined", res.Inlined,
		"removed", len(res.Removed))
}
