package inline

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/reportdoc/internal/errors"
	"git.home.luguber.info/inful/reportdoc/internal/imaging"

	// Decoders for sibling images referenced from Markdown. PNG, JPEG and
	// GIF come from the stdlib; BMP and WebP from golang.org/x/image.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Result summarizes one processed Markdown file.
type Result struct {
	Path    string
	Inlined int      // image references replaced with data URIs
	Removed []string // consumed sibling files deleted after rewriting
}

// File rewrites one Markdown file in place, embedding every locally
// referenced image as a data URI in the requested encoding and deleting the
// consumed sibling files. Files without local image references are left
// untouched.
func File(path string, enc imaging.Encoding) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Filesystem(err, "read markdown file").WithContext("path", path)
	}

	dir := filepath.Dir(path)
	res := &Result{Path: path}
	var edits []edit
	consumed := map[string]bool{}

	for _, ref := range imageRefs(src) {
		if !localRef(ref) {
			continue
		}
		asset := filepath.Join(dir, filepath.FromSlash(ref))
		uri, err := encodeAsset(asset, enc)
		if err != nil {
			// A reference to something that is not a decodable local
			// image is prose, not an asset. Skip it.
			continue
		}
		refEdits := findOccurrences(src, []byte(ref), []byte(uri))
		refEdits = dropOverlapping(edits, refEdits)
		if len(refEdits) == 0 {
			continue
		}
		edits = append(edits, refEdits...)
		res.Inlined += len(refEdits)
		consumed[asset] = true
	}

	if len(edits) == 0 {
		return res, nil
	}

	out, err := applyEdits(src, edits)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return nil, errors.Filesystem(err, "rewrite markdown file").WithContext("path", path)
	}
	for asset := range consumed {
		if err := os.Remove(asset); err == nil {
			res.Removed = append(res.Removed, asset)
		}
	}
	return res, nil
}

// Dir processes every .md file directly inside dir.
func Dir(dir string, enc imaging.Encoding) ([]*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Filesystem(err, "read directory").WithContext("path", dir)
	}
	var results []*Result
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		res, err := File(filepath.Join(dir, e.Name()), enc)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// imageRefs extracts image destinations from Markdown source: Markdown
// image links via the Goldmark AST, plus raw <img>/<image> tags via the
// HTML tokenizer (generated documents mix both forms).
func imageRefs(src []byte) []string {
	seen := map[string]bool{}
	var refs []string
	add := func(ref string) {
		if ref != "" && !seen[ref] {
			seen[ref] = true
			refs = append(refs, ref)
		}
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if img, ok := n.(*gmast.Image); ok {
			add(string(img.Destination))
		}
		return gmast.WalkContinue, nil
	})

	tok := html.NewTokenizer(bytes.NewReader(src))
	for {
		tt := tok.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		t := tok.Token()
		if t.Data != "img" && t.Data != "image" {
			continue
		}
		for _, attr := range t.Attr {
			if attr.Key == "src" {
				add(attr.Val)
			}
		}
	}
	return refs
}

// localRef reports whether a destination is a relative sibling path rather
// than a URL, a data URI, or an absolute path.
func localRef(ref string) bool {
	if strings.HasPrefix(ref, "data:") || strings.Contains(ref, "://") {
		return false
	}
	return filepath.IsLocal(filepath.FromSlash(ref))
}

// encodeAsset decodes an image file and re-encodes it as a data URI.
func encodeAsset(path string, enc imaging.Encoding) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Filesystem(err, "open image").WithContext("path", path)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryEncoding, "decode image").
			WithContext("path", path)
	}
	data, err := imaging.Encode(imaging.FromImage(img), enc)
	if err != nil {
		return "", err
	}
	return imaging.DataURI(enc.MIME(), data), nil
}

// dropOverlapping filters candidate edits that intersect an already
// accepted edit (one reference being a substring of another).
func dropOverlapping(accepted, candidates []edit) []edit {
	var out []edit
	for _, c := range candidates {
		clear := true
		for _, a := range accepted {
			if c.Start < a.End && a.Start < c.End {
				clear = false
				break
			}
		}
		if clear {
			out = append(out, c)
		}
	}
	return out
}

// findOccurrences produces one edit per occurrence of old in src.
func findOccurrences(src, old, new []byte) []edit {
	var edits []edit
	for off := 0; ; {
		i := bytes.Index(src[off:], old)
		if i < 0 {
			break
		}
		start := off + i
		edits = append(edits, edit{Start: start, End: start + len(old), Replacement: new})
		off = start + len(old)
	}
	return edits
}
