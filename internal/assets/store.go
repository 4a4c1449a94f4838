// Package assets provides sibling-asset storage for documents: binary files
// (images, video) written next to the document file because the target
// backend cannot embed them inline.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/reportdoc/internal/errors"
)

// Store writes externalized binary assets for one document.
// Names are deterministic: <document-stem>_<counter>.<ext>, counter starting
// at 0 and shared across asset kinds.
type Store interface {
	// Put writes one asset and returns the generated filename
	// (relative to the document's directory).
	Put(data []byte, ext string) (name string, err error)

	// Count returns the number of assets written so far.
	Count() int
}

// FSStore writes assets to the document's directory.
type FSStore struct {
	dir     string
	stem    string
	counter int
}

// NewFSStore creates an asset store for the document at docPath.
// Assets land in the document's directory, named from its stem.
func NewFSStore(docPath string) *FSStore {
	base := filepath.Base(docPath)
	return &FSStore{
		dir:  filepath.Dir(docPath),
		stem: strings.TrimSuffix(base, filepath.Ext(base)),
	}
}

// Put writes one asset file. The counter only advances on a successful
// write, so a failed write leaves prior assets and numbering intact.
func (s *FSStore) Put(data []byte, ext string) (string, error) {
	name := fmt.Sprintf("%s_%d.%s", s.stem, s.counter, ext)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0644); err != nil {
		return "", errors.Filesystem(err, "write sibling asset").
			WithContext("asset", name)
	}
	s.counter++
	return name, nil
}

// Count returns the number of assets written so far.
func (s *FSStore) Count() int { return s.counter }

// MockStore is an in-memory Store for testing.
type MockStore struct {
	stem    string
	counter int
	Objects map[string][]byte
	Puts    int

	// FailWith, when set, is returned by every Put.
	FailWith error
}

// NewMockStore creates a new in-memory asset store.
func NewMockStore(stem string) *MockStore {
	return &MockStore{stem: stem, Objects: make(map[string][]byte)}
}

// Put records the asset in memory.
func (m *MockStore) Put(data []byte, ext string) (string, error) {
	m.Puts++
	if m.FailWith != nil {
		return "", m.FailWith
	}
	name := fmt.Sprintf("%s_%d.%s", m.stem, m.counter, ext)
	m.Objects[name] = append([]byte(nil), data...)
	m.counter++
	return name, nil
}

// Count returns the number of assets stored so far.
func (m *MockStore) Count() int { return m.counter }
