// Package picker is the file-selection control: it holds what the user picked
// until the next selection replaces it.
package picker

import (
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/moyoez/imgup/tool"
	"github.com/moyoez/imgup/types"
)

// FileInput is read by the upload handler to get the current selection.
type FileInput interface {
	Files() []types.SelectedFile
}

// Selection is an ordered, replaceable set of picked files.
type Selection struct {
	mode  types.Mode
	mu    sync.RWMutex
	files []types.SelectedFile
}

func New(mode types.Mode) *Selection {
	if mode == "" {
		mode = types.ModeSingle
	}
	return &Selection{mode: mode}
}

// Files returns a copy of the current selection in selection order.
func (s *Selection) Files() []types.SelectedFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.files)
}

func (s *Selection) Mode() types.Mode {
	return s.mode
}

// Select replaces the selection with the given paths. Glob patterns expand in
// lexical order. In single mode only the first file is kept. On error the
// previous selection is left untouched.
func (s *Selection) Select(paths ...string) error {
	resolved, err := expand(paths)
	if err != nil {
		return err
	}
	if s.mode == types.ModeSingle && len(resolved) > 1 {
		tool.DefaultLogger.Warnf("Single file mode: keeping %s, ignoring %d more", resolved[0], len(resolved)-1)
		resolved = resolved[:1]
	}

	files := make([]types.SelectedFile, 0, len(resolved))
	for _, p := range resolved {
		f, err := tool.ReadSelectedFile(p)
		if err != nil {
			return fmt.Errorf("cannot select %s: %w", p, err)
		}
		tool.DefaultLogger.Debugf("Selected %s (%s, %d bytes)", f.Name, f.ContentType, f.Size())
		files = append(files, f)
	}

	s.mu.Lock()
	s.files = files
	s.mu.Unlock()
	return nil
}

// SetFiles replaces the selection with files that are already in memory.
func (s *Selection) SetFiles(files ...types.SelectedFile) {
	if s.mode == types.ModeSingle && len(files) > 1 {
		files = files[:1]
	}
	s.mu.Lock()
	s.files = slices.Clone(files)
	s.mu.Unlock()
}

func (s *Selection) Clear() {
	s.mu.Lock()
	s.files = nil
	s.mu.Unlock()
}

func expand(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		if p == "" {
			continue
		}
		if !hasMeta(p) {
			out = append(out, p)
			continue
		}
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %v", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", p)
		}
		slices.Sort(matches)
		out = append(out, matches...)
	}
	return out, nil
}

func hasMeta(p string) bool {
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '*', '?', '[':
			return true
		}
	}
	return false
}
