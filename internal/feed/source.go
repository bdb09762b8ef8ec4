// Package feed supplies the items a scroller windows over: markdown
// documents from a notes directory or generated on demand, rendered into
// terminal cells with Glamour.
package feed

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/treykane/vscroll/internal/logging"
	"github.com/treykane/vscroll/internal/scroller"
)

var feedLog = logging.New("feed")

// ErrEmptySource is returned when a directory holds no markdown files.
var ErrEmptySource = errors.New("no markdown files found")

// Source yields the markdown for an item index.
type Source interface {
	Markdown(index int) (string, error)
	// Label is a short plain-text title for the item.
	Label(index int) string
	// Kind groups items that render with the same structure. Cells are
	// reused in place only between items of the same kind.
	Kind(index int) string
	// Bounds returns the valid index range, or nil when every integer is an
	// item.
	Bounds() *scroller.Bounds
}

// DirSource serves the markdown files under a directory, one item per file,
// in tree order.
type DirSource struct {
	root  string
	paths []string
}

// NewDirSource walks root and indexes its markdown files. Each directory
// level lists folders first, then files, case-insensitively.
func NewDirSource(root string) (*DirSource, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("open notes dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open notes dir: %s is not a directory", root)
	}
	src := &DirSource{root: root}
	walkNotes(root, &src.paths)
	if len(src.paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrEmptySource, root)
	}
	return src, nil
}

func walkNotes(dir string, paths *[]string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		feedLog.Warn("read notes directory", "path", dir, "error", err)
		return
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			walkNotes(path, paths)
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".md") {
			*paths = append(*paths, path)
		}
	}
}

// Len returns the number of files.
func (s *DirSource) Len() int { return len(s.paths) }

// Path returns the file backing index.
func (s *DirSource) Path(index int) string { return s.paths[index] }

func (s *DirSource) Markdown(index int) (string, error) {
	if index < 0 || index >= len(s.paths) {
		return "", fmt.Errorf("index %d out of range [0, %d)", index, len(s.paths))
	}
	content, err := os.ReadFile(s.paths[index])
	if err != nil {
		return "", fmt.Errorf("read note: %w", err)
	}
	return string(content), nil
}

func (s *DirSource) Label(index int) string {
	if index < 0 || index >= len(s.paths) {
		return ""
	}
	return s.rel(index)
}

// Kind is the folder holding the file.
func (s *DirSource) Kind(index int) string {
	if index < 0 || index >= len(s.paths) {
		return ""
	}
	return filepath.Dir(s.rel(index))
}

func (s *DirSource) Bounds() *scroller.Bounds {
	return &scroller.Bounds{Min: 0, Max: len(s.paths) - 1}
}

func (s *DirSource) rel(index int) string {
	rel, err := filepath.Rel(s.root, s.paths[index])
	if err != nil {
		return s.paths[index]
	}
	return filepath.ToSlash(rel)
}

// SyntheticSource generates a deterministic document for every integer
// index. Items cycle through three kinds with different shapes and lengths.
type SyntheticSource struct{}

var syntheticKinds = [...]string{"note", "list", "code"}

func (SyntheticSource) Markdown(index int) (string, error) {
	n := absInt(index)
	var b strings.Builder
	fmt.Fprintf(&b, "## Item %d\n\n", index)
	switch n % len(syntheticKinds) {
	case 0:
		for p := 0; p <= n%4; p++ {
			fmt.Fprintf(&b, "Paragraph %d of item %d. ", p+1, index)
			b.WriteString(strings.Repeat("Lorem ipsum dolor sit amet. ", 1+(n+p)%5))
			b.WriteString("\n\n")
		}
	case 1:
		for i := 0; i <= n%6; i++ {
			fmt.Fprintf(&b, "- entry %d.%d\n", index, i+1)
		}
	default:
		b.WriteString("```\n")
		for i := 0; i <= n%3+1; i++ {
			fmt.Fprintf(&b, "line(%d, %d)\n", index, i)
		}
		b.WriteString("```\n")
	}
	return b.String(), nil
}

func (SyntheticSource) Label(index int) string {
	return fmt.Sprintf("#%d %s", index, syntheticKinds[absInt(index)%len(syntheticKinds)])
}

func (SyntheticSource) Kind(index int) string {
	return syntheticKinds[absInt(index)%len(syntheticKinds)]
}

func (SyntheticSource) Bounds() *scroller.Bounds { return nil }

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
