package index

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const Dir = "indexes"

// File is one entry found directly under <root>/indexes.
type File struct {
	Path string
	Name string
}

// PackageID is the file name without its final extension. It names
// the package's output directory.
func (f File) PackageID() (string, error) {
	stem := strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
	if stem == "" || stem == "." || stem == ".." {
		return "", &InvalidIndexFileError{Path: f.Path}
	}
	return stem, nil
}

func (f File) Format() Format {
	return FormatOf(f.Name)
}

func Discover(root string) ([]File, error) {
	dir := filepath.Join(root, Dir)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, &IndexesFolderNotFoundError{
			Tried: []string{dir},
		}
	}

	d, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open indexes: %w", err)
	}
	defer d.Close()

	entries, err := d.ReadDir(-1)
	if err != nil {
		slog.Debug("indexes listing incomplete",
			"dir", dir,
			"read", len(entries),
			"err", err,
		)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	files := make([]File, 0, len(entries))
	for _, e := range entries {
		files = append(files, File{
			Path: filepath.Join(dir, e.Name()),
			Name: e.Name(),
		})
	}
	return files, nil
}

// Load reads and parses f. A failed read wraps ErrUnreadable and is
// not a parse failure; callers decide how to treat it.
func Load(f File) (*Index, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	idx, err := Parse(data, f.Format())
	if err != nil {
		return nil, &ParseError{Path: f.Path, Err: err}
	}
	return idx, nil
}

// Write stores idx as <root>/indexes/<packageID>.<ext>.
func Write(
	root, packageID string,
	idx *Index,
	format Format,
) (File, error) {
	data, err := Encode(idx, format)
	if err != nil {
		return File{}, fmt.Errorf("encode index: %w", err)
	}
	dir := filepath.Join(root, Dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return File{}, fmt.Errorf("create indexes: %w", err)
	}
	name := packageID + "." + format.String()
	f := File{Path: filepath.Join(dir, name), Name: name}
	if err := os.WriteFile(f.Path, data, 0644); err != nil {
		return File{}, fmt.Errorf("write index: %w", err)
	}
	return f, nil
}
