package extract

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tqbf/assetx/pkg/index"
	"github.com/tqbf/assetx/pkg/objstore"
	"github.com/tqbf/assetx/pkg/paths"
	"github.com/tqbf/assetx/pkg/progress"
)

const (
	FilesDir = "files"

	indexesPrefix = "Indexes"
	objectsPrefix = "Extracting assets"
)

type Summary struct {
	Packages   int
	Objects    int
	Skipped    int
	Unreadable int
}

type Extractor struct {
	root        string
	progress    *progress.Coordinator
	log         *slog.Logger
	excludes    *paths.Matcher
	unsafePaths bool
}

func New(root string, opts ...Option) *Extractor {
	x := &Extractor{
		root:     root,
		progress: progress.New(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Run materializes every index found under <root>/indexes. It stops
// at the first fatal error; work already done stays on disk.
func (x *Extractor) Run() (Summary, error) {
	var sum Summary

	files, err := index.Discover(x.root)
	if err != nil {
		return sum, err
	}
	x.log.Debug("discovered indexes",
		"root", x.root,
		"count", len(files),
	)

	bar := x.progress.AddBar(int64(len(files)), indexesPrefix)
	for _, f := range files {
		packageID, err := f.PackageID()
		if err != nil {
			return sum, err
		}
		bar.SetMessage(packageID)

		if err := x.createPackageDir(packageID); err != nil {
			return sum, err
		}

		idx, err := index.Load(f)
		if errors.Is(err, index.ErrUnreadable) {
			x.log.Warn("index unreadable, treating as empty",
				"index", f.Path,
				"err", err,
			)
			sum.Unreadable++
			idx = &index.Index{}
		} else if err != nil {
			return sum, err
		}

		n, skipped, err := x.materialize(idx, packageID)
		sum.Objects += n
		sum.Skipped += skipped
		if err != nil {
			return sum, err
		}
		sum.Packages++
		bar.Inc(1)
	}
	bar.SetMessage("")
	bar.Finish()
	return sum, nil
}

// Materialize copies every object of idx into <root>/files/<packageID>
// and returns how many were copied.
func (x *Extractor) Materialize(
	idx *index.Index,
	packageID string,
) (int, error) {
	if err := x.createPackageDir(packageID); err != nil {
		return 0, err
	}
	n, _, err := x.materialize(idx, packageID)
	return n, err
}

func (x *Extractor) packageDir(packageID string) string {
	return filepath.Join(x.root, FilesDir, packageID)
}

func (x *Extractor) createPackageDir(packageID string) error {
	dir := x.packageDir(packageID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create package dir %s: %w", dir, err)
	}
	return nil
}

// materialize copies the objects of idx under its own progress bar,
// which is removed from the display once the package is done or has
// failed.
func (x *Extractor) materialize(
	idx *index.Index,
	packageID string,
) (int, int, error) {
	outputDir := x.packageDir(packageID)
	bar := x.progress.AddBar(int64(idx.Len()), objectsPrefix)
	defer bar.FinishAndClear()
	bar.SetMessage(packageID)

	copied, skipped := 0, 0
	for _, logical := range idx.Paths() {
		if x.excludes.Match(logical) {
			x.log.Debug("excluded",
				"package", packageID,
				"path", logical,
			)
			skipped++
			bar.Inc(1)
			continue
		}

		outputPath, err := x.outputPath(outputDir, packageID, logical)
		if err != nil {
			return copied, skipped, err
		}
		hash := idx.Objects[logical].Hash
		if err := copyObject(x.root, hash, outputPath); err != nil {
			return copied, skipped, fmt.Errorf(
				"materialize %s in package %s: %w",
				logical, packageID, err,
			)
		}
		copied++
		bar.Inc(1)
	}

	x.log.Debug("materialized package",
		"package", packageID,
		"count", copied,
		"skipped", skipped,
	)
	return copied, skipped, nil
}

func (x *Extractor) outputPath(
	outputDir, packageID, logical string,
) (string, error) {
	if x.unsafePaths {
		return filepath.Join(outputDir, filepath.FromSlash(logical)), nil
	}
	if err := paths.ValidateLogical(logical); err != nil {
		return "", &UnsafePathError{
			Package: packageID,
			Path:    logical,
			Err:     err,
		}
	}
	full := filepath.Join(outputDir, filepath.FromSlash(logical))
	if !paths.IsWithinDir(outputDir, full) {
		return "", &UnsafePathError{
			Package: packageID,
			Path:    logical,
			Err:     errors.New("path escapes package directory"),
		}
	}
	return full, nil
}

// copyObject overwrites dst with the blob named hash. The blob is
// opened first so a missing blob never leaves an empty destination.
func copyObject(root, hash, dst string) error {
	in, err := objstore.Open(root, hash)
	if err != nil {
		return fmt.Errorf("open object: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("mkdir parent: %w", err)
	}

	out, err := os.OpenFile(
		dst,
		os.O_CREATE|os.O_WRONLY|os.O_TRUNC,
		0644,
	)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	_, copyErr := io.Copy(out, in)
	closeErr := out.Close()
	if copyErr != nil {
		return fmt.Errorf("copy %s to %s: %w", in.Name(), dst, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close %s: %w", dst, closeErr)
	}
	return nil
}
