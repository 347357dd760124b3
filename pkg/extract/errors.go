package extract

import (
	"fmt"
	"strings"
)

type AssetsFolderNotFoundError struct {
	Tried []string
}

func (e *AssetsFolderNotFoundError) Error() string {
	return fmt.Sprintf(
		"could not find assets folder, tried %s",
		strings.Join(e.Tried, ", "),
	)
}

type UnsafePathError struct {
	Package string
	Path    string
	Err     error
}

func (e *UnsafePathError) Error() string {
	return fmt.Sprintf(
		"unsafe object path %q in package %s: %v",
		e.Path, e.Package, e.Err,
	)
}

func (e *UnsafePathError) Unwrap() error {
	return e.Err
}
