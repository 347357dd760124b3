package index

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnreadable = errors.New("index unreadable")

type IndexesFolderNotFoundError struct {
	Tried []string
}

func (e *IndexesFolderNotFoundError) Error() string {
	return fmt.Sprintf(
		"could not find indexes folder, tried %s",
		strings.Join(e.Tried, ", "),
	)
}

type InvalidIndexFileError struct {
	Path string
}

func (e *InvalidIndexFileError) Error() string {
	return fmt.Sprintf("invalid index file %s", e.Path)
}

type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse index %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
