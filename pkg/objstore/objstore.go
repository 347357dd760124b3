package objstore

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"
)

const Dir = "objects"

var ErrShortHash = errors.New("hash shorter than two characters")

// Path returns where the blob named hash lives under root:
// objects/<first two chars>/<hash>. It does not touch the disk.
func Path(root, hash string) (string, error) {
	if len(hash) < 2 {
		return "", fmt.Errorf("%w: %q", ErrShortHash, hash)
	}
	return filepath.Join(root, Dir, hash[:2], hash), nil
}

func Open(root, hash string) (*os.File, error) {
	p, err := Path(root, hash)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}

// Put stores the contents of r under its BLAKE3 digest and returns
// the hex digest and byte count. Storing a blob that is already
// present leaves the existing file in place.
func Put(root string, r io.Reader) (string, int64, error) {
	tmpDir := filepath.Join(root, Dir)
	if err := os.MkdirAll(tmpDir, 0755); err != nil {
		return "", 0, fmt.Errorf("create objects: %w", err)
	}
	tmp, err := os.CreateTemp(tmpDir, ".put-*")
	if err != nil {
		return "", 0, fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	h := blake3.New()
	n, copyErr := io.Copy(io.MultiWriter(tmp, h), r)
	closeErr := tmp.Close()
	if copyErr != nil {
		return "", 0, fmt.Errorf("write blob: %w", copyErr)
	}
	if closeErr != nil {
		return "", 0, fmt.Errorf("close blob: %w", closeErr)
	}

	hash := hex.EncodeToString(h.Sum(nil))
	dst, err := Path(root, hash)
	if err != nil {
		return "", 0, err
	}
	if _, err := os.Stat(dst); err == nil {
		return hash, n, nil
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", 0, fmt.Errorf("create shard: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", 0, fmt.Errorf("publish blob %s: %w", hash, err)
	}
	return hash, n, nil
}
