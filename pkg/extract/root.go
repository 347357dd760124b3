package extract

import "os"

const DefaultRoot = "assets"

// LocateRoot returns the first candidate that is an existing
// directory.
func LocateRoot(candidates ...string) (string, error) {
	if len(candidates) == 0 {
		candidates = []string{DefaultRoot}
	}
	for _, c := range candidates {
		info, err := os.Stat(c)
		if err == nil && info.IsDir() {
			return c, nil
		}
	}
	return "", &AssetsFolderNotFoundError{Tried: candidates}
}
