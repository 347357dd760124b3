package index

import "sort"

type Object struct {
	Hash string `json:"hash" yaml:"hash"`
	Size uint64 `json:"size" yaml:"size"`
}

// Index maps logical paths inside one package to the blobs that
// hold their contents.
type Index struct {
	Objects map[string]Object `json:"objects" yaml:"objects"`
}

func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.Objects)
}

func (idx *Index) Paths() []string {
	if idx == nil {
		return nil
	}
	paths := make([]string, 0, len(idx.Objects))
	for p := range idx.Objects {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// DeclaredSize sums the sizes the index claims. Nothing checks them
// against the blobs.
func (idx *Index) DeclaredSize() uint64 {
	if idx == nil {
		return 0
	}
	var total uint64
	for _, o := range idx.Objects {
		total += o.Size
	}
	return total
}
