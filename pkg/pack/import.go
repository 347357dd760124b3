package pack

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/tqbf/assetx/pkg/index"
	"github.com/tqbf/assetx/pkg/objstore"
	"github.com/tqbf/assetx/pkg/paths"
)

type fileJob struct {
	relPath string
	absPath string
}

type storeResult struct {
	relPath string
	object  index.Object
	err     error
}

// Import stores every regular file under dir as a blob in root and
// writes an index for packageID that reproduces the tree. Files whose
// relative path matches an exclude pattern are left out.
func Import(
	dir, root, packageID string,
	excludes []string,
	format index.Format,
) (*index.Index, error) {
	jobs, err := walk(dir, paths.NewMatcher(excludes))
	if err != nil {
		return nil, err
	}

	idx, err := storeAll(root, jobs)
	if err != nil {
		return nil, err
	}
	if _, err := index.Write(root, packageID, idx, format); err != nil {
		return nil, err
	}
	return idx, nil
}

func walk(dir string, matcher *paths.Matcher) ([]fileJob, error) {
	var jobs []fileJob
	err := filepath.WalkDir(
		dir,
		func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(dir, p)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			if rel == "." {
				return nil
			}
			if matcher.Match(rel) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			jobs = append(jobs, fileJob{
				relPath: rel,
				absPath: p,
			})
			return nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return jobs, nil
}

func storeAll(root string, jobs []fileJob) (*index.Index, error) {
	idx := &index.Index{
		Objects: make(map[string]index.Object, len(jobs)),
	}
	workers := min(runtime.NumCPU(), len(jobs))
	if workers == 0 {
		return idx, nil
	}

	jobCh := make(chan fileJob, len(jobs))
	resultCh := make(chan storeResult, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			storeWorker(root, jobCh, resultCh)
		}()
	}

	for _, j := range jobs {
		jobCh <- j
	}
	close(jobCh)

	wg.Wait()
	close(resultCh)

	for r := range resultCh {
		if r.err != nil {
			return nil, r.err
		}
		idx.Objects[r.relPath] = r.object
	}
	return idx, nil
}

func storeWorker(
	root string,
	jobs <-chan fileJob,
	results chan<- storeResult,
) {
	for j := range jobs {
		obj, err := storeFile(root, j.absPath)
		results <- storeResult{j.relPath, obj, err}
	}
}

func storeFile(root, absPath string) (index.Object, error) {
	f, err := os.Open(absPath)
	if err != nil {
		return index.Object{}, err
	}
	defer f.Close()

	hash, n, err := objstore.Put(root, f)
	if err != nil {
		return index.Object{}, fmt.Errorf("store %s: %w", absPath, err)
	}
	return index.Object{Hash: hash, Size: uint64(n)}, nil
}
