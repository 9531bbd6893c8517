package cmd

import (
	"io/fs"
	"os"
	"path/filepath"

	"pixlift/internal/pipeline"
)

// collectFiles assembles the batch for a path argument: the file itself, or
// every regular file under a directory in lexical walk order. Non-image
// files are not filtered here; the validator is the one that judges them.
func collectFiles(root string) ([]pipeline.File, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		f, err := pipeline.FileFromPath(root)
		if err != nil {
			return nil, err
		}
		return []pipeline.File{f}, nil
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var files []pipeline.File
	fsys := os.DirFS(absRoot)
	err = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		f, err := pipeline.FileFromPath(filepath.Join(absRoot, path))
		if err != nil {
			return err
		}
		f.Name = path
		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
