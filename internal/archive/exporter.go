package archive

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"

	"github.com/chirag7gaming/my-code/internal/model"
)

// Export encodes a project's files into a zip byte stream: one entry
// per file, the file name as the entry path, the content UTF-8
// encoded. No directory nesting, no manifest. Export is a pure
// function over the project; it holds no state.
func Export(p model.Project) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, f := range p.Files {
		entry, err := w.Create(f.Name)
		if err != nil {
			return nil, fmt.Errorf("creating zip entry %s: %w", f.Name, err)
		}
		if _, err := entry.Write([]byte(f.Content)); err != nil {
			return nil, fmt.Errorf("writing zip entry %s: %w", f.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing archive for %s: %w", p.Name, err)
	}
	return buf.Bytes(), nil
}

// WriteArchive exports a project and writes <ProjectName>.zip into
// dir, returning the written path. The archive is fully encoded in
// memory first, so an encode failure never leaves a truncated file on
// disk.
func WriteArchive(p model.Project, dir string) (string, error) {
	data, err := Export(p)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, p.Name+".zip")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing archive %s: %w", path, err)
	}
	return path, nil
}

// SaveFile writes a single file's content into dir under its own name,
// returning the written path.
func SaveFile(f model.File, dir string) (string, error) {
	path := filepath.Join(dir, f.Name)
	if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
		return "", fmt.Errorf("saving %s: %w", f.Name, err)
	}
	return path, nil
}

// SaveAll writes every file into dir, stopping at the first failure.
func SaveAll(files []model.File, dir string) error {
	for _, f := range files {
		if _, err := SaveFile(f, dir); err != nil {
			return err
		}
	}
	return nil
}
