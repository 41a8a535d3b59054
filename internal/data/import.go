package data

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chirag7gaming/my-code/internal/model"
)

// ImportFile reads an external HTML document and creates a file from
// it, standalone or inside the named project. Only the HTML extension
// class (.html, .htm) is accepted. Read failures wrap as an import
// failure; nothing is committed when the read fails.
func (s *Service) ImportFile(ctx context.Context, path, projectID string) (model.File, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".html" && ext != ".htm" {
		return model.File{}, fmt.Errorf("importing %s: %w", path, ErrNotHTML)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return model.File{}, fmt.Errorf("importing %s: %w", path, err)
	}

	return s.CreateFile(ctx, filepath.Base(path), string(content), projectID)
}
