package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalArchive is a filesystem-backed Archiver for local runs and tests.
type LocalArchive struct {
	root string
}

// NewLocalArchive returns an archiver rooted at dir, creating it if needed.
func NewLocalArchive(dir string) (*LocalArchive, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive root: %w", err)
	}
	return &LocalArchive{root: dir}, nil
}

// EnsurePath creates the nested directory for the given segments.
func (a *LocalArchive) EnsurePath(ctx context.Context, segments ...string) (Folder, error) {
	dir := filepath.Join(append([]string{a.root}, segments...)...)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create archive path: %w", err)
	}
	return Folder(dir), nil
}

// Upload writes data into the folder under name.
func (a *LocalArchive) Upload(ctx context.Context, folder Folder, name string, data []byte) (UploadInfo, error) {
	path := filepath.Join(string(folder), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return UploadInfo{}, fmt.Errorf("write archive file: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return UploadInfo{
		ID:   uuid.NewString(),
		Name: name,
		Link: "file://" + abs,
	}, nil
}
