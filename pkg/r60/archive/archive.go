// Package archive stores processed source files in a year/month folder
// hierarchy, under canonical names derived from the submission.
package archive

import "context"

// Folder is an opaque handle to an ensured folder path.
type Folder string

// UploadInfo describes an archived file.
type UploadInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Link string `json:"link"`
}

// Archiver is the destination store for processed source files.
type Archiver interface {
	// EnsurePath creates the folder hierarchy for the given segments,
	// returning a handle usable with Upload.
	EnsurePath(ctx context.Context, segments ...string) (Folder, error)
	// Upload stores data under name inside folder.
	Upload(ctx context.Context, folder Folder, name string, data []byte) (UploadInfo, error)
}
