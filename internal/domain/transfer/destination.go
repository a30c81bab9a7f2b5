package transfer

import "context"

// Destination is a storage service that can create folders and pull files
// from a URL.
type Destination interface {
	// CreateFolder creates path. alreadyExists is true when the service
	// reports the folder as present; that case returns a nil error.
	CreateFolder(ctx context.Context, path string) (alreadyExists bool, err error)

	// UploadFromURL stores the resource at sourceURL under path.
	UploadFromURL(ctx context.Context, path, sourceURL string) error
}
