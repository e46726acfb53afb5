package out

import "context"

// Slot is the single named key-value entry holding the serialized document.
// Read returns apperrors.ErrSlotEmpty when nothing has been written yet.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, payload []byte) error
}

// ArtifactStore writes export files into a directory and reads import files.
type ArtifactStore interface {
	Write(ctx context.Context, dir, name string, payload []byte) (string, error)
	Read(ctx context.Context, path string) ([]byte, error)
}
