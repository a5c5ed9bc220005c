package history

import "context"

// Slot is a single named location holding one opaque text blob. The store is
// the only reader and writer of the blob's encoding.
type Slot interface {
	// Read returns the blob. ok is false when nothing has been written.
	Read(ctx context.Context) (blob string, ok bool, err error)
	// Write replaces the blob.
	Write(ctx context.Context, blob string) error
	// Remove deletes the blob. Removing an empty slot is not an error.
	Remove(ctx context.Context) error
}
