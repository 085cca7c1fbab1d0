package uploads

import (
	"bytes"
	"io"
)

// Payload carries one uploaded file for the duration of a single
// create/update request. It is never persisted; the stored column value is
// the generated object name.
type Payload struct {
	OriginalName string
	Size         int64
	ContentType  string

	// Open returns a fresh reader over the file contents. The saver calls it
	// once per upload attempt.
	Open func() (io.ReadCloser, error)
}

// NewBytesPayload builds a payload backed by an in-memory byte slice.
func NewBytesPayload(name, contentType string, data []byte) *Payload {
	return &Payload{
		OriginalName: name,
		Size:         int64(len(data)),
		ContentType:  contentType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}
