package uploads

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// File pairs an extracted payload with the object name generated for it.
type File struct {
	Field      string
	ObjectName string
	Payload    *Payload
}

// Extract splits a raw attribute map into a cleaned copy, where each declared
// file field carrying a payload is replaced by a generated object name, and
// the ordered list of extracted files. Extraction order follows fileFields.
// Fields absent from attrs, or holding a non-payload value, are left
// untouched. The input map is not mutated.
func Extract(attrs map[string]any, fileFields []string) (map[string]any, []File) {
	cleaned := make(map[string]any, len(attrs))
	for k, v := range attrs {
		cleaned[k] = v
	}

	var files []File
	for _, field := range fileFields {
		raw, ok := cleaned[field]
		if !ok {
			continue
		}
		payload, ok := raw.(*Payload)
		if !ok || payload == nil {
			continue
		}
		name := generateObjectName(payload.OriginalName)
		cleaned[field] = name
		files = append(files, File{Field: field, ObjectName: name, Payload: payload})
	}
	return cleaned, files
}

// generateObjectName returns a random, non-guessable name that keeps the
// original extension so content types survive round trips.
func generateObjectName(originalName string) string {
	ext := strings.ToLower(path.Ext(originalName))
	return uuid.NewString() + ext
}
