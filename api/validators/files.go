package validators

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/victorrosario/videocatalog-backend/internal/uploads"
	pkgerrors "github.com/victorrosario/videocatalog-backend/pkg/errors"
)

// FileRule declares the size and format constraints for one uploaded field.
// MaxKB follows the store's convention of kilobyte limits.
type FileRule struct {
	Field      string
	MaxKB      int64
	Extensions []string
	MIMEs      []string
}

// FormFilePayload reads one multipart file field, validates it against the
// rule and wraps it as an upload payload. A missing field returns (nil, nil).
func FormFilePayload(r *http.Request, rule FileRule) (*uploads.Payload, error) {
	file, header, err := r.FormFile(rule.Field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body").
			WithDetails(map[string]any{"field": rule.Field})
	}
	file.Close()

	if err := checkFileRule(header, rule); err != nil {
		return nil, err
	}

	return &uploads.Payload{
		OriginalName: header.Filename,
		Size:         header.Size,
		ContentType:  header.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}, nil
}

func checkFileRule(header *multipart.FileHeader, rule FileRule) error {
	if rule.MaxKB > 0 && header.Size > rule.MaxKB*1024 {
		return fileRuleError(rule.Field, fmt.Sprintf("must be at most %d kilobytes", rule.MaxKB))
	}

	if len(rule.Extensions) > 0 {
		ext := strings.TrimPrefix(strings.ToLower(path.Ext(header.Filename)), ".")
		if !contains(rule.Extensions, ext) {
			return fileRuleError(rule.Field, fmt.Sprintf("must have one of the extensions: %s", strings.Join(rule.Extensions, ", ")))
		}
	}

	if len(rule.MIMEs) > 0 {
		declared := strings.ToLower(strings.TrimSpace(header.Header.Get("Content-Type")))
		if declared != "" && !contains(rule.MIMEs, declared) {
			return fileRuleError(rule.Field, fmt.Sprintf("must be one of the types: %s", strings.Join(rule.MIMEs, ", ")))
		}
	}
	return nil
}

func fileRuleError(field, message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
		WithDetails(map[string]string{field: message})
}

func contains(values []string, candidate string) bool {
	for _, value := range values {
		if value == candidate {
			return true
		}
	}
	return false
}
