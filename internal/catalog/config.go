package catalog

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	pkgerrors "github.com/victorrosario/videocatalog-backend/pkg/errors"
)

// RelationSpec declares one many-to-many relation of an entity: the request
// key carrying the desired id set and the join table it maps to.
type RelationSpec struct {
	RequestKey    string
	JoinTable     string
	OwnerColumn   string
	ForeignColumn string
	ForeignTable  string
}

// Config is the per-entity-type metadata consumed by the saver, resolved at
// startup by each domain service.
type Config struct {
	Table      string
	FileFields []string
	Relations  []RelationSpec
}

// BlobStore is the object storage surface the saver needs. Each call is
// immediately durable or immediately fails; there is no transaction shared
// with the database.
type BlobStore interface {
	Put(ctx context.Context, dir, name string, reader io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, dir, name string) error
	Exists(ctx context.Context, dir, name string) (bool, error)
}

// takeRelationSets removes every declared relation key from attrs and returns
// the desired id set per request key. A key present with a nil value means an
// explicit empty set.
func takeRelationSets(attrs map[string]any, relations []RelationSpec) (map[string][]uuid.UUID, error) {
	sets := make(map[string][]uuid.UUID)
	for _, rel := range relations {
		raw, ok := attrs[rel.RequestKey]
		if !ok {
			continue
		}
		delete(attrs, rel.RequestKey)

		ids, err := coerceIDs(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("invalid %s", rel.RequestKey))
		}
		sets[rel.RequestKey] = ids
	}
	return sets, nil
}

func coerceIDs(raw any) ([]uuid.UUID, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []uuid.UUID:
		return v, nil
	case []string:
		ids := make([]uuid.UUID, 0, len(v))
		for _, s := range v {
			id, err := uuid.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("parsing id %q: %w", s, err)
			}
			ids = append(ids, id)
		}
		return ids, nil
	default:
		return nil, fmt.Errorf("unsupported id list type %T", raw)
	}
}
