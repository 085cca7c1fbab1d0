package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/victorrosario/videocatalog-backend/pkg/errors"
)

// ValidateRelationIDs fails with a validation error when any of the ids has
// no row in the relation's foreign table. The lookup deliberately bypasses
// the soft-delete scope: trashed rows are still attachable.
func ValidateRelationIDs(ctx context.Context, gdb *gorm.DB, rel RelationSpec, ids []uuid.UUID) error {
	unique := dedupeIDs(ids)
	if len(unique) == 0 {
		return nil
	}

	var found []string
	err := gdb.WithContext(ctx).
		Table(rel.ForeignTable).
		Where("id IN ?", idStrings(unique)).
		Pluck("id", &found).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("db: looking up %s", rel.ForeignTable))
	}

	if len(found) == len(unique) {
		return nil
	}

	foundSet := make(map[string]struct{}, len(found))
	for _, id := range found {
		foundSet[id] = struct{}{}
	}
	missing := make([]string, 0)
	for _, id := range unique {
		if _, ok := foundSet[id.String()]; !ok {
			missing = append(missing, id.String())
		}
	}
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s contains unknown ids", rel.RequestKey)).
		WithDetails(map[string]any{rel.RequestKey: missing})
}

// syncRelation makes the join table rows for ownerID match desired exactly,
// inserting and deleting only the difference.
func syncRelation(tx *gorm.DB, rel RelationSpec, ownerID uuid.UUID, desired []uuid.UUID) error {
	var current []string
	err := tx.Table(rel.JoinTable).
		Where(rel.OwnerColumn+" = ?", ownerID.String()).
		Pluck(rel.ForeignColumn, &current).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("db: reading %s", rel.JoinTable))
	}

	desiredSet := make(map[string]struct{}, len(desired))
	for _, id := range dedupeIDs(desired) {
		desiredSet[id.String()] = struct{}{}
	}
	currentSet := make(map[string]struct{}, len(current))
	for _, id := range current {
		currentSet[id] = struct{}{}
	}

	var toDelete []string
	for id := range currentSet {
		if _, ok := desiredSet[id]; !ok {
			toDelete = append(toDelete, id)
		}
	}
	var toInsert []string
	for id := range desiredSet {
		if _, ok := currentSet[id]; !ok {
			toInsert = append(toInsert, id)
		}
	}

	if len(toDelete) > 0 {
		err := tx.Exec(
			fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND %s IN ?", rel.JoinTable, rel.OwnerColumn, rel.ForeignColumn),
			ownerID.String(), toDelete,
		).Error
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("db: detaching from %s", rel.JoinTable))
		}
	}

	if len(toInsert) > 0 {
		rows := make([]map[string]any, 0, len(toInsert))
		for _, id := range toInsert {
			rows = append(rows, map[string]any{
				rel.OwnerColumn:   ownerID.String(),
				rel.ForeignColumn: id,
			})
		}
		if err := tx.Table(rel.JoinTable).Create(rows).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("db: attaching to %s", rel.JoinTable))
		}
	}

	return nil
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
