package castmember

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/victorrosario/videocatalog-backend/pkg/db/models"
	pkgerrors "github.com/victorrosario/videocatalog-backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.CastMember{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	svc, err := NewService(NewRepository(conn))
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	return svc
}

func TestCreate_ValidatesType(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateCastMemberInput{Name: "Ridley Scott", Type: 7})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	created, err := svc.Create(ctx, CreateCastMemberInput{Name: "Ridley Scott", Type: models.CastMemberTypeDirector})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Type != models.CastMemberTypeDirector {
		t.Fatalf("expected director type, got %d", created.Type)
	}
}

func TestUpdate_SwitchesType(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCastMemberInput{Name: "Harrison Ford", Type: models.CastMemberTypeActor})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	directorType := models.CastMemberTypeDirector
	updated, err := svc.Update(ctx, created.ID, UpdateCastMemberInput{Type: &directorType})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Type != models.CastMemberTypeDirector {
		t.Fatalf("expected director type, got %d", updated.Type)
	}
	if updated.Name != "Harrison Ford" {
		t.Fatalf("expected name to survive, got %q", updated.Name)
	}

	badType := 0
	_, err = svc.Update(ctx, created.ID, UpdateCastMemberInput{Type: &badType})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDelete_SoftDeletes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCastMemberInput{Name: "Sean Young", Type: models.CastMemberTypeActor})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	_, err = svc.Get(ctx, created.ID, false)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	trashed, err := svc.Get(ctx, created.ID, true)
	if err != nil {
		t.Fatalf("with-trashed get failed: %v", err)
	}
	if trashed.DeletedAt == nil {
		t.Fatal("expected deleted_at to be populated")
	}
}
