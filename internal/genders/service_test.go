package gender

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/victorrosario/videocatalog-backend/internal/catalog"
	"github.com/victorrosario/videocatalog-backend/pkg/db"
	"github.com/victorrosario/videocatalog-backend/pkg/db/models"
	pkgerrors "github.com/victorrosario/videocatalog-backend/pkg/errors"
	"github.com/victorrosario/videocatalog-backend/pkg/pagination"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Category{}, &models.Gender{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	saver := catalog.NewSaver(db.NewWithConn(conn), nil, nil, nil)
	svc, err := NewService(NewRepository(conn), saver)
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	return svc, conn
}

func seedCategory(t *testing.T, conn *gorm.DB, name string) models.Category {
	t.Helper()
	category := models.Category{ID: uuid.New(), Name: name, IsActive: true}
	if err := conn.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return category
}

func TestCreate_AttachesCategories(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	movies := seedCategory(t, conn, "Movies")
	series := seedCategory(t, conn, "Series")

	created, err := svc.Create(ctx, CreateGenderInput{
		Name:        "Drama",
		CategoryIDs: []uuid.UUID{movies.ID, series.ID},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(created.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(created.Categories))
	}
	if !created.IsActive {
		t.Fatal("expected is_active to default to true")
	}
}

func TestCreate_RejectsUnknownCategory(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateGenderInput{
		Name:        "Drama",
		CategoryIDs: []uuid.UUID{uuid.New()},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGet_ShowsTrashedCategories(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	movies := seedCategory(t, conn, "Movies")
	created, err := svc.Create(ctx, CreateGenderInput{
		Name:        "Drama",
		CategoryIDs: []uuid.UUID{movies.ID},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := conn.Delete(&models.Category{}, "id = ?", movies.ID).Error; err != nil {
		t.Fatalf("failed to trash category: %v", err)
	}

	got, err := svc.Get(ctx, created.ID, false)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got.Categories) != 1 || got.Categories[0].ID != movies.ID {
		t.Fatalf("expected the trashed category to stay attached, got %+v", got.Categories)
	}
}

func TestUpdate_ReplacesCategorySet(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	a := seedCategory(t, conn, "A")
	b := seedCategory(t, conn, "B")
	c := seedCategory(t, conn, "C")

	created, err := svc.Create(ctx, CreateGenderInput{
		Name:        "Drama",
		CategoryIDs: []uuid.UUID{a.ID, b.ID},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newSet := []uuid.UUID{b.ID, c.ID}
	updated, err := svc.Update(ctx, created.ID, UpdateGenderInput{CategoryIDs: &newSet})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(updated.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(updated.Categories))
	}
	for _, category := range updated.Categories {
		if category.ID == a.ID {
			t.Fatal("expected A to be detached")
		}
	}
	if updated.Name != "Drama" {
		t.Fatalf("expected untouched name to survive, got %q", updated.Name)
	}
}

func TestDelete_HidesFromDefaultListing(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateGenderInput{Name: "Drama"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	_, total, err := svc.List(ctx, pagination.Params{}, false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected empty default listing, got %d", total)
	}

	_, totalTrashed, err := svc.List(ctx, pagination.Params{}, true)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if totalTrashed != 1 {
		t.Fatalf("expected trashed listing of 1, got %d", totalTrashed)
	}
}
