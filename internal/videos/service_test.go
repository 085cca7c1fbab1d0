package video

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/victorrosario/videocatalog-backend/internal/catalog"
	"github.com/victorrosario/videocatalog-backend/internal/uploads"
	"github.com/victorrosario/videocatalog-backend/pkg/db"
	"github.com/victorrosario/videocatalog-backend/pkg/db/models"
	pkgerrors "github.com/victorrosario/videocatalog-backend/pkg/errors"
)

type fakeBlobStore struct {
	objects map[string][]byte
	failPut bool
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (f *fakeBlobStore) Put(_ context.Context, dir, name string, reader io.Reader, _ int64, _ string) error {
	if f.failPut {
		return errors.New("simulated put failure")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.objects[dir+"/"+name] = data
	return nil
}

func (f *fakeBlobStore) Delete(_ context.Context, dir, name string) error {
	delete(f.objects, dir+"/"+name)
	return nil
}

func (f *fakeBlobStore) Exists(_ context.Context, dir, name string) (bool, error) {
	_, ok := f.objects[dir+"/"+name]
	return ok, nil
}

func newTestService(t *testing.T) (Service, *gorm.DB, *fakeBlobStore) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Category{}, &models.Gender{}, &models.Video{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	store := newFakeBlobStore()
	saver := catalog.NewSaver(db.NewWithConn(conn), store, nil, nil)
	svc, err := NewService(NewRepository(conn), saver)
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	return svc, conn, store
}

func seedCategory(t *testing.T, conn *gorm.DB, name string) models.Category {
	t.Helper()
	category := models.Category{ID: uuid.New(), Name: name, IsActive: true}
	if err := conn.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return category
}

func seedGender(t *testing.T, conn *gorm.DB, name string) models.Gender {
	t.Helper()
	gender := models.Gender{ID: uuid.New(), Name: name, IsActive: true}
	if err := conn.Create(&gender).Error; err != nil {
		t.Fatalf("failed to seed gender: %v", err)
	}
	return gender
}

func validCreateInput(conn *gorm.DB, t *testing.T) CreateVideoInput {
	t.Helper()
	category := seedCategory(t, conn, "Movies")
	gender := seedGender(t, conn, "Drama")
	return CreateVideoInput{
		Title:        "Blade Runner",
		Description:  "replicants",
		YearLaunched: 1982,
		Rating:       "14",
		Duration:     117,
		CategoryIDs:  []uuid.UUID{category.ID},
		GenderIDs:    []uuid.UUID{gender.ID},
	}
}

func TestCreate_PersistsFilesAndRelations(t *testing.T) {
	svc, conn, store := newTestService(t)
	ctx := context.Background()

	input := validCreateInput(conn, t)
	input.VideoFile = uploads.NewBytesPayload("movie.mp4", "video/mp4", []byte("mp4"))
	input.ThumbFile = uploads.NewBytesPayload("thumb.jpg", "image/jpeg", []byte("jpg"))

	created, err := svc.Create(ctx, input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.VideoFile == nil || created.ThumbFile == nil {
		t.Fatalf("expected generated file names, got %+v", created)
	}
	if len(created.Categories) != 1 || len(created.Genders) != 1 {
		t.Fatalf("expected one category and one gender, got %+v", created)
	}
	if _, ok := store.objects[created.ID.String()+"/"+*created.VideoFile]; !ok {
		t.Fatal("expected the video object in the store")
	}
	if _, ok := store.objects[created.ID.String()+"/"+*created.ThumbFile]; !ok {
		t.Fatal("expected the thumb object in the store")
	}
}

func TestCreate_RejectsInvalidRating(t *testing.T) {
	svc, conn, _ := newTestService(t)

	input := validCreateInput(conn, t)
	input.Rating = "PG-13"
	_, err := svc.Create(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreate_RejectsUnknownGender(t *testing.T) {
	svc, conn, store := newTestService(t)

	input := validCreateInput(conn, t)
	input.GenderIDs = []uuid.UUID{uuid.New()}
	input.VideoFile = uploads.NewBytesPayload("movie.mp4", "video/mp4", []byte("mp4"))
	_, err := svc.Create(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.objects) != 0 {
		t.Fatalf("expected no uploads on validation failure, got %d objects", len(store.objects))
	}
}

func TestUpdate_ReplacesVideoFile(t *testing.T) {
	svc, conn, store := newTestService(t)
	ctx := context.Background()

	input := validCreateInput(conn, t)
	input.VideoFile = uploads.NewBytesPayload("old.mp4", "video/mp4", []byte("old"))
	created, err := svc.Create(ctx, input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	oldName := *created.VideoFile

	updated, err := svc.Update(ctx, created.ID, UpdateVideoInput{
		VideoFile: uploads.NewBytesPayload("new.mp4", "video/mp4", []byte("new")),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if *updated.VideoFile == oldName {
		t.Fatal("expected a new generated name")
	}
	if _, ok := store.objects[created.ID.String()+"/"+oldName]; ok {
		t.Fatal("expected the replaced object to be removed")
	}
	if _, ok := store.objects[created.ID.String()+"/"+*updated.VideoFile]; !ok {
		t.Fatal("expected the new object in the store")
	}
	if updated.Title != input.Title {
		t.Fatalf("expected untouched title to survive, got %q", updated.Title)
	}
}

func TestUpdate_StorageFailureSurfacesAfterCommit(t *testing.T) {
	svc, conn, store := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateInput(conn, t))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	store.failPut = true
	title := "renamed"
	_, err = svc.Update(ctx, created.ID, UpdateVideoInput{
		Title:     &title,
		VideoFile: uploads.NewBytesPayload("new.mp4", "video/mp4", []byte("new")),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStorage {
		t.Fatalf("expected storage error, got %v", err)
	}

	// The column update committed before the upload phase failed.
	got, err := svc.Get(ctx, created.ID, false)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != "renamed" {
		t.Fatalf("expected committed title, got %q", got.Title)
	}
}

func TestDelete_KeepsObjectsAndRelations(t *testing.T) {
	svc, conn, store := newTestService(t)
	ctx := context.Background()

	input := validCreateInput(conn, t)
	input.VideoFile = uploads.NewBytesPayload("movie.mp4", "video/mp4", []byte("mp4"))
	created, err := svc.Create(ctx, input)
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
	if len(trashed.Categories) != 1 {
		t.Fatalf("expected relations to survive soft delete, got %+v", trashed.Categories)
	}
	if len(store.objects) != 1 {
		t.Fatalf("expected blob objects to survive soft delete, got %d", len(store.objects))
	}
}
