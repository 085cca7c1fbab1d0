package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
)

type fakeObjectAPI struct {
	bucketExistsFunc func(ctx context.Context, bucketName string) (bool, error)
	putObjectFunc    func(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	removeObjectFunc func(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	statObjectFunc   func(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

func (f *fakeObjectAPI) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	if f.bucketExistsFunc != nil {
		return f.bucketExistsFunc(ctx, bucketName)
	}
	return true, nil
}

func (f *fakeObjectAPI) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putObjectFunc != nil {
		return f.putObjectFunc(ctx, bucketName, objectName, reader, objectSize, opts)
	}
	return minio.UploadInfo{}, nil
}

func (f *fakeObjectAPI) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	if f.removeObjectFunc != nil {
		return f.removeObjectFunc(ctx, bucketName, objectName, opts)
	}
	return nil
}

func (f *fakeObjectAPI) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	if f.statObjectFunc != nil {
		return f.statObjectFunc(ctx, bucketName, objectName, opts)
	}
	return minio.ObjectInfo{}, nil
}

func TestNewClientWithAPI_MissingBucket(t *testing.T) {
	api := &fakeObjectAPI{
		bucketExistsFunc: func(ctx context.Context, bucket string) (bool, error) {
			return false, nil
		},
	}
	if _, err := newClientWithAPI(context.Background(), api, "catalog"); err == nil {
		t.Fatal("expected error for missing bucket")
	}
}

func TestPutBuildsDirectoryKey(t *testing.T) {
	var gotKey, gotContentType string
	api := &fakeObjectAPI{
		putObjectFunc: func(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
			gotKey = object
			gotContentType = opts.ContentType
			return minio.UploadInfo{}, nil
		},
	}
	client, err := newClientWithAPI(context.Background(), api, "catalog")
	if err != nil {
		t.Fatalf("newClientWithAPI: %v", err)
	}

	payload := []byte("content")
	err = client.Put(context.Background(), "entity-id", "object.mp4", bytes.NewReader(payload), int64(len(payload)), "video/mp4")
	if err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if gotKey != "entity-id/object.mp4" {
		t.Fatalf("unexpected object key %q", gotKey)
	}
	if gotContentType != "video/mp4" {
		t.Fatalf("unexpected content type %q", gotContentType)
	}
}

func TestExistsMapsNoSuchKey(t *testing.T) {
	api := &fakeObjectAPI{
		statObjectFunc: func(ctx context.Context, bucket, object string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
			return minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"}
		},
	}
	client, err := newClientWithAPI(context.Background(), api, "catalog")
	if err != nil {
		t.Fatalf("newClientWithAPI: %v", err)
	}

	exists, err := client.Exists(context.Background(), "dir", "missing.jpg")
	if err != nil {
		t.Fatalf("Exists returned error: %v", err)
	}
	if exists {
		t.Fatal("expected missing object to report false")
	}
}

func TestPutPropagatesFailure(t *testing.T) {
	api := &fakeObjectAPI{
		putObjectFunc: func(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
			return minio.UploadInfo{}, errors.New("connection reset")
		},
	}
	client, err := newClientWithAPI(context.Background(), api, "catalog")
	if err != nil {
		t.Fatalf("newClientWithAPI: %v", err)
	}

	err = client.Put(context.Background(), "dir", "file.mp4", bytes.NewReader(nil), 0, "video/mp4")
	if err == nil {
		t.Fatal("expected upload failure to propagate")
	}
}
