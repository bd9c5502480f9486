package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

var ErrObjectNotFound = errors.New("object not found")

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Size        int64
	ContentType string
}

// ObjectStorage stores documents under slash-separated keys of the form
// "<userID>/<documentID>".
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	Location(key string) string
}

// LocalStorage keeps objects on the local filesystem below root.
type LocalStorage struct {
	root string
}

func NewLocalStorage(root string) *LocalStorage {
	return &LocalStorage{root: root}
}

func (s *LocalStorage) path(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

func (s *LocalStorage) Put(_ context.Context, key, _ string, r io.Reader) (int64, error) {
	p := s.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create upload directory: %w", err)
	}

	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(p)
		return 0, fmt.Errorf("failed to write file: %w", err)
	}
	return n, nil
}

func (s *LocalStorage) Open(_ context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	f, err := os.Open(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ObjectInfo{}, ErrObjectNotFound
		}
		return nil, ObjectInfo{}, err
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, err
	}
	if st.IsDir() {
		f.Close()
		return nil, ObjectInfo{}, ErrObjectNotFound
	}

	return f, ObjectInfo{Size: st.Size(), ContentType: mimeForExtension(filepath.Ext(key))}, nil
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	p := s.path(key)
	st, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrObjectNotFound
		}
		return err
	}
	if st.IsDir() {
		return ErrObjectNotFound
	}
	return os.Remove(p)
}

func (s *LocalStorage) Location(key string) string {
	return filepath.ToSlash(s.path(key))
}

// GCSStorage keeps objects in a Google Cloud Storage bucket.
type GCSStorage struct {
	client *storage.Client
	bucket string
}

// NewGCSClient creates a storage client. credentials may be a JSON key, a path
// to a key file, or empty for application default credentials.
func NewGCSClient(ctx context.Context, credentials string) (*storage.Client, error) {
	switch {
	case credentials == "":
		return storage.NewClient(ctx)
	case strings.HasPrefix(strings.TrimSpace(credentials), "{"):
		return storage.NewClient(ctx, option.WithCredentialsJSON([]byte(credentials)))
	default:
		return storage.NewClient(ctx, option.WithCredentialsFile(credentials))
	}
}

func NewGCSStorage(client *storage.Client, bucket string) *GCSStorage {
	return &GCSStorage{client: client, bucket: bucket}
}

func (s *GCSStorage) Put(ctx context.Context, key, contentType string, r io.Reader) (int64, error) {
	wc := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0

	n, err := io.Copy(wc, r)
	if err != nil {
		_ = wc.Close()
		return 0, fmt.Errorf("failed to upload object: %w", err)
	}
	if err := wc.Close(); err != nil {
		return 0, fmt.Errorf("failed to finalize object: %w", err)
	}
	return n, nil
}

func (s *GCSStorage) Open(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	rc, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, ObjectInfo{}, ErrObjectNotFound
		}
		return nil, ObjectInfo{}, err
	}
	return rc, ObjectInfo{Size: rc.Attrs.Size, ContentType: rc.Attrs.ContentType}, nil
}

func (s *GCSStorage) Delete(ctx context.Context, key string) error {
	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return ErrObjectNotFound
	}
	return err
}

func (s *GCSStorage) Location(key string) string {
	return fmt.Sprintf("gs://%s/%s", s.bucket, key)
}
