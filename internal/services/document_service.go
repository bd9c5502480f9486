package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/dto"
	"github.com/google/uuid"
)

const MaxDocumentSize = 10 * 1024 * 1024

var (
	ErrNoFile               = errors.New("no file uploaded")
	ErrUnsupportedMediaType = errors.New("invalid file type, only PDF, DOC, DOCX, JPEG and PNG are allowed")
	ErrPayloadTooLarge      = errors.New("file exceeds the 10MB limit")
	ErrDocumentNotFound     = errors.New("document not found")
)

// Allowed upload types and the extension used when the original name has none.
var allowedDocumentTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

var safeExt = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

func mimeForExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

// UploadInput is one uploaded file as received from the client.
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type DocumentService struct {
	storage ObjectStorage
	now     func() time.Time
}

func NewDocumentService(storage ObjectStorage) *DocumentService {
	return &DocumentService{storage: storage, now: time.Now}
}

// Upload stores the file under the caller's directory with a generated name.
// documentType defaults to "Other" and documentName to the original filename.
func (s *DocumentService) Upload(ctx context.Context, userID uuid.UUID, in *UploadInput, documentType, documentName string) (*dto.DocumentMeta, error) {
	if in == nil || in.Body == nil || in.Filename == "" {
		return nil, ErrNoFile
	}

	contentType := strings.ToLower(strings.TrimSpace(strings.SplitN(in.ContentType, ";", 2)[0]))
	defaultExt, ok := allowedDocumentTypes[contentType]
	if !ok {
		return nil, ErrUnsupportedMediaType
	}
	if in.Size > MaxDocumentSize {
		return nil, ErrPayloadTooLarge
	}

	documentID, err := s.newDocumentID(in.Filename, defaultExt)
	if err != nil {
		return nil, err
	}
	key := userID.String() + "/" + documentID

	n, err := s.storage.Put(ctx, key, contentType, io.LimitReader(in.Body, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}
	if n > MaxDocumentSize {
		_ = s.storage.Delete(ctx, key)
		return nil, ErrPayloadTooLarge
	}

	if documentType == "" {
		documentType = "Other"
	}
	if documentName == "" {
		documentName = in.Filename
	}

	return &dto.DocumentMeta{
		ID:         documentID,
		Name:       documentName,
		Type:       documentType,
		Path:       s.storage.Location(key),
		Size:       n,
		MimeType:   contentType,
		UploadDate: s.now().UTC(),
	}, nil
}

// Open returns the caller's document. The caller must close the reader.
func (s *DocumentService) Open(ctx context.Context, userID uuid.UUID, documentID string) (io.ReadCloser, ObjectInfo, error) {
	if !validDocumentID(documentID) {
		return nil, ObjectInfo{}, ErrDocumentNotFound
	}
	rc, info, err := s.storage.Open(ctx, userID.String()+"/"+documentID)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil, ObjectInfo{}, ErrDocumentNotFound
		}
		return nil, ObjectInfo{}, fmt.Errorf("failed to open document: %w", err)
	}
	return rc, info, nil
}

func (s *DocumentService) Delete(ctx context.Context, userID uuid.UUID, documentID string) error {
	if !validDocumentID(documentID) {
		return ErrDocumentNotFound
	}
	if err := s.storage.Delete(ctx, userID.String()+"/"+documentID); err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// newDocumentID builds "document-<unix millis>-<9 random digits><ext>".
func (s *DocumentService) newDocumentID(filename, defaultExt string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate document id: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !safeExt.MatchString(ext) {
		ext = defaultExt
	}
	return fmt.Sprintf("document-%d-%09d%s", s.now().UnixMilli(), n.Int64(), ext), nil
}

func validDocumentID(id string) bool {
	if id == "" || id == "." || strings.Contains(id, "..") {
		return false
	}
	return !strings.ContainsAny(id, `/\`+"\x00")
}
