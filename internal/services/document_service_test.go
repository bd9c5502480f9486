package services

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDocumentService(t *testing.T) (*DocumentService, string) {
	t.Helper()
	root := t.TempDir()
	return NewDocumentService(NewLocalStorage(root)), root
}

func pdfInput(name string, size int) *UploadInput {
	return &UploadInput{
		Filename:    name,
		ContentType: "application/pdf",
		Size:        int64(size),
		Body:        bytes.NewReader(bytes.Repeat([]byte("a"), size)),
	}
}

func TestDocumentService_UploadAcceptsPDF(t *testing.T) {
	svc, root := newTestDocumentService(t)
	userID := uuid.New()

	meta, err := svc.Upload(context.Background(), userID, pdfInput("transcript.PDF", 1<<20), "", "")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^document-\d+-\d{9}\.pdf$`), meta.ID)
	assert.Equal(t, "transcript.PDF", meta.Name)
	assert.Equal(t, "Other", meta.Type)
	assert.Equal(t, "application/pdf", meta.MimeType)
	assert.EqualValues(t, 1<<20, meta.Size)

	st, err := os.Stat(filepath.Join(root, userID.String(), meta.ID))
	require.NoError(t, err)
	assert.EqualValues(t, 1<<20, st.Size())
}

func TestDocumentService_UploadRejectsUnsupportedType(t *testing.T) {
	svc, _ := newTestDocumentService(t)
	in := &UploadInput{Filename: "notes.txt", ContentType: "text/plain", Size: 3, Body: bytes.NewReader([]byte("abc"))}

	_, err := svc.Upload(context.Background(), uuid.New(), in, "", "")
	assert.ErrorIs(t, err, ErrUnsupportedMediaType)
}

func TestDocumentService_UploadRejectsOversize(t *testing.T) {
	svc, root := newTestDocumentService(t)
	userID := uuid.New()

	_, err := svc.Upload(context.Background(), userID, pdfInput("big.pdf", 11<<20), "", "")
	assert.ErrorIs(t, err, ErrPayloadTooLarge)

	// Declared size lies; the copy limit still applies.
	in := pdfInput("big.pdf", 11<<20)
	in.Size = 1024
	_, err = svc.Upload(context.Background(), userID, in, "", "")
	assert.ErrorIs(t, err, ErrPayloadTooLarge)

	entries, _ := os.ReadDir(filepath.Join(root, userID.String()))
	assert.Empty(t, entries)
}

func TestDocumentService_UploadRequiresFile(t *testing.T) {
	svc, _ := newTestDocumentService(t)
	_, err := svc.Upload(context.Background(), uuid.New(), nil, "", "")
	assert.ErrorIs(t, err, ErrNoFile)
}

func TestDocumentService_ExtensionFallsBackToMimeType(t *testing.T) {
	svc, _ := newTestDocumentService(t)
	in := &UploadInput{Filename: "passport", ContentType: "image/png", Size: 4, Body: bytes.NewReader([]byte("png!"))}

	meta, err := svc.Upload(context.Background(), uuid.New(), in, "Passport", "My passport")
	require.NoError(t, err)
	assert.Regexp(t, `\.png$`, meta.ID)
	assert.Equal(t, "Passport", meta.Type)
	assert.Equal(t, "My passport", meta.Name)
}

func TestDocumentService_OpenAndDelete(t *testing.T) {
	svc, _ := newTestDocumentService(t)
	ctx := context.Background()
	userID := uuid.New()

	meta, err := svc.Upload(ctx, userID, pdfInput("cv.pdf", 64), "CV", "")
	require.NoError(t, err)

	rc, info, err := svc.Open(ctx, userID, meta.ID)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Len(t, body, 64)
	assert.EqualValues(t, 64, info.Size)
	assert.Equal(t, "application/pdf", info.ContentType)

	_, _, err = svc.Open(ctx, uuid.New(), meta.ID)
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	require.NoError(t, svc.Delete(ctx, userID, meta.ID))
	_, _, err = svc.Open(ctx, userID, meta.ID)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, userID, meta.ID), ErrDocumentNotFound)
}

func TestDocumentService_RejectsTraversalIDs(t *testing.T) {
	svc, root := newTestDocumentService(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.pdf"), []byte("x"), 0o644))

	for _, id := range []string{"", ".", "..", "../secret.pdf", "a/b.pdf", `..\secret.pdf`} {
		_, _, err := svc.Open(ctx, userID, id)
		assert.ErrorIs(t, err, ErrDocumentNotFound, id)
		assert.ErrorIs(t, svc.Delete(ctx, userID, id), ErrDocumentNotFound, id)
	}

	_, err := os.Stat(filepath.Join(root, "secret.pdf"))
	assert.NoError(t, err)
}
