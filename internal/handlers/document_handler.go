package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DocumentHandler struct {
	documents *services.DocumentService
}

func NewDocumentHandler(documents *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// Upload accepts a multipart form with the file in field "document" and
// optional "documentType" and "documentName" fields.
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authorized")
	}

	fh, err := c.FormFile("document")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "No file uploaded")
	}

	f, err := fh.Open()
	if err != nil {
		return serverError(c, "failed to open uploaded file", err)
	}
	defer f.Close()

	meta, err := h.documents.Upload(c.UserContext(), userID, &services.UploadInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	}, c.FormValue("documentType"), c.FormValue("documentName"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoFile):
			return errorJSON(c, fiber.StatusBadRequest, "No file uploaded")
		case errors.Is(err, services.ErrUnsupportedMediaType):
			return errorJSON(c, fiber.StatusUnsupportedMediaType, "Invalid file type. Only PDF, DOC, DOCX, JPEG, and PNG are allowed.")
		case errors.Is(err, services.ErrPayloadTooLarge):
			return errorJSON(c, fiber.StatusRequestEntityTooLarge, "File too large. Maximum size is 10MB.")
		}
		return serverError(c, "document upload failed", err)
	}

	return c.JSON(fiber.Map{"success": true, "document": meta})
}

func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authorized")
	}

	rc, info, err := h.documents.Open(c.UserContext(), userID, c.Params("documentId"))
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Document not found")
		}
		return serverError(c, "failed to open document", err)
	}

	c.Set(fiber.HeaderContentType, info.ContentType)
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+c.Params("documentId")+`"`)
	return c.SendStream(rc, int(info.Size))
}

func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authorized")
	}

	if err := h.documents.Delete(c.UserContext(), userID, c.Params("documentId")); err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Document not found")
		}
		return serverError(c, "failed to delete document", err)
	}

	return c.JSON(dto.MessageResponse{Success: true, Message: "Document deleted successfully"})
}
