package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/2023189465/smaforms-sub001/internal/middleware"
	"github.com/2023189465/smaforms-sub001/internal/service/document"
)

type DocumentHandler struct {
	documentService document.Service
}

func NewDocumentHandler(documentService document.Service) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	applicationID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}

	reader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer reader.Close()

	doc, err := h.documentService.Upload(c.UserContext(), middleware.GetActor(c), applicationID, document.UploadInput{
		FileName: file.Filename,
		Size:     file.Size,
		Reader:   reader,
	})
	if err != nil {
		return err
	}

	return ok(c, fiber.StatusCreated, "Document uploaded", doc)
}

func (h *DocumentHandler) List(c *fiber.Ctx) error {
	applicationID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	docs, err := h.documentService.List(c.UserContext(), middleware.GetActor(c), applicationID)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", docs)
}

func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	dl, err := h.documentService.Download(c.UserContext(), middleware.GetActor(c), id)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, dl.Document.MimeType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", dl.Document.FileName))

	// fasthttp closes the body once it has been streamed
	return c.SendStream(dl.Body, int(dl.Document.FileSize))
}

func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.documentService.Delete(c.UserContext(), middleware.GetActor(c), id); err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "Document deleted", nil)
}
