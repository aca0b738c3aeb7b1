package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"github.com/2023189465/smaforms-sub001/internal/domain"
	"github.com/2023189465/smaforms-sub001/internal/middleware"
	"github.com/2023189465/smaforms-sub001/internal/service/report"
)

type ReportHandler struct {
	reportService report.Service
	locale        string
}

func NewReportHandler(reportService report.Service, defaultLocale string) *ReportHandler {
	return &ReportHandler{reportService: reportService, locale: defaultLocale}
}

func (h *ReportHandler) Training(c *fiber.Ctx) error {
	var status *domain.TrainingStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.TrainingStatus(raw)
		if !s.IsValid() {
			return middleware.BadRequest("Invalid status")
		}
		status = &s
	}

	f, filename, err := h.reportService.TrainingWorkbook(c.UserContext(), middleware.GetActor(c), status, localeFrom(c, h.locale))
	if err != nil {
		return err
	}
	return sendWorkbook(c, f, filename)
}

func (h *ReportHandler) GCR(c *fiber.Ctx) error {
	var year *int
	if y := c.QueryInt("year", 0); y > 0 {
		year = &y
	}

	f, filename, err := h.reportService.GCRWorkbook(c.UserContext(), middleware.GetActor(c), year, localeFrom(c, h.locale))
	if err != nil {
		return err
	}
	return sendWorkbook(c, f, filename)
}

func sendWorkbook(c *fiber.Ctx, f *excelize.File, filename string) error {
	defer f.Close()

	c.Set(fiber.HeaderContentType, report.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))

	return f.Write(c)
}
