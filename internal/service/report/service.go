package report

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/2023189465/smaforms-sub001/internal/domain"
	"github.com/2023189465/smaforms-sub001/internal/pkg/i18n"
	"github.com/2023189465/smaforms-sub001/internal/repository"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	dateLayout  = "2006-01-02"
)

var trainingHeaders = []string{
	"ID", "Reference No.", "Programme", "Venue", "Organiser", "Start Date", "End Date", "Fee (RM)",
	"Requestor", "Position", "Department", "Status", "HOD Decision", "Budget", "Credit Hours", "GM Decision", "Submitted",
}

var gcrHeaders = []string{
	"ID", "Year", "Applicant", "Position", "Department", "Days Requested", "GM Days Approved",
	"Employee ID", "Total Balance", "GC Days Approved", "Remaining Days", "Status", "Finalised", "Submitted",
}

var reportRoles = []domain.Role{domain.RoleHR, domain.RoleGM}

type Service interface {
	TrainingWorkbook(ctx context.Context, actor domain.Actor, status *domain.TrainingStatus, locale string) (*excelize.File, string, error)
	GCRWorkbook(ctx context.Context, actor domain.Actor, year *int, locale string) (*excelize.File, string, error)
}

type service struct {
	trainingRepo repository.TrainingRepository
	gcrRepo      repository.GCRRepository
	now          func() time.Time
}

func NewService(trainingRepo repository.TrainingRepository, gcrRepo repository.GCRRepository) Service {
	return &service{
		trainingRepo: trainingRepo,
		gcrRepo:      gcrRepo,
		now:          time.Now,
	}
}

func (s *service) TrainingWorkbook(ctx context.Context, actor domain.Actor, status *domain.TrainingStatus, locale string) (*excelize.File, string, error) {
	if !actor.Allows(reportRoles...) {
		return nil, "", domain.ErrForbidden
	}
	apps, err := s.trainingRepo.ListAll(ctx, domain.TrainingFilter{Status: status})
	if err != nil {
		return nil, "", err
	}

	f, sheet, err := newWorkbook("Training", trainingHeaders)
	if err != nil {
		return nil, "", err
	}

	for i, app := range apps {
		row := []any{
			app.ID, deref(app.ReferenceNumber), app.ProgrammeTitle, app.Venue, app.Organiser,
			app.StartDate.Format(dateLayout), formatDate(app.EndDate), app.Fee,
			app.RequestorName, app.RequestorPosition, app.RequestorDepartment,
			i18n.Translate(locale, app.Status.Meta().LabelKey),
			derefString(app.HODDecision), deref(app.BudgetStatus), derefFloat(app.CreditHours),
			derefString(app.GMDecision), app.CreatedAt.Format(dateLayout),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, "", err
		}
	}

	filename := fmt.Sprintf("training_applications_%s.xlsx", s.now().Format("20060102"))
	return f, filename, nil
}

func (s *service) GCRWorkbook(ctx context.Context, actor domain.Actor, year *int, locale string) (*excelize.File, string, error) {
	if !actor.Allows(reportRoles...) {
		return nil, "", domain.ErrForbidden
	}
	apps, err := s.gcrRepo.ListAll(ctx, domain.GCRFilter{Year: year})
	if err != nil {
		return nil, "", err
	}

	f, sheet, err := newWorkbook("GCR", gcrHeaders)
	if err != nil {
		return nil, "", err
	}

	for i, app := range apps {
		row := []any{
			app.ID, app.Year, app.ApplicantName, app.Position, app.Department, app.DaysRequested,
			derefInt(app.GMDaysApproved), deref(app.EmployeeID), derefInt(app.TotalDaysBalance),
			derefInt(app.GCDaysApproved), derefInt(app.RemainingDays),
			i18n.Translate(locale, app.Status.Meta().LabelKey),
			formatDate(app.FinalizedDate), app.CreatedAt.Format(dateLayout),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, "", err
		}
	}

	label := "all"
	if year != nil {
		label = fmt.Sprint(*year)
	}
	return f, fmt.Sprintf("gcr_applications_%s.xlsx", label), nil
}

func newWorkbook(sheet string, headers []string) (*excelize.File, string, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, "", err
	}

	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, "", err
		}
		_ = f.SetColWidth(sheet, col, col, 18)
	}

	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, "", err
	}
	return f, sheet, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefString[T ~string](v *T) string {
	if v == nil {
		return ""
	}
	return string(*v)
}

func derefInt(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}

func derefFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
