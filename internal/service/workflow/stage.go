package workflow

import (
	"fmt"
	"time"

	"github.com/2023189465/smaforms-sub001/internal/domain"
)

// status is satisfied by domain.TrainingStatus and domain.GCRStatus, whose
// transition tables are the single source of legal moves.
type status[S any] interface {
	~string
	CanTransitionTo(next S) bool
}

// stage is one approval step: who may act and on which status. The tables
// in training.go and gcr.go list every stage of each workflow.
type stage[S status[S]] struct {
	action string
	roles  []domain.Role
	from   S
}

// authorize runs before anything is loaded so a wrong role never learns
// whether the application exists.
func (st stage[S]) authorize(actor domain.Actor) error {
	if !actor.Allows(st.roles...) {
		return fmt.Errorf("%s: %w", st.action, domain.ErrForbidden)
	}
	return nil
}

func (st stage[S]) expect(current S) error {
	if current != st.from {
		return domain.InvalidState(string(st.from), string(current))
	}
	return nil
}

func (st stage[S]) target(next S) (S, error) {
	if !st.from.CanTransitionTo(next) {
		return "", fmt.Errorf("%s: %s to %s is not a declared transition", st.action, st.from, next)
	}
	return next, nil
}

func (st stage[S]) historyEntry(appType domain.ApplicationType, appID int64, actor domain.Actor, comments *string) *domain.HistoryEntry {
	return &domain.HistoryEntry{
		ApplicationType: appType,
		ApplicationID:   appID,
		Action:          st.action,
		PerformedBy:     actor.ID,
		Comments:        nonEmpty(comments),
	}
}

// canRead allows the owner and every role that takes part in approvals.
func canRead(actor domain.Actor, ownerID int64) bool {
	return actor.ID == ownerID || actor.Allows(domain.RoleHOD, domain.RoleHR, domain.RoleGM)
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "datetime", "must match the format "+dateLayout)
	}
	return t, nil
}

func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

const dateLayout = "2006-01-02"
