package domain

import (
	"strconv"
	"time"
)

const (
	ActionSubmitted        = "Submitted"
	ActionHODDecision      = "HOD Decision"
	ActionHRReview         = "HR Review"
	ActionGMDecision       = "GM Decision"
	ActionHR1Verification  = "HR Verification"
	ActionHR2Recording     = "HR Final Recording"
	ActionLampiranA        = "Lampiran A Verification"
	ActionGMFinalSignature = "GM Final Signature"
	ActionAssigned         = "Assigned"
	ActionRevised          = "Revised"
	ActionStatusOverride   = "Status Override"
)

// HistoryEntry is one row of application_history. The table is shared by
// training and GCR applications and keyed by type and id.
type HistoryEntry struct {
	ID              int64           `json:"id" db:"id"`
	ApplicationType ApplicationType `json:"application_type" db:"application_type"`
	ApplicationID   int64           `json:"application_id" db:"application_id"`
	Action          string          `json:"action" db:"action"`
	PerformedBy     int64           `json:"performed_by" db:"performed_by"`
	PerformerName   *string         `json:"performer_name,omitempty" db:"performer_name"`
	Comments        *string         `json:"comments,omitempty" db:"comments"`
	CreatedAt       time.Time       `json:"timestamp" db:"created_at"`
}

type EvaluationHistoryEntry struct {
	ID            int64     `json:"id" db:"id"`
	EvaluationID  int64     `json:"evaluation_id" db:"evaluation_id"`
	Action        string    `json:"action" db:"action"`
	PerformedBy   int64     `json:"performed_by" db:"performed_by"`
	PerformerName *string   `json:"performer_name,omitempty" db:"performer_name"`
	Comments      *string   `json:"comments,omitempty" db:"comments"`
	CreatedAt     time.Time `json:"timestamp" db:"created_at"`
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
