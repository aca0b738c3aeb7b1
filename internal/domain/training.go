package domain

import "time"

type TrainingApplication struct {
	ID              int64   `json:"id" db:"id"`
	ReferenceNumber *string `json:"reference_number,omitempty" db:"reference_number"`
	UserID          int64   `json:"user_id" db:"user_id"`

	ProgrammeTitle string     `json:"programme_title" db:"programme_title"`
	Venue          string     `json:"venue" db:"venue"`
	Organiser      string     `json:"organiser" db:"organiser"`
	StartDate      time.Time  `json:"start_date" db:"start_date"`
	EndDate        *time.Time `json:"end_date,omitempty" db:"end_date"`
	StartTime      *string    `json:"start_time,omitempty" db:"start_time"`
	EndTime        *string    `json:"end_time,omitempty" db:"end_time"`
	Fee            float64    `json:"fee" db:"fee"`

	RequestorName       string `json:"requestor_name" db:"requestor_name"`
	RequestorPosition   string `json:"requestor_position" db:"requestor_position"`
	RequestorDepartment string `json:"requestor_department" db:"requestor_department"`
	Justification       string `json:"justification" db:"justification"`

	Status TrainingStatus `json:"status" db:"status"`

	HODID       *int64       `json:"hod_id,omitempty" db:"hod_id"`
	HODDecision *HODDecision `json:"hod_decision,omitempty" db:"hod_decision"`
	HODComments *string      `json:"hod_comments,omitempty" db:"hod_comments"`
	HODDate     *time.Time   `json:"hod_date,omitempty" db:"hod_date"`

	HRID           *int64     `json:"hr_id,omitempty" db:"hr_id"`
	HRComments     *string    `json:"hr_comments,omitempty" db:"hr_comments"`
	BudgetStatus   *string    `json:"budget_status,omitempty" db:"budget_status"`
	BudgetComments *string    `json:"budget_comments,omitempty" db:"budget_comments"`
	CreditHours    *float64   `json:"credit_hours,omitempty" db:"credit_hours"`
	SignatureData  *string    `json:"signature_data,omitempty" db:"signature_data"`
	HRDate         *time.Time `json:"hr_date,omitempty" db:"hr_date"`

	GMID       *int64      `json:"gm_id,omitempty" db:"gm_id"`
	GMDecision *GMDecision `json:"gm_decision,omitempty" db:"gm_decision"`
	GMComments *string     `json:"gm_comments,omitempty" db:"gm_comments"`
	GMDate     *time.Time  `json:"gm_date,omitempty" db:"gm_date"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Documents []TrainingDocument `json:"documents,omitempty" db:"-"`
}

// DisplayRef is the reference number once HR has assigned one, otherwise
// the row id.
func (a *TrainingApplication) DisplayRef() string {
	if a.ReferenceNumber != nil && *a.ReferenceNumber != "" {
		return *a.ReferenceNumber
	}
	return "#" + itoa(a.ID)
}

type HODDecision string

const (
	HODRecommended    HODDecision = "recommended"
	HODNotRecommended HODDecision = "not_recommended"
)

type GMDecision string

const (
	GMApproved GMDecision = "approved"
	GMRejected GMDecision = "rejected"
)

type TrainingFilter struct {
	Status *TrainingStatus
	UserID *int64
}

type SubmitTrainingInput struct {
	ProgrammeTitle      string  `json:"programme_title" validate:"required,max=255"`
	Venue               string  `json:"venue" validate:"required,max=255"`
	Organiser           string  `json:"organiser" validate:"required,max=255"`
	StartDate           string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate             *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime           *string `json:"start_time,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime             *string `json:"end_time,omitempty" validate:"omitempty,datetime=15:04"`
	Fee                 float64 `json:"fee" validate:"gte=0"`
	RequestorName       string  `json:"requestor_name" validate:"required,max=150"`
	RequestorPosition   string  `json:"requestor_position" validate:"required,max=150"`
	RequestorDepartment string  `json:"requestor_department" validate:"required,max=150"`
	Justification       string  `json:"justification" validate:"required"`
}

type HODDecisionInput struct {
	Decision HODDecision `json:"decision" validate:"required,oneof=recommended not_recommended"`
	Comments string      `json:"comments" validate:"required"`
}

type HRReviewInput struct {
	ReferenceNumber string   `json:"reference_number" validate:"required,max=50"`
	Comments        string   `json:"comments" validate:"required"`
	BudgetStatus    string   `json:"budget_status" validate:"required,oneof=yes no"`
	BudgetComments  *string  `json:"budget_comments,omitempty"`
	CreditHours     *float64 `json:"credit_hours" validate:"required,gte=0"`
	SignatureData   string   `json:"signature_data" validate:"required"`
}

type GMDecisionInput struct {
	Decision GMDecision `json:"decision" validate:"required,oneof=approved rejected"`
	Comments *string    `json:"comments,omitempty"`
	GMDate   *string    `json:"gm_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// The records below are what a stage writes. From guards the conditional
// update; the repository fails with ErrConcurrentModification when the row
// has already moved on.

type HODDecisionRecord struct {
	From      TrainingStatus
	To        TrainingStatus
	HODID     int64
	Decision  HODDecision
	Comments  string
	DecidedAt time.Time
}

type HRReviewRecord struct {
	From            TrainingStatus
	To              TrainingStatus
	HRID            int64
	ReferenceNumber string
	Comments        *string
	BudgetStatus    string
	BudgetComments  *string
	CreditHours     *float64
	SignatureData   string
	ReviewedAt      time.Time
}

type GMDecisionRecord struct {
	From     TrainingStatus
	To       TrainingStatus
	GMID     int64
	Decision GMDecision
	Comments *string
	GMDate   time.Time
}
