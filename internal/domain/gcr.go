package domain

import "time"

type GCRApplication struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"user_id" db:"user_id"`
	Year          int       `json:"year" db:"year"`
	ApplicantName string    `json:"applicant_name" db:"applicant_name"`
	Position      string    `json:"position" db:"position"`
	Department    string    `json:"department" db:"department"`
	DaysRequested int       `json:"days_requested" db:"days_requested"`
	Status        GCRStatus `json:"status" db:"status"`

	HR1ID        *int64     `json:"hr1_id,omitempty" db:"hr1_id"`
	HR1Signature *string    `json:"hr1_signature,omitempty" db:"hr1_signature"`
	HR1Date      *time.Time `json:"hr1_date,omitempty" db:"hr1_date"`

	GMID           *int64      `json:"gm_id,omitempty" db:"gm_id"`
	GMDecision     *GMDecision `json:"gm_decision,omitempty" db:"gm_decision"`
	GMDaysApproved *int        `json:"gm_days_approved,omitempty" db:"gm_days_approved"`
	GMComments     *string     `json:"gm_comments,omitempty" db:"gm_comments"`
	GMSignature    *string     `json:"gm_signature,omitempty" db:"gm_signature"`
	GMDate         *time.Time  `json:"gm_date,omitempty" db:"gm_date"`

	HR2ID        *int64     `json:"hr2_id,omitempty" db:"hr2_id"`
	HR2Signature *string    `json:"hr2_signature,omitempty" db:"hr2_signature"`
	HR2Comments  *string    `json:"hr2_comments,omitempty" db:"hr2_comments"`
	HR2Date      *time.Time `json:"hr2_date,omitempty" db:"hr2_date"`

	// Lampiran A
	EmployeeID       *string    `json:"employee_id,omitempty" db:"employee_id"`
	TotalDaysBalance *int       `json:"total_days_balance,omitempty" db:"total_days_balance"`
	GCDaysApproved   *int       `json:"gc_days_approved,omitempty" db:"gc_days_approved"`
	RemainingDays    *int       `json:"remaining_days,omitempty" db:"remaining_days"`
	HR3ID            *int64     `json:"hr3_id,omitempty" db:"hr3_id"`
	HR3Signature     *string    `json:"hr3_signature,omitempty" db:"hr3_signature"`
	HR3Date          *time.Time `json:"hr3_date,omitempty" db:"hr3_date"`

	GMFinalSignature *string    `json:"gm_final_signature,omitempty" db:"gm_final_signature"`
	FinalizedDate    *time.Time `json:"finalized_date,omitempty" db:"finalized_date"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (a *GCRApplication) DisplayRef() string {
	return "GCR #" + itoa(a.ID)
}

// RemainingDays computes the Lampiran A balance. The approved days may not
// exceed the balance, so the result is never negative.
func RemainingDays(totalBalance, daysApproved int) (int, error) {
	ve := &ValidationError{}
	if totalBalance < 0 {
		ve.Add("total_days_balance", "gte", "must not be negative")
	}
	if daysApproved < 0 {
		ve.Add("gc_days_approved", "gte", "must not be negative")
	}
	if daysApproved > totalBalance {
		ve.Add("gc_days_approved", "ltefield", "must not exceed total_days_balance")
	}
	if len(ve.Fields) > 0 {
		return 0, ve
	}
	return totalBalance - daysApproved, nil
}

type GCRFilter struct {
	Status *GCRStatus
	UserID *int64
	Year   *int
}

type SubmitGCRInput struct {
	Year          int    `json:"year" validate:"required,gte=2000,lte=2100"`
	ApplicantName string `json:"applicant_name" validate:"required,max=150"`
	Position      string `json:"position" validate:"required,max=150"`
	Department    string `json:"department" validate:"required,max=150"`
	DaysRequested int    `json:"days_requested" validate:"required,gte=1"`
}

type HR1VerifyInput struct {
	Signature string `json:"signature" validate:"required"`
}

type GCRGMDecisionInput struct {
	Decision     GMDecision `json:"decision" validate:"required,oneof=approved rejected"`
	DaysApproved *int       `json:"gm_days_approved,omitempty" validate:"omitempty,gte=1"`
	Comments     *string    `json:"comments,omitempty"`
	Signature    string     `json:"signature" validate:"required"`
}

type HR2RecordInput struct {
	Signature string  `json:"signature" validate:"required"`
	Comments  *string `json:"comments,omitempty"`
}

type HR3VerifyInput struct {
	EmployeeID       string `json:"employee_id" validate:"required,max=50"`
	TotalDaysBalance *int   `json:"total_days_balance" validate:"required"`
	GCDaysApproved   *int   `json:"gc_days_approved" validate:"required"`
	Signature        string `json:"signature" validate:"required"`
}

type GMFinalizeInput struct {
	Signature     string `json:"signature" validate:"required"`
	FinalizedDate string `json:"finalized_date" validate:"required,datetime=2006-01-02"`
}

type GCRHR1Record struct {
	From, To   GCRStatus
	HRID       int64
	Signature  string
	VerifiedAt time.Time
}

type GCRGMDecisionRecord struct {
	From, To     GCRStatus
	GMID         int64
	Decision     GMDecision
	DaysApproved *int
	Comments     *string
	Signature    string
	DecidedAt    time.Time
}

type GCRHR2Record struct {
	From, To   GCRStatus
	HRID       int64
	Signature  string
	Comments   *string
	RecordedAt time.Time
}

type GCRHR3Record struct {
	From, To         GCRStatus
	HRID             int64
	EmployeeID       string
	TotalDaysBalance int
	GCDaysApproved   int
	RemainingDays    int
	Signature        string
	VerifiedAt       time.Time
}

type GCRFinalRecord struct {
	From, To      GCRStatus
	Signature     string
	FinalizedDate time.Time
}
