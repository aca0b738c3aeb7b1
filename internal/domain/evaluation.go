package domain

import "time"

type Evaluation struct {
	ID             int64      `json:"id" db:"id"`
	UserID         int64      `json:"user_id" db:"user_id"`
	TrainingID     *int64     `json:"training_id,omitempty" db:"training_id"`
	ProgrammeTitle *string    `json:"programme_title,omitempty" db:"programme_title"`
	ProgrammeDate  *time.Time `json:"programme_date,omitempty" db:"programme_date"`

	ContentRating   *int `json:"content_rating,omitempty" db:"content_rating"`
	DeliveryRating  *int `json:"delivery_rating,omitempty" db:"delivery_rating"`
	RelevanceRating *int `json:"relevance_rating,omitempty" db:"relevance_rating"`

	KnowledgeGained *string `json:"knowledge_gained,omitempty" db:"knowledge_gained"`
	ApplicationPlan *string `json:"application_plan,omitempty" db:"application_plan"`
	Suggestions     *string `json:"suggestions,omitempty" db:"suggestions"`

	Status         EvaluationStatus `json:"status" db:"status"`
	DueDate        *time.Time       `json:"due_date,omitempty" db:"due_date"`
	SubmittedDate  *time.Time       `json:"submitted_date,omitempty" db:"submitted_date"`
	CompletionDate *time.Time       `json:"completion_date,omitempty" db:"completion_date"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (e *Evaluation) Title() string {
	if e.ProgrammeTitle != nil && *e.ProgrammeTitle != "" {
		return *e.ProgrammeTitle
	}
	return "evaluation #" + itoa(e.ID)
}

type EvaluationFilter struct {
	Status *EvaluationStatus
	UserID *int64
}

// SubmitEvaluationInput carries a full submission. With EvaluationID set the
// existing row is revised in place.
type SubmitEvaluationInput struct {
	EvaluationID    *int64  `json:"evaluation_id,omitempty"`
	TrainingID      *int64  `json:"training_id,omitempty"`
	ProgrammeTitle  *string `json:"programme_title,omitempty" validate:"omitempty,max=255"`
	ProgrammeDate   *string `json:"programme_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ContentRating   int     `json:"content_rating" validate:"required,min=1,max=5"`
	DeliveryRating  int     `json:"delivery_rating" validate:"required,min=1,max=5"`
	RelevanceRating int     `json:"relevance_rating" validate:"required,min=1,max=5"`
	KnowledgeGained string  `json:"knowledge_gained" validate:"required"`
	ApplicationPlan string  `json:"application_plan" validate:"required"`
	Suggestions     string  `json:"suggestions" validate:"required"`
}

type AssignEvaluationInput struct {
	UserID         int64   `json:"user_id" validate:"required,gt=0"`
	TrainingID     *int64  `json:"training_id,omitempty"`
	ProgrammeTitle *string `json:"programme_title,omitempty" validate:"omitempty,max=255"`
	DueDate        *string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type EvaluationStatusInput struct {
	Status   EvaluationStatus `json:"status" validate:"required,oneof=completed"`
	Comments *string          `json:"comments,omitempty"`
}
