package domain

import "time"

type ApplicationType string

const (
	AppTraining   ApplicationType = "training"
	AppGCR        ApplicationType = "gcr"
	AppEvaluation ApplicationType = "evaluation"
)

type NotificationKind string

const (
	NotifSubmission NotificationKind = "submission"
	NotifReview     NotificationKind = "review"
	NotifApproval   NotificationKind = "approval"
	NotifRejection  NotificationKind = "rejection"
)

type Notification struct {
	ID              int64            `json:"id" db:"id"`
	UserID          int64            `json:"user_id" db:"user_id"`
	ApplicationType ApplicationType  `json:"application_type" db:"application_type"`
	ApplicationID   int64            `json:"application_id" db:"application_id"`
	Message         string           `json:"message" db:"message"`
	Kind            NotificationKind `json:"notification_type" db:"notification_type"`
	IsRead          bool             `json:"is_read" db:"is_read"`
	ReadAt          *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
}
