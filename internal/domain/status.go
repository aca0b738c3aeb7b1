package domain

// StatusMeta is the single source for how a workflow status is shown.
// LabelKey resolves through the locale files.
type StatusMeta struct {
	LabelKey string `json:"label_key"`
	Badge    string `json:"badge"`
	Terminal bool   `json:"terminal"`
}

const (
	BadgeSecondary = "secondary"
	BadgeWarning   = "warning"
	BadgeInfo      = "info"
	BadgePrimary   = "primary"
	BadgeSuccess   = "success"
	BadgeDanger    = "danger"
)

type TrainingStatus string

const (
	TrainingPendingSubmission TrainingStatus = "pending_submission"
	TrainingPendingHOD        TrainingStatus = "pending_hod"
	TrainingPendingHR         TrainingStatus = "pending_hr"
	TrainingPendingGM         TrainingStatus = "pending_gm"
	TrainingApproved          TrainingStatus = "approved"
	TrainingRejected          TrainingStatus = "rejected"
)

var trainingStatusOrder = []TrainingStatus{
	TrainingPendingSubmission,
	TrainingPendingHOD,
	TrainingPendingHR,
	TrainingPendingGM,
	TrainingApproved,
	TrainingRejected,
}

var trainingStatusMeta = map[TrainingStatus]StatusMeta{
	TrainingPendingSubmission: {LabelKey: "training.pending_submission", Badge: BadgeSecondary},
	TrainingPendingHOD:        {LabelKey: "training.pending_hod", Badge: BadgeWarning},
	TrainingPendingHR:         {LabelKey: "training.pending_hr", Badge: BadgeInfo},
	TrainingPendingGM:         {LabelKey: "training.pending_gm", Badge: BadgePrimary},
	TrainingApproved:          {LabelKey: "training.approved", Badge: BadgeSuccess, Terminal: true},
	TrainingRejected:          {LabelKey: "training.rejected", Badge: BadgeDanger, Terminal: true},
}

var trainingTransitions = map[TrainingStatus][]TrainingStatus{
	TrainingPendingSubmission: {TrainingPendingHOD},
	TrainingPendingHOD:        {TrainingPendingHR, TrainingRejected},
	TrainingPendingHR:         {TrainingPendingGM},
	TrainingPendingGM:         {TrainingApproved, TrainingRejected},
}

func TrainingStatuses() []TrainingStatus {
	return append([]TrainingStatus(nil), trainingStatusOrder...)
}

func (s TrainingStatus) IsValid() bool {
	_, ok := trainingStatusMeta[s]
	return ok
}

func (s TrainingStatus) Meta() StatusMeta {
	return trainingStatusMeta[s]
}

func (s TrainingStatus) IsTerminal() bool {
	return trainingStatusMeta[s].Terminal
}

func (s TrainingStatus) CanTransitionTo(next TrainingStatus) bool {
	for _, allowed := range trainingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type GCRStatus string

const (
	GCRPendingSubmission GCRStatus = "pending_submission"
	GCRPendingHR1        GCRStatus = "pending_hr1"
	GCRPendingGM         GCRStatus = "pending_gm"
	GCRPendingHR2        GCRStatus = "pending_hr2"
	GCRPendingHR3        GCRStatus = "pending_hr3"
	GCRPendingGMFinal    GCRStatus = "pending_gm_final"
	GCRApproved          GCRStatus = "approved"
	GCRRejected          GCRStatus = "rejected"
)

var gcrStatusOrder = []GCRStatus{
	GCRPendingSubmission,
	GCRPendingHR1,
	GCRPendingGM,
	GCRPendingHR2,
	GCRPendingHR3,
	GCRPendingGMFinal,
	GCRApproved,
	GCRRejected,
}

var gcrStatusMeta = map[GCRStatus]StatusMeta{
	GCRPendingSubmission: {LabelKey: "gcr.pending_submission", Badge: BadgeSecondary},
	GCRPendingHR1:        {LabelKey: "gcr.pending_hr1", Badge: BadgeWarning},
	GCRPendingGM:         {LabelKey: "gcr.pending_gm", Badge: BadgePrimary},
	GCRPendingHR2:        {LabelKey: "gcr.pending_hr2", Badge: BadgeInfo},
	GCRPendingHR3:        {LabelKey: "gcr.pending_hr3", Badge: BadgeInfo},
	GCRPendingGMFinal:    {LabelKey: "gcr.pending_gm_final", Badge: BadgePrimary},
	GCRApproved:          {LabelKey: "gcr.approved", Badge: BadgeSuccess, Terminal: true},
	GCRRejected:          {LabelKey: "gcr.rejected", Badge: BadgeDanger, Terminal: true},
}

var gcrTransitions = map[GCRStatus][]GCRStatus{
	GCRPendingSubmission: {GCRPendingHR1},
	GCRPendingHR1:        {GCRPendingGM},
	GCRPendingGM:         {GCRPendingHR2, GCRRejected},
	GCRPendingHR2:        {GCRPendingHR3},
	GCRPendingHR3:        {GCRPendingGMFinal},
	GCRPendingGMFinal:    {GCRApproved},
}

func GCRStatuses() []GCRStatus {
	return append([]GCRStatus(nil), gcrStatusOrder...)
}

func (s GCRStatus) IsValid() bool {
	_, ok := gcrStatusMeta[s]
	return ok
}

func (s GCRStatus) Meta() StatusMeta {
	return gcrStatusMeta[s]
}

func (s GCRStatus) IsTerminal() bool {
	return gcrStatusMeta[s].Terminal
}

func (s GCRStatus) CanTransitionTo(next GCRStatus) bool {
	for _, allowed := range gcrTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type EvaluationStatus string

const (
	EvaluationPending   EvaluationStatus = "pending"
	EvaluationCompleted EvaluationStatus = "completed"

	// legacy rows written before "completed" was settled on
	evaluationSubmittedLegacy = "submitted"
)

var evaluationStatusOrder = []EvaluationStatus{EvaluationPending, EvaluationCompleted}

var evaluationStatusMeta = map[EvaluationStatus]StatusMeta{
	EvaluationPending:   {LabelKey: "evaluation.pending", Badge: BadgeWarning},
	EvaluationCompleted: {LabelKey: "evaluation.completed", Badge: BadgeSuccess, Terminal: true},
}

func EvaluationStatuses() []EvaluationStatus {
	return append([]EvaluationStatus(nil), evaluationStatusOrder...)
}

// ParseEvaluationStatus folds the legacy "submitted" literal into completed.
func ParseEvaluationStatus(s string) EvaluationStatus {
	if s == evaluationSubmittedLegacy {
		return EvaluationCompleted
	}
	return EvaluationStatus(s)
}

// StoredValues lists the column literals that read back as s.
func (s EvaluationStatus) StoredValues() []string {
	if s == EvaluationCompleted {
		return []string{string(EvaluationCompleted), evaluationSubmittedLegacy}
	}
	return []string{string(s)}
}

func (s EvaluationStatus) IsValid() bool {
	_, ok := evaluationStatusMeta[s]
	return ok
}

func (s EvaluationStatus) Meta() StatusMeta {
	return evaluationStatusMeta[s]
}

// Scan normalizes the stored value on read.
func (s *EvaluationStatus) Scan(src any) error {
	switch v := src.(type) {
	case string:
		*s = ParseEvaluationStatus(v)
	case []byte:
		*s = ParseEvaluationStatus(string(v))
	case nil:
		*s = ""
	default:
		return &scanError{target: "EvaluationStatus", value: src}
	}
	return nil
}
