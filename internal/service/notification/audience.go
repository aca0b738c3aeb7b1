package notification

import (
	"fmt"

	"github.com/2023189465/smaforms-sub001/internal/domain"
)

const (
	subjectApprovalRequired  = "Approval required"
	subjectSignatureRequired = "Final signature required"
)

// Recipient is one audience for a status change. An empty Role addresses
// the applicant who submitted the application. Subject overrides the
// email subject derived from Kind.
type Recipient struct {
	Role    domain.Role
	Message string
	Kind    domain.NotificationKind
	Subject string
}

func (r Recipient) IsSubmitter() bool {
	return r.Role == ""
}

func (r Recipient) EmailSubject() string {
	if r.Subject != "" {
		return r.Subject
	}
	return subjectFor(r.Kind)
}

func toRoles(roles []domain.Role, message string, kind domain.NotificationKind) []Recipient {
	out := make([]Recipient, 0, len(roles))
	for _, role := range roles {
		out = append(out, Recipient{Role: role, Message: message, Kind: kind})
	}
	return out
}

func toSubmitter(message string, kind domain.NotificationKind) Recipient {
	return Recipient{Message: message, Kind: kind}
}

var hrAndAdmin = []domain.Role{domain.RoleHR, domain.RoleAdmin}

// TrainingRecipients maps a training application that has just moved from
// `from` into app.Status onto the users that must hear about it.
func TrainingRecipients(app *domain.TrainingApplication, from domain.TrainingStatus, reason string) []Recipient {
	ref := app.DisplayRef()
	title := app.ProgrammeTitle

	switch app.Status {
	case domain.TrainingPendingHOD:
		return toRoles([]domain.Role{domain.RoleHOD},
			fmt.Sprintf("New training application %s (%s) from %s needs HOD review", ref, title, app.RequestorName),
			domain.NotifSubmission)

	case domain.TrainingPendingHR:
		out := toRoles(hrAndAdmin,
			fmt.Sprintf("Training application %s (%s) was recommended by HOD and needs HR review", ref, title),
			domain.NotifReview)
		return append(out, toSubmitter(
			fmt.Sprintf("Your training application %s was recommended by HOD and is pending HR review", ref),
			domain.NotifReview))

	case domain.TrainingPendingGM:
		return []Recipient{
			{Role: domain.RoleGM, Message: fmt.Sprintf("Training application %s (%s) needs GM approval", ref, title), Kind: domain.NotifApproval, Subject: subjectApprovalRequired},
			toSubmitter(fmt.Sprintf("Your training application %s has been processed by HR and is pending GM approval", ref), domain.NotifReview),
		}

	case domain.TrainingApproved:
		out := toRoles(hrAndAdmin,
			fmt.Sprintf("Training application %s (%s) was approved by GM", ref, title),
			domain.NotifApproval)
		return append(out, toSubmitter(
			fmt.Sprintf("Your training application %s has been approved", ref),
			domain.NotifApproval))

	case domain.TrainingRejected:
		if from == domain.TrainingPendingHOD {
			return []Recipient{toSubmitter(
				withReason(fmt.Sprintf("Your training application %s was not recommended by HOD", ref), reason),
				domain.NotifRejection)}
		}
		out := toRoles(hrAndAdmin,
			withReason(fmt.Sprintf("Training application %s (%s) was rejected by GM", ref, title), reason),
			domain.NotifRejection)
		return append(out, toSubmitter(
			withReason(fmt.Sprintf("Your training application %s has been rejected", ref), reason),
			domain.NotifRejection))
	}
	return nil
}

// GCRRecipients is the GCR counterpart of TrainingRecipients.
func GCRRecipients(app *domain.GCRApplication, from domain.GCRStatus, reason string) []Recipient {
	ref := app.DisplayRef()

	switch app.Status {
	case domain.GCRPendingHR1:
		return toRoles(hrAndAdmin,
			fmt.Sprintf("New GCR application %s from %s (%d days, %d) needs HR verification", ref, app.ApplicantName, app.DaysRequested, app.Year),
			domain.NotifSubmission)

	case domain.GCRPendingGM:
		return []Recipient{
			{Role: domain.RoleGM, Message: fmt.Sprintf("GCR application %s from %s needs GM decision", ref, app.ApplicantName), Kind: domain.NotifApproval, Subject: subjectApprovalRequired},
			toSubmitter(fmt.Sprintf("Your GCR application %s was verified by HR and is pending GM decision", ref), domain.NotifReview),
		}

	case domain.GCRPendingHR2:
		days := app.DaysRequested
		if app.GMDaysApproved != nil {
			days = *app.GMDaysApproved
		}
		out := toRoles(hrAndAdmin,
			fmt.Sprintf("GCR application %s was approved by GM for %d days and needs final recording", ref, days),
			domain.NotifReview)
		return append(out, toSubmitter(
			fmt.Sprintf("Your GCR application %s was approved by GM for %d days", ref, days),
			domain.NotifApproval))

	case domain.GCRPendingHR3:
		return toRoles(hrAndAdmin,
			fmt.Sprintf("GCR application %s is recorded and needs Lampiran A verification", ref),
			domain.NotifReview)

	case domain.GCRPendingGMFinal:
		return []Recipient{{
			Role:    domain.RoleGM,
			Message: fmt.Sprintf("GCR application %s passed Lampiran A verification and awaits your final signature", ref),
			Kind:    domain.NotifApproval,
			Subject: subjectSignatureRequired,
		}}

	case domain.GCRApproved:
		out := toRoles(hrAndAdmin,
			fmt.Sprintf("GCR application %s from %s has been finalised", ref, app.ApplicantName),
			domain.NotifApproval)
		return append(out, toSubmitter(
			fmt.Sprintf("Your GCR application %s has been approved and finalised", ref),
			domain.NotifApproval))

	case domain.GCRRejected:
		out := toRoles(hrAndAdmin,
			withReason(fmt.Sprintf("GCR application %s from %s was rejected by GM", ref, app.ApplicantName), reason),
			domain.NotifRejection)
		return append(out, toSubmitter(
			withReason(fmt.Sprintf("Your GCR application %s has been rejected", ref), reason),
			domain.NotifRejection))
	}
	return nil
}

func withReason(message, reason string) string {
	if reason == "" {
		return message
	}
	return message + ". Reason: " + reason
}
