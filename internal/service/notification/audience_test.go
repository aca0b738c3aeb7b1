package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/2023189465/smaforms-sub001/internal/domain"
)

func roles(rs []Recipient) []domain.Role {
	out := make([]domain.Role, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Role)
	}
	return out
}

func TestTrainingRecipients(t *testing.T) {
	app := &domain.TrainingApplication{ID: 7, ProgrammeTitle: "Audit", RequestorName: "Ali"}

	cases := []struct {
		name   string
		status domain.TrainingStatus
		from   domain.TrainingStatus
		want   []domain.Role
	}{
		{"submitted", domain.TrainingPendingHOD, domain.TrainingPendingSubmission, []domain.Role{domain.RoleHOD}},
		{"recommended", domain.TrainingPendingHR, domain.TrainingPendingHOD, []domain.Role{domain.RoleHR, domain.RoleAdmin, ""}},
		{"forwarded", domain.TrainingPendingGM, domain.TrainingPendingHR, []domain.Role{domain.RoleGM, ""}},
		{"approved", domain.TrainingApproved, domain.TrainingPendingGM, []domain.Role{domain.RoleHR, domain.RoleAdmin, ""}},
		{"not recommended", domain.TrainingRejected, domain.TrainingPendingHOD, []domain.Role{""}},
		{"rejected by gm", domain.TrainingRejected, domain.TrainingPendingGM, []domain.Role{domain.RoleHR, domain.RoleAdmin, ""}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := *app
			a.Status = tc.status
			assert.Equal(t, tc.want, roles(TrainingRecipients(&a, tc.from, "")))
		})
	}
}

func TestTrainingRecipients_Reason(t *testing.T) {
	app := &domain.TrainingApplication{ID: 7, Status: domain.TrainingRejected}

	rs := TrainingRecipients(app, domain.TrainingPendingHOD, "budget frozen")
	assert.Len(t, rs, 1)
	assert.True(t, rs[0].IsSubmitter())
	assert.Contains(t, rs[0].Message, "Reason: budget frozen")
	assert.Equal(t, domain.NotifRejection, rs[0].Kind)
}

func TestGCRRecipients(t *testing.T) {
	days := 3
	app := &domain.GCRApplication{ID: 4, ApplicantName: "Siti", DaysRequested: 5, Year: 2025}

	cases := []struct {
		status domain.GCRStatus
		want   []domain.Role
	}{
		{domain.GCRPendingHR1, []domain.Role{domain.RoleHR, domain.RoleAdmin}},
		{domain.GCRPendingGM, []domain.Role{domain.RoleGM, ""}},
		{domain.GCRPendingHR2, []domain.Role{domain.RoleHR, domain.RoleAdmin, ""}},
		{domain.GCRPendingHR3, []domain.Role{domain.RoleHR, domain.RoleAdmin}},
		{domain.GCRPendingGMFinal, []domain.Role{domain.RoleGM}},
		{domain.GCRApproved, []domain.Role{domain.RoleHR, domain.RoleAdmin, ""}},
		{domain.GCRRejected, []domain.Role{domain.RoleHR, domain.RoleAdmin, ""}},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			a := *app
			a.Status = tc.status
			assert.Equal(t, tc.want, roles(GCRRecipients(&a, "", "")))
		})
	}

	t.Run("approved days in message", func(t *testing.T) {
		a := *app
		a.Status = domain.GCRPendingHR2
		a.GMDaysApproved = &days
		rs := GCRRecipients(&a, domain.GCRPendingGM, "")
		assert.Contains(t, rs[len(rs)-1].Message, "for 3 days")
	})

	assert.Nil(t, GCRRecipients(&domain.GCRApplication{Status: domain.GCRPendingSubmission}, "", ""))
}

func TestRecipients_EmailSubject(t *testing.T) {
	training := TrainingRecipients(&domain.TrainingApplication{ID: 9, Status: domain.TrainingPendingGM}, domain.TrainingPendingHR, "")
	assert.Equal(t, domain.RoleGM, training[0].Role)
	assert.Equal(t, domain.NotifApproval, training[0].Kind)
	assert.Equal(t, "Approval required", training[0].EmailSubject())
	assert.Equal(t, "Application update", training[1].EmailSubject())

	gcr := GCRRecipients(&domain.GCRApplication{ID: 4, Status: domain.GCRPendingGM}, domain.GCRPendingHR1, "")
	assert.Equal(t, "Approval required", gcr[0].EmailSubject())

	final := GCRRecipients(&domain.GCRApplication{ID: 4, Status: domain.GCRPendingGMFinal}, domain.GCRPendingHR3, "")
	assert.Equal(t, "Final signature required", final[0].EmailSubject())

	approved := TrainingRecipients(&domain.TrainingApplication{ID: 9, Status: domain.TrainingApproved}, domain.TrainingPendingGM, "")
	for _, r := range approved {
		assert.Equal(t, "Application approved", r.EmailSubject())
	}
}
