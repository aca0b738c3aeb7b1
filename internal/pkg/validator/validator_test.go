package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2023189465/smaforms-sub001/internal/domain"
)

func fieldRules(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)

	out := make(map[string]string)
	for _, f := range ve.Fields {
		out[f.Field] = f.Rule
	}
	return out
}

func TestStruct_HRReviewInput(t *testing.T) {
	t.Run("missing budget status", func(t *testing.T) {
		err := Struct(domain.HRReviewInput{ReferenceNumber: "SMA/TRN-2025-001", SignatureData: "sig"})
		rules := fieldRules(t, err)
		assert.Equal(t, "required", rules["budget_status"])
		assert.NotContains(t, rules, "reference_number")
	})

	t.Run("budget status outside enum", func(t *testing.T) {
		err := Struct(domain.HRReviewInput{ReferenceNumber: "X", BudgetStatus: "maybe", SignatureData: "sig"})
		assert.Equal(t, "oneof", fieldRules(t, err)["budget_status"])
	})

	t.Run("comments and credit hours are required", func(t *testing.T) {
		rules := fieldRules(t, Struct(domain.HRReviewInput{ReferenceNumber: "X", BudgetStatus: "yes", SignatureData: "sig"}))
		assert.Equal(t, "required", rules["comments"])
		assert.Equal(t, "required", rules["credit_hours"])
	})

	t.Run("negative credit hours", func(t *testing.T) {
		hours := -1.0
		err := Struct(domain.HRReviewInput{ReferenceNumber: "X", Comments: "ok", BudgetStatus: "yes", CreditHours: &hours, SignatureData: "sig"})
		assert.Equal(t, "gte", fieldRules(t, err)["credit_hours"])
	})

	t.Run("valid", func(t *testing.T) {
		hours := 0.0
		assert.NoError(t, Struct(domain.HRReviewInput{ReferenceNumber: "X", Comments: "ok", BudgetStatus: "yes", CreditHours: &hours, SignatureData: "sig"}))
	})
}

func TestStruct_Dates(t *testing.T) {
	input := domain.SubmitTrainingInput{
		ProgrammeTitle:      "Leadership",
		Venue:               "HQ",
		Organiser:           "INTAN",
		StartDate:           "15/03/2025",
		RequestorName:       "Ali",
		RequestorPosition:   "Officer",
		RequestorDepartment: "Finance",
		Justification:       "Required for promotion",
	}
	assert.Equal(t, "datetime", fieldRules(t, Struct(input))["start_date"])

	input.StartDate = "2025-03-15"
	assert.NoError(t, Struct(input))
}

func TestStruct_Messages(t *testing.T) {
	err := Struct(domain.LoginInput{Email: "nope"})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))

	msgs := make(map[string]string)
	for _, f := range ve.Fields {
		msgs[f.Field] = f.Message
	}
	assert.Equal(t, "must be a valid email address", msgs["email"])
	assert.Equal(t, "is required", msgs["password"])
}
