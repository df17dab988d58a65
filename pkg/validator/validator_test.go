package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendaclinic/scheduling-api/internal/model"
	apperrors "github.com/agendaclinic/scheduling-api/pkg/errors"
)

func validRequest() *model.UpsertAppointmentRequest {
	return &model.UpsertAppointmentRequest{
		PatientID: uuid.New().String(),
		DoctorID:  uuid.New().String(),
		Date:      "2025-06-02",
		Time:      "09:00",
	}
}

func TestValidateOK(t *testing.T) {
	v := New()
	assert.Nil(t, v.Validate(validRequest()))
}

func TestValidateReportsAllFields(t *testing.T) {
	v := New()

	negative := int64(-1)
	req := &model.UpsertAppointmentRequest{
		ID:         "not-a-uuid",
		PatientID:  uuid.New().String(),
		Date:       "02/06/2025",
		Time:       "9am",
		PriceCents: &negative,
		// doctor_id missing
	}

	appErr := v.Validate(req)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)

	got := make(map[string]string, len(appErr.Fields))
	for _, f := range appErr.Fields {
		got[f.Field] = f.Message
	}
	assert.Len(t, got, 5)
	assert.Contains(t, got, "id")
	assert.Contains(t, got, "doctor_id")
	assert.Contains(t, got, "date")
	assert.Contains(t, got, "time")
	assert.Contains(t, got, "price_cents")
	assert.Equal(t, "is required", got["doctor_id"])
}

func TestValidateJSONFieldNames(t *testing.T) {
	v := New()

	req := validRequest()
	req.PatientID = ""

	appErr := v.Validate(req)
	require.NotNil(t, appErr)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "patient_id", appErr.Fields[0].Field)
}
