package scheduling

import (
	"time"

	"github.com/google/uuid"

	"github.com/agendaclinic/scheduling-api/internal/model"
	apperrors "github.com/agendaclinic/scheduling-api/pkg/errors"
)

const dateLayout = "2006-01-02"

// upsertRequest is the normalized form of a validated raw request.
// id is uuid.Nil for a create.
type upsertRequest struct {
	id        uuid.UUID
	patientID uuid.UUID
	doctorID  uuid.UUID
	date      time.Time
	slot      string
	price     *int64
}

// normalize turns a raw request into its typed form, accumulating every
// violated field. The struct tags on UpsertAppointmentRequest carry the
// shape rules; parsing here cannot fail for input the validator accepted.
func (s *Service) normalize(req *model.UpsertAppointmentRequest) (*upsertRequest, *apperrors.AppError) {
	if verr := s.validator.Validate(req); verr != nil {
		return nil, verr
	}

	norm := &upsertRequest{
		slot:  req.Time,
		price: req.PriceCents,
	}

	var err error
	if req.ID != "" {
		if norm.id, err = uuid.Parse(req.ID); err != nil {
			return nil, apperrors.NewValidation([]apperrors.FieldError{{Field: "id", Message: "must be a valid identifier"}})
		}
	}
	if norm.patientID, err = uuid.Parse(req.PatientID); err != nil {
		return nil, apperrors.NewValidation([]apperrors.FieldError{{Field: "patient_id", Message: "must be a valid identifier"}})
	}
	if norm.doctorID, err = uuid.Parse(req.DoctorID); err != nil {
		return nil, apperrors.NewValidation([]apperrors.FieldError{{Field: "doctor_id", Message: "must be a valid identifier"}})
	}
	if norm.date, err = time.Parse(dateLayout, req.Date); err != nil {
		return nil, apperrors.NewValidation([]apperrors.FieldError{{Field: "date", Message: "must be a date in YYYY-MM-DD format"}})
	}

	return norm, nil
}

func sameDay(a, b time.Time) bool {
	return a.Format(dateLayout) == b.Format(dateLayout)
}
