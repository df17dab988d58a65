package model

import (
	"time"

	"github.com/google/uuid"
)

type DoctorStatus string

const (
	DoctorStatusActive   DoctorStatus = "active"
	DoctorStatusInactive DoctorStatus = "inactive"
)

// Doctor is always scoped to a single clinic. Availability is stored the way the
// clinic configures it: a weekday range plus one daily working window, with
// appointments cut at a fixed slot interval.
type Doctor struct {
	Base
	ClinicID              uuid.UUID `db:"clinic_id" json:"clinic_id"`
	Name                  string    `db:"name" json:"name"`
	Specialty             string    `db:"specialty" json:"specialty"`
	AppointmentPriceCents int64     `db:"appointment_price_cents" json:"appointment_price_cents"`
	AvailableFromWeekday  int       `db:"available_from_weekday" json:"available_from_weekday"`
	AvailableToWeekday    int       `db:"available_to_weekday" json:"available_to_weekday"`
	AvailableFromTime     string    `db:"available_from_time" json:"available_from_time"`
	AvailableToTime       string    `db:"available_to_time" json:"available_to_time"`
	Status                string    `db:"status" json:"status"`
}

// WorksOn reports whether the doctor's configured weekday range covers the
// given weekday. The range may wrap around the week (e.g. Fri..Mon).
func (d *Doctor) WorksOn(weekday time.Weekday) bool {
	from, to := d.AvailableFromWeekday, d.AvailableToWeekday
	wd := int(weekday)
	if from <= to {
		return wd >= from && wd <= to
	}
	return wd >= from || wd <= to
}

// WorkingWindow returns the doctor's working window for the given weekday.
// ok is false when the doctor does not work that day.
func (d *Doctor) WorkingWindow(weekday time.Weekday) (start, end string, ok bool) {
	if !d.WorksOn(weekday) {
		return "", "", false
	}
	return d.AvailableFromTime, d.AvailableToTime, true
}
