package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agendaclinic/scheduling-api/internal/model"
)

// SlotInterval is the fixed slot granularity. Every committed appointment
// starts on a grid boundary, so availability is exact-match removal rather
// than interval overlap.
const SlotInterval = time.Hour

const slotLayout = "15:04"

// slotGrid expands a working window into the ordered candidate slots,
// inclusive of start and exclusive of end: 08:00-12:00 yields
// 08:00, 09:00, 10:00, 11:00.
func slotGrid(start, end string, interval time.Duration) ([]string, error) {
	from, err := time.Parse(slotLayout, start)
	if err != nil {
		return nil, fmt.Errorf("invalid window start %q: %w", start, err)
	}
	to, err := time.Parse(slotLayout, end)
	if err != nil {
		return nil, fmt.Errorf("invalid window end %q: %w", end, err)
	}

	var slots []string
	for t := from; t.Before(to); t = t.Add(interval) {
		slots = append(slots, t.Format(slotLayout))
	}
	return slots, nil
}

// availableSlots recomputes the free slots for a doctor-day from scratch on
// every call. Results are never cached: staleness here is exactly what causes
// double-booking. excludeID removes one appointment from the occupied set,
// used when that appointment is the one being moved.
func (s *Service) availableSlots(ctx context.Context, doctor *model.Doctor, date time.Time, excludeID uuid.UUID) ([]string, error) {
	start, end, ok := doctor.WorkingWindow(date.Weekday())
	if !ok {
		return []string{}, nil
	}

	grid, err := slotGrid(start, end, SlotInterval)
	if err != nil {
		return nil, err
	}

	booked, err := s.appointments.ListForDoctorDay(ctx, doctor.ID, date)
	if err != nil {
		return nil, err
	}

	occupied := make(map[string]bool, len(booked))
	for _, appt := range booked {
		if appt.ID == excludeID {
			continue
		}
		occupied[appt.SlotTime] = true
	}

	free := make([]string, 0, len(grid))
	for _, slot := range grid {
		if !occupied[slot] {
			free = append(free, slot)
		}
	}
	return free, nil
}

func containsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
