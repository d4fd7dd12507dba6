package policy

import (
	"legalpad/internal/domain/entity"
)

// LiveAppointmentFinder is the slice of the appointment store the scheduler
// needs: every appointment of one owner that currently holds its time slot
// (not soft-deleted, not cancelled or completed).
type LiveAppointmentFinder interface {
	FindLive(ownerID int64) ([]*entity.Appointment, error)
}

// SchedulePolicy decides whether a candidate window can be booked on an
// owner's calendar. It is a pure read; callers serialize check-then-write
// themselves.
type SchedulePolicy struct {
	Appointments LiveAppointmentFinder
}

func NewSchedulePolicy(finder LiveAppointmentFinder) *SchedulePolicy {
	return &SchedulePolicy{Appointments: finder}
}

// Overlaps reports whether the half-open windows [aStart, aEnd) and
// [bStart, bEnd) share any instant. A window ending exactly when the other
// begins does not overlap: back-to-back bookings are legal.
func Overlaps(aStart, aEnd, bStart, bEnd int64) bool {
	return aStart < bEnd && bStart < aEnd
}

// FindConflict returns the first live appointment of the owner whose window
// overlaps [start, end), or nil if the slot is free. excludeID removes one
// appointment from consideration (pass the record's own ID on the update
// path so it cannot conflict with itself; 0 excludes nothing). Which of
// several overlapping appointments is returned is unspecified.
//
// The caller guarantees start < end; the window direction invariant belongs
// to the appointment entity, not to this check.
func (p *SchedulePolicy) FindConflict(ownerID, start, end, excludeID int64) (*entity.Appointment, error) {
	live, err := p.Appointments.FindLive(ownerID)
	if err != nil {
		return nil, err
	}

	for _, apt := range live {
		if apt.ID == excludeID {
			continue
		}
		if Overlaps(apt.StartTime, apt.EndTime, start, end) {
			return apt, nil
		}
	}
	return nil, nil
}
