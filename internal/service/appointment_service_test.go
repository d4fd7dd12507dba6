package service

import (
	"sync"
	"testing"

	"legalpad/internal/contract"
	"legalpad/internal/domain/entity"
	"legalpad/internal/utils/apierror"
)

const (
	tenAM    = int64(1_767_261_600_000) // 2026-01-01T10:00:00Z
	elevenAM = tenAM + 3_600_000
	noon     = tenAM + 2*3_600_000
	onePM    = tenAM + 3*3_600_000
)

func aptRequest(clientID, start, end int64) *contract.AppointmentRequest {
	return &contract.AppointmentRequest{
		ClientID:  clientID,
		Title:     "Case review",
		StartTime: rfc3339(start),
		EndTime:   rfc3339(end),
	}
}

func TestCreateAppointment(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "sub-1")
	client := env.seedClient(t, owner, "Ada Smith")

	resp, apierr := env.Appointments.CreateAppointment(owner, aptRequest(client.ID, tenAM, elevenAM))
	if apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}

	if resp.Status != string(entity.StatusScheduled) {
		t.Errorf("expected default status SCHEDULED, got %s", resp.Status)
	}
	if resp.AppointmentType != string(entity.AppointmentTypeConsultation) {
		t.Errorf("expected default type CONSULTATION, got %s", resp.AppointmentType)
	}
	if resp.DurationMinutes != 60 {
		t.Errorf("expected 60 minute duration, got %d", resp.DurationMinutes)
	}
	if resp.Client == nil || resp.Client.Name != "Ada Smith" {
		t.Errorf("expected embedded client summary, got %+v", resp.Client)
	}
}

func TestCreateAppointmentRejectsOverlap(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "sub-1")
	client := env.seedClient(t, owner, "Ada Smith")

	first, apierr := env.Appointments.CreateAppointment(owner, aptRequest(client.ID, tenAM, noon))
	if apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}

	_, apierr = env.Appointments.CreateAppointment(owner, aptRequest(client.ID, elevenAM, onePM))
	conflict, ok := apierr.(*apierror.ScheduleConflictError)
	if !ok {
		t.Fatalf("expected schedule conflict, got %+v", apierr)
	}
	if conflict.Conflicting == nil || conflict.Conflicting.ID != first.ID {
		t.Errorf("expected conflict to name appointment %d, got %+v", first.ID, conflict.Conflicting)
	}
	if conflict.Code() != 400 {
		t.Errorf("expected status 400, got %d", conflict.Code())
	}
}

func TestCreateAppointmentBackToBack(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "sub-1")
	client := env.seedClient(t, owner, "Ada Smith")

	if _, apierr := env.Appointments.CreateAppointment(owner, aptRequest(client.ID, tenAM, elevenAM)); apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}
	if _, apierr := env.Appointments.CreateAppointment(owner, aptRequest(client.ID, elevenAM, noon)); apierr != nil {
		t.Fatalf("back-to-back booking should be legal, got %+v", apierr)
	}
}

func TestCreateAppointmentOwnersDoNotCollide(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "sub-alice")
	bob := env.seedUser(t, "sub-bob")
	aliceClient := env.seedClient(t, alice, "Ada Smith")
	bobClient := env.seedClient(t, bob, "Bo Jones")

	if _, apierr := env.Appointments.CreateAppointment(alice, aptRequest(aliceClient.ID, tenAM, noon)); apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}
	if _, apierr := env.Appointments.CreateAppointment(bob, aptRequest(bobClient.ID, tenAM, noon)); apierr != nil {
		t.Fatalf("another owner's identical window must not conflict, got %+v", apierr)
	}
}

func TestCancelledAppointmentFreesSlot(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "sub-1")
	client := env.seedClient(t, owner, "Ada Smith")

	first, apierr := env.Appointments.CreateAppointment(owner, aptRequest(client.ID, tenAM, noon))
	if apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}

	_, apierr = env.Appointments.UpdateStatus(owner, first.ID, &contract.UpdateAppointmentStatusRequest{Status: "CANCELLED"})
	if apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}

	if _, apierr = env.Appointments.CreateAppointment(owner, aptRequest(client.ID, tenAM, noon)); apierr != nil {
		t.Fatalf("cancelled appointment must not hold its slot, got %+v", apierr)
	}
}

func TestDeletedAppointmentFreesSlot(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "sub-1")
	client := env.seedClient(t, owner, "Ada Smith")

	first, apierr := env.Appointments.CreateAppointment(owner, aptRequest(client.ID, tenAM, noon))
	if apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}
	if apierr = env.Appointments.DeleteAppointment(owner, first.ID); apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}

	if _, apierr = env.Appointments.CreateAppointment(owner, aptRequest(client.ID, tenAM, noon)); apierr != nil {
		t.Fatalf("soft-deleted appointment must not hold its slot, got %+v", apierr)
	}
}

func TestUpdateAppointmentTimeIntoConflict(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "sub-1")
	client := env.seedClient(t, owner, "Ada Smith")

	if _, apierr := env.Appointments.CreateAppointment(owner, aptRequest(client.ID, tenAM, elevenAM)); apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}
	second, apierr := env.Appointments.CreateAppointment(owner, aptRequest(client.ID, noon, onePM))
	if apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}

	newStart := rfc3339(tenAM + 30*60_000)
	_, apierr = env.Appointments.UpdateAppointment(owner, second.ID, &contract.UpdateAppointmentRequest{
		StartTime: &newStart,
	})
	if apierr == nil {
		t.Fatal("expected moving onto an occupied slot to fail")
	}
	if _, ok := apierr.(*apierror.ScheduleConflictError); !ok {
		t.Fatalf("expected schedule conflict, got %+v", apierr)
	}

	// The rejected move must leave the stored record untouched.
	stored, err := env.AppointmentRepo.FindActiveByID(owner.ID, second.ID)
	if err != nil || stored == nil {
		t.Fatalf("failed to re-read appointment: %v", err)
	}
	if stored.StartTime != noon || stored.EndTime != onePM {
		t.Errorf("expected window unchanged, got [%d, %d)", stored.StartTime, stored.EndTime)
	}
}

func TestUpdateAppointmentUnchangedWindowNeverSelfConflicts(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "sub-1")
	client := env.seedClient(t, owner, "Ada Smith")

	apt, apierr := env.Appointments.CreateAppointment(owner, aptRequest(client.ID, tenAM, noon))
	if apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}

	sameStart, sameEnd := rfc3339(tenAM), rfc3339(noon)
	title := "Renamed review"
	resp, apierr := env.Appointments.UpdateAppointment(owner, apt.ID, &contract.UpdateAppointmentRequest{
		Title:     &title,
		StartTime: &sameStart,
		EndTime:   &sameEnd,
	})
	if apierr != nil {
		t.Fatalf("unchanged window must never conflict with itself, got %+v", apierr)
	}
	if resp.Title != "Renamed review" {
		t.Errorf("expected title update to apply, got %s", resp.Title)
	}
}

func TestUpdateAppointmentTitleOnlySkipsConflictCheck(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "sub-1")
	client := env.seedClient(t, owner, "Ada Smith")

	apt, apierr := env.Appointments.CreateAppointment(owner, aptRequest(client.ID, tenAM, noon))
	if apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}

	// Force overlapping stored state behind the service's back. A pure
	// metadata update must still go through.
	twin, err := env.AppointmentRepo.FindActiveByID(owner.ID, apt.ID)
	if err != nil || twin == nil {
		t.Fatalf("failed to re-read appointment: %v", err)
	}
	twin.ID = apt.ID + 1
	twin.Client = entity.Client{}
	if err = env.AppointmentRepo.Save(twin); err != nil {
		t.Fatalf("failed to seed overlapping twin: %v", err)
	}

	title := "Still fine"
	if _, apierr = env.Appointments.UpdateAppointment(owner, apt.ID, &contract.UpdateAppointmentRequest{Title: &title}); apierr != nil {
		t.Fatalf("metadata-only update must skip the conflict check, got %+v", apierr)
	}
}

func TestUpdateAppointmentRejectsEmptyTimeBounds(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "sub-1")
	client := env.seedClient(t, owner, "Ada Smith")

	apt, apierr := env.Appointments.CreateAppointment(owner, aptRequest(client.ID, tenAM, elevenAM))
	if apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}

	// An empty string is a malformed bound, not an omission; it must not
	// slip through as the zero epoch and rewrite the stored window.
	empty := ""
	if _, apierr = env.Appointments.UpdateAppointment(owner, apt.ID, &contract.UpdateAppointmentRequest{StartTime: &empty}); apierr == nil {
		t.Fatal("expected empty startTime rejection")
	} else if apierr.Code() != 400 {
		t.Errorf("expected status 400, got %d", apierr.Code())
	}
	if _, apierr = env.Appointments.UpdateAppointment(owner, apt.ID, &contract.UpdateAppointmentRequest{EndTime: &empty}); apierr == nil {
		t.Fatal("expected empty endTime rejection")
	}

	stored, err := env.AppointmentRepo.FindActiveByID(owner.ID, apt.ID)
	if err != nil || stored == nil {
		t.Fatalf("failed to re-read appointment: %v", err)
	}
	if stored.StartTime != tenAM || stored.EndTime != elevenAM {
		t.Errorf("expected window unchanged, got [%d, %d)", stored.StartTime, stored.EndTime)
	}
}

func TestAppointmentBillingTotals(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "sub-1")
	client := env.seedClient(t, owner, "Ada Smith")

	hours, rate := 2.5, 200.0
	req := aptRequest(client.ID, tenAM, elevenAM)
	req.BillableHours = &hours
	req.HourlyRate = &rate

	resp, apierr := env.Appointments.CreateAppointment(owner, req)
	if apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}
	if resp.TotalAmount != 500 {
		t.Errorf("expected total 500, got %f", resp.TotalAmount)
	}

	// Dropping the rate resets the derived total.
	zero := 0.0
	resp, apierr = env.Appointments.UpdateAppointment(owner, resp.ID, &contract.UpdateAppointmentRequest{HourlyRate: &zero})
	if apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}
	if resp.TotalAmount != 0 {
		t.Errorf("expected total reset to 0, got %f", resp.TotalAmount)
	}
}

func TestCreateAppointmentValidation(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "sub-1")
	client := env.seedClient(t, owner, "Ada Smith")

	if _, apierr := env.Appointments.CreateAppointment(owner, aptRequest(client.ID, noon, tenAM)); apierr != apierror.EndBeforeStartError {
		t.Errorf("expected end-before-start rejection, got %+v", apierr)
	}
	if _, apierr := env.Appointments.CreateAppointment(owner, aptRequest(client.ID, tenAM, tenAM)); apierr != apierror.EndBeforeStartError {
		t.Errorf("expected zero-length rejection, got %+v", apierr)
	}
	if _, apierr := env.Appointments.CreateAppointment(owner, aptRequest(999, tenAM, elevenAM)); apierr != apierror.InvalidClientRefError {
		t.Errorf("expected invalid client rejection, got %+v", apierr)
	}

	req := aptRequest(client.ID, tenAM, elevenAM)
	req.StartTime = "not-a-date"
	if _, apierr := env.Appointments.CreateAppointment(owner, req); apierr == nil {
		t.Error("expected malformed datetime rejection")
	}
}

func TestSchedulingScenario(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "sub-1")
	client := env.seedClient(t, owner, "Ada Smith")

	// A holds [10:00, 11:00).
	a, apierr := env.Appointments.CreateAppointment(owner, aptRequest(client.ID, tenAM, elevenAM))
	if apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}

	// B at [10:30, 11:30) collides with A.
	halfPastTen := tenAM + 30*60_000
	halfPastEleven := elevenAM + 30*60_000
	_, apierr = env.Appointments.CreateAppointment(owner, aptRequest(client.ID, halfPastTen, halfPastEleven))
	conflict, ok := apierr.(*apierror.ScheduleConflictError)
	if !ok || conflict.Conflicting.ID != a.ID {
		t.Fatalf("expected conflict referencing A, got %+v", apierr)
	}

	// C at [11:00, 12:00) only touches A's boundary.
	if _, apierr = env.Appointments.CreateAppointment(owner, aptRequest(client.ID, elevenAM, noon)); apierr != nil {
		t.Fatalf("boundary touch must not conflict, got %+v", apierr)
	}

	// Cancelling A releases its window for B.
	if _, apierr = env.Appointments.UpdateStatus(owner, a.ID, &contract.UpdateAppointmentStatusRequest{Status: "CANCELLED"}); apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}
	if _, apierr = env.Appointments.CreateAppointment(owner, aptRequest(client.ID, halfPastTen, halfPastEleven)); apierr != nil {
		t.Fatalf("cancelled appointment must not block B, got %+v", apierr)
	}

	// Moving A to an early slot clear of B succeeds even though A itself
	// is cancelled and B occupies its old window.
	nineAM := tenAM - 3_600_000
	halfPastNine := nineAM + 30*60_000
	newStart, newEnd := rfc3339(nineAM), rfc3339(halfPastNine)
	if _, apierr = env.Appointments.UpdateAppointment(owner, a.ID, &contract.UpdateAppointmentRequest{
		StartTime: &newStart,
		EndTime:   &newEnd,
	}); apierr != nil {
		t.Fatalf("moving A clear of B must succeed, got %+v", apierr)
	}
}

func TestConcurrentCreateBooksSlotOnce(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "sub-1")
	client := env.seedClient(t, owner, "Ada Smith")

	const attempts = 8
	errs := make([]apierror.ErrorResponse, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.Appointments.CreateAppointment(owner, aptRequest(client.ID, tenAM, noon))
		}(i)
	}
	wg.Wait()

	won := 0
	for _, apierr := range errs {
		if apierr == nil {
			won++
			continue
		}
		if _, ok := apierr.(*apierror.ScheduleConflictError); !ok {
			t.Errorf("expected schedule conflict for losers, got %+v", apierr)
		}
	}
	if won != 1 {
		t.Fatalf("expected exactly one booking to win the slot, got %d", won)
	}
}
