package repository

import (
	"testing"

	"legalpad/internal/domain/entity"
	"legalpad/internal/domain/sqlite"
)

func newAppointmentRepo(t *testing.T) *DefaultAppointmentRepository {
	t.Helper()

	db, err := sqlite.Init(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}
	return NewAppointmentRepository(db)
}

func seedAppointment(t *testing.T, repo *DefaultAppointmentRepository, apt *entity.Appointment) {
	t.Helper()

	if apt.AppointmentType == "" {
		apt.AppointmentType = entity.AppointmentTypeConsultation
	}
	if apt.Status == "" {
		apt.Status = entity.StatusScheduled
	}
	if apt.Priority == "" {
		apt.Priority = entity.PriorityMedium
	}
	if apt.Lifecycle == "" {
		apt.Lifecycle = entity.LifecycleActive
	}
	if err := repo.Save(apt); err != nil {
		t.Fatalf("failed to seed appointment %d: %v", apt.ID, err)
	}
}

func TestFindLiveFiltersTerminalAndDeleted(t *testing.T) {
	repo := newAppointmentRepo(t)

	seedAppointment(t, repo, &entity.Appointment{ID: 1, OwnerID: 10, ClientID: 1, Title: "kept", StartTime: 100, EndTime: 200})
	seedAppointment(t, repo, &entity.Appointment{ID: 2, OwnerID: 10, ClientID: 1, Title: "cancelled", StartTime: 100, EndTime: 200, Status: entity.StatusCancelled})
	seedAppointment(t, repo, &entity.Appointment{ID: 3, OwnerID: 10, ClientID: 1, Title: "completed", StartTime: 100, EndTime: 200, Status: entity.StatusCompleted})
	seedAppointment(t, repo, &entity.Appointment{ID: 4, OwnerID: 10, ClientID: 1, Title: "soft deleted", StartTime: 100, EndTime: 200, Lifecycle: entity.LifecycleDeleted})
	seedAppointment(t, repo, &entity.Appointment{ID: 5, OwnerID: 99, ClientID: 1, Title: "other owner", StartTime: 100, EndTime: 200})

	live, err := repo.FindLive(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(live) != 1 || live[0].ID != 1 {
		t.Fatalf("expected only appointment 1 to be live, got %d results", len(live))
	}
}

func TestFindLiveIncludesNonTerminalStatuses(t *testing.T) {
	repo := newAppointmentRepo(t)

	seedAppointment(t, repo, &entity.Appointment{ID: 1, OwnerID: 10, ClientID: 1, Title: "confirmed", StartTime: 100, EndTime: 200, Status: entity.StatusConfirmed})
	seedAppointment(t, repo, &entity.Appointment{ID: 2, OwnerID: 10, ClientID: 1, Title: "in progress", StartTime: 300, EndTime: 400, Status: entity.StatusInProgress})
	seedAppointment(t, repo, &entity.Appointment{ID: 3, OwnerID: 10, ClientID: 1, Title: "rescheduled", StartTime: 500, EndTime: 600, Status: entity.StatusRescheduled})

	live, err := repo.FindLive(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(live) != 3 {
		t.Fatalf("expected all three non-terminal appointments, got %d", len(live))
	}
}

func TestListFiltersAndPaginates(t *testing.T) {
	repo := newAppointmentRepo(t)

	for i := int64(1); i <= 5; i++ {
		seedAppointment(t, repo, &entity.Appointment{
			ID: i, OwnerID: 10, ClientID: 1, Title: "apt",
			StartTime: i * 1000, EndTime: i*1000 + 500,
		})
	}
	seedAppointment(t, repo, &entity.Appointment{ID: 6, OwnerID: 10, ClientID: 2, Title: "other client", StartTime: 9000, EndTime: 9500})

	apts, total, err := repo.List(10, &AppointmentSearch{ClientID: 1, Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 5 {
		t.Errorf("expected total 5, got %d", total)
	}
	if len(apts) != 2 {
		t.Fatalf("expected page of 2, got %d", len(apts))
	}
	// Default sort is start_time ascending.
	if apts[0].StartTime > apts[1].StartTime {
		t.Errorf("expected ascending start times, got %d then %d", apts[0].StartTime, apts[1].StartTime)
	}
}

func TestListWindowBoundsStartTime(t *testing.T) {
	repo := newAppointmentRepo(t)

	seedAppointment(t, repo, &entity.Appointment{ID: 1, OwnerID: 10, ClientID: 1, Title: "before", StartTime: 500, EndTime: 600})
	seedAppointment(t, repo, &entity.Appointment{ID: 2, OwnerID: 10, ClientID: 1, Title: "inside", StartTime: 1500, EndTime: 1600})
	seedAppointment(t, repo, &entity.Appointment{ID: 3, OwnerID: 10, ClientID: 1, Title: "after", StartTime: 2500, EndTime: 2600})

	apts, err := repo.ListWindow(10, 1000, 2000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(apts) != 1 || apts[0].ID != 2 {
		t.Fatalf("expected only the inside appointment, got %d results", len(apts))
	}
}

func TestFindActiveByIDScopesOwner(t *testing.T) {
	repo := newAppointmentRepo(t)
	seedAppointment(t, repo, &entity.Appointment{ID: 1, OwnerID: 10, ClientID: 1, Title: "mine", StartTime: 100, EndTime: 200})

	apt, err := repo.FindActiveByID(99, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if apt != nil {
		t.Fatal("expected another owner's lookup to miss")
	}

	apt, err = repo.FindActiveByID(10, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if apt == nil || apt.Title != "mine" {
		t.Fatalf("expected owner's lookup to hit, got %+v", apt)
	}
}
