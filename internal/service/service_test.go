package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"legalpad/internal/domain/entity"
	"legalpad/internal/domain/policy"
	"legalpad/internal/domain/sqlite"
	"legalpad/internal/domain/sqlite/repository"
	"legalpad/internal/utils"
	"legalpad/internal/utils/uid"
	"legalpad/internal/utils/validators"

	"github.com/go-playground/validator/v10"
)

// testEnv wires the full service stack against an in-memory database.
type testEnv struct {
	Users        *DefaultUserService
	Clients      *DefaultClientService
	Appointments *DefaultAppointmentService
	Notes        *DefaultNoteService

	UserRepo        *repository.DefaultUserRepository
	ClientRepo      *repository.DefaultClientRepository
	AppointmentRepo *repository.DefaultAppointmentRepository
	NoteRepo        *repository.DefaultNoteRepository

	Storage *fakeStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	uid.Init(1)

	db, err := sqlite.Init(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}

	validate := validator.New()
	for tag, fn := range map[string]validator.Func{
		"phoneformat": validators.PhoneFormat,
		"hasupper":    validators.HasUpper,
		"haslower":    validators.HasLower,
		"hasdigit":    validators.HasDigit,
		"hasspecial":  validators.HasSpecial,
		"nospaces":    validators.NoWhiteSpaces,
		"nodupes":     validators.NoDupes,
	} {
		if err = validate.RegisterValidation(tag, fn); err != nil {
			t.Fatalf("failed to register validator %s: %v", tag, err)
		}
	}

	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	aptRepo := repository.NewAppointmentRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	store := &fakeStorage{objects: map[string][]byte{}}
	schedule := policy.NewSchedulePolicy(aptRepo)

	return &testEnv{
		Users:        NewUserService(userRepo, nil, validate),
		Clients:      NewClientService(clientRepo, validate),
		Appointments: NewAppointmentService(aptRepo, clientRepo, schedule, validate),
		Notes:        NewNoteService(noteRepo, clientRepo, aptRepo, store, validate),

		UserRepo:        userRepo,
		ClientRepo:      clientRepo,
		AppointmentRepo: aptRepo,
		NoteRepo:        noteRepo,

		Storage: store,
	}
}

func (e *testEnv) seedUser(t *testing.T, sub string) *entity.User {
	t.Helper()

	now := utils.NowUTC()
	user := &entity.User{
		ID:            uid.Generate(),
		SubUUID:       sub,
		Username:      "lawyer-" + sub,
		Email:         sub + "@example.com",
		EmailVerified: true,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := e.UserRepo.Save(user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func (e *testEnv) seedClient(t *testing.T, owner *entity.User, name string) *entity.Client {
	t.Helper()

	now := utils.NowUTC()
	client := &entity.Client{
		ID:        uid.Generate(),
		OwnerID:   owner.ID,
		Name:      name,
		Phone:     "+1 555 123 4567",
		CaseType:  entity.CaseTypeCivil,
		Status:    entity.ClientStatusActive,
		Priority:  entity.PriorityMedium,
		Lifecycle: entity.LifecycleActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := e.ClientRepo.Save(client); err != nil {
		t.Fatalf("failed to seed client: %v", err)
	}
	return client
}

// fakeStorage records object writes and deletes in memory.
type fakeStorage struct {
	objects map[string][]byte
	deleted []string
}

func (f *fakeStorage) UploadFile(_ context.Context, data []byte, key string) error {
	f.objects[key] = data
	return nil
}

func (f *fakeStorage) DeleteFile(_ context.Context, key string) error {
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

// rfc3339 renders the given epoch millis the way request payloads carry
// datetimes.
func rfc3339(millis int64) string {
	return time.UnixMilli(millis).UTC().Format(time.RFC3339)
}

// makeFileHeader builds a real multipart file header the way echo hands it
// to the service.
func makeFileHeader(t *testing.T, filename string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err = part.Write(data); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err = w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err = req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("failed to parse multipart form: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}
