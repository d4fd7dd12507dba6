package service

import (
	"context"
	"io"
	"mime/multipart"
	"slices"
	"sort"
	"strings"

	"legalpad/internal/contract"
	"legalpad/internal/domain/entity"
	"legalpad/internal/domain/sqlite/repository"
	"legalpad/internal/infrastructure/aws/storage"
	"legalpad/internal/utils"
	"legalpad/internal/utils/apierror"
	"legalpad/internal/utils/uid"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type NoteRepository interface {
	FindActiveByID(ownerID, id int64) (*entity.Note, error)
	List(ownerID int64, q *repository.NoteSearch) ([]*entity.Note, int64, error)
	TagStrings(ownerID int64) ([]string, error)
	Save(note *entity.Note) error
	AddAttachment(att *entity.NoteAttachment) error
}

type DefaultNoteService struct {
	NoteRepo        NoteRepository
	ClientRepo      ClientRepository
	AppointmentRepo AppointmentRepository
	Storage         storage.S3Client
	Validate        *validator.Validate
}

func NewNoteService(
	noteRepo NoteRepository,
	clientRepo ClientRepository,
	aptRepo AppointmentRepository,
	s3 storage.S3Client,
	validate *validator.Validate,
) *DefaultNoteService {
	return &DefaultNoteService{
		NoteRepo:        noteRepo,
		ClientRepo:      clientRepo,
		AppointmentRepo: aptRepo,
		Storage:         s3,
		Validate:        validate,
	}
}

func (s *DefaultNoteService) ListNotes(actor *entity.User, q *contract.NoteListQuery) ([]*contract.NoteResponse, *contract.Pagination, apierror.ErrorResponse) {
	page, limit := normalizePage(q.Page, q.Limit)

	search := &repository.NoteSearch{
		Search:        q.Search,
		ClientID:      q.ClientID,
		AppointmentID: q.AppointmentID,
		NoteType:      q.NoteType,
		Priority:      q.Priority,
		Tags:          splitQueryTags(q.Tags),
		SortBy:        q.SortBy,
		SortOrder:     q.SortOrder,
		Page:          page,
		Limit:         limit,
	}

	notes, total, err := s.NoteRepo.List(actor.ID, search)
	if err != nil {
		log.Errorf("failed to list notes for owner %d: %v", actor.ID, err)
		return nil, nil, apierror.InternalServerError
	}

	resp := make([]*contract.NoteResponse, len(notes))
	for i, note := range notes {
		resp[i] = toNoteResponse(note)
	}
	return resp, contract.NewPagination(page, limit, total), nil
}

// ListTags returns the distinct tags in use across the owner's active notes,
// sorted alphabetically.
func (s *DefaultNoteService) ListTags(actor *entity.User) ([]string, apierror.ErrorResponse) {
	rows, err := s.NoteRepo.TagStrings(actor.ID)
	if err != nil {
		log.Errorf("failed to list tags for owner %d: %v", actor.ID, err)
		return nil, apierror.InternalServerError
	}

	seen := map[string]struct{}{}
	tags := []string{}
	for _, row := range rows {
		for _, tag := range strings.Fields(row) {
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// GetNote also bumps the note's last-accessed marker.
func (s *DefaultNoteService) GetNote(actor *entity.User, id int64) (*contract.NoteResponse, apierror.ErrorResponse) {
	note, err := s.NoteRepo.FindActiveByID(actor.ID, id)
	if err != nil {
		log.Errorf("failed to fetch note %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if note == nil {
		return nil, apierror.NotFoundError
	}

	note.LastAccessedAt = utils.NowUTC()
	if serr := s.NoteRepo.Save(note); serr != nil {
		log.Errorf("failed to bump last access of note %d: %v", note.ID, serr)
		return nil, apierror.InternalServerError
	}
	return toNoteResponse(note), nil
}

func (s *DefaultNoteService) CreateNote(actor *entity.User, req *contract.NoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	if apierr := s.checkRefs(actor.ID, req.ClientID, req.AppointmentID); apierr != nil {
		return nil, apierr
	}

	reminder, err := utils.ParseDateTime(req.ReminderDate)
	if err != nil {
		return nil, apierror.NewInvalidDateError("reminderDate")
	}

	now := utils.NowUTC()
	note := &entity.Note{
		ID:             uid.Generate(),
		OwnerID:        actor.ID,
		ClientID:       req.ClientID,
		AppointmentID:  req.AppointmentID,
		Title:          req.Title,
		Content:        req.Content,
		NoteType:       entity.NoteTypeGeneral,
		Priority:       entity.PriorityMedium,
		Tags:           joinTags(req.Tags),
		IsPrivate:      req.IsPrivate,
		IsFavorite:     req.IsFavorite,
		ReminderDate:   reminder,
		Lifecycle:      entity.LifecycleActive,
		LastAccessedAt: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if req.NoteType != "" {
		note.NoteType = entity.NoteType(req.NoteType)
	}
	if req.Priority != "" {
		note.Priority = entity.Priority(req.Priority)
	}

	if serr := s.NoteRepo.Save(note); serr != nil {
		log.Errorf("failed to create note for owner %d: %v", actor.ID, serr)
		return nil, apierror.InternalServerError
	}
	return toNoteResponse(note), nil
}

func (s *DefaultNoteService) UpdateNote(actor *entity.User, id int64, req *contract.UpdateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	note, err := s.NoteRepo.FindActiveByID(actor.ID, id)
	if err != nil {
		log.Errorf("failed to fetch note %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if note == nil {
		return nil, apierror.NotFoundError
	}

	if apierr := s.checkRefs(actor.ID, req.ClientID, req.AppointmentID); apierr != nil {
		return nil, apierr
	}
	if req.ClientID != nil {
		note.ClientID = req.ClientID
		note.Client = nil
	}
	if req.AppointmentID != nil {
		note.AppointmentID = req.AppointmentID
		note.Appointment = nil
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.NoteType != nil {
		note.NoteType = entity.NoteType(*req.NoteType)
	}
	if req.Priority != nil {
		note.Priority = entity.Priority(*req.Priority)
	}
	if req.Tags != nil {
		note.Tags = joinTags(req.Tags)
	}
	if req.IsPrivate != nil {
		note.IsPrivate = *req.IsPrivate
	}
	if req.IsFavorite != nil {
		note.IsFavorite = *req.IsFavorite
	}
	if req.ReminderDate != nil {
		reminder, perr := utils.ParseDateTime(*req.ReminderDate)
		if perr != nil {
			return nil, apierror.NewInvalidDateError("reminderDate")
		}
		note.ReminderDate = reminder
	}
	if req.Lifecycle != nil {
		note.Lifecycle = entity.Lifecycle(*req.Lifecycle)
	}
	note.UpdatedAt = utils.NowUTC()

	if serr := s.NoteRepo.Save(note); serr != nil {
		log.Errorf("failed to update note %d: %v", note.ID, serr)
		return nil, apierror.InternalServerError
	}
	return toNoteResponse(note), nil
}

func (s *DefaultNoteService) DeleteNote(actor *entity.User, id int64) apierror.ErrorResponse {
	note, err := s.NoteRepo.FindActiveByID(actor.ID, id)
	if err != nil {
		log.Errorf("failed to fetch note %d: %v", id, err)
		return apierror.InternalServerError
	}
	if note == nil {
		return apierror.NotFoundError
	}

	note.Lifecycle = entity.LifecycleDeleted
	note.UpdatedAt = utils.NowUTC()

	if serr := s.NoteRepo.Save(note); serr != nil {
		log.Errorf("failed to delete note %d: %v", note.ID, serr)
		return apierror.InternalServerError
	}
	return nil
}

func (s *DefaultNoteService) ToggleFavorite(actor *entity.User, id int64) (*contract.FavoriteResponse, apierror.ErrorResponse) {
	note, err := s.NoteRepo.FindActiveByID(actor.ID, id)
	if err != nil {
		log.Errorf("failed to fetch note %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if note == nil {
		return nil, apierror.NotFoundError
	}

	note.IsFavorite = !note.IsFavorite
	note.UpdatedAt = utils.NowUTC()

	if serr := s.NoteRepo.Save(note); serr != nil {
		log.Errorf("failed to toggle favorite on note %d: %v", note.ID, serr)
		return nil, apierror.InternalServerError
	}
	return &contract.FavoriteResponse{IsFavorite: note.IsFavorite}, nil
}

// UploadVoice attaches a dictation to the note, replacing any previous one.
// The old object is removed from storage best-effort.
func (s *DefaultNoteService) UploadVoice(ctx context.Context, actor *entity.User, id int64, file *multipart.FileHeader) (*contract.VoiceRecordingResponse, apierror.ErrorResponse) {
	note, err := s.NoteRepo.FindActiveByID(actor.ID, id)
	if err != nil {
		log.Errorf("failed to fetch note %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if note == nil {
		return nil, apierror.NotFoundError
	}

	data, ext, apierr := readUpload(file, contract.ValidVoiceFileTypes)
	if apierr != nil {
		return nil, apierr
	}

	key := storage.PathVoice + uuid.NewString() + ext
	if uerr := s.Storage.UploadFile(ctx, data, key); uerr != nil {
		log.Errorf("failed to upload voice recording for note %d: %v", note.ID, uerr)
		return nil, apierror.InternalServerError
	}

	if note.HasVoiceRecording() {
		if derr := s.Storage.DeleteFile(ctx, note.Voice.Key); derr != nil {
			log.Warnf("failed to delete replaced voice object %s: %v", note.Voice.Key, derr)
		}
	}

	now := utils.NowUTC()
	note.Voice = entity.VoiceRecording{
		Filename:   file.Filename,
		Key:        key,
		Size:       file.Size,
		UploadedAt: now,
	}
	note.UpdatedAt = now

	if serr := s.NoteRepo.Save(note); serr != nil {
		log.Errorf("failed to persist voice recording on note %d: %v", note.ID, serr)
		return nil, apierror.InternalServerError
	}
	return toVoiceResponse(&note.Voice), nil
}

func (s *DefaultNoteService) UploadAttachment(ctx context.Context, actor *entity.User, id int64, file *multipart.FileHeader) (*contract.AttachmentResponse, apierror.ErrorResponse) {
	note, err := s.NoteRepo.FindActiveByID(actor.ID, id)
	if err != nil {
		log.Errorf("failed to fetch note %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if note == nil {
		return nil, apierror.NotFoundError
	}

	data, ext, apierr := readUpload(file, contract.ValidAttachmentFileTypes)
	if apierr != nil {
		return nil, apierr
	}

	key := storage.PathAttachments + uuid.NewString() + ext
	if uerr := s.Storage.UploadFile(ctx, data, key); uerr != nil {
		log.Errorf("failed to upload attachment for note %d: %v", note.ID, uerr)
		return nil, apierror.InternalServerError
	}

	att := &entity.NoteAttachment{
		ID:         uid.Generate(),
		NoteID:     note.ID,
		Name:       file.Filename,
		Key:        key,
		Size:       file.Size,
		MimeType:   file.Header.Get("Content-Type"),
		UploadedAt: utils.NowUTC(),
	}
	if serr := s.NoteRepo.AddAttachment(att); serr != nil {
		log.Errorf("failed to persist attachment on note %d: %v", note.ID, serr)
		return nil, apierror.InternalServerError
	}
	return toAttachmentResponse(att), nil
}

// checkRefs verifies that the optionally referenced client and appointment
// exist, belong to the actor and are active. A nil pointer skips the check;
// the references are independent of each other.
func (s *DefaultNoteService) checkRefs(ownerID int64, clientID, appointmentID *int64) apierror.ErrorResponse {
	if clientID != nil {
		client, err := s.ClientRepo.FindActiveByID(ownerID, *clientID)
		if err != nil {
			log.Errorf("failed to verify client %d: %v", *clientID, err)
			return apierror.InternalServerError
		}
		if client == nil {
			return apierror.InvalidClientRefError
		}
	}

	if appointmentID != nil {
		apt, err := s.AppointmentRepo.FindActiveByID(ownerID, *appointmentID)
		if err != nil {
			log.Errorf("failed to verify appointment %d: %v", *appointmentID, err)
			return apierror.InternalServerError
		}
		if apt == nil {
			return apierror.InvalidAppointmentRefError
		}
	}
	return nil
}

func readUpload(file *multipart.FileHeader, validTypes []string) ([]byte, string, apierror.ErrorResponse) {
	if file == nil {
		return nil, "", apierror.MissingUploadError
	}
	if file.Filename == "" {
		return nil, "", apierror.MissingFileNameError
	}
	if file.Size > contract.MaxUploadSizeBytes {
		return nil, "", apierror.NewFileTooLargeError(contract.MaxUploadSizeBytes)
	}

	ext, ok := utils.CheckFileExt(file.Filename, validTypes)
	if !ok {
		return nil, "", apierror.NewInvalidFileExtError(ext)
	}

	src, err := file.Open()
	if err != nil {
		log.Errorf("failed to open uploaded file %s: %v", file.Filename, err)
		return nil, "", apierror.InternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Errorf("failed to read uploaded file %s: %v", file.Filename, err)
		return nil, "", apierror.InternalServerError
	}
	return data, ext, nil
}

func joinTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return strings.ToLower(strings.Join(tags, " "))
}

func splitTags(joined string) []string {
	return strings.Fields(joined)
}

func splitQueryTags(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	tags := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return slices.Clip(tags)
}

func toNoteResponse(note *entity.Note) *contract.NoteResponse {
	resp := &contract.NoteResponse{
		ID:             note.ID,
		ClientID:       note.ClientID,
		AppointmentID:  note.AppointmentID,
		Title:          note.Title,
		Content:        note.Content,
		NoteType:       string(note.NoteType),
		Priority:       string(note.Priority),
		Tags:           splitTags(note.Tags),
		IsPrivate:      note.IsPrivate,
		IsFavorite:     note.IsFavorite,
		Lifecycle:      string(note.Lifecycle),
		LastAccessedAt: utils.FormatEpoch(note.LastAccessedAt),
		CreatedAt:      utils.FormatEpoch(note.CreatedAt),
		UpdatedAt:      utils.FormatEpoch(note.UpdatedAt),
	}

	if note.ReminderDate != 0 {
		resp.ReminderDate = utils.FormatEpoch(note.ReminderDate)
	}
	if note.HasVoiceRecording() {
		resp.VoiceRecording = toVoiceResponse(&note.Voice)
	}
	if note.Client != nil {
		resp.Client = toClientSummary(note.Client)
	}
	if note.Appointment != nil {
		resp.Appointment = &contract.AppointmentSummary{
			ID:        note.Appointment.ID,
			Title:     note.Appointment.Title,
			StartTime: utils.FormatEpoch(note.Appointment.StartTime),
			EndTime:   utils.FormatEpoch(note.Appointment.EndTime),
		}
	}
	for i := range note.Attachments {
		resp.Attachments = append(resp.Attachments, toAttachmentResponse(&note.Attachments[i]))
	}
	return resp
}

func toVoiceResponse(v *entity.VoiceRecording) *contract.VoiceRecordingResponse {
	return &contract.VoiceRecordingResponse{
		Filename:   v.Filename,
		Duration:   v.Duration,
		Size:       v.Size,
		UploadedAt: utils.FormatEpoch(v.UploadedAt),
	}
}

func toAttachmentResponse(att *entity.NoteAttachment) *contract.AttachmentResponse {
	return &contract.AttachmentResponse{
		ID:         att.ID,
		Name:       att.Name,
		Size:       att.Size,
		MimeType:   att.MimeType,
		UploadedAt: utils.FormatEpoch(att.UploadedAt),
	}
}
