package service

import (
	"strconv"
	"strings"
	"sync"

	"legalpad/internal/contract"
	"legalpad/internal/domain/entity"
	"legalpad/internal/domain/policy"
	"legalpad/internal/domain/sqlite/repository"
	"legalpad/internal/utils"
	"legalpad/internal/utils/apierror"
	"legalpad/internal/utils/uid"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type AppointmentRepository interface {
	FindActiveByID(ownerID, id int64) (*entity.Appointment, error)
	FindLive(ownerID int64) ([]*entity.Appointment, error)
	List(ownerID int64, q *repository.AppointmentSearch) ([]*entity.Appointment, int64, error)
	ListWindow(ownerID, from, to int64) ([]*entity.Appointment, error)
	Save(apt *entity.Appointment) error
}

// ownerLocks serializes conflict-check-then-write per owner. Without it two
// concurrent bookings can both pass the check against the pre-write state
// and double-book the slot.
type ownerLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newOwnerLocks() *ownerLocks {
	return &ownerLocks{locks: make(map[int64]*sync.Mutex)}
}

func (o *ownerLocks) acquire(ownerID int64) func() {
	o.mu.Lock()
	l, ok := o.locks[ownerID]
	if !ok {
		l = &sync.Mutex{}
		o.locks[ownerID] = l
	}
	o.mu.Unlock()

	l.Lock()
	return l.Unlock
}

type DefaultAppointmentService struct {
	AppointmentRepo AppointmentRepository
	ClientRepo      ClientRepository
	Schedule        *policy.SchedulePolicy
	Validate        *validator.Validate
	locks           *ownerLocks
}

func NewAppointmentService(
	aptRepo AppointmentRepository,
	clientRepo ClientRepository,
	schedule *policy.SchedulePolicy,
	validate *validator.Validate,
) *DefaultAppointmentService {
	return &DefaultAppointmentService{
		AppointmentRepo: aptRepo,
		ClientRepo:      clientRepo,
		Schedule:        schedule,
		Validate:        validate,
		locks:           newOwnerLocks(),
	}
}

func (s *DefaultAppointmentService) ListAppointments(actor *entity.User, q *contract.AppointmentListQuery) ([]*contract.AppointmentResponse, *contract.Pagination, apierror.ErrorResponse) {
	page, limit := normalizePage(q.Page, q.Limit)

	from, err := utils.ParseDateTime(q.StartDate)
	if err != nil {
		return nil, nil, apierror.NewInvalidDateError("startDate")
	}
	to, err := utils.ParseDateTime(q.EndDate)
	if err != nil {
		return nil, nil, apierror.NewInvalidDateError("endDate")
	}

	search := &repository.AppointmentSearch{
		StartFrom: from,
		StartTo:   to,
		Status:    q.Status,
		ClientID:  q.ClientID,
		Type:      q.AppointmentType,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Page:      page,
		Limit:     limit,
	}

	apts, total, lerr := s.AppointmentRepo.List(actor.ID, search)
	if lerr != nil {
		log.Errorf("failed to list appointments for owner %d: %v", actor.ID, lerr)
		return nil, nil, apierror.InternalServerError
	}

	resp := make([]*contract.AppointmentResponse, len(apts))
	for i, apt := range apts {
		resp[i] = toAppointmentResponse(apt)
	}
	return resp, contract.NewPagination(page, limit, total), nil
}

func (s *DefaultAppointmentService) CalendarView(actor *entity.User, q *contract.CalendarQuery) ([]*contract.CalendarEntry, apierror.ErrorResponse) {
	if q.StartDate == "" || q.EndDate == "" {
		return nil, apierror.NewSimple(400, "Start date and end date are required for calendar view")
	}

	from, err := utils.ParseDateTime(q.StartDate)
	if err != nil {
		return nil, apierror.NewInvalidDateError("startDate")
	}
	to, err := utils.ParseDateTime(q.EndDate)
	if err != nil {
		return nil, apierror.NewInvalidDateError("endDate")
	}

	apts, lerr := s.AppointmentRepo.ListWindow(actor.ID, from, to)
	if lerr != nil {
		log.Errorf("failed to fetch calendar for owner %d: %v", actor.ID, lerr)
		return nil, apierror.InternalServerError
	}

	entries := make([]*contract.CalendarEntry, len(apts))
	for i, apt := range apts {
		entries[i] = toCalendarEntry(apt)
	}
	return entries, nil
}

func (s *DefaultAppointmentService) GetAppointment(actor *entity.User, id int64) (*contract.AppointmentResponse, apierror.ErrorResponse) {
	apt, err := s.AppointmentRepo.FindActiveByID(actor.ID, id)
	if err != nil {
		log.Errorf("failed to fetch appointment %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if apt == nil {
		return nil, apierror.NotFoundError
	}
	return toAppointmentResponse(apt), nil
}

func (s *DefaultAppointmentService) CreateAppointment(actor *entity.User, req *contract.AppointmentRequest) (*contract.AppointmentResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	start, err := utils.ParseDateTime(req.StartTime)
	if err != nil {
		return nil, apierror.NewInvalidDateError("startTime")
	}
	end, err := utils.ParseDateTime(req.EndTime)
	if err != nil {
		return nil, apierror.NewInvalidDateError("endTime")
	}
	if end <= start {
		return nil, apierror.EndBeforeStartError
	}

	client, cerr := s.ClientRepo.FindActiveByID(actor.ID, req.ClientID)
	if cerr != nil {
		log.Errorf("failed to verify client %d: %v", req.ClientID, cerr)
		return nil, apierror.InternalServerError
	}
	if client == nil {
		return nil, apierror.InvalidClientRefError
	}

	// Hold the owner's lock across check and write so two concurrent
	// bookings cannot both see a free slot.
	unlock := s.locks.acquire(actor.ID)
	defer unlock()

	if apierr := s.checkSlot(actor.ID, start, end, 0); apierr != nil {
		return nil, apierr
	}

	now := utils.NowUTC()
	apt := &entity.Appointment{
		ID:              uid.Generate(),
		OwnerID:         actor.ID,
		ClientID:        req.ClientID,
		Title:           req.Title,
		Description:     req.Description,
		StartTime:       start,
		EndTime:         end,
		Location:        req.Location,
		AppointmentType: entity.AppointmentTypeConsultation,
		Status:          entity.StatusScheduled,
		Priority:        entity.PriorityMedium,
		ReminderMinutes: 30,
		IsRecurring:     req.IsRecurring,
		Attendees:       toAttendees(req.Attendees),
		InlineNotes:     toInlineNotes(req.Notes, now),
		Documents:       toDocuments(req.Documents, now),
		Lifecycle:       entity.LifecycleActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if req.AppointmentType != "" {
		apt.AppointmentType = entity.AppointmentType(req.AppointmentType)
	}
	if req.Status != "" {
		apt.Status = entity.AppointmentStatus(req.Status)
	}
	if req.Priority != "" {
		apt.Priority = entity.Priority(req.Priority)
	}
	if req.ReminderMinutes != nil {
		apt.ReminderMinutes = *req.ReminderMinutes
	}
	if req.BillableHours != nil {
		apt.BillableHours = *req.BillableHours
	}
	if req.HourlyRate != nil {
		apt.HourlyRate = *req.HourlyRate
	}
	if apierr := applyRecurrence(apt, req.Recurrence); apierr != nil {
		return nil, apierr
	}
	apt.ComputeTotal()

	if serr := s.AppointmentRepo.Save(apt); serr != nil {
		log.Errorf("failed to create appointment for owner %d: %v", actor.ID, serr)
		return nil, apierror.InternalServerError
	}

	apt.Client = *client
	return toAppointmentResponse(apt), nil
}

func (s *DefaultAppointmentService) UpdateAppointment(actor *entity.User, id int64, req *contract.UpdateAppointmentRequest) (*contract.AppointmentResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	apt, err := s.AppointmentRepo.FindActiveByID(actor.ID, id)
	if err != nil {
		log.Errorf("failed to fetch appointment %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if apt == nil {
		return nil, apierror.NotFoundError
	}

	// A present-but-empty bound is a malformed datetime, not "keep the
	// stored value": ParseDateTime maps "" to 0, which would silently
	// rewrite the window to start at the epoch.
	newStart, newEnd := apt.StartTime, apt.EndTime
	if req.StartTime != nil {
		newStart, err = utils.ParseDateTime(*req.StartTime)
		if err != nil || *req.StartTime == "" {
			return nil, apierror.NewInvalidDateError("startTime")
		}
	}
	if req.EndTime != nil {
		newEnd, err = utils.ParseDateTime(*req.EndTime)
		if err != nil || *req.EndTime == "" {
			return nil, apierror.NewInvalidDateError("endTime")
		}
	}
	if newEnd <= newStart {
		return nil, apierror.EndBeforeStartError
	}

	if req.ClientID != nil && *req.ClientID != apt.ClientID {
		client, cerr := s.ClientRepo.FindActiveByID(actor.ID, *req.ClientID)
		if cerr != nil {
			log.Errorf("failed to verify client %d: %v", *req.ClientID, cerr)
			return nil, apierror.InternalServerError
		}
		if client == nil {
			return nil, apierror.InvalidClientRefError
		}
		apt.ClientID = *req.ClientID
		apt.Client = *client
	}

	// The conflict check only runs when a time bound actually changes; a
	// title-only update must never trip over existing calendar state.
	if newStart != apt.StartTime || newEnd != apt.EndTime {
		unlock := s.locks.acquire(actor.ID)
		defer unlock()

		if apierr := s.checkSlot(actor.ID, newStart, newEnd, apt.ID); apierr != nil {
			return nil, apierr
		}
		apt.StartTime = newStart
		apt.EndTime = newEnd
	}

	if req.Title != nil {
		apt.Title = *req.Title
	}
	if req.Description != nil {
		apt.Description = *req.Description
	}
	if req.Location != nil {
		apt.Location = *req.Location
	}
	if req.AppointmentType != nil {
		apt.AppointmentType = entity.AppointmentType(*req.AppointmentType)
	}
	if req.Status != nil {
		apt.Status = entity.AppointmentStatus(*req.Status)
	}
	if req.Priority != nil {
		apt.Priority = entity.Priority(*req.Priority)
	}
	if req.ReminderMinutes != nil {
		apt.ReminderMinutes = *req.ReminderMinutes
	}
	if req.IsRecurring != nil {
		apt.IsRecurring = *req.IsRecurring
	}
	if req.Attendees != nil {
		apt.Attendees = toAttendees(req.Attendees)
	}
	if req.Notes != nil {
		apt.InlineNotes = toInlineNotes(req.Notes, utils.NowUTC())
	}
	if req.Documents != nil {
		apt.Documents = toDocuments(req.Documents, utils.NowUTC())
	}
	if req.BillableHours != nil {
		apt.BillableHours = *req.BillableHours
	}
	if req.HourlyRate != nil {
		apt.HourlyRate = *req.HourlyRate
	}
	if apierr := applyRecurrence(apt, req.Recurrence); apierr != nil {
		return nil, apierr
	}
	apt.ComputeTotal()
	apt.UpdatedAt = utils.NowUTC()

	if serr := s.AppointmentRepo.Save(apt); serr != nil {
		log.Errorf("failed to update appointment %d: %v", apt.ID, serr)
		return nil, apierror.InternalServerError
	}
	return toAppointmentResponse(apt), nil
}

func (s *DefaultAppointmentService) UpdateStatus(actor *entity.User, id int64, req *contract.UpdateAppointmentStatusRequest) (*contract.AppointmentResponse, apierror.ErrorResponse) {
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	apt, err := s.AppointmentRepo.FindActiveByID(actor.ID, id)
	if err != nil {
		log.Errorf("failed to fetch appointment %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if apt == nil {
		return nil, apierror.NotFoundError
	}

	apt.Status = entity.AppointmentStatus(req.Status)
	apt.UpdatedAt = utils.NowUTC()

	if serr := s.AppointmentRepo.Save(apt); serr != nil {
		log.Errorf("failed to update appointment %d status: %v", apt.ID, serr)
		return nil, apierror.InternalServerError
	}
	return toAppointmentResponse(apt), nil
}

func (s *DefaultAppointmentService) DeleteAppointment(actor *entity.User, id int64) apierror.ErrorResponse {
	apt, err := s.AppointmentRepo.FindActiveByID(actor.ID, id)
	if err != nil {
		log.Errorf("failed to fetch appointment %d: %v", id, err)
		return apierror.InternalServerError
	}
	if apt == nil {
		return apierror.NotFoundError
	}

	apt.Lifecycle = entity.LifecycleDeleted
	apt.UpdatedAt = utils.NowUTC()

	if serr := s.AppointmentRepo.Save(apt); serr != nil {
		log.Errorf("failed to delete appointment %d: %v", apt.ID, serr)
		return apierror.InternalServerError
	}
	return nil
}

// checkSlot runs the scheduling engine and translates a hit into the
// conflict error the API surfaces. Aborts the operation before any write.
func (s *DefaultAppointmentService) checkSlot(ownerID, start, end, excludeID int64) apierror.ErrorResponse {
	conflict, err := s.Schedule.FindConflict(ownerID, start, end, excludeID)
	if err != nil {
		log.Errorf("conflict check failed for owner %d: %v", ownerID, err)
		return apierror.InternalServerError
	}

	if conflict != nil {
		return apierror.NewScheduleConflict(
			conflict.ID,
			conflict.Title,
			utils.FormatEpoch(conflict.StartTime),
			utils.FormatEpoch(conflict.EndTime),
		)
	}
	return nil
}

func applyRecurrence(apt *entity.Appointment, rec *contract.RecurrencePayload) apierror.ErrorResponse {
	if rec == nil {
		return nil
	}

	endDate, err := utils.ParseDateTime(rec.EndDate)
	if err != nil {
		return apierror.NewInvalidDateError("recurrence.endDate")
	}

	apt.RecurrenceFrequency = entity.RecurrenceFrequency(rec.Frequency)
	apt.RecurrenceInterval = rec.Interval
	apt.RecurrenceEndDate = endDate
	apt.RecurrenceDaysOfWeek = joinDays(rec.DaysOfWeek)
	return nil
}

func toAttendees(payload []*contract.AttendeePayload) []entity.Attendee {
	out := make([]entity.Attendee, len(payload))
	for i, a := range payload {
		role := entity.AttendeeRoleClient
		if a.Role != "" {
			role = entity.AttendeeRole(a.Role)
		}
		out[i] = entity.Attendee{Name: a.Name, Email: a.Email, Phone: a.Phone, Role: role}
	}
	return out
}

func toInlineNotes(payload []*contract.InlineNotePayload, now int64) []entity.InlineNote {
	out := make([]entity.InlineNote, len(payload))
	for i, n := range payload {
		out[i] = entity.InlineNote{Content: n.Content, CreatedAt: now}
	}
	return out
}

func toDocuments(payload []*contract.DocumentPayload, now int64) []entity.AppointmentDocument {
	out := make([]entity.AppointmentDocument, len(payload))
	for i, d := range payload {
		out[i] = entity.AppointmentDocument{Name: d.Name, Path: d.Path, UploadedAt: now}
	}
	return out
}

func toAppointmentResponse(apt *entity.Appointment) *contract.AppointmentResponse {
	resp := &contract.AppointmentResponse{
		ID:              apt.ID,
		ClientID:        apt.ClientID,
		Title:           apt.Title,
		Description:     apt.Description,
		StartTime:       utils.FormatEpoch(apt.StartTime),
		EndTime:         utils.FormatEpoch(apt.EndTime),
		DurationMinutes: apt.DurationMinutes(),
		Location:        apt.Location,
		AppointmentType: string(apt.AppointmentType),
		Status:          string(apt.Status),
		Priority:        string(apt.Priority),
		ReminderMinutes: apt.ReminderMinutes,
		IsRecurring:     apt.IsRecurring,
		BillableHours:   apt.BillableHours,
		HourlyRate:      apt.HourlyRate,
		TotalAmount:     apt.TotalAmount,
		CreatedAt:       utils.FormatEpoch(apt.CreatedAt),
		UpdatedAt:       utils.FormatEpoch(apt.UpdatedAt),
	}

	if apt.Client.ID != 0 {
		resp.Client = toClientSummary(&apt.Client)
	}
	if apt.RecurrenceFrequency != "" {
		resp.Recurrence = &contract.RecurrenceResponse{
			Frequency:  string(apt.RecurrenceFrequency),
			Interval:   apt.RecurrenceInterval,
			DaysOfWeek: splitDays(apt.RecurrenceDaysOfWeek),
		}
		if apt.RecurrenceEndDate != 0 {
			resp.Recurrence.EndDate = utils.FormatEpoch(apt.RecurrenceEndDate)
		}
	}

	for _, a := range apt.Attendees {
		resp.Attendees = append(resp.Attendees, &contract.AttendeeResponse{
			Name: a.Name, Email: a.Email, Phone: a.Phone, Role: string(a.Role),
		})
	}
	for _, n := range apt.InlineNotes {
		resp.Notes = append(resp.Notes, &contract.InlineNoteResponse{
			Content: n.Content, CreatedAt: utils.FormatEpoch(n.CreatedAt),
		})
	}
	for _, d := range apt.Documents {
		resp.Documents = append(resp.Documents, &contract.DocumentResponse{
			Name: d.Name, Path: d.Path, UploadedAt: utils.FormatEpoch(d.UploadedAt),
		})
	}
	return resp
}

func toCalendarEntry(apt *entity.Appointment) *contract.CalendarEntry {
	entry := &contract.CalendarEntry{
		ID:              apt.ID,
		Title:           apt.Title,
		StartTime:       utils.FormatEpoch(apt.StartTime),
		EndTime:         utils.FormatEpoch(apt.EndTime),
		Status:          string(apt.Status),
		Priority:        string(apt.Priority),
		AppointmentType: string(apt.AppointmentType),
		Location:        apt.Location,
	}
	if apt.Client.ID != 0 {
		entry.Client = toClientSummary(&apt.Client)
	}
	return entry
}

func joinDays(days []int) string {
	if len(days) == 0 {
		return ""
	}

	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

func splitDays(raw string) []int {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		if d, err := strconv.Atoi(p); err == nil {
			days = append(days, d)
		}
	}
	return days
}
