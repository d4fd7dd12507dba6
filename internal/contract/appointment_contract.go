package contract

type AttendeePayload struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,phoneformat"`
	Role  string `json:"role" validate:"omitempty,oneof=CLIENT LAWYER WITNESS EXPERT OTHER"`
}

// RecurrencePayload is stored with the appointment but never expanded into
// concrete occurrences.
type RecurrencePayload struct {
	Frequency  string `json:"frequency" validate:"required,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	Interval   int    `json:"interval" validate:"omitempty,min=1"`
	EndDate    string `json:"endDate" validate:"omitempty"`
	DaysOfWeek []int  `json:"daysOfWeek" validate:"omitempty,max=7,nodupes,dive,min=0,max=6"`
}

type InlineNotePayload struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type DocumentPayload struct {
	Name string `json:"name" validate:"required,max=200"`
	Path string `json:"path" validate:"required,max=500"`
}

type AppointmentRequest struct {
	ClientID        int64                `json:"clientId" validate:"required"`
	Title           string               `json:"title" validate:"required,max=200"`
	Description     string               `json:"description" validate:"omitempty,max=1000"`
	StartTime       string               `json:"startTime" validate:"required"`
	EndTime         string               `json:"endTime" validate:"required"`
	Location        string               `json:"location" validate:"omitempty,max=200"`
	AppointmentType string               `json:"appointmentType" validate:"omitempty,oneof=CONSULTATION HEARING MEETING REVIEW MEDIATION DEPOSITION OTHER"`
	Status          string               `json:"status" validate:"omitempty,oneof=SCHEDULED CONFIRMED IN_PROGRESS COMPLETED CANCELLED RESCHEDULED"`
	Priority        string               `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	ReminderMinutes *int                 `json:"reminderMinutes" validate:"omitempty,gte=0"`
	IsRecurring     bool                 `json:"isRecurring"`
	Recurrence      *RecurrencePayload   `json:"recurrence"`
	Attendees       []*AttendeePayload   `json:"attendees" validate:"omitempty,max=20,dive"`
	Notes           []*InlineNotePayload `json:"notes" validate:"omitempty,max=50,dive"`
	Documents       []*DocumentPayload   `json:"documents" validate:"omitempty,max=50,dive"`
	BillableHours   *float64             `json:"billableHours" validate:"omitempty,gte=0"`
	HourlyRate      *float64             `json:"hourlyRate" validate:"omitempty,gte=0"`
}

type UpdateAppointmentRequest struct {
	ClientID        *int64               `json:"clientId"`
	Title           *string              `json:"title" validate:"omitempty,max=200"`
	Description     *string              `json:"description" validate:"omitempty,max=1000"`
	StartTime       *string              `json:"startTime"`
	EndTime         *string              `json:"endTime"`
	Location        *string              `json:"location" validate:"omitempty,max=200"`
	AppointmentType *string              `json:"appointmentType" validate:"omitempty,oneof=CONSULTATION HEARING MEETING REVIEW MEDIATION DEPOSITION OTHER"`
	Status          *string              `json:"status" validate:"omitempty,oneof=SCHEDULED CONFIRMED IN_PROGRESS COMPLETED CANCELLED RESCHEDULED"`
	Priority        *string              `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	ReminderMinutes *int                 `json:"reminderMinutes" validate:"omitempty,gte=0"`
	IsRecurring     *bool                `json:"isRecurring"`
	Recurrence      *RecurrencePayload   `json:"recurrence"`
	Attendees       []*AttendeePayload   `json:"attendees" validate:"omitempty,max=20,dive"`
	Notes           []*InlineNotePayload `json:"notes" validate:"omitempty,max=50,dive"`
	Documents       []*DocumentPayload   `json:"documents" validate:"omitempty,max=50,dive"`
	BillableHours   *float64             `json:"billableHours" validate:"omitempty,gte=0"`
	HourlyRate      *float64             `json:"hourlyRate" validate:"omitempty,gte=0"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=SCHEDULED CONFIRMED IN_PROGRESS COMPLETED CANCELLED RESCHEDULED"`
}

type AppointmentListQuery struct {
	Page            int    `query:"page"`
	Limit           int    `query:"limit"`
	StartDate       string `query:"startDate"`
	EndDate         string `query:"endDate"`
	Status          string `query:"status"`
	ClientID        int64  `query:"clientId"`
	AppointmentType string `query:"appointmentType"`
	SortBy          string `query:"sortBy"`
	SortOrder       string `query:"sortOrder"`
}

type CalendarQuery struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

type AttendeeResponse struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

type RecurrenceResponse struct {
	Frequency  string `json:"frequency"`
	Interval   int    `json:"interval,omitempty"`
	EndDate    string `json:"endDate,omitempty"`
	DaysOfWeek []int  `json:"daysOfWeek,omitempty"`
}

type InlineNoteResponse struct {
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

type DocumentResponse struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	UploadedAt string `json:"uploadedAt"`
}

type AppointmentResponse struct {
	ID              int64                 `json:"id"`
	ClientID        int64                 `json:"clientId"`
	Client          *ClientSummary        `json:"client,omitempty"`
	Title           string                `json:"title"`
	Description     string                `json:"description,omitempty"`
	StartTime       string                `json:"startTime"`
	EndTime         string                `json:"endTime"`
	DurationMinutes int64                 `json:"durationMinutes"`
	Location        string                `json:"location,omitempty"`
	AppointmentType string                `json:"appointmentType"`
	Status          string                `json:"status"`
	Priority        string                `json:"priority"`
	ReminderMinutes int                   `json:"reminderMinutes"`
	IsRecurring     bool                  `json:"isRecurring"`
	Recurrence      *RecurrenceResponse   `json:"recurrence,omitempty"`
	Attendees       []*AttendeeResponse   `json:"attendees,omitempty"`
	Notes           []*InlineNoteResponse `json:"notes,omitempty"`
	Documents       []*DocumentResponse   `json:"documents,omitempty"`
	BillableHours   float64               `json:"billableHours"`
	HourlyRate      float64               `json:"hourlyRate"`
	TotalAmount     float64               `json:"totalAmount"`
	CreatedAt       string                `json:"createdAt"`
	UpdatedAt       string                `json:"updatedAt"`
}

// CalendarEntry is the minimal projection the calendar view returns.
type CalendarEntry struct {
	ID              int64          `json:"id"`
	Title           string         `json:"title"`
	StartTime       string         `json:"startTime"`
	EndTime         string         `json:"endTime"`
	Status          string         `json:"status"`
	Priority        string         `json:"priority"`
	AppointmentType string         `json:"appointmentType"`
	Location        string         `json:"location,omitempty"`
	Client          *ClientSummary `json:"client,omitempty"`
}
