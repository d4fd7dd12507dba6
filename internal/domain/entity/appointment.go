package entity

type AppointmentType string

const (
	AppointmentTypeConsultation AppointmentType = "CONSULTATION"
	AppointmentTypeHearing      AppointmentType = "HEARING"
	AppointmentTypeMeeting      AppointmentType = "MEETING"
	AppointmentTypeReview       AppointmentType = "REVIEW"
	AppointmentTypeMediation    AppointmentType = "MEDIATION"
	AppointmentTypeDeposition   AppointmentType = "DEPOSITION"
	AppointmentTypeOther        AppointmentType = "OTHER"
)

type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "SCHEDULED"
	StatusConfirmed   AppointmentStatus = "CONFIRMED"
	StatusInProgress  AppointmentStatus = "IN_PROGRESS"
	StatusCompleted   AppointmentStatus = "COMPLETED"
	StatusCancelled   AppointmentStatus = "CANCELLED"
	StatusRescheduled AppointmentStatus = "RESCHEDULED"
)

// TerminalStatuses never take part in conflict detection: a cancelled or
// completed appointment no longer holds its time slot.
var TerminalStatuses = []AppointmentStatus{StatusCancelled, StatusCompleted}

type RecurrenceFrequency string

const (
	RecurrenceDaily   RecurrenceFrequency = "DAILY"
	RecurrenceWeekly  RecurrenceFrequency = "WEEKLY"
	RecurrenceMonthly RecurrenceFrequency = "MONTHLY"
	RecurrenceYearly  RecurrenceFrequency = "YEARLY"
)

type AttendeeRole string

const (
	AttendeeRoleClient  AttendeeRole = "CLIENT"
	AttendeeRoleLawyer  AttendeeRole = "LAWYER"
	AttendeeRoleWitness AttendeeRole = "WITNESS"
	AttendeeRoleExpert  AttendeeRole = "EXPERT"
	AttendeeRoleOther   AttendeeRole = "OTHER"
)

type Attendee struct {
	Name  string       `json:"name"`
	Email string       `json:"email,omitempty"`
	Phone string       `json:"phone,omitempty"`
	Role  AttendeeRole `json:"role"`
}

type InlineNote struct {
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"`
}

type AppointmentDocument struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	UploadedAt int64  `json:"uploadedAt"`
}

// Appointment occupies the half-open window [StartTime, EndTime) on the
// owner's calendar. EndTime is strictly after StartTime, enforced at write
// time by the service. Times are epoch millis UTC.
//
// The recurrence descriptor is stored verbatim and never expanded.
type Appointment struct {
	ID                   int64  `gorm:"primaryKey"`
	OwnerID              int64  `gorm:"not null;index:idx_appointments_owner_start"`
	ClientID             int64  `gorm:"not null;index"`
	Title                string `gorm:"not null"`
	Description          string
	StartTime            int64 `gorm:"not null;index:idx_appointments_owner_start"`
	EndTime              int64 `gorm:"not null"`
	Location             string
	AppointmentType      AppointmentType   `gorm:"not null;default:CONSULTATION"`
	Status               AppointmentStatus `gorm:"not null;default:SCHEDULED;index"`
	Priority             Priority          `gorm:"not null;default:MEDIUM"`
	ReminderMinutes      int               `gorm:"not null;default:30"`
	IsRecurring          bool              `gorm:"not null;default:false"`
	RecurrenceFrequency  RecurrenceFrequency
	RecurrenceInterval   int
	RecurrenceEndDate    int64
	RecurrenceDaysOfWeek string                // comma-joined, 0-6 Sunday to Saturday
	Attendees            []Attendee            `gorm:"serializer:json"`
	InlineNotes          []InlineNote          `gorm:"serializer:json"`
	Documents            []AppointmentDocument `gorm:"serializer:json"`
	BillableHours        float64               `gorm:"not null;default:0"`
	HourlyRate           float64
	TotalAmount          float64   `gorm:"not null;default:0"`
	Lifecycle            Lifecycle `gorm:"not null;default:ACTIVE;index"`
	CreatedAt            int64     `gorm:"not null"`
	UpdatedAt            int64     `gorm:"not null;autoUpdateTime:false"`

	// Relations
	Client Client `gorm:"foreignKey:ClientID"`
}

// ComputeTotal derives TotalAmount from the billing fields. It runs on every
// write: the product when both fields are set, the zero default otherwise.
func (a *Appointment) ComputeTotal() {
	if a.BillableHours > 0 && a.HourlyRate > 0 {
		a.TotalAmount = a.BillableHours * a.HourlyRate
	} else {
		a.TotalAmount = 0
	}
}

// DurationMinutes is the rounded window length.
func (a *Appointment) DurationMinutes() int64 {
	return (a.EndTime - a.StartTime + 30_000) / 60_000
}
