package contract

const MaxUploadSizeBytes = 10 * 1024 * 1024

var (
	ValidAttachmentFileTypes = []string{"jpeg", "jpg", "png", "pdf", "doc", "docx", "txt", "mp3", "wav", "m4a", "aac"}
	ValidVoiceFileTypes      = []string{"mp3", "wav", "m4a", "aac"}
)

type NoteRequest struct {
	ClientID      *int64   `json:"clientId"`
	AppointmentID *int64   `json:"appointmentId"`
	Title         string   `json:"title" validate:"required,max=200"`
	Content       string   `json:"content" validate:"required,max=10000"`
	NoteType      string   `json:"noteType" validate:"omitempty,oneof=GENERAL CLIENT_MEETING COURT_HEARING RESEARCH CASE_STRATEGY FOLLOW_UP OTHER"`
	Priority      string   `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Tags          []string `json:"tags" validate:"omitempty,max=20,nodupes,dive,required,max=50,nospaces"`
	IsPrivate     bool     `json:"isPrivate"`
	IsFavorite    bool     `json:"isFavorite"`
	ReminderDate  string   `json:"reminderDate"`
}

type UpdateNoteRequest struct {
	ClientID      *int64   `json:"clientId"`
	AppointmentID *int64   `json:"appointmentId"`
	Title         *string  `json:"title" validate:"omitempty,max=200"`
	Content       *string  `json:"content" validate:"omitempty,max=10000"`
	NoteType      *string  `json:"noteType" validate:"omitempty,oneof=GENERAL CLIENT_MEETING COURT_HEARING RESEARCH CASE_STRATEGY FOLLOW_UP OTHER"`
	Priority      *string  `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Tags          []string `json:"tags" validate:"omitempty,max=20,nodupes,dive,required,max=50,nospaces"`
	IsPrivate     *bool    `json:"isPrivate"`
	IsFavorite    *bool    `json:"isFavorite"`
	ReminderDate  *string  `json:"reminderDate"`
	Lifecycle     *string  `json:"lifecycle" validate:"omitempty,oneof=ACTIVE ARCHIVED"`
}

type NoteListQuery struct {
	Page          int    `query:"page"`
	Limit         int    `query:"limit"`
	Search        string `query:"search"`
	ClientID      int64  `query:"clientId"`
	AppointmentID int64  `query:"appointmentId"`
	NoteType      string `query:"noteType"`
	Priority      string `query:"priority"`
	Tags          string `query:"tags"` // comma-joined, any-match
	SortBy        string `query:"sortBy"`
	SortOrder     string `query:"sortOrder"`
}

type VoiceRecordingResponse struct {
	Filename   string `json:"filename"`
	Duration   int    `json:"duration,omitempty"`
	Size       int64  `json:"size"`
	UploadedAt string `json:"uploadedAt"`
}

type AttachmentResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	MimeType   string `json:"mimeType,omitempty"`
	UploadedAt string `json:"uploadedAt"`
}

type FavoriteResponse struct {
	IsFavorite bool `json:"isFavorite"`
}

// AppointmentSummary is the projection embedded in note responses for the
// referenced appointment.
type AppointmentSummary struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime,omitempty"`
}

type NoteResponse struct {
	ID             int64                   `json:"id"`
	ClientID       *int64                  `json:"clientId,omitempty"`
	AppointmentID  *int64                  `json:"appointmentId,omitempty"`
	Client         *ClientSummary          `json:"client,omitempty"`
	Appointment    *AppointmentSummary     `json:"appointment,omitempty"`
	Title          string                  `json:"title"`
	Content        string                  `json:"content"`
	NoteType       string                  `json:"noteType"`
	Priority       string                  `json:"priority"`
	Tags           []string                `json:"tags"`
	VoiceRecording *VoiceRecordingResponse `json:"voiceRecording,omitempty"`
	Attachments    []*AttachmentResponse   `json:"attachments,omitempty"`
	IsPrivate      bool                    `json:"isPrivate"`
	IsFavorite     bool                    `json:"isFavorite"`
	ReminderDate   string                  `json:"reminderDate,omitempty"`
	Lifecycle      string                  `json:"lifecycle"`
	LastAccessedAt string                  `json:"lastAccessedAt"`
	CreatedAt      string                  `json:"createdAt"`
	UpdatedAt      string                  `json:"updatedAt"`
}
