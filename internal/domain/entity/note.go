package entity

type NoteType string

const (
	NoteTypeGeneral       NoteType = "GENERAL"
	NoteTypeClientMeeting NoteType = "CLIENT_MEETING"
	NoteTypeCourtHearing  NoteType = "COURT_HEARING"
	NoteTypeResearch      NoteType = "RESEARCH"
	NoteTypeCaseStrategy  NoteType = "CASE_STRATEGY"
	NoteTypeFollowUp      NoteType = "FOLLOW_UP"
	NoteTypeOther         NoteType = "OTHER"
)

// VoiceRecording holds the metadata of the single dictation attached to a
// note; the audio itself lives in S3 under Key.
type VoiceRecording struct {
	Filename   string
	Key        string
	Duration   int // seconds
	Size       int64
	UploadedAt int64
}

// Note is a free-standing record that may point at a client and/or an
// appointment, both optional and independent. Tags are stored lower-cased
// and space-joined; the contract layer splits them back into an array.
type Note struct {
	ID             int64  `gorm:"primaryKey"`
	OwnerID        int64  `gorm:"not null;index"`
	ClientID       *int64 `gorm:"index"`
	AppointmentID  *int64 `gorm:"index"`
	Title          string `gorm:"not null"`
	Content        string `gorm:"not null"`
	NoteType       NoteType `gorm:"not null;default:GENERAL"`
	Priority       Priority `gorm:"not null;default:MEDIUM"`
	Tags           string
	Voice          VoiceRecording `gorm:"embedded;embeddedPrefix:voice_"`
	IsPrivate      bool           `gorm:"not null;default:false"`
	IsFavorite     bool           `gorm:"not null;default:false"`
	ReminderDate   int64
	Lifecycle      Lifecycle `gorm:"not null;default:ACTIVE;index"`
	LastAccessedAt int64     `gorm:"not null"`
	CreatedAt      int64     `gorm:"not null"`
	UpdatedAt      int64     `gorm:"not null;autoUpdateTime:false"`

	// Relations
	Attachments []NoteAttachment `gorm:"foreignKey:NoteID"`
	Client      *Client          `gorm:"foreignKey:ClientID"`
	Appointment *Appointment     `gorm:"foreignKey:AppointmentID"`
}

func (n *Note) HasVoiceRecording() bool {
	return n.Voice.Key != ""
}

// NoteAttachment is one uploaded file hanging off a note; the bytes live in
// S3 under Key.
type NoteAttachment struct {
	ID         int64  `gorm:"primaryKey"`
	NoteID     int64  `gorm:"not null;index"`
	Name       string `gorm:"not null"`
	Key        string `gorm:"not null"`
	Size       int64  `gorm:"not null"`
	MimeType   string
	UploadedAt int64 `gorm:"not null"`
}
