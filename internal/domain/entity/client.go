package entity

type CaseType string

const (
	CaseTypeCriminal       CaseType = "CRIMINAL"
	CaseTypeCivil          CaseType = "CIVIL"
	CaseTypeCorporate      CaseType = "CORPORATE"
	CaseTypeFamily         CaseType = "FAMILY"
	CaseTypeProperty       CaseType = "PROPERTY"
	CaseTypeTax            CaseType = "TAX"
	CaseTypeLabor          CaseType = "LABOR"
	CaseTypeConstitutional CaseType = "CONSTITUTIONAL"
	CaseTypeOther          CaseType = "OTHER"
)

type ClientStatus string

const (
	ClientStatusActive  ClientStatus = "ACTIVE"
	ClientStatusClosed  ClientStatus = "CLOSED"
	ClientStatusOnHold  ClientStatus = "ON_HOLD"
	ClientStatusPending ClientStatus = "PENDING"
)

// Client is a represented party. OwnerID is immutable after creation; every
// query is scoped by it. CaseNumber is unique per owner within the non-empty
// set (enforced in the service, empty values are exempt).
type Client struct {
	ID              int64  `gorm:"primaryKey"`
	OwnerID         int64  `gorm:"not null;index"`
	Name            string `gorm:"not null"`
	Email           string
	Phone           string `gorm:"not null"`
	AlternatePhone  string
	Street          string
	City            string
	State           string
	ZipCode         string
	Country         string
	CaseType        CaseType     `gorm:"not null"`
	CaseNumber      string       `gorm:"index"`
	CaseDescription string
	Status          ClientStatus `gorm:"not null;default:ACTIVE"`
	Priority        Priority     `gorm:"not null;default:MEDIUM"`
	RetainerFee     float64
	HourlyRate      float64
	TotalBilled     float64   `gorm:"not null;default:0"`
	Lifecycle       Lifecycle `gorm:"not null;default:ACTIVE;index"`
	CreatedAt       int64     `gorm:"not null"`
	UpdatedAt       int64     `gorm:"not null;autoUpdateTime:false"`

	// Relations
	Notes []ClientNote `gorm:"foreignKey:ClientID"`
}

// ClientNote is a free-form annotation appended to a client's record.
type ClientNote struct {
	ID        int64  `gorm:"primaryKey"`
	ClientID  int64  `gorm:"not null;index"`
	Content   string `gorm:"not null"`
	CreatedAt int64  `gorm:"not null"`
}
