package contract

type AddressPayload struct {
	Street  string `json:"street" validate:"omitempty,max=200"`
	City    string `json:"city" validate:"omitempty,max=100"`
	State   string `json:"state" validate:"omitempty,max=100"`
	ZipCode string `json:"zipCode" validate:"omitempty,max=20"`
	Country string `json:"country" validate:"omitempty,max=100"`
}

type ClientRequest struct {
	Name            string          `json:"name" validate:"required,max=100"`
	Email           string          `json:"email" validate:"omitempty,email"`
	Phone           string          `json:"phone" validate:"required,phoneformat"`
	AlternatePhone  string          `json:"alternatePhone" validate:"omitempty,phoneformat"`
	Address         *AddressPayload `json:"address"`
	CaseType        string          `json:"caseType" validate:"required,oneof=CRIMINAL CIVIL CORPORATE FAMILY PROPERTY TAX LABOR CONSTITUTIONAL OTHER"`
	CaseNumber      string          `json:"caseNumber" validate:"omitempty,max=50"`
	CaseDescription string          `json:"caseDescription" validate:"omitempty,max=1000"`
	Status          string          `json:"status" validate:"omitempty,oneof=ACTIVE CLOSED ON_HOLD PENDING"`
	Priority        string          `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	RetainerFee     *float64        `json:"retainerFee" validate:"omitempty,gte=0"`
	HourlyRate      *float64        `json:"hourlyRate" validate:"omitempty,gte=0"`
}

type UpdateClientRequest struct {
	Name            *string         `json:"name" validate:"omitempty,max=100"`
	Email           *string         `json:"email" validate:"omitempty,email"`
	Phone           *string         `json:"phone" validate:"omitempty,phoneformat"`
	AlternatePhone  *string         `json:"alternatePhone" validate:"omitempty,phoneformat"`
	Address         *AddressPayload `json:"address"`
	CaseType        *string         `json:"caseType" validate:"omitempty,oneof=CRIMINAL CIVIL CORPORATE FAMILY PROPERTY TAX LABOR CONSTITUTIONAL OTHER"`
	CaseNumber      *string         `json:"caseNumber" validate:"omitempty,max=50"`
	CaseDescription *string         `json:"caseDescription" validate:"omitempty,max=1000"`
	Status          *string         `json:"status" validate:"omitempty,oneof=ACTIVE CLOSED ON_HOLD PENDING"`
	Priority        *string         `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	RetainerFee     *float64        `json:"retainerFee" validate:"omitempty,gte=0"`
	HourlyRate      *float64        `json:"hourlyRate" validate:"omitempty,gte=0"`
	TotalBilled     *float64        `json:"totalBilled" validate:"omitempty,gte=0"`
}

type ClientListQuery struct {
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	Search    string `query:"search"`
	Status    string `query:"status"`
	CaseType  string `query:"caseType"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
}

type ClientNotePayload struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type ClientNoteResponse struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

type ClientResponse struct {
	ID              int64                 `json:"id"`
	Name            string                `json:"name"`
	Email           string                `json:"email,omitempty"`
	Phone           string                `json:"phone"`
	AlternatePhone  string                `json:"alternatePhone,omitempty"`
	Address         *AddressPayload       `json:"address,omitempty"`
	CaseType        string                `json:"caseType"`
	CaseNumber      string                `json:"caseNumber,omitempty"`
	CaseDescription string                `json:"caseDescription,omitempty"`
	Status          string                `json:"status"`
	Priority        string                `json:"priority"`
	RetainerFee     float64               `json:"retainerFee"`
	HourlyRate      float64               `json:"hourlyRate"`
	TotalBilled     float64               `json:"totalBilled"`
	Notes           []*ClientNoteResponse `json:"notes,omitempty"`
	CreatedAt       string                `json:"createdAt"`
	UpdatedAt       string                `json:"updatedAt"`
}

// ClientSummary is the projection embedded in appointment and note
// responses in place of the referenced client.
type ClientSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

type ClientSuggestion struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	CaseNumber string `json:"caseNumber,omitempty"`
}
