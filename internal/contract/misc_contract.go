package contract

// Envelope is the uniform response body: { success, data?, message?, pagination? }.
// Error responses carry the same success field through apierror.
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
}

func OK(data any) *Envelope {
	return &Envelope{Success: true, Data: data}
}

func OKMessage(message string, data any) *Envelope {
	return &Envelope{Success: true, Message: message, Data: data}
}

func OKPage(data any, p *Pagination) *Envelope {
	return &Envelope{Success: true, Data: data, Pagination: p}
}

func NewPagination(page, limit int, total int64) *Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return &Pagination{
		Current: page,
		Pages:   pages,
		Total:   total,
		Limit:   limit,
	}
}
