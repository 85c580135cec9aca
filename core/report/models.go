package report

import (
	"github.com/tvqdev/deanboard/core"
)

// Report lifecycle states.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusResolved   = "resolved"
	StatusRejected   = "rejected"
)

// Report types used by students when filing.
const (
	TypeAcademic = "academic"
	TypeFacility = "facility"
	TypeTuition  = "tuition"
	TypeOther    = "other"
)

// Report is a student-submitted issue; deans move it through the lifecycle and
// attach a response. Timestamps are RFC 3339 strings as sent on the wire.
type Report struct {
	ID             int    `json:"id"`
	StudentCode    string `json:"student_code"`
	StudentName    string `json:"student_name"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	ReportType     string `json:"report_type"`
	Status         string `json:"status"`
	DeanResponse   string `json:"dean_response,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
	ResolvedAt     string `json:"resolved_at,omitempty"`
	ResolvedByName string `json:"resolved_by_name,omitempty"`
}

type UpdateReport struct {
	Status       string `json:"status" validate:"required,oneof=pending processing resolved rejected"`
	DeanResponse string `json:"dean_response"`
}

func (ur *UpdateReport) Validate() error {
	ur.DeanResponse = core.CleanString(ur.DeanResponse)
	if err := core.Validate.Struct(ur); err != nil {
		return core.TranslateErrors(err)
	}
	return nil
}

// Stats is the report counter summary shown at the top of the reports screen.
type Stats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Resolved   int `json:"resolved"`
	Rejected   int `json:"rejected"`
}
