package model

// Reference data managed by administrators.

type Symptom struct {
	Base
	Name string `db:"name" json:"name"`
}

type Medicine struct {
	Base
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description,omitempty"`
}

type ICDCode struct {
	Base
	Code        string `db:"code" json:"code"`
	Description string `db:"description" json:"description"`
}

type IssueStatus string

const (
	IssueStatusOpen     IssueStatus = "open"
	IssueStatusResolved IssueStatus = "resolved"
)

// Issue is a user-reported problem or feedback item.
type Issue struct {
	Base
	ReporterID string      `db:"reporter_id" json:"reporter_id"`
	Subject    string      `db:"subject" json:"subject"`
	Body       string      `db:"body" json:"body"`
	Status     IssueStatus `db:"status" json:"status"`
}

// AnalyticsCounts backs the admin dashboard.
type AnalyticsCounts struct {
	Patients      int `db:"patients" json:"patients"`
	Doctors       int `db:"doctors" json:"doctors"`
	Appointments  int `db:"appointments" json:"appointments"`
	Consultations int `db:"consultations" json:"consultations"`
	OpenIssues    int `db:"open_issues" json:"open_issues"`
}

type CreateReferenceRequest struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code"`
	Description string `json:"description"`
}
