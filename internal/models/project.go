package models

type ProjectStatus string

const (
	StatusDraft           ProjectStatus = "Draft"
	StatusPlanned         ProjectStatus = "Planned"
	StatusPendingApproval ProjectStatus = "Pending Approval"
	StatusActive          ProjectStatus = "Active"
	StatusCompleted       ProjectStatus = "Completed"
	StatusCancelled       ProjectStatus = "Cancelled"
)

// ProjectStatuses lists the accepted status values.
var ProjectStatuses = []string{
	string(StatusDraft),
	string(StatusPlanned),
	string(StatusPendingApproval),
	string(StatusActive),
	string(StatusCompleted),
	string(StatusCancelled),
}

type Project struct {
	Base
	ProjectName     string        `gorm:"size:255;not null" json:"projectName"`
	ProjectCode     *string       `gorm:"size:100;uniqueIndex" json:"projectCode,omitempty"`
	ProjectLocation string        `gorm:"size:255" json:"projectLocation"`
	Description     string        `gorm:"type:text" json:"description"`
	StartDate       Date          `gorm:"not null" json:"startDate"`
	DueDate         *Date         `json:"dueDate,omitempty"`
	Client          string        `gorm:"size:255" json:"client"`
	Budget          *float64      `json:"budget,omitempty"`
	Status          ProjectStatus `gorm:"type:varchar(50);not null" json:"status"`
}

func (p Project) SearchText() []string {
	code := ""
	if p.ProjectCode != nil {
		code = *p.ProjectCode
	}
	return []string{p.ProjectName, code, p.Description, p.Client}
}
