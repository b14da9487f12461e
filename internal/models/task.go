package models

type Task struct {
	Base
	TaskName            string  `gorm:"size:255;not null" json:"taskName"`
	Description         string  `gorm:"type:text" json:"description"`
	DefaultDurationDays float64 `json:"defaultDurationDays"`
	DefaultRevision     string  `gorm:"size:50" json:"defaultRevision"`
	DisplayOrder        int     `gorm:"not null;default:0" json:"displayOrder"`
	Color               string  `gorm:"size:50" json:"color"`
}

func (t Task) OrderIndex() int { return t.DisplayOrder }

func (t Task) SearchText() []string { return []string{t.TaskName, t.Description} }
