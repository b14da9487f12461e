package models

// PlanningTemplate stores its designFunctionTemplate, tasks, disciplines and
// groupFunction as plain text, exactly as the API contract has them: these are
// labels, not references, and consumers depend on that.
type PlanningTemplate struct {
	Base
	DesignFunctionTemplate string     `gorm:"size:255;not null" json:"designFunctionTemplate"`
	DesignPhase            string     `gorm:"size:255;not null" json:"designPhase"`
	Tasks                  StringList `gorm:"type:text" json:"tasks"`
	Disciplines            StringList `gorm:"type:text" json:"disciplines"`
	GroupFunction          string     `gorm:"size:255" json:"groupFunction"`
	DisciplineCostRates    float64    `json:"disciplineCostRates"`
}

func (PlanningTemplate) TableName() string { return "planning_templates" }

func (p PlanningTemplate) SearchText() []string {
	return []string{p.DesignFunctionTemplate, p.DesignPhase, p.GroupFunction}
}
