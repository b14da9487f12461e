package models

type DesignFunctionTemplate struct {
	Base
	Name           string           `gorm:"size:255;not null" json:"name"`
	Code           string           `gorm:"size:100" json:"code"`
	Description    string           `gorm:"type:text" json:"description"`
	GroupFunction  GroupFunctionRef `gorm:"column:group_function_id;size:36" json:"groupFunction"`
	ManpowerFactor float64          `gorm:"not null;default:1" json:"manpowerFactor"`
	DisplayOrder   int              `gorm:"not null;default:0" json:"displayOrder"`
	Color          string           `gorm:"size:50" json:"color"`
}

func (DesignFunctionTemplate) TableName() string { return "design_function_templates" }

func (t DesignFunctionTemplate) OrderIndex() int { return t.DisplayOrder }

func (t DesignFunctionTemplate) SearchText() []string {
	fields := []string{t.Name, t.Code, t.Description}
	if t.GroupFunction.Resolved != nil {
		fields = append(fields, t.GroupFunction.Resolved.Name)
	}
	return fields
}
