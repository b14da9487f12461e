package models

type GroupFunction struct {
	Base
	Name         string `gorm:"size:255;not null" json:"name"`
	Description  string `gorm:"type:text" json:"description"`
	DisplayOrder int    `gorm:"not null;default:0" json:"displayOrder"`
	Color        string `gorm:"size:50" json:"color"`
}

func (GroupFunction) TableName() string { return "group_functions" }

func (g GroupFunction) OrderIndex() int { return g.DisplayOrder }

func (g GroupFunction) SearchText() []string { return []string{g.Name, g.Description} }
