package models

type Discipline struct {
	Base
	Name         string `gorm:"size:255;not null" json:"name"`
	Code         string `gorm:"size:100" json:"code"`
	Description  string `gorm:"type:text" json:"description"`
	Color        string `gorm:"size:50" json:"color"`
	DisplayOrder int    `gorm:"not null;default:0" json:"displayOrder"`
}

func (d Discipline) OrderIndex() int { return d.DisplayOrder }

func (d Discipline) SearchText() []string { return []string{d.Name, d.Code, d.Description} }
