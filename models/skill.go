package models

import (
	"fmt"
	"time"
)

// Skill is a technology or competence shown on the site and used to tag projects and posts.
type Skill struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Name             string    `json:"name" gorm:"size:50;not null;uniqueIndex:idx_skill_name" validate:"required,max=50"`
	Category         string    `json:"category" gorm:"size:50;not null;index" validate:"oneof=frontend backend database framework tool other"`
	ProficiencyLevel int       `json:"proficiency_level" gorm:"not null" validate:"min=1,max=4"`
	IsFeatured       bool      `json:"is_featured" gorm:"not null;index"`
	CreatedAt        time.Time `json:"created_at"`
}

// CategoryLabel returns the display label of the skill's category.
func (s Skill) CategoryLabel() string {
	return SkillCategories.Label(s.Category)
}

// ProficiencyLabel returns Beginner..Expert.
func (s Skill) ProficiencyLabel() string {
	if label, ok := ProficiencyLevels[s.ProficiencyLevel]; ok {
		return label
	}
	return ""
}

func (s Skill) String() string {
	return fmt.Sprintf("%s (%s)", s.Name, s.CategoryLabel())
}
