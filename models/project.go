package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Project represents a portfolio project with its links, media references and technologies
type Project struct {
	ID                  uint            `json:"id" gorm:"primaryKey"`
	Title               string          `json:"title" gorm:"size:200;not null" validate:"required,max=200"`
	Slug                string          `json:"slug" gorm:"size:220;not null;uniqueIndex:idx_project_slug" validate:"required,max=220,slug"`
	ShortDescription    string          `json:"short_description" gorm:"size:300;not null" validate:"required,max=300"`
	DetailedDescription string          `json:"detailed_description" gorm:"type:text"`
	LiveURL             string          `json:"live_url" gorm:"size:500" validate:"omitempty,http_url,max=500"`
	GithubURL           string          `json:"github_url" gorm:"size:500" validate:"omitempty,http_url,max=500"`
	FeaturedImage       string          `json:"featured_image" gorm:"size:500" validate:"max=500"`
	DemoVideo           string          `json:"demo_video" gorm:"size:500" validate:"max=500"`
	Technologies        []Skill         `json:"technologies" gorm:"many2many:project_technologies;constraint:OnDelete:CASCADE"`
	StartDate           *datatypes.Date `json:"start_date,omitempty"`
	EndDate             *datatypes.Date `json:"end_date,omitempty"`
	IsFeatured          bool            `json:"is_featured" gorm:"not null;index"`
	IsPublished         bool            `json:"is_published" gorm:"not null;index"`
	DisplayOrder        int             `json:"display_order" gorm:"not null" validate:"min=0"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// IsOngoing reports whether the project has started and has no end date.
func (p Project) IsOngoing() bool {
	return p.StartDate != nil && p.EndDate == nil
}

// URL is the public detail page path.
func (p Project) URL() string {
	return fmt.Sprintf("/project/%s/", p.Slug)
}

// TechnologyNames lists the names of the linked skills.
func (p Project) TechnologyNames() []string {
	names := make([]string, len(p.Technologies))
	for i, tech := range p.Technologies {
		names[i] = tech.Name
	}
	return names
}

// TechnologyIDs lists the IDs of the linked skills.
func (p Project) TechnologyIDs() []uint {
	ids := make([]uint, len(p.Technologies))
	for i, tech := range p.Technologies {
		ids[i] = tech.ID
	}
	return ids
}

func (p Project) String() string {
	return p.Title
}
