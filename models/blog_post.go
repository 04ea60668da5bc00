package models

import (
	"time"

	"gorm.io/gorm"
)

// BlogPost represents a blog post written in Markdown
type BlogPost struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Title         string     `json:"title" gorm:"size:200;not null" validate:"required,max=200"`
	Slug          string     `json:"slug" gorm:"size:220;not null;uniqueIndex:idx_blog_post_slug" validate:"required,max=220,slug"`
	Content       string     `json:"content" gorm:"type:text;not null" validate:"required"`
	Excerpt       string     `json:"excerpt" gorm:"size:300" validate:"max=300"`
	FeaturedImage string     `json:"featured_image" gorm:"size:500"`
	Category      string     `json:"category" gorm:"size:50;not null;index" validate:"oneof=tech tutorial personal project"`
	Tags          []Skill    `json:"tags" gorm:"many2many:blog_post_tags;constraint:OnDelete:CASCADE"`
	IsPublished   bool       `json:"is_published" gorm:"not null;index"`
	PublishedAt   *time.Time `json:"published_at,omitempty" gorm:"index"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// BeforeSave stamps the publication time on the first save as published.
func (p *BlogPost) BeforeSave(tx *gorm.DB) error {
	p.StampPublished(time.Now())
	return nil
}

// StampPublished sets PublishedAt to now when the post is published and has never been stamped.
func (p *BlogPost) StampPublished(now time.Time) {
	if p.IsPublished && p.PublishedAt == nil {
		stamped := now
		p.PublishedAt = &stamped
	}
}

// CategoryLabel returns the display label of the post's category.
func (p BlogPost) CategoryLabel() string {
	return BlogCategories.Label(p.Category)
}

// TagNames lists the names of the linked skills.
func (p BlogPost) TagNames() []string {
	names := make([]string, len(p.Tags))
	for i, tag := range p.Tags {
		names[i] = tag.Name
	}
	return names
}

func (p BlogPost) String() string {
	return p.Title
}
