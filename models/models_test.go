package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Portfolio Site", "my-portfolio-site"},
		{"Café Menu", "cafe-menu"},
		{"  Hello, World!  ", "hello-world"},
		{"Go & Rust -- together", "go-rust-together"},
		{"already-a-slug", "already-a-slug"},
		{"___", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Slugify(tt.in)
			assert.Equal(t, tt.want, got)
			if got != "" {
				assert.True(t, ValidSlug(got))
			}
		})
	}

	assert.False(t, ValidSlug("Upper-Case"))
	assert.False(t, ValidSlug("trailing-"))
	assert.False(t, ValidSlug(""))
}

func TestStampPublished(t *testing.T) {
	first := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	draft := BlogPost{}
	draft.StampPublished(first)
	assert.Nil(t, draft.PublishedAt)

	post := BlogPost{IsPublished: true}
	post.StampPublished(first)
	if assert.NotNil(t, post.PublishedAt) {
		assert.Equal(t, first, *post.PublishedAt)
	}

	post.StampPublished(later)
	assert.Equal(t, first, *post.PublishedAt, "the first publication time is kept")

	post.IsPublished = false
	post.StampPublished(later)
	assert.Equal(t, first, *post.PublishedAt)
}

func TestContactMessageDisplay(t *testing.T) {
	long := ContactMessage{Name: "Jane", Message: strings.Repeat("é", 150)}
	short := long.ShortMessage()
	assert.Equal(t, 103, len([]rune(short)))
	assert.True(t, strings.HasSuffix(short, "..."))

	exact := ContactMessage{Message: strings.Repeat("x", 100)}
	assert.Equal(t, exact.Message, exact.ShortMessage())

	assert.Equal(t, "Jane - Contact Message", long.String())
	assert.Equal(t, "Jane - Hi", ContactMessage{Name: "Jane", Subject: "Hi"}.String())
	assert.Equal(t, "Job Opportunity", ContactMessage{InquiryType: "job"}.InquiryLabel())
}

func TestSkillAndProjectHelpers(t *testing.T) {
	skill := Skill{Name: "Django", Category: "backend", ProficiencyLevel: 3}
	assert.Equal(t, "Advanced", skill.ProficiencyLabel())
	assert.Equal(t, "Django (Backend)", skill.String())
	assert.Equal(t, "", Skill{ProficiencyLevel: 9}.ProficiencyLabel())

	start := datatypes.Date(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	project := Project{Slug: "site", StartDate: &start}
	assert.True(t, project.IsOngoing())
	assert.Equal(t, "/project/site/", project.URL())

	project.EndDate = &start
	assert.False(t, project.IsOngoing())
	assert.False(t, Project{}.IsOngoing())
}

func TestChoicesLabel(t *testing.T) {
	assert.Equal(t, "Project Update", BlogCategories.Label("project"))
	assert.Equal(t, "unknown", BlogCategories.Label("unknown"))
	assert.True(t, SkillCategories.Contains("tool"))
	assert.Equal(t, []string{"general", "job", "collaboration", "feedback", "other"}, InquiryTypes.Values())
}

func TestFindColumnMismatches(t *testing.T) {
	got := findColumnMismatches(
		[]string{"id", "title", "legacy_thumbnail", "archived"},
		[]string{"id", "title", "slug"},
	)
	assert.Equal(t, []string{"archived", "legacy_thumbnail"}, got)
	assert.Empty(t, findColumnMismatches([]string{"id"}, []string{"id", "name"}))
}
