package models

import (
	"fmt"
	"time"
)

// PersonalInfoID is the primary key of the only personal info row.
const PersonalInfoID uint = 1

// PersonalInfo holds the site owner's profile. Exactly one row exists.
type PersonalInfo struct {
	ID               uint      `json:"id" gorm:"primaryKey;autoIncrement:false"`
	FullName         string    `json:"full_name" gorm:"size:100;not null" validate:"required,max=100"`
	PreferredName    string    `json:"preferred_name" gorm:"size:50;not null" validate:"required,max=50"`
	Title            string    `json:"title" gorm:"size:100;not null" validate:"required,max=100"`
	HeroDescription  string    `json:"hero_description" gorm:"type:text;not null" validate:"required"`
	AboutDescription string    `json:"about_description" gorm:"type:text;not null" validate:"required"`
	Email            string    `json:"email" gorm:"size:254;not null" validate:"required,email,max=254"`
	Phone            string    `json:"phone" gorm:"size:20" validate:"max=20"`
	Location         string    `json:"location" gorm:"size:100"`
	GithubURL        string    `json:"github_url" gorm:"size:500" validate:"omitempty,http_url"`
	LinkedinURL      string    `json:"linkedin_url" gorm:"size:500" validate:"omitempty,http_url"`
	TwitterURL       string    `json:"twitter_url" gorm:"size:500" validate:"omitempty,http_url"`
	ResumeFile       string    `json:"resume_file" gorm:"size:500"`
	PortfolioURL     string    `json:"portfolio_url" gorm:"size:500" validate:"omitempty,http_url"`
	ProfileImage     string    `json:"profile_image" gorm:"size:500"`
	IsActive         bool      `json:"is_active" gorm:"not null"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName keeps the singular table name used for the single-row store.
func (PersonalInfo) TableName() string {
	return "personal_info"
}

// DefaultPersonalInfo is the row written the first time the site is loaded.
func DefaultPersonalInfo() PersonalInfo {
	return PersonalInfo{
		ID:               PersonalInfoID,
		FullName:         "Benedict Nii Odartey Mensah",
		PreferredName:    "Benny",
		Title:            "Full-Stack Developer",
		HeroDescription:  "Hi, I'm Benny! I'm a full-stack developer skilled in Python, Django, HTML, CSS, and JavaScript.",
		AboutDescription: "I began with backend development but expanded into full-stack so I could design and build complete web applications.",
		Email:            "benymento4@gmail.com",
		IsActive:         true,
	}
}

func (p PersonalInfo) String() string {
	return fmt.Sprintf("%s - Personal Info", p.FullName)
}
