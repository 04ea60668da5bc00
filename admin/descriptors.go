package admin

import (
	"strconv"

	"github.com/rpupo63/portfolio-site/models"
)

// Entity names used in admin URLs.
const (
	EntitySkills       = "skills"
	EntityProjects     = "projects"
	EntityMessages     = "messages"
	EntityPersonalInfo = "personal-info"
	EntityBlogPosts    = "blog-posts"
)

func proficiencyChoices() []models.Choice {
	choices := make([]models.Choice, 0, len(models.ProficiencyLevels))
	for level := 1; level <= len(models.ProficiencyLevels); level++ {
		choices = append(choices, models.Choice{Value: strconv.Itoa(level), Label: models.ProficiencyLevels[level]})
	}
	return choices
}

func SkillDescriptor() Descriptor {
	return Descriptor{
		Entity:      EntitySkills,
		DisplayName: "Skills",
		Fields: []Field{
			{Name: "id", Label: "ID", Kind: KindInt, ReadOnly: true},
			{Name: "name", Label: "Name", Kind: KindString, Listed: true, Searchable: true},
			{Name: "category", Label: "Category", Kind: KindChoice, Choices: models.SkillCategories, Listed: true, Filterable: true},
			{Name: "proficiency_level", Label: "Proficiency level", Kind: KindInt, Choices: proficiencyChoices(), Listed: true, Filterable: true, Editable: true},
			{Name: "is_featured", Label: "Is featured", Kind: KindBool, Listed: true, Filterable: true, Editable: true},
			{Name: "created_at", Label: "Created at", Kind: KindDateTime, Listed: true, ReadOnly: true},
		},
		Ordering:  []string{"category", "name"},
		CanCreate: true,
		CanDelete: true,
		model:     func() interface{} { return &models.Skill{} },
		rows:      func() interface{} { return &[]models.Skill{} },
	}
}

func ProjectDescriptor() Descriptor {
	return Descriptor{
		Entity:      EntityProjects,
		DisplayName: "Projects",
		Fields: []Field{
			{Name: "id", Label: "ID", Kind: KindInt, ReadOnly: true},
			{Name: "title", Label: "Title", Kind: KindString, Listed: true, Searchable: true},
			{Name: "slug", Label: "Slug", Kind: KindString},
			{Name: "short_description", Label: "Short description", Kind: KindString, Searchable: true},
			{Name: "detailed_description", Label: "Detailed description", Kind: KindText},
			{Name: "technologies", Label: "Technologies", Kind: KindSkills, Filterable: true,
				linkTable: "project_technologies", ownerKey: "project_id"},
			{Name: "live_url", Label: "Live URL", Kind: KindString},
			{Name: "github_url", Label: "GitHub URL", Kind: KindString},
			{Name: "featured_image", Label: "Featured image", Kind: KindString},
			{Name: "demo_video", Label: "Demo video", Kind: KindString},
			{Name: "start_date", Label: "Start date", Kind: KindDate},
			{Name: "end_date", Label: "End date", Kind: KindDate},
			{Name: "is_featured", Label: "Is featured", Kind: KindBool, Listed: true, Filterable: true, Editable: true},
			{Name: "is_published", Label: "Is published", Kind: KindBool, Listed: true, Filterable: true, Editable: true},
			{Name: "display_order", Label: "Display order", Kind: KindInt, Listed: true, Editable: true},
			{Name: "created_at", Label: "Created at", Kind: KindDateTime, Listed: true, ReadOnly: true},
			{Name: "updated_at", Label: "Updated at", Kind: KindDateTime, ReadOnly: true},
		},
		Ordering:  []string{"display_order", "-created_at", "-id"},
		CanCreate: true,
		CanDelete: true,
		preloads:  []string{"Technologies"},
		model:     func() interface{} { return &models.Project{} },
		rows:      func() interface{} { return &[]models.Project{} },
	}
}

func ContactMessageDescriptor() Descriptor {
	return Descriptor{
		Entity:      EntityMessages,
		DisplayName: "Contact Messages",
		Fields: []Field{
			{Name: "id", Label: "ID", Kind: KindInt, ReadOnly: true},
			{Name: "name", Label: "Name", Kind: KindString, Listed: true, Searchable: true},
			{Name: "email", Label: "Email", Kind: KindString, Listed: true, Searchable: true},
			{Name: "subject", Label: "Subject", Kind: KindString, Listed: true, Searchable: true},
			{Name: "message", Label: "Message", Kind: KindText, Searchable: true},
			{Name: "inquiry_type", Label: "Inquiry type", Kind: KindChoice, Choices: models.InquiryTypes, Listed: true, Filterable: true},
			{Name: "is_read", Label: "Is read", Kind: KindBool, Listed: true, Filterable: true, Editable: true},
			{Name: "is_replied", Label: "Is replied", Kind: KindBool, Listed: true, Filterable: true, Editable: true},
			{Name: "created_at", Label: "Created at", Kind: KindDateTime, Listed: true, ReadOnly: true},
		},
		Ordering:  []string{"-created_at", "-id"},
		CanCreate: true,
		CanDelete: true,
		model:     func() interface{} { return &models.ContactMessage{} },
		rows:      func() interface{} { return &[]models.ContactMessage{} },
	}
}

// PersonalInfoDescriptor can be created only while no row exists and never deleted.
func PersonalInfoDescriptor() Descriptor {
	return Descriptor{
		Entity:      EntityPersonalInfo,
		DisplayName: "Personal Info",
		Fields: []Field{
			{Name: "full_name", Label: "Full name", Kind: KindString, Listed: true},
			{Name: "preferred_name", Label: "Preferred name", Kind: KindString},
			{Name: "title", Label: "Title", Kind: KindString, Listed: true},
			{Name: "profile_image", Label: "Profile image", Kind: KindString},
			{Name: "hero_description", Label: "Hero description", Kind: KindText},
			{Name: "about_description", Label: "About description", Kind: KindText},
			{Name: "email", Label: "Email", Kind: KindString, Listed: true},
			{Name: "phone", Label: "Phone", Kind: KindString},
			{Name: "location", Label: "Location", Kind: KindString},
			{Name: "github_url", Label: "GitHub URL", Kind: KindString},
			{Name: "linkedin_url", Label: "LinkedIn URL", Kind: KindString},
			{Name: "twitter_url", Label: "Twitter URL", Kind: KindString},
			{Name: "resume_file", Label: "Resume file", Kind: KindString},
			{Name: "portfolio_url", Label: "Portfolio URL", Kind: KindString},
			{Name: "is_active", Label: "Is active", Kind: KindBool, Listed: true},
			{Name: "updated_at", Label: "Updated at", Kind: KindDateTime, Listed: true, ReadOnly: true},
		},
		Ordering:  []string{"id"},
		CanCreate: true,
		CanDelete: false,
		Singleton: true,
		model:     func() interface{} { return &models.PersonalInfo{} },
		rows:      func() interface{} { return &[]models.PersonalInfo{} },
	}
}

func BlogPostDescriptor() Descriptor {
	return Descriptor{
		Entity:      EntityBlogPosts,
		DisplayName: "Blog Posts",
		Fields: []Field{
			{Name: "id", Label: "ID", Kind: KindInt, ReadOnly: true},
			{Name: "title", Label: "Title", Kind: KindString, Listed: true, Searchable: true},
			{Name: "slug", Label: "Slug", Kind: KindString},
			{Name: "excerpt", Label: "Excerpt", Kind: KindString, Searchable: true},
			{Name: "content", Label: "Content", Kind: KindText, Searchable: true},
			{Name: "featured_image", Label: "Featured image", Kind: KindString},
			{Name: "category", Label: "Category", Kind: KindChoice, Choices: models.BlogCategories, Listed: true, Filterable: true},
			{Name: "tags", Label: "Tags", Kind: KindSkills, Filterable: true,
				linkTable: "blog_post_tags", ownerKey: "blog_post_id"},
			{Name: "is_published", Label: "Is published", Kind: KindBool, Listed: true, Filterable: true, Editable: true},
			{Name: "published_at", Label: "Published at", Kind: KindDateTime, Listed: true},
			{Name: "created_at", Label: "Created at", Kind: KindDateTime, Listed: true, ReadOnly: true},
			{Name: "updated_at", Label: "Updated at", Kind: KindDateTime, ReadOnly: true},
		},
		Ordering:  []string{"-created_at", "-id"},
		CanCreate: true,
		CanDelete: true,
		preloads:  []string{"Tags"},
		model:     func() interface{} { return &models.BlogPost{} },
		rows:      func() interface{} { return &[]models.BlogPost{} },
	}
}

// DefaultRegistry registers every record type in sidebar order.
func DefaultRegistry() *Registry {
	return NewRegistry(
		PersonalInfoDescriptor(),
		SkillDescriptor(),
		ProjectDescriptor(),
		BlogPostDescriptor(),
		ContactMessageDescriptor(),
	)
}
