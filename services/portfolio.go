package services

import (
	"context"
	"encoding/json"
	"html/template"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/rpupo63/portfolio-site/cache"
	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/forms"
	"github.com/rpupo63/portfolio-site/models"
)

const homeProjectsLimit = 6

// SkillGroup is the featured skills of one category, in display order.
type SkillGroup struct {
	Category string
	Skills   []models.Skill
}

type HomePage struct {
	PersonalInfo    *models.PersonalInfo
	FeaturedProject *models.Project
	Projects        []models.Project
	Skills          []models.Skill
	SkillGroups     []SkillGroup
	// Fallback is set when the page was built from personal info alone after a failure.
	Fallback bool
}

type ProjectListPage struct {
	Projects          []models.Project
	AllTechnologies   []models.Skill
	CurrentTechFilter string
	SearchQuery       string
}

type ProjectDetailPage struct {
	Project         *models.Project
	RelatedProjects []models.Project
}

type WorkPage struct {
	Projects         []models.Project
	FeaturedProjects []models.Project
}

type BlogPage struct {
	Posts []models.BlogPost
}

type BlogPostPage struct {
	Post *models.BlogPost
	HTML template.HTML
}

// ProjectSummary is one project in the public JSON API.
type ProjectSummary struct {
	ID           uint     `json:"id"`
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Description  string   `json:"description"`
	URL          string   `json:"url"`
	GithubURL    string   `json:"github_url"`
	Image        string   `json:"image"`
	Technologies []string `json:"technologies"`
	IsFeatured   bool     `json:"is_featured"`
}

type ProjectsResponse struct {
	Projects []ProjectSummary `json:"projects"`
}

// Portfolio builds the read models of the public pages and handles public submissions.
type Portfolio struct {
	db       database.Database
	cache    cache.Cache
	cacheTTL time.Duration
	notifier *Notifier
	markdown *MarkdownRenderer
	fills    singleflight.Group
	logger   zerolog.Logger
}

func NewPortfolio(db database.Database, c cache.Cache, cacheTTL time.Duration, notifier *Notifier) *Portfolio {
	if c == nil {
		c = cache.Nop{}
	}
	if notifier == nil {
		notifier = NewNotifier(NopMailer{}, "")
	}
	return &Portfolio{
		db:       db,
		cache:    c,
		cacheTTL: cacheTTL,
		notifier: notifier,
		markdown: NewMarkdownRenderer(),
		logger:   log.With().Str("component", "portfolio").Logger(),
	}
}

// Home never fails: on error it logs and falls back to a page with only the personal info.
func (p *Portfolio) Home(ctx context.Context) HomePage {
	page, err := p.home(ctx)
	if err == nil {
		return page
	}
	p.logger.Error().Err(err).Msg("error in home view")
	return p.homeFallback(ctx)
}

func (p *Portfolio) home(ctx context.Context) (HomePage, error) {
	info, err := p.db.PersonalInfoStore().Load(ctx)
	if err != nil {
		return HomePage{}, err
	}

	spotlight, err := p.db.ProjectRepo().FindPublished(ctx, database.ProjectFilter{FeaturedOnly: true, Limit: 1})
	if err != nil {
		return HomePage{}, err
	}
	projects, err := p.db.ProjectRepo().FindPublished(ctx, database.ProjectFilter{Limit: homeProjectsLimit})
	if err != nil {
		return HomePage{}, err
	}
	skills, err := p.db.SkillRepo().FindFeatured(ctx)
	if err != nil {
		return HomePage{}, err
	}

	page := HomePage{
		PersonalInfo: info,
		Projects:     projects,
		Skills:       skills,
		SkillGroups:  GroupSkills(skills),
	}
	if len(spotlight) > 0 {
		page.FeaturedProject = &spotlight[0]
	}
	return page, nil
}

func (p *Portfolio) homeFallback(ctx context.Context) HomePage {
	info, err := p.db.PersonalInfoStore().Load(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("personal info unavailable, using defaults")
		defaults := models.DefaultPersonalInfo()
		info = &defaults
	}
	return HomePage{
		PersonalInfo: info,
		Projects:     []models.Project{},
		Skills:       []models.Skill{},
		Fallback:     true,
	}
}

// GroupSkills groups skills already sorted by (category, name) under their category label,
// keeping first-appearance order.
func GroupSkills(skills []models.Skill) []SkillGroup {
	groups := []SkillGroup{}
	index := map[string]int{}
	for _, skill := range skills {
		label := skill.CategoryLabel()
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, SkillGroup{Category: label})
		}
		groups[i].Skills = append(groups[i].Skills, skill)
	}
	return groups
}

// PersonalInfo returns the site owner's profile, initializing it on first use.
func (p *Portfolio) PersonalInfo(ctx context.Context) (*models.PersonalInfo, error) {
	return p.db.PersonalInfoStore().Load(ctx)
}

// ProjectList filters published projects by technology name and free text.
func (p *Portfolio) ProjectList(ctx context.Context, tech, search string) (ProjectListPage, error) {
	projects, err := p.db.ProjectRepo().FindPublished(ctx, database.ProjectFilter{Tech: tech, Search: search})
	if err != nil {
		return ProjectListPage{}, err
	}
	technologies, err := p.db.SkillRepo().FindUsedByPublishedProjects(ctx)
	if err != nil {
		return ProjectListPage{}, err
	}
	return ProjectListPage{
		Projects:          projects,
		AllTechnologies:   technologies,
		CurrentTechFilter: tech,
		SearchQuery:       search,
	}, nil
}

// ProjectDetail loads a published project and up to three related ones.
func (p *Portfolio) ProjectDetail(ctx context.Context, slug string) (ProjectDetailPage, error) {
	project, err := p.db.ProjectRepo().FindPublishedBySlug(ctx, slug)
	if err != nil {
		return ProjectDetailPage{}, err
	}
	related, err := p.db.ProjectRepo().FindRelated(ctx, project, database.RelatedProjectsLimit)
	if err != nil {
		return ProjectDetailPage{}, err
	}
	return ProjectDetailPage{Project: project, RelatedProjects: related}, nil
}

// Work lists published projects newest first, with the featured ones separately.
func (p *Portfolio) Work(ctx context.Context) (WorkPage, error) {
	projects, err := p.db.ProjectRepo().FindPublished(ctx, database.ProjectFilter{Recent: true})
	if err != nil {
		return WorkPage{}, err
	}
	featured := make([]models.Project, 0, len(projects))
	for _, project := range projects {
		if project.IsFeatured {
			featured = append(featured, project)
		}
	}
	return WorkPage{Projects: projects, FeaturedProjects: featured}, nil
}

// APIProjects returns the encoded public projects response, served from the all_projects cache entry
// when present. Concurrent misses share one database read.
func (p *Portfolio) APIProjects(ctx context.Context) ([]byte, error) {
	if body, ok := p.cache.Get(ctx, cache.KeyAllProjects); ok {
		return body, nil
	}

	// Waiters share this fill; it outlives the request that started it.
	fillCtx := context.WithoutCancel(ctx)
	body, err, _ := p.fills.Do(cache.KeyAllProjects, func() (interface{}, error) {
		projects, err := p.db.ProjectRepo().FindPublished(fillCtx, database.ProjectFilter{})
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(NewProjectsResponse(projects))
		if err != nil {
			return nil, err
		}
		p.cache.Set(fillCtx, cache.KeyAllProjects, body, p.cacheTTL)
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}

// NewProjectsResponse maps projects onto the public JSON field names.
func NewProjectsResponse(projects []models.Project) ProjectsResponse {
	resp := ProjectsResponse{Projects: make([]ProjectSummary, len(projects))}
	for i, project := range projects {
		resp.Projects[i] = ProjectSummary{
			ID:           project.ID,
			Title:        project.Title,
			Slug:         project.Slug,
			Description:  project.ShortDescription,
			URL:          project.LiveURL,
			GithubURL:    project.GithubURL,
			Image:        project.FeaturedImage,
			Technologies: project.TechnologyNames(),
			IsFeatured:   project.IsFeatured,
		}
	}
	return resp
}

// Blog lists published posts.
func (p *Portfolio) Blog(ctx context.Context) (BlogPage, error) {
	posts, err := p.db.BlogPostRepo().FindPublished(ctx, 0)
	if err != nil {
		return BlogPage{}, err
	}
	return BlogPage{Posts: posts}, nil
}

// BlogPost loads a published post and renders its Markdown.
func (p *Portfolio) BlogPost(ctx context.Context, slug string) (BlogPostPage, error) {
	post, err := p.db.BlogPostRepo().FindPublishedBySlug(ctx, slug)
	if err != nil {
		return BlogPostPage{}, err
	}
	html, err := p.markdown.Render(post.Content)
	if err != nil {
		return BlogPostPage{}, err
	}
	return BlogPostPage{Post: post, HTML: html}, nil
}

// SubmitContact validates and stores a contact submission, then notifies the owner.
// A failed notification is logged and does not fail the submission.
func (p *Portfolio) SubmitContact(ctx context.Context, form forms.ContactForm) (*models.ContactMessage, error) {
	msg, err := form.Clean()
	if err != nil {
		return nil, err
	}
	if err := p.db.ContactMessageRepo().Add(ctx, msg); err != nil {
		return nil, err
	}
	if err := p.notifier.ContactReceived(ctx, msg); err != nil {
		p.logger.Warn().Err(err).Uint("messageId", msg.ID).Msg("failed to send email notification")
	}
	return msg, nil
}

// Subscribe validates a newsletter signup and notifies the owner.
func (p *Portfolio) Subscribe(ctx context.Context, form forms.NewsletterForm) (string, error) {
	email, err := form.Clean()
	if err != nil {
		return "", err
	}
	if err := p.notifier.NewsletterSignup(ctx, email); err != nil {
		p.logger.Warn().Err(err).Str("email", email).Msg("failed to send newsletter notification")
	}
	return email, nil
}
