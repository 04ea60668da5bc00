package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site/cache"
	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/database/dbtest"
	"github.com/rpupo63/portfolio-site/errs"
	"github.com/rpupo63/portfolio-site/forms"
	"github.com/rpupo63/portfolio-site/models"
	"github.com/rpupo63/portfolio-site/services"
)

type sentMail struct {
	subject    string
	body       string
	recipients []string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, subject, body string, recipients []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{subject: subject, body: body, recipients: recipients})
	return nil
}

type fixture struct {
	db        database.Database
	cache     *dbtest.Cache
	mailer    *fakeMailer
	portfolio *services.Portfolio
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	c := dbtest.NewCache()
	db := database.New(dbtest.New(t), c)
	mailer := &fakeMailer{}
	notifier := services.NewNotifier(mailer, "owner@example.com")
	return fixture{
		db:        db,
		cache:     c,
		mailer:    mailer,
		portfolio: services.NewPortfolio(db, c, 0, notifier),
	}
}

func (f fixture) addSkill(t *testing.T, name, category string) models.Skill {
	t.Helper()
	skill := models.Skill{Name: name, Category: category, IsFeatured: true}
	require.NoError(t, f.db.SkillRepo().Add(context.Background(), &skill))
	return skill
}

func (f fixture) addProject(t *testing.T, p models.Project) models.Project {
	t.Helper()
	if p.ShortDescription == "" {
		p.ShortDescription = p.Title + " in short"
	}
	require.NoError(t, f.db.ProjectRepo().Add(context.Background(), &p))
	return p
}

func TestHome(t *testing.T) {
	ctx := context.Background()

	t.Run("empty site still shows the owner", func(t *testing.T) {
		f := newFixture(t)
		page := f.portfolio.Home(ctx)

		require.NotNil(t, page.PersonalInfo)
		assert.Equal(t, "Benedict Nii Odartey Mensah", page.PersonalInfo.FullName)
		assert.Nil(t, page.FeaturedProject)
		assert.Empty(t, page.Projects)
		assert.Empty(t, page.SkillGroups)
		assert.False(t, page.Fallback)
	})

	t.Run("skills are grouped by category label", func(t *testing.T) {
		f := newFixture(t)
		f.addSkill(t, "React", "frontend")
		f.addSkill(t, "Django", "backend")
		f.addSkill(t, "Celery", "backend")

		page := f.portfolio.Home(ctx)
		require.Len(t, page.SkillGroups, 2)
		assert.Equal(t, "Backend", page.SkillGroups[0].Category)
		assert.Equal(t, "Celery", page.SkillGroups[0].Skills[0].Name)
		assert.Equal(t, "Django", page.SkillGroups[0].Skills[1].Name)
		assert.Equal(t, "Frontend", page.SkillGroups[1].Category)
	})

	t.Run("spotlight is the first published featured project", func(t *testing.T) {
		f := newFixture(t)
		f.addProject(t, models.Project{Title: "Hidden Star", IsPublished: false, IsFeatured: true})
		f.addProject(t, models.Project{Title: "Plain", IsPublished: true, DisplayOrder: 0})
		f.addProject(t, models.Project{Title: "Star", IsPublished: true, IsFeatured: true, DisplayOrder: 1})
		for i := 0; i < 6; i++ {
			f.addProject(t, models.Project{Title: "Filler " + string(rune('A'+i)), IsPublished: true, DisplayOrder: 10})
		}

		page := f.portfolio.Home(ctx)
		require.NotNil(t, page.FeaturedProject)
		assert.Equal(t, "Star", page.FeaturedProject.Title)
		assert.Len(t, page.Projects, 6)
	})

	t.Run("falls back to personal info when listings fail", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.db.DB().Migrator().DropTable("project_technologies", &models.Project{}))

		page := f.portfolio.Home(ctx)
		assert.True(t, page.Fallback)
		require.NotNil(t, page.PersonalInfo)
		assert.Equal(t, "Benedict Nii Odartey Mensah", page.PersonalInfo.FullName)
		assert.Empty(t, page.Projects)
		assert.Empty(t, page.Skills)
	})
}

func TestSubmitContact(t *testing.T) {
	ctx := context.Background()

	t.Run("valid submission is stored and announced", func(t *testing.T) {
		f := newFixture(t)
		msg, err := f.portfolio.SubmitContact(ctx, forms.ContactForm{
			Name:    "Jane Doe",
			Email:   "jane@example.com",
			Message: "I'd like to discuss a project.",
		})
		require.NoError(t, err)
		assert.NotZero(t, msg.ID)
		assert.Equal(t, "general", msg.InquiryType)
		assert.False(t, msg.IsRead)

		stored, err := f.db.ContactMessageRepo().FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, "Jane Doe", stored[0].Name)

		require.Len(t, f.mailer.sent, 1)
		assert.Equal(t, []string{"owner@example.com"}, f.mailer.sent[0].recipients)
		assert.True(t, strings.HasPrefix(f.mailer.sent[0].subject, "New Contact Form Submission:"))
		assert.Contains(t, f.mailer.sent[0].body, "Email: jane@example.com")
	})

	t.Run("short message is rejected and nothing is stored", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.portfolio.SubmitContact(ctx, forms.ContactForm{
			Name:    "Jane Doe",
			Email:   "jane@example.com",
			Message: "   hi   ",
		})
		require.Error(t, err)
		assert.True(t, errs.IsValidationError(err))
		require.Contains(t, errs.FieldErrors(err), "message")
		assert.Contains(t, errs.FieldErrors(err)["message"][0], "message too short")

		stored, err := f.db.ContactMessageRepo().FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, stored)
		assert.Empty(t, f.mailer.sent)
	})

	t.Run("mail failure does not fail the submission", func(t *testing.T) {
		f := newFixture(t)
		f.mailer.err = errs.NewEmailTransportError("fake", errors.New("smtp down"))

		msg, err := f.portfolio.SubmitContact(ctx, forms.ContactForm{
			Name:    "Jane Doe",
			Email:   "jane@example.com",
			Message: "Still want this stored.",
		})
		require.NoError(t, err)
		assert.NotZero(t, msg.ID)
	})
}

func TestSubscribe(t *testing.T) {
	f := newFixture(t)

	email, err := f.portfolio.Subscribe(context.Background(), forms.NewsletterForm{Email: "  reader@example.com "})
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", email)
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "New Newsletter Subscription", f.mailer.sent[0].subject)

	_, err = f.portfolio.Subscribe(context.Background(), forms.NewsletterForm{Email: "nope"})
	assert.True(t, errs.IsValidationError(err))
}

func TestAPIProjects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	goSkill := f.addSkill(t, "Go", "backend")
	f.addProject(t, models.Project{
		Title:         "Site",
		LiveURL:       "https://example.com",
		GithubURL:     "https://github.com/example/site",
		FeaturedImage: "projects/site.png",
		IsPublished:   true,
		IsFeatured:    true,
		Technologies:  []models.Skill{{ID: goSkill.ID}},
	})
	f.addProject(t, models.Project{Title: "Draft", IsPublished: false})

	body, err := f.portfolio.APIProjects(ctx)
	require.NoError(t, err)

	var resp services.ProjectsResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.Len(t, resp.Projects, 1)
	got := resp.Projects[0]
	assert.Equal(t, "Site", got.Title)
	assert.Equal(t, "site", got.Slug)
	assert.Equal(t, "Site in short", got.Description)
	assert.Equal(t, "https://example.com", got.URL)
	assert.Equal(t, "projects/site.png", got.Image)
	assert.Equal(t, []string{"Go"}, got.Technologies)
	assert.True(t, got.IsFeatured)

	cached, ok := f.cache.Get(ctx, cache.KeyAllProjects)
	require.True(t, ok)
	assert.JSONEq(t, string(body), string(cached))

	f.addProject(t, models.Project{Title: "Second", IsPublished: true})
	_, ok = f.cache.Get(ctx, cache.KeyAllProjects)
	assert.False(t, ok, "project write should drop the cached response")

	body, err = f.portfolio.APIProjects(ctx)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Len(t, resp.Projects, 2)
}

func TestAPIProjectsFollowsSkillChanges(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	skill := f.addSkill(t, "Djangoo", "backend")
	f.addProject(t, models.Project{Title: "Shop", IsPublished: true, Technologies: []models.Skill{{ID: skill.ID}}})

	body, err := f.portfolio.APIProjects(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"technologies":["Djangoo"]`)

	skill.Name = "Django"
	require.NoError(t, f.db.SkillRepo().Update(ctx, &skill))
	body, err = f.portfolio.APIProjects(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"technologies":["Django"]`)
	assert.NotContains(t, string(body), "Djangoo")

	require.NoError(t, f.db.SkillRepo().Delete(ctx, skill.ID))
	body, err = f.portfolio.APIProjects(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"technologies":[]`)
}

func TestAPIProjectsIgnoresCallerCancellation(t *testing.T) {
	f := newFixture(t)
	f.addProject(t, models.Project{Title: "Site", IsPublished: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	body, err := f.portfolio.APIProjects(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"title":"Site"`)
}

func TestAPIProjectsImageDefaultsToEmpty(t *testing.T) {
	resp := services.NewProjectsResponse([]models.Project{{ID: 1, Title: "No Image"}})
	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"image":""`)
	assert.Contains(t, string(body), `"technologies":[]`)
}

func TestWork(t *testing.T) {
	f := newFixture(t)
	f.addProject(t, models.Project{Title: "Old", IsPublished: true, IsFeatured: true})
	f.addProject(t, models.Project{Title: "New", IsPublished: true})
	f.addProject(t, models.Project{Title: "Hidden", IsPublished: false, IsFeatured: true})

	page, err := f.portfolio.Work(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Projects, 2)
	assert.Equal(t, "New", page.Projects[0].Title)
	require.Len(t, page.FeaturedProjects, 1)
	assert.Equal(t, "Old", page.FeaturedProjects[0].Title)
}

func TestProjectDetail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	goSkill := f.addSkill(t, "Go", "backend")
	f.addProject(t, models.Project{Title: "Main", IsPublished: true, Technologies: []models.Skill{{ID: goSkill.ID}}})
	f.addProject(t, models.Project{Title: "Sibling", IsPublished: true, Technologies: []models.Skill{{ID: goSkill.ID}}})

	page, err := f.portfolio.ProjectDetail(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, "Main", page.Project.Title)
	require.Len(t, page.RelatedProjects, 1)
	assert.Equal(t, "Sibling", page.RelatedProjects[0].Title)

	_, err = f.portfolio.ProjectDetail(ctx, "missing")
	assert.True(t, errs.IsNotFound(err))
}

func TestBlogPost(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	post := models.BlogPost{
		Title:       "Shipping Go",
		Content:     "# Shipping\n\nSome **bold** text.\n\n<script>alert(1)</script>",
		IsPublished: true,
	}
	require.NoError(t, f.db.BlogPostRepo().Add(ctx, &post))

	page, err := f.portfolio.BlogPost(ctx, "shipping-go")
	require.NoError(t, err)
	html := string(page.HTML)
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.NotContains(t, html, "<script>")

	list, err := f.portfolio.Blog(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Posts, 1)
}
