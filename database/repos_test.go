package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site/cache"
	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/database/dbtest"
	"github.com/rpupo63/portfolio-site/errs"
	"github.com/rpupo63/portfolio-site/models"
)

func newDatabase(t *testing.T) (database.Database, *dbtest.Cache) {
	t.Helper()
	c := dbtest.NewCache()
	return database.New(dbtest.New(t), c), c
}

func addSkill(t *testing.T, db database.Database, name, category string, featured bool) models.Skill {
	t.Helper()
	skill := models.Skill{Name: name, Category: category, ProficiencyLevel: 3, IsFeatured: featured}
	require.NoError(t, db.SkillRepo().Add(context.Background(), &skill))
	return skill
}

func addProject(t *testing.T, db database.Database, title string, published bool, techs ...models.Skill) models.Project {
	t.Helper()
	project := models.Project{
		Title:            title,
		ShortDescription: title + " summary",
		IsPublished:      published,
		Technologies:     techs,
	}
	require.NoError(t, db.ProjectRepo().Add(context.Background(), &project))
	return project
}

func projectTitles(projects []models.Project) []string {
	titles := make([]string, len(projects))
	for i, p := range projects {
		titles[i] = p.Title
	}
	return titles
}

func TestPersonalInfoStore(t *testing.T) {
	ctx := context.Background()

	t.Run("load initializes once with defaults", func(t *testing.T) {
		db, _ := newDatabase(t)
		store := db.PersonalInfoStore()

		first, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.PersonalInfoID, first.ID)
		assert.Equal(t, "Benedict Nii Odartey Mensah", first.FullName)
		assert.Equal(t, "Benny", first.PreferredName)
		assert.Equal(t, "Full-Stack Developer", first.Title)

		second, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.FullName, second.FullName)

		var count int64
		require.NoError(t, db.DB().Model(&models.PersonalInfo{}).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("second create is a constraint violation", func(t *testing.T) {
		db, _ := newDatabase(t)
		store := db.PersonalInfoStore()

		info := models.DefaultPersonalInfo()
		require.NoError(t, store.Create(ctx, &info))

		again := models.DefaultPersonalInfo()
		again.FullName = "Someone Else"
		err := store.Create(ctx, &again)
		require.Error(t, err)
		assert.True(t, errs.IsConstraintViolation(err))
		assert.True(t, errs.IsConflict(err))
	})

	t.Run("delete is refused", func(t *testing.T) {
		db, _ := newDatabase(t)
		_, err := db.PersonalInfoStore().Load(ctx)
		require.NoError(t, err)

		err = db.PersonalInfoStore().Delete(ctx)
		require.Error(t, err)
		assert.True(t, errs.IsSingletonDeleteError(err))
		assert.True(t, errs.IsForbidden(err))
	})

	t.Run("update invalidates the cached copy", func(t *testing.T) {
		db, c := newDatabase(t)
		info, err := db.PersonalInfoStore().Load(ctx)
		require.NoError(t, err)
		c.Reset()

		info.Location = "Accra, Ghana"
		require.NoError(t, db.PersonalInfoStore().Update(ctx, info))
		assert.Equal(t, []string{cache.KeyPersonalInfo}, c.Invalidated())

		reloaded, err := db.PersonalInfoStore().Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Accra, Ghana", reloaded.Location)
	})
}

func TestSkillRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate name is rejected", func(t *testing.T) {
		db, _ := newDatabase(t)
		addSkill(t, db, "Go", "backend", true)

		dup := models.Skill{Name: "Go", Category: "backend"}
		err := db.SkillRepo().Add(ctx, &dup)
		require.Error(t, err)
		assert.True(t, errs.IsUniqueConstraintViolationError(err))
	})

	t.Run("defaults are applied", func(t *testing.T) {
		db, _ := newDatabase(t)
		skill := models.Skill{Name: "Docker"}
		require.NoError(t, db.SkillRepo().Add(ctx, &skill))
		assert.Equal(t, models.DefaultSkillCategory, skill.Category)
		assert.Equal(t, models.DefaultProficiencyLevel, skill.ProficiencyLevel)
	})

	t.Run("invalid proficiency is a validation error", func(t *testing.T) {
		db, _ := newDatabase(t)
		skill := models.Skill{Name: "Rust", ProficiencyLevel: 9}
		err := db.SkillRepo().Add(ctx, &skill)
		require.Error(t, err)
		assert.True(t, errs.IsValidationError(err))
		assert.Contains(t, errs.FieldErrors(err), "proficiency_level")
	})

	t.Run("writes invalidate skill and project listings", func(t *testing.T) {
		want := []string{cache.KeyFeaturedSkills, cache.KeyAllSkills, cache.KeyFeaturedProjects, cache.KeyAllProjects}
		db, c := newDatabase(t)
		skill := addSkill(t, db, "Python", "backend", true)
		assert.Equal(t, want, c.Invalidated())

		c.Reset()
		skill.ProficiencyLevel = 4
		require.NoError(t, db.SkillRepo().Update(ctx, &skill))
		assert.Equal(t, want, c.Invalidated())

		c.Reset()
		require.NoError(t, db.SkillRepo().Delete(ctx, skill.ID))
		assert.Equal(t, want, c.Invalidated())
	})

	t.Run("featured skills are ordered by category then name", func(t *testing.T) {
		db, _ := newDatabase(t)
		addSkill(t, db, "React", "frontend", true)
		addSkill(t, db, "Django", "backend", true)
		addSkill(t, db, "Celery", "backend", true)
		addSkill(t, db, "Vim", "tool", false)

		skills, err := db.SkillRepo().FindFeatured(ctx)
		require.NoError(t, err)
		names := make([]string, len(skills))
		for i, s := range skills {
			names[i] = s.Name
		}
		assert.Equal(t, []string{"Celery", "Django", "React"}, names)
	})

	t.Run("used by published projects", func(t *testing.T) {
		db, _ := newDatabase(t)
		goSkill := addSkill(t, db, "Go", "backend", true)
		vue := addSkill(t, db, "Vue", "frontend", true)
		addSkill(t, db, "Unused", "other", false)
		addProject(t, db, "Live", true, goSkill, vue)
		addProject(t, db, "Draft", false, vue)
		addProject(t, db, "Also Live", true, goSkill)

		skills, err := db.SkillRepo().FindUsedByPublishedProjects(ctx)
		require.NoError(t, err)
		require.Len(t, skills, 2)
		assert.Equal(t, "Go", skills[0].Name)
		assert.Equal(t, "Vue", skills[1].Name)
	})

	t.Run("delete missing skill is not found", func(t *testing.T) {
		db, _ := newDatabase(t)
		err := db.SkillRepo().Delete(ctx, 999)
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))
	})
}

func TestProjectRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("slug is derived and unique", func(t *testing.T) {
		db, _ := newDatabase(t)
		project := addProject(t, db, "My Great App", true)
		assert.Equal(t, "my-great-app", project.Slug)

		dup := models.Project{Title: "My Great App", ShortDescription: "again", IsPublished: true}
		err := db.ProjectRepo().Add(ctx, &dup)
		require.Error(t, err)
		assert.True(t, errs.IsUniqueConstraintViolationError(err))
	})

	t.Run("unpublished slug is not found", func(t *testing.T) {
		db, _ := newDatabase(t)
		addProject(t, db, "Hidden Work", false)

		_, err := db.ProjectRepo().FindPublishedBySlug(ctx, "hidden-work")
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))
	})

	t.Run("published slug loads technologies", func(t *testing.T) {
		db, _ := newDatabase(t)
		goSkill := addSkill(t, db, "Go", "backend", true)
		addProject(t, db, "Shown Work", true, goSkill)

		project, err := db.ProjectRepo().FindPublishedBySlug(ctx, "shown-work")
		require.NoError(t, err)
		assert.Equal(t, []string{"Go"}, project.TechnologyNames())
	})

	t.Run("related projects are distinct, published and exclude self", func(t *testing.T) {
		db, _ := newDatabase(t)
		goSkill := addSkill(t, db, "Go", "backend", true)
		redis := addSkill(t, db, "Redis", "database", true)
		css := addSkill(t, db, "CSS", "frontend", true)

		main := addProject(t, db, "Main", true, goSkill, redis)
		addProject(t, db, "Both", true, goSkill, redis)
		addProject(t, db, "Go Only", true, goSkill)
		addProject(t, db, "Redis Only", true, redis)
		addProject(t, db, "Go Too", true, goSkill)
		addProject(t, db, "Draft Go", false, goSkill)
		addProject(t, db, "Styling", true, css)

		related, err := db.ProjectRepo().FindRelated(ctx, &main, database.RelatedProjectsLimit)
		require.NoError(t, err)
		assert.Len(t, related, 3)

		seen := map[uint]bool{}
		for _, p := range related {
			assert.NotEqual(t, main.ID, p.ID)
			assert.True(t, p.IsPublished)
			assert.NotEqual(t, "Styling", p.Title)
			assert.False(t, seen[p.ID], "duplicate related project %s", p.Title)
			seen[p.ID] = true
		}
	})

	t.Run("related is empty without technologies", func(t *testing.T) {
		db, _ := newDatabase(t)
		lonely := addProject(t, db, "Lonely", true)
		related, err := db.ProjectRepo().FindRelated(ctx, &lonely, database.RelatedProjectsLimit)
		require.NoError(t, err)
		assert.Empty(t, related)
	})

	t.Run("filters by technology and search text", func(t *testing.T) {
		db, _ := newDatabase(t)
		django := addSkill(t, db, "Django", "framework", true)
		react := addSkill(t, db, "React", "frontend", true)
		addProject(t, db, "Blog Engine", true, django)
		addProject(t, db, "Dashboard", true, react)
		addProject(t, db, "Shop", true, django, react)
		addProject(t, db, "Secret Django", false, django)

		byTech, err := db.ProjectRepo().FindPublished(ctx, database.ProjectFilter{Tech: "djan"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Blog Engine", "Shop"}, projectTitles(byTech))

		bySearch, err := db.ProjectRepo().FindPublished(ctx, database.ProjectFilter{Search: "DASH"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Dashboard"}, projectTitles(bySearch))

		both, err := db.ProjectRepo().FindPublished(ctx, database.ProjectFilter{Tech: "react", Search: "shop"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Shop"}, projectTitles(both))

		wildcard, err := db.ProjectRepo().FindPublished(ctx, database.ProjectFilter{Search: "%"})
		require.NoError(t, err)
		assert.Empty(t, wildcard)
	})

	t.Run("display order wins over recency", func(t *testing.T) {
		db, _ := newDatabase(t)
		first := models.Project{Title: "Pinned", ShortDescription: "x", IsPublished: true, DisplayOrder: 0}
		second := models.Project{Title: "Later", ShortDescription: "x", IsPublished: true, DisplayOrder: 5}
		require.NoError(t, db.ProjectRepo().Add(ctx, &second))
		require.NoError(t, db.ProjectRepo().Add(ctx, &first))

		projects, err := db.ProjectRepo().FindPublished(ctx, database.ProjectFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Pinned", "Later"}, projectTitles(projects))

		recent, err := db.ProjectRepo().FindPublished(ctx, database.ProjectFilter{Recent: true, Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"Pinned"}, projectTitles(recent))
	})

	t.Run("update replaces technologies and invalidates", func(t *testing.T) {
		db, c := newDatabase(t)
		goSkill := addSkill(t, db, "Go", "backend", true)
		vue := addSkill(t, db, "Vue", "frontend", true)
		project := addProject(t, db, "Switch", true, goSkill)
		c.Reset()

		project.Technologies = []models.Skill{{ID: vue.ID}}
		require.NoError(t, db.ProjectRepo().Update(ctx, &project))
		assert.Equal(t, []string{cache.KeyFeaturedProjects, cache.KeyAllProjects}, c.Invalidated())

		reloaded, err := db.ProjectRepo().FindByID(ctx, project.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Vue"}, reloaded.TechnologyNames())
	})

	t.Run("unknown technology is a validation error", func(t *testing.T) {
		db, _ := newDatabase(t)
		project := models.Project{Title: "Ghost", ShortDescription: "x", Technologies: []models.Skill{{ID: 42}}}
		err := db.ProjectRepo().Add(ctx, &project)
		require.Error(t, err)
		assert.True(t, errs.IsValidationError(err))
		assert.Contains(t, errs.FieldErrors(err), "technologies")
	})

	t.Run("failed link replacement rolls back the write", func(t *testing.T) {
		db, c := newDatabase(t)
		goSkill := addSkill(t, db, "Go", "backend", true)
		require.NoError(t, db.DB().Migrator().DropTable("project_technologies"))
		c.Reset()

		project := models.Project{Title: "Orphan", ShortDescription: "x", Technologies: []models.Skill{{ID: goSkill.ID}}}
		err := db.ProjectRepo().Add(ctx, &project)
		require.Error(t, err)
		assert.True(t, errs.IsTransactionFailedError(err))
		assert.Empty(t, c.Invalidated())

		var count int64
		require.NoError(t, db.DB().Model(&models.Project{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("delete removes links and invalidates", func(t *testing.T) {
		db, c := newDatabase(t)
		goSkill := addSkill(t, db, "Go", "backend", true)
		project := addProject(t, db, "Gone", true, goSkill)
		c.Reset()

		require.NoError(t, db.ProjectRepo().Delete(ctx, project.ID))
		assert.Equal(t, []string{cache.KeyFeaturedProjects, cache.KeyAllProjects}, c.Invalidated())

		var links int64
		require.NoError(t, db.DB().Table("project_technologies").Count(&links).Error)
		assert.Zero(t, links)

		err := db.ProjectRepo().Delete(ctx, project.ID)
		assert.True(t, errs.IsNotFound(err))
	})
}

func TestBlogPostRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("published_at is stamped once", func(t *testing.T) {
		db, _ := newDatabase(t)
		repo := db.BlogPostRepo()

		post := models.BlogPost{Title: "Hello World", Content: "# Hi", IsPublished: true}
		require.NoError(t, repo.Add(ctx, &post))
		require.NotNil(t, post.PublishedAt)
		stamped := *post.PublishedAt

		time.Sleep(5 * time.Millisecond)
		post.Excerpt = "edited"
		post.PublishedAt = nil
		require.NoError(t, repo.Update(ctx, &post))

		reloaded, err := repo.FindByID(ctx, post.ID)
		require.NoError(t, err)
		require.NotNil(t, reloaded.PublishedAt)
		assert.True(t, stamped.Equal(*reloaded.PublishedAt))
	})

	t.Run("drafts are not stamped and not found by slug", func(t *testing.T) {
		db, _ := newDatabase(t)
		repo := db.BlogPostRepo()

		draft := models.BlogPost{Title: "Draft Notes", Content: "wip"}
		require.NoError(t, repo.Add(ctx, &draft))
		assert.Nil(t, draft.PublishedAt)
		assert.Equal(t, models.DefaultBlogCategory, draft.Category)

		_, err := repo.FindPublishedBySlug(ctx, "draft-notes")
		assert.True(t, errs.IsNotFound(err))

		published, err := repo.FindPublished(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, published)
	})

	t.Run("tags are linked", func(t *testing.T) {
		db, _ := newDatabase(t)
		goSkill := addSkill(t, db, "Go", "backend", true)
		post := models.BlogPost{Title: "Tagged", Content: "x", IsPublished: true, Tags: []models.Skill{{ID: goSkill.ID}}}
		require.NoError(t, db.BlogPostRepo().Add(ctx, &post))

		found, err := db.BlogPostRepo().FindPublishedBySlug(ctx, "tagged")
		require.NoError(t, err)
		assert.Equal(t, []string{"Go"}, found.TagNames())
	})
}

func TestContactMessageRepo(t *testing.T) {
	ctx := context.Background()
	db, _ := newDatabase(t)
	repo := db.ContactMessageRepo()

	first := models.ContactMessage{Name: "Jane Doe", Email: "jane@example.com", Message: "I'd like to hire you."}
	second := models.ContactMessage{Name: "John Roe", Email: "john@example.com", Message: "Let's collaborate on this.", InquiryType: "collaboration"}
	require.NoError(t, repo.Add(ctx, &first))
	require.NoError(t, repo.Add(ctx, &second))
	assert.Equal(t, models.DefaultInquiryType, first.InquiryType)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)

	n, err := repo.MarkRead(ctx, []uint{first.ID, second.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = repo.MarkReplied(ctx, []uint{first.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	reloaded, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsRead)
	assert.True(t, reloaded.IsReplied)

	require.NoError(t, repo.Delete(ctx, second.ID))
	assert.True(t, errs.IsNotFound(repo.Delete(ctx, second.ID)))
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	db, _ := newDatabase(t)
	addSkill(t, db, "PostgreSQL", "database", true)
	addSkill(t, db, "MySQL", "database", false)
	addSkill(t, db, "Postman", "tool", true)

	var skills []models.Skill
	err := db.Search(ctx, &skills, &models.Skill{}, database.SearchOptions{
		Term:          "post",
		SearchColumns: []string{"name"},
		Filters:       map[string]interface{}{"is_featured": true},
		Order:         []string{"-name"},
	})
	require.NoError(t, err)
	require.Len(t, skills, 2)
	assert.Equal(t, "Postman", skills[0].Name)
	assert.Equal(t, "PostgreSQL", skills[1].Name)

	skills = nil
	err = db.Search(ctx, &skills, &models.Skill{}, database.SearchOptions{
		Filters: map[string]interface{}{"category": "database"},
		Order:   []string{"name"},
		Limit:   1,
	})
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "MySQL", skills[0].Name)
}
