package database

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rpupo63/portfolio-site/cache"
	"github.com/rpupo63/portfolio-site/errs"
	"github.com/rpupo63/portfolio-site/forms"
	"github.com/rpupo63/portfolio-site/models"
)

// RelatedProjectsLimit caps the related projects shown on a detail page.
const RelatedProjectsLimit = 3

var projectCacheKeys = []string{cache.KeyFeaturedProjects, cache.KeyAllProjects}

// ProjectFilter narrows FindPublished. Zero values mean "no constraint".
type ProjectFilter struct {
	// Tech matches a case-insensitive substring of any linked technology name.
	Tech string
	// Search matches a case-insensitive substring of title, short or detailed description.
	Search       string
	FeaturedOnly bool
	Limit        int
	// Recent orders newest first instead of by display order.
	Recent bool
}

type ProjectRepo struct {
	db    *gorm.DB
	cache cache.Cache
}

func NewProjectRepo(db *gorm.DB, c cache.Cache) *ProjectRepo {
	return &ProjectRepo{db: db, cache: c}
}

func projectOrder(db *gorm.DB) *gorm.DB {
	return db.Order("projects.display_order ASC").
		Order("projects.created_at DESC").
		Order("projects.id DESC")
}

func recentOrder(db *gorm.DB) *gorm.DB {
	return db.Order("projects.created_at DESC").Order("projects.id DESC")
}

func preloadTechnologies(db *gorm.DB) *gorm.DB {
	return db.Preload("Technologies", skillOrder)
}

func (r *ProjectRepo) published(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Project{}).
		Scopes(preloadTechnologies).
		Where("projects.is_published = ?", true)
}

// FindPublished returns published projects matching filter
func (r *ProjectRepo) FindPublished(ctx context.Context, filter ProjectFilter) ([]models.Project, error) {
	q := r.published(ctx)

	if filter.FeaturedOnly {
		q = q.Where("projects.is_featured = ?", true)
	}
	if tech := strings.TrimSpace(filter.Tech); tech != "" {
		withTech := r.db.Table("project_technologies").
			Select("project_technologies.project_id").
			Joins("JOIN skills ON skills.id = project_technologies.skill_id").
			Where(containsExpr("skills.name", likePattern(tech)))
		q = q.Where("projects.id IN (?)", withTech)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := likePattern(search)
		q = q.Where(clause.Or(
			containsExpr("projects.title", pattern),
			containsExpr("projects.short_description", pattern),
			containsExpr("projects.detailed_description", pattern),
		))
	}

	if filter.Recent {
		q = q.Scopes(recentOrder)
	} else {
		q = q.Scopes(projectOrder)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var projects []models.Project
	if err := q.Find(&projects).Error; err != nil {
		return nil, errs.NewDatabaseError("list", "projects", err)
	}
	return projects, nil
}

// FindPublishedBySlug returns the published project with slug. Unpublished projects are not found.
func (r *ProjectRepo) FindPublishedBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	if err := r.published(ctx).Where("projects.slug = ?", slug).First(&project).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	return &project, nil
}

// FindRelated returns up to limit distinct published projects sharing a technology with project, excluding it.
func (r *ProjectRepo) FindRelated(ctx context.Context, project *models.Project, limit int) ([]models.Project, error) {
	techIDs := project.TechnologyIDs()
	if len(techIDs) == 0 || limit <= 0 {
		return []models.Project{}, nil
	}

	sharing := r.db.Table("project_technologies").
		Select("project_technologies.project_id").
		Where("project_technologies.skill_id IN ?", techIDs)

	var related []models.Project
	err := r.published(ctx).
		Where("projects.id IN (?)", sharing).
		Where("projects.id <> ?", project.ID).
		Scopes(projectOrder).
		Limit(limit).
		Find(&related).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list", "related projects", err)
	}
	return related, nil
}

// FindAll returns all projects, published or not
func (r *ProjectRepo) FindAll(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Scopes(preloadTechnologies, projectOrder).
		Find(&projects).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list", "projects", err)
	}
	return projects, nil
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Scopes(preloadTechnologies).First(&project, id).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	return &project, nil
}

// Add inserts a new project and links the technologies listed by ID in project.Technologies
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	prepareProject(project)
	if err := forms.Struct(project); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		techs, err := findSkillsByIDs(tx, project.TechnologyIDs(), "technologies")
		if err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return err
		}
		return replaceSkillLinks(tx, project, "Technologies", techs)
	})
	if err != nil {
		return projectWriteError("create", err)
	}
	r.cache.Invalidate(ctx, projectCacheKeys...)
	return nil
}

// Update overwrites an existing project and replaces its technology links
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project) error {
	prepareProject(project)
	if err := forms.Struct(project); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Project
		if err := tx.Select("id", "created_at").First(&existing, project.ID).Error; err != nil {
			return err
		}
		techs, err := findSkillsByIDs(tx, project.TechnologyIDs(), "technologies")
		if err != nil {
			return err
		}
		project.CreatedAt = existing.CreatedAt
		if err := tx.Omit(clause.Associations).Save(project).Error; err != nil {
			return err
		}
		return replaceSkillLinks(tx, project, "Technologies", techs)
	})
	if err != nil {
		return projectWriteError("update", err)
	}
	r.cache.Invalidate(ctx, projectCacheKeys...)
	return nil
}

// Delete removes a project by id along with its technology links
func (r *ProjectRepo) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project := models.Project{ID: id}
		if err := tx.Select("id").First(&project, id).Error; err != nil {
			return err
		}
		return tx.Select("Technologies").Delete(&project).Error
	})
	if err != nil {
		return errs.NewDatabaseError("delete", "project", err)
	}
	r.cache.Invalidate(ctx, projectCacheKeys...)
	return nil
}

func prepareProject(project *models.Project) {
	project.Title = strings.TrimSpace(project.Title)
	project.Slug = strings.TrimSpace(project.Slug)
	if project.Slug == "" {
		project.Slug = models.Slugify(project.Title)
	}
}

func projectWriteError(op string, err error) error {
	dbErr := errs.NewDatabaseError(op, "project", err)
	if errs.IsUniqueConstraintViolationError(dbErr) {
		return errs.NewUniqueConstraintViolationError("project", "slug", err)
	}
	return dbErr
}
