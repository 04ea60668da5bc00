package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site/cache"
	"github.com/rpupo63/portfolio-site/errs"
	"github.com/rpupo63/portfolio-site/forms"
	"github.com/rpupo63/portfolio-site/models"
)

// Project listings embed technology names, so skill writes clear them too.
var skillCacheKeys = []string{cache.KeyFeaturedSkills, cache.KeyAllSkills, cache.KeyFeaturedProjects, cache.KeyAllProjects}

type SkillRepo struct {
	db    *gorm.DB
	cache cache.Cache
}

func NewSkillRepo(db *gorm.DB, c cache.Cache) *SkillRepo {
	return &SkillRepo{db: db, cache: c}
}

// skillOrder is the default ordering: grouped by category, then alphabetical.
func skillOrder(db *gorm.DB) *gorm.DB {
	return db.Order("category ASC").Order("name ASC")
}

// FindAll returns every skill
func (r *SkillRepo) FindAll(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	if err := r.db.WithContext(ctx).Scopes(skillOrder).Find(&skills).Error; err != nil {
		return nil, errs.NewDatabaseError("list", "skills", err)
	}
	return skills, nil
}

// FindFeatured returns the featured skills in (category, name) order
func (r *SkillRepo) FindFeatured(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	err := r.db.WithContext(ctx).
		Where("is_featured = ?", true).
		Scopes(skillOrder).
		Find(&skills).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list", "featured skills", err)
	}
	return skills, nil
}

// FindByID returns a skill by its ID
func (r *SkillRepo) FindByID(ctx context.Context, id uint) (*models.Skill, error) {
	var skill models.Skill
	if err := r.db.WithContext(ctx).First(&skill, id).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "skill", err)
	}
	return &skill, nil
}

// FindUsedByPublishedProjects returns the distinct skills linked to at least one published project, by name.
func (r *SkillRepo) FindUsedByPublishedProjects(ctx context.Context) ([]models.Skill, error) {
	used := r.db.Table("project_technologies").
		Select("project_technologies.skill_id").
		Joins("JOIN projects ON projects.id = project_technologies.project_id").
		Where("projects.is_published = ?", true)

	var skills []models.Skill
	err := r.db.WithContext(ctx).
		Where("id IN (?)", used).
		Order("name ASC").
		Find(&skills).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list", "technologies", err)
	}
	return skills, nil
}

// Add inserts a new skill
func (r *SkillRepo) Add(ctx context.Context, skill *models.Skill) error {
	applySkillDefaults(skill)
	if err := forms.Struct(skill); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(skill).Error; err != nil {
		return skillWriteError("create", err)
	}
	r.cache.Invalidate(ctx, skillCacheKeys...)
	return nil
}

// Update overwrites an existing skill
func (r *SkillRepo) Update(ctx context.Context, skill *models.Skill) error {
	applySkillDefaults(skill)
	if err := forms.Struct(skill); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Skill
		if err := tx.Select("id", "created_at").First(&existing, skill.ID).Error; err != nil {
			return err
		}
		skill.CreatedAt = existing.CreatedAt
		return tx.Save(skill).Error
	})
	if err != nil {
		return skillWriteError("update", err)
	}
	r.cache.Invalidate(ctx, skillCacheKeys...)
	return nil
}

// Delete removes a skill and unlinks it from every project and blog post
func (r *SkillRepo) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM project_technologies WHERE skill_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM blog_post_tags WHERE skill_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Skill{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return errs.NewDatabaseError("delete", "skill", err)
	}
	r.cache.Invalidate(ctx, skillCacheKeys...)
	return nil
}

func applySkillDefaults(skill *models.Skill) {
	if skill.Category == "" {
		skill.Category = models.DefaultSkillCategory
	}
	if skill.ProficiencyLevel == 0 {
		skill.ProficiencyLevel = models.DefaultProficiencyLevel
	}
}

func skillWriteError(op string, err error) error {
	dbErr := errs.NewDatabaseError(op, "skill", err)
	if errs.IsUniqueConstraintViolationError(dbErr) {
		return errs.NewUniqueConstraintViolationError("skill", "name", err)
	}
	return dbErr
}

// findSkillsByIDs loads skills for a link list. field names the payload field blamed for unknown IDs.
func findSkillsByIDs(tx *gorm.DB, ids []uint, field string) ([]models.Skill, error) {
	if len(ids) == 0 {
		return []models.Skill{}, nil
	}
	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	var skills []models.Skill
	if err := tx.Where("id IN ?", unique).Scopes(skillOrder).Find(&skills).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "skills", err)
	}
	if len(skills) != len(unique) {
		return nil, errs.NewValidationError(map[string][]string{
			field: {"One or more selected skills do not exist."},
		})
	}
	return skills, nil
}

// replaceSkillLinks rewrites the many-to-many links of owner's association to exactly skills.
func replaceSkillLinks(tx *gorm.DB, owner interface{}, association string, skills []models.Skill) error {
	assoc := tx.Model(owner).Association(association)
	if assoc.Error != nil {
		return assoc.Error
	}
	var err error
	if len(skills) == 0 {
		err = assoc.Clear()
	} else {
		err = assoc.Replace(skills)
	}
	if err != nil {
		return errs.NewTransactionFailedError("replace "+association+" links", err)
	}
	return nil
}
