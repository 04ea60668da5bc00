package database

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rpupo63/portfolio-site/errs"
	"github.com/rpupo63/portfolio-site/forms"
	"github.com/rpupo63/portfolio-site/models"
)

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

func blogPostOrder(db *gorm.DB) *gorm.DB {
	return db.Order("blog_posts.published_at DESC").
		Order("blog_posts.created_at DESC").
		Order("blog_posts.id DESC")
}

func preloadTags(db *gorm.DB) *gorm.DB {
	return db.Preload("Tags", skillOrder)
}

// FindPublished returns published posts, newest first. A limit of zero returns all of them.
func (r *BlogPostRepo) FindPublished(ctx context.Context, limit int) ([]models.BlogPost, error) {
	q := r.db.WithContext(ctx).
		Scopes(preloadTags, blogPostOrder).
		Where("blog_posts.is_published = ?", true)
	if limit > 0 {
		q = q.Limit(limit)
	}

	var posts []models.BlogPost
	if err := q.Find(&posts).Error; err != nil {
		return nil, errs.NewDatabaseError("list", "blog posts", err)
	}
	return posts, nil
}

// FindPublishedBySlug returns the published post with slug
func (r *BlogPostRepo) FindPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.WithContext(ctx).
		Scopes(preloadTags).
		Where("blog_posts.slug = ? AND blog_posts.is_published = ?", slug, true).
		First(&post).Error
	if err != nil {
		return nil, errs.NewDatabaseError("find", "blog post", err)
	}
	return &post, nil
}

// FindAll returns every post including drafts
func (r *BlogPostRepo) FindAll(ctx context.Context) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	if err := r.db.WithContext(ctx).Scopes(preloadTags, blogPostOrder).Find(&posts).Error; err != nil {
		return nil, errs.NewDatabaseError("list", "blog posts", err)
	}
	return posts, nil
}

// FindByID returns a post by its ID
func (r *BlogPostRepo) FindByID(ctx context.Context, id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.WithContext(ctx).Scopes(preloadTags).First(&post, id).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "blog post", err)
	}
	return &post, nil
}

// Add inserts a new post and links the tags listed by ID in post.Tags
func (r *BlogPostRepo) Add(ctx context.Context, post *models.BlogPost) error {
	prepareBlogPost(post)
	if err := forms.Struct(post); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := findSkillsByIDs(tx, tagIDs(post), "tags")
		if err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return err
		}
		return replaceSkillLinks(tx, post, "Tags", tags)
	})
	if err != nil {
		return blogPostWriteError("create", err)
	}
	return nil
}

// Update overwrites an existing post. A publication time, once stamped, is kept.
func (r *BlogPostRepo) Update(ctx context.Context, post *models.BlogPost) error {
	prepareBlogPost(post)
	if err := forms.Struct(post); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.BlogPost
		if err := tx.Select("id", "created_at", "published_at").First(&existing, post.ID).Error; err != nil {
			return err
		}
		tags, err := findSkillsByIDs(tx, tagIDs(post), "tags")
		if err != nil {
			return err
		}
		post.CreatedAt = existing.CreatedAt
		if post.PublishedAt == nil {
			post.PublishedAt = existing.PublishedAt
		}
		if err := tx.Omit(clause.Associations).Save(post).Error; err != nil {
			return err
		}
		return replaceSkillLinks(tx, post, "Tags", tags)
	})
	if err != nil {
		return blogPostWriteError("update", err)
	}
	return nil
}

// Delete removes a post and its tag links
func (r *BlogPostRepo) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post := models.BlogPost{ID: id}
		if err := tx.Select("id").First(&post, id).Error; err != nil {
			return err
		}
		return tx.Select("Tags").Delete(&post).Error
	})
	if err != nil {
		return errs.NewDatabaseError("delete", "blog post", err)
	}
	return nil
}

func tagIDs(post *models.BlogPost) []uint {
	ids := make([]uint, len(post.Tags))
	for i, tag := range post.Tags {
		ids[i] = tag.ID
	}
	return ids
}

func prepareBlogPost(post *models.BlogPost) {
	post.Title = strings.TrimSpace(post.Title)
	post.Slug = strings.TrimSpace(post.Slug)
	if post.Slug == "" {
		post.Slug = models.Slugify(post.Title)
	}
	if post.Category == "" {
		post.Category = models.DefaultBlogCategory
	}
}

func blogPostWriteError(op string, err error) error {
	dbErr := errs.NewDatabaseError(op, "blog post", err)
	if errs.IsUniqueConstraintViolationError(dbErr) {
		return errs.NewUniqueConstraintViolationError("blog post", "slug", err)
	}
	return dbErr
}
