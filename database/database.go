package database

import (
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site/cache"
)

type Database struct {
	db                *gorm.DB
	skillRepo         *SkillRepo
	projectRepo       *ProjectRepo
	contactRepo       *ContactMessageRepo
	personalInfoStore *PersonalInfoStore
	blogPostRepo      *BlogPostRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance.
// Writes invalidate the affected keys of c; a nil cache disables invalidation.
func New(db *gorm.DB, c cache.Cache) Database {
	if c == nil {
		c = cache.Nop{}
	}
	return Database{
		db:                db,
		skillRepo:         NewSkillRepo(db, c),
		projectRepo:       NewProjectRepo(db, c),
		contactRepo:       NewContactMessageRepo(db),
		personalInfoStore: NewPersonalInfoStore(db, c),
		blogPostRepo:      NewBlogPostRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ContactMessageRepo() *ContactMessageRepo {
	return d.contactRepo
}

func (d Database) PersonalInfoStore() *PersonalInfoStore {
	return d.personalInfoStore
}

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

// DB returns the underlying connection, used by migrations and the code generator.
func (d Database) DB() *gorm.DB {
	return d.db
}
