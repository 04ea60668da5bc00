package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site/cache"
	"github.com/rpupo63/portfolio-site/errs"
	"github.com/rpupo63/portfolio-site/forms"
	"github.com/rpupo63/portfolio-site/models"
)

const personalInfoEntity = "Personal Info"

// PersonalInfoStore keeps the single PersonalInfo row (ID models.PersonalInfoID).
type PersonalInfoStore struct {
	db    *gorm.DB
	cache cache.Cache
}

func NewPersonalInfoStore(db *gorm.DB, c cache.Cache) *PersonalInfoStore {
	return &PersonalInfoStore{db: db, cache: c}
}

// Load returns the personal info row, creating it with the defaults on first use.
// Every call returns the same row.
func (s *PersonalInfoStore) Load(ctx context.Context) (*models.PersonalInfo, error) {
	info, err := s.find(ctx)
	if err == nil {
		return info, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewDatabaseError("load", "personal info", err)
	}

	defaults := models.DefaultPersonalInfo()
	if err := s.db.WithContext(ctx).Create(&defaults).Error; err != nil {
		// a concurrent Load created the row first
		if errs.IsUniqueConstraintViolationError(errs.NewDatabaseError("create", "personal info", err)) {
			if info, err := s.find(ctx); err == nil {
				return info, nil
			}
		}
		return nil, errs.NewDatabaseError("create", "personal info", err)
	}
	s.cache.Invalidate(ctx, cache.KeyPersonalInfo)
	return &defaults, nil
}

func (s *PersonalInfoStore) find(ctx context.Context) (*models.PersonalInfo, error) {
	var info models.PersonalInfo
	if err := s.db.WithContext(ctx).First(&info, models.PersonalInfoID).Error; err != nil {
		return nil, err
	}
	return &info, nil
}

// Create inserts the row. It fails with a singleton violation when a row already exists.
func (s *PersonalInfoStore) Create(ctx context.Context, info *models.PersonalInfo) error {
	info.ID = models.PersonalInfoID
	if err := forms.Struct(info); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.PersonalInfo{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errs.NewSingletonExistsError(personalInfoEntity)
		}
		return tx.Create(info).Error
	})
	if err != nil {
		dbErr := errs.NewDatabaseError("create", "personal info", err)
		if errs.IsUniqueConstraintViolationError(dbErr) {
			return errs.NewSingletonExistsError(personalInfoEntity)
		}
		return dbErr
	}
	s.cache.Invalidate(ctx, cache.KeyPersonalInfo)
	return nil
}

// Update overwrites the row, creating it if it was never loaded.
func (s *PersonalInfoStore) Update(ctx context.Context, info *models.PersonalInfo) error {
	info.ID = models.PersonalInfoID
	if err := forms.Struct(info); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Save(info).Error; err != nil {
		return errs.NewDatabaseError("update", "personal info", err)
	}
	s.cache.Invalidate(ctx, cache.KeyPersonalInfo)
	return nil
}

// Delete always fails: the row can only be edited.
func (s *PersonalInfoStore) Delete(ctx context.Context) error {
	return errs.NewSingletonDeleteError(personalInfoEntity)
}
