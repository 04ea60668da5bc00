package database

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site/errs"
	"github.com/rpupo63/portfolio-site/forms"
	"github.com/rpupo63/portfolio-site/models"
)

type ContactMessageRepo struct {
	db     *gorm.DB
	logger zerolog.Logger
}

func NewContactMessageRepo(db *gorm.DB) *ContactMessageRepo {
	return &ContactMessageRepo{
		db:     db,
		logger: log.With().Str("component", "contactMessageRepo").Logger(),
	}
}

// FindAll returns all messages, newest first
func (r *ContactMessageRepo) FindAll(ctx context.Context) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&messages).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list", "contact messages", err)
	}
	return messages, nil
}

// FindByID returns a message by its ID
func (r *ContactMessageRepo) FindByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	var message models.ContactMessage
	if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "contact message", err)
	}
	return &message, nil
}

// Add stores a new message
func (r *ContactMessageRepo) Add(ctx context.Context, message *models.ContactMessage) error {
	if message.InquiryType == "" {
		message.InquiryType = models.DefaultInquiryType
	}
	if err := forms.Struct(message); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return errs.NewDatabaseError("create", "contact message", err)
	}

	r.logger.Info().
		Uint("id", message.ID).
		Str("name", message.Name).
		Str("email", message.Email).
		Msg("new contact message received")
	return nil
}

// Update overwrites an existing message
func (r *ContactMessageRepo) Update(ctx context.Context, message *models.ContactMessage) error {
	if err := forms.Struct(message); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ContactMessage
		if err := tx.Select("id", "created_at").First(&existing, message.ID).Error; err != nil {
			return err
		}
		message.CreatedAt = existing.CreatedAt
		return tx.Save(message).Error
	})
	if err != nil {
		return errs.NewDatabaseError("update", "contact message", err)
	}
	return nil
}

// Delete removes a message by id
func (r *ContactMessageRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.ContactMessage{}, id)
	if res.Error != nil {
		return errs.NewDatabaseError("delete", "contact message", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("contact message")
	}
	return nil
}

// MarkRead flags the given messages as read and returns how many rows changed
func (r *ContactMessageRepo) MarkRead(ctx context.Context, ids []uint) (int64, error) {
	return r.setFlag(ctx, "is_read", ids)
}

// MarkReplied flags the given messages as replied and returns how many rows changed
func (r *ContactMessageRepo) MarkReplied(ctx context.Context, ids []uint) (int64, error) {
	return r.setFlag(ctx, "is_replied", ids)
}

func (r *ContactMessageRepo) setFlag(ctx context.Context, column string, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Where("id IN ?", ids).
		Update(column, true)
	if res.Error != nil {
		return 0, errs.NewDatabaseError("update", "contact messages", res.Error)
	}
	r.logger.Debug().Str("column", column).Int64("rows", res.RowsAffected).Msg("flagged contact messages")
	return res.RowsAffected, nil
}
