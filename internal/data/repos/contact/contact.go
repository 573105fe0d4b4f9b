package contact

import (
	"context"

	"gorm.io/gorm"

	"github.com/velore/contactbook/internal/domain"
	"github.com/velore/contactbook/internal/platform/logger"
)

type ContactRepo interface {
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Contact, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.Contact, error)
	Create(ctx context.Context, tx *gorm.DB, contacts []*domain.Contact) ([]*domain.Contact, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id int64, fields domain.Fields) error
	Delete(ctx context.Context, tx *gorm.DB, id int64) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type contactRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContactRepo(db *gorm.DB, baseLog *logger.Logger) ContactRepo {
	repoLog := baseLog.With("repo", "ContactRepo")
	return &contactRepo{db: db, log: repoLog}
}

func (cr *contactRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*domain.Contact
	if err := transaction.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *contactRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var result domain.Contact
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *contactRepo) Create(ctx context.Context, tx *gorm.DB, contacts []*domain.Contact) ([]*domain.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(contacts) == 0 {
		return []*domain.Contact{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (cr *contactRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id int64, fields domain.Fields) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Model(&domain.Contact{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":    fields.Name,
			"email":   fields.Email,
			"twitter": fields.Twitter,
			"phone":   fields.Phone,
		}).Error
}

func (cr *contactRepo) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Contact{}).Error
}

func (cr *contactRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Contact{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
