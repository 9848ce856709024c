package repositories

import (
	"context"

	"github.com/maxaizer/placement-portal/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Mails struct {
	db *gorm.DB
}

func NewMailsRepository(db *gorm.DB) *Mails {
	return &Mails{db: db}
}

func (repo *Mails) Add(ctx context.Context, mail *models.Mail) error {
	return errors.Wrap(repo.db.WithContext(ctx).Create(mail).Error, "failed to add mail")
}

func (repo *Mails) GetByID(ctx context.Context, id string) (*models.Mail, error) {
	var mail models.Mail
	err := repo.db.WithContext(ctx).First(&mail, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get mail")
	}
	return &mail, nil
}

// AppendAttachmentLinks returns nil if the mail does not exist.
func (repo *Mails) AppendAttachmentLinks(ctx context.Context, id string, links []string) (*models.Mail, error) {
	var mail models.Mail
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&mail, "id = ?", id).Error; err != nil {
			return err
		}
		mail.AttachmentLinks = append(mail.AttachmentLinks, links...)
		return tx.Model(&mail).Update("attachment_links", mail.AttachmentLinks).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to append attachment links")
	}
	return &mail, nil
}

// ApprovalByIDs maps mail ids to their approval flag. Unknown ids are absent.
func (repo *Mails) ApprovalByIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	result := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var mails []models.Mail
	err := repo.db.WithContext(ctx).Select("id", "is_approved").Where("id IN ?", ids).Find(&mails).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load mail approvals")
	}
	for _, m := range mails {
		result[m.ID] = m.IsApproved
	}
	return result, nil
}
