package repositories

import (
	"context"
	"time"

	"github.com/maxaizer/placement-portal/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const notificationsBatchSize = 200

type Notifications struct {
	db *gorm.DB
}

func NewNotificationsRepository(db *gorm.DB) *Notifications {
	return &Notifications{db: db}
}

func (repo *Notifications) Add(ctx context.Context, notification *models.Notification) error {
	return errors.Wrap(repo.db.WithContext(ctx).Create(notification).Error, "failed to add notification")
}

func (repo *Notifications) AddBatch(ctx context.Context, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	err := repo.db.WithContext(ctx).CreateInBatches(notifications, notificationsBatchSize).Error
	return errors.Wrap(err, "failed to add notifications")
}

func (repo *Notifications) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	var notification models.Notification
	err := repo.db.WithContext(ctx).First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get notification")
	}
	return &notification, nil
}

// ListByUser returns the newest notifications first. A non-positive limit means no limit.
func (repo *Notifications) ListByUser(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	query := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}
	return notifications, nil
}

func (repo *Notifications) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, errors.Wrap(err, "failed to count unread notifications")
}

func (repo *Notifications) MarkAsRead(ctx context.Context, id string) error {
	err := repo.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", id).
		Update("read", true).Error
	return errors.Wrap(err, "failed to mark notification as read")
}

// MarkAllAsRead returns the number of notifications that were unread before the call.
func (repo *Notifications) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	res := repo.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	return res.RowsAffected, errors.Wrap(res.Error, "failed to mark notifications as read")
}

func (repo *Notifications) RemoveReadOlderThan(ctx context.Context, before time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).
		Where("read = ? AND created_at < ?", true, before).
		Delete(&models.Notification{})
	return res.RowsAffected, errors.Wrap(res.Error, "failed to remove old notifications")
}
