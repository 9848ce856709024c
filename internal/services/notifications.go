package services

import (
	"context"

	"github.com/maxaizer/placement-portal/internal/apperr"
	"github.com/maxaizer/placement-portal/internal/domain/models"
)

const defaultNotificationsLimit = 50

type notificationRepository interface {
	Add(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context, userID string) (int64, error)
}

type NotificationInput struct {
	UserID    string `json:"userId"`
	Type      string `json:"type" validate:"omitempty,oneof=job_posted job_updated job_announcement application_submitted application_received application_status_changed general"`
	Message   string `json:"message" validate:"required,max=2000"`
	RelatedID string `json:"relatedId"`
	ActionURL string `json:"actionUrl"`
}

type NotificationsService struct {
	accessControl
	notifications notificationRepository
}

func NewNotificationsService(notifications notificationRepository, profiles profileReader) *NotificationsService {
	return &NotificationsService{
		accessControl: accessControl{profiles: profiles},
		notifications: notifications,
	}
}

func (s *NotificationsService) GetNotifications(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	if err := s.authenticate(userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultNotificationsLimit
	}
	return s.notifications.ListByUser(ctx, userID, limit)
}

// CreateNotification notifies the caller, or any user when the caller is an admin.
func (s *NotificationsService) CreateNotification(ctx context.Context, userID string, input NotificationInput) (*models.Notification, error) {
	if err := s.authenticate(userID); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if input.UserID == "" {
		input.UserID = userID
	}
	if err := s.requireSelfOrAdmin(ctx, userID, input.UserID); err != nil {
		return nil, err
	}

	notification := &models.Notification{
		UserID:    input.UserID,
		Type:      models.NotificationGeneral,
		Message:   input.Message,
		RelatedID: input.RelatedID,
		ActionURL: input.ActionURL,
	}
	if input.Type != "" {
		notification.Type = models.NotificationType(input.Type)
	}

	if err := s.notifications.Add(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *NotificationsService) MarkAsRead(ctx context.Context, userID, id string) error {
	if err := s.authenticate(userID); err != nil {
		return err
	}

	notification, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return apperr.NotFound("Notification not found")
	}
	if notification.UserID != userID {
		return apperr.ErrNotAuthorized
	}
	if notification.Read {
		return nil
	}
	return s.notifications.MarkAsRead(ctx, id)
}

// MarkAllAsRead returns how many of the caller's notifications were unread.
func (s *NotificationsService) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	if err := s.authenticate(userID); err != nil {
		return 0, err
	}
	return s.notifications.MarkAllAsRead(ctx, userID)
}

func (s *NotificationsService) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	if err := s.authenticate(userID); err != nil {
		return 0, err
	}
	return s.notifications.CountUnread(ctx, userID)
}
