package services

import (
	"context"

	"github.com/maxaizer/placement-portal/internal/apperr"
	"github.com/maxaizer/placement-portal/internal/domain/models"
)

type profileReader interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
}

// accessControl checks the caller identity set by the auth gateway against its profile role.
type accessControl struct {
	profiles profileReader
}

func (a accessControl) authenticate(userID string) error {
	if userID == "" {
		return apperr.ErrNotAuthenticated
	}
	return nil
}

func (a accessControl) isAdmin(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	profile, err := a.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	return profile.IsAdmin(), nil
}

func (a accessControl) requireAdmin(ctx context.Context, userID string) error {
	if err := a.authenticate(userID); err != nil {
		return err
	}
	admin, err := a.isAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !admin {
		return apperr.ErrNotAuthorized
	}
	return nil
}

// requireSelfOrAdmin lets callers read their own records while admins read everyone's.
func (a accessControl) requireSelfOrAdmin(ctx context.Context, userID, ownerID string) error {
	if err := a.authenticate(userID); err != nil {
		return err
	}
	if userID == ownerID {
		return nil
	}
	return a.requireAdmin(ctx, userID)
}
