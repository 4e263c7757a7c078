package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/liqa/liqa-backend/internal/app/models"
	"github.com/liqa/liqa-backend/internal/app/models/dto"
	"github.com/liqa/liqa-backend/internal/app/repositories"
	"github.com/liqa/liqa-backend/internal/pkg/apperrors"
	"github.com/liqa/liqa-backend/internal/pkg/helpers"
)

// UserService handles profile and admin user management operations
type UserService struct {
	userRepo *repositories.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo *repositories.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetProfile returns the user's own profile
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile applies a partial profile update. Omitted fields keep
// their current value.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	name := user.Name
	if req.Name != nil {
		name = *req.Name
	}
	preferences := user.Preferences
	if req.Preferences != nil {
		preferences = req.Preferences
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, name, preferences); err != nil {
		return nil, fmt.Errorf("error updating profile: %w", err)
	}

	return s.userRepo.GetByID(ctx, userID)
}

// DeleteAccount removes the user's own account and everything hanging off
// it (registrations and annotations cascade in the database)
func (s *UserService) DeleteAccount(ctx context.Context, userID int64) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().Int64("userID", userID).Msg("Account deleted")
	return nil
}

// GetAllUsers lists a page of users for the admin dashboard
func (s *UserService) GetAllUsers(ctx context.Context, page, size int) (*dto.UserListResponse, error) {
	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting users: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	users, err := s.userRepo.GetAll(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.NewUserResponse(&users[i]))
	}

	return &dto.UserListResponse{
		Users:          responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// UpdateUserRole grants or revokes admin rights. An admin cannot demote
// themselves, so a platform always keeps at least one admin.
func (s *UserService) UpdateUserRole(ctx context.Context, actorID, userID int64, isAdmin bool) (*models.User, error) {
	if actorID == userID && !isAdmin {
		return nil, apperrors.NewBadRequestError("admins cannot revoke their own admin role")
	}

	user, err := s.userRepo.UpdateRole(ctx, userID, isAdmin)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("actorID", actorID).
		Int64("userID", userID).
		Bool("isAdmin", isAdmin).
		Msg("User role updated")
	return user, nil
}

// DeleteUser removes a user on behalf of an admin
func (s *UserService) DeleteUser(ctx context.Context, actorID, userID int64) error {
	if actorID == userID {
		return apperrors.NewBadRequestError("admins cannot delete their own account here, use account deletion")
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().
		Int64("actorID", actorID).
		Int64("userID", userID).
		Msg("User deleted by admin")
	return nil
}
