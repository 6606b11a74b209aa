package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/repository"
)

var ErrUserNotFound = repository.ErrUserNotFound

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByRoleNames(ctx context.Context, names []string) ([]domain.User, error)
	FindEligibleApprovers(ctx context.Context, approvalType domain.ApprovalType) ([]domain.User, error)
	LockUser(ctx context.Context, id uint) error
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

// ListApprovers returns the users able to decide the given stage, used by
// the role directory views.
func (s *UserService) ListApprovers(ctx context.Context, approvalType domain.ApprovalType) ([]domain.User, error) {
	users, err := s.repo.FindEligibleApprovers(ctx, approvalType)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindEligibleApprovers -> %w", err)
	}

	return users, nil
}

func (s *UserService) ListByRoles(ctx context.Context, names []string) ([]domain.User, error) {
	users, err := s.repo.FindByRoleNames(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByRoleNames -> %w", err)
	}

	return users, nil
}
