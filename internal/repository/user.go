package repository

import (
	"context"
	"fmt"

	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
	ErrRoleNotFound    = dao.ErrRoleNotFound
	ErrChapterNotFound = dao.ErrChapterNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindByRoleNames(ctx context.Context, names []string) ([]dao.User, error)
	FindByRoleLevel(ctx context.Context, level int) ([]dao.User, error)
	FindRoleByName(ctx context.Context, name string) (dao.Role, error)
	FindChapterByID(ctx context.Context, id uint) (dao.Chapter, error)
	LockByID(ctx context.Context, id uint) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	user := domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		ChapterID: u.ChapterID,
		Role: domain.Role{
			ID:        u.Role.ID,
			Name:      u.Role.Name,
			Level:     u.Role.Level,
			CreatedAt: u.Role.CreatedAt,
			UpdatedAt: u.Role.UpdatedAt,
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}

	if u.Chapter != nil {
		chapter := r.chapterDaoToDomain(*u.Chapter)
		user.Chapter = &chapter
	}

	return user
}

func (r *UserRepository) daosToDomain(users []dao.User) []domain.User {
	result := make([]domain.User, len(users))
	for i, u := range users {
		result[i] = r.daoToDomain(u)
	}
	return result
}

func (r *UserRepository) chapterDaoToDomain(c dao.Chapter) domain.Chapter {
	return domain.Chapter{
		ID:        c.ID,
		Name:      c.Name,
		Code:      c.Code,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Email:     user.Email,
		Password:  user.Password,
		Name:      user.Name,
		RoleID:    user.Role.ID,
		ChapterID: user.ChapterID,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	// Re-read so the role relation is populated.
	return r.FindByID(ctx, created.ID)
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(user), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	user, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(user), nil
}

// FindEligibleApprovers returns every user able to decide the given stage.
func (r *UserRepository) FindEligibleApprovers(ctx context.Context, approvalType domain.ApprovalType) ([]domain.User, error) {
	var names []string
	switch approvalType {
	case domain.ApprovalSeniorCore:
		names = []string{
			domain.RoleSBChair,
			domain.RoleSBSecretary,
			domain.RoleSBTreasurer,
			domain.RoleSBTechnicalHead,
			domain.RoleSBConvener,
		}
	case domain.ApprovalTreasurer:
		names = []string{domain.RoleSBTreasurer}
	case domain.ApprovalCounsellor:
		names = []string{domain.RoleBranchCounsellor}
	}

	users, err := r.dao.FindByRoleNames(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByRoleNames -> %w", err)
	}

	return r.daosToDomain(users), nil
}

func (r *UserRepository) FindByRoleNames(ctx context.Context, names []string) ([]domain.User, error) {
	users, err := r.dao.FindByRoleNames(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByRoleNames -> %w", err)
	}

	return r.daosToDomain(users), nil
}

func (r *UserRepository) FindRoleByName(ctx context.Context, name string) (domain.Role, error) {
	role, err := r.dao.FindRoleByName(ctx, name)
	if err != nil {
		return domain.Role{}, fmt.Errorf("r.dao.FindRoleByName -> %w", err)
	}

	return domain.Role{
		ID:        role.ID,
		Name:      role.Name,
		Level:     role.Level,
		CreatedAt: role.CreatedAt,
		UpdatedAt: role.UpdatedAt,
	}, nil
}

func (r *UserRepository) LockUser(ctx context.Context, id uint) error {
	if err := r.dao.LockByID(ctx, id); err != nil {
		return fmt.Errorf("r.dao.LockByID -> %w", err)
	}

	return nil
}
