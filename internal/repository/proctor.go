package repository

import (
	"context"
	"fmt"

	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/repository/dao"
)

var (
	ErrMappingExists   = dao.ErrMappingExists
	ErrMappingNotFound = dao.ErrMappingNotFound
	ErrUpdateExists    = dao.ErrUpdateExists
)

type ProctorDAO interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	InsertMapping(ctx context.Context, mapping dao.ProctorMapping) (dao.ProctorMapping, error)
	DeleteMapping(ctx context.Context, proctorID, execomID uint) error
	FindMapping(ctx context.Context, proctorID, execomID uint) (dao.ProctorMapping, error)
	FindMappingByExecom(ctx context.Context, execomID uint) (dao.ProctorMapping, error)
	CountMappingsByProctor(ctx context.Context, proctorID uint) (int, error)
	ListMappingsByProctor(ctx context.Context, proctorID uint) ([]dao.ProctorMapping, error)
	ListAllMappings(ctx context.Context) ([]dao.ProctorMapping, error)
	InsertUpdate(ctx context.Context, update dao.ProctorUpdate) (dao.ProctorUpdate, error)
	ListUpdates(ctx context.Context, proctorID, execomID uint) ([]dao.ProctorUpdate, error)
}

type ProctorRepository struct {
	dao ProctorDAO
}

func NewProctorRepository(dao ProctorDAO) *ProctorRepository {
	return &ProctorRepository{
		dao: dao,
	}
}

func (r *ProctorRepository) mappingDaoToDomain(m dao.ProctorMapping) domain.ProctorMapping {
	mapping := domain.ProctorMapping{
		ID:        m.ID,
		ProctorID: m.ProctorID,
		ExecomID:  m.ExecomID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	if m.Proctor.ID != 0 {
		proctor := userDaoToDomainShallow(m.Proctor)
		mapping.Proctor = &proctor
	}
	if m.Execom.ID != 0 {
		execom := userDaoToDomainShallow(m.Execom)
		mapping.Execom = &execom
	}

	return mapping
}

func (r *ProctorRepository) updateDaoToDomain(u dao.ProctorUpdate) domain.ProctorUpdate {
	update := domain.ProctorUpdate{
		ID:          u.ID,
		ProctorID:   u.ProctorID,
		ExecomID:    u.ExecomID,
		UpdateText:  u.UpdateText,
		PeriodStart: u.PeriodStart,
		PeriodEnd:   u.PeriodEnd,
		CreatedAt:   u.CreatedAt,
	}

	if u.Proctor.ID != 0 {
		proctor := userDaoToDomainShallow(u.Proctor)
		update.Proctor = &proctor
	}
	if u.Execom.ID != 0 {
		execom := userDaoToDomainShallow(u.Execom)
		update.Execom = &execom
	}

	return update
}

func userDaoToDomainShallow(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		ChapterID: u.ChapterID,
		Role: domain.Role{
			ID:    u.Role.ID,
			Name:  u.Role.Name,
			Level: u.Role.Level,
		},
	}
}

func (r *ProctorRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.dao.WithTx(ctx, fn)
}

func (r *ProctorRepository) CreateMapping(ctx context.Context, proctorID, execomID uint) (domain.ProctorMapping, error) {
	mapping, err := r.dao.InsertMapping(ctx, dao.ProctorMapping{
		ProctorID: proctorID,
		ExecomID:  execomID,
	})
	if err != nil {
		if err == dao.ErrMappingExists {
			return domain.ProctorMapping{}, ErrMappingExists
		}

		return domain.ProctorMapping{}, fmt.Errorf("r.dao.InsertMapping -> %w", err)
	}

	return r.mappingDaoToDomain(mapping), nil
}

func (r *ProctorRepository) DeleteMapping(ctx context.Context, proctorID, execomID uint) error {
	if err := r.dao.DeleteMapping(ctx, proctorID, execomID); err != nil {
		if err == dao.ErrMappingNotFound {
			return ErrMappingNotFound
		}

		return fmt.Errorf("r.dao.DeleteMapping -> %w", err)
	}

	return nil
}

func (r *ProctorRepository) FindMapping(ctx context.Context, proctorID, execomID uint) (domain.ProctorMapping, error) {
	mapping, err := r.dao.FindMapping(ctx, proctorID, execomID)
	if err != nil {
		if err == dao.ErrMappingNotFound {
			return domain.ProctorMapping{}, ErrMappingNotFound
		}

		return domain.ProctorMapping{}, fmt.Errorf("r.dao.FindMapping -> %w", err)
	}

	return r.mappingDaoToDomain(mapping), nil
}

func (r *ProctorRepository) FindMappingByExecom(ctx context.Context, execomID uint) (domain.ProctorMapping, error) {
	mapping, err := r.dao.FindMappingByExecom(ctx, execomID)
	if err != nil {
		if err == dao.ErrMappingNotFound {
			return domain.ProctorMapping{}, ErrMappingNotFound
		}

		return domain.ProctorMapping{}, fmt.Errorf("r.dao.FindMappingByExecom -> %w", err)
	}

	return r.mappingDaoToDomain(mapping), nil
}

func (r *ProctorRepository) CountMappingsByProctor(ctx context.Context, proctorID uint) (int, error) {
	count, err := r.dao.CountMappingsByProctor(ctx, proctorID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountMappingsByProctor -> %w", err)
	}

	return count, nil
}

func (r *ProctorRepository) ListMappings(ctx context.Context, proctorID uint) ([]domain.ProctorMapping, error) {
	var (
		mappings []dao.ProctorMapping
		err      error
	)
	if proctorID == 0 {
		mappings, err = r.dao.ListAllMappings(ctx)
	} else {
		mappings, err = r.dao.ListMappingsByProctor(ctx, proctorID)
	}
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListMappings -> %w", err)
	}

	result := make([]domain.ProctorMapping, len(mappings))
	for i, m := range mappings {
		result[i] = r.mappingDaoToDomain(m)
	}

	return result, nil
}

func (r *ProctorRepository) CreateUpdate(ctx context.Context, update domain.ProctorUpdate) (domain.ProctorUpdate, error) {
	created, err := r.dao.InsertUpdate(ctx, dao.ProctorUpdate{
		ProctorID:   update.ProctorID,
		ExecomID:    update.ExecomID,
		UpdateText:  update.UpdateText,
		PeriodStart: update.PeriodStart,
		PeriodEnd:   update.PeriodEnd,
	})
	if err != nil {
		if err == dao.ErrUpdateExists {
			return domain.ProctorUpdate{}, ErrUpdateExists
		}

		return domain.ProctorUpdate{}, fmt.Errorf("r.dao.InsertUpdate -> %w", err)
	}

	return r.updateDaoToDomain(created), nil
}

func (r *ProctorRepository) ListUpdates(ctx context.Context, proctorID, execomID uint) ([]domain.ProctorUpdate, error) {
	updates, err := r.dao.ListUpdates(ctx, proctorID, execomID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListUpdates -> %w", err)
	}

	result := make([]domain.ProctorUpdate, len(updates))
	for i, u := range updates {
		result[i] = r.updateDaoToDomain(u)
	}

	return result, nil
}
