package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/repository"
)

var (
	ErrMappingNotFound = repository.ErrMappingNotFound
	ErrUpdateExists    = repository.ErrUpdateExists

	ErrNotAssigner         = errors.New("role cannot manage proctor mappings")
	ErrExecomAlreadyMapped = errors.New("execom is already mapped to a proctor")
	ErrProctorAtCapacity   = errors.New("proctor already has the maximum number of mentees")
	ErrNotExecom           = errors.New("mentee must be an execom member")
	ErrUpdatePeriodInvalid = errors.New("update period must span a full reporting window")
	ErrUpdatesNotVisible   = errors.New("user cannot view these updates")
	ErrNotMappedToExecom   = errors.New("proctor is not mapped to this execom")
)

type ProctorRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateMapping(ctx context.Context, proctorID, execomID uint) (domain.ProctorMapping, error)
	DeleteMapping(ctx context.Context, proctorID, execomID uint) error
	FindMappingByExecom(ctx context.Context, execomID uint) (domain.ProctorMapping, error)
	CountMappingsByProctor(ctx context.Context, proctorID uint) (int, error)
	ListMappings(ctx context.Context, proctorID uint) ([]domain.ProctorMapping, error)
	CreateUpdate(ctx context.Context, update domain.ProctorUpdate) (domain.ProctorUpdate, error)
	ListUpdates(ctx context.Context, proctorID, execomID uint) ([]domain.ProctorUpdate, error)
}

type ProctorService struct {
	repo  ProctorRepository
	users UserRepository
}

func NewProctorService(repo ProctorRepository, users UserRepository) *ProctorService {
	return &ProctorService{
		repo:  repo,
		users: users,
	}
}

// AssignProctor maps an execom to a proctor. The mentee must not be mapped
// anywhere else and the proctor must have capacity; both checks run under
// a per-proctor lock so concurrent assignments cannot overshoot the cap.
func (s *ProctorService) AssignProctor(ctx context.Context, assigner domain.User, proctorID, execomID uint) (domain.ProctorMapping, error) {
	execom, err := s.checkAssignPermission(ctx, assigner, proctorID, execomID)
	if err != nil {
		return domain.ProctorMapping{}, err
	}

	if execom.Role.Level != domain.RoleLevelExecom {
		return domain.ProctorMapping{}, ErrNotExecom
	}

	var mapping domain.ProctorMapping
	err = s.repo.WithTx(ctx, func(ctx context.Context) error {
		if err := s.users.LockUser(ctx, proctorID); err != nil {
			return fmt.Errorf("s.users.LockUser -> %w", err)
		}

		if _, err := s.repo.FindMappingByExecom(ctx, execomID); err == nil {
			return ErrExecomAlreadyMapped
		} else if !errors.Is(err, repository.ErrMappingNotFound) {
			return fmt.Errorf("s.repo.FindMappingByExecom -> %w", err)
		}

		count, err := s.repo.CountMappingsByProctor(ctx, proctorID)
		if err != nil {
			return fmt.Errorf("s.repo.CountMappingsByProctor -> %w", err)
		}
		if count >= domain.MaxExecomsPerProctor {
			return ErrProctorAtCapacity
		}

		mapping, err = s.repo.CreateMapping(ctx, proctorID, execomID)
		if err != nil {
			if errors.Is(err, repository.ErrMappingExists) {
				return ErrExecomAlreadyMapped
			}

			return fmt.Errorf("s.repo.CreateMapping -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.ProctorMapping{}, err
	}

	return mapping, nil
}

func (s *ProctorService) UnassignProctor(ctx context.Context, assigner domain.User, proctorID, execomID uint) error {
	if _, err := s.checkAssignPermission(ctx, assigner, proctorID, execomID); err != nil {
		return err
	}

	if err := s.repo.DeleteMapping(ctx, proctorID, execomID); err != nil {
		if errors.Is(err, repository.ErrMappingNotFound) {
			return ErrMappingNotFound
		}

		return fmt.Errorf("s.repo.DeleteMapping -> %w", err)
	}

	return nil
}

// checkAssignPermission verifies the assigner role and, for chapter-scoped
// assigners, that both sides of the mapping sit in the assigner's chapter.
func (s *ProctorService) checkAssignPermission(ctx context.Context, assigner domain.User, proctorID, execomID uint) (domain.User, error) {
	if !domain.CanAssignProctors(assigner.Role.Name) {
		return domain.User{}, ErrNotAssigner
	}

	proctor, err := s.users.FindByID(ctx, proctorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}

	execom, err := s.users.FindByID(ctx, execomID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}

	if domain.IsChapterScopedAssigner(assigner.Role.Name) {
		if assigner.ChapterID == nil ||
			proctor.ChapterID == nil || *proctor.ChapterID != *assigner.ChapterID ||
			execom.ChapterID == nil || *execom.ChapterID != *assigner.ChapterID {
			return domain.User{}, ErrOutsideChapter
		}
	}

	return execom, nil
}

func (s *ProctorService) ListMappings(ctx context.Context, viewer domain.User, proctorID uint) ([]domain.ProctorMapping, error) {
	// Non-senior viewers only see their own mentees.
	if viewer.Role.Level != domain.RoleLevelSeniorCore {
		proctorID = viewer.ID
	}

	mappings, err := s.repo.ListMappings(ctx, proctorID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListMappings -> %w", err)
	}

	return mappings, nil
}

// RecordUpdate stores one periodic report for a mentee. The period must
// span a full reporting window and at most one update may exist per
// (proctor, execom, period) triple.
func (s *ProctorService) RecordUpdate(ctx context.Context, proctor domain.User, execomID uint, text string, periodStart, periodEnd time.Time) (domain.ProctorUpdate, error) {
	if !domain.ValidUpdatePeriod(periodStart, periodEnd) {
		return domain.ProctorUpdate{}, fmt.Errorf("%w: must span %d to %d days",
			ErrUpdatePeriodInvalid, domain.MinUpdatePeriodDays, domain.MaxUpdatePeriodDays)
	}

	mapping, err := s.repo.FindMappingByExecom(ctx, execomID)
	if err != nil {
		if errors.Is(err, repository.ErrMappingNotFound) {
			return domain.ProctorUpdate{}, ErrMappingNotFound
		}

		return domain.ProctorUpdate{}, fmt.Errorf("s.repo.FindMappingByExecom -> %w", err)
	}
	if mapping.ProctorID != proctor.ID {
		return domain.ProctorUpdate{}, ErrNotMappedToExecom
	}

	update, err := s.repo.CreateUpdate(ctx, domain.ProctorUpdate{
		ProctorID:   proctor.ID,
		ExecomID:    execomID,
		UpdateText:  text,
		PeriodStart: truncateToDay(periodStart),
		PeriodEnd:   truncateToDay(periodEnd),
	})
	if err != nil {
		if errors.Is(err, repository.ErrUpdateExists) {
			return domain.ProctorUpdate{}, ErrUpdateExists
		}

		return domain.ProctorUpdate{}, fmt.Errorf("s.repo.CreateUpdate -> %w", err)
	}

	return update, nil
}

// ListUpdates applies the visibility rules: senior core sees everything,
// everyone else only the updates they wrote or that were written about them.
func (s *ProctorService) ListUpdates(ctx context.Context, viewer domain.User, proctorID, execomID uint) ([]domain.ProctorUpdate, error) {
	if viewer.Role.Level != domain.RoleLevelSeniorCore {
		if proctorID == 0 && execomID == 0 {
			// Unfiltered requests collapse to the viewer's own feed.
			if viewer.Role.Level == domain.RoleLevelExecom {
				execomID = viewer.ID
			} else {
				proctorID = viewer.ID
			}
		} else if proctorID != viewer.ID && execomID != viewer.ID {
			return nil, ErrUpdatesNotVisible
		}
	}

	updates, err := s.repo.ListUpdates(ctx, proctorID, execomID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListUpdates -> %w", err)
	}

	return updates, nil
}
