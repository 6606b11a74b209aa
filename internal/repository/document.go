package repository

import (
	"context"
	"fmt"

	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/repository/dao"
)

var (
	ErrAssignmentNotFound = dao.ErrAssignmentNotFound
	ErrAssignmentExists   = dao.ErrAssignmentExists
	ErrDocumentNotFound   = dao.ErrDocumentNotFound
)

type DocumentDAO interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	InsertAssignment(ctx context.Context, assignment dao.EventAssignment) (dao.EventAssignment, error)
	FindAssignment(ctx context.Context, eventID uint, teamType string, assignedTo uint) (dao.EventAssignment, error)
	ListAssignments(ctx context.Context, eventID uint) ([]dao.EventAssignment, error)
	InsertDocument(ctx context.Context, document dao.EventDocument) (dao.EventDocument, error)
	GetDocument(ctx context.Context, id uint) (dao.EventDocument, error)
	ListDocuments(ctx context.Context, eventID uint) ([]dao.EventDocument, error)
	UpdateReview(ctx context.Context, id uint, status string, reviewedBy uint) error
}

type DocumentRepository struct {
	dao DocumentDAO
}

func NewDocumentRepository(dao DocumentDAO) *DocumentRepository {
	return &DocumentRepository{
		dao: dao,
	}
}

func (r *DocumentRepository) assignmentDaoToDomain(a dao.EventAssignment) domain.EventAssignment {
	return domain.EventAssignment{
		ID:         a.ID,
		EventID:    a.EventID,
		TeamType:   domain.TeamType(a.TeamType),
		AssignedTo: a.AssignedTo,
		AssignedBy: a.AssignedBy,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func (r *DocumentRepository) documentDaoToDomain(d dao.EventDocument) domain.EventDocument {
	return domain.EventDocument{
		ID:           d.ID,
		EventID:      d.EventID,
		DocumentType: domain.DocumentType(d.DocumentType),
		Title:        d.Title,
		FileURL:      d.FileURL,
		UploadedBy:   d.UploadedBy,
		ReviewedBy:   d.ReviewedBy,
		ReviewStatus: domain.ReviewStatus(d.ReviewStatus),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *DocumentRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.dao.WithTx(ctx, fn)
}

func (r *DocumentRepository) CreateAssignment(ctx context.Context, assignment domain.EventAssignment) (domain.EventAssignment, error) {
	created, err := r.dao.InsertAssignment(ctx, dao.EventAssignment{
		EventID:    assignment.EventID,
		TeamType:   string(assignment.TeamType),
		AssignedTo: assignment.AssignedTo,
		AssignedBy: assignment.AssignedBy,
	})
	if err != nil {
		if err == dao.ErrAssignmentExists {
			return domain.EventAssignment{}, ErrAssignmentExists
		}

		return domain.EventAssignment{}, fmt.Errorf("r.dao.InsertAssignment -> %w", err)
	}

	return r.assignmentDaoToDomain(created), nil
}

func (r *DocumentRepository) FindAssignment(ctx context.Context, eventID uint, teamType domain.TeamType, assignedTo uint) (domain.EventAssignment, error) {
	assignment, err := r.dao.FindAssignment(ctx, eventID, string(teamType), assignedTo)
	if err != nil {
		if err == dao.ErrAssignmentNotFound {
			return domain.EventAssignment{}, ErrAssignmentNotFound
		}

		return domain.EventAssignment{}, fmt.Errorf("r.dao.FindAssignment -> %w", err)
	}

	return r.assignmentDaoToDomain(assignment), nil
}

func (r *DocumentRepository) ListAssignments(ctx context.Context, eventID uint) ([]domain.EventAssignment, error) {
	assignments, err := r.dao.ListAssignments(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListAssignments -> %w", err)
	}

	result := make([]domain.EventAssignment, len(assignments))
	for i, a := range assignments {
		result[i] = r.assignmentDaoToDomain(a)
	}

	return result, nil
}

func (r *DocumentRepository) CreateDocument(ctx context.Context, document domain.EventDocument) (domain.EventDocument, error) {
	created, err := r.dao.InsertDocument(ctx, dao.EventDocument{
		EventID:      document.EventID,
		DocumentType: string(document.DocumentType),
		Title:        document.Title,
		FileURL:      document.FileURL,
		UploadedBy:   document.UploadedBy,
		ReviewStatus: string(domain.ReviewPending),
	})
	if err != nil {
		return domain.EventDocument{}, fmt.Errorf("r.dao.InsertDocument -> %w", err)
	}

	return r.documentDaoToDomain(created), nil
}

func (r *DocumentRepository) GetDocument(ctx context.Context, id uint) (domain.EventDocument, error) {
	document, err := r.dao.GetDocument(ctx, id)
	if err != nil {
		if err == dao.ErrDocumentNotFound {
			return domain.EventDocument{}, ErrDocumentNotFound
		}

		return domain.EventDocument{}, fmt.Errorf("r.dao.GetDocument -> %w", err)
	}

	return r.documentDaoToDomain(document), nil
}

func (r *DocumentRepository) ListDocuments(ctx context.Context, eventID uint) ([]domain.EventDocument, error) {
	documents, err := r.dao.ListDocuments(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListDocuments -> %w", err)
	}

	result := make([]domain.EventDocument, len(documents))
	for i, d := range documents {
		result[i] = r.documentDaoToDomain(d)
	}

	return result, nil
}

func (r *DocumentRepository) UpdateReview(ctx context.Context, id uint, status domain.ReviewStatus, reviewedBy uint) error {
	if err := r.dao.UpdateReview(ctx, id, string(status), reviewedBy); err != nil {
		if err == dao.ErrDocumentNotFound {
			return ErrDocumentNotFound
		}

		return fmt.Errorf("r.dao.UpdateReview -> %w", err)
	}

	return nil
}
