package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/repository"
)

var (
	ErrDocumentNotFound   = repository.ErrDocumentNotFound
	ErrAssignmentExists   = repository.ErrAssignmentExists
	ErrAssignmentNotFound = repository.ErrAssignmentNotFound

	ErrNotTeamHead       = errors.New("role does not lead this team")
	ErrNotAssignedToTeam = errors.New("user is not assigned to this event's team")
	ErrNotReviewer       = errors.New("role cannot review documents")
	ErrAlreadyReviewed   = errors.New("document has already been reviewed")
)

type DocumentRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateAssignment(ctx context.Context, assignment domain.EventAssignment) (domain.EventAssignment, error)
	FindAssignment(ctx context.Context, eventID uint, teamType domain.TeamType, assignedTo uint) (domain.EventAssignment, error)
	ListAssignments(ctx context.Context, eventID uint) ([]domain.EventAssignment, error)
	CreateDocument(ctx context.Context, document domain.EventDocument) (domain.EventDocument, error)
	GetDocument(ctx context.Context, id uint) (domain.EventDocument, error)
	ListDocuments(ctx context.Context, eventID uint) ([]domain.EventDocument, error)
	UpdateReview(ctx context.Context, id uint, status domain.ReviewStatus, reviewedBy uint) error
}

// DocumentNotifier delivers best-effort notifications to reviewers.
type DocumentNotifier interface {
	NotifyDocumentSubmitted(ctx context.Context, event domain.Event, document domain.EventDocument) error
}

type DocumentService struct {
	repo     DocumentRepository
	events   *EventService
	notifier DocumentNotifier
	logger   *zap.Logger
}

func NewDocumentService(repo DocumentRepository, events *EventService, notifier DocumentNotifier, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		repo:     repo,
		events:   events,
		notifier: notifier,
		logger:   logger,
	}
}

// AssignTeamMember attaches an execom to an approved event for one team.
// Only the matching team head may assign.
func (s *DocumentService) AssignTeamMember(ctx context.Context, assigner domain.User, eventID uint, team domain.TeamType, execomID uint) (domain.EventAssignment, error) {
	if !domain.IsTeamHead(assigner.Role.Name, team) {
		return domain.EventAssignment{}, ErrNotTeamHead
	}

	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return domain.EventAssignment{}, err
	}
	if !domain.IsCalendarCounted(event.Status) {
		return domain.EventAssignment{}, ErrEventNotApproved
	}

	assignment, err := s.repo.CreateAssignment(ctx, domain.EventAssignment{
		EventID:    eventID,
		TeamType:   team,
		AssignedTo: execomID,
		AssignedBy: assigner.ID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAssignmentExists) {
			return domain.EventAssignment{}, ErrAssignmentExists
		}

		return domain.EventAssignment{}, fmt.Errorf("s.repo.CreateAssignment -> %w", err)
	}

	return assignment, nil
}

func (s *DocumentService) ListAssignments(ctx context.Context, eventID uint) ([]domain.EventAssignment, error) {
	assignments, err := s.repo.ListAssignments(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListAssignments -> %w", err)
	}

	return assignments, nil
}

// SubmitDocument records an uploaded deliverable. A final document moves
// the event to documentation_submitted and pings the reviewers.
func (s *DocumentService) SubmitDocument(ctx context.Context, uploader domain.User, document domain.EventDocument) (domain.EventDocument, error) {
	event, err := s.events.GetEvent(ctx, document.EventID)
	if err != nil {
		return domain.EventDocument{}, err
	}
	if !domain.IsCalendarCounted(event.Status) {
		return domain.EventDocument{}, ErrEventNotApproved
	}
	if domain.IsTerminalStatus(event.Status) {
		return domain.EventDocument{}, ErrEventFinalized
	}

	if err = s.checkUploadPermission(ctx, uploader, document); err != nil {
		return domain.EventDocument{}, err
	}

	document.UploadedBy = uploader.ID
	created, err := s.repo.CreateDocument(ctx, document)
	if err != nil {
		return domain.EventDocument{}, fmt.Errorf("s.repo.CreateDocument -> %w", err)
	}

	if created.DocumentType == domain.DocumentFinal && event.Status == domain.StatusApproved {
		event, err = s.events.MarkDocumentationSubmitted(ctx, event.ID)
		if err != nil {
			return domain.EventDocument{}, err
		}
	}

	if s.notifier != nil {
		if err = s.notifier.NotifyDocumentSubmitted(ctx, event, created); err != nil {
			s.logger.Warn("failed to notify document reviewers",
				zap.Uint("event_id", event.ID), zap.Uint("document_id", created.ID), zap.Error(err))
		}
	}

	return created, nil
}

// checkUploadPermission allows the team head or an assigned team member to
// upload for their team.
func (s *DocumentService) checkUploadPermission(ctx context.Context, uploader domain.User, document domain.EventDocument) error {
	team := domain.TeamDocumentation
	if document.DocumentType == domain.DocumentDesign {
		team = domain.TeamDesign
	}

	if domain.IsTeamHead(uploader.Role.Name, team) {
		return nil
	}

	if _, err := s.repo.FindAssignment(ctx, document.EventID, team, uploader.ID); err != nil {
		if errors.Is(err, repository.ErrAssignmentNotFound) {
			return ErrNotAssignedToTeam
		}

		return fmt.Errorf("s.repo.FindAssignment -> %w", err)
	}

	return nil
}

// ReviewDocument records the reviewer's verdict. Approving a final
// document closes its event.
func (s *DocumentService) ReviewDocument(ctx context.Context, reviewer domain.User, documentID uint, verdict domain.ReviewStatus) (domain.EventDocument, error) {
	if !domain.IsSBSecretary(reviewer.Role.Name) {
		return domain.EventDocument{}, ErrNotReviewer
	}

	document, err := s.repo.GetDocument(ctx, documentID)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return domain.EventDocument{}, ErrDocumentNotFound
		}

		return domain.EventDocument{}, fmt.Errorf("s.repo.GetDocument -> %w", err)
	}
	if document.ReviewStatus != domain.ReviewPending {
		return domain.EventDocument{}, ErrAlreadyReviewed
	}

	if err = s.repo.UpdateReview(ctx, documentID, verdict, reviewer.ID); err != nil {
		return domain.EventDocument{}, fmt.Errorf("s.repo.UpdateReview -> %w", err)
	}

	document.ReviewStatus = verdict
	document.ReviewedBy = &reviewer.ID

	if verdict == domain.ReviewApproved && document.DocumentType == domain.DocumentFinal {
		if _, err = s.events.CloseEvent(ctx, document.EventID); err != nil {
			// The verdict is recorded even if closing raced with
			// another transition.
			if !errors.Is(err, ErrEventFinalized) {
				return domain.EventDocument{}, err
			}
		}
	}

	return document, nil
}

func (s *DocumentService) ListDocuments(ctx context.Context, eventID uint) ([]domain.EventDocument, error) {
	documents, err := s.repo.ListDocuments(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListDocuments -> %w", err)
	}

	return documents, nil
}
