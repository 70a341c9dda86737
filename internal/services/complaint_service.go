package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"civicdesk/internal/models"
)

const minDescriptionLength = 10

type ComplaintStore interface {
	CreateComplaint(ctx context.Context, c models.Complaint) (models.Complaint, error)
	GetAllComplaints(ctx context.Context) ([]models.Complaint, error)
	GetComplaintsByUserID(ctx context.Context, userID string) ([]models.Complaint, error)
	GetComplaintByID(ctx context.Context, id string) (models.Complaint, error)
	UpdateComplaintStatus(ctx context.Context, id, status string, updatedAt time.Time) error
}

// StatusNotifier delivers a status change to the complaint owner.
type StatusNotifier interface {
	NotifyStatusChange(event models.StatusEvent)
}

// PushSender alerts administrator devices about an urgent complaint.
type PushSender interface {
	SendUrgentAlert(ctx context.Context, c models.Complaint)
}

type ComplaintService struct {
	ComplaintRepo  ComplaintStore
	AttachmentRepo AttachmentStore
	Users          UserStore

	Notifier StatusNotifier
	Push     PushSender

	AdminEmail string
}

// ValidateComplaintFields checks the submission form rules and reports every
// failing field at once.
func ValidateComplaintFields(complaintType, location, description string) models.ValidationError {
	errs := models.ValidationError{}

	if complaintType == "" || !models.IsValidComplaintType(complaintType) {
		errs["type"] = "Please select a complaint type"
	}
	if strings.TrimSpace(location) == "" {
		errs["location"] = "Please enter a location"
	}
	if strings.TrimSpace(description) == "" {
		errs["description"] = "Please enter a description"
	} else if len(description) < minDescriptionLength {
		errs["description"] = fmt.Sprintf("Description must be at least %d characters", minDescriptionLength)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (s *ComplaintService) CreateComplaint(ctx context.Context, userID string, req models.CreateComplaintRequest) (models.Complaint, error) {
	if userID == "" {
		return models.Complaint{}, models.ErrNotAuthenticated
	}

	if errs := ValidateComplaintFields(req.Type, req.Location, req.Description); errs != nil {
		return models.Complaint{}, errs
	}

	identity, err := s.resolveIdentity(ctx, userID)
	if err != nil {
		return models.Complaint{}, err
	}

	var attachments []models.Attachment
	if len(req.AttachmentIDs) > 0 {
		attachments, err = s.AttachmentRepo.GetDraftsByIDs(ctx, userID, req.AttachmentIDs)
		if err != nil {
			return models.Complaint{}, err
		}
		if len(attachments) != len(req.AttachmentIDs) {
			return models.Complaint{}, models.ErrAttachmentNotFound
		}
	}
	if attachments == nil {
		attachments = []models.Attachment{}
	}

	now := time.Now()
	complaint := models.Complaint{
		ID:          uuid.NewString(),
		UserID:      identity.ID,
		UserName:    identity.Name,
		Type:        req.Type,
		Location:    req.Location,
		Description: req.Description,
		Status:      models.StatusPending,
		Attachments: attachments,
		CreatedAt:   now,
		UpdatedAt:   now,
		IsUrgent:    req.Type == models.TypePublicSafety,
	}

	created, err := s.ComplaintRepo.CreateComplaint(ctx, complaint)
	if err != nil {
		return models.Complaint{}, err
	}

	if len(req.AttachmentIDs) > 0 {
		if err := s.AttachmentRepo.BindToComplaint(ctx, created.ID, req.AttachmentIDs); err != nil {
			return models.Complaint{}, err
		}
	}

	if created.IsUrgent && s.Push != nil {
		s.Push.SendUrgentAlert(ctx, created)
	}
	return created, nil
}

// UpdateComplaintStatus enforces the forward-only lifecycle
// pending -> in-progress -> resolved. Skipping a step is allowed,
// re-applying the current status refreshes updated_at, moving backwards
// is rejected.
func (s *ComplaintService) UpdateComplaintStatus(ctx context.Context, id, status string) (models.Complaint, error) {
	if !models.IsValidStatus(status) {
		return models.Complaint{}, models.ValidationError{"status": "Unknown complaint status"}
	}

	existing, err := s.ComplaintRepo.GetComplaintByID(ctx, id)
	if err != nil {
		return models.Complaint{}, err
	}

	if statusRank(status) < statusRank(existing.Status) {
		return models.Complaint{}, models.ErrInvalidStatusTransition
	}

	now := time.Now()
	if err := s.ComplaintRepo.UpdateComplaintStatus(ctx, id, status, now); err != nil {
		return models.Complaint{}, err
	}

	existing.Status = status
	existing.UpdatedAt = now

	if s.Notifier != nil {
		s.Notifier.NotifyStatusChange(models.StatusEvent{
			ComplaintID: existing.ID,
			UserID:      existing.UserID,
			Status:      status,
			UpdatedAt:   now,
		})
	}
	return existing, nil
}

func (s *ComplaintService) GetComplaintByID(ctx context.Context, id string) (models.Complaint, error) {
	return s.ComplaintRepo.GetComplaintByID(ctx, id)
}

// ListComplaints serves the administrator view: the whole collection run
// through the filter/sort pipeline, one page at a time.
func (s *ComplaintService) ListComplaints(ctx context.Context, q ComplaintQuery) (ComplaintPage, error) {
	all, err := s.ComplaintRepo.GetAllComplaints(ctx)
	if err != nil {
		return ComplaintPage{}, err
	}

	filtered := SortComplaints(FilterComplaints(all, q, true), q.Sort)
	items, page, totalPages := PaginateComplaints(filtered, q.Page)

	return ComplaintPage{
		Complaints: items,
		Total:      len(filtered),
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// UserComplaints serves the citizen view: the caller's own subset, filtered
// and sorted but never paginated. The user name does not participate in
// search here.
func (s *ComplaintService) UserComplaints(ctx context.Context, userID string, q ComplaintQuery) ([]models.Complaint, error) {
	if userID == "" {
		return []models.Complaint{}, nil
	}

	own, err := s.ComplaintRepo.GetComplaintsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return SortComplaints(FilterComplaints(own, q, false), q.Sort), nil
}

// DistinctTypes reports the type values present in the caller's scope for
// the filter dropdown.
func (s *ComplaintService) DistinctTypes(ctx context.Context, userID string, isAdmin bool) ([]string, error) {
	var (
		list []models.Complaint
		err  error
	)
	if isAdmin {
		list, err = s.ComplaintRepo.GetAllComplaints(ctx)
	} else {
		list, err = s.ComplaintRepo.GetComplaintsByUserID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return DistinctComplaintTypes(list), nil
}

// ExportCSV renders the filtered (not paginated) collection.
func (s *ComplaintService) ExportCSV(ctx context.Context, q ComplaintQuery) (string, error) {
	all, err := s.ComplaintRepo.GetAllComplaints(ctx)
	if err != nil {
		return "", err
	}
	filtered := SortComplaints(FilterComplaints(all, q, true), q.Sort)
	return BuildComplaintsCSV(filtered), nil
}

func (s *ComplaintService) resolveIdentity(ctx context.Context, userID string) (models.User, error) {
	if userID == AdminID {
		return models.User{ID: AdminID, Name: adminName, Email: s.AdminEmail, Role: models.RoleAdmin}, nil
	}
	user, err := s.Users.GetUserByID(ctx, userID)
	if err != nil {
		log.Printf("resolve identity %s: %v", userID, err)
		return models.User{}, models.ErrNotAuthenticated
	}
	return user, nil
}

func statusRank(status string) int {
	switch status {
	case models.StatusPending:
		return 0
	case models.StatusInProgress:
		return 1
	case models.StatusResolved:
		return 2
	}
	return -1
}
