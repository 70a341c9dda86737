package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"civicdesk/internal/models"
)

type AttachmentStore interface {
	CreateAttachment(ctx context.Context, a models.Attachment) (models.Attachment, error)
	GetAttachmentByID(ctx context.Context, id string) (models.Attachment, error)
	GetDraftsByIDs(ctx context.Context, userID string, ids []string) ([]models.Attachment, error)
	BindToComplaint(ctx context.Context, complaintID string, ids []string) error
	DeleteAttachment(ctx context.Context, id string) error
	GetExpiredDrafts(ctx context.Context, before time.Time) ([]models.Attachment, error)
}

// BlobStorage is the object store backing attachment URLs.
type BlobStorage interface {
	Upload(file []byte, fileName, folder, contentType string) (string, error)
	Delete(fileURL string) error
}

const attachmentFolder = "attachments"

type AttachmentService struct {
	AttachmentRepo AttachmentStore
	Storage        BlobStorage
}

// SaveDraft uploads an accepted file and records it as a draft attachment,
// owned by the uploader until it is bound to a complaint.
func (s *AttachmentService) SaveDraft(ctx context.Context, userID, fileName, mimeType string, data []byte) (models.Attachment, error) {
	objectName := fmt.Sprintf("%d_%s", time.Now().UnixNano(), fileName)
	url, err := s.Storage.Upload(data, objectName, attachmentFolder, mimeType)
	if err != nil {
		return models.Attachment{}, err
	}

	attachment := models.Attachment{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      fileName,
		Type:      mimeType,
		URL:       url,
		CreatedAt: time.Now(),
	}
	return s.AttachmentRepo.CreateAttachment(ctx, attachment)
}

// DeleteDraft releases the backing object immediately. Only the uploader may
// remove a draft, and attachments already bound to a complaint are owned by
// it and cannot be removed.
func (s *AttachmentService) DeleteDraft(ctx context.Context, userID, id string) error {
	attachment, err := s.AttachmentRepo.GetAttachmentByID(ctx, id)
	if err != nil {
		return err
	}
	if attachment.UserID != userID || attachment.ComplaintID != "" {
		return models.ErrAttachmentNotFound
	}

	if err := s.Storage.Delete(attachment.URL); err != nil {
		return err
	}
	return s.AttachmentRepo.DeleteAttachment(ctx, id)
}

// CleanupExpiredDrafts releases drafts that were uploaded before the cutoff
// and never made it into a complaint. Returns how many were removed.
func (s *AttachmentService) CleanupExpiredDrafts(ctx context.Context, before time.Time) (int, error) {
	drafts, err := s.AttachmentRepo.GetExpiredDrafts(ctx, before)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, draft := range drafts {
		if err := s.Storage.Delete(draft.URL); err != nil {
			return removed, err
		}
		if err := s.AttachmentRepo.DeleteAttachment(ctx, draft.ID); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
