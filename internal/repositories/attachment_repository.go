package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"civicdesk/internal/models"
)

type AttachmentRepository struct {
	DB *sql.DB
}

func (r *AttachmentRepository) CreateAttachment(ctx context.Context, a models.Attachment) (models.Attachment, error) {
	query := `
        INSERT INTO attachments (id, user_id, complaint_id, name, mime_type, url, created_at)
        VALUES (?, ?, NULL, ?, ?, ?, ?)
    `
	_, err := r.DB.ExecContext(ctx, query, a.ID, a.UserID, a.Name, a.Type, a.URL, a.CreatedAt)
	if err != nil {
		return models.Attachment{}, err
	}
	return a, nil
}

func (r *AttachmentRepository) GetAttachmentByID(ctx context.Context, id string) (models.Attachment, error) {
	var a models.Attachment
	var complaintID sql.NullString
	query := `
        SELECT id, user_id, complaint_id, name, mime_type, url, created_at
        FROM attachments
        WHERE id = ?
    `
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.UserID, &complaintID, &a.Name, &a.Type, &a.URL, &a.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Attachment{}, models.ErrAttachmentNotFound
	}
	if err != nil {
		return models.Attachment{}, err
	}
	a.ComplaintID = complaintID.String
	return a, nil
}

// GetDraftsByIDs returns the caller's not-yet-bound attachments among ids.
func (r *AttachmentRepository) GetDraftsByIDs(ctx context.Context, userID string, ids []string) ([]models.Attachment, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := fmt.Sprintf(`
        SELECT id, user_id, name, mime_type, url, created_at
        FROM attachments
        WHERE user_id = ? AND complaint_id IS NULL AND id IN (%s)
        ORDER BY created_at ASC
    `, placeholders)

	params := make([]interface{}, 0, len(ids)+1)
	params = append(params, userID)
	for _, id := range ids {
		params = append(params, id)
	}

	rows, err := r.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []models.Attachment
	for rows.Next() {
		var a models.Attachment
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.URL, &a.CreatedAt); err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return attachments, nil
}

func (r *AttachmentRepository) BindToComplaint(ctx context.Context, complaintID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := fmt.Sprintf(`
        UPDATE attachments
        SET complaint_id = ?
        WHERE complaint_id IS NULL AND id IN (%s)
    `, placeholders)

	params := make([]interface{}, 0, len(ids)+1)
	params = append(params, complaintID)
	for _, id := range ids {
		params = append(params, id)
	}

	_, err := r.DB.ExecContext(ctx, query, params...)
	return err
}

func (r *AttachmentRepository) DeleteAttachment(ctx context.Context, id string) error {
	query := `DELETE FROM attachments WHERE id = ?`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrAttachmentNotFound
	}
	return nil
}

// GetExpiredDrafts lists attachments that were uploaded before the cutoff and
// never bound to a complaint.
func (r *AttachmentRepository) GetExpiredDrafts(ctx context.Context, before time.Time) ([]models.Attachment, error) {
	query := `
        SELECT id, user_id, name, mime_type, url, created_at
        FROM attachments
        WHERE complaint_id IS NULL AND created_at < ?
    `
	rows, err := r.DB.QueryContext(ctx, query, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []models.Attachment
	for rows.Next() {
		var a models.Attachment
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.URL, &a.CreatedAt); err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return attachments, nil
}
