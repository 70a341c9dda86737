package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"civicdesk/internal/models"
)

type ComplaintRepository struct {
	DB *sql.DB
}

func (r *ComplaintRepository) CreateComplaint(ctx context.Context, c models.Complaint) (models.Complaint, error) {
	query := `
        INSERT INTO complaints (id, user_id, user_name, type, location, description, status, is_urgent, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.UserID, c.UserName, c.Type, c.Location, c.Description,
		c.Status, c.IsUrgent, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return models.Complaint{}, err
	}
	return c, nil
}

// GetAllComplaints returns the whole collection in insertion order,
// attachments included.
func (r *ComplaintRepository) GetAllComplaints(ctx context.Context) ([]models.Complaint, error) {
	query := `
        SELECT id, user_id, user_name, type, location, description, status, is_urgent, created_at, updated_at
        FROM complaints
        ORDER BY seq ASC
    `
	return r.queryComplaints(ctx, query)
}

func (r *ComplaintRepository) GetComplaintsByUserID(ctx context.Context, userID string) ([]models.Complaint, error) {
	query := `
        SELECT id, user_id, user_name, type, location, description, status, is_urgent, created_at, updated_at
        FROM complaints
        WHERE user_id = ?
        ORDER BY seq ASC
    `
	return r.queryComplaints(ctx, query, userID)
}

func (r *ComplaintRepository) GetComplaintByID(ctx context.Context, id string) (models.Complaint, error) {
	var c models.Complaint
	query := `
        SELECT id, user_id, user_name, type, location, description, status, is_urgent, created_at, updated_at
        FROM complaints
        WHERE id = ?
    `
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.UserID, &c.UserName, &c.Type, &c.Location, &c.Description,
		&c.Status, &c.IsUrgent, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Complaint{}, models.ErrComplaintNotFound
	}
	if err != nil {
		return models.Complaint{}, err
	}

	attachments, err := r.attachmentsFor(ctx, []string{c.ID})
	if err != nil {
		return models.Complaint{}, err
	}
	c.Attachments = attachments[c.ID]
	if c.Attachments == nil {
		c.Attachments = []models.Attachment{}
	}
	return c, nil
}

// UpdateComplaintStatus overwrites status and refreshes updated_at; every
// other column is left untouched.
func (r *ComplaintRepository) UpdateComplaintStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	query := `UPDATE complaints SET status = ?, updated_at = ? WHERE id = ?`
	result, err := r.DB.ExecContext(ctx, query, status, updatedAt, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrComplaintNotFound
	}
	return nil
}

func (r *ComplaintRepository) queryComplaints(ctx context.Context, query string, args ...interface{}) ([]models.Complaint, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var complaints []models.Complaint
	var ids []string
	for rows.Next() {
		var c models.Complaint
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.UserName, &c.Type, &c.Location, &c.Description,
			&c.Status, &c.IsUrgent, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		c.Attachments = []models.Attachment{}
		complaints = append(complaints, c)
		ids = append(ids, c.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	attachments, err := r.attachmentsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range complaints {
		if atts, ok := attachments[complaints[i].ID]; ok {
			complaints[i].Attachments = atts
		}
	}
	return complaints, nil
}

func (r *ComplaintRepository) attachmentsFor(ctx context.Context, complaintIDs []string) (map[string][]models.Attachment, error) {
	if len(complaintIDs) == 0 {
		return map[string][]models.Attachment{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(complaintIDs)), ",")
	query := fmt.Sprintf(`
        SELECT id, user_id, complaint_id, name, mime_type, url, created_at
        FROM attachments
        WHERE complaint_id IN (%s)
        ORDER BY created_at ASC
    `, placeholders)

	params := make([]interface{}, 0, len(complaintIDs))
	for _, id := range complaintIDs {
		params = append(params, id)
	}

	rows, err := r.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]models.Attachment)
	for rows.Next() {
		var a models.Attachment
		var complaintID sql.NullString
		if err := rows.Scan(&a.ID, &a.UserID, &complaintID, &a.Name, &a.Type, &a.URL, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.ComplaintID = complaintID.String
		result[a.ComplaintID] = append(result[a.ComplaintID], a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
