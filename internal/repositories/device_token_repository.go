package repositories

import (
	"context"
	"database/sql"
	"time"
)

type DeviceTokenRepository struct {
	DB *sql.DB
}

func (r *DeviceTokenRepository) SaveToken(ctx context.Context, userID, token string) error {
	query := `
        INSERT INTO device_tokens (user_id, token, created_at)
        VALUES (?, ?, ?)
        ON DUPLICATE KEY UPDATE created_at = VALUES(created_at)
    `
	_, err := r.DB.ExecContext(ctx, query, userID, token, time.Now())
	return err
}

func (r *DeviceTokenRepository) GetTokensByUserID(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT token FROM device_tokens WHERE user_id = ?`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}
