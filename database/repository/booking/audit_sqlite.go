package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/DC111-ui/hss-storage-platform/models"
)

// SQLiteAuditRepo implements AuditRepository on the same SQLite database.
type SQLiteAuditRepo struct {
	DB *sql.DB
}

func NewSQLiteAuditRepo(db *sql.DB) *SQLiteAuditRepo {
	return &SQLiteAuditRepo{DB: db}
}

func (r *SQLiteAuditRepo) Log(ctx context.Context, eventType, bookingID string, payload map[string]any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO audit_events (event_type, booking_id, payload, created_at) VALUES (?, ?, ?, ?)`,
		eventType, bookingID, string(raw), time.Now().UTC().Format(time.RFC3339))
	return err
}

func (r *SQLiteAuditRepo) Recent(ctx context.Context, limit int) ([]models.AuditEvent, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, event_type, COALESCE(booking_id, ''), payload, created_at
		 FROM audit_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.AuditEvent
	for rows.Next() {
		var ev models.AuditEvent
		var payload, createdAt string
		if err := rows.Scan(&ev.ID, &ev.EventType, &ev.BookingID, &payload, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payload), &ev.Payload); err != nil {
			ev.Payload = map[string]any{"raw": payload}
		}
		ev.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (r *SQLiteAuditRepo) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM audit_events WHERE created_at < ?`, cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
