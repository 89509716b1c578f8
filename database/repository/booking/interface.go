package booking

import (
	"context"
	"errors"
	"time"

	"github.com/DC111-ui/hss-storage-platform/models"
)

// ErrNotFound is returned when no booking matches the given id.
var ErrNotFound = errors.New("booking not found")

// Repository defines data operations on the booking store.
type Repository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context, status models.BookingStatus, limit, offset int) ([]models.Booking, error)
	StaffQueue(ctx context.Context) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error
	SetPayment(ctx context.Context, id, paymentReference string) error
	Overview(ctx context.Context) (*models.Overview, error)
}

// AuditRepository records and serves the append-only audit trail.
type AuditRepository interface {
	Log(ctx context.Context, eventType, bookingID string, payload map[string]any) error
	Recent(ctx context.Context, limit int) ([]models.AuditEvent, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
