package booking

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/DC111-ui/hss-storage-platform/models"
)

// SQLiteRepo implements Repository on a SQLite database.
type SQLiteRepo struct {
	DB *sql.DB
}

// NewSQLiteRepo wraps an open database handle.
func NewSQLiteRepo(db *sql.DB) *SQLiteRepo {
	return &SQLiteRepo{DB: db}
}

func (r *SQLiteRepo) Create(ctx context.Context, b *models.Booking) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO bookings (
			id, customer_name, email, pickup_date, pickup_window, address,
			duration_months, item_count, monthly_subtotal, handling_fee, total,
			status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID,
		strings.TrimSpace(b.Customer.Name),
		strings.ToLower(strings.TrimSpace(b.Customer.Email)),
		b.Customer.PickupDate,
		b.Customer.PickupWindow,
		strings.TrimSpace(b.Customer.Address),
		b.Pricing.Duration,
		len(b.Items),
		b.Pricing.MonthlySubtotal,
		b.Pricing.HandlingFee,
		b.Pricing.Total,
		string(b.Status),
		b.CreatedAt.UTC().Format(time.RFC3339),
		b.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	for _, item := range b.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO booking_items (booking_id, item_type, item_name, s3_key) VALUES (?, ?, ?, ?)`,
			b.ID, string(item.Type), strings.TrimSpace(item.Name), item.PhotoRef)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *SQLiteRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	row := r.DB.QueryRowContext(ctx, bookingColumns+` FROM bookings WHERE id = ?`, id)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT item_type, COALESCE(item_name, ''), COALESCE(s3_key, '') FROM booking_items WHERE booking_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.Item
		var itemType string
		if err := rows.Scan(&itemType, &item.Name, &item.PhotoRef); err != nil {
			return nil, err
		}
		item.Type = models.ItemType(itemType)
		b.Items = append(b.Items, item)
	}
	return b, rows.Err()
}

func (r *SQLiteRepo) List(ctx context.Context, status models.BookingStatus, limit, offset int) ([]models.Booking, error) {
	var rows *sql.Rows
	var err error
	if status != "" {
		rows, err = r.DB.QueryContext(ctx,
			bookingColumns+` FROM bookings WHERE status = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`,
			string(status), limit, offset)
	} else {
		rows, err = r.DB.QueryContext(ctx,
			bookingColumns+` FROM bookings ORDER BY created_at DESC LIMIT ? OFFSET ?`, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *SQLiteRepo) StaffQueue(ctx context.Context) ([]models.Booking, error) {
	placeholders := make([]string, len(models.StaffVisibleStatuses))
	args := make([]any, len(models.StaffVisibleStatuses))
	for i, s := range models.StaffVisibleStatuses {
		placeholders[i] = "?"
		args[i] = string(s)
	}
	query := fmt.Sprintf(bookingColumns+` FROM bookings WHERE status IN (%s) ORDER BY created_at ASC`,
		strings.Join(placeholders, ","))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *SQLiteRepo) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *SQLiteRepo) SetPayment(ctx context.Context, id, paymentReference string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE bookings SET status = ?, payment_reference = ?, updated_at = ? WHERE id = ?`,
		string(models.StatusPaid), paymentReference, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *SQLiteRepo) Overview(ctx context.Context) (*models.Overview, error) {
	var ov models.Overview
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total), 0),
			COALESCE(SUM(CASE WHEN status = 'paid' THEN total ELSE 0 END), 0)
		FROM bookings`).Scan(&ov.TotalBookings, &ov.GrossValue, &ov.PaidRevenue)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM bookings GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sc models.StatusCount
		var status string
		if err := rows.Scan(&status, &sc.Count); err != nil {
			return nil, err
		}
		sc.Status = models.BookingStatus(status)
		ov.StatusBreakdown = append(ov.StatusBreakdown, sc)
	}
	return &ov, rows.Err()
}

const bookingColumns = `SELECT id, customer_name, email, pickup_date, pickup_window, address,
	duration_months, item_count, monthly_subtotal, handling_fee, total,
	status, created_at, updated_at, COALESCE(payment_reference, '')`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	var b models.Booking
	var status, createdAt, updatedAt string
	var itemCount int
	err := row.Scan(
		&b.ID, &b.Customer.Name, &b.Customer.Email, &b.Customer.PickupDate,
		&b.Customer.PickupWindow, &b.Customer.Address,
		&b.Pricing.Duration, &itemCount, &b.Pricing.MonthlySubtotal,
		&b.Pricing.HandlingFee, &b.Pricing.Total,
		&status, &createdAt, &updatedAt, &b.PaymentReference,
	)
	if err != nil {
		return nil, err
	}
	b.Status = models.BookingStatus(status)
	b.Pricing.ItemCount = itemCount
	b.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	b.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &b, nil
}

func collectBookings(rows *sql.Rows) ([]models.Booking, error) {
	var out []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
