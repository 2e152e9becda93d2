package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/itemshare/internal/apperr"
	"github.com/Domenick1991/itemshare/internal/domain"
	"github.com/jackc/pgx/v5"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	// Approve flips the booking to APPROVED and the item to
	// unavailable in one transaction with the item row locked, so two
	// concurrent approvals cannot both succeed.
	Approve(ctx context.Context, bookingID int64) (*domain.Booking, error)
	Reject(ctx context.Context, bookingID int64) (*domain.Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, filter domain.StateFilter, now time.Time) ([]domain.Booking, error)
	ListByItemOwner(ctx context.Context, ownerID int64, filter domain.StateFilter, now time.Time) ([]domain.Booking, error)
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error)
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error)
	HasFinishedApproved(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type PGBookingRepository struct {
	db DB
}

func NewBookingRepository(db DB) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `b.id, b.start_at, b.end_at, b.item_id, b.booker_id, b.status, b.created_at, b.updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(&b.ID, &b.Start, &b.End, &b.ItemID, &b.BookerID, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	booking.Status = domain.BookingStatusWaiting
	return r.db.QueryRow(ctx, `INSERT INTO bookings (start_at, end_at, item_id, booker_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		booking.Start, booking.End, booking.ItemID, booking.BookerID, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("booking %d not found", id)
	}
	return b, err
}

func (r *PGBookingRepository) Approve(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var itemID int64
	if err := tx.QueryRow(ctx, `SELECT item_id FROM bookings WHERE id=$1`, bookingID).Scan(&itemID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("booking %d not found", bookingID)
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx, `SELECT id FROM items WHERE id=$1 FOR UPDATE`, itemID); err != nil {
		return nil, err
	}

	b, err := scanBooking(tx.QueryRow(ctx, `UPDATE bookings b SET status=$1, updated_at=now() WHERE b.id=$2
		RETURNING `+bookingColumns, domain.BookingStatusApproved, bookingID))
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `UPDATE items SET available=FALSE, updated_at=now() WHERE id=$1`, itemID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "approve booking")
	}
	return b, nil
}

func (r *PGBookingRepository) Reject(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `UPDATE bookings b SET status=$1, updated_at=now() WHERE b.id=$2
		RETURNING `+bookingColumns, domain.BookingStatusRejected, bookingID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("booking %d not found", bookingID)
	}
	return b, err
}

func (r *PGBookingRepository) ListByBooker(ctx context.Context, bookerID int64, filter domain.StateFilter, now time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.booker_id=$1`
	return r.listFiltered(ctx, query, bookerID, filter, now)
}

func (r *PGBookingRepository) ListByItemOwner(ctx context.Context, ownerID int64, filter domain.StateFilter, now time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b JOIN items i ON i.id = b.item_id WHERE i.owner_id=$1`
	return r.listFiltered(ctx, query, ownerID, filter, now)
}

// CURRENT matches bookings that have not started yet; clients depend
// on that exact list shape.
func (r *PGBookingRepository) listFiltered(ctx context.Context, base string, userID int64, filter domain.StateFilter, now time.Time) ([]domain.Booking, error) {
	args := []any{userID}
	switch filter {
	case domain.StateAll:
	case domain.StateCurrent:
		base += ` AND b.start_at > $2 AND b.end_at > $2`
		args = append(args, now)
	case domain.StatePast:
		base += ` AND b.end_at < $2`
		args = append(args, now)
	case domain.StateFuture:
		base += ` AND b.start_at > $2`
		args = append(args, now)
	case domain.StateWaiting:
		base += ` AND b.status = $2`
		args = append(args, domain.BookingStatusWaiting)
	case domain.StateRejected:
		base += ` AND b.status = $2`
		args = append(args, domain.BookingStatusRejected)
	default:
		return nil, apperr.BadRequest("unknown state filter: %s", filter)
	}
	base += ` ORDER BY b.start_at DESC`

	rows, err := r.db.Query(ctx, base, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) LastForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings b
		WHERE b.item_id=$1 AND b.end_at >= $2 AND b.start_at <= $2
		ORDER BY b.end_at DESC LIMIT 1`, itemID, now))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

func (r *PGBookingRepository) NextForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings b
		WHERE b.item_id=$1 AND b.start_at > $2
		ORDER BY b.start_at ASC LIMIT 1`, itemID, now))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

func (r *PGBookingRepository) HasFinishedApproved(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings b
		WHERE b.status=$1 AND b.booker_id=$2 AND b.item_id=$3 AND b.end_at <= $4)`,
		domain.BookingStatusApproved, bookerID, itemID, now).Scan(&ok)
	return ok, err
}

var _ BookingRepository = (*PGBookingRepository)(nil)
