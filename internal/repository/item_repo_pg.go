package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/itemshare/internal/apperr"
	"github.com/Domenick1991/itemshare/internal/domain"
	"github.com/jackc/pgx/v5"
)

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Item, error)
	Search(ctx context.Context, text string) ([]domain.Item, error)
	ShortByID(ctx context.Context, id int64) (*domain.ShortItem, error)
	ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]domain.Item, error)
}

type PGItemRepository struct {
	db DB
}

func NewItemRepository(db DB) ItemRepository {
	return &PGItemRepository{db: db}
}

const itemColumns = `id, name, description, available, owner_id, request_id, created_at, updated_at`

func scanItem(row pgx.Row) (*domain.Item, error) {
	var it domain.Item
	err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func collectItems(rows pgx.Rows) ([]domain.Item, error) {
	defer rows.Close()
	items := make([]domain.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (r *PGItemRepository) Create(ctx context.Context, item *domain.Item) error {
	return r.db.QueryRow(ctx, `INSERT INTO items (name, description, available, owner_id, request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		item.Name, item.Description, item.Available, item.OwnerID, item.RequestID).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *PGItemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	it, err := scanItem(r.db.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("item %d not found", id)
	}
	return it, err
}

func (r *PGItemRepository) Update(ctx context.Context, item *domain.Item) error {
	row := r.db.QueryRow(ctx, `UPDATE items SET name=$1, description=$2, available=$3, updated_at=now()
		WHERE id=$4 RETURNING updated_at`,
		item.Name, item.Description, item.Available, item.ID)
	if err := row.Scan(&item.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("item %d not found", item.ID)
		}
		return err
	}
	return nil
}

func (r *PGItemRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Item, error) {
	rows, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM items WHERE owner_id=$1 ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

func (r *PGItemRepository) Search(ctx context.Context, text string) ([]domain.Item, error) {
	rows, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM items
		WHERE available = TRUE AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY id`, text)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

func (r *PGItemRepository) ShortByID(ctx context.Context, id int64) (*domain.ShortItem, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name FROM items WHERE id=$1`, id)
	var it domain.ShortItem
	if err := row.Scan(&it.ID, &it.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("item %d not found", id)
		}
		return nil, err
	}
	return &it, nil
}

func (r *PGItemRepository) ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]domain.Item, error) {
	rows, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM items WHERE request_id = ANY($1) ORDER BY id`, requestIDs)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

var _ ItemRepository = (*PGItemRepository)(nil)
