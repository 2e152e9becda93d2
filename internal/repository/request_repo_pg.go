package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/itemshare/internal/apperr"
	"github.com/Domenick1991/itemshare/internal/domain"
	"github.com/jackc/pgx/v5"
)

type ItemRequestRepository interface {
	Create(ctx context.Context, request *domain.ItemRequest) error
	GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]domain.ItemRequest, error)
	ListOthers(ctx context.Context, requesterID int64) ([]domain.ItemRequest, error)
}

type PGItemRequestRepository struct {
	db DB
}

func NewItemRequestRepository(db DB) ItemRequestRepository {
	return &PGItemRequestRepository{db: db}
}

func (r *PGItemRequestRepository) Create(ctx context.Context, request *domain.ItemRequest) error {
	return r.db.QueryRow(ctx, `INSERT INTO item_requests (description, requester_id)
		VALUES ($1, $2) RETURNING id, created_at`,
		request.Description, request.RequesterID).
		Scan(&request.ID, &request.CreatedAt)
}

func (r *PGItemRequestRepository) GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error) {
	row := r.db.QueryRow(ctx, `SELECT id, description, requester_id, created_at FROM item_requests WHERE id=$1`, id)
	var req domain.ItemRequest
	if err := row.Scan(&req.ID, &req.Description, &req.RequesterID, &req.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("request %d not found", id)
		}
		return nil, err
	}
	return &req, nil
}

func (r *PGItemRequestRepository) ListByRequester(ctx context.Context, requesterID int64) ([]domain.ItemRequest, error) {
	return r.list(ctx, `SELECT id, description, requester_id, created_at FROM item_requests
		WHERE requester_id=$1 ORDER BY created_at DESC`, requesterID)
}

func (r *PGItemRequestRepository) ListOthers(ctx context.Context, requesterID int64) ([]domain.ItemRequest, error) {
	return r.list(ctx, `SELECT id, description, requester_id, created_at FROM item_requests
		WHERE requester_id<>$1 ORDER BY created_at DESC`, requesterID)
}

func (r *PGItemRequestRepository) list(ctx context.Context, query string, requesterID int64) ([]domain.ItemRequest, error) {
	rows, err := r.db.Query(ctx, query, requesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]domain.ItemRequest, 0)
	for rows.Next() {
		var req domain.ItemRequest
		if err := rows.Scan(&req.ID, &req.Description, &req.RequesterID, &req.CreatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

var _ ItemRequestRepository = (*PGItemRequestRepository)(nil)
