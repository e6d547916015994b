package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vperic/linguachat/internal/domain"
)

type FriendshipRepo struct {
	pool *pgxpool.Pool
}

func NewFriendshipRepo(pool *pgxpool.Pool) *FriendshipRepo {
	return &FriendshipRepo{pool: pool}
}

func (r *FriendshipRepo) Create(ctx context.Context, f *domain.Friendship) error {
	query := `
		INSERT INTO friendships (id, user1_id, user2_id, requested_by, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query, f.ID, f.User1ID, f.User2ID, f.RequestedBy, f.Status, f.CreatedAt)
	return err
}

func (r *FriendshipRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Friendship, error) {
	query := `
		SELECT f.id, f.user1_id, f.user2_id, f.requested_by, f.status, f.created_at, f.accepted_at,
			u.username, u.display_name
		FROM friendships f
		JOIN users u ON f.requested_by = u.id
		WHERE f.id = $1`
	var f domain.Friendship
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.User1ID, &f.User2ID, &f.RequestedBy, &f.Status, &f.CreatedAt, &f.AcceptedAt,
		&f.RequesterUsername, &f.RequesterDisplayName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FriendshipRepo) GetByUsers(ctx context.Context, user1ID, user2ID uuid.UUID) (*domain.Friendship, error) {
	query := `
		SELECT id, user1_id, user2_id, requested_by, status, created_at, accepted_at
		FROM friendships
		WHERE user1_id = $1 AND user2_id = $2`
	var f domain.Friendship
	err := r.pool.QueryRow(ctx, query, user1ID, user2ID).Scan(
		&f.ID, &f.User1ID, &f.User2ID, &f.RequestedBy, &f.Status, &f.CreatedAt, &f.AcceptedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FriendshipRepo) Accept(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE friendships
		SET status = 'accepted', accepted_at = now()
		WHERE id = $1 AND status = 'pending'`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *FriendshipRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM friendships WHERE id = $1`, id)
	return err
}

func (r *FriendshipRepo) ListPending(ctx context.Context, userID uuid.UUID) ([]domain.Friendship, error) {
	query := `
		SELECT f.id, f.user1_id, f.user2_id, f.requested_by, f.status, f.created_at, f.accepted_at,
			u.username, u.display_name
		FROM friendships f
		JOIN users u ON f.requested_by = u.id
		WHERE (f.user1_id = $1 OR f.user2_id = $1) AND f.status = 'pending'
		ORDER BY f.created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.Friendship
	for rows.Next() {
		var f domain.Friendship
		if err := rows.Scan(
			&f.ID, &f.User1ID, &f.User2ID, &f.RequestedBy, &f.Status, &f.CreatedAt, &f.AcceptedAt,
			&f.RequesterUsername, &f.RequesterDisplayName,
		); err != nil {
			return nil, err
		}
		reqs = append(reqs, f)
	}
	return reqs, rows.Err()
}

func (r *FriendshipRepo) ListFriends(ctx context.Context, userID uuid.UUID) ([]domain.User, error) {
	query := `
		SELECT u.id, u.email, u.username, u.display_name, u.avatar_url, u.language,
			u.password_hash, u.created_at, u.updated_at
		FROM friendships f
		JOIN users u ON u.id = CASE WHEN f.user1_id = $1 THEN f.user2_id ELSE f.user1_id END
		WHERE (f.user1_id = $1 OR f.user2_id = $1) AND f.status = 'accepted'
		ORDER BY u.username`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var friends []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.Username, &u.DisplayName, &u.AvatarURL, &u.Language,
			&u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		friends = append(friends, u)
	}
	return friends, rows.Err()
}
