package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qubitgyan/qubitgyan-backend/internal/model"
)

// UserRepository handles user and profile data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, is_staff, created_at
		 FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsStaff, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, is_staff, created_at
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsStaff, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// List retrieves users with pagination.
func (r *UserRepository) List(ctx context.Context, page, perPage int) ([]model.User, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, password_hash, is_staff, created_at
		 FROM users
		 ORDER BY name
		 LIMIT $1 OFFSET $2`, perPage, (page-1)*perPage,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsStaff, &u.CreatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// Create inserts a new user and its empty profile row.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, is_staff)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		u.Name, u.Email, u.PasswordHash, u.IsStaff,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO user_profiles (user_id) VALUES ($1)`, u.ID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Update patches user fields. Empty values leave columns unchanged.
func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users
		 SET name = COALESCE(NULLIF($2, ''), name),
		     email = COALESCE(NULLIF($3, ''), email),
		     password_hash = COALESCE(NULLIF($4, ''), password_hash)
		 WHERE id = $1`,
		u.ID, u.Name, u.Email, u.PasswordHash,
	)
	return err
}

// Delete removes a user. Profile, attempts and progress cascade.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

// GetProfile retrieves the capability profile for a user. A missing row
// resolves to an all-false profile rather than an error.
func (r *UserRepository) GetProfile(ctx context.Context, userID int) (*model.UserProfile, error) {
	p := &model.UserProfile{UserID: userID}
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(avatar_url, ''), can_manage_users, can_manage_content
		 FROM user_profiles WHERE user_id = $1`, userID,
	).Scan(&p.AvatarURL, &p.CanManageUsers, &p.CanManageContent)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, nil
		}
		return nil, err
	}
	return p, nil
}

// UpdateProfile upserts presentation fields and capability flags. Nil flag
// pointers leave the current value in place.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int, avatarURL *string, canManageUsers, canManageContent *bool) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_profiles (user_id, avatar_url, can_manage_users, can_manage_content)
		 VALUES ($1, COALESCE($2, ''), COALESCE($3, FALSE), COALESCE($4, FALSE))
		 ON CONFLICT (user_id) DO UPDATE SET
		     avatar_url = COALESCE($2, user_profiles.avatar_url),
		     can_manage_users = COALESCE($3, user_profiles.can_manage_users),
		     can_manage_content = COALESCE($4, user_profiles.can_manage_content)`,
		userID, avatarURL, canManageUsers, canManageContent,
	)
	return err
}
