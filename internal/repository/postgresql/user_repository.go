package postgresql

import (
	"context"
	"fmt"

	"job-funnel-service/internal/entity"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts u and fills its id. A taken email yields entity.ErrConflict.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	const q = `
INSERT INTO users (email, name, provider, provider_sub)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at;
`
	if err := conn(ctx, r.db).QueryRow(ctx, q, u.Email, u.Name, u.Provider, u.ProviderSub).Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("create user: %w", mapErr(err))
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	const q = `
SELECT id, email, name, provider, provider_sub, created_at
FROM users
WHERE id = $1;
`
	return r.getOne(ctx, q, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	const q = `
SELECT id, email, name, provider, provider_sub, created_at
FROM users
WHERE email = $1;
`
	return r.getOne(ctx, q, email)
}

func (r *UserRepository) getOne(ctx context.Context, q string, arg any) (*entity.User, error) {
	var u entity.User
	if err := conn(ctx, r.db).QueryRow(ctx, q, arg).Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.Provider,
		&u.ProviderSub,
		&u.CreatedAt,
	); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

// UpdateIdentity stores the display name and the external identity link.
func (r *UserRepository) UpdateIdentity(ctx context.Context, u *entity.User) error {
	const q = `UPDATE users SET name=$2, provider=$3, provider_sub=$4 WHERE id=$1;`

	tag, err := conn(ctx, r.db).Exec(ctx, q, u.ID, u.Name, u.Provider, u.ProviderSub)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
