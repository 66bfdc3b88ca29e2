package postgres

import (
	"context"
	"fmt"

	"github.com/adminboard/adminboard/internal/domain/menu"
)

var _ menu.PermissionRepo = (*PermissionRepo)(nil)

type PermissionRepo struct {
	db *DB
}

func NewPermissionRepo(db *DB) *PermissionRepo { return &PermissionRepo{db: db} }

const (
	qPermInsert = `
INSERT INTO permissions (name, url)
VALUES ($1, $2)
RETURNING id;`

	qPermList = `
SELECT id, name, url FROM permissions ORDER BY id;`
)

func (r *PermissionRepo) Create(ctx context.Context, p *menu.Permission) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if err := r.db.Pool.QueryRow(ctx, qPermInsert, p.Name, p.URL).Scan(&p.ID); err != nil {
		return fmt.Errorf("permission insert: %w", err)
	}
	return nil
}

func (r *PermissionRepo) List(ctx context.Context) ([]*menu.Permission, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qPermList)
	if err != nil {
		return nil, fmt.Errorf("permission list: %w", err)
	}
	defer rows.Close()

	var out []*menu.Permission
	for rows.Next() {
		var p menu.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.URL); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
