package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/adminboard/adminboard/internal/domain/menu"
)

var _ menu.Repo = (*MenuRepo)(nil)

type MenuRepo struct {
	db *DB
}

func NewMenuRepo(db *DB) *MenuRepo { return &MenuRepo{db: db} }

const (
	qMenuInsert = `
INSERT INTO menus (name, url)
VALUES ($1, $2)
RETURNING id;`

	qMenuByID = `
SELECT id, name, url FROM menus WHERE id = $1;`

	qMenuList = `
SELECT id, name, url FROM menus ORDER BY id;`

	qSubMenuInsert = `
INSERT INTO sub_menus (name, url, menu_id)
VALUES ($1, $2, $3)
RETURNING id;`

	qSubMenuByMenu = `
SELECT id, name, url, menu_id FROM sub_menus WHERE menu_id = $1 ORDER BY id;`
)

func (r *MenuRepo) Create(ctx context.Context, m *menu.Menu) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if err := r.db.Pool.QueryRow(ctx, qMenuInsert, m.Name, m.URL).Scan(&m.ID); err != nil {
		return fmt.Errorf("menu insert: %w", err)
	}
	return nil
}

func (r *MenuRepo) GetByID(ctx context.Context, id int64) (*menu.Menu, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var m menu.Menu
	if err := r.db.Pool.QueryRow(ctx, qMenuByID, id).Scan(&m.ID, &m.Name, &m.URL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, menu.ErrNotFound
		}
		return nil, fmt.Errorf("scan menu: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MenuRepo) List(ctx context.Context) ([]*menu.Menu, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qMenuList)
	if err != nil {
		return nil, fmt.Errorf("menu list: %w", err)
	}
	defer rows.Close()

	var out []*menu.Menu
	for rows.Next() {
		var m menu.Menu
		if err := rows.Scan(&m.ID, &m.Name, &m.URL); err != nil {
			return nil, fmt.Errorf("scan menu: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (r *MenuRepo) CreateSub(ctx context.Context, s *menu.SubMenu) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if err := r.db.Pool.QueryRow(ctx, qSubMenuInsert, s.Name, s.URL, s.MenuID).Scan(&s.ID); err != nil {
		return fmt.Errorf("sub-menu insert: %w", err)
	}
	return nil
}

func (r *MenuRepo) ListSubByMenu(ctx context.Context, menuID int64) ([]*menu.SubMenu, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qSubMenuByMenu, menuID)
	if err != nil {
		return nil, fmt.Errorf("sub-menu list: %w", err)
	}
	defer rows.Close()

	var out []*menu.SubMenu
	for rows.Next() {
		var s menu.SubMenu
		if err := rows.Scan(&s.ID, &s.Name, &s.URL, &s.MenuID); err != nil {
			return nil, fmt.Errorf("scan sub-menu: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
