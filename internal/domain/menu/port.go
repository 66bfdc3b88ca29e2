package menu

import "context"

type Repo interface {
	Create(ctx context.Context, m *Menu) error
	GetByID(ctx context.Context, id int64) (*Menu, error)
	List(ctx context.Context) ([]*Menu, error)

	CreateSub(ctx context.Context, s *SubMenu) error
	ListSubByMenu(ctx context.Context, menuID int64) ([]*SubMenu, error)
}

type PermissionRepo interface {
	Create(ctx context.Context, p *Permission) error
	List(ctx context.Context) ([]*Permission, error)
}
