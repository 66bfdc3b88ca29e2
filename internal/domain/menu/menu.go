package menu

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories when no record matches.
var ErrNotFound = errors.New("menu not found")

type Menu struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (m *Menu) Validate() error {
	switch {
	case m.Name == "":
		return fmt.Errorf("menu entity requires a name")
	case m.URL == "":
		return fmt.Errorf("menu entity requires an url")
	}
	return nil
}

type SubMenu struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	MenuID int64  `json:"menuId"`
}

func (s *SubMenu) Validate() error {
	switch {
	case s.Name == "":
		return fmt.Errorf("sub-menu entity requires a name")
	case s.URL == "":
		return fmt.Errorf("sub-menu entity requires an url")
	case s.MenuID == 0:
		return fmt.Errorf("sub-menu entity requires a menuId")
	}
	return nil
}

type Permission struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (p *Permission) Validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("permission entity requires a name")
	case p.URL == "":
		return fmt.Errorf("permission entity requires an url")
	}
	return nil
}
