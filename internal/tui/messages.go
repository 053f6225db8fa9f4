package tui

import (
	"github.com/rgehrsitz/fiscalpro/internal/catalog"
)

// Scene represents the screens of the TUI
type Scene int

const (
	SceneCalculator Scene = iota
	SceneCatalog
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneCalculator:
		return "Calculadora"
	case SceneCatalog:
		return "Tabelas"
	default:
		return "Desconhecida"
	}
}

// CatalogLoadedMsg carries a freshly loaded catalog snapshot
type CatalogLoadedMsg struct {
	Catalog *catalog.Catalog
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
