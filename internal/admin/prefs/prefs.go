// Package prefs guarda las preferencias del panel (tema, barra lateral, filtros)
// bajo la clave adminPrefs, con versión de esquema y migración de blobs antiguos.
package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/retail-admin/internal/admin/storage"
	"github.com/rs/zerolog/log"
)

// CurrentVersion versión del esquema de Settings.
const CurrentVersion = 2

// Temas soportados.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// SortPref columna y dirección guardadas para una tabla.
type SortPref struct {
	Column    string `json:"column"`
	Ascending bool   `json:"ascending"`
}

// Settings preferencias del usuario. Filters y Sort se indexan por id de tabla.
type Settings struct {
	Version           int                          `json:"version"`
	Theme             string                       `json:"theme" validate:"oneof=light dark"`
	SidebarOpen       bool                         `json:"sidebar_open"`
	CollapsedSections []string                     `json:"collapsed_sections"`
	Filters           map[string]map[string]string `json:"filters"`
	Sort              map[string]SortPref          `json:"sort,omitempty"`
}

// Defaults preferencias iniciales.
func Defaults() Settings {
	return Settings{
		Version:           CurrentVersion,
		Theme:             ThemeLight,
		SidebarOpen:       true,
		CollapsedSections: []string{},
		Filters:           map[string]map[string]string{},
		Sort:              map[string]SortPref{},
	}
}

func (s Settings) clone() Settings {
	out := s
	out.CollapsedSections = append([]string{}, s.CollapsedSections...)
	out.Filters = make(map[string]map[string]string, len(s.Filters))
	for table, f := range s.Filters {
		cp := make(map[string]string, len(f))
		for k, v := range f {
			cp[k] = v
		}
		out.Filters[table] = cp
	}
	out.Sort = make(map[string]SortPref, len(s.Sort))
	for k, v := range s.Sort {
		out.Sort[k] = v
	}
	return out
}

var validate = validator.New()

// Store preferencias cargadas una vez y persistidas en cada cambio.
type Store struct {
	mu       sync.RWMutex
	storage  storage.Storage
	settings Settings
}

// Load lee adminPrefs; ausente o ilegible arranca con Defaults. Los blobs sin versión se migran
// y se reescriben en el formato actual.
func Load(st storage.Storage) (*Store, error) {
	s := &Store{storage: st, settings: Defaults()}
	raw, ok := st.Get(storage.KeyAdminPrefs)
	if !ok || raw == "" {
		return s, nil
	}
	settings, migrated, err := decode(raw)
	if err != nil {
		log.Warn().Err(err).Msg("preferencias ilegibles, se usan valores por defecto")
		return s, nil
	}
	s.settings = settings
	if migrated {
		if err := s.persist(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Snapshot copia independiente de las preferencias actuales.
func (s *Store) Snapshot() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.clone()
}

// Update aplica fn sobre una copia, valida y persiste. Si algo falla no hay cambios.
func (s *Store) Update(fn func(*Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.settings.clone()
	fn(&next)
	next.Version = CurrentVersion
	if err := validate.Struct(next); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	prev := s.settings
	s.settings = next
	if err := s.persist(); err != nil {
		s.settings = prev
		return err
	}
	return nil
}

// persist requiere s.mu.
func (s *Store) persist() error {
	raw, err := json.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("prefs: serializar: %w", err)
	}
	if err := s.storage.Set(storage.KeyAdminPrefs, string(raw)); err != nil {
		return fmt.Errorf("prefs: guardar: %w", err)
	}
	return nil
}

// SetTheme cambia el tema (light | dark).
func (s *Store) SetTheme(theme string) error {
	return s.Update(func(st *Settings) { st.Theme = theme })
}

// ToggleSidebar alterna la barra lateral y devuelve el nuevo estado.
func (s *Store) ToggleSidebar() (bool, error) {
	var open bool
	err := s.Update(func(st *Settings) {
		st.SidebarOpen = !st.SidebarOpen
		open = st.SidebarOpen
	})
	return open, err
}

// ToggleSection colapsa o expande una sección de la barra lateral.
func (s *Store) ToggleSection(name string) error {
	return s.Update(func(st *Settings) {
		for i, sec := range st.CollapsedSections {
			if sec == name {
				st.CollapsedSections = append(st.CollapsedSections[:i], st.CollapsedSections[i+1:]...)
				return
			}
		}
		st.CollapsedSections = append(st.CollapsedSections, name)
		sort.Strings(st.CollapsedSections)
	})
}

// SetFilter guarda el valor de un filtro; vacío lo elimina.
func (s *Store) SetFilter(table, key, value string) error {
	return s.Update(func(st *Settings) {
		f := st.Filters[table]
		if f == nil {
			f = map[string]string{}
			st.Filters[table] = f
		}
		if value == "" {
			delete(f, key)
		} else {
			f[key] = value
		}
		if len(f) == 0 {
			delete(st.Filters, table)
		}
	})
}

// ClearFilters elimina los filtros de una tabla.
func (s *Store) ClearFilters(table string) error {
	return s.Update(func(st *Settings) { delete(st.Filters, table) })
}

// Filters copia de los filtros activos de una tabla.
func (s *Store) Filters(table string) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.settings.Filters[table]))
	for k, v := range s.settings.Filters[table] {
		out[k] = v
	}
	return out
}

// SetSort guarda la columna de orden de una tabla.
func (s *Store) SetSort(table, column string, ascending bool) error {
	return s.Update(func(st *Settings) {
		if column == "" {
			delete(st.Sort, table)
			return
		}
		st.Sort[table] = SortPref{Column: column, Ascending: ascending}
	})
}

type ctxKey struct{}

// NewContext adjunta las preferencias al contexto.
func NewContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext recupera las preferencias; false si el contexto no las lleva.
func FromContext(ctx context.Context) (*Store, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Store)
	return s, ok && s != nil
}
