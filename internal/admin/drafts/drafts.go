// Package drafts conserva borradores de formularios en almacenamiento de sesión (formDrafts).
package drafts

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/retail-admin/internal/admin/storage"
)

// DefaultMaxAge vigencia de un borrador.
const DefaultMaxAge = 24 * time.Hour

// Entry borrador guardado: datos del formulario y momento de guardado.
type Entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// Store borradores indexados por id de formulario.
type Store struct {
	mu      sync.Mutex
	storage storage.Storage
	maxAge  time.Duration
	now     func() time.Time
}

// New crea el almacén; maxAge <= 0 usa DefaultMaxAge.
func New(st storage.Storage, maxAge time.Duration) *Store {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Store{storage: st, maxAge: maxAge, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// load requiere s.mu. Un blob ilegible se trata como vacío.
func (s *Store) load() map[string]Entry {
	out := map[string]Entry{}
	raw, ok := s.storage.Get(storage.KeyFormDrafts)
	if !ok || raw == "" {
		return out
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return map[string]Entry{}
	}
	return out
}

func (s *Store) save(all map[string]Entry) error {
	if len(all) == 0 {
		return s.storage.Delete(storage.KeyFormDrafts)
	}
	raw, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("drafts: serializar: %w", err)
	}
	return s.storage.Set(storage.KeyFormDrafts, string(raw))
}

// Save guarda los datos del formulario formID con la hora actual.
func (s *Store) Save(formID string, data interface{}) error {
	if formID == "" {
		return fmt.Errorf("drafts: formID vacío")
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("drafts: serializar datos: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.load()
	all[formID] = Entry{Data: raw, Timestamp: s.now()}
	return s.save(all)
}

// Restore decodifica el borrador en out. false si no existe o venció (los vencidos se eliminan).
func (s *Store) Restore(formID string, out interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.load()
	e, ok := all[formID]
	if !ok {
		return false, nil
	}
	if s.now().Sub(e.Timestamp) > s.maxAge {
		delete(all, formID)
		return false, s.save(all)
	}
	if err := json.Unmarshal(e.Data, out); err != nil {
		return false, fmt.Errorf("drafts: decodificar %s: %w", formID, err)
	}
	return true, nil
}

// Discard elimina el borrador (tras enviar el formulario).
func (s *Store) Discard(formID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.load()
	if _, ok := all[formID]; !ok {
		return nil
	}
	delete(all, formID)
	return s.save(all)
}

// Prune elimina los borradores vencidos y devuelve cuántos quitó.
func (s *Store) Prune() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.load()
	now := s.now()
	removed := 0
	for id, e := range all {
		if now.Sub(e.Timestamp) > s.maxAge {
			delete(all, id)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, s.save(all)
}
