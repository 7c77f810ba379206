package table

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de acciones masivas.
var (
	ErrNoAction        = errors.New("table: seleccione una acción")
	ErrUnknownAction   = errors.New("table: acción no registrada")
	ErrNothingSelected = errors.New("table: no hay filas seleccionadas")
	ErrNotConfirmed    = errors.New("table: acción cancelada por el usuario")
	ErrUnknownRow      = errors.New("table: fila desconocida")
)

// OnSelectionChange registra un listener de cambios del conteo seleccionado.
func (t *Table) OnSelectionChange(l SelectionListener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, l)
}

// selectionChanged requiere t.mu. Devuelve la notificación a ejecutar sin el lock
// (no-op si el conteo no cambió).
func (t *Table) selectionChanged(before int) func() {
	after := len(t.selected)
	if before == after {
		return func() {}
	}
	listeners := append([]SelectionListener(nil), t.listeners...)
	return func() {
		for _, l := range listeners {
			l(after > 0, after)
		}
	}
}

// Select marca o desmarca una fila.
func (t *Table) Select(id string, on bool) error {
	t.mu.Lock()
	found := false
	for _, r := range t.rows {
		if r.ID == id {
			found = true
			break
		}
	}
	if !found {
		t.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownRow, id)
	}
	before := len(t.selected)
	if on {
		t.selected[id] = true
	} else {
		delete(t.selected, id)
	}
	notify := t.selectionChanged(before)
	t.mu.Unlock()
	notify()
	return nil
}

// SelectAll casilla maestra: marca o desmarca todas las filas visibles.
func (t *Table) SelectAll(on bool) {
	t.mu.Lock()
	before := len(t.selected)
	for _, r := range t.visibleLocked() {
		if on {
			t.selected[r.ID] = true
		} else {
			delete(t.selected, r.ID)
		}
	}
	notify := t.selectionChanged(before)
	t.mu.Unlock()
	notify()
}

// ClearSelection desmarca todo.
func (t *Table) ClearSelection() {
	t.mu.Lock()
	before := len(t.selected)
	t.selected = map[string]bool{}
	notify := t.selectionChanged(before)
	t.mu.Unlock()
	notify()
}

// Selected IDs seleccionados en el orden de llegada de las filas.
func (t *Table) Selected() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selectedLocked()
}

func (t *Table) selectedLocked() []string {
	pos := make(map[string]int, len(t.rows))
	for i, r := range t.rows {
		pos[r.ID] = i
	}
	out := make([]string, 0, len(t.selected))
	for id := range t.selected {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return pos[out[i]] < pos[out[j]] })
	return out
}

// BulkBar visibilidad de la barra de acciones masivas y conteo mostrado.
func (t *Table) BulkBar() (bool, int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := len(t.selected)
	return n > 0, n
}

// Action acción masiva registrada. Run recibe los IDs seleccionados.
type Action struct {
	Name   string
	Label  string
	Prompt string // texto de confirmación; %d recibe el conteo
	Run    func(ctx context.Context, ids []string) error
}

// Registry acciones masivas por nombre, validadas al construirse.
type Registry struct {
	actions map[string]Action
	order   []string
}

// NewRegistry valida nombres no vacíos, únicos y con Run definido.
func NewRegistry(actions ...Action) (*Registry, error) {
	r := &Registry{actions: make(map[string]Action, len(actions))}
	for _, a := range actions {
		if a.Name == "" {
			return nil, fmt.Errorf("table: acción sin nombre")
		}
		if a.Run == nil {
			return nil, fmt.Errorf("table: acción %q sin handler", a.Name)
		}
		if _, dup := r.actions[a.Name]; dup {
			return nil, fmt.Errorf("table: acción %q duplicada", a.Name)
		}
		r.actions[a.Name] = a
		r.order = append(r.order, a.Name)
	}
	return r, nil
}

// Names nombres registrados en orden de registro.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Lookup busca una acción.
func (r *Registry) Lookup(name string) (Action, bool) {
	a, ok := r.actions[name]
	return a, ok
}

// ConfirmFunc pide confirmación al usuario con el texto dado.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// ExecuteBulk ejecuta la acción sobre la selección. Exige nombre no vacío y registrado,
// al menos una fila seleccionada y confirmación positiva antes de invocar Run.
// Tras un Run exitoso la selección se vacía; si Run falla se conserva.
func (t *Table) ExecuteBulk(ctx context.Context, reg *Registry, name string, confirm ConfirmFunc) (int, error) {
	if name == "" {
		return 0, ErrNoAction
	}
	action, ok := reg.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	ids := t.Selected()
	if len(ids) == 0 {
		return 0, ErrNothingSelected
	}
	prompt := action.Prompt
	if prompt == "" {
		prompt = "¿Aplicar " + action.Name + " a %d elementos?"
	}
	if confirm == nil {
		return 0, ErrNotConfirmed
	}
	if strings.Contains(prompt, "%d") {
		prompt = fmt.Sprintf(prompt, len(ids))
	}
	yes, err := confirm(ctx, prompt)
	if err != nil {
		return 0, err
	}
	if !yes {
		return 0, ErrNotConfirmed
	}
	if err := action.Run(ctx, ids); err != nil {
		return 0, err
	}
	t.ClearSelection()
	return len(ids), nil
}
