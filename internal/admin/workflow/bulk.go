package workflow

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/jhoicas/retail-admin/internal/admin/table"
)

// Nombres de acciones masivas sobre niveles.
const (
	ActionAdjust    = "adjust"
	ActionExportCSV = "export_as_csv"
)

// BulkAdjustment delta y motivo aplicados a cada nivel seleccionado.
type BulkAdjustment struct {
	Delta  int64  `validate:"ne=0"`
	Reason string `validate:"required,oneof=physical_count damaged loss correction other"`
	Notes  string `validate:"max=500"`
}

// LevelActions registro de acciones masivas de la vista de niveles. out recibe
// el CSV de export_as_csv.
func LevelActions(view *LevelsView, adj *AdjustmentWorkflow, params BulkAdjustment, out io.Writer) (*table.Registry, error) {
	return table.NewRegistry(
		table.Action{
			Name:   ActionAdjust,
			Label:  "Ajustar seleccionados",
			Prompt: fmt.Sprintf("¿Ajustar %%d niveles en %+d (%s)?", params.Delta, params.Reason),
			Run: func(ctx context.Context, ids []string) error {
				return adj.bulk(ctx, ids, params)
			},
		},
		table.Action{
			Name:   ActionExportCSV,
			Label:  "Exportar seleccionados como CSV",
			Prompt: "¿Exportar %d niveles?",
			Run: func(_ context.Context, ids []string) error {
				return view.exportSelected(ids, out)
			},
		},
	)
}

// bulk ajusta cada nivel en orden y se detiene en el primer fallo. La vista se
// recarga una sola vez al final, también tras un fallo parcial.
func (w *AdjustmentWorkflow) bulk(ctx context.Context, ids []string, p BulkAdjustment) error {
	if err := checkForm(p); err != nil {
		return w.invalid(err)
	}
	done := 0
	defer func() {
		if done > 0 {
			w.refresh(ctx)
		}
	}()
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return w.bulkFailed(fmt.Errorf("id de nivel inválido %q: %w", raw, err), done)
		}
		if _, err := w.patch(ctx, LevelAdjustment{LevelID: id, Delta: p.Delta, Reason: p.Reason, Notes: p.Notes}); err != nil {
			return w.bulkFailed(fmt.Errorf("nivel %d: %w", id, err), done)
		}
		done++
	}
	w.log.Info().Int("count", done).Str("reason", p.Reason).Msg("ajuste masivo aplicado")
	w.notes.Success(fmt.Sprintf("%d niveles ajustados", done))
	return nil
}

func (w *AdjustmentWorkflow) bulkFailed(err error, done int) error {
	w.log.Error().Err(err).Int("applied", done).Msg("ajuste masivo interrumpido")
	w.notes.Error(msgAdjustFailed)
	return err
}

// exportSelected escribe en CSV los niveles seleccionados, en el orden de ids.
func (v *LevelsView) exportSelected(ids []string, out io.Writer) error {
	if out == nil {
		return fmt.Errorf("workflow: export sin destino")
	}
	rows := make([]table.Row, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("id de nivel inválido %q: %w", raw, err)
		}
		l, ok := v.Level(id)
		if !ok {
			return fmt.Errorf("%w: %s", table.ErrUnknownRow, raw)
		}
		rows = append(rows, levelRow(l))
	}
	t := table.New(LevelColumns...)
	t.SetRows(rows)
	return t.WriteCSV(out)
}
