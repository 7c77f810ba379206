package cli

import (
	"errors"
	"fmt"

	"github.com/jhoicas/retail-admin/internal/admin/workflow"
	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Claves de borrador por formulario.
const (
	draftAdjust   = "adjust"
	draftTransfer = "transfer"
)

type adjustForm struct {
	LevelID   int64  `json:"level_id,omitempty"`
	ProductID int64  `json:"product_id,omitempty"`
	StoreID   int64  `json:"store_id,omitempty"`
	Delta     int64  `json:"delta"`
	Reason    string `json:"reason"`
	Notes     string `json:"notes,omitempty"`
}

func (a *app) adjustCmd() *cobra.Command {
	var form adjustForm
	var resume bool
	cmd := &cobra.Command{
		Use:   "adjust",
		Short: "Ajusta un nivel de inventario con un delta y un motivo",
		Long: "Ajusta por --level o por --product y --store. Motivos: " +
			"physical_count, damaged, loss, correction, other.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if resume {
				if err := a.restoreDraft(cmd, draftAdjust, &form); err != nil {
					return err
				}
			}
			w := workflow.NewAdjustmentWorkflow(a.client.Inventory, a.notes, nil, a.deps.Logger)
			var (
				level *dto.LevelResponse
				err   error
			)
			if form.LevelID > 0 {
				level, err = w.SubmitLevel(cmd.Context(), workflow.LevelAdjustment{
					LevelID: form.LevelID, Delta: form.Delta, Reason: form.Reason, Notes: form.Notes,
				})
			} else {
				level, err = w.Submit(cmd.Context(), workflow.AdjustmentInput{
					ProductID: form.ProductID, StoreID: form.StoreID, Delta: form.Delta, Reason: form.Reason, Notes: form.Notes,
				})
			}
			if err != nil {
				a.keepDraft(draftAdjust, form, err)
				return err
			}
			a.discardDraft(draftAdjust)
			return a.render([]string{"ID", "Producto", "Tienda", "Cantidad", "Disponible", "Estado"},
				[][]string{{itoa(level.ID), itoa(level.ProductID), itoa(level.StoreID), itoa(level.Quantity), itoa(level.Available), level.Status}})
		},
	}
	cmd.Flags().Int64Var(&form.LevelID, "level", 0, "id del nivel")
	cmd.Flags().Int64Var(&form.ProductID, "product", 0, "id del producto")
	cmd.Flags().Int64Var(&form.StoreID, "store", 0, "id de la tienda")
	cmd.Flags().Int64Var(&form.Delta, "delta", 0, "cantidad con signo")
	cmd.Flags().StringVar(&form.Reason, "reason", "", "motivo del ajuste")
	cmd.Flags().StringVar(&form.Notes, "notes", "", "notas")
	cmd.Flags().BoolVar(&resume, "resume", false, "retoma el último borrador no enviado")
	return cmd
}

type transferForm struct {
	FromStoreID int64  `json:"from_store_id"`
	ToStoreID   int64  `json:"to_store_id"`
	ProductID   int64  `json:"product_id"`
	Quantity    int64  `json:"quantity"`
	Reason      string `json:"reason,omitempty"`
}

func (a *app) transferCmd() *cobra.Command {
	var form transferForm
	var resume bool
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Crea un traslado de stock entre tiendas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if resume {
				if err := a.restoreDraft(cmd, draftTransfer, &form); err != nil {
					return err
				}
			}
			w := workflow.NewTransferWorkflow(a.client.Inventory, a.notes, nil, a.deps.Logger)
			mv, err := w.Submit(cmd.Context(), workflow.TransferInput{
				FromStoreID: form.FromStoreID,
				ToStoreID:   form.ToStoreID,
				ProductID:   form.ProductID,
				Quantity:    form.Quantity,
				Reason:      form.Reason,
			})
			if err != nil {
				a.keepDraft(draftTransfer, form, err)
				return err
			}
			a.discardDraft(draftTransfer)
			return a.renderMovements([]dto.MovementResponse{*mv})
		},
	}
	cmd.Flags().Int64Var(&form.FromStoreID, "from", 0, "tienda origen")
	cmd.Flags().Int64Var(&form.ToStoreID, "to", 0, "tienda destino")
	cmd.Flags().Int64Var(&form.ProductID, "product", 0, "id del producto")
	cmd.Flags().Int64Var(&form.Quantity, "quantity", 0, "unidades a trasladar")
	cmd.Flags().StringVar(&form.Reason, "reason", "", "motivo")
	cmd.Flags().BoolVar(&resume, "resume", false, "retoma el último borrador no enviado")
	return cmd
}

// restoreDraft carga el borrador; los flags pasados explícitamente tienen prioridad.
func (a *app) restoreDraft(cmd *cobra.Command, key string, form interface{}) error {
	explicit := map[string]string{}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if f.Name != "resume" {
			explicit[f.Name] = f.Value.String()
		}
	})
	ok, err := a.drafts.Restore(key, form)
	if err != nil {
		return err
	}
	if !ok {
		a.notes.Info("No hay borrador guardado")
		return nil
	}
	for name, v := range explicit {
		if err := cmd.Flags().Set(name, v); err != nil {
			return err
		}
	}
	return nil
}

// keepDraft guarda el formulario si el envío falló en el servidor o la red.
// Un formulario inválido no se guarda.
func (a *app) keepDraft(key string, form interface{}, cause error) {
	var verr *workflow.ValidationError
	if errors.As(cause, &verr) {
		return
	}
	if err := a.drafts.Save(key, form); err != nil {
		a.log.Warn().Err(err).Str("form", key).Msg("no se pudo guardar el borrador")
		return
	}
	fmt.Fprintf(a.deps.ErrOut, "borrador guardado; reintente con --resume\n")
}

func (a *app) discardDraft(key string) {
	if err := a.drafts.Discard(key); err != nil {
		a.log.Warn().Err(err).Str("form", key).Msg("no se pudo descartar el borrador")
	}
}
