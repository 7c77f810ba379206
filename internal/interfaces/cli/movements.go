package cli

import (
	"context"
	"fmt"

	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/spf13/cobra"
)

func (a *app) movementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "movements",
		Short: "Traslados entre tiendas",
	}

	var storeID int64
	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "Lista traslados",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.client.Inventory.ListMovements(cmd.Context(), storeID, status)
			if err != nil {
				a.log.Error().Err(err).Msg("listado de traslados falló")
				a.notes.Error("No se pudieron cargar los traslados")
				return err
			}
			return a.renderMovements(resp.Items)
		},
	}
	list.Flags().Int64Var(&storeID, "store", 0, "tienda origen o destino")
	list.Flags().StringVar(&status, "status", "", "PENDING, RECEIVED o CANCELLED")

	approve := &cobra.Command{
		Use:   "approve <id>",
		Short: "Recibe un traslado pendiente",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.moveTransition(cmd.Context(), args[0], "aprobado", a.client.Inventory.ApproveMovement)
		},
	}
	cancel := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancela un traslado pendiente",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.moveTransition(cmd.Context(), args[0], "cancelado", a.client.Inventory.CancelMovement)
		},
	}
	cmd.AddCommand(list, approve, cancel)
	return cmd
}

func (a *app) moveTransition(ctx context.Context, rawID, verb string, fn func(context.Context, int64) (*dto.MovementResponse, error)) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	mv, err := fn(ctx, id)
	if err != nil {
		a.log.Error().Err(err).Int64("movement_id", id).Msg("transición de traslado falló")
		a.notes.Error("No se pudo actualizar el traslado")
		return err
	}
	a.notes.Success(fmt.Sprintf("Traslado %s %s", mv.TransferID, verb))
	return a.renderMovements([]dto.MovementResponse{*mv})
}

func (a *app) renderMovements(items []dto.MovementResponse) error {
	rows := make([][]string, 0, len(items))
	for _, m := range items {
		rows = append(rows, []string{
			itoa(m.ID), m.TransferID, itoa(m.FromStoreID), itoa(m.ToStoreID),
			itoa(m.ProductID), itoa(m.Quantity), m.Status,
		})
	}
	return a.render([]string{"ID", "Traslado", "Origen", "Destino", "Producto", "Cantidad", "Estado"}, rows)
}
