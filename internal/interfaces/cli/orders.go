package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) ordersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Órdenes de venta",
	}

	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "Lista órdenes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.client.Orders.List(cmd.Context(), status)
			if err != nil {
				a.log.Error().Err(err).Msg("listado de órdenes falló")
				a.notes.Error("No se pudieron cargar las órdenes")
				return err
			}
			rows := make([][]string, 0, len(resp.Items))
			for _, o := range resp.Items {
				rows = append(rows, []string{
					itoa(o.ID), o.OrderNumber, itoa(o.CustomerID), itoa(o.StoreID),
					o.Status, o.Total.StringFixed(2), o.OrderDate.Format("2006-01-02"),
				})
			}
			return a.render([]string{"ID", "Número", "Cliente", "Tienda", "Estado", "Total", "Fecha"}, rows)
		},
	}
	list.Flags().StringVar(&status, "status", "", "pending, confirmed, shipped o cancelled")

	confirm := &cobra.Command{
		Use:   "confirm <id>",
		Short: "Confirma una orden pendiente y descuenta stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			o, err := a.client.Orders.Confirm(cmd.Context(), id)
			if err != nil {
				a.log.Error().Err(err).Int64("order_id", id).Msg("confirmación de orden falló")
				a.notes.Error("No se pudo confirmar la orden")
				return err
			}
			a.notes.Success(fmt.Sprintf("Orden %s confirmada", o.OrderNumber))
			return nil
		},
	}
	cmd.AddCommand(list, confirm)
	return cmd
}
