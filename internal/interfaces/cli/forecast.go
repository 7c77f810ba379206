package cli

import (
	"fmt"

	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/spf13/cobra"
)

func (a *app) forecastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Pronósticos y recomendaciones de reposición",
	}

	var storeID int64
	recs := &cobra.Command{
		Use:   "recommendations",
		Short: "Sugerencias de reposición por prioridad",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.client.Forecasting.Recommendations(cmd.Context(), storeID)
			if err != nil {
				a.log.Error().Err(err).Msg("recomendaciones fallaron")
				a.notes.Error("No se pudieron cargar las recomendaciones")
				return err
			}
			rows := make([][]string, 0, len(resp.Items))
			for _, r := range resp.Items {
				rows = append(rows, []string{
					fmt.Sprint(r.Priority), r.SKU, r.ProductName, itoa(r.StoreID),
					itoa(r.CurrentStock), itoa(r.ReorderPoint), itoa(r.SuggestedOrderQty),
					r.EstimatedOrderCost.StringFixed(2),
				})
			}
			return a.render([]string{"Prioridad", "SKU", "Producto", "Tienda", "Stock", "Reorden", "Sugerido", "Costo"}, rows)
		},
	}
	recs.Flags().Int64Var(&storeID, "store", 0, "filtra por tienda")

	models := &cobra.Command{
		Use:   "models",
		Short: "Lista modelos de pronóstico",
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := a.client.Forecasting.ListModels(cmd.Context())
			if err != nil {
				a.log.Error().Err(err).Msg("listado de modelos falló")
				a.notes.Error("No se pudieron cargar los modelos")
				return err
			}
			rows := make([][]string, 0, len(items))
			for _, m := range items {
				rows = append(rows, []string{itoa(m.ID), m.Name, m.ModelType, fmt.Sprint(m.IsActive)})
			}
			return a.render([]string{"ID", "Nombre", "Tipo", "Activo"}, rows)
		},
	}

	var products string
	var days int
	run := &cobra.Command{
		Use:   "run <model-id>",
		Short: "Encola pronósticos pendientes para los productos indicados",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modelID, err := parseID(args[0])
			if err != nil {
				return err
			}
			ids, err := parseIDs(products)
			if err != nil {
				return err
			}
			resp, err := a.client.Forecasting.RunModel(cmd.Context(), modelID, dto.RunModelRequest{ProductIDs: ids, ForecastDays: days})
			if err != nil {
				a.log.Error().Err(err).Int64("model_id", modelID).Msg("corrida de modelo falló")
				a.notes.Error("No se pudo ejecutar el modelo")
				return err
			}
			a.notes.Success(fmt.Sprintf("%d pronósticos encolados (%s)", len(resp.Requests), resp.Status))
			return nil
		},
	}
	run.Flags().StringVar(&products, "products", "", "ids de producto separados por comas")
	run.Flags().IntVar(&days, "days", 30, "horizonte en días")

	cmd.AddCommand(recs, models, run)
	return cmd
}
