package cli

import (
	"fmt"

	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/spf13/cobra"
)

func (a *app) visionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vision",
		Short: "Análisis de estanterías",
	}

	var in dto.CreateShelfAnalysisRequest
	analyze := &cobra.Command{
		Use:   "analyze",
		Short: "Registra un análisis de estantería pendiente",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sa, err := a.client.Vision.CreateShelfAnalysis(cmd.Context(), in)
			if err != nil {
				a.log.Error().Err(err).Int64("store_id", in.StoreID).Msg("análisis de estantería falló")
				a.notes.Error("No se pudo registrar el análisis")
				return err
			}
			a.notes.Success(fmt.Sprintf("Análisis %d registrado (%s)", sa.ID, sa.Status))
			return nil
		},
	}
	analyze.Flags().Int64Var(&in.StoreID, "store", 0, "tienda")
	analyze.Flags().StringVar(&in.ShelfCode, "shelf", "", "código de estantería")
	analyze.Flags().StringVar(&in.ImageURL, "image", "", "URL de la imagen")
	analyze.Flags().StringVar(&in.Notes, "notes", "", "notas")

	var storeID int64
	list := &cobra.Command{
		Use:   "list",
		Short: "Lista análisis de estantería",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.client.Vision.ListShelfAnalyses(cmd.Context(), storeID)
			if err != nil {
				a.log.Error().Err(err).Msg("listado de análisis falló")
				a.notes.Error("No se pudieron cargar los análisis")
				return err
			}
			rows := make([][]string, 0, len(resp.Items))
			for _, s := range resp.Items {
				occ := "-"
				if s.OccupancyPct != nil {
					occ = fmt.Sprintf("%.1f%%", *s.OccupancyPct)
				}
				rows = append(rows, []string{itoa(s.ID), itoa(s.StoreID), s.ShelfCode, s.Status, occ})
			}
			return a.render([]string{"ID", "Tienda", "Estantería", "Estado", "Ocupación"}, rows)
		},
	}
	list.Flags().Int64Var(&storeID, "store", 0, "filtra por tienda")

	cmd.AddCommand(analyze, list)
	return cmd
}
