package cli

import (
	"fmt"
	"os"

	"github.com/jhoicas/retail-admin/internal/admin/ingest"
	"github.com/jhoicas/retail-admin/internal/admin/workflow"
	"github.com/spf13/cobra"
)

func (a *app) importCountCmd() *cobra.Command {
	var encoding string
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import-count <archivo.csv>",
		Short: "Importa una hoja de conteo físico (product_id,store_id,counted)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := ingest.ParseEncoding(encoding)
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("abrir %s: %w", args[0], err)
			}
			defer f.Close()

			rows, err := ingest.Parse(f, enc)
			if err != nil {
				a.notes.Error("La hoja de conteo no es válida")
				return err
			}
			if dryRun {
				out := make([][]string, 0, len(rows))
				for _, r := range rows {
					out = append(out, []string{fmt.Sprint(r.Line), itoa(r.ProductID), itoa(r.StoreID), itoa(r.Counted)})
				}
				return a.render([]string{"Línea", "Producto", "Tienda", "Contado"}, out)
			}

			adj := workflow.NewAdjustmentWorkflow(a.client.Inventory, a.notes, nil, a.deps.Logger)
			rep, err := ingest.NewImporter(a.client.Inventory, adj, a.deps.Logger).Run(cmd.Context(), rows)
			if err != nil {
				return err
			}
			for _, f := range rep.Failed {
				fmt.Fprintln(a.deps.ErrOut, f.Error())
			}
			fmt.Fprintf(a.deps.Out, "ajustados: %d  sin cambios: %d  fallidos: %d\n", rep.Adjusted, rep.Unchanged, len(rep.Failed))
			if len(rep.Failed) > 0 {
				return fmt.Errorf("%d filas no se aplicaron", len(rep.Failed))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&encoding, "encoding", "utf-8", "utf-8 o latin1")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "solo valida y muestra las filas")
	return cmd
}
