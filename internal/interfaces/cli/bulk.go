package cli

import (
	"errors"
	"fmt"

	"github.com/jhoicas/retail-admin/internal/admin/table"
	"github.com/jhoicas/retail-admin/internal/admin/workflow"
	"github.com/spf13/cobra"
)

func (a *app) bulkCmd() *cobra.Command {
	var (
		o      levelsOptions
		ids    string
		all    bool
		yes    bool
		params workflow.BulkAdjustment
	)
	cmd := &cobra.Command{
		Use:   "bulk <acción>",
		Short: "Ejecuta una acción masiva sobre niveles seleccionados",
		Long:  "Acciones: " + workflow.ActionAdjust + " (--delta, --reason) y " + workflow.ActionExportCSV + " (-o).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			view, err := a.loadLevels(cmd, &o)
			if err != nil {
				return err
			}
			t := view.Table()
			if all {
				t.SelectAll(true)
			} else {
				list, err := parseIDs(ids)
				if err != nil {
					return err
				}
				for _, id := range list {
					if err := t.Select(itoa(id), true); err != nil {
						return err
					}
				}
			}

			out, done, err := a.openOutput(o.output)
			if err != nil {
				return err
			}
			defer done()

			adj := workflow.NewAdjustmentWorkflow(a.client.Inventory, a.notes, view, a.deps.Logger)
			reg, err := workflow.LevelActions(view, adj, params, out)
			if err != nil {
				return err
			}
			confirm := a.confirm
			if yes {
				confirm = autoConfirm
			}
			n, err := t.ExecuteBulk(cmd.Context(), reg, name, confirm)
			switch {
			case errors.Is(err, table.ErrNoAction), errors.Is(err, table.ErrUnknownAction):
				return fmt.Errorf("%w (disponibles: %v)", err, reg.Names())
			case errors.Is(err, table.ErrNotConfirmed):
				a.notes.Info("Acción cancelada")
				return nil
			case err != nil:
				return err
			}
			fmt.Fprintf(a.deps.ErrOut, "%d elementos procesados\n", n)
			return nil
		},
	}
	a.levelFlags(cmd, &o)
	cmd.Flags().StringVar(&ids, "ids", "", "ids de nivel separados por comas")
	cmd.Flags().BoolVar(&all, "all", false, "selecciona todos los niveles visibles")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "no pedir confirmación")
	cmd.Flags().Int64Var(&params.Delta, "delta", 0, "delta del ajuste masivo")
	cmd.Flags().StringVar(&params.Reason, "reason", "", "motivo del ajuste masivo")
	cmd.Flags().StringVar(&params.Notes, "notes", "", "notas")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "archivo de salida para export_as_csv")
	return cmd
}
