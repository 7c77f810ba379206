package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) prefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Preferencias del panel (tema, barra lateral, filtros guardados)",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Muestra las preferencias en JSON",
		RunE: func(*cobra.Command, []string) error {
			enc := json.NewEncoder(a.deps.Out)
			enc.SetIndent("", "  ")
			return enc.Encode(a.prefs.Snapshot())
		},
	}

	set := &cobra.Command{
		Use:   "set <clave> <valor>",
		Short: "Cambia una preferencia: theme light|dark, filter.<tabla>.<columna> <valor>",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.setPref(args[0], args[1])
		},
	}

	sidebar := &cobra.Command{
		Use:   "toggle-sidebar",
		Short: "Alterna la barra lateral",
		RunE: func(*cobra.Command, []string) error {
			open, err := a.prefs.ToggleSidebar()
			if err != nil {
				return err
			}
			fmt.Fprintf(a.deps.Out, "sidebar_open=%t\n", open)
			return nil
		},
	}

	clearFilters := &cobra.Command{
		Use:   "clear-filters <tabla>",
		Short: "Borra los filtros guardados de una tabla",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.prefs.ClearFilters(args[0])
		},
	}

	cmd.AddCommand(show, set, sidebar, clearFilters)
	return cmd
}

func (a *app) setPref(key, value string) error {
	if key == "theme" {
		if err := a.prefs.SetTheme(value); err != nil {
			a.notes.Error("Tema inválido: use light o dark")
			return err
		}
		return nil
	}
	rest, ok := strings.CutPrefix(key, "filter.")
	tableName, column, found := strings.Cut(rest, ".")
	if !ok || !found || tableName == "" || column == "" {
		return fmt.Errorf("clave desconocida %q", key)
	}
	return a.prefs.SetFilter(tableName, column, value)
}
