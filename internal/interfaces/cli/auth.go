package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Inicia sesión y guarda el token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("RETAIL_PASSWORD")
			}
			if password == "" {
				fmt.Fprint(a.deps.ErrOut, "Contraseña: ")
				line, _ := a.in.ReadString('\n')
				password = strings.TrimSpace(line)
			}
			if email == "" || password == "" {
				return errors.New("email y contraseña son obligatorios")
			}
			resp, err := a.client.Auth.Login(cmd.Context(), email, password)
			if err != nil {
				a.log.Error().Err(err).Str("email", email).Msg("login falló")
				a.notes.Error("No se pudo iniciar sesión")
				return err
			}
			a.notes.Success(fmt.Sprintf("Sesión iniciada como %s (%s)", resp.User.Name, resp.User.Role))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email del usuario")
	cmd.Flags().StringVar(&password, "password", "", "contraseña (o RETAIL_PASSWORD)")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Elimina el token guardado",
		RunE: func(*cobra.Command, []string) error {
			if err := a.client.Auth.Logout(); err != nil {
				return err
			}
			a.notes.Info("Sesión cerrada")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Muestra el usuario de la sesión",
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := a.client.Auth.Me(cmd.Context())
			if err != nil {
				a.log.Error().Err(err).Msg("consulta de sesión falló")
				a.notes.Error("No hay una sesión válida")
				return err
			}
			return a.render([]string{"ID", "Email", "Nombre", "Rol", "Tienda"},
				[][]string{{itoa(u.ID), u.Email, u.Name, u.Role, itoa(u.StoreID)}})
		},
	}
}
