// Package cli implementa retailctl: el panel de administración en la terminal.
// Cada comando usa los mismos flujos, tabla y preferencias que el panel web.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jhoicas/retail-admin/internal/admin/drafts"
	"github.com/jhoicas/retail-admin/internal/admin/notify"
	"github.com/jhoicas/retail-admin/internal/admin/prefs"
	"github.com/jhoicas/retail-admin/internal/admin/storage"
	"github.com/jhoicas/retail-admin/internal/client"
	"github.com/jhoicas/retail-admin/pkg/config"
	"github.com/jhoicas/retail-admin/pkg/logger"
	"github.com/spf13/cobra"
)

// draftMaxAge vida de un borrador de formulario.
const draftMaxAge = 24 * time.Hour

// Deps dependencias de retailctl. In recibe confirmaciones; Out tablas y exportaciones;
// ErrOut notificaciones.
type Deps struct {
	Config  config.ClientConfig
	Storage storage.Storage
	Logger  *logger.Logger
	In      io.Reader
	Out     io.Writer
	ErrOut  io.Writer
}

type app struct {
	deps   Deps
	in     *bufio.Reader
	log    *logger.Logger
	client *client.Client
	notes  *notify.Center
	prefs  *prefs.Store
	drafts *drafts.Store
}

// Execute construye el árbol de comandos y ejecuta args.
func Execute(ctx context.Context, d Deps, args []string) error {
	a := newApp(d)
	defer a.close()
	root := a.rootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newApp(d Deps) *app {
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	if d.In == nil {
		d.In = os.Stdin
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.ErrOut == nil {
		d.ErrOut = os.Stderr
	}
	return &app{deps: d, in: bufio.NewReader(d.In), log: d.Logger.Component("retailctl")}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "retailctl",
		Short:         "Administración de inventario retail desde la terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.init()
		},
	}
	root.SetOut(a.deps.Out)
	root.SetErr(a.deps.ErrOut)
	root.PersistentFlags().StringVar(&a.deps.Config.BaseURL, "api", a.deps.Config.BaseURL, "URL base del API")

	root.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.levelsCmd(),
		a.adjustCmd(),
		a.transferCmd(),
		a.movementsCmd(),
		a.bulkCmd(),
		a.importCountCmd(),
		a.ordersCmd(),
		a.forecastCmd(),
		a.visionCmd(),
		a.prefsCmd(),
	)
	return root
}

func (a *app) init() error {
	if a.client != nil {
		return nil
	}
	if a.deps.Storage == nil {
		return errors.New("retailctl: sin almacenamiento de sesión")
	}
	c, err := client.New(client.Config{BaseURL: a.deps.Config.BaseURL, Timeout: a.deps.Config.Timeout}, a.deps.Storage)
	if err != nil {
		return err
	}
	p, err := prefs.Load(a.deps.Storage)
	if err != nil {
		return err
	}
	a.client = c
	a.prefs = p
	a.drafts = drafts.New(a.deps.Storage, draftMaxAge)
	a.notes = notify.NewCenter(a.deps.Config.NotifyTTL)
	a.notes.Subscribe(func(n notify.Notification) {
		fmt.Fprintf(a.deps.ErrOut, "[%s] %s\n", n.Level, n.Message)
	})
	if _, err := a.drafts.Prune(); err != nil {
		a.log.Warn().Err(err).Msg("no se pudieron depurar los borradores")
	}
	return nil
}

func (a *app) close() {
	if a.notes != nil {
		a.notes.Close()
	}
}

// confirm pregunta en ErrOut y lee s/si/y/yes de In.
func (a *app) confirm(_ context.Context, prompt string) (bool, error) {
	fmt.Fprintf(a.deps.ErrOut, "%s [s/N] ", prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "si", "sí", "y", "yes":
		return true, nil
	}
	return false, nil
}

// render imprime cabecera y filas alineadas por columnas.
func (a *app) render(header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(a.deps.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id inválido %q", s)
	}
	return id, nil
}

// parseIDs separa una lista por comas.
func parseIDs(s string) ([]int64, error) {
	var out []int64
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		id, err := parseID(part)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func autoConfirm(context.Context, string) (bool, error) { return true, nil }
