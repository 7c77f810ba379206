// Package workflow flujos de formulario del panel: ajuste de inventario, traslados
// y acciones masivas sobre la tabla de niveles. Cada flujo envía una sola petición,
// notifica el resultado y recarga la vista completa.
package workflow

import (
	"context"
	"errors"

	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/jhoicas/retail-admin/pkg/logger"
)

// InventoryAPI operaciones de inventario que usan los flujos.
// *client.InventoryService la implementa.
type InventoryAPI interface {
	LevelsLister
	AdjustLevel(ctx context.Context, levelID int64, in dto.AdjustLevelRequest) (*dto.LevelResponse, error)
	CreateMovement(ctx context.Context, in dto.CreateMovementRequest) (*dto.MovementResponse, error)
}

// Notifier superficie de notificaciones. *notify.Center la implementa.
type Notifier interface {
	Success(msg string) int64
	Error(msg string) int64
}

// Reloader vista que se resincroniza tras una mutación.
type Reloader interface {
	Reload(ctx context.Context) error
}

// ErrLevelNotFound no existe nivel para el producto y tienda indicados.
var ErrLevelNotFound = errors.New("workflow: nivel de inventario no encontrado")

// Reasons motivos de ajuste aceptados.
var Reasons = []string{"physical_count", "damaged", "loss", "correction", "other"}

// Mensajes visibles. No distinguen la causa del fallo.
const (
	msgAdjustOK     = "Inventario ajustado correctamente"
	msgAdjustFailed = "No se pudo ajustar el inventario"
	msgTransferOK   = "Traslado creado correctamente"
	msgTransferFail = "No se pudo crear el traslado"
)

type base struct {
	api   InventoryAPI
	notes Notifier
	view  Reloader
	log   *logger.Logger
}

func newBase(api InventoryAPI, n Notifier, view Reloader, log *logger.Logger, component string) base {
	if log == nil {
		log = logger.Nop()
	}
	return base{api: api, notes: n, view: view, log: log.Component(component)}
}

// refresh recarga la vista; un fallo aquí no invalida la mutación ya aplicada.
func (b base) refresh(ctx context.Context) {
	if b.view == nil {
		return
	}
	if err := b.view.Reload(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
		b.log.Warn().Err(err).Msg("recarga de la vista falló")
	}
}

// invalid notifica los errores de formulario en un solo mensaje.
func (b base) invalid(err error) error {
	b.notes.Error(err.Error())
	return err
}
