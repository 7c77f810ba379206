// Package inventory contiene reglas de dominio puras del inventario (sin I/O).
package inventory

import (
	"math"

	"github.com/jhoicas/retail-admin/internal/domain"
	"github.com/jhoicas/retail-admin/internal/domain/entity"
)

// Motivos de ajuste manual aceptados (enumeración cerrada).
const (
	ReasonPhysicalCount = "physical_count"
	ReasonDamaged       = "damaged"
	ReasonLoss          = "loss"
	ReasonCorrection    = "correction"
	ReasonOther         = "other"
)

// Reasons lista los motivos en el orden en que se muestran al usuario.
var Reasons = []string{
	ReasonPhysicalCount,
	ReasonDamaged,
	ReasonLoss,
	ReasonCorrection,
	ReasonOther,
}

// IsValidReason informa si reason pertenece a la enumeración.
func IsValidReason(reason string) bool {
	for _, r := range Reasons {
		if r == reason {
			return true
		}
	}
	return false
}

// TransactionTypeFor traduce el motivo de ajuste al tipo de transacción de la bitácora.
func TransactionTypeFor(reason string) string {
	switch reason {
	case ReasonPhysicalCount:
		return entity.TransactionTypeCount
	case ReasonDamaged, ReasonLoss:
		return entity.TransactionTypeDamage
	default:
		return entity.TransactionTypeAdjust
	}
}

// ApplyDelta calcula la nueva cantidad. Un delta que desborda int64 es ErrInvalidInput;
// un resultado negativo es ErrNegativeStock.
func ApplyDelta(current, delta int64) (int64, error) {
	if delta > 0 && current > math.MaxInt64-delta {
		return current, domain.ErrInvalidInput
	}
	if delta < 0 && current < math.MinInt64-delta {
		return current, domain.ErrInvalidInput
	}
	next := current + delta
	if next < 0 {
		return current, domain.ErrNegativeStock
	}
	return next, nil
}
