package inventory_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/retail-admin/internal/domain"
	"github.com/jhoicas/retail-admin/internal/domain/inventory"
)

func TestApplyDelta(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		delta   int64
		want    int64
		wantErr error
	}{
		{"suma", 10, 5, 15, nil},
		{"resta a cero", 10, -10, 0, nil},
		{"negativo", 2, -5, 2, domain.ErrNegativeStock},
		{"desborde positivo", 1, math.MaxInt64, 1, domain.ErrInvalidInput},
		{"desborde negativo", 0, math.MinInt64, 0, domain.ErrInvalidInput},
		{"máximo exacto", 0, math.MaxInt64, math.MaxInt64, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := inventory.ApplyDelta(tt.current, tt.delta)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransactionTypeFor(t *testing.T) {
	assert.True(t, inventory.IsValidReason("damaged"))
	assert.False(t, inventory.IsValidReason("robo"))
	assert.NotEqual(t, inventory.TransactionTypeFor("physical_count"), inventory.TransactionTypeFor("other"))
	assert.Equal(t, inventory.TransactionTypeFor("damaged"), inventory.TransactionTypeFor("loss"))
}
