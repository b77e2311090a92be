package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"app/internal/domain/model"
)

func TestTrancheKey(t *testing.T) {
	assert.Equal(t, "order-42-1", TrancheKey(42, 1))
	assert.Equal(t, "order-7-3", TrancheKey(7, 3))
}

func TestNewLedger(t *testing.T) {
	l := NewLedger(5, 3)
	assert.Len(t, l, 3)
	for i := int64(1); i <= 3; i++ {
		assert.Equal(t, model.TrancheEnAttente, l[TrancheKey(5, i)])
	}
}

func TestAllPaid(t *testing.T) {
	l := model.TrancheLedger{
		"order-1-1": model.TranchePayee,
		"order-1-2": model.TranchePayee,
	}
	assert.True(t, AllPaid(l, 1, 2))
	assert.False(t, AllPaid(l, 1, 3))
	assert.False(t, AllPaid(l, 1, 0))
	assert.False(t, AllPaid(model.TrancheLedger{}, 1, 2))
}

func TestReconcileStatus(t *testing.T) {
	t.Run("aucune tranche", func(t *testing.T) {
		status, err := ReconcileStatus(model.TrancheLedger{}, 1, 0)
		assert.NoError(t, err)
		assert.Equal(t, model.OrderStatusPending, status)
	})

	t.Run("rien de paye", func(t *testing.T) {
		status, err := ReconcileStatus(NewLedger(1, 3), 1, 3)
		assert.NoError(t, err)
		assert.Equal(t, model.OrderStatusPending, status)
	})

	t.Run("paiement partiel", func(t *testing.T) {
		l := NewLedger(1, 3)
		l["order-1-1"] = model.TranchePayee
		status, err := ReconcileStatus(l, 1, 3)
		assert.NoError(t, err)
		assert.Equal(t, model.OrderStatusProcessing, status)
	})

	t.Run("tout paye", func(t *testing.T) {
		l := model.TrancheLedger{
			"order-1-1": model.TranchePayee,
			"order-1-2": model.TranchePayee,
			"order-1-3": model.TranchePayee,
		}
		status, err := ReconcileStatus(l, 1, 3)
		assert.NoError(t, err)
		assert.Equal(t, model.OrderStatusPayee, status)
	})

	// キーが無いトランシェはen_attente扱い
	t.Run("cle absente", func(t *testing.T) {
		l := model.TrancheLedger{
			"order-1-1": model.TranchePayee,
		}
		status, err := ReconcileStatus(l, 1, 3)
		assert.NoError(t, err)
		assert.Equal(t, model.OrderStatusProcessing, status)
	})

	t.Run("valeur inconnue", func(t *testing.T) {
		l := model.TrancheLedger{
			"order-1-1": model.TranchePayee,
			"order-1-2": model.TrancheStatus("refunded"),
		}
		_, err := ReconcileStatus(l, 1, 3)
		assert.Error(t, err)

		var ie *InconsistencyError
		assert.ErrorAs(t, err, &ie)
		assert.Equal(t, int64(1), ie.OrderID)
		assert.Equal(t, []string{"order-1-2"}, ie.Keys)
	})
}
