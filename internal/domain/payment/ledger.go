package payment

import (
	"fmt"
	"strings"

	"app/internal/domain/model"
)

// TrancheKey は台帳の正準キー。注文単位で採番する（明細単位のキーは使わない）。
func TrancheKey(orderID, index int64) string {
	return fmt.Sprintf("order-%d-%d", orderID, index)
}

// NewLedger は全トランシェをen_attenteで初期化した台帳を返す。
func NewLedger(orderID, n int64) model.TrancheLedger {
	ledger := make(model.TrancheLedger, n)
	for i := int64(1); i <= n; i++ {
		ledger[TrancheKey(orderID, i)] = model.TrancheEnAttente
	}
	return ledger
}

// CountPaid は1..nのうちpayéeになっているトランシェ数。
func CountPaid(ledger model.TrancheLedger, orderID, n int64) int64 {
	var paid int64
	for i := int64(1); i <= n; i++ {
		if ledger[TrancheKey(orderID, i)] == model.TranchePayee {
			paid++
		}
	}
	return paid
}

// AllPaid は全トランシェがpayéeかどうか（n=0はfalse）。
func AllPaid(ledger model.TrancheLedger, orderID, n int64) bool {
	if n <= 0 {
		return false
	}
	return CountPaid(ledger, orderID, n) == n
}

// InconsistencyError は台帳に既知のenum以外の値が入っていたことを表す。
// 自動修復はしない。オペレーターが明示的に再初期化するまでエラーのまま。
type InconsistencyError struct {
	OrderID int64
	Keys    []string
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("order %d: inconsistent tranche statuses: %s",
		e.OrderID, strings.Join(e.Keys, ", "))
}

// ReconcileStatus は台帳から注文ステータスを導出する純関数。
//
//	n == 0          -> pending
//	全て payée       -> payée
//	一部 payée       -> processing
//	payée なし       -> pending
//
// enum外の値を見つけたらInconsistencyErrorを返す。
func ReconcileStatus(ledger model.TrancheLedger, orderID, n int64) (model.OrderStatus, error) {
	if n <= 0 {
		return model.OrderStatusPending, nil
	}

	var paid int64
	var badKeys []string
	for i := int64(1); i <= n; i++ {
		key := TrancheKey(orderID, i)
		status, ok := ledger[key]
		if !ok {
			//未登録はen_attente扱い
			continue
		}
		if !status.IsKnown() {
			badKeys = append(badKeys, key)
			continue
		}
		if status == model.TranchePayee {
			paid++
		}
	}

	if len(badKeys) > 0 {
		return model.OrderStatusPending, &InconsistencyError{OrderID: orderID, Keys: badKeys}
	}

	switch {
	case paid == n:
		return model.OrderStatusPayee, nil
	case paid > 0:
		return model.OrderStatusProcessing, nil
	default:
		return model.OrderStatusPending, nil
	}
}
