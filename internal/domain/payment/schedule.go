package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"app/internal/domain/model"
)

// Entry は1トランシェ分の支払予定。金額は内部では丸めず、
// 2桁丸めは表示時（usecaseのDTO変換）だけで行う。
type Entry struct {
	Index          int64
	Key            string
	Montant        decimal.Decimal //割引後の1回分
	MontantInitial decimal.Decimal //割引前相当
	Remise         decimal.Decimal
	//このトランシェに効いている割引率（分母0なら0）
	PourcentageRemise decimal.Decimal
	DateEcheance      time.Time
	Statut            model.TrancheStatus
	MontantPaye       decimal.Decimal
}

type Schedule struct {
	Entries []Entry

	TotalMontantInitial decimal.Decimal
	TotalRemise         decimal.Decimal
	TotalApresRemise    decimal.Decimal
	TotalPaye           decimal.Decimal

	//プラン全体の日数と1トランシェあたりの日数（N=1なら0）
	DurationDays       int64
	DurationPerTranche float64
}

// BuildSchedule は割引ルールと台帳から支払予定を組み立てる。
// 期日は「生成時点 + (i-1) * duration/N」。1回目は常に即時。
func BuildSchedule(total decimal.Decimal, rule model.RemiseType, ledger model.TrancheLedger, orderID int64, now time.Time) Schedule {
	n := rule.Tranches()
	nDec := decimal.NewFromInt(n)

	remiseTotale := ComputeDiscount(total, rule.PourcentageRemise, rule.MontantMaxRemise)
	totalApresRemise := total.Sub(remiseTotale)

	montantParTranche := totalApresRemise.Div(nDec)
	remiseParTranche := remiseTotale.Div(nDec)

	montantInitial := montantParTranche.Add(remiseParTranche)
	pourcentageTranche := decimal.Zero
	if montantInitial.IsPositive() {
		pourcentageTranche = remiseParTranche.Div(montantInitial).Mul(cent)
	}

	durationDays := ParseDuration(rule.DureePlanPaiement)
	var durationPerTranche float64
	if n > 1 {
		durationPerTranche = float64(durationDays) / float64(n)
	}

	s := Schedule{
		Entries:             make([]Entry, 0, n),
		TotalMontantInitial: total,
		TotalRemise:         remiseTotale,
		TotalApresRemise:    totalApresRemise,
		TotalPaye:           decimal.Zero,
		DurationDays:        durationDays,
		DurationPerTranche:  durationPerTranche,
	}

	for i := int64(1); i <= n; i++ {
		key := TrancheKey(orderID, i)
		statut, ok := ledger[key]
		if !ok {
			statut = model.TrancheEnAttente
		}

		montantPaye := decimal.Zero
		if statut == model.TranchePayee {
			montantPaye = montantParTranche
			s.TotalPaye = s.TotalPaye.Add(montantParTranche)
		}

		offset := time.Duration(float64(i-1) * durationPerTranche * 24 * float64(time.Hour))
		s.Entries = append(s.Entries, Entry{
			Index:             i,
			Key:               key,
			Montant:           montantParTranche,
			MontantInitial:    montantInitial,
			Remise:            remiseParTranche,
			PourcentageRemise: pourcentageTranche,
			DateEcheance:      now.Add(offset),
			Statut:            statut,
			MontantPaye:       montantPaye,
		})
	}

	return s
}
