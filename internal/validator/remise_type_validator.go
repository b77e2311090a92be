package validator

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"app/internal/domain/model"
	"app/internal/domain/payment"
	"app/internal/usecase"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")

	// type_remiseが未知の値
	ErrUnknownTypeRemise = errors.New("unknown type_remise")

	// 割引率が0〜100の範囲外
	ErrPourcentageOutOfRange = errors.New("pourcentage_remise must be between 0 and 100")

	// 割引上限が負
	ErrNegativeMontantMax = errors.New("montant_max_remise must not be negative")

	// 分割数が1未満
	ErrInvalidTranches = errors.New("nombre_tranches must be at least 1")

	// 期間文字列が解釈できない
	ErrInvalidDuree = errors.New("duree_plan_paiement is not a valid duration")
)

type remiseTypeValidator struct{}

// Usecaseは interface を依存注入
func NewRemiseTypeValidator() usecase.RemiseTypeValidator {
	return &remiseTypeValidator{}
}

// 割引ルールの入力を検証
func (v *remiseTypeValidator) ValidateRemiseType(ctx context.Context, in usecase.RemiseTypeInput) error {
	// type
	switch model.TypeRemise(in.TypeRemise) {
	case model.RemiseTranches, model.RemiseFinPaiement:
	default:
		return ErrUnknownTypeRemise
	}

	// 割引率: 0〜100
	pct, err := decimal.NewFromString(strings.TrimSpace(in.PourcentageRemise))
	if err != nil {
		return ErrInvalidInput
	}
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return ErrPourcentageOutOfRange
	}

	// 上限は任意。指定するなら非負
	if s := strings.TrimSpace(in.MontantMaxRemise); s != "" {
		max, err := decimal.NewFromString(s)
		if err != nil {
			return ErrInvalidInput
		}
		if max.IsNegative() {
			return ErrNegativeMontantMax
		}
	}

	// 分割数
	if in.NombreTranches < 1 {
		return ErrInvalidTranches
	}

	// 期間は任意。指定するなら "30 jours" / "2 mois" / "1 année" の形で日数>0になること
	if s := strings.TrimSpace(in.DureePlanPaiement); s != "" {
		if payment.ParseDuration(s) <= 0 {
			return ErrInvalidDuree
		}
	}

	return nil
}
