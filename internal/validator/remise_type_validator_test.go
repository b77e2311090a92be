package validator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"app/internal/usecase"
)

func validInput() usecase.RemiseTypeInput {
	return usecase.RemiseTypeInput{
		TypeRemise:        "tranches",
		PourcentageRemise: "10",
		MontantMaxRemise:  "50",
		NombreTranches:    3,
		DureePlanPaiement: "3 mois",
	}
}

func TestRemiseTypeValidator(t *testing.T) {
	v := NewRemiseTypeValidator()
	ctx := context.Background()

	t.Run("valide", func(t *testing.T) {
		assert.NoError(t, v.ValidateRemiseType(ctx, validInput()))
	})

	t.Run("type inconnu", func(t *testing.T) {
		in := validInput()
		in.TypeRemise = "points"
		assert.ErrorIs(t, v.ValidateRemiseType(ctx, in), ErrUnknownTypeRemise)
	})

	t.Run("fin_paiement accepte", func(t *testing.T) {
		in := validInput()
		in.TypeRemise = "fin_paiement"
		assert.NoError(t, v.ValidateRemiseType(ctx, in))
	})

	t.Run("pourcentage negatif", func(t *testing.T) {
		in := validInput()
		in.PourcentageRemise = "-1"
		assert.ErrorIs(t, v.ValidateRemiseType(ctx, in), ErrPourcentageOutOfRange)
	})

	t.Run("pourcentage au dessus de 100", func(t *testing.T) {
		in := validInput()
		in.PourcentageRemise = "101"
		assert.ErrorIs(t, v.ValidateRemiseType(ctx, in), ErrPourcentageOutOfRange)
	})

	t.Run("pourcentage illisible", func(t *testing.T) {
		in := validInput()
		in.PourcentageRemise = "dix"
		assert.ErrorIs(t, v.ValidateRemiseType(ctx, in), ErrInvalidInput)
	})

	t.Run("plafond negatif", func(t *testing.T) {
		in := validInput()
		in.MontantMaxRemise = "-10"
		assert.ErrorIs(t, v.ValidateRemiseType(ctx, in), ErrNegativeMontantMax)
	})

	t.Run("plafond optionnel", func(t *testing.T) {
		in := validInput()
		in.MontantMaxRemise = ""
		assert.NoError(t, v.ValidateRemiseType(ctx, in))
	})

	t.Run("tranches a zero", func(t *testing.T) {
		in := validInput()
		in.NombreTranches = 0
		assert.ErrorIs(t, v.ValidateRemiseType(ctx, in), ErrInvalidTranches)
	})

	t.Run("duree illisible", func(t *testing.T) {
		in := validInput()
		in.DureePlanPaiement = "bientôt"
		assert.ErrorIs(t, v.ValidateRemiseType(ctx, in), ErrInvalidDuree)
	})

	t.Run("duree optionnelle", func(t *testing.T) {
		in := validInput()
		in.DureePlanPaiement = ""
		assert.NoError(t, v.ValidateRemiseType(ctx, in))
	})
}
