package usecase

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 割引ルール入力の検証はvalidator側に委譲（interfaceで依存注入）
type RemiseTypeValidator interface {
	ValidateRemiseType(ctx context.Context, in RemiseTypeInput) error
}

// RemiseTypeUsecase はマルシャン向けの割引ルールCRUD。
// 単文の読み書きだけなのでトランザクションは張らない。
type RemiseTypeUsecase struct {
	remiseTypes repo.RemiseTypeRepository
	boutiques   repo.BoutiqueRepository
	validator   RemiseTypeValidator
	logger      zerolog.Logger
}

func NewRemiseTypeUsecase(remiseTypes repo.RemiseTypeRepository, boutiques repo.BoutiqueRepository, v RemiseTypeValidator, logger zerolog.Logger) *RemiseTypeUsecase {
	return &RemiseTypeUsecase{remiseTypes: remiseTypes, boutiques: boutiques, validator: v, logger: logger}
}

type RemiseTypeInput struct {
	TypeRemise        string `json:"type_remise"`
	PourcentageRemise string `json:"pourcentage_remise"`
	MontantMaxRemise  string `json:"montant_max_remise"`
	NombreTranches    int64  `json:"nombre_tranches"`
	DureePlanPaiement string `json:"duree_plan_paiement"`
}

type RemiseTypeOutput struct {
	ID                int64   `json:"id"`
	BoutiqueID        int64   `json:"boutique_id"`
	TypeRemise        string  `json:"type_remise"`
	TypeRemiseDisplay string  `json:"type_remise_display"`
	PourcentageRemise string  `json:"pourcentage_remise"`
	MontantMaxRemise  *string `json:"montant_max_remise"`
	NombreTranches    int64   `json:"nombre_tranches"`
	DureePlanPaiement string  `json:"duree_plan_paiement"`
}

func (u *RemiseTypeUsecase) List(ctx context.Context, marchandID int64) ([]RemiseTypeOutput, error) {
	boutique, err := u.resolveBoutique(ctx, marchandID)
	if err != nil {
		return nil, err
	}

	rules, err := u.remiseTypes.ListByBoutiqueID(ctx, boutique.ID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]RemiseTypeOutput, 0, len(rules))
	for _, rt := range rules {
		outs = append(outs, toRemiseTypeOutput(rt))
	}
	return outs, nil
}

func (u *RemiseTypeUsecase) Create(ctx context.Context, marchandID int64, in RemiseTypeInput) (RemiseTypeOutput, error) {
	boutique, err := u.resolveBoutique(ctx, marchandID)
	if err != nil {
		return RemiseTypeOutput{}, err
	}
	if err := u.validator.ValidateRemiseType(ctx, in); err != nil {
		return RemiseTypeOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rt, err := remiseTypeFromInput(in)
	if err != nil {
		return RemiseTypeOutput{}, err
	}
	rt.BoutiqueID = boutique.ID

	created, err := u.remiseTypes.Create(ctx, rt)
	if err != nil {
		return RemiseTypeOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.logger.Info().
		Int64("boutique_id", boutique.ID).
		Int64("remise_type_id", created.ID).
		Msg("discount rule created")
	return toRemiseTypeOutput(created), nil
}

func (u *RemiseTypeUsecase) Update(ctx context.Context, marchandID int64, id int64, in RemiseTypeInput) (RemiseTypeOutput, error) {
	boutique, err := u.resolveBoutique(ctx, marchandID)
	if err != nil {
		return RemiseTypeOutput{}, err
	}

	existing, err := u.remiseTypes.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return RemiseTypeOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return RemiseTypeOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	//他ブティックのルールは存在しない扱い
	if existing.BoutiqueID != boutique.ID {
		return RemiseTypeOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.validator.ValidateRemiseType(ctx, in); err != nil {
		return RemiseTypeOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rt, err := remiseTypeFromInput(in)
	if err != nil {
		return RemiseTypeOutput{}, err
	}
	rt.ID = existing.ID
	rt.BoutiqueID = existing.BoutiqueID

	if err := u.remiseTypes.Update(ctx, rt); err != nil {
		return RemiseTypeOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toRemiseTypeOutput(rt), nil
}

func (u *RemiseTypeUsecase) Delete(ctx context.Context, marchandID int64, id int64) error {
	boutique, err := u.resolveBoutique(ctx, marchandID)
	if err != nil {
		return err
	}

	existing, err := u.remiseTypes.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if existing.BoutiqueID != boutique.ID {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.remiseTypes.Delete(ctx, id); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.logger.Info().
		Int64("boutique_id", boutique.ID).
		Int64("remise_type_id", id).
		Msg("discount rule deleted")
	return nil
}

func (u *RemiseTypeUsecase) resolveBoutique(ctx context.Context, marchandID int64) (model.Boutique, error) {
	if marchandID <= 0 {
		return model.Boutique{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	boutique, err := u.boutiques.FindByMarchandID(ctx, marchandID)
	if err == repo.ErrNotFound {
		return model.Boutique{}, NewHTTPError(http.StatusNotFound, "boutique not found")
	}
	if err != nil {
		return model.Boutique{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return boutique, nil
}

func remiseTypeFromInput(in RemiseTypeInput) (model.RemiseType, error) {
	pct, err := decimal.NewFromString(in.PourcentageRemise)
	if err != nil {
		return model.RemiseType{}, NewHTTPError(http.StatusBadRequest, "invalid pourcentage_remise")
	}

	var cap *decimal.Decimal
	if in.MontantMaxRemise != "" {
		c, err := decimal.NewFromString(in.MontantMaxRemise)
		if err != nil {
			return model.RemiseType{}, NewHTTPError(http.StatusBadRequest, "invalid montant_max_remise")
		}
		cap = &c
	}

	return model.RemiseType{
		TypeRemise:        model.TypeRemise(in.TypeRemise),
		PourcentageRemise: pct,
		MontantMaxRemise:  cap,
		NombreTranches:    in.NombreTranches,
		DureePlanPaiement: in.DureePlanPaiement,
	}, nil
}

func toRemiseTypeOutput(rt model.RemiseType) RemiseTypeOutput {
	out := RemiseTypeOutput{
		ID:                rt.ID,
		BoutiqueID:        rt.BoutiqueID,
		TypeRemise:        string(rt.TypeRemise),
		TypeRemiseDisplay: rt.TypeRemise.Display(),
		PourcentageRemise: rt.PourcentageRemise.StringFixed(2),
		NombreTranches:    rt.NombreTranches,
		DureePlanPaiement: rt.DureePlanPaiement,
	}
	if rt.MontantMaxRemise != nil {
		s := rt.MontantMaxRemise.StringFixed(2)
		out.MontantMaxRemise = &s
	}
	return out
}
