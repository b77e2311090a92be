package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"app/internal/domain/model"
	"app/internal/domain/payment"
	repo "app/internal/repository"
)

// PaymentUsecase はトランシェ決済のオーケストレーション。
// 台帳の更新・statusの再計算・ロイヤルティ反映を1トランザクションで行う。
type PaymentUsecase struct {
	tx     repo.TransactionManager
	clock  Clock
	idGen  IDGenerator
	logger zerolog.Logger
}

func NewPaymentUsecase(tx repo.TransactionManager, clock Clock, idGen IDGenerator, logger zerolog.Logger) *PaymentUsecase {
	return &PaymentUsecase{tx: tx, clock: clock, idGen: idGen, logger: logger}
}

// 元のAPIの形に合わせた1トランシェ分のレスポンス。金額は2桁丸めの文字列。
type TrancheOutput struct {
	ID                 string `json:"id"`
	OrderID            int64  `json:"order_id"`
	Tranche            int64  `json:"tranche"`
	Montant            string `json:"montant"`
	MontantInitial     string `json:"montant_initial"`
	DateOrdre          string `json:"date_ordre"`
	DateEcheance       string `json:"date_echeance"`
	Statut             string `json:"statut"`
	StatutDisplay      string `json:"statut_display"`
	TypeRemise         string `json:"type_remise"`
	TypeRemiseDisplay  string `json:"type_remise_display"`
	RemiseAppliquee    string `json:"remise_appliquee"`
	PourcentageRemise  string `json:"pourcentage_remise"`
	MontantApresRemise string `json:"montant_apres_remise"`
	MontantPaye        string `json:"montant_paye"`
	DureePlanPaiement  string `json:"duree_plan_paiement"`
}

type PaymentTotals struct {
	TotalMontantInitial string `json:"total_montant_initial"`
	TotalRemise         string `json:"total_remise"`
	TotalApresRemise    string `json:"total_apres_remise"`
	TotalPaye           string `json:"total_paye"`
}

type PaymentScheduleOutput struct {
	Payments    []TrancheOutput `json:"payments"`
	Totals      PaymentTotals   `json:"totals"`
	OrderStatus string          `json:"order_status"`
}

type PayTrancheOutput struct {
	Payment     TrancheOutput `json:"payment"`
	OrderStatus string        `json:"order_status"`
}

// GetSchedule は支払予定・合計・注文ステータスを返す。
func (u *PaymentUsecase) GetSchedule(ctx context.Context, clientID int64, orderID int64) (PaymentScheduleOutput, error) {
	if clientID <= 0 {
		return PaymentScheduleOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return PaymentScheduleOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out PaymentScheduleOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, items, rule, err := u.resolveOrder(ctx, r, clientID, orderID, false)
		if err != nil {
			return err
		}

		n := rule.Tranches()
		if _, err := payment.ReconcileStatus(order.PaidTranches, orderID, n); err != nil {
			return u.inconsistent(orderID, err)
		}

		total := sumItems(items)
		s := payment.BuildSchedule(total, rule, order.PaidTranches, orderID, u.clock.Now())

		out = PaymentScheduleOutput{
			Payments:    toTrancheOutputs(s, order, rule),
			Totals:      toTotals(s),
			OrderStatus: string(order.Status),
		}
		return nil
	})

	if err != nil {
		return PaymentScheduleOutput{}, err
	}
	return out, nil
}

// PayTranche は1トランシェを支払済みにする。
// 行ロックの中で「未払いチェック → 更新」を行うので、同じトランシェへの
// 同時リクエストは片方が必ず409になる。
func (u *PaymentUsecase) PayTranche(ctx context.Context, clientID int64, orderID int64, tranche int64) (PayTrancheOutput, error) {
	if clientID <= 0 {
		return PayTrancheOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return PayTrancheOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if tranche < 1 {
		return PayTrancheOutput{}, NewHTTPError(http.StatusBadRequest, "invalid tranche number")
	}

	var out PayTrancheOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, items, rule, err := u.resolveOrder(ctx, r, clientID, orderID, true)
		if err != nil {
			return err
		}

		n := rule.Tranches()
		if tranche > n {
			return NewHTTPError(http.StatusBadRequest, "tranche exceeds maximum tranches")
		}

		if _, err := payment.ReconcileStatus(order.PaidTranches, orderID, n); err != nil {
			return u.inconsistent(orderID, err)
		}

		key := payment.TrancheKey(orderID, tranche)
		if order.PaidTranches[key] == model.TranchePayee {
			return NewHTTPError(http.StatusConflict, "tranche already paid")
		}

		ledger := cloneLedger(order.PaidTranches)
		ledger[key] = model.TranchePayee

		status, err := payment.ReconcileStatus(ledger, orderID, n)
		if err != nil {
			return u.inconsistent(orderID, err)
		}

		if err := r.Orders().UpdateLedger(ctx, orderID, ledger, status); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		u.logger.Info().
			Int64("order_id", orderID).
			Int64("tranche", tranche).
			Str("status", string(status)).
			Msg("tranche paid")

		//全トランシェ完済なら同じトランザクション内でロイヤルティ反映
		if status == model.OrderStatusPayee {
			if err := u.completeOrder(ctx, r, clientID, order, items); err != nil {
				return err
			}
		}

		order.PaidTranches = ledger
		order.Status = status
		total := sumItems(items)
		s := payment.BuildSchedule(total, rule, ledger, orderID, u.clock.Now())

		out = PayTrancheOutput{
			Payment:     toTrancheOutputs(s, order, rule)[tranche-1],
			OrderStatus: string(status),
		}
		return nil
	})

	if err != nil {
		return PayTrancheOutput{}, err
	}
	return out, nil
}

// PayTotal は残りの全トランシェをまとめて支払済みにする。
func (u *PaymentUsecase) PayTotal(ctx context.Context, clientID int64, orderID int64) (PaymentScheduleOutput, error) {
	if clientID <= 0 {
		return PaymentScheduleOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return PaymentScheduleOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out PaymentScheduleOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, items, rule, err := u.resolveOrder(ctx, r, clientID, orderID, true)
		if err != nil {
			return err
		}

		n := rule.Tranches()
		if _, err := payment.ReconcileStatus(order.PaidTranches, orderID, n); err != nil {
			return u.inconsistent(orderID, err)
		}
		if payment.AllPaid(order.PaidTranches, orderID, n) {
			return NewHTTPError(http.StatusConflict, "order already fully paid")
		}

		ledger := cloneLedger(order.PaidTranches)
		for i := int64(1); i <= n; i++ {
			ledger[payment.TrancheKey(orderID, i)] = model.TranchePayee
		}

		if err := r.Orders().UpdateLedger(ctx, orderID, ledger, model.OrderStatusPayee); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		u.logger.Info().
			Int64("order_id", orderID).
			Int64("tranches", n).
			Msg("order fully paid")

		if err := u.completeOrder(ctx, r, clientID, order, items); err != nil {
			return err
		}

		order.PaidTranches = ledger
		order.Status = model.OrderStatusPayee
		total := sumItems(items)
		s := payment.BuildSchedule(total, rule, ledger, orderID, u.clock.Now())

		out = PaymentScheduleOutput{
			Payments:    toTrancheOutputs(s, order, rule),
			Totals:      toTotals(s),
			OrderStatus: string(model.OrderStatusPayee),
		}
		return nil
	})

	if err != nil {
		return PaymentScheduleOutput{}, err
	}
	return out, nil
}

// resolveOrder は注文・明細・割引ルールをまとめて解決する。
// 他人の注文は「存在しない扱い」にする。ルール無しは決済エンドポイント共通で400。
func (u *PaymentUsecase) resolveOrder(ctx context.Context, r repo.TxRepos, clientID, orderID int64, forUpdate bool) (model.Order, []model.OrderItem, model.RemiseType, error) {
	var order model.Order
	var err error
	if forUpdate {
		order, err = r.Orders().FindByIDForUpdate(ctx, orderID)
	} else {
		order, err = r.Orders().FindByID(ctx, orderID)
	}
	if err == repo.ErrNotFound {
		return model.Order{}, nil, model.RemiseType{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Order{}, nil, model.RemiseType{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if order.ClientID != clientID {
		return model.Order{}, nil, model.RemiseType{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	items, err := r.OrderItems().ListByOrderID(ctx, orderID)
	if err != nil {
		return model.Order{}, nil, model.RemiseType{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(items) == 0 {
		return model.Order{}, nil, model.RemiseType{}, NewHTTPError(http.StatusNotFound, "no order items found")
	}

	//単一ブティック前提：先頭明細のブティックのルールを使う
	rule, err := r.RemiseTypes().FindFirstByBoutiqueID(ctx, items[0].BoutiqueID)
	if err == repo.ErrNotFound {
		return model.Order{}, nil, model.RemiseType{}, NewHTTPError(http.StatusBadRequest, "no discount rule found for the boutique")
	}
	if err != nil {
		return model.Order{}, nil, model.RemiseType{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return order, items, rule, nil
}

// inconsistent は台帳の破損を422として表に出す。自動修復はしない。
func (u *PaymentUsecase) inconsistent(orderID int64, err error) error {
	u.logger.Error().
		Int64("order_id", orderID).
		Err(err).
		Msg("inconsistent tranche ledger, operator reconciliation required")
	return NewHTTPError(http.StatusUnprocessableEntity, "inconsistent tranche ledger")
}

// 購入履歴のシリアライズ形式（historique_achats）
type purchaseHistory struct {
	Orders []purchaseRecord `json:"orders"`
}

type purchaseRecord struct {
	OrderID      string          `json:"order_id"`
	CreatedAt    string          `json:"created_at"`
	Items        []purchaseItem  `json:"items"`
	TotalMontant decimal.Decimal `json:"total_montant"`
}

type purchaseItem struct {
	ProduitID string          `json:"produit_id"`
	Nom       string          `json:"produit_nom"`
	Prix      decimal.Decimal `json:"prix"`
	Quantite  int64           `json:"quantite"`
	Total     decimal.Decimal `json:"total"`
}

// completeOrder は完済時のロイヤルティ反映。クライアント行をロックした上で
// 注文数+1（ちょうど1回）、履歴追記、バッジ再判定、紹介割引の付与を行う。
func (u *PaymentUsecase) completeOrder(ctx context.Context, r repo.TxRepos, clientID int64, order model.Order, items []model.OrderItem) error {
	client, err := r.Clients().FindByUserIDForUpdate(ctx, clientID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "client not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	client.Orders++
	client.HistoriqueAchats = appendPurchaseHistory(client.HistoriqueAchats, order, items)

	if err := u.assignBadge(ctx, r, &client); err != nil {
		return err
	}
	if err := u.applyReferralDiscounts(ctx, r, client); err != nil {
		return err
	}

	if err := r.Clients().Update(ctx, client); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.logger.Info().
		Int64("client_id", clientID).
		Int64("order_id", order.ID).
		Int64("orders", client.Orders).
		Msg("order completed, loyalty updated")
	return nil
}

func appendPurchaseHistory(raw string, order model.Order, items []model.OrderItem) string {
	var history purchaseHistory
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		history = purchaseHistory{}
	}
	if history.Orders == nil {
		history.Orders = []purchaseRecord{}
	}

	rec := purchaseRecord{
		OrderID:   formatInt(order.ID),
		CreatedAt: order.CreatedAt.Format(time.RFC3339),
		Items:     make([]purchaseItem, 0, len(items)),
	}
	total := decimal.Zero
	for _, it := range items {
		line := it.Prix.Mul(decimal.NewFromInt(it.Quantite))
		rec.Items = append(rec.Items, purchaseItem{
			ProduitID: formatInt(it.ProduitID),
			Nom:       it.NomSnapshot,
			Prix:      it.Prix,
			Quantite:  it.Quantite,
			Total:     line,
		})
		total = total.Add(line)
	}
	rec.TotalMontant = total

	history.Orders = append(history.Orders, rec)
	b, err := json.Marshal(history)
	if err != nil {
		return raw
	}
	return string(b)
}

// assignBadge はしきい値以下で最大のバッジを付ける。新規のバッジなら
// 割引と通知を（名前で重複排除して）作成する。
func (u *PaymentUsecase) assignBadge(ctx context.Context, r repo.TxRepos, client *model.Client) error {
	badge, ok, err := r.Badges().FindBestForOrders(ctx, client.Orders)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !ok {
		return nil
	}
	if client.CurrentBadgeID != nil && *client.CurrentBadgeID == badge.ID {
		return nil
	}

	client.CurrentBadgeID = &badge.ID

	name := "Badge Discount (" + badge.Name + ")"
	granted, err := u.grantDiscount(ctx, r, client.UserID, name, badge.Discount)
	if err != nil {
		return err
	}
	if !granted {
		return nil
	}

	n := model.Notification{
		ID:       u.idGen.NewID(),
		ClientID: client.UserID,
		Title:    "New Badge Earned: " + badge.Name,
		Message:  "Congratulations! You've earned the " + badge.Name + " badge.",
		Type:     model.NotificationBadge,
	}
	if err := r.Notifications().Create(ctx, n); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.logger.Info().
		Int64("client_id", client.UserID).
		Str("badge", badge.Name).
		Msg("badge assigned")
	return nil
}

func (u *PaymentUsecase) applyReferralDiscounts(ctx context.Context, r repo.TxRepos, client model.Client) error {
	rules, err := r.ReferralRules().List(ctx)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	for _, rule := range rules {
		if client.NombreClientsParraines < rule.ReferralsCount {
			continue
		}

		name := "Referral Discount (" + formatInt(rule.ReferralsCount) + " referrals)"
		granted, err := u.grantDiscount(ctx, r, client.UserID, name, rule.Discount)
		if err != nil {
			return err
		}
		if !granted {
			continue
		}

		n := model.Notification{
			ID:       u.idGen.NewID(),
			ClientID: client.UserID,
			Title:    "Referral Discount Applied",
			Message:  "You've earned a discount for referring " + formatInt(rule.ReferralsCount) + " clients!",
			Type:     model.NotificationReferral,
		}
		if err := r.Notifications().Create(ctx, n); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}
	return nil
}

// grantDiscount は同名の割引が無いときだけ作成する。作成したらtrue。
func (u *PaymentUsecase) grantDiscount(ctx context.Context, r repo.TxRepos, clientID int64, name string, value float64) (bool, error) {
	exists, err := r.Discounts().ExistsByClientAndName(ctx, clientID, name)
	if err != nil {
		return false, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return false, nil
	}

	d := model.Discount{
		ID:       u.idGen.NewID(),
		ClientID: clientID,
		Name:     name,
		Value:    value,
	}
	if err := r.Discounts().Create(ctx, d); err != nil {
		return false, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return true, nil
}

func sumItems(items []model.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Prix.Mul(decimal.NewFromInt(it.Quantite)))
	}
	return total
}

func cloneLedger(l model.TrancheLedger) model.TrancheLedger {
	out := make(model.TrancheLedger, len(l)+1)
	for k, v := range l {
		out[k] = v
	}
	return out
}

func toTrancheOutputs(s payment.Schedule, order model.Order, rule model.RemiseType) []TrancheOutput {
	outs := make([]TrancheOutput, 0, len(s.Entries))
	for _, e := range s.Entries {
		statutDisplay := "En attente"
		if e.Statut == model.TranchePayee {
			statutDisplay = "Payée"
		}
		outs = append(outs, TrancheOutput{
			ID:                 e.Key,
			OrderID:            order.ID,
			Tranche:            e.Index,
			Montant:            e.Montant.StringFixed(2),
			MontantInitial:     e.MontantInitial.StringFixed(2),
			DateOrdre:          order.CreatedAt.Format(time.RFC3339),
			DateEcheance:       e.DateEcheance.Format(time.RFC3339),
			Statut:             string(e.Statut),
			StatutDisplay:      statutDisplay,
			TypeRemise:         string(rule.TypeRemise),
			TypeRemiseDisplay:  rule.TypeRemise.Display(),
			RemiseAppliquee:    e.Remise.StringFixed(2),
			PourcentageRemise:  e.PourcentageRemise.StringFixed(2),
			MontantApresRemise: e.Montant.StringFixed(2),
			MontantPaye:        e.MontantPaye.StringFixed(2),
			DureePlanPaiement:  rule.DureePlanPaiement,
		})
	}
	return outs
}

func toTotals(s payment.Schedule) PaymentTotals {
	return PaymentTotals{
		TotalMontantInitial: s.TotalMontantInitial.StringFixed(2),
		TotalRemise:         s.TotalRemise.StringFixed(2),
		TotalApresRemise:    s.TotalApresRemise.StringFixed(2),
		TotalPaye:           s.TotalPaye.StringFixed(2),
	}
}
