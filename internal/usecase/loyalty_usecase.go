package usecase

import (
	"context"
	"net/http"
	"time"

	repo "app/internal/repository"
)

// LoyaltyUsecase はクライアント向けのロイヤルティ照会。読み取りが中心。
type LoyaltyUsecase struct {
	clients       repo.ClientRepository
	badges        repo.BadgeRepository
	discounts     repo.DiscountRepository
	notifications repo.NotificationRepository
}

func NewLoyaltyUsecase(clients repo.ClientRepository, badges repo.BadgeRepository, discounts repo.DiscountRepository, notifications repo.NotificationRepository) *LoyaltyUsecase {
	return &LoyaltyUsecase{clients: clients, badges: badges, discounts: discounts, notifications: notifications}
}

type BadgeOutput struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Threshold int64   `json:"threshold"`
	Discount  float64 `json:"discount"`
	Icon      string  `json:"icon"`
	Color     string  `json:"color"`
}

type DiscountOutput struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	AppliedAt string  `json:"applied_at"`
}

type LoyaltyProfileOutput struct {
	Orders                 int64            `json:"orders"`
	SoldePoints            int64            `json:"solde_points"`
	ReferralCode           string           `json:"referral_code"`
	NombreClientsParraines int64            `json:"nombre_clients_parraines"`
	CurrentBadge           *BadgeOutput     `json:"current_badge"`
	Discounts              []DiscountOutput `json:"discounts"`
}

type NotificationOutput struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
	IsRead  bool   `json:"is_read"`
	Date    string `json:"date"`
}

func (u *LoyaltyUsecase) GetProfile(ctx context.Context, clientID int64) (LoyaltyProfileOutput, error) {
	if clientID <= 0 {
		return LoyaltyProfileOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	client, err := u.clients.FindByUserID(ctx, clientID)
	if err == repo.ErrNotFound {
		return LoyaltyProfileOutput{}, NewHTTPError(http.StatusNotFound, "client not found")
	}
	if err != nil {
		return LoyaltyProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := LoyaltyProfileOutput{
		Orders:                 client.Orders,
		SoldePoints:            client.SoldePoints,
		ReferralCode:           client.ReferralCode,
		NombreClientsParraines: client.NombreClientsParraines,
		Discounts:              []DiscountOutput{},
	}

	badge, ok, err := u.badges.FindBestForOrders(ctx, client.Orders)
	if err != nil {
		return LoyaltyProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if ok {
		out.CurrentBadge = &BadgeOutput{
			ID:        badge.ID,
			Name:      badge.Name,
			Threshold: badge.Threshold,
			Discount:  badge.Discount,
			Icon:      badge.Icon,
			Color:     badge.Color,
		}
	}

	discounts, err := u.discounts.ListByClientID(ctx, clientID)
	if err != nil {
		return LoyaltyProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	for _, d := range discounts {
		out.Discounts = append(out.Discounts, DiscountOutput{
			ID:        d.ID,
			Name:      d.Name,
			Value:     d.Value,
			AppliedAt: d.AppliedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

func (u *LoyaltyUsecase) ListNotifications(ctx context.Context, clientID int64) ([]NotificationOutput, error) {
	if clientID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	ns, err := u.notifications.ListByClientID(ctx, clientID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]NotificationOutput, 0, len(ns))
	for _, n := range ns {
		outs = append(outs, NotificationOutput{
			ID:      n.ID,
			Title:   n.Title,
			Message: n.Message,
			Type:    string(n.Type),
			IsRead:  n.IsRead,
			Date:    n.Date.Format(time.RFC3339),
		})
	}
	return outs, nil
}

func (u *LoyaltyUsecase) MarkNotificationRead(ctx context.Context, clientID int64, id string) error {
	if clientID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if id == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.notifications.MarkRead(ctx, id, clientID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
