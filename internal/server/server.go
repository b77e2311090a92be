package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Payment    *handler.PaymentHandler
	Order      *handler.OrderHandler
	Cart       *handler.CartHandler
	RemiseType *handler.RemiseTypeHandler
	Loyalty    *handler.LoyaltyHandler
	AdminOrder *handler.AdminOrderHandler
}

// New はechoを組み立てて返す。起動は呼び出し側。
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	if cfg.FEURL != "" {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: []string{cfg.FEURL},
		}))
	}

	h.Order.RegisterRoutes(e, cfg)
	h.Payment.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg)
	h.RemiseType.RegisterRoutes(e, cfg)
	h.Loyalty.RegisterRoutes(e, cfg)
	h.AdminOrder.RegisterRoutes(e, cfg)

	return e
}

func Start(cfg config.Config, h Handlers) error {
	e := New(cfg, h)
	return e.Start(":" + cfg.Port)
}
