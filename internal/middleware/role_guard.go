package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

//contextに入っているroleがadminかどうかを確認します。

func AdminRoleGuard() echo.MiddlewareFunc {
	return requireRole("admin", "admin only")
}

//マルシャン専用エンドポイント用。adminも通す。

func MarchandRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if role != "marchand" && role != "admin" {
				return c.JSON(http.StatusForbidden, errorJSON("marchand only"))
			}

			return next(c)
		}
	}
}

func requireRole(want string, deniedMsg string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//対象role以外は拒否
			if role != want {
				return c.JSON(http.StatusForbidden, errorJSON(deniedMsg))
			}

			return next(c)
		}
	}
}
