// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package router

import (
	"github.com/aboutcode-org/dejacode/middlewares"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type APIV1Router struct {
	*echo.Group
}

// AuthenticatedRouter groups every route which requires a valid api token.
type AuthenticatedRouter struct {
	*echo.Group
}

func NewAPIV1Router(e *echo.Echo, db shared.DB) APIV1Router {
	apiV1Router := e.Group("/api/v1")

	apiV1Router.GET("/metrics/", echo.WrapHandler(promhttp.Handler()))
	apiV1Router.GET("/health/", func(ctx echo.Context) error {
		// Check database connectivity
		sqlDB, err := db.DB()
		if err != nil {
			return ctx.JSON(503, map[string]string{
				"status": "unhealthy",
				"error":  "failed to get database instance",
			})
		}

		if err := sqlDB.Ping(); err != nil {
			return ctx.JSON(503, map[string]string{
				"status": "unhealthy",
				"error":  "database ping failed",
			})
		}

		return ctx.JSON(200, map[string]string{
			"status": "healthy",
		})
	})

	return APIV1Router{Group: apiV1Router}
}

func NewAuthenticatedRouter(apiV1Router APIV1Router, userService shared.UserService, rbacProvider shared.RBACProvider) AuthenticatedRouter {
	return AuthenticatedRouter{
		Group: apiV1Router.Group.Group("", middlewares.TokenAuthMiddleware(userService, rbacProvider)),
	}
}
