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

package middlewares

import (
	"net/http"
	"strings"

	"github.com/aboutcode-org/dejacode/services"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const tokenPrefix = "Token "

// TokenAuthMiddleware authenticates the "Authorization: Token <key>" header and
// stores the user, its dataspace and the dataspace rbac in the context.
func TokenAuthMiddleware(userService shared.UserService, rbacProvider shared.RBACProvider) shared.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx shared.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, tokenPrefix) {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication credentials were not provided")
			}

			user, err := userService.Authenticate(strings.TrimSpace(strings.TrimPrefix(header, tokenPrefix)))
			if err != nil {
				if errors.Is(err, services.ErrInvalidAPIKey) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").WithInternal(err)
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "could not authenticate").WithInternal(err)
			}
			if user.Dataspace == nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "user without dataspace")
			}

			shared.SetUser(ctx, user)
			shared.SetDataspace(ctx, *user.Dataspace)
			shared.SetRBAC(ctx, rbacProvider.GetDomainRBAC(user.Dataspace.Slug))
			return next(ctx)
		}
	}
}

// AccessControlMiddleware allows the request when the user may perform the action
// on the object in its dataspace.
func AccessControlMiddleware(obj shared.Object, act shared.Action) shared.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx shared.Context) error {
			rbac := shared.GetRBAC(ctx)
			user := shared.GetUser(ctx)

			allowed, err := rbac.IsAllowed(user.Username, obj, act)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "could not determine if the user has access").WithInternal(err)
			}
			if !allowed {
				return echo.NewHTTPError(http.StatusForbidden, "you do not have permission to perform this action")
			}
			return next(ctx)
		}
	}
}

var _ shared.RBACMiddleware = AccessControlMiddleware
