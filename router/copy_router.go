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
	"github.com/aboutcode-org/dejacode/controllers"
	"github.com/aboutcode-org/dejacode/middlewares"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/labstack/echo/v4"
)

type CopyRouter struct {
	*echo.Group
}

// NewCopyRouter registers the cross-dataspace routes. The dataspace rules of a copy
// are checked by the copy service, the middleware only checks the role.
func NewCopyRouter(
	authenticatedRouter AuthenticatedRouter,
	copyController *controllers.CopyController,
	urnController *controllers.URNController,
) CopyRouter {
	group := authenticatedRouter.Group
	group.POST("/copy/", copyController.Copy, middlewares.AccessControlMiddleware(shared.ObjectCopy, shared.ActionCreate))
	group.POST("/compare/", copyController.Compare, middlewares.AccessControlMiddleware(shared.ObjectCopy, shared.ActionRead))
	group.GET("/urn/", urnController.Resolve)

	return CopyRouter{Group: group}
}
