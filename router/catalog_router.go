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

type CatalogRouter struct {
	*echo.Group
}

type catalogHandlers interface {
	List(ctx shared.Context) error
	Read(ctx shared.Context) error
	Create(ctx shared.Context) error
	Update(ctx shared.Context) error
	Delete(ctx shared.Context) error
	History(ctx shared.Context) error
}

func registerCatalogRoutes(parent *echo.Group, path string, obj shared.Object, c catalogHandlers) *echo.Group {
	group := parent.Group(path)
	group.GET("/", c.List, middlewares.AccessControlMiddleware(obj, shared.ActionRead))
	group.POST("/", c.Create, middlewares.AccessControlMiddleware(obj, shared.ActionCreate))
	group.GET("/:uuid/", c.Read, middlewares.AccessControlMiddleware(obj, shared.ActionRead))
	group.GET("/:uuid/history/", c.History, middlewares.AccessControlMiddleware(obj, shared.ActionRead))
	group.PATCH("/:uuid/", c.Update, middlewares.AccessControlMiddleware(obj, shared.ActionUpdate))
	group.DELETE("/:uuid/", c.Delete, middlewares.AccessControlMiddleware(obj, shared.ActionDelete))
	return group
}

func NewCatalogRouter(
	authenticatedRouter AuthenticatedRouter,
	ownerController *controllers.OwnerController,
	licenseController *controllers.LicenseController,
	licenseTagController *controllers.LicenseTagController,
	componentController *controllers.ComponentController,
	packageController *controllers.PackageController,
) CatalogRouter {
	registerCatalogRoutes(authenticatedRouter.Group, "/owners", shared.ObjectOwner, ownerController)
	registerCatalogRoutes(authenticatedRouter.Group, "/license-tags", shared.ObjectLicenseTag, licenseTagController)
	registerCatalogRoutes(authenticatedRouter.Group, "/components", shared.ObjectComponent, componentController)
	registerCatalogRoutes(authenticatedRouter.Group, "/packages", shared.ObjectPackage, packageController)

	licenseGroup := registerCatalogRoutes(authenticatedRouter.Group, "/licenses", shared.ObjectLicense, licenseController)
	licenseGroup.GET("/:uuid/spdx-key/", licenseController.SuggestSPDXKey, middlewares.AccessControlMiddleware(shared.ObjectLicense, shared.ActionRead))

	return CatalogRouter{Group: authenticatedRouter.Group}
}
