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

package controllers

import (
	"net/http"

	"github.com/aboutcode-org/dejacode/dtos"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/aboutcode-org/dejacode/transformer"
	"github.com/labstack/echo/v4"
)

type PackageController struct {
	packageRepository shared.PackageRepository
	packageService    shared.PackageService
	historyService    shared.HistoryService
}

func NewPackageController(packageRepository shared.PackageRepository, packageService shared.PackageService, historyService shared.HistoryService) *PackageController {
	return &PackageController{
		packageRepository: packageRepository,
		packageService:    packageService,
		historyService:    historyService,
	}
}

func (c *PackageController) List(ctx shared.Context) error {
	return listPaged(ctx, c.packageRepository, "filename", "type", "name", "created_date", "last_modified_date")
}

func (c *PackageController) Read(ctx shared.Context) error {
	pkg, err := fetch(ctx, c.packageRepository.ReadByUUID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, pkg)
}

// @Summary Create a package
// @Tags Packages
// @Param body body dtos.PackageCreateRequest true "Package data"
// @Success 201 {object} models.Package
// @Router /packages/ [post]
func (c *PackageController) Create(ctx shared.Context) error {
	var req dtos.PackageCreateRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	pkg, err := transformer.PackageCreateRequestToModel(req, shared.GetDataspace(ctx).ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid package url").WithInternal(err)
	}

	if err := c.packageService.Create(ctx.Request().Context(), shared.GetUser(ctx), &pkg); err != nil {
		return toHTTPError(err, "could not create package")
	}
	return ctx.JSON(http.StatusCreated, pkg)
}

func (c *PackageController) Update(ctx shared.Context) error {
	pkg, err := fetch(ctx, c.packageRepository.ReadByUUID)
	if err != nil {
		return err
	}

	var req dtos.PackagePatchRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	updated, err := transformer.ApplyPackagePatchRequestToModel(req, &pkg)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid package url").WithInternal(err)
	}

	if updated {
		if err := c.packageService.Update(ctx.Request().Context(), shared.GetUser(ctx), &pkg); err != nil {
			return toHTTPError(err, "could not update package")
		}
	}
	return ctx.JSON(http.StatusOK, pkg)
}

func (c *PackageController) Delete(ctx shared.Context) error {
	pkg, err := fetch(ctx, c.packageRepository.ReadByUUID)
	if err != nil {
		return err
	}
	if err := c.packageService.Delete(ctx.Request().Context(), shared.GetUser(ctx), &pkg); err != nil {
		return toHTTPError(err, "could not delete package")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (c *PackageController) History(ctx shared.Context) error {
	pkg, err := fetch(ctx, c.packageRepository.ReadByUUID)
	if err != nil {
		return err
	}
	return renderHistory(ctx, c.historyService, &pkg)
}
