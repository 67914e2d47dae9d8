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

type LicenseController struct {
	licenseRepository shared.LicenseRepository
	ownerRepository   shared.OwnerRepository
	licenseService    shared.LicenseService
	historyService    shared.HistoryService
}

func NewLicenseController(licenseRepository shared.LicenseRepository, ownerRepository shared.OwnerRepository, licenseService shared.LicenseService, historyService shared.HistoryService) *LicenseController {
	return &LicenseController{
		licenseRepository: licenseRepository,
		ownerRepository:   ownerRepository,
		licenseService:    licenseService,
		historyService:    historyService,
	}
}

// @Summary List licenses of the dataspace
// @Tags Licenses
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10, max: 100)"
// @Param search query string false "Search term for key, name, short name or spdx key"
// @Success 200 {object} shared.Paged[models.License]
// @Router /licenses/ [get]
func (c *LicenseController) List(ctx shared.Context) error {
	return listPaged(ctx, c.licenseRepository, "key", "name", "created_date", "last_modified_date")
}

func (c *LicenseController) Read(ctx shared.Context) error {
	license, err := fetch(ctx, c.licenseRepository.ReadWithRelations)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, license)
}

// @Summary Create a license
// @Tags Licenses
// @Param body body dtos.LicenseCreateRequest true "License data, owner is referenced by name"
// @Success 201 {object} models.License
// @Router /licenses/ [post]
func (c *LicenseController) Create(ctx shared.Context) error {
	var req dtos.LicenseCreateRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	owner, err := resolveOwner(ctx, c.ownerRepository, req.Owner)
	if err != nil {
		if err.Code == http.StatusNotFound {
			return echo.NewHTTPError(http.StatusBadRequest, "owner does not exist")
		}
		return err
	}

	license := transformer.LicenseCreateRequestToModel(req, shared.GetDataspace(ctx).ID)
	license.OwnerID = owner.ID
	license.Owner = &owner

	if err := c.licenseService.Create(ctx.Request().Context(), shared.GetUser(ctx), &license); err != nil {
		return toHTTPError(err, "could not create license")
	}
	return ctx.JSON(http.StatusCreated, license)
}

func (c *LicenseController) Update(ctx shared.Context) error {
	license, err := fetch(ctx, c.licenseRepository.ReadWithRelations)
	if err != nil {
		return err
	}

	var req dtos.LicensePatchRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	updated := transformer.ApplyLicensePatchRequestToModel(req, &license)
	if req.Owner != nil {
		owner, err := resolveOwner(ctx, c.ownerRepository, *req.Owner)
		if err != nil {
			if err.Code == http.StatusNotFound {
				return echo.NewHTTPError(http.StatusBadRequest, "owner does not exist")
			}
			return err
		}
		license.OwnerID = owner.ID
		license.Owner = &owner
		updated = true
	}

	if updated {
		if err := c.licenseService.Update(ctx.Request().Context(), shared.GetUser(ctx), &license); err != nil {
			return toHTTPError(err, "could not update license")
		}
	}
	return ctx.JSON(http.StatusOK, license)
}

func (c *LicenseController) Delete(ctx shared.Context) error {
	license, err := fetch(ctx, c.licenseRepository.ReadByUUID)
	if err != nil {
		return err
	}
	if err := c.licenseService.Delete(ctx.Request().Context(), shared.GetUser(ctx), &license); err != nil {
		return toHTTPError(err, "could not delete license")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (c *LicenseController) History(ctx shared.Context) error {
	license, err := fetch(ctx, c.licenseRepository.ReadByUUID)
	if err != nil {
		return err
	}
	return renderHistory(ctx, c.historyService, &license)
}

// SuggestSPDXKey detects the spdx key of the license full text.
func (c *LicenseController) SuggestSPDXKey(ctx shared.Context) error {
	license, err := fetch(ctx, c.licenseRepository.ReadByUUID)
	if err != nil {
		return err
	}
	key, ok := c.licenseService.SuggestSPDXKey(license)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no spdx license matches the full text")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"spdxLicenseKey": key})
}

type LicenseTagController struct {
	licenseTagRepository shared.LicenseTagRepository
	licenseTagService    shared.LicenseTagService
	historyService       shared.HistoryService
}

func NewLicenseTagController(licenseTagRepository shared.LicenseTagRepository, licenseTagService shared.LicenseTagService, historyService shared.HistoryService) *LicenseTagController {
	return &LicenseTagController{
		licenseTagRepository: licenseTagRepository,
		licenseTagService:    licenseTagService,
		historyService:       historyService,
	}
}

func (c *LicenseTagController) List(ctx shared.Context) error {
	return listPaged(ctx, c.licenseTagRepository, "label", "created_date")
}

func (c *LicenseTagController) Read(ctx shared.Context) error {
	tag, err := fetch(ctx, c.licenseTagRepository.ReadByUUID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tag)
}

func (c *LicenseTagController) Create(ctx shared.Context) error {
	var req dtos.LicenseTagCreateRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	tag := transformer.LicenseTagCreateRequestToModel(req, shared.GetDataspace(ctx).ID)
	if err := c.licenseTagService.Create(ctx.Request().Context(), shared.GetUser(ctx), &tag); err != nil {
		return toHTTPError(err, "could not create license tag")
	}
	return ctx.JSON(http.StatusCreated, tag)
}

func (c *LicenseTagController) Update(ctx shared.Context) error {
	tag, err := fetch(ctx, c.licenseTagRepository.ReadByUUID)
	if err != nil {
		return err
	}

	var req dtos.LicenseTagPatchRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	if transformer.ApplyLicenseTagPatchRequestToModel(req, &tag) {
		if err := c.licenseTagService.Update(ctx.Request().Context(), shared.GetUser(ctx), &tag); err != nil {
			return toHTTPError(err, "could not update license tag")
		}
	}
	return ctx.JSON(http.StatusOK, tag)
}

func (c *LicenseTagController) Delete(ctx shared.Context) error {
	tag, err := fetch(ctx, c.licenseTagRepository.ReadByUUID)
	if err != nil {
		return err
	}
	if err := c.licenseTagService.Delete(ctx.Request().Context(), shared.GetUser(ctx), &tag); err != nil {
		return toHTTPError(err, "could not delete license tag")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (c *LicenseTagController) History(ctx shared.Context) error {
	tag, err := fetch(ctx, c.licenseTagRepository.ReadByUUID)
	if err != nil {
		return err
	}
	return renderHistory(ctx, c.historyService, &tag)
}
