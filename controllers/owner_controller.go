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

	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/dtos"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/aboutcode-org/dejacode/transformer"
	"github.com/labstack/echo/v4"
)

type OwnerController struct {
	ownerRepository shared.OwnerRepository
	ownerService    shared.OwnerService
	historyService  shared.HistoryService
}

func NewOwnerController(ownerRepository shared.OwnerRepository, ownerService shared.OwnerService, historyService shared.HistoryService) *OwnerController {
	return &OwnerController{
		ownerRepository: ownerRepository,
		ownerService:    ownerService,
		historyService:  historyService,
	}
}

// @Summary List owners of the dataspace
// @Tags Owners
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10, max: 100)"
// @Param search query string false "Search term for name or alias"
// @Success 200 {object} shared.Paged[models.Owner]
// @Router /owners/ [get]
func (c *OwnerController) List(ctx shared.Context) error {
	return listPaged(ctx, c.ownerRepository, "name", "created_date", "last_modified_date")
}

func (c *OwnerController) Read(ctx shared.Context) error {
	owner, err := fetch(ctx, c.ownerRepository.ReadByUUID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, owner)
}

// @Summary Create an owner
// @Tags Owners
// @Param body body dtos.OwnerCreateRequest true "Owner data"
// @Success 201 {object} models.Owner
// @Router /owners/ [post]
func (c *OwnerController) Create(ctx shared.Context) error {
	var req dtos.OwnerCreateRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	owner := transformer.OwnerCreateRequestToModel(req, shared.GetDataspace(ctx).ID)
	if err := c.ownerService.Create(ctx.Request().Context(), shared.GetUser(ctx), &owner); err != nil {
		return toHTTPError(err, "could not create owner")
	}
	return ctx.JSON(http.StatusCreated, owner)
}

func (c *OwnerController) Update(ctx shared.Context) error {
	owner, err := fetch(ctx, c.ownerRepository.ReadByUUID)
	if err != nil {
		return err
	}

	var req dtos.OwnerPatchRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	if transformer.ApplyOwnerPatchRequestToModel(req, &owner) {
		if err := c.ownerService.Update(ctx.Request().Context(), shared.GetUser(ctx), &owner); err != nil {
			return toHTTPError(err, "could not update owner")
		}
	}
	return ctx.JSON(http.StatusOK, owner)
}

func (c *OwnerController) Delete(ctx shared.Context) error {
	owner, err := fetch(ctx, c.ownerRepository.ReadByUUID)
	if err != nil {
		return err
	}
	if err := c.ownerService.Delete(ctx.Request().Context(), shared.GetUser(ctx), &owner); err != nil {
		return toHTTPError(err, "could not delete owner")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (c *OwnerController) History(ctx shared.Context) error {
	owner, err := fetch(ctx, c.ownerRepository.ReadByUUID)
	if err != nil {
		return err
	}
	return renderHistory(ctx, c.historyService, &owner)
}

// resolveOwner looks up an owner by name in the dataspace of the request.
func resolveOwner(ctx shared.Context, ownerRepository shared.OwnerRepository, name string) (models.Owner, *echo.HTTPError) {
	owner, err := ownerRepository.ReadByName(nil, shared.GetDataspace(ctx).ID, name)
	if err != nil {
		return owner, toHTTPError(err, "could not fetch owner")
	}
	return owner, nil
}
