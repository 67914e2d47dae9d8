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

type ComponentController struct {
	componentRepository shared.ComponentRepository
	ownerRepository     shared.OwnerRepository
	componentService    shared.ComponentService
	historyService      shared.HistoryService
}

func NewComponentController(componentRepository shared.ComponentRepository, ownerRepository shared.OwnerRepository, componentService shared.ComponentService, historyService shared.HistoryService) *ComponentController {
	return &ComponentController{
		componentRepository: componentRepository,
		ownerRepository:     ownerRepository,
		componentService:    componentService,
		historyService:      historyService,
	}
}

// @Summary List components of the dataspace
// @Tags Components
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10, max: 100)"
// @Param search query string false "Search term for name, version, license expression or language"
// @Success 200 {object} shared.Paged[models.Component]
// @Router /components/ [get]
func (c *ComponentController) List(ctx shared.Context) error {
	return listPaged(ctx, c.componentRepository, "name", "version", "completion_level", "created_date", "last_modified_date")
}

func (c *ComponentController) Read(ctx shared.Context) error {
	component, err := fetch(ctx, c.componentRepository.ReadWithRelations)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, component)
}

// @Summary Create a component
// @Tags Components
// @Param body body dtos.ComponentCreateRequest true "Component data, owner is referenced by name"
// @Success 201 {object} models.Component
// @Router /components/ [post]
func (c *ComponentController) Create(ctx shared.Context) error {
	var req dtos.ComponentCreateRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	component := transformer.ComponentCreateRequestToModel(req, shared.GetDataspace(ctx).ID)
	if req.Owner != "" {
		owner, err := resolveOwner(ctx, c.ownerRepository, req.Owner)
		if err != nil {
			if err.Code == http.StatusNotFound {
				return echo.NewHTTPError(http.StatusBadRequest, "owner does not exist")
			}
			return err
		}
		component.OwnerID = &owner.ID
		component.Owner = &owner
	}

	if err := c.componentService.Create(ctx.Request().Context(), shared.GetUser(ctx), &component); err != nil {
		return toHTTPError(err, "could not create component")
	}
	return ctx.JSON(http.StatusCreated, component)
}

func (c *ComponentController) Update(ctx shared.Context) error {
	component, err := fetch(ctx, c.componentRepository.ReadWithRelations)
	if err != nil {
		return err
	}

	var req dtos.ComponentPatchRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	updated := transformer.ApplyComponentPatchRequestToModel(req, &component)
	if req.Owner != nil {
		updated = true
		if *req.Owner == "" {
			component.OwnerID = nil
			component.Owner = nil
		} else {
			owner, err := resolveOwner(ctx, c.ownerRepository, *req.Owner)
			if err != nil {
				if err.Code == http.StatusNotFound {
					return echo.NewHTTPError(http.StatusBadRequest, "owner does not exist")
				}
				return err
			}
			component.OwnerID = &owner.ID
			component.Owner = &owner
		}
	}

	if updated {
		if err := c.componentService.Update(ctx.Request().Context(), shared.GetUser(ctx), &component); err != nil {
			return toHTTPError(err, "could not update component")
		}
	}
	return ctx.JSON(http.StatusOK, component)
}

func (c *ComponentController) Delete(ctx shared.Context) error {
	component, err := fetch(ctx, c.componentRepository.ReadByUUID)
	if err != nil {
		return err
	}
	if err := c.componentService.Delete(ctx.Request().Context(), shared.GetUser(ctx), &component); err != nil {
		return toHTTPError(err, "could not delete component")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (c *ComponentController) History(ctx shared.Context) error {
	component, err := fetch(ctx, c.componentRepository.ReadByUUID)
	if err != nil {
		return err
	}
	return renderHistory(ctx, c.historyService, &component)
}
