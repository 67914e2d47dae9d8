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

	"github.com/aboutcode-org/dejacode/copier"
	"github.com/aboutcode-org/dejacode/dtos"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/aboutcode-org/dejacode/transformer"
	"github.com/aboutcode-org/dejacode/urn"
	"github.com/aboutcode-org/dejacode/utils"
	"github.com/labstack/echo/v4"
)

type CopyController struct {
	copyService    shared.CopyService
	compareService shared.CompareService
}

func NewCopyController(copyService shared.CopyService, compareService shared.CompareService) *CopyController {
	return &CopyController{
		copyService:    copyService,
		compareService: compareService,
	}
}

// @Summary Copy catalog objects between dataspaces
// @Tags Copy
// @Param body body dtos.CopyRequest true "Objects to copy"
// @Success 200 {object} dtos.CopyReport
// @Router /copy/ [post]
func (c *CopyController) Copy(ctx shared.Context) error {
	var req dtos.CopyRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	report, err := c.copyService.CopyBatch(ctx.Request().Context(), shared.GetUser(ctx), req)
	if err != nil {
		return toHTTPError(err, "could not copy objects")
	}
	return ctx.JSON(http.StatusOK, report)
}

// @Summary Compare catalog objects of two dataspaces
// @Tags Copy
// @Param body body dtos.CompareRequest true "Objects to compare"
// @Success 200 {array} dtos.ComparisonDTO
// @Router /compare/ [post]
func (c *CopyController) Compare(ctx shared.Context) error {
	var req dtos.CompareRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	comparisons, err := c.compareService.Compare(ctx.Request().Context(), shared.GetUser(ctx), req)
	if err != nil {
		return toHTTPError(err, "could not compare objects")
	}
	return ctx.JSON(http.StatusOK, utils.Map(comparisons, func(cmp copier.Comparison) dtos.ComparisonDTO {
		return transformer.ComparisonToDTO(cmp)
	}))
}

type URNController struct {
	urnService shared.URNService
}

func NewURNController(urnService shared.URNService) *URNController {
	return &URNController{urnService: urnService}
}

// @Summary Resolve a urn:dje urn
// @Tags URN
// @Param urn query string true "URN, for example urn:dje:license:mit"
// @Success 200 {object} dtos.URNResolveResponse
// @Router /urn/ [get]
func (c *URNController) Resolve(ctx shared.Context) error {
	value := ctx.QueryParam("urn")
	if value == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "urn query parameter is required")
	}

	obj, err := c.urnService.Resolve(ctx.Request().Context(), shared.GetDataspace(ctx).ID, value)
	if err != nil {
		return toHTTPError(err, "could not resolve urn")
	}

	kind, _, _ := urn.Parse(value)
	return ctx.JSON(http.StatusOK, dtos.URNResolveResponse{
		URN:    value,
		Kind:   kind,
		Object: obj,
	})
}
