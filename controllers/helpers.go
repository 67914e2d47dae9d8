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
	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/dtos"
	"github.com/aboutcode-org/dejacode/services"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/aboutcode-org/dejacode/transformer"
	"github.com/aboutcode-org/dejacode/urn"
	"github.com/aboutcode-org/dejacode/utils"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// toHTTPError maps service errors to a status code. Anything unknown becomes a 500 with message.
func toHTTPError(err error, message string) *echo.HTTPError {
	var conflict *services.ConflictError
	var validation *services.ValidationError
	var urnErr *urn.Error

	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found").WithInternal(err)
	case errors.As(err, &conflict):
		return echo.NewHTTPError(http.StatusConflict, conflict.Error()).WithInternal(err)
	case errors.As(err, &validation):
		return echo.NewHTTPError(http.StatusBadRequest, validation.Error()).WithInternal(err)
	case errors.As(err, &urnErr):
		return echo.NewHTTPError(http.StatusBadRequest, urnErr.Error()).WithInternal(err)
	case errors.Is(err, copier.ErrSameDataspace):
		return echo.NewHTTPError(http.StatusBadRequest, copier.ErrSameDataspace.Error()).WithInternal(err)
	case errors.Is(err, services.ErrPermissionDenied):
		return echo.NewHTTPError(http.StatusForbidden, "you do not have permission to perform this action").WithInternal(err)
	case errors.Is(err, services.ErrInvalidAPIKey):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").WithInternal(err)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, message).WithInternal(err)
}

// bindAndValidate decodes the request body into req and runs the struct validation.
func bindAndValidate(ctx shared.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

type readFunc[T any] func(tx shared.DB, dataspaceID uint, id uuid.UUID) (T, error)

// fetch loads the object named by the :uuid path parameter from the dataspace of the request.
func fetch[T any](ctx shared.Context, read readFunc[T]) (T, error) {
	var zero T
	id, err := shared.GetUUIDParam(ctx)
	if err != nil {
		return zero, echo.NewHTTPError(http.StatusBadRequest, "invalid uuid").WithInternal(err)
	}

	obj, err := read(nil, shared.GetDataspace(ctx).ID, id)
	if err != nil {
		return zero, toHTTPError(err, "could not fetch object")
	}
	return obj, nil
}

func listPaged[T utils.Tabler](ctx shared.Context, repository shared.DataspacedRepository[T], sortable ...string) error {
	paged, err := repository.ListPaged(shared.GetDataspace(ctx).ID, shared.GetPageInfo(ctx), shared.GetSearch(ctx), shared.GetSortQuery(ctx, sortable...))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not list objects").WithInternal(err)
	}
	return ctx.JSON(http.StatusOK, paged)
}

func renderHistory(ctx shared.Context, historyService shared.HistoryService, obj copier.Copyable) error {
	entries, err := historyService.ListForObject(obj)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not fetch history").WithInternal(err)
	}
	return ctx.JSON(http.StatusOK, utils.Map(entries, func(h models.History) dtos.HistoryDTO {
		return transformer.HistoryToDTO(h)
	}))
}
