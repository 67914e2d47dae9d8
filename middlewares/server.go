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
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/aboutcode-org/dejacode/monitoring"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

func registerMiddlewares(e *echo.Echo) {
	e.Pre(middleware.AddTrailingSlash())

	origins := []string{"http://localhost:3000"}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins = strings.Split(v, ",")
	}
	e.Use(middleware.CORSWithConfig(
		middleware.CORSConfig{
			AllowOrigins: origins,
			AllowHeaders: append(middleware.DefaultCORSConfig.AllowHeaders, echo.HeaderAuthorization),
			AllowMethods: middleware.DefaultCORSConfig.AllowMethods,
		},
	))

	e.Use(logger())

	e.Use(recovermiddleware())

	// requests per second and client ip, disabled when unset
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil || limit <= 0 {
			slog.Warn("ignoring invalid RATE_LIMIT", "value", v)
		} else {
			e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(limit))))
		}
	}

	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		he, ok := err.(*echo.HTTPError)
		if !ok {
			he = echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)).WithInternal(err)
		}

		// do the logging straight inside the error handler
		// this keeps controller methods clean
		if he.Code >= http.StatusInternalServerError {
			monitoring.Alert("request failed", err)
		} else {
			slog.Warn(err.Error(), "method", ctx.Request().Method, "path", ctx.Request().URL)
		}

		message := he.Message
		if m, ok := message.(string); ok {
			message = echo.Map{"message": m}
		}

		if ctx.Request().Method == http.MethodHead {
			err = ctx.NoContent(he.Code)
		} else {
			err = ctx.JSON(he.Code, message)
		}
		if err != nil {
			slog.Error("could not send error response", "error", err)
		}
	}
}

func Server() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(99)
	registerMiddlewares(e)
	return e
}
