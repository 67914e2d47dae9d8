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

package main

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/aboutcode-org/dejacode/accesscontrol"
	"github.com/aboutcode-org/dejacode/controllers"
	"github.com/aboutcode-org/dejacode/database"
	"github.com/aboutcode-org/dejacode/database/repositories"
	"github.com/aboutcode-org/dejacode/monitoring"
	"github.com/aboutcode-org/dejacode/router"
	"github.com/aboutcode-org/dejacode/services"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/getsentry/sentry-go"
	"go.uber.org/fx"
)

var release string // Will be filled at build time

//	@title			dejacode API
//	@version		v1
//	@description	dejacode catalog API

// @host		localhost:8080
// @BasePath	/api/v1
func main() {
	shared.LoadConfig() // nolint: errcheck
	shared.InitLogger()

	if os.Getenv("ERROR_TRACKING_DSN") != "" {
		monitoring.InitSentry(release)

		// Catch panics
		defer func() {
			if err := recover(); err != nil {
				sentry.CurrentHub().Recover(err)
				// Wait for events to be send to server
				sentry.Flush(time.Second * 5)
			}
		}()
	}

	db, err := shared.DatabaseFactory()
	if err != nil {
		slog.Error(err.Error())
		panic(errors.New("Failed to setup database connection"))
	}

	if os.Getenv("DISABLE_AUTOMIGRATE") != "true" {
		slog.Info("running database migrations...")
		if err := database.RunMigrationsWithDB(db); err != nil {
			slog.Error("failed to run database migrations", "error", err)
			panic(errors.New("Failed to run database migrations"))
		}
	} else {
		slog.Info("automatic migrations disabled via DISABLE_AUTOMIGRATE=true")
	}

	fx.New(
		fx.Supply(db),
		repositories.Module,
		services.Module,
		controllers.ControllerModule,
		accesscontrol.AccessControlModule,
		router.RouterModule,

		// we need to invoke all routers to register their routes
		fx.Invoke(func(CatalogRouter router.CatalogRouter) {}),
		fx.Invoke(func(CopyRouter router.CopyRouter) {}),
	).Run()
}
