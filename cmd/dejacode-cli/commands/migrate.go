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

package commands

import (
	"log/slog"
	"os"
	"time"

	"github.com/aboutcode-org/dejacode/database"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/briandowns/spinner"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func NewMigrateCommand() *cobra.Command {
	migrate := cobra.Command{
		Use:   "migrate",
		Short: "Runs all pending database migrations",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := shared.DatabaseFactory()
			if err != nil {
				return errors.Wrap(err, "could not connect to database")
			}

			s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
			s.Suffix = " Applying migrations"
			s.Start()
			err = database.RunMigrationsWithDB(db)
			s.Stop()
			if err != nil {
				return errors.Wrap(err, "could not run migrations")
			}

			version, dirty, err := database.GetMigrationVersionWithDB(db)
			if err != nil {
				return errors.Wrap(err, "could not read migration version")
			}
			slog.Info("database is up to date", "version", version, "dirty", dirty)
			return nil
		},
	}

	return &migrate
}
