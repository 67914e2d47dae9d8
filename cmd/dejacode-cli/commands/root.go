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
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aboutcode-org/dejacode/accesscontrol"
	"github.com/aboutcode-org/dejacode/database/repositories"
	"github.com/aboutcode-org/dejacode/services"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

const envPrefix = "DEJACODE"

var rootCmd = &cobra.Command{
	SilenceUsage: true,
	Use:          "dejacode-cli",
	Short:        "Management cli",
	Long: `The dejacode cli manages the catalog database directly: migrations, dataspaces,
copies between dataspaces and maintenance of components and packages.
Every flag can also be provided as environment variable (prefix DEJACODE_).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := cmd.Flags().GetString("logLevel")
		if err != nil {
			return err
		}
		switch level {
		case "debug":
			initLogger(slog.LevelDebug)
		case "warn":
			initLogger(slog.LevelWarn)
		case "error":
			initLogger(slog.LevelError)
		default:
			initLogger(slog.LevelInfo)
		}

		shared.LoadConfig() // nolint: errcheck
		initializeConfig(cmd)
		return nil
	},
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringP("logLevel", "l", "info", "Set the log level. Options: debug, info, warn, error")
}

func initLogger(level slog.Leveler) {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))
}

func initializeConfig(cmd *cobra.Command) {
	viper.SetEnvPrefix(envPrefix)
	// Environment variables can't have dashes in them, so bind them to their equivalent
	// keys with underscores, e.g. --dry-run to DEJACODE_DRY_RUN
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	bindFlags(cmd)
}

// Bind each cobra flag to its associated viper configuration (environment variable)
func bindFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && viper.IsSet(f.Name) {
			val := viper.Get(f.Name)
			cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)) // nolint: errcheck
		}

		if err := viper.BindPFlag(f.Name, f); err != nil {
			slog.Error("could not bind flag to viper", "err", err)
		}
	})
}

// populate connects to the database and fills targets with the wired services and repositories.
func populate(targets ...any) error {
	db, err := shared.DatabaseFactory()
	if err != nil {
		return errors.Wrap(err, "could not connect to database")
	}

	app := fx.New(
		fx.NopLogger,
		fx.Supply(db),
		repositories.Module,
		services.Module,
		accesscontrol.AccessControlModule,
		fx.Populate(targets...),
	)
	return app.Err()
}
