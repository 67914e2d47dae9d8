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

	"github.com/aboutcode-org/dejacode/shared"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewPackagesCommand() *cobra.Command {
	packagesCmd := cobra.Command{
		Use:   "packages",
		Short: "Maintenance of packages",
	}

	setPurlCmd := cobra.Command{
		Use:   "set-purl",
		Short: "Infers the package url of packages without one from their download url",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dataspaceService shared.DataspaceService
			var packageService shared.PackageService
			if err := populate(&dataspaceService, &packageService); err != nil {
				return err
			}

			dataspace, err := dataspaceService.ReadByName(viper.GetString("dataspace"))
			if err != nil {
				return errors.Wrap(err, "could not read dataspace")
			}

			bar := progressbar.Default(-1, "packages")
			updated, err := packageService.SetPackageURLs(cmd.Context(), dataspace.ID, func() {
				bar.Add(1) // nolint
			})
			bar.Finish() // nolint
			if err != nil {
				return err
			}

			slog.Info("set package urls", "dataspace", dataspace.Name, "updated", updated)
			return nil
		},
	}
	setPurlCmd.Flags().String("dataspace", shared.ReferenceDataspaceName(), "Dataspace of the packages")

	packagesCmd.AddCommand(&setPurlCmd)
	return &packagesCmd
}
