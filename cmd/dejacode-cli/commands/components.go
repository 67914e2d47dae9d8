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

func NewComponentsCommand() *cobra.Command {
	componentsCmd := cobra.Command{
		Use:   "components",
		Short: "Maintenance of the component catalog",
	}

	componentsCmd.AddCommand(newUpdateCompletionCommand())
	return &componentsCmd
}

func newUpdateCompletionCommand() *cobra.Command {
	updateCmd := cobra.Command{
		Use:   "update-completion",
		Short: "Recomputes the completion level of every component of a dataspace",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dataspaceService shared.DataspaceService
			var componentService shared.ComponentService
			if err := populate(&dataspaceService, &componentService); err != nil {
				return err
			}

			dataspace, err := dataspaceService.ReadByName(viper.GetString("dataspace"))
			if err != nil {
				return errors.Wrap(err, "could not read dataspace")
			}

			bar := progressbar.Default(-1, "components")
			changed, err := componentService.UpdateCompletionLevels(cmd.Context(), dataspace.ID, func() {
				bar.Add(1) // nolint
			})
			bar.Finish() // nolint
			if err != nil {
				return err
			}

			slog.Info("updated completion levels", "dataspace", dataspace.Name, "changed", changed)
			return nil
		},
	}
	updateCmd.Flags().String("dataspace", shared.ReferenceDataspaceName(), "Dataspace of the components")
	return &updateCmd
}
