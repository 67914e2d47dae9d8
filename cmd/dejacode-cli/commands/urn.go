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
	"encoding/json"
	"fmt"

	"github.com/aboutcode-org/dejacode/dtos"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/aboutcode-org/dejacode/urn"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewURNCommand() *cobra.Command {
	urnCmd := cobra.Command{
		Use:   "urn",
		Short: "Work with urn:dje urns",
	}

	resolveCmd := cobra.Command{
		Use:     "resolve <urn>",
		Short:   "Prints the object identified by the urn",
		Example: `  dejacode-cli urn resolve urn:dje:component:zlib:1.2.13 --dataspace nexB`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _, err := urn.Parse(args[0])
			if err != nil {
				return err
			}

			var dataspaceService shared.DataspaceService
			var urnService shared.URNService
			if err := populate(&dataspaceService, &urnService); err != nil {
				return err
			}

			dataspace, err := dataspaceService.ReadByName(viper.GetString("dataspace"))
			if err != nil {
				return errors.Wrap(err, "could not read dataspace")
			}

			obj, err := urnService.Resolve(cmd.Context(), dataspace.ID, args[0])
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(dtos.URNResolveResponse{URN: args[0], Kind: kind, Object: obj}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	resolveCmd.Flags().String("dataspace", shared.ReferenceDataspaceName(), "Dataspace to resolve the urn in")

	urnCmd.AddCommand(&resolveCmd)
	return &urnCmd
}
