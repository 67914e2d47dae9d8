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

	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewUserCommand() *cobra.Command {
	userCmd := cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	createCmd := cobra.Command{
		Use:   "create <username>",
		Short: "Creates a user and prints its api key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dataspaceService shared.DataspaceService
			var userService shared.UserService
			if err := populate(&dataspaceService, &userService); err != nil {
				return err
			}

			dataspace, err := dataspaceService.ReadByName(viper.GetString("dataspace"))
			if err != nil {
				return errors.Wrap(err, "could not read dataspace")
			}

			user := models.User{
				Username:    args[0],
				Email:       viper.GetString("email"),
				DataspaceID: dataspace.ID,
				IsStaff:     viper.GetBool("staff"),
				IsSuperuser: viper.GetBool("superuser"),
			}
			key, err := userService.Create(cmd.Context(), &user)
			if err != nil {
				return errors.Wrap(err, "could not create user")
			}

			fmt.Printf("created user %q in %s, role %s\n", user.Username, dataspace.Name, shared.RoleForUser(user.IsSuperuser, user.IsStaff))
			fmt.Printf("api key (shown only once): %s\n", key)
			return nil
		},
	}

	createCmd.Flags().String("dataspace", shared.ReferenceDataspaceName(), "Dataspace of the user")
	createCmd.Flags().String("email", "", "Email address")
	createCmd.Flags().Bool("staff", false, "Grants the member role")
	createCmd.Flags().Bool("superuser", false, "Grants the admin role")

	userCmd.AddCommand(&createCmd)
	return &userCmd
}
