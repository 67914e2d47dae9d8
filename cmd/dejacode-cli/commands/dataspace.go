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
	"os"
	"slices"
	"strings"

	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewDataspaceCommand() *cobra.Command {
	dataspaceCmd := cobra.Command{
		Use:   "dataspace",
		Short: "Manage dataspaces",
	}

	dataspaceCmd.AddCommand(newCreateDataspaceCommand())
	dataspaceCmd.AddCommand(newCopyDefaultsCommand())
	return &dataspaceCmd
}

func newCreateDataspaceCommand() *cobra.Command {
	createCmd := cobra.Command{
		Use:   "create <name>",
		Short: "Creates a dataspace with its configuration and access control policies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dataspaceService shared.DataspaceService
			if err := populate(&dataspaceService); err != nil {
				return err
			}

			dataspace := models.Dataspace{
				Name:        args[0],
				HomepageURL: viper.GetString("homepage-url"),
				ContactInfo: viper.GetString("contact-info"),
			}
			if err := dataspaceService.Create(cmd.Context(), &dataspace); err != nil {
				return errors.Wrap(err, "could not create dataspace")
			}

			fmt.Printf("created dataspace %q (slug %q)\n", dataspace.Name, dataspace.Slug)
			return nil
		},
	}

	createCmd.Flags().String("homepage-url", "", "Homepage of the dataspace owner")
	createCmd.Flags().String("contact-info", "", "Contact information of the dataspace owner")
	return &createCmd
}

func newCopyDefaultsCommand() *cobra.Command {
	copyDefaultsCmd := cobra.Command{
		Use:   "copy-defaults",
		Short: "Manage the fields excluded on copy and update",
	}

	importCmd := cobra.Command{
		Use:   "import <dataspace> <file.yaml>",
		Short: "Imports copy_defaults and update_defaults from a yaml file",
		Long: `Imports the field exclusions of a dataspace. The file lists, per application and model,
the fields which are not copied or updated, or SKIP to exclude the whole model:

  copy_defaults:
    license_library:
      license: [guidance, admin_notes]
    component_catalog:
      subcomponent: SKIP`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dataspaceService shared.DataspaceService
			if err := populate(&dataspaceService); err != nil {
				return err
			}

			dataspace, err := dataspaceService.ReadByName(args[0])
			if err != nil {
				return errors.Wrapf(err, "could not read dataspace %q", args[0])
			}

			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			configuration, err := dataspaceService.ImportCopyDefaults(cmd.Context(), dataspace, f)
			if err != nil {
				return errors.Wrap(err, "could not import copy defaults")
			}

			printExclusions(dataspace, configuration)
			return nil
		},
	}

	copyDefaultsCmd.AddCommand(&importCmd)
	return &copyDefaultsCmd
}

func printExclusions(dataspace models.Dataspace, configuration models.DataspaceConfiguration) {
	tw := table.NewWriter()
	tw.SetTitle(fmt.Sprintf("Exclusions of %s", dataspace.Name))
	tw.AppendHeader(table.Row{"Kind", "Application", "Model", "Excluded"})

	appendConfig := func(kind string, config models.ExclusionConfig) {
		apps := make([]string, 0, len(config))
		for app := range config {
			apps = append(apps, app)
		}
		slices.Sort(apps)
		for _, app := range apps {
			names := make([]string, 0, len(config[app]))
			for name := range config[app] {
				names = append(names, name)
			}
			slices.Sort(names)
			for _, name := range names {
				entry := config[app][name]
				excluded := strings.Join(entry.Fields, ", ")
				if entry.Skip {
					excluded = models.SkipSentinel
				}
				tw.AppendRow(table.Row{kind, app, name, excluded})
			}
		}
	}

	appendConfig("copy", configuration.CopyDefaults.Data())
	appendConfig("update", configuration.UpdateDefaults.Data())
	fmt.Println(tw.Render())
}
