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
	"strings"

	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/dtos"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewCopyCommand() *cobra.Command {
	copyCmd := cobra.Command{
		Use:   "copy <model> <uuid>...",
		Short: "Copies catalog objects from one dataspace to another",
		Example: `  # copy two licenses from the reference dataspace
  dejacode-cli copy license 4d2a... 9f1c... --target acme --user admin

  # update already copied components, without touching their notice text
  dejacode-cli copy component 77e0... --target acme --user admin --update --exclude component=notice_text`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]uuid.UUID, 0, len(args)-1)
			for _, arg := range args[1:] {
				id, err := uuid.Parse(arg)
				if err != nil {
					return errors.Wrapf(err, "invalid uuid %q", arg)
				}
				ids = append(ids, id)
			}

			exclude, err := parseExcludeFlags(viper.GetStringSlice("exclude"))
			if err != nil {
				return err
			}

			var userRepository shared.UserRepository
			var copyService shared.CopyService
			if err := populate(&userRepository, &copyService); err != nil {
				return err
			}

			user, err := userRepository.ReadByUsername(viper.GetString("user"))
			if err != nil {
				return errors.Wrapf(err, "could not read user %q", viper.GetString("user"))
			}

			report, err := copyService.CopyBatch(cmd.Context(), user, dtos.CopyRequest{
				Model:   args[0],
				Source:  viper.GetString("source"),
				Target:  viper.GetString("target"),
				UUIDs:   ids,
				Update:  viper.GetBool("update"),
				Exclude: exclude,
			})
			if err != nil {
				return err
			}

			printCopyReport(report)
			if report.HasErrors() {
				return fmt.Errorf("%d objects could not be copied", len(report.Errors))
			}
			return nil
		},
	}

	copyCmd.Flags().String("source", shared.ReferenceDataspaceName(), "Dataspace to copy from")
	copyCmd.Flags().String("target", "", "Dataspace to copy into")
	copyCmd.Flags().String("user", "", "Username the copy is recorded for")
	copyCmd.Flags().Bool("update", false, "Update objects which already exist in the target dataspace")
	copyCmd.Flags().StringSlice("exclude", nil, "Field exclusion override, model=field1;field2 or model=SKIP")
	copyCmd.MarkFlagRequired("target") // nolint: errcheck
	copyCmd.MarkFlagRequired("user")   // nolint: errcheck

	return &copyCmd
}

// parseExcludeFlags turns model=field1;field2 pairs into exclusion overrides.
func parseExcludeFlags(values []string) (map[string]models.ExclusionEntry, error) {
	if len(values) == 0 {
		return nil, nil
	}
	exclude := make(map[string]models.ExclusionEntry, len(values))
	for _, value := range values {
		model, fields, ok := strings.Cut(value, "=")
		if !ok || model == "" {
			return nil, fmt.Errorf("invalid exclude %q, expected model=fields", value)
		}
		if fields == models.SkipSentinel {
			exclude[model] = models.ExclusionEntry{Skip: true}
			continue
		}
		entry := models.ExclusionEntry{Fields: []string{}}
		for _, field := range strings.Split(fields, ";") {
			if field = strings.TrimSpace(field); field != "" {
				entry.Fields = append(entry.Fields, field)
			}
		}
		exclude[model] = entry
	}
	return exclude, nil
}

func printCopyReport(report dtos.CopyReport) {
	tw := table.NewWriter()
	tw.SetTitle(fmt.Sprintf("%s: %s -> %s", report.Model, report.Source, report.Target))
	tw.AppendHeader(table.Row{"Status", "UUID", "Object", "Details"})

	for _, c := range report.Copied {
		tw.AppendRow(table.Row{text.FgGreen.Sprint("copied"), c.UUID, c.Repr, ""})
	}
	for _, u := range report.Updated {
		tw.AppendRow(table.Row{text.FgBlue.Sprint("updated"), u.UUID, u.Repr, strings.Join(u.ChangedFields, ", ")})
	}
	for _, s := range report.Skipped {
		tw.AppendRow(table.Row{text.FgYellow.Sprint("skipped"), s.UUID, s.Repr, "already in target"})
	}
	for _, e := range report.Errors {
		tw.AppendRow(table.Row{text.FgRed.Sprint("error"), e.UUID, e.Repr, text.WrapText(e.Error, 60)})
	}
	fmt.Println(tw.Render())
}
