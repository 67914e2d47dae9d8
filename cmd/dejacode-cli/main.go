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
	"log/slog"
	"os"

	"github.com/aboutcode-org/dejacode/cmd/dejacode-cli/commands"
)

func Execute() {
	err := commands.GetRootCmd().Execute()
	if err != nil {
		slog.Error("Error executing command", "err", err)
		os.Exit(1)
	}
}

func init() {
	commands.GetRootCmd().AddCommand(commands.NewMigrateCommand())
	commands.GetRootCmd().AddCommand(commands.NewDataspaceCommand())
	commands.GetRootCmd().AddCommand(commands.NewUserCommand())
	commands.GetRootCmd().AddCommand(commands.NewCopyCommand())
	commands.GetRootCmd().AddCommand(commands.NewURNCommand())
	commands.GetRootCmd().AddCommand(commands.NewComponentsCommand())
	commands.GetRootCmd().AddCommand(commands.NewPackagesCommand())
}

func main() {
	Execute()
}
