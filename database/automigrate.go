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

package database

import (
	"fmt"
	"strings"

	"github.com/aboutcode-org/dejacode/database/models"
	"gorm.io/gorm"
)

// AllModels lists every persisted model in dependency order.
func AllModels() []any {
	return []any{
		&models.Dataspace{},
		&models.DataspaceConfiguration{},
		&models.User{},
		&models.UsagePolicy{},
		&models.Owner{},
		&models.LicenseTag{},
		&models.License{},
		&models.LicenseAssignedTag{},
		&models.LicenseAnnotation{},
		&models.Package{},
		&models.Component{},
		&models.Subcomponent{},
		&models.ComponentAssignedLicense{},
		&models.ComponentAssignedPackage{},
		&models.History{},
	}
}

// AutoMigrateModels creates the schema through gorm instead of the sql migrations.
// Used for throwaway databases, the natural keys are added as unique indexes.
func AutoMigrateModels(db *gorm.DB) error {
	all := AllModels()
	if err := db.AutoMigrate(all...); err != nil {
		return err
	}

	for _, m := range all {
		unique, ok := m.(models.UniqueTogether)
		if !ok {
			continue
		}
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			return err
		}
		table := stmt.Schema.Table
		for _, columns := range unique.UniqueTogether() {
			name := fmt.Sprintf("uniq_%s_%s", table, strings.Join(columns, "_"))
			sql := fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (%s)", name, table, strings.Join(columns, ", "))
			if err := db.Exec(sql).Error; err != nil {
				return fmt.Errorf("could not create unique index %s: %w", name, err)
			}
		}
	}
	return nil
}
