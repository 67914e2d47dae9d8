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

package shared

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aboutcode-org/dejacode/database"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/lmittmann/tint"
	"gorm.io/gorm"
)

type Server = *echo.Group
type MiddlewareFunc = echo.MiddlewareFunc
type Context = echo.Context
type DB = *gorm.DB

const DefaultReferenceDataspace = "nexB"

func SanitizeParam(s string) string {
	// remove trailing or leading slashes
	return strings.Trim(s, "/")
}

func DatabaseFactory() (DB, error) {
	return database.NewConnection(database.GetPoolConfigFromEnv())
}

// InitLogger initializes the logger with a tint handler.
// tint is a simple logging library that allows to add colors to the log output.
func InitLogger() {
	level := slog.LevelDebug
	if strings.EqualFold(os.Getenv("LOG_LEVEL"), "info") {
		level = slog.LevelInfo
	}

	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			AddSource:  true,
			TimeFormat: time.Kitchen,
		}),
	))
}

func LoadConfig() error {
	return godotenv.Load()
}

// ReferenceDataspaceName is the dataspace every other dataspace may copy from.
func ReferenceDataspaceName() string {
	if name := os.Getenv("REFERENCE_DATASPACE"); name != "" {
		return name
	}
	return DefaultReferenceDataspace
}

var V = validator.New()

// BootstrapDataspace installs the role hierarchy and the permissions of a
// freshly created dataspace.
func BootstrapDataspace(rbac AccessControl) error {
	if err := rbac.InheritRole(RoleAdmin, RoleMember); err != nil { // an admin is a member
		return err
	}
	if err := rbac.InheritRole(RoleMember, RoleGuest); err != nil { // a member is a guest
		return err
	}

	catalog := []Object{ObjectOwner, ObjectLicense, ObjectLicenseTag, ObjectComponent, ObjectPackage}
	for _, obj := range catalog {
		if err := rbac.AllowRole(RoleGuest, obj, []Action{ActionRead}); err != nil {
			return err
		}
		if err := rbac.AllowRole(RoleMember, obj, []Action{
			ActionCreate,
			ActionUpdate,
		}); err != nil {
			return err
		}
		if err := rbac.AllowRole(RoleAdmin, obj, []Action{ActionDelete}); err != nil {
			return err
		}
	}

	if err := rbac.AllowRole(RoleGuest, ObjectDataspace, []Action{ActionRead}); err != nil {
		return err
	}
	if err := rbac.AllowRole(RoleAdmin, ObjectDataspace, []Action{ActionUpdate}); err != nil {
		return err
	}

	return rbac.AllowRole(RoleMember, ObjectCopy, []Action{ActionCreate, ActionRead})
}

// RoleForUser maps the user flags to the dataspace role granted on creation.
func RoleForUser(isSuperuser, isStaff bool) Role {
	switch {
	case isSuperuser:
		return RoleAdmin
	case isStaff:
		return RoleMember
	default:
		return RoleGuest
	}
}
