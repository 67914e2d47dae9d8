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
	"context"
	"io"

	"github.com/aboutcode-org/dejacode/copier"
	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/dtos"
	"github.com/aboutcode-org/dejacode/utils"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// DataspacedRepository is implemented by the repository of every catalog model.
// All lookups are scoped to a single dataspace.
type DataspacedRepository[T utils.Tabler] interface {
	utils.Repository[uint, T, DB]
	ReadByUUID(tx DB, dataspaceID uint, id uuid.UUID) (T, error)
	ListByUUIDs(tx DB, dataspaceID uint, ids []uuid.UUID) ([]T, error)
	FindByDataspace(tx DB, dataspaceID uint) ([]T, error)
	ListPaged(dataspaceID uint, pageInfo PageInfo, search string, sort []SortQuery) (Paged[T], error)
}

type DataspaceRepository interface {
	utils.Repository[uint, models.Dataspace, DB]
	ReadByName(name string) (models.Dataspace, error)
	ReadBySlug(slug string) (models.Dataspace, error)
	ReadConfiguration(tx DB, dataspaceID uint) (models.DataspaceConfiguration, error)
	SaveConfiguration(tx DB, configuration *models.DataspaceConfiguration) error
}

type UserRepository interface {
	utils.Repository[uint, models.User, DB]
	ReadByUsername(username string) (models.User, error)
	FindByAPIKey(key string) (models.User, error)
}

type UsagePolicyRepository interface {
	DataspacedRepository[models.UsagePolicy]
}

type OwnerRepository interface {
	DataspacedRepository[models.Owner]
	ReadByName(tx DB, dataspaceID uint, name string) (models.Owner, error)
}

type LicenseTagRepository interface {
	DataspacedRepository[models.LicenseTag]
}

type LicenseRepository interface {
	DataspacedRepository[models.License]
	ReadByKey(tx DB, dataspaceID uint, key string) (models.License, error)
	FindByKeys(tx DB, dataspaceID uint, keys []string) ([]models.License, error)
	ReadWithRelations(tx DB, dataspaceID uint, id uuid.UUID) (models.License, error)
}

type ComponentRepository interface {
	DataspacedRepository[models.Component]
	ReadByNameAndVersion(tx DB, dataspaceID uint, name, version string) (models.Component, error)
	ReadWithRelations(tx DB, dataspaceID uint, id uuid.UUID) (models.Component, error)
	ReplaceAssignedLicenses(tx DB, component *models.Component, licenses []models.License) error
	UpdateCompletionLevel(tx DB, componentID uint, level int) error
}

type PackageRepository interface {
	DataspacedRepository[models.Package]
	FindWithoutPackageURL(tx DB, dataspaceID uint) ([]models.Package, error)
}

type HistoryRepository interface {
	Create(tx DB, history *models.History) error
	ListForObject(contentType string, objectID uint) ([]models.History, error)
}

type HistoryService interface {
	LogAddition(tx DB, user *models.User, obj copier.Copyable) error
	LogChange(tx DB, user *models.User, obj copier.Copyable, changes []copier.FieldChange) error
	LogDeletion(tx DB, user *models.User, obj copier.Copyable) error
	ListForObject(obj copier.Copyable) ([]models.History, error)
}

// CatalogService persists a catalog model and records every write in the history.
type CatalogService[T any] interface {
	Create(ctx context.Context, user models.User, obj *T) error
	Update(ctx context.Context, user models.User, obj *T) error
	Delete(ctx context.Context, user models.User, obj *T) error
}

type OwnerService = CatalogService[models.Owner]

type LicenseTagService = CatalogService[models.LicenseTag]

type LicenseService interface {
	CatalogService[models.License]
	// SuggestSPDXKey returns the SPDX key matching the full text of the license.
	SuggestSPDXKey(license models.License) (string, bool)
}

type ComponentService interface {
	CatalogService[models.Component]
	SyncAssignedLicenses(tx DB, component *models.Component) error
	UpdateCompletionLevels(ctx context.Context, dataspaceID uint, progress func()) (int, error)
}

type PackageService interface {
	CatalogService[models.Package]
	SetPackageURLs(ctx context.Context, dataspaceID uint, progress func()) (int, error)
}

type DataspaceService interface {
	Create(ctx context.Context, dataspace *models.Dataspace) error
	ReadByName(name string) (models.Dataspace, error)
	ImportCopyDefaults(ctx context.Context, dataspace models.Dataspace, r io.Reader) (models.DataspaceConfiguration, error)
}

type UserService interface {
	Create(ctx context.Context, user *models.User) (string, error)
	Authenticate(key string) (models.User, error)
}

type CopyService interface {
	CheckPermission(user models.User, source, target models.Dataspace) error
	CopyBatch(ctx context.Context, user models.User, req dtos.CopyRequest) (dtos.CopyReport, error)
}

type CompareService interface {
	Compare(ctx context.Context, user models.User, req dtos.CompareRequest) ([]copier.Comparison, error)
}

type URNService interface {
	Resolve(ctx context.Context, dataspaceID uint, urn string) (any, error)
}

type AccessControl interface {
	HasAccess(subject string) (bool, error)

	InheritRole(roleWhichGetsPermissions, roleWhichProvidesPermissions Role) error

	GetAllRoles(user string) []string
	GetDomainRole(user string) (Role, error)

	GrantRole(subject string, role Role) error
	RevokeRole(subject string, role Role) error

	AllowRole(role Role, object Object, action []Action) error
	IsAllowed(subject string, object Object, action Action) (bool, error)

	GetAllMembersOfDataspace() ([]string, error)
}

type RBACProvider interface {
	GetDomainRBAC(domain string) AccessControl
	DomainsOfUser(user string) ([]string, error)
}

type RBACMiddleware = func(obj Object, act Action) echo.MiddlewareFunc

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleGuest  Role = "guest"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Object string

const (
	ObjectDataspace  Object = "dataspace"
	ObjectOwner      Object = "owner"
	ObjectLicense    Object = "license"
	ObjectLicenseTag Object = "license-tag"
	ObjectComponent  Object = "component"
	ObjectPackage    Object = "package"
	ObjectCopy       Object = "copy"
)
