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

package repositories

import (
	"github.com/aboutcode-org/dejacode/shared"
	"go.uber.org/fx"
)

// Module provides all repository constructors as their interfaces
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewDataspaceRepository, fx.As(new(shared.DataspaceRepository)))),
	fx.Provide(fx.Annotate(NewUserRepository, fx.As(new(shared.UserRepository)))),
	fx.Provide(fx.Annotate(NewUsagePolicyRepository, fx.As(new(shared.UsagePolicyRepository)))),
	fx.Provide(fx.Annotate(NewOwnerRepository, fx.As(new(shared.OwnerRepository)))),
	fx.Provide(fx.Annotate(NewLicenseTagRepository, fx.As(new(shared.LicenseTagRepository)))),
	fx.Provide(fx.Annotate(NewLicenseRepository, fx.As(new(shared.LicenseRepository)))),
	fx.Provide(fx.Annotate(NewComponentRepository, fx.As(new(shared.ComponentRepository)))),
	fx.Provide(fx.Annotate(NewPackageRepository, fx.As(new(shared.PackageRepository)))),
	fx.Provide(fx.Annotate(NewHistoryRepository, fx.As(new(shared.HistoryRepository)))),
)
