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

package services

import (
	"time"

	"github.com/aboutcode-org/dejacode/copier"
	"github.com/aboutcode-org/dejacode/shared"
	"go.uber.org/fx"
)

const (
	policyCacheSize = 256
	policyCacheTTL  = 5 * time.Minute
)

// Module provides all service-layer constructors
var Module = fx.Options(
	fx.Provide(copier.DefaultRegistry),
	fx.Provide(func() *copier.PolicyResolver {
		return copier.NewPolicyResolver(policyCacheSize, policyCacheTTL)
	}),
	fx.Provide(copier.NewCopier),
	fx.Provide(fx.Annotate(NewHistoryService, fx.As(new(shared.HistoryService)))),
	fx.Provide(fx.Annotate(NewOwnerService, fx.As(new(shared.OwnerService)))),
	fx.Provide(fx.Annotate(NewLicenseTagService, fx.As(new(shared.LicenseTagService)))),
	fx.Provide(fx.Annotate(NewLicenseService, fx.As(new(shared.LicenseService)))),
	fx.Provide(fx.Annotate(NewComponentService, fx.As(new(shared.ComponentService)))),
	fx.Provide(fx.Annotate(NewPackageService, fx.As(new(shared.PackageService)))),
	fx.Provide(fx.Annotate(NewDataspaceService, fx.As(new(shared.DataspaceService)))),
	fx.Provide(fx.Annotate(NewUserService, fx.As(new(shared.UserService)))),
	fx.Provide(fx.Annotate(NewCopyService, fx.As(new(shared.CopyService)))),
	fx.Provide(fx.Annotate(NewCompareService, fx.As(new(shared.CompareService)))),
	fx.Provide(fx.Annotate(NewURNService, fx.As(new(shared.URNService)))),
)
