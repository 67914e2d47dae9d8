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
	"context"

	"github.com/aboutcode-org/dejacode/monitoring"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/aboutcode-org/dejacode/urn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type urnService struct {
	licenseRepository   shared.LicenseRepository
	ownerRepository     shared.OwnerRepository
	componentRepository shared.ComponentRepository
}

var _ shared.URNService = (*urnService)(nil)

func NewURNService(licenseRepository shared.LicenseRepository, ownerRepository shared.OwnerRepository, componentRepository shared.ComponentRepository) *urnService {
	return &urnService{
		licenseRepository:   licenseRepository,
		ownerRepository:     ownerRepository,
		componentRepository: componentRepository,
	}
}

// Resolve returns the object of the dataspace identified by the URN.
// Malformed URNs are reported as *urn.Error.
func (s *urnService) Resolve(ctx context.Context, dataspaceID uint, value string) (any, error) {
	kind, values, err := urn.Parse(value)
	if err != nil {
		monitoring.URNResolveTotal.WithLabelValues("unknown", "invalid").Inc()
		return nil, err
	}

	var obj any
	switch kind {
	case urn.KindLicense:
		obj, err = s.licenseRepository.ReadByKey(nil, dataspaceID, values["key"])
	case urn.KindOwner:
		obj, err = s.ownerRepository.ReadByName(nil, dataspaceID, values["name"])
	case urn.KindComponent:
		obj, err = s.componentRepository.ReadByNameAndVersion(nil, dataspaceID, values["name"], values["version"])
	default:
		monitoring.URNResolveTotal.WithLabelValues(kind, "invalid").Inc()
		return nil, &urn.Error{URN: value, Reason: "Unsupported URN object: " + kind}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		monitoring.URNResolveTotal.WithLabelValues(kind, "not_found").Inc()
		return nil, errors.Wrapf(ErrNotFound, "%s", value)
	} else if err != nil {
		monitoring.URNResolveTotal.WithLabelValues(kind, "error").Inc()
		return nil, errors.Wrap(err, "could not resolve urn")
	}
	monitoring.URNResolveTotal.WithLabelValues(kind, "found").Inc()
	return obj, nil
}
