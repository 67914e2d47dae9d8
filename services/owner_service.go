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
	"strings"

	"github.com/aboutcode-org/dejacode/copier"
	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/shared"
)

type ownerService struct {
	*catalogService[models.Owner, *models.Owner]
}

var _ shared.OwnerService = (*ownerService)(nil)

func NewOwnerService(ownerRepository shared.OwnerRepository, historyService shared.HistoryService, registry *copier.Registry) *ownerService {
	s := &ownerService{
		catalogService: newCatalogService[models.Owner](ownerRepository, historyService, registry),
	}
	s.beforeSave = func(tx shared.DB, owner *models.Owner) error {
		owner.Name = strings.TrimSpace(owner.Name)
		if owner.Name == "" {
			return newValidationError("name", "must not be empty")
		}
		switch owner.Type {
		case "":
			owner.Type = models.OwnerTypeOrganization
		case models.OwnerTypeOrganization, models.OwnerTypePerson, models.OwnerTypeProject:
		default:
			return newValidationError("type", "unknown owner type %q", owner.Type)
		}
		return nil
	}
	return s
}

type licenseTagService struct {
	*catalogService[models.LicenseTag, *models.LicenseTag]
}

var _ shared.LicenseTagService = (*licenseTagService)(nil)

func NewLicenseTagService(licenseTagRepository shared.LicenseTagRepository, historyService shared.HistoryService, registry *copier.Registry) *licenseTagService {
	s := &licenseTagService{
		catalogService: newCatalogService[models.LicenseTag](licenseTagRepository, historyService, registry),
	}
	s.beforeSave = func(tx shared.DB, tag *models.LicenseTag) error {
		tag.Label = strings.TrimSpace(tag.Label)
		if tag.Label == "" {
			return newValidationError("label", "must not be empty")
		}
		return nil
	}
	return s
}
