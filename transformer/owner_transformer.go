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

package transformer

import (
	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/dtos"
)

func OwnerCreateRequestToModel(c dtos.OwnerCreateRequest, dataspaceID uint) models.Owner {
	owner := models.Owner{
		Name:        c.Name,
		HomepageURL: c.HomepageURL,
		ContactInfo: c.ContactInfo,
		Notes:       c.Notes,
		Alias:       c.Alias,
		Type:        models.OwnerTypeOrganization,
	}
	if c.Type != "" {
		owner.Type = models.OwnerType(c.Type)
	}
	owner.DataspaceID = dataspaceID
	return owner
}

func ApplyOwnerPatchRequestToModel(p dtos.OwnerPatchRequest, owner *models.Owner) bool {
	updated := false

	if p.Name != nil {
		updated = true
		owner.Name = *p.Name
	}

	if p.HomepageURL != nil {
		updated = true
		owner.HomepageURL = *p.HomepageURL
	}

	if p.ContactInfo != nil {
		updated = true
		owner.ContactInfo = *p.ContactInfo
	}

	if p.Notes != nil {
		updated = true
		owner.Notes = *p.Notes
	}

	if p.Alias != nil {
		updated = true
		owner.Alias = *p.Alias
	}

	if p.Type != nil {
		updated = true
		owner.Type = models.OwnerType(*p.Type)
	}

	return updated
}
