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

// LicenseCreateRequestToModel leaves the owner unset, the caller resolves it by name.
func LicenseCreateRequestToModel(c dtos.LicenseCreateRequest, dataspaceID uint) models.License {
	license := models.License{
		Key:            c.Key,
		Name:           c.Name,
		ShortName:      c.ShortName,
		SPDXLicenseKey: c.SPDXLicenseKey,
		Category:       c.Category,
		HomepageURL:    c.HomepageURL,
		FullText:       c.FullText,
		IsActive:       c.IsActive,
		IsException:    c.IsException,
		Guidance:       c.Guidance,
		AdminNotes:     c.AdminNotes,
	}
	license.DataspaceID = dataspaceID
	return license
}

func ApplyLicensePatchRequestToModel(p dtos.LicensePatchRequest, license *models.License) bool {
	updated := false

	if p.Name != nil {
		updated = true
		license.Name = *p.Name
	}

	if p.ShortName != nil {
		updated = true
		license.ShortName = *p.ShortName
	}

	if p.SPDXLicenseKey != nil {
		updated = true
		license.SPDXLicenseKey = *p.SPDXLicenseKey
	}

	if p.Category != nil {
		updated = true
		license.Category = *p.Category
	}

	if p.HomepageURL != nil {
		updated = true
		license.HomepageURL = *p.HomepageURL
	}

	if p.FullText != nil {
		updated = true
		license.FullText = *p.FullText
	}

	if p.IsActive != nil {
		updated = true
		license.IsActive = p.IsActive
	}

	if p.IsException != nil {
		updated = true
		license.IsException = *p.IsException
	}

	if p.Reviewed != nil {
		updated = true
		license.Reviewed = *p.Reviewed
	}

	if p.Guidance != nil {
		updated = true
		license.Guidance = *p.Guidance
	}

	if p.AdminNotes != nil {
		updated = true
		license.AdminNotes = *p.AdminNotes
	}

	return updated
}

func LicenseTagCreateRequestToModel(c dtos.LicenseTagCreateRequest, dataspaceID uint) models.LicenseTag {
	tag := models.LicenseTag{
		Label:             c.Label,
		Text:              c.Text,
		Guidance:          c.Guidance,
		DefaultValue:      c.DefaultValue,
		ShowInLicenseList: c.ShowInLicenseList,
	}
	tag.DataspaceID = dataspaceID
	return tag
}

func ApplyLicenseTagPatchRequestToModel(p dtos.LicenseTagPatchRequest, tag *models.LicenseTag) bool {
	updated := false

	if p.Label != nil {
		updated = true
		tag.Label = *p.Label
	}

	if p.Text != nil {
		updated = true
		tag.Text = *p.Text
	}

	if p.Guidance != nil {
		updated = true
		tag.Guidance = *p.Guidance
	}

	if p.DefaultValue != nil {
		updated = true
		tag.DefaultValue = p.DefaultValue
	}

	if p.ShowInLicenseList != nil {
		updated = true
		tag.ShowInLicenseList = *p.ShowInLicenseList
	}

	return updated
}
