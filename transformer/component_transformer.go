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

func ComponentCreateRequestToModel(c dtos.ComponentCreateRequest, dataspaceID uint) models.Component {
	component := models.Component{
		Name:              c.Name,
		Version:           c.Version,
		Description:       c.Description,
		Copyright:         c.Copyright,
		HomepageURL:       c.HomepageURL,
		PrimaryLanguage:   c.PrimaryLanguage,
		LicenseExpression: c.LicenseExpression,
		NoticeText:        c.NoticeText,
		IsActive:          c.IsActive,
		CurationLevel:     c.CurationLevel,
		Guidance:          c.Guidance,
		AdminNotes:        c.AdminNotes,
	}
	component.DataspaceID = dataspaceID
	return component
}

func ApplyComponentPatchRequestToModel(p dtos.ComponentPatchRequest, component *models.Component) bool {
	updated := false

	if p.Name != nil {
		updated = true
		component.Name = *p.Name
	}

	if p.Version != nil {
		updated = true
		component.Version = *p.Version
	}

	if p.Description != nil {
		updated = true
		component.Description = *p.Description
	}

	if p.Copyright != nil {
		updated = true
		component.Copyright = *p.Copyright
	}

	if p.HomepageURL != nil {
		updated = true
		component.HomepageURL = *p.HomepageURL
	}

	if p.PrimaryLanguage != nil {
		updated = true
		component.PrimaryLanguage = *p.PrimaryLanguage
	}

	if p.LicenseExpression != nil {
		updated = true
		component.LicenseExpression = *p.LicenseExpression
	}

	if p.NoticeText != nil {
		updated = true
		component.NoticeText = *p.NoticeText
	}

	if p.IsActive != nil {
		updated = true
		component.IsActive = p.IsActive
	}

	if p.CurationLevel != nil {
		updated = true
		component.CurationLevel = *p.CurationLevel
	}

	if p.Guidance != nil {
		updated = true
		component.Guidance = *p.Guidance
	}

	if p.AdminNotes != nil {
		updated = true
		component.AdminNotes = *p.AdminNotes
	}

	return updated
}
