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

func PackageCreateRequestToModel(c dtos.PackageCreateRequest, dataspaceID uint) (models.Package, error) {
	pkg := models.Package{
		DownloadURL:       c.DownloadURL,
		Filename:          c.Filename,
		SHA1:              c.SHA1,
		MD5:               c.MD5,
		Size:              c.Size,
		LicenseExpression: c.LicenseExpression,
		Copyright:         c.Copyright,
		PrimaryLanguage:   c.PrimaryLanguage,
	}
	pkg.DataspaceID = dataspaceID
	if c.PackageURL != "" {
		if err := pkg.SetPackageURL(c.PackageURL); err != nil {
			return pkg, err
		}
	}
	return pkg, nil
}

func ApplyPackagePatchRequestToModel(p dtos.PackagePatchRequest, pkg *models.Package) (bool, error) {
	updated := false

	if p.DownloadURL != nil {
		updated = true
		pkg.DownloadURL = *p.DownloadURL
	}

	if p.Filename != nil {
		updated = true
		pkg.Filename = *p.Filename
	}

	if p.PackageURL != nil {
		updated = true
		if *p.PackageURL == "" {
			pkg.Type, pkg.Namespace, pkg.Name, pkg.Version, pkg.Qualifiers, pkg.Subpath = "", "", "", "", "", ""
		} else if err := pkg.SetPackageURL(*p.PackageURL); err != nil {
			return false, err
		}
	}

	if p.SHA1 != nil {
		updated = true
		pkg.SHA1 = *p.SHA1
	}

	if p.MD5 != nil {
		updated = true
		pkg.MD5 = *p.MD5
	}

	if p.Size != nil {
		updated = true
		pkg.Size = p.Size
	}

	if p.LicenseExpression != nil {
		updated = true
		pkg.LicenseExpression = *p.LicenseExpression
	}

	if p.Copyright != nil {
		updated = true
		pkg.Copyright = *p.Copyright
	}

	if p.PrimaryLanguage != nil {
		updated = true
		pkg.PrimaryLanguage = *p.PrimaryLanguage
	}

	return updated, nil
}
