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
	"log/slog"
	"strings"

	"github.com/aboutcode-org/dejacode/copier"
	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/licenses"
	"github.com/aboutcode-org/dejacode/shared"
)

type licenseService struct {
	*catalogService[models.License, *models.License]
}

var _ shared.LicenseService = (*licenseService)(nil)

func NewLicenseService(licenseRepository shared.LicenseRepository, historyService shared.HistoryService, registry *copier.Registry) *licenseService {
	s := &licenseService{
		catalogService: newCatalogService[models.License](licenseRepository, historyService, registry),
	}
	s.beforeSave = s.prepare
	return s
}

func (s *licenseService) prepare(tx shared.DB, license *models.License) error {
	license.Key = strings.TrimSpace(license.Key)
	license.Name = strings.TrimSpace(license.Name)
	license.ShortName = strings.TrimSpace(license.ShortName)

	if !licenses.IsValidKey(license.Key) {
		return newValidationError("key", "%q can not be used in a license expression", license.Key)
	}
	if license.Name == "" {
		return newValidationError("name", "must not be empty")
	}
	if license.ShortName == "" {
		return newValidationError("shortName", "must not be empty")
	}
	if license.OwnerID == 0 {
		return newValidationError("owner", "is required")
	}

	if license.SPDXLicenseKey == "" {
		if key, ok := s.SuggestSPDXKey(*license); ok {
			slog.Debug("detected spdx license key", "license", license.Key, "spdx", key)
			license.SPDXLicenseKey = key
		}
	}
	return nil
}

func (s *licenseService) SuggestSPDXKey(license models.License) (string, bool) {
	return licenses.DetectSPDXKey(license.FullText)
}
