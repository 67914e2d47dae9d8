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
	"strings"

	"github.com/aboutcode-org/dejacode/copier"
	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/licenses"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/aboutcode-org/dejacode/utils"
	"github.com/pkg/errors"
)

type componentService struct {
	*catalogService[models.Component, *models.Component]
	componentRepository shared.ComponentRepository
	licenseRepository   shared.LicenseRepository
}

var _ shared.ComponentService = (*componentService)(nil)

func NewComponentService(componentRepository shared.ComponentRepository, licenseRepository shared.LicenseRepository, historyService shared.HistoryService, registry *copier.Registry) *componentService {
	s := &componentService{
		catalogService:      newCatalogService[models.Component](componentRepository, historyService, registry),
		componentRepository: componentRepository,
		licenseRepository:   licenseRepository,
	}
	s.beforeSave = s.prepare
	s.afterSave = s.SyncAssignedLicenses
	return s
}

func (s *componentService) prepare(tx shared.DB, component *models.Component) error {
	component.Name = strings.TrimSpace(component.Name)
	component.Version = strings.TrimSpace(component.Version)
	if component.Name == "" {
		return newValidationError("name", "must not be empty")
	}

	expression, err := licenses.Normalize(component.LicenseExpression)
	if err != nil {
		return newValidationError("licenseExpression", "%s", err)
	}
	component.LicenseExpression = expression

	keys, err := licenses.Keys(expression)
	if err != nil {
		return newValidationError("licenseExpression", "%s", err)
	}
	known, err := s.licenseRepository.FindByKeys(tx, component.DataspaceID, keys)
	if err != nil {
		return errors.Wrap(err, "could not load licenses")
	}
	knownKeys := utils.Map(known, func(l models.License) string { return l.Key })
	if _, err := licenses.Validate(expression, func(key string) bool { return utils.Contains(knownKeys, key) }); err != nil {
		return newValidationError("licenseExpression", "%s", err)
	}

	component.CompletionLevel = component.ComputeCompletionLevel()
	return nil
}

// SyncAssignedLicenses rewrites the assigned licenses from the license expression.
func (s *componentService) SyncAssignedLicenses(tx shared.DB, component *models.Component) error {
	keys, err := licenses.Keys(component.LicenseExpression)
	if err != nil {
		return newValidationError("licenseExpression", "%s", err)
	}
	var assigned []models.License
	if len(keys) > 0 {
		assigned, err = s.licenseRepository.FindByKeys(tx, component.DataspaceID, keys)
		if err != nil {
			return errors.Wrap(err, "could not load licenses")
		}
	}
	return errors.Wrap(s.componentRepository.ReplaceAssignedLicenses(tx, component, assigned), "could not assign licenses")
}

// UpdateCompletionLevels recomputes the completion level of every component in
// the dataspace and returns how many changed.
func (s *componentService) UpdateCompletionLevels(ctx context.Context, dataspaceID uint, progress func()) (int, error) {
	components, err := s.componentRepository.FindByDataspace(nil, dataspaceID)
	if err != nil {
		return 0, errors.Wrap(err, "could not list components")
	}

	updated := 0
	for _, component := range components {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		if level := component.ComputeCompletionLevel(); level != component.CompletionLevel {
			if err := s.componentRepository.UpdateCompletionLevel(nil, component.ID, level); err != nil {
				return updated, errors.Wrapf(err, "could not update %s", component)
			}
			updated++
		}
		if progress != nil {
			progress()
		}
	}
	return updated, nil
}
