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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/aboutcode-org/dejacode/copier"
	"github.com/aboutcode-org/dejacode/database"
	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
)

type dataspaceService struct {
	dataspaceRepository shared.DataspaceRepository
	rbacProvider        shared.RBACProvider
	registry            *copier.Registry
	policies            *copier.PolicyResolver
}

var _ shared.DataspaceService = (*dataspaceService)(nil)

func NewDataspaceService(dataspaceRepository shared.DataspaceRepository, rbacProvider shared.RBACProvider, registry *copier.Registry, policies *copier.PolicyResolver) *dataspaceService {
	return &dataspaceService{
		dataspaceRepository: dataspaceRepository,
		rbacProvider:        rbacProvider,
		registry:            registry,
		policies:            policies,
	}
}

// Create stores the dataspace with an empty configuration and sets up its roles.
func (s *dataspaceService) Create(ctx context.Context, dataspace *models.Dataspace) error {
	dataspace.Name = strings.TrimSpace(dataspace.Name)
	if dataspace.Name == "" {
		return newValidationError("name", "must not be empty")
	}

	err := s.dataspaceRepository.Transaction(func(tx shared.DB) error {
		if err := s.dataspaceRepository.Create(tx, dataspace); err != nil {
			if database.IsIntegrityViolation(err) {
				return &ConflictError{Object: dataspace.Name, Err: err}
			}
			return errors.Wrap(err, "could not create dataspace")
		}
		configuration, err := s.dataspaceRepository.ReadConfiguration(tx, dataspace.ID)
		if err != nil {
			return errors.Wrap(err, "could not read dataspace configuration")
		}
		return errors.Wrap(s.dataspaceRepository.SaveConfiguration(tx, &configuration), "could not save dataspace configuration")
	})
	if err != nil {
		return err
	}

	if err := shared.BootstrapDataspace(s.rbacProvider.GetDomainRBAC(dataspace.Slug)); err != nil {
		return errors.Wrap(err, "could not bootstrap dataspace permissions")
	}
	slog.Info("dataspace created", "name", dataspace.Name, "slug", dataspace.Slug)
	return nil
}

func (s *dataspaceService) ReadByName(name string) (models.Dataspace, error) {
	return s.dataspaceRepository.ReadByName(name)
}

// copyDefaultsFile is the yaml document read by ImportCopyDefaults. Both
// sections map an app name to a model name to a list of fields or "SKIP".
type copyDefaultsFile struct {
	CopyDefaults   map[string]map[string]any `yaml:"copy_defaults"`
	UpdateDefaults map[string]map[string]any `yaml:"update_defaults"`
}

// ImportCopyDefaults replaces the sections of the dataspace configuration present in the yaml document.
func (s *dataspaceService) ImportCopyDefaults(ctx context.Context, dataspace models.Dataspace, r io.Reader) (models.DataspaceConfiguration, error) {
	var file copyDefaultsFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return models.DataspaceConfiguration{}, newValidationError("file", "invalid yaml: %s", err)
	}

	copyDefaults, err := s.exclusionConfig("copy_defaults", file.CopyDefaults)
	if err != nil {
		return models.DataspaceConfiguration{}, err
	}
	updateDefaults, err := s.exclusionConfig("update_defaults", file.UpdateDefaults)
	if err != nil {
		return models.DataspaceConfiguration{}, err
	}

	var configuration models.DataspaceConfiguration
	err = s.dataspaceRepository.Transaction(func(tx shared.DB) error {
		configuration, err = s.dataspaceRepository.ReadConfiguration(tx, dataspace.ID)
		if err != nil {
			return errors.Wrap(err, "could not read dataspace configuration")
		}
		if copyDefaults != nil {
			configuration.CopyDefaults = datatypes.NewJSONType(copyDefaults)
		}
		if updateDefaults != nil {
			configuration.UpdateDefaults = datatypes.NewJSONType(updateDefaults)
		}
		return errors.Wrap(s.dataspaceRepository.SaveConfiguration(tx, &configuration), "could not save dataspace configuration")
	})
	if err != nil {
		return configuration, err
	}

	s.policies.Invalidate(dataspace.ID)
	return configuration, nil
}

// exclusionConfig validates one section of the yaml document. A missing section returns nil.
func (s *dataspaceService) exclusionConfig(section string, raw map[string]map[string]any) (models.ExclusionConfig, error) {
	if raw == nil {
		return nil, nil
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, newValidationError(section, "%s", err)
	}

	schema, err := compileCopyDefaultsSchema()
	if err != nil {
		return nil, errors.Wrap(err, "could not compile copy defaults schema")
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, newValidationError(section, "%s", err)
	}
	if err := schema.Validate(inst); err != nil {
		return nil, newValidationError(section, "%s", err)
	}

	var config models.ExclusionConfig
	if err := json.Unmarshal(b, &config); err != nil {
		return nil, newValidationError(section, "%s", err)
	}

	for app, entries := range config {
		for model := range entries {
			spec, ok := s.registry.SpecByName(model)
			if !ok || spec.App != app {
				return nil, newValidationError(section, "unknown model %s.%s", app, model)
			}
		}
	}
	return config, nil
}
