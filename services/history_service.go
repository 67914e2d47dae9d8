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
	"fmt"
	"strings"

	"github.com/aboutcode-org/dejacode/copier"
	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/aboutcode-org/dejacode/utils"
	"github.com/pkg/errors"
)

type historyService struct {
	historyRepository shared.HistoryRepository
	registry          *copier.Registry
}

func NewHistoryService(historyRepository shared.HistoryRepository, registry *copier.Registry) *historyService {
	return &historyService{
		historyRepository: historyRepository,
		registry:          registry,
	}
}

func (s *historyService) LogAddition(tx shared.DB, user *models.User, obj copier.Copyable) error {
	return s.log(tx, user, obj, models.ActionAddition, "Added.", nil)
}

func (s *historyService) LogChange(tx shared.DB, user *models.User, obj copier.Copyable, changes []copier.FieldChange) error {
	if len(changes) == 0 {
		return nil
	}
	fields := utils.Map(changes, func(c copier.FieldChange) string { return c.Field })
	message := fmt.Sprintf("Changed %s.", strings.Join(fields, ", "))
	return s.log(tx, user, obj, models.ActionChange, message, map[string]any{"changes": changes})
}

func (s *historyService) LogDeletion(tx shared.DB, user *models.User, obj copier.Copyable) error {
	return s.log(tx, user, obj, models.ActionDeletion, "Deleted.", nil)
}

func (s *historyService) ListForObject(obj copier.Copyable) ([]models.History, error) {
	spec, ok := s.registry.SpecFor(obj)
	if !ok {
		return nil, fmt.Errorf("%T has no history", obj)
	}
	return s.historyRepository.ListForObject(spec.ContentType(), obj.GetID())
}

func (s *historyService) log(tx shared.DB, user *models.User, obj copier.Copyable, flag models.ActionFlag, message string, data any) error {
	spec, ok := s.registry.SpecFor(obj)
	if !ok {
		return fmt.Errorf("%T has no history", obj)
	}
	var userID *uint
	if user != nil {
		userID = &user.ID
	}
	entry, err := models.NewHistory(obj.GetDataspaceID(), spec.ContentType(), obj.GetID(), obj.String(), flag, message, data, userID)
	if err != nil {
		return errors.Wrap(err, "could not serialize history data")
	}
	return errors.Wrap(s.historyRepository.Create(tx, &entry), "could not write history")
}
