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
	"fmt"

	"github.com/aboutcode-org/dejacode/copier"
	"github.com/aboutcode-org/dejacode/database"
	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/aboutcode-org/dejacode/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
)

// ConflictError is returned when a write violates a uniqueness or a foreign key constraint.
type ConflictError struct {
	Object string
	Err    error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflicts with existing data", e.Object)
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

// ValidationError rejects an object before it reaches the database.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// copyablePtr is satisfied by the pointer to a catalog model.
type copyablePtr[T any] interface {
	*T
	copier.Copyable
}

type hook[T any] func(tx shared.DB, obj *T) error

// catalogService writes a catalog model and its history in one transaction.
type catalogService[T utils.Tabler, PT copyablePtr[T]] struct {
	repository     shared.DataspacedRepository[T]
	historyService shared.HistoryService
	registry       *copier.Registry

	beforeSave hook[T]
	afterSave  hook[T]
}

func newCatalogService[T utils.Tabler, PT copyablePtr[T]](repository shared.DataspacedRepository[T], historyService shared.HistoryService, registry *copier.Registry) *catalogService[T, PT] {
	return &catalogService[T, PT]{
		repository:     repository,
		historyService: historyService,
		registry:       registry,
	}
}

func (s *catalogService[T, PT]) Create(ctx context.Context, user models.User, obj *T) error {
	p := PT(obj)
	if p.GetDataspaceID() == 0 {
		p.SetDataspaceID(user.DataspaceID)
	}
	p.SetCreatedBy(&user.ID)

	return s.repository.Transaction(func(tx shared.DB) error {
		if err := s.runHook(s.beforeSave, tx, obj); err != nil {
			return err
		}
		if err := s.repository.Create(tx, obj); err != nil {
			return conflictOr(p, err, "could not create object")
		}
		if err := s.runHook(s.afterSave, tx, obj); err != nil {
			return err
		}
		return s.historyService.LogAddition(tx, &user, p)
	})
}

func (s *catalogService[T, PT]) Update(ctx context.Context, user models.User, obj *T) error {
	p := PT(obj)
	spec, ok := s.registry.SpecFor(p)
	if !ok {
		return fmt.Errorf("%T is not registered", obj)
	}

	return s.repository.Transaction(func(tx shared.DB) error {
		stored, err := s.repository.ReadByUUID(tx, p.GetDataspaceID(), p.GetUUID())
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrapf(ErrNotFound, "%s %s", spec.Name, p.GetUUID())
		} else if err != nil {
			return errors.Wrap(err, "could not read stored object")
		}
		if err := s.runHook(s.beforeSave, tx, obj); err != nil {
			return err
		}

		changes := copier.Diff(ctx, spec, PT(&stored), p)
		if len(changes) == 0 {
			return nil
		}

		p.SetLastModifiedBy(&user.ID)
		if err := s.repository.Save(tx, obj); err != nil {
			return conflictOr(p, err, "could not save object")
		}
		if err := s.runHook(s.afterSave, tx, obj); err != nil {
			return err
		}
		return s.historyService.LogChange(tx, &user, p, changes)
	})
}

func (s *catalogService[T, PT]) Delete(ctx context.Context, user models.User, obj *T) error {
	p := PT(obj)
	return s.repository.Transaction(func(tx shared.DB) error {
		// the history entry survives the object
		if err := s.historyService.LogDeletion(tx, &user, p); err != nil {
			return err
		}
		if err := s.repository.Delete(tx, p.GetID()); err != nil {
			return conflictOr(p, err, "could not delete object")
		}
		return nil
	})
}

func (s *catalogService[T, PT]) runHook(h hook[T], tx shared.DB, obj *T) error {
	if h == nil {
		return nil
	}
	return h(tx, obj)
}

func conflictOr(obj copier.Copyable, err error, message string) error {
	if database.IsIntegrityViolation(err) {
		return &ConflictError{Object: obj.String(), Err: err}
	}
	return errors.Wrap(err, message)
}
