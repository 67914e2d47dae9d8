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
	"log/slog"
	"time"

	"github.com/aboutcode-org/dejacode/copier"
	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/dtos"
	"github.com/aboutcode-org/dejacode/monitoring"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/aboutcode-org/dejacode/transformer"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// copyGuard decides which dataspaces a user may copy between.
type copyGuard struct {
	dataspaceRepository shared.DataspaceRepository
	rbacProvider        shared.RBACProvider
	referenceDataspace  string
}

func (g copyGuard) check(user models.User, source, target models.Dataspace, action shared.Action) error {
	if source.ID == target.ID {
		return copier.ErrSameDataspace
	}

	own := user.Dataspace
	if own == nil {
		ds, err := g.dataspaceRepository.Read(user.DataspaceID)
		if err != nil {
			return errors.Wrap(err, "could not read the dataspace of the user")
		}
		own = &ds
	}

	allowed, err := g.rbacProvider.GetDomainRBAC(own.Slug).IsAllowed(user.Username, shared.ObjectCopy, action)
	if err != nil {
		return errors.Wrap(err, "could not check permissions")
	}
	if !allowed {
		return errors.Wrapf(ErrPermissionDenied, "%s may not copy", user.Username)
	}

	// users of the reference dataspace copy between any two dataspaces
	if own.IsReference(g.referenceDataspace) {
		return nil
	}
	if source.IsReference(g.referenceDataspace) && target.ID == own.ID {
		return nil
	}
	return errors.Wrapf(ErrPermissionDenied, "%s may not copy from %s to %s", user.Username, source.Name, target.Name)
}

func (g copyGuard) dataspaces(sourceName, targetName string) (models.Dataspace, models.Dataspace, error) {
	source, err := g.readDataspace("source", sourceName)
	if err != nil {
		return source, models.Dataspace{}, err
	}
	target, err := g.readDataspace("target", targetName)
	return source, target, err
}

func (g copyGuard) readDataspace(field, name string) (models.Dataspace, error) {
	ds, err := g.dataspaceRepository.ReadByName(name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ds, newValidationError(field, "unknown dataspace %q", name)
	}
	return ds, errors.Wrap(err, "could not read dataspace")
}

type copyService struct {
	copyGuard
	db     shared.DB
	copier *copier.Copier
}

var _ shared.CopyService = (*copyService)(nil)

func NewCopyService(db shared.DB, c *copier.Copier, dataspaceRepository shared.DataspaceRepository, rbacProvider shared.RBACProvider) *copyService {
	return &copyService{
		copyGuard: copyGuard{
			dataspaceRepository: dataspaceRepository,
			rbacProvider:        rbacProvider,
			referenceDataspace:  shared.ReferenceDataspaceName(),
		},
		db:     db,
		copier: c,
	}
}

func (s *copyService) CheckPermission(user models.User, source, target models.Dataspace) error {
	return s.check(user, source, target, shared.ActionCreate)
}

// CopyBatch copies or updates every requested object in its own transaction.
// A failing object is reported and never aborts the batch.
func (s *copyService) CopyBatch(ctx context.Context, user models.User, req dtos.CopyRequest) (dtos.CopyReport, error) {
	report := dtos.NewCopyReport(req.Model, req.Source, req.Target)

	spec, ok := s.copier.Registry().SpecByName(req.Model)
	if !ok {
		return report, newValidationError("model", "unknown model %q", req.Model)
	}
	overrides, err := s.overrides(req.Model, req.Exclude)
	if err != nil {
		return report, err
	}
	source, target, err := s.dataspaces(req.Source, req.Target)
	if err != nil {
		return report, err
	}
	if err := s.CheckPermission(user, source, target); err != nil {
		return report, err
	}

	start := time.Now()
	defer func() {
		monitoring.CopyBatchDuration.Observe(time.Since(start).Seconds())
	}()

	db := s.db.WithContext(ctx)
	objects, err := copier.LoadObjects(db, spec, source.ID, req.UUIDs)
	if err != nil {
		return report, errors.Wrap(err, "could not load source objects")
	}
	byUUID := make(map[uuid.UUID]copier.Copyable, len(objects))
	for _, obj := range objects {
		byUUID[obj.GetUUID()] = obj
	}

	opts := copier.CopyOptions{Update: req.Update, Overrides: overrides}
	for _, id := range req.UUIDs {
		obj, ok := byUUID[id]
		if !ok {
			report.Errors = append(report.Errors, dtos.CopyErrorDTO{UUID: id, Error: "not found in " + source.Name})
			monitoring.CopyObjectsTotal.WithLabelValues(spec.Name, "error").Inc()
			continue
		}

		var result copier.Result
		err := db.Transaction(func(tx *gorm.DB) error {
			var err error
			result, err = s.copier.CopyObject(ctx, tx, obj, target.ID, &user, opts)
			return err
		})
		if err != nil {
			slog.Warn("could not copy object", "model", spec.Name, "object", obj.String(), "target", target.Name, "err", err)
			report.Errors = append(report.Errors, dtos.CopyErrorDTO{UUID: id, Repr: obj.String(), Error: err.Error()})
			monitoring.CopyObjectsTotal.WithLabelValues(spec.Name, "error").Inc()
			continue
		}

		monitoring.CopyObjectsTotal.WithLabelValues(spec.Name, string(result.Status)).Inc()
		copied := transformer.CopyResultToDTO(result)
		switch result.Status {
		case copier.StatusCopied:
			report.Copied = append(report.Copied, copied)
		case copier.StatusUpdated:
			report.Updated = append(report.Updated, copied)
		default:
			report.Skipped = append(report.Skipped, copied)
		}
	}

	slog.Info("copy batch done", "model", spec.Name, "source", source.Name, "target", target.Name,
		"copied", len(report.Copied), "updated", len(report.Updated), "skipped", len(report.Skipped), "errors", len(report.Errors))
	return report, nil
}

// overrides converts the requested exclusions. SKIP only applies to related
// models, so it is rejected for the model being copied.
func (s *copyService) overrides(model string, exclude map[string]models.ExclusionEntry) (copier.Overrides, error) {
	if len(exclude) == 0 {
		return nil, nil
	}
	overrides := make(copier.Overrides, len(exclude))
	for name, entry := range exclude {
		if _, ok := s.copier.Registry().SpecByName(name); !ok {
			return nil, newValidationError("exclude", "unknown model %q", name)
		}
		if entry.Skip && name == model {
			return nil, newValidationError("exclude", "the copied model %q cannot be skipped", name)
		}
		overrides[name] = copier.ExclusionFromEntry(entry)
	}
	return overrides, nil
}
