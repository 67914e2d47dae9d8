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

	"github.com/aboutcode-org/dejacode/copier"
	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/dtos"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const compareConcurrency = 4

type compareService struct {
	copyGuard
	db     shared.DB
	copier *copier.Copier
}

var _ shared.CompareService = (*compareService)(nil)

func NewCompareService(db shared.DB, c *copier.Copier, dataspaceRepository shared.DataspaceRepository, rbacProvider shared.RBACProvider) *compareService {
	return &compareService{
		copyGuard: copyGuard{
			dataspaceRepository: dataspaceRepository,
			rbacProvider:        rbacProvider,
			referenceDataspace:  shared.ReferenceDataspaceName(),
		},
		db:     db,
		copier: c,
	}
}

// Compare returns the differences between the requested source objects and
// their matches in the target, in the order the source objects were found.
func (s *compareService) Compare(ctx context.Context, user models.User, req dtos.CompareRequest) ([]copier.Comparison, error) {
	spec, ok := s.copier.Registry().SpecByName(req.Model)
	if !ok {
		return nil, newValidationError("model", "unknown model %q", req.Model)
	}

	var source, target models.Dataspace
	var loads errgroup.Group
	loads.Go(func() error {
		var err error
		source, err = s.readDataspace("source", req.Source)
		return err
	})
	loads.Go(func() error {
		var err error
		target, err = s.readDataspace("target", req.Target)
		return err
	})
	if err := loads.Wait(); err != nil {
		return nil, err
	}
	if err := s.check(user, source, target, shared.ActionRead); err != nil {
		return nil, err
	}

	objects, err := copier.LoadObjects(s.db.WithContext(ctx), spec, source.ID, req.UUIDs)
	if err != nil {
		return nil, errors.Wrap(err, "could not load source objects")
	}

	comparisons := make([]copier.Comparison, len(objects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(compareConcurrency)
	for i, obj := range objects {
		g.Go(func() error {
			cmp, err := s.copier.Compare(gctx, s.db.WithContext(gctx), obj, target.ID)
			if err != nil {
				return errors.Wrapf(err, "could not compare %s", obj)
			}
			comparisons[i] = cmp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return comparisons, nil
}
