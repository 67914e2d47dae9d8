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

	"github.com/aboutcode-org/dejacode/copier"
	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/normalize"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/pkg/errors"
)

type packageService struct {
	*catalogService[models.Package, *models.Package]
	packageRepository shared.PackageRepository
}

var _ shared.PackageService = (*packageService)(nil)

func NewPackageService(packageRepository shared.PackageRepository, historyService shared.HistoryService, registry *copier.Registry) *packageService {
	s := &packageService{
		catalogService:    newCatalogService[models.Package](packageRepository, historyService, registry),
		packageRepository: packageRepository,
	}
	s.beforeSave = func(tx shared.DB, pkg *models.Package) error {
		if pkg.Filename == "" && pkg.DownloadURL == "" && !pkg.HasPackageURL() {
			return newValidationError("filename", "a filename, a download url or a package url is required")
		}
		inferPackageURL(pkg)
		return nil
	}
	return s
}

// inferPackageURL fills the purl fields from the download url when they are empty.
func inferPackageURL(pkg *models.Package) bool {
	if pkg.HasPackageURL() || pkg.DownloadURL == "" {
		return false
	}
	purl, ok := normalize.PackageURLFromDownloadURL(pkg.DownloadURL)
	if !ok {
		return false
	}
	pkg.Type = purl.Type
	pkg.Namespace = purl.Namespace
	pkg.Name = purl.Name
	pkg.Version = purl.Version
	pkg.Qualifiers = purl.Qualifiers.String()
	pkg.Subpath = purl.Subpath
	return true
}

// SetPackageURLs infers the purl of every package of the dataspace which has a
// download url but no purl yet. It returns the number of updated packages.
func (s *packageService) SetPackageURLs(ctx context.Context, dataspaceID uint, progress func()) (int, error) {
	packages, err := s.packageRepository.FindWithoutPackageURL(nil, dataspaceID)
	if err != nil {
		return 0, errors.Wrap(err, "could not list packages")
	}
	spec, ok := s.registry.SpecFor(&models.Package{})
	if !ok {
		return 0, errors.New("package is not registered")
	}

	updated := 0
	for i := range packages {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		pkg := &packages[i]
		before := *pkg
		if inferPackageURL(pkg) {
			err := s.packageRepository.Transaction(func(tx shared.DB) error {
				if err := s.packageRepository.Save(tx, pkg); err != nil {
					return conflictOr(pkg, err, "could not save package")
				}
				return s.historyService.LogChange(tx, nil, pkg, copier.Diff(ctx, spec, &before, pkg))
			})
			if err != nil {
				// a package with the same purl may already exist, keep going
				slog.Warn("could not set package url", "package", before.String(), "err", err)
			} else {
				updated++
			}
		}
		if progress != nil {
			progress()
		}
	}
	return updated, nil
}
