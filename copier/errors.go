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

package copier

import (
	"fmt"

	"github.com/aboutcode-org/dejacode/database"
)

// IntegrityError reports a uniqueness or foreign key violation raised while
// saving an object into the target dataspace.
type IntegrityError struct {
	Model  string
	Object string
	Err    error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity error while saving %s %q: %v", e.Model, e.Object, e.Err)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

type CycleError struct {
	Model  string
	Object string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("foreign key cycle detected at %s %q", e.Model, e.Object)
}

func wrapSaveError(spec *ModelSpec, obj Copyable, err error) error {
	if err == nil {
		return nil
	}
	if database.IsIntegrityViolation(err) {
		return &IntegrityError{Model: spec.Name, Object: obj.String(), Err: err}
	}
	return err
}
