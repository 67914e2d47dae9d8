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
	"context"
	"reflect"
)

// Diff lists the columns whose value differs between two versions of the same
// object. Primary and audit columns are ignored.
func Diff(ctx context.Context, spec *ModelSpec, before, after Copyable) []FieldChange {
	sch := spec.Schema()
	beforeRV := reflect.Indirect(reflect.ValueOf(before))
	afterRV := reflect.Indirect(reflect.ValueOf(after))

	changes := []FieldChange{}
	for _, dbName := range sch.DBNames {
		field := sch.FieldsByDBName[dbName]
		if field.PrimaryKey || isAlwaysExcluded(field) {
			continue
		}
		old := field.ReflectValueOf(ctx, beforeRV).Interface()
		cur := field.ReflectValueOf(ctx, afterRV).Interface()
		if !reflect.DeepEqual(old, cur) {
			changes = append(changes, FieldChange{Field: dbName, Old: old, New: cur})
		}
	}
	return changes
}
