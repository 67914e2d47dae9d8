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
	"reflect"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetObjectIn returns the object of the same type and uuid in the dataspace, or nil.
func GetObjectIn(tx *gorm.DB, obj Copyable, dataspaceID uint) (Copyable, error) {
	match := newOfSameType(obj)
	res := tx.Where("dataspace_id = ? AND uuid = ?", dataspaceID, obj.GetUUID()).Limit(1).Find(match)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return match, nil
}

func newOfSameType(obj Copyable) Copyable {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return reflect.New(t).Interface().(Copyable)
}

// LoadObjects loads the objects of the given model with the given uuids from a dataspace.
// Unknown uuids are silently missing from the result.
func LoadObjects(tx *gorm.DB, spec *ModelSpec, dataspaceID uint, uuids []uuid.UUID) ([]Copyable, error) {
	t := reflect.TypeOf(spec.New()).Elem()
	rows := reflect.New(reflect.SliceOf(t))
	if err := tx.Where("dataspace_id = ? AND uuid IN ?", dataspaceID, uuids).Find(rows.Interface()).Error; err != nil {
		return nil, err
	}
	slice := rows.Elem()
	objects := make([]Copyable, 0, slice.Len())
	for i := 0; i < slice.Len(); i++ {
		objects = append(objects, slice.Index(i).Addr().Interface().(Copyable))
	}
	return objects, nil
}
