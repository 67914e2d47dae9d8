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
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type FieldDiff struct {
	Field  string `json:"field"`
	Source any    `json:"source"`
	Target any    `json:"target"`
}

type Comparison struct {
	Model  string      `json:"model"`
	Source Copyable    `json:"source"`
	Target Copyable    `json:"target,omitempty"`
	Diffs  []FieldDiff `json:"diffs"`
}

func (c Comparison) Matched() bool {
	return c.Target != nil
}

// Compare lists the columns of obj which differ from its match in the target dataspace.
// Foreign keys are compared by the uuid of the referenced objects.
func (c *Copier) Compare(ctx context.Context, tx *gorm.DB, obj Copyable, targetDataspaceID uint) (Comparison, error) {
	spec, ok := c.registry.SpecFor(obj)
	if !ok {
		return Comparison{}, fmt.Errorf("%T is not registered for copy", obj)
	}

	cmp := Comparison{Model: spec.Name, Source: obj, Diffs: []FieldDiff{}}
	match, err := GetObjectIn(tx, obj, targetDataspaceID)
	if err != nil {
		return cmp, err
	}
	if match == nil {
		return cmp, nil
	}
	cmp.Target = match

	sch := spec.Schema()
	foreignKeys := foreignKeyColumns(sch)
	srcRV := reflect.Indirect(reflect.ValueOf(obj))
	dstRV := reflect.Indirect(reflect.ValueOf(match))

	for _, dbName := range sch.DBNames {
		field := sch.FieldsByDBName[dbName]
		if field.PrimaryKey || isAlwaysExcluded(field) {
			continue
		}
		sv := field.ReflectValueOf(ctx, srcRV)
		tv := field.ReflectValueOf(ctx, dstRV)

		if rel, ok := foreignKeys[dbName]; ok {
			su, err := referencedUUID(tx, rel, sv)
			if err != nil {
				return cmp, err
			}
			tu, err := referencedUUID(tx, rel, tv)
			if err != nil {
				return cmp, err
			}
			if su != tu {
				cmp.Diffs = append(cmp.Diffs, FieldDiff{Field: dbName, Source: uuidOrNil(su), Target: uuidOrNil(tu)})
			}
			continue
		}

		if !reflect.DeepEqual(sv.Interface(), tv.Interface()) {
			cmp.Diffs = append(cmp.Diffs, FieldDiff{Field: dbName, Source: sv.Interface(), Target: tv.Interface()})
		}
	}
	return cmp, nil
}

func referencedUUID(tx *gorm.DB, rel *schema.Relationship, v reflect.Value) (uuid.UUID, error) {
	id, ok := uintOf(v)
	if !ok {
		return uuid.Nil, nil
	}
	var uuids []uuid.UUID
	if err := tx.Table(rel.FieldSchema.Table).Where("id = ?", id).Limit(1).Pluck("uuid", &uuids).Error; err != nil {
		return uuid.Nil, err
	}
	if len(uuids) == 0 {
		return uuid.Nil, nil
	}
	return uuids[0], nil
}

func uuidOrNil(id uuid.UUID) any {
	if id == uuid.Nil {
		return nil
	}
	return id.String()
}
