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
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/aboutcode-org/dejacode/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

var ErrSameDataspace = errors.New("the source and the target dataspace must be different")

type Status string

const (
	StatusCopied  Status = "copied"
	StatusUpdated Status = "updated"
	StatusNoop    Status = "noop"
)

type CopyOptions struct {
	// Update refreshes objects which are already matched in the target.
	Update    bool
	Overrides Overrides
}

type Result struct {
	Status Status
	Model  string
	// Object is the object in the target dataspace.
	Object  Copyable
	Changes []FieldChange
}

func (r Result) ChangedFields() []string {
	names := make([]string, 0, len(r.Changes))
	for _, c := range r.Changes {
		names = append(names, c.Field)
	}
	return names
}

type FieldChange struct {
	Field string `json:"field"`
	Old   any    `json:"old"`
	New   any    `json:"new"`
}

// Copier replicates object graphs from one dataspace into another.
type Copier struct {
	registry *Registry
	policies *PolicyResolver
}

func NewCopier(registry *Registry, policies *PolicyResolver) *Copier {
	return &Copier{
		registry: registry,
		policies: policies,
	}
}

func (c *Copier) Registry() *Registry {
	return c.registry
}

func (c *Copier) Policies() *PolicyResolver {
	return c.policies
}

// CopyObject copies obj into the target dataspace, or updates its match there when
// opts.Update is set. Every write goes through tx, the caller owns the transaction.
func (c *Copier) CopyObject(ctx context.Context, tx *gorm.DB, obj Copyable, targetDataspaceID uint, user *models.User, opts CopyOptions) (Result, error) {
	spec, ok := c.registry.SpecFor(obj)
	if !ok {
		return Result{}, fmt.Errorf("%T is not registered for copy", obj)
	}
	if obj.GetDataspaceID() == targetDataspaceID {
		return Result{}, ErrSameDataspace
	}

	w := &walk{
		Copier:     c,
		ctx:        ctx,
		tx:         tx,
		target:     targetDataspaceID,
		opts:       opts,
		inFlight:   make(map[objectKey]bool),
		done:       make(map[objectKey]Copyable),
		dataspaces: make(map[uint]string),
	}
	if user != nil {
		w.userID = &user.ID
	}
	return w.process(obj, spec, opts.Update)
}

type objectKey struct {
	table string
	id    uint
}

// walk holds the state of a single CopyObject call.
type walk struct {
	*Copier
	ctx        context.Context
	tx         *gorm.DB
	target     uint
	userID     *uint
	opts       CopyOptions
	inFlight   map[objectKey]bool
	done       map[objectKey]Copyable
	dataspaces map[uint]string
}

func (w *walk) process(src Copyable, spec *ModelSpec, update bool) (Result, error) {
	key := objectKey{table: spec.Table(), id: src.GetID()}
	if target, ok := w.done[key]; ok {
		return Result{Status: StatusNoop, Model: spec.Name, Object: target}, nil
	}
	if w.inFlight[key] {
		return Result{}, &CycleError{Model: spec.Name, Object: src.String()}
	}

	match, err := GetObjectIn(w.tx, src, w.target)
	if err != nil {
		return Result{}, err
	}

	switch {
	case match == nil:
		return w.copy(src, spec)
	case update:
		return w.update(src, match, spec)
	default:
		w.done[key] = match
		return Result{Status: StatusNoop, Model: spec.Name, Object: match}, nil
	}
}

func (w *walk) copy(src Copyable, spec *ModelSpec) (Result, error) {
	key := objectKey{table: spec.Table(), id: src.GetID()}
	w.inFlight[key] = true
	defer delete(w.inFlight, key)

	exclusion, err := w.policies.CopyExclusion(w.tx, w.target, spec, w.opts.Overrides)
	if err != nil {
		return Result{}, err
	}
	sch := spec.Schema()

	dst := newOfSameType(src)
	srcRV := reflect.Indirect(reflect.ValueOf(src))
	dstRV := reflect.Indirect(reflect.ValueOf(dst))
	dstRV.Set(srcRV)
	clearAssociations(w.ctx, sch, dstRV)

	for _, dbName := range sch.DBNames {
		field := sch.FieldsByDBName[dbName]
		if field.DBName == "uuid" {
			continue
		}
		if exclusion.Excludes(field) || isAlwaysExcluded(field) {
			resetToDefault(w.ctx, field, dstRV)
		}
	}
	dst.ResetPrimaryKey()
	dst.SetDataspaceID(w.target)
	dst.SetCreatedBy(w.userID)

	for _, rel := range sch.Relationships.BelongsTo {
		fk := rel.References[0].ForeignKey
		if exclusion.Excludes(fk) || isAlwaysExcluded(fk) {
			continue
		}
		if err := w.resolveForeignKey(spec, rel, fk, srcRV, dstRV); err != nil {
			return Result{}, err
		}
	}

	if err := w.tx.Omit(clause.Associations).Create(dst).Error; err != nil {
		return Result{}, wrapSaveError(spec, dst, err)
	}
	w.done[key] = dst
	delete(w.inFlight, key)

	if spec.LogHistory {
		message := fmt.Sprintf("Copied from the %q dataspace.", w.dataspaceName(src.GetDataspaceID()))
		if err := w.logHistory(spec, dst, models.ActionAddition, message, nil); err != nil {
			return Result{}, err
		}
	}

	if err := w.walkRelations(src, spec, w.opts.Update, false); err != nil {
		return Result{}, err
	}

	return Result{Status: StatusCopied, Model: spec.Name, Object: dst}, nil
}

func (w *walk) update(src, dst Copyable, spec *ModelSpec) (Result, error) {
	key := objectKey{table: spec.Table(), id: src.GetID()}
	w.done[key] = dst

	exclusion, err := w.policies.UpdateExclusion(w.tx, w.target, spec, w.opts.Overrides)
	if err != nil {
		return Result{}, err
	}
	sch := spec.Schema()
	srcRV := reflect.Indirect(reflect.ValueOf(src))
	dstRV := reflect.Indirect(reflect.ValueOf(dst))
	foreignKeys := foreignKeyColumns(sch)

	var changes []FieldChange
	for _, dbName := range sch.DBNames {
		field := sch.FieldsByDBName[dbName]
		if field.PrimaryKey || isAlwaysExcluded(field) || exclusion.Excludes(field) || foreignKeys[dbName] != nil {
			continue
		}
		sv := field.ReflectValueOf(w.ctx, srcRV)
		tv := field.ReflectValueOf(w.ctx, dstRV)
		if isNullableBool(field) && sv.IsNil() && !tv.IsNil() {
			// an unknown source value never overwrites a known one
			continue
		}
		if reflect.DeepEqual(sv.Interface(), tv.Interface()) {
			continue
		}
		changes = append(changes, FieldChange{Field: dbName, Old: tv.Interface(), New: sv.Interface()})
		tv.Set(sv)
	}

	for _, rel := range sch.Relationships.BelongsTo {
		fk := rel.References[0].ForeignKey
		if exclusion.Excludes(fk) || isAlwaysExcluded(fk) {
			continue
		}
		tv := fk.ReflectValueOf(w.ctx, dstRV)
		before, _ := uintOf(tv)
		if err := w.resolveForeignKey(spec, rel, fk, srcRV, dstRV); err != nil {
			return Result{}, err
		}
		after, _ := uintOf(tv)
		if before != after {
			changes = append(changes, FieldChange{Field: fk.DBName, Old: before, New: after})
		}
	}

	if len(changes) > 0 {
		dst.SetLastModifiedBy(w.userID)
		if err := w.tx.Omit(clause.Associations).Save(dst).Error; err != nil {
			return Result{}, wrapSaveError(spec, dst, err)
		}

		if spec.LogHistory {
			result := Result{Changes: changes}
			message := fmt.Sprintf("Changed %s.", strings.Join(result.ChangedFields(), ", "))
			data := map[string]any{
				"source_dataspace": w.dataspaceName(src.GetDataspaceID()),
				"changes":          changes,
			}
			if err := w.logHistory(spec, dst, models.ActionChange, message, data); err != nil {
				return Result{}, err
			}
		}
	}

	if err := w.walkRelations(src, spec, true, true); err != nil {
		return Result{}, err
	}

	return Result{Status: StatusUpdated, Model: spec.Name, Object: dst, Changes: changes}, nil
}

// resolveForeignKey points the foreign key of dst to the match, or the copy, of the
// object the source references.
func (w *walk) resolveForeignKey(spec *ModelSpec, rel *schema.Relationship, fk *schema.Field, srcRV, dstRV reflect.Value) error {
	tv := fk.ReflectValueOf(w.ctx, dstRV)
	id, ok := uintOf(fk.ReflectValueOf(w.ctx, srcRV))
	if !ok {
		tv.Set(reflect.Zero(tv.Type()))
		return nil
	}

	relSpec, registered := w.registry.SpecForType(rel.FieldSchema.ModelType)
	if !registered {
		if tv.Kind() == reflect.Ptr {
			tv.Set(reflect.Zero(tv.Type()))
			return nil
		}
		return fmt.Errorf("%s.%s references %s which cannot be copied", spec.Name, fk.DBName, rel.FieldSchema.Name)
	}

	ref := relSpec.New()
	res := w.tx.Where("id = ?", id).Limit(1).Find(ref)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s.%s references the missing %s %d", spec.Name, fk.DBName, relSpec.Name, id)
	}

	resolved, err := w.process(ref, relSpec, false)
	if err != nil {
		return err
	}
	setUint(tv, resolved.Object.GetID())
	return nil
}

func (w *walk) walkRelations(src Copyable, spec *ModelSpec, update bool, parentUpdated bool) error {
	for _, rel := range spec.Relations {
		relationship := spec.Schema().Relationships.Relations[rel.Field]
		childSpec, ok := w.registry.SpecForType(relationship.FieldSchema.ModelType)
		if !ok {
			continue
		}

		var exclusion Exclusion
		var err error
		if parentUpdated {
			exclusion, err = w.policies.UpdateExclusion(w.tx, w.target, childSpec, w.opts.Overrides)
		} else {
			exclusion, err = w.policies.CopyExclusion(w.tx, w.target, childSpec, w.opts.Overrides)
		}
		if err != nil {
			return err
		}
		if exclusion.Kind == SkipEntirely {
			continue
		}

		children, err := loadChildren(w.tx, relationship, childSpec, src.GetID())
		if err != nil {
			return err
		}
		for _, child := range children {
			if _, err := w.process(child, childSpec, update); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *walk) logHistory(spec *ModelSpec, obj Copyable, flag models.ActionFlag, message string, data any) error {
	h, err := models.NewHistory(w.target, spec.ContentType(), obj.GetID(), obj.String(), flag, message, data, w.userID)
	if err != nil {
		return err
	}
	return w.tx.Create(&h).Error
}

func (w *walk) dataspaceName(id uint) string {
	if name, ok := w.dataspaces[id]; ok {
		return name
	}
	var dataspace models.Dataspace
	if err := w.tx.Select("id", "name").Where("id = ?", id).Limit(1).Find(&dataspace).Error; err != nil || dataspace.Name == "" {
		return fmt.Sprintf("#%d", id)
	}
	w.dataspaces[id] = dataspace.Name
	return dataspace.Name
}

func loadChildren(tx *gorm.DB, relationship *schema.Relationship, childSpec *ModelSpec, parentID uint) ([]Copyable, error) {
	fk := relationship.References[0].ForeignKey
	slice := reflect.New(reflect.SliceOf(reflect.PointerTo(childSpec.Schema().ModelType)))
	err := tx.Where(clause.Eq{Column: clause.Column{Name: fk.DBName}, Value: parentID}).Order("id").Find(slice.Interface()).Error
	if err != nil {
		return nil, err
	}

	rows := slice.Elem()
	children := make([]Copyable, 0, rows.Len())
	for i := 0; i < rows.Len(); i++ {
		children = append(children, rows.Index(i).Interface().(Copyable))
	}
	return children, nil
}

func foreignKeyColumns(sch *schema.Schema) map[string]*schema.Relationship {
	fks := make(map[string]*schema.Relationship, len(sch.Relationships.BelongsTo))
	for _, rel := range sch.Relationships.BelongsTo {
		fks[rel.References[0].ForeignKey.DBName] = rel
	}
	return fks
}

func clearAssociations(ctx context.Context, sch *schema.Schema, rv reflect.Value) {
	for _, rel := range sch.Relationships.Relations {
		// the shared schema cache also lists back-references owned by other schemas
		if rel.Field.Schema != sch {
			continue
		}
		fv := rel.Field.ReflectValueOf(ctx, rv)
		fv.Set(reflect.Zero(fv.Type()))
	}
}

// resetToDefault sets the field to its declared column default, or its zero value.
func resetToDefault(ctx context.Context, field *schema.Field, rv reflect.Value) {
	fv := field.ReflectValueOf(ctx, rv)
	if field.HasDefaultValue && field.DefaultValueInterface != nil {
		def := reflect.ValueOf(field.DefaultValueInterface)
		if def.Type().ConvertibleTo(fv.Type()) {
			fv.Set(def.Convert(fv.Type()))
			return
		}
	}
	fv.Set(reflect.Zero(fv.Type()))
}

var nullableBool = reflect.TypeOf((*bool)(nil))

func isNullableBool(field *schema.Field) bool {
	return field.FieldType == nullableBool
}

func uintOf(v reflect.Value) (uint, bool) {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return 0, false
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return uint(v.Uint()), v.Uint() != 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uint(v.Int()), v.Int() != 0
	}
	return 0, false
}

func setUint(v reflect.Value, id uint) {
	if v.Kind() == reflect.Ptr {
		p := reflect.New(v.Type().Elem())
		setUint(p.Elem(), id)
		v.Set(p)
		return
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.SetInt(int64(id))
	default:
		v.SetUint(uint64(id))
	}
}
