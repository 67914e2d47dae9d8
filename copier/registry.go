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
	"reflect"
	"sort"
	"sync"

	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/google/uuid"
	"gorm.io/gorm/schema"
)

// Copyable is implemented by every dataspaced model.
type Copyable interface {
	GetID() uint
	GetUUID() uuid.UUID
	GetDataspaceID() uint
	SetDataspaceID(id uint)
	ResetPrimaryKey()
	SetCreatedBy(userID *uint)
	SetLastModifiedBy(userID *uint)
	String() string
}

type RelationKind int

const (
	OneToMany RelationKind = iota
	ManyToManyThrough
)

func (k RelationKind) String() string {
	if k == ManyToManyThrough {
		return "many-to-many"
	}
	return "one-to-many"
}

// Relation names a has-many association field whose rows are copied after their parent.
type Relation struct {
	Field string
	Kind  RelationKind
}

type ModelSpec struct {
	App        string
	Name       string
	New        func() Copyable
	LogHistory bool
	Relations  []Relation

	schema *schema.Schema
}

func (s *ModelSpec) ContentType() string {
	return s.App + "." + s.Name
}

func (s *ModelSpec) Schema() *schema.Schema {
	return s.schema
}

func (s *ModelSpec) Table() string {
	return s.schema.Table
}

// Registry maps model types to their copy descriptors.
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]*ModelSpec
	byName map[string]*ModelSpec
	cache  *sync.Map
	namer  schema.Namer
}

func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]*ModelSpec),
		byName: make(map[string]*ModelSpec),
		cache:  &sync.Map{},
		namer:  schema.NamingStrategy{},
	}
}

// Register parses the gorm schema of the model and validates the declared relations.
func (r *Registry) Register(spec ModelSpec) error {
	if spec.New == nil {
		return fmt.Errorf("model %s has no constructor", spec.Name)
	}
	obj := spec.New()
	sch, err := schema.Parse(obj, r.cache, r.namer)
	if err != nil {
		return fmt.Errorf("could not parse schema of %s: %w", spec.Name, err)
	}

	for _, rel := range spec.Relations {
		relationship, ok := sch.Relationships.Relations[rel.Field]
		if !ok {
			return fmt.Errorf("model %s has no relation %s", spec.Name, rel.Field)
		}
		if relationship.Type != schema.HasMany {
			return fmt.Errorf("relation %s.%s must be a has-many association", spec.Name, rel.Field)
		}
	}
	// one-to-many rows are walked before through rows
	sort.SliceStable(spec.Relations, func(i, j int) bool {
		return spec.Relations[i].Kind < spec.Relations[j].Kind
	})

	spec.schema = sch

	r.mu.Lock()
	defer r.mu.Unlock()
	s := spec
	r.byType[sch.ModelType] = &s
	r.byName[spec.Name] = &s
	return nil
}

func (r *Registry) MustRegister(spec ModelSpec) {
	if err := r.Register(spec); err != nil {
		panic(err)
	}
}

func (r *Registry) SpecFor(obj any) (*ModelSpec, bool) {
	return r.SpecForType(reflect.TypeOf(obj))
}

func (r *Registry) SpecForType(t reflect.Type) (*ModelSpec, bool) {
	for t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byType[t]
	return s, ok
}

func (r *Registry) SpecByName(name string) (*ModelSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byName[name]
	return s, ok
}

// Names returns the registered model names in alphabetical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

const (
	AppLicenseLibrary   = "license_library"
	AppComponentCatalog = "component_catalog"
	AppOrganization     = "organization"
	AppPolicy           = "policy"
)

// DefaultRegistry registers every catalog model.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(ModelSpec{App: AppPolicy, Name: "usagepolicy", New: func() Copyable { return &models.UsagePolicy{} }, LogHistory: true})
	r.MustRegister(ModelSpec{App: AppOrganization, Name: "owner", New: func() Copyable { return &models.Owner{} }, LogHistory: true})
	r.MustRegister(ModelSpec{App: AppLicenseLibrary, Name: "licensetag", New: func() Copyable { return &models.LicenseTag{} }, LogHistory: true})
	r.MustRegister(ModelSpec{
		App:        AppLicenseLibrary,
		Name:       "license",
		New:        func() Copyable { return &models.License{} },
		LogHistory: true,
		Relations: []Relation{
			{Field: "Tags", Kind: ManyToManyThrough},
			{Field: "Annotations", Kind: OneToMany},
		},
	})
	r.MustRegister(ModelSpec{App: AppLicenseLibrary, Name: "licenseassignedtag", New: func() Copyable { return &models.LicenseAssignedTag{} }})
	r.MustRegister(ModelSpec{App: AppLicenseLibrary, Name: "licenseannotation", New: func() Copyable { return &models.LicenseAnnotation{} }})
	r.MustRegister(ModelSpec{App: AppComponentCatalog, Name: "package", New: func() Copyable { return &models.Package{} }, LogHistory: true})
	r.MustRegister(ModelSpec{
		App:        AppComponentCatalog,
		Name:       "component",
		New:        func() Copyable { return &models.Component{} },
		LogHistory: true,
		Relations: []Relation{
			{Field: "Children", Kind: ManyToManyThrough},
			{Field: "Licenses", Kind: ManyToManyThrough},
			{Field: "Packages", Kind: ManyToManyThrough},
		},
	})
	r.MustRegister(ModelSpec{App: AppComponentCatalog, Name: "subcomponent", New: func() Copyable { return &models.Subcomponent{} }})
	r.MustRegister(ModelSpec{App: AppComponentCatalog, Name: "componentassignedlicense", New: func() Copyable { return &models.ComponentAssignedLicense{} }})
	r.MustRegister(ModelSpec{App: AppComponentCatalog, Name: "componentassignedpackage", New: func() Copyable { return &models.ComponentAssignedPackage{} }})
	return r
}
