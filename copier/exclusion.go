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
	"strings"
	"time"

	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type ExclusionKind int

const (
	// Include copies every field.
	Include ExclusionKind = iota
	// ExcludeFields copies every field except the listed ones.
	ExcludeFields
	// SkipEntirely leaves the whole relationship out.
	SkipEntirely
)

func (k ExclusionKind) String() string {
	switch k {
	case ExcludeFields:
		return "exclude-fields"
	case SkipEntirely:
		return "skip"
	}
	return "include"
}

type Exclusion struct {
	Kind   ExclusionKind
	Fields []string
}

func IncludeAll() Exclusion {
	return Exclusion{Kind: Include}
}

func Exclude(fields ...string) Exclusion {
	if len(fields) == 0 {
		return IncludeAll()
	}
	return Exclusion{Kind: ExcludeFields, Fields: fields}
}

func Skip() Exclusion {
	return Exclusion{Kind: SkipEntirely}
}

// ExclusionFromEntry converts the persisted representation.
func ExclusionFromEntry(entry models.ExclusionEntry) Exclusion {
	if entry.Skip {
		return Skip()
	}
	return Exclude(entry.Fields...)
}

func (e Exclusion) Entry() models.ExclusionEntry {
	if e.Kind == SkipEntirely {
		return models.ExclusionEntry{Skip: true}
	}
	return models.ExclusionEntry{Fields: e.Fields}
}

// Excludes matches a configured name against the go field name, the column
// name, or the column name of a foreign key without its "_id" suffix.
func (e Exclusion) Excludes(field *schema.Field) bool {
	if e.Kind != ExcludeFields {
		return false
	}
	for _, name := range e.Fields {
		name = strings.TrimSpace(name)
		if name == field.DBName || name == field.Name || name+"_id" == field.DBName {
			return true
		}
	}
	return false
}

// AlwaysExclude lists the columns which are never copied from the source object.
var AlwaysExclude = []string{
	"id",
	"uuid",
	"dataspace_id",
	"created_date",
	"created_by_id",
	"last_modified_date",
	"last_modified_by_id",
	"request_count",
}

func isAlwaysExcluded(field *schema.Field) bool {
	for _, name := range AlwaysExclude {
		if field.DBName == name {
			return true
		}
	}
	return false
}

// DefaultCopyExclude applies when the target dataspace has no configuration for a model.
var DefaultCopyExclude = map[string]Exclusion{
	"license":      Exclude("usage_policy", "guidance", "admin_notes", "reviewed"),
	"component":    Exclude("usage_policy", "guidance", "curation_level", "completion_level", "admin_notes"),
	"package":      Exclude("usage_policy"),
	"subcomponent": Exclude("usage_policy", "extra_attribution_text"),
}

var DefaultUpdateExclude = map[string]Exclusion{
	"license":      Exclude("usage_policy", "guidance", "admin_notes", "reviewed"),
	"component":    Exclude("usage_policy", "guidance", "curation_level", "completion_level", "admin_notes"),
	"package":      Exclude("usage_policy"),
	"subcomponent": Exclude("usage_policy", "extra_attribution_text"),
}

// Overrides are per call exclusions keyed by model name.
type Overrides map[string]Exclusion

type dataspacePolicies struct {
	copy   models.ExclusionConfig
	update models.ExclusionConfig
}

// PolicyResolver resolves the exclusions of a dataspace and caches the
// configurations it loaded.
type PolicyResolver struct {
	cache *expirable.LRU[uint, dataspacePolicies]
}

func NewPolicyResolver(size int, ttl time.Duration) *PolicyResolver {
	return &PolicyResolver{
		cache: expirable.NewLRU[uint, dataspacePolicies](size, nil, ttl),
	}
}

func (p *PolicyResolver) CopyExclusion(tx *gorm.DB, dataspaceID uint, spec *ModelSpec, overrides Overrides) (Exclusion, error) {
	if e, ok := overrides[spec.Name]; ok {
		return e, nil
	}
	policies, err := p.load(tx, dataspaceID)
	if err != nil {
		return Exclusion{}, err
	}
	if entry, ok := policies.copy.Lookup(spec.App, spec.Name); ok {
		return ExclusionFromEntry(entry), nil
	}
	if e, ok := DefaultCopyExclude[spec.Name]; ok {
		return e, nil
	}
	return IncludeAll(), nil
}

func (p *PolicyResolver) UpdateExclusion(tx *gorm.DB, dataspaceID uint, spec *ModelSpec, overrides Overrides) (Exclusion, error) {
	if e, ok := overrides[spec.Name]; ok {
		return e, nil
	}
	policies, err := p.load(tx, dataspaceID)
	if err != nil {
		return Exclusion{}, err
	}
	if entry, ok := policies.update.Lookup(spec.App, spec.Name); ok {
		return ExclusionFromEntry(entry), nil
	}
	if e, ok := DefaultUpdateExclude[spec.Name]; ok {
		return e, nil
	}
	return IncludeAll(), nil
}

// Invalidate drops the cached configuration of a dataspace after it was saved.
func (p *PolicyResolver) Invalidate(dataspaceID uint) {
	p.cache.Remove(dataspaceID)
}

func (p *PolicyResolver) load(tx *gorm.DB, dataspaceID uint) (dataspacePolicies, error) {
	if cached, ok := p.cache.Get(dataspaceID); ok {
		return cached, nil
	}

	var configs []models.DataspaceConfiguration
	if err := tx.Where("dataspace_id = ?", dataspaceID).Limit(1).Find(&configs).Error; err != nil {
		return dataspacePolicies{}, err
	}

	policies := dataspacePolicies{}
	if len(configs) > 0 {
		policies.copy = configs[0].CopyDefaults.Data()
		policies.update = configs[0].UpdateDefaults.Data()
	}
	p.cache.Add(dataspaceID, policies)
	return policies, nil
}
