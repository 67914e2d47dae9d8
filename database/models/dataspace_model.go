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

package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Dataspace struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:text;not null;uniqueIndex"`
	Slug        string    `json:"slug" gorm:"type:text;not null;uniqueIndex"`
	HomepageURL string    `json:"homepageUrl" gorm:"type:text"`
	ContactInfo string    `json:"contactInfo" gorm:"type:text"`
	Notes       string    `json:"notes" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Dataspace) TableName() string {
	return "dataspaces"
}

func (d *Dataspace) BeforeSave(tx *gorm.DB) error {
	if d.Slug == "" {
		d.Slug = slug.Make(d.Name)
	}
	return nil
}

func (d Dataspace) String() string {
	return d.Name
}

// IsReference reports whether this dataspace is the one other dataspaces copy from.
func (d Dataspace) IsReference(referenceName string) bool {
	return d.Name != "" && d.Name == referenceName
}

const SkipSentinel = "SKIP"

// ExclusionEntry is the persisted form of a per-model exclusion.
// It is stored either as a list of field names or as the "SKIP" sentinel.
type ExclusionEntry struct {
	Skip   bool
	Fields []string
}

func (e ExclusionEntry) MarshalJSON() ([]byte, error) {
	if e.Skip {
		return json.Marshal(SkipSentinel)
	}
	if e.Fields == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(e.Fields)
}

func (e *ExclusionEntry) UnmarshalJSON(data []byte) error {
	var sentinel string
	if err := json.Unmarshal(data, &sentinel); err == nil {
		if sentinel != SkipSentinel {
			return fmt.Errorf("unknown exclusion value %q", sentinel)
		}
		*e = ExclusionEntry{Skip: true}
		return nil
	}

	var fields []string
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("exclusion must be a list of field names or %q: %w", SkipSentinel, err)
	}
	*e = ExclusionEntry{Fields: fields}
	return nil
}

// ExclusionConfig maps app name -> model name -> exclusion.
type ExclusionConfig map[string]map[string]ExclusionEntry

// Lookup returns the entry configured for the model and whether one was configured at all.
func (c ExclusionConfig) Lookup(app, model string) (ExclusionEntry, bool) {
	if c == nil {
		return ExclusionEntry{}, false
	}
	models, ok := c[app]
	if !ok {
		return ExclusionEntry{}, false
	}
	entry, ok := models[model]
	return entry, ok
}

type DataspaceConfiguration struct {
	ID             uint                                `json:"id" gorm:"primaryKey"`
	DataspaceID    uint                                `json:"dataspaceId" gorm:"not null;uniqueIndex"`
	Dataspace      *Dataspace                          `json:"-" gorm:"foreignKey:DataspaceID;constraint:OnDelete:CASCADE;"`
	CopyDefaults   datatypes.JSONType[ExclusionConfig] `json:"copyDefaults"`
	UpdateDefaults datatypes.JSONType[ExclusionConfig] `json:"updateDefaults"`
	UpdatedAt      time.Time                           `json:"updatedAt"`
}

func (DataspaceConfiguration) TableName() string {
	return "dataspace_configurations"
}
