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

package dtos

import (
	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/google/uuid"
)

// CopyRequest copies a set of objects of one model from the source into the
// target dataspace. Exclude maps a model name to the field names which are
// not copied, "SKIP" skips the model entirely.
type CopyRequest struct {
	Model   string                           `json:"model" validate:"required"`
	Source  string                           `json:"source" validate:"required"`
	Target  string                           `json:"target" validate:"required"`
	UUIDs   []uuid.UUID                      `json:"uuids" validate:"required,min=1"`
	Update  bool                             `json:"update"`
	Exclude map[string]models.ExclusionEntry `json:"exclude"`
}

type CopiedObjectDTO struct {
	UUID          uuid.UUID `json:"uuid"`
	Repr          string    `json:"repr"`
	ChangedFields []string  `json:"changedFields,omitempty"`
}

type CopyErrorDTO struct {
	UUID  uuid.UUID `json:"uuid"`
	Repr  string    `json:"repr,omitempty"`
	Error string    `json:"error"`
}

// CopyReport groups the outcome of every requested object.
type CopyReport struct {
	Model   string            `json:"model"`
	Source  string            `json:"source"`
	Target  string            `json:"target"`
	Copied  []CopiedObjectDTO `json:"copied"`
	Updated []CopiedObjectDTO `json:"updated"`
	Skipped []CopiedObjectDTO `json:"skipped"`
	Errors  []CopyErrorDTO    `json:"errors"`
}

func NewCopyReport(model, source, target string) CopyReport {
	return CopyReport{
		Model:   model,
		Source:  source,
		Target:  target,
		Copied:  []CopiedObjectDTO{},
		Updated: []CopiedObjectDTO{},
		Skipped: []CopiedObjectDTO{},
		Errors:  []CopyErrorDTO{},
	}
}

func (r CopyReport) HasErrors() bool {
	return len(r.Errors) > 0
}

type CompareRequest struct {
	Model  string      `json:"model" validate:"required"`
	Source string      `json:"source" validate:"required"`
	Target string      `json:"target" validate:"required"`
	UUIDs  []uuid.UUID `json:"uuids" validate:"required,min=1"`
}

type FieldDiffDTO struct {
	Field  string `json:"field"`
	Source any    `json:"source"`
	Target any    `json:"target"`
}

type ComparisonDTO struct {
	UUID    uuid.UUID      `json:"uuid"`
	Repr    string         `json:"repr"`
	Matched bool           `json:"matched"`
	Diffs   []FieldDiffDTO `json:"diffs"`
}
