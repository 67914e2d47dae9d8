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
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const copyDefaultsSchemaURL = "https://dejacode.aboutcode.org/schemas/copy-defaults.json"

// one section of a copy defaults document: app -> model -> field list or "SKIP"
const copyDefaultsSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "additionalProperties": {
      "oneOf": [
        {"const": "SKIP"},
        {"type": "array", "items": {"type": "string", "minLength": 1}, "uniqueItems": true}
      ]
    }
  }
}`

var compileCopyDefaultsSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(copyDefaultsSchema))
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(copyDefaultsSchemaURL, doc); err != nil {
		return nil, err
	}
	return compiler.Compile(copyDefaultsSchemaURL)
})
