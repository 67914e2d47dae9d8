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

import "time"

type HistoryDTO struct {
	ActionFlag     string         `json:"actionFlag"`
	ChangeMessage  string         `json:"changeMessage"`
	ObjectRepr     string         `json:"objectRepr"`
	ContentType    string         `json:"contentType"`
	User           string         `json:"user,omitempty"`
	ActionTime     time.Time      `json:"actionTime"`
	SerializedData map[string]any `json:"serializedData,omitempty"`
}

type URNResolveResponse struct {
	URN    string `json:"urn"`
	Kind   string `json:"kind"`
	Object any    `json:"object"`
}

type DataspaceCreateRequest struct {
	Name        string `json:"name" validate:"required"`
	HomepageURL string `json:"homepageUrl" validate:"omitempty,url"`
	ContactInfo string `json:"contactInfo"`
	Notes       string `json:"notes"`
}
