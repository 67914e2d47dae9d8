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

type UsagePolicy struct {
	DataspacedModel
	Label       string `json:"label" gorm:"type:text;not null"`
	ContentType string `json:"contentType" gorm:"type:text;not null"`
	Icon        string `json:"icon" gorm:"type:text"`
	ColorCode   string `json:"colorCode" gorm:"type:text"`
	Guidelines  string `json:"guidelines" gorm:"type:text"`
}

func (UsagePolicy) TableName() string {
	return "usage_policies"
}

func (UsagePolicy) UniqueTogether() [][]string {
	return [][]string{{"dataspace_id", "content_type", "label"}}
}

func (p UsagePolicy) String() string {
	return p.Label
}
