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

import "github.com/aboutcode-org/dejacode/urn"

type OwnerType string

const (
	OwnerTypeOrganization OwnerType = "Organization"
	OwnerTypePerson       OwnerType = "Person"
	OwnerTypeProject      OwnerType = "Project"
)

type Owner struct {
	DataspacedModel
	Name        string    `json:"name" gorm:"type:text;not null"`
	HomepageURL string    `json:"homepageUrl" gorm:"type:text"`
	ContactInfo string    `json:"contactInfo" gorm:"type:text"`
	Notes       string    `json:"notes" gorm:"type:text"`
	Alias       string    `json:"alias" gorm:"type:text"`
	Type        OwnerType `json:"type" gorm:"type:text;not null;default:'Organization'"`
}

func (Owner) TableName() string {
	return "owners"
}

func (Owner) UniqueTogether() [][]string {
	return [][]string{{"dataspace_id", "name"}}
}

func (o Owner) String() string {
	return o.Name
}

func (o Owner) URN() string {
	return urn.Encode(urn.KindOwner, o.Name)
}
