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
	"fmt"

	"github.com/aboutcode-org/dejacode/urn"
)

type LicenseTag struct {
	DataspacedModel
	Label             string `json:"label" gorm:"type:text;not null"`
	Text              string `json:"text" gorm:"type:text"`
	Guidance          string `json:"guidance" gorm:"type:text"`
	DefaultValue      *bool  `json:"defaultValue"`
	ShowInLicenseList bool   `json:"showInLicenseList" gorm:"not null;default:false"`
}

func (LicenseTag) TableName() string {
	return "license_tags"
}

func (LicenseTag) UniqueTogether() [][]string {
	return [][]string{{"dataspace_id", "label"}}
}

func (t LicenseTag) String() string {
	return t.Label
}

type License struct {
	DataspacedModel
	Key            string       `json:"key" gorm:"type:text;not null"`
	Name           string       `json:"name" gorm:"type:text;not null"`
	ShortName      string       `json:"shortName" gorm:"type:text;not null"`
	OwnerID        uint         `json:"ownerId" gorm:"not null"`
	Owner          *Owner       `json:"owner,omitempty" gorm:"foreignKey:OwnerID;constraint:OnDelete:RESTRICT;"`
	SPDXLicenseKey string       `json:"spdxLicenseKey" gorm:"column:spdx_license_key;type:text"`
	Category       string       `json:"category" gorm:"type:text"`
	HomepageURL    string       `json:"homepageUrl" gorm:"type:text"`
	FullText       string       `json:"fullText" gorm:"type:text"`
	IsActive       *bool        `json:"isActive"`
	IsException    bool         `json:"isException" gorm:"not null;default:false"`
	Reviewed       bool         `json:"reviewed" gorm:"not null;default:false"`
	Guidance       string       `json:"guidance" gorm:"type:text"`
	UsagePolicyID  *uint        `json:"usagePolicyId"`
	UsagePolicy    *UsagePolicy `json:"usagePolicy,omitempty" gorm:"foreignKey:UsagePolicyID;constraint:OnDelete:SET NULL;"`
	AdminNotes     string       `json:"adminNotes" gorm:"type:text"`
	RequestCount   int          `json:"requestCount" gorm:"not null;default:0"`

	Tags        []LicenseAssignedTag `json:"tags,omitempty" gorm:"foreignKey:LicenseID"`
	Annotations []LicenseAnnotation  `json:"annotations,omitempty" gorm:"foreignKey:LicenseID"`
}

func (License) TableName() string {
	return "licenses"
}

func (License) UniqueTogether() [][]string {
	return [][]string{{"dataspace_id", "key"}, {"dataspace_id", "short_name"}}
}

func (l License) String() string {
	return fmt.Sprintf("%s (%s)", l.ShortName, l.Key)
}

func (l License) URN() string {
	return urn.Encode(urn.KindLicense, l.Key)
}

// LicenseAssignedTag is the through table between License and LicenseTag.
type LicenseAssignedTag struct {
	DataspacedModel
	LicenseID    uint        `json:"licenseId" gorm:"not null"`
	License      *License    `json:"-" gorm:"foreignKey:LicenseID;constraint:OnDelete:CASCADE;"`
	LicenseTagID uint        `json:"licenseTagId" gorm:"not null"`
	LicenseTag   *LicenseTag `json:"licenseTag,omitempty" gorm:"foreignKey:LicenseTagID;constraint:OnDelete:CASCADE;"`
	Value        *bool       `json:"value"`
}

func (LicenseAssignedTag) TableName() string {
	return "license_assigned_tags"
}

func (LicenseAssignedTag) UniqueTogether() [][]string {
	return [][]string{{"license_id", "license_tag_id"}}
}

func (t LicenseAssignedTag) String() string {
	if t.LicenseTag != nil {
		return fmt.Sprintf("%s: %v", t.LicenseTag.Label, t.Value != nil && *t.Value)
	}
	return fmt.Sprintf("assigned tag %s", t.UUID)
}

type LicenseAnnotation struct {
	DataspacedModel
	LicenseID        uint                `json:"licenseId" gorm:"not null"`
	License          *License            `json:"-" gorm:"foreignKey:LicenseID;constraint:OnDelete:CASCADE;"`
	AssignedTagID    *uint               `json:"assignedTagId"`
	AssignedTag      *LicenseAssignedTag `json:"-" gorm:"foreignKey:AssignedTagID;constraint:OnDelete:SET NULL;"`
	Text             string              `json:"text" gorm:"type:text"`
	Quote            string              `json:"quote" gorm:"type:text"`
	RangeStartOffset *int                `json:"rangeStartOffset"`
	RangeEndOffset   *int                `json:"rangeEndOffset"`
}

func (LicenseAnnotation) TableName() string {
	return "license_annotations"
}

func (a LicenseAnnotation) String() string {
	return fmt.Sprintf("annotation %s", a.UUID)
}
