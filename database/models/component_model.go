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
	"strings"

	"github.com/aboutcode-org/dejacode/urn"
	"gorm.io/gorm"
)

type Component struct {
	DataspacedModel
	Name              string       `json:"name" gorm:"type:text;not null"`
	Version           string       `json:"version" gorm:"type:text;not null;default:''"`
	OwnerID           *uint        `json:"ownerId"`
	Owner             *Owner       `json:"owner,omitempty" gorm:"foreignKey:OwnerID;constraint:OnDelete:RESTRICT;"`
	Description       string       `json:"description" gorm:"type:text"`
	Copyright         string       `json:"copyright" gorm:"type:text"`
	HomepageURL       string       `json:"homepageUrl" gorm:"type:text"`
	PrimaryLanguage   string       `json:"primaryLanguage" gorm:"type:text"`
	LicenseExpression string       `json:"licenseExpression" gorm:"type:text"`
	NoticeText        string       `json:"noticeText" gorm:"type:text"`
	IsActive          *bool        `json:"isActive"`
	CurationLevel     int          `json:"curationLevel" gorm:"not null;default:0"`
	CompletionLevel   int          `json:"completionLevel" gorm:"not null;default:0"`
	UsagePolicyID     *uint        `json:"usagePolicyId"`
	UsagePolicy       *UsagePolicy `json:"usagePolicy,omitempty" gorm:"foreignKey:UsagePolicyID;constraint:OnDelete:SET NULL;"`
	Guidance          string       `json:"guidance" gorm:"type:text"`
	AdminNotes        string       `json:"adminNotes" gorm:"type:text"`
	RequestCount      int          `json:"requestCount" gorm:"not null;default:0"`

	Children []Subcomponent             `json:"children,omitempty" gorm:"foreignKey:ParentID"`
	Licenses []ComponentAssignedLicense `json:"licenses,omitempty" gorm:"foreignKey:ComponentID"`
	Packages []ComponentAssignedPackage `json:"packages,omitempty" gorm:"foreignKey:ComponentID"`
}

func (Component) TableName() string {
	return "components"
}

func (Component) UniqueTogether() [][]string {
	return [][]string{{"dataspace_id", "name", "version"}}
}

func (c Component) String() string {
	if c.Version == "" {
		return c.Name
	}
	return fmt.Sprintf("%s %s", c.Name, c.Version)
}

func (c Component) URN() string {
	return urn.Encode(urn.KindComponent, c.Name, c.Version)
}

// ComputeCompletionLevel returns the percentage of filled completion fields.
func (c Component) ComputeCompletionLevel() int {
	filled := []bool{
		strings.TrimSpace(c.Version) != "",
		strings.TrimSpace(c.Description) != "",
		strings.TrimSpace(c.Copyright) != "",
		strings.TrimSpace(c.HomepageURL) != "",
		strings.TrimSpace(c.PrimaryLanguage) != "",
		strings.TrimSpace(c.LicenseExpression) != "",
		strings.TrimSpace(c.NoticeText) != "",
		c.OwnerID != nil,
	}

	count := 0
	for _, f := range filled {
		if f {
			count++
		}
	}
	return count * 100 / len(filled)
}

func (c *Component) BeforeSave(tx *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Version = strings.TrimSpace(c.Version)
	c.CompletionLevel = c.ComputeCompletionLevel()
	return nil
}

// Subcomponent is the explicit parent/child join model between two components.
type Subcomponent struct {
	DataspacedModel
	ParentID             uint         `json:"parentId" gorm:"not null"`
	Parent               *Component   `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE;"`
	ChildID              uint         `json:"childId" gorm:"not null"`
	Child                *Component   `json:"child,omitempty" gorm:"foreignKey:ChildID;constraint:OnDelete:RESTRICT;"`
	LicenseExpression    string       `json:"licenseExpression" gorm:"type:text"`
	Purpose              string       `json:"purpose" gorm:"type:text"`
	Notes                string       `json:"notes" gorm:"type:text"`
	ExtraAttributionText string       `json:"extraAttributionText" gorm:"type:text"`
	UsagePolicyID        *uint        `json:"usagePolicyId"`
	UsagePolicy          *UsagePolicy `json:"-" gorm:"foreignKey:UsagePolicyID;constraint:OnDelete:SET NULL;"`
}

func (Subcomponent) TableName() string {
	return "subcomponents"
}

func (Subcomponent) UniqueTogether() [][]string {
	return [][]string{{"parent_id", "child_id"}}
}

func (s Subcomponent) String() string {
	return fmt.Sprintf("subcomponent %s", s.UUID)
}

type ComponentAssignedLicense struct {
	DataspacedModel
	ComponentID uint       `json:"componentId" gorm:"not null"`
	Component   *Component `json:"-" gorm:"foreignKey:ComponentID;constraint:OnDelete:CASCADE;"`
	LicenseID   uint       `json:"licenseId" gorm:"not null"`
	License     *License   `json:"license,omitempty" gorm:"foreignKey:LicenseID;constraint:OnDelete:CASCADE;"`
}

func (ComponentAssignedLicense) TableName() string {
	return "component_assigned_licenses"
}

func (ComponentAssignedLicense) UniqueTogether() [][]string {
	return [][]string{{"component_id", "license_id"}}
}

func (a ComponentAssignedLicense) String() string {
	return fmt.Sprintf("assigned license %s", a.UUID)
}

type ComponentAssignedPackage struct {
	DataspacedModel
	ComponentID uint       `json:"componentId" gorm:"not null"`
	Component   *Component `json:"-" gorm:"foreignKey:ComponentID;constraint:OnDelete:CASCADE;"`
	PackageID   uint       `json:"packageId" gorm:"not null"`
	Package     *Package   `json:"package,omitempty" gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE;"`
}

func (ComponentAssignedPackage) TableName() string {
	return "component_assigned_packages"
}

func (ComponentAssignedPackage) UniqueTogether() [][]string {
	return [][]string{{"component_id", "package_id"}}
}

func (a ComponentAssignedPackage) String() string {
	return fmt.Sprintf("assigned package %s", a.UUID)
}
