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
	"net/url"
	"sort"
	"strings"

	"github.com/package-url/packageurl-go"
	"gorm.io/gorm"
)

type Package struct {
	DataspacedModel
	Filename          string       `json:"filename" gorm:"type:text"`
	DownloadURL       string       `json:"downloadUrl" gorm:"type:text"`
	Type              string       `json:"type" gorm:"type:text"`
	Namespace         string       `json:"namespace" gorm:"type:text"`
	Name              string       `json:"name" gorm:"type:text"`
	Version           string       `json:"version" gorm:"type:text"`
	Qualifiers        string       `json:"qualifiers" gorm:"type:text"`
	Subpath           string       `json:"subpath" gorm:"type:text"`
	SHA1              string       `json:"sha1" gorm:"column:sha1;type:text"`
	MD5               string       `json:"md5" gorm:"column:md5;type:text"`
	Size              *int64       `json:"size"`
	LicenseExpression string       `json:"licenseExpression" gorm:"type:text"`
	Copyright         string       `json:"copyright" gorm:"type:text"`
	PrimaryLanguage   string       `json:"primaryLanguage" gorm:"type:text"`
	UsagePolicyID     *uint        `json:"usagePolicyId"`
	UsagePolicy       *UsagePolicy `json:"usagePolicy,omitempty" gorm:"foreignKey:UsagePolicyID;constraint:OnDelete:SET NULL;"`
}

func (Package) TableName() string {
	return "packages"
}

func (Package) UniqueTogether() [][]string {
	return [][]string{{"dataspace_id", "type", "namespace", "name", "version", "qualifiers", "subpath", "download_url", "filename"}}
}

func (p Package) HasPackageURL() bool {
	return p.Type != "" && p.Name != ""
}

// PackageURL returns the purl string, or an empty string when type and name are unknown.
func (p Package) PackageURL() string {
	if !p.HasPackageURL() {
		return ""
	}
	return packageurl.NewPackageURL(p.Type, p.Namespace, p.Name, p.Version, qualifiersFromString(p.Qualifiers), p.Subpath).ToString()
}

// SetPackageURL fills the purl fields from a purl string.
func (p *Package) SetPackageURL(purl string) error {
	parsed, err := packageurl.FromString(purl)
	if err != nil {
		return fmt.Errorf("invalid package url %q: %w", purl, err)
	}
	p.Type = parsed.Type
	p.Namespace = parsed.Namespace
	p.Name = parsed.Name
	p.Version = parsed.Version
	p.Qualifiers = parsed.Qualifiers.String()
	p.Subpath = parsed.Subpath
	return nil
}

func (p Package) String() string {
	if purl := p.PackageURL(); purl != "" {
		return purl
	}
	return p.Filename
}

func (p *Package) BeforeSave(tx *gorm.DB) error {
	if p.Filename == "" && p.DownloadURL != "" {
		if u, err := url.Parse(p.DownloadURL); err == nil {
			segments := strings.Split(strings.TrimSuffix(u.Path, "/"), "/")
			p.Filename = segments[len(segments)-1]
		}
	}
	return nil
}

func qualifiersFromString(raw string) packageurl.Qualifiers {
	if raw == "" {
		return nil
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil
	}
	m := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			m[k] = v[0]
		}
	}
	q := packageurl.QualifiersFromMap(m)
	sort.Slice(q, func(i, j int) bool { return q[i].Key < q[j].Key })
	return q
}
