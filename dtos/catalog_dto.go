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

type OwnerCreateRequest struct {
	Name        string `json:"name" validate:"required"`
	HomepageURL string `json:"homepageUrl" validate:"omitempty,url"`
	ContactInfo string `json:"contactInfo"`
	Notes       string `json:"notes"`
	Alias       string `json:"alias"`
	Type        string `json:"type" validate:"omitempty,oneof=Organization Person Project"`
}

type OwnerPatchRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	HomepageURL *string `json:"homepageUrl" validate:"omitempty,url"`
	ContactInfo *string `json:"contactInfo"`
	Notes       *string `json:"notes"`
	Alias       *string `json:"alias"`
	Type        *string `json:"type" validate:"omitempty,oneof=Organization Person Project"`
}

type LicenseTagCreateRequest struct {
	Label             string `json:"label" validate:"required"`
	Text              string `json:"text"`
	Guidance          string `json:"guidance"`
	DefaultValue      *bool  `json:"defaultValue"`
	ShowInLicenseList bool   `json:"showInLicenseList"`
}

type LicenseTagPatchRequest struct {
	Label             *string `json:"label" validate:"omitempty,min=1"`
	Text              *string `json:"text"`
	Guidance          *string `json:"guidance"`
	DefaultValue      *bool   `json:"defaultValue"`
	ShowInLicenseList *bool   `json:"showInLicenseList"`
}

type LicenseCreateRequest struct {
	Key            string `json:"key" validate:"required"`
	Name           string `json:"name" validate:"required"`
	ShortName      string `json:"shortName" validate:"required"`
	Owner          string `json:"owner" validate:"required"`
	SPDXLicenseKey string `json:"spdxLicenseKey"`
	Category       string `json:"category"`
	HomepageURL    string `json:"homepageUrl" validate:"omitempty,url"`
	FullText       string `json:"fullText"`
	IsActive       *bool  `json:"isActive"`
	IsException    bool   `json:"isException"`
	Guidance       string `json:"guidance"`
	AdminNotes     string `json:"adminNotes"`
}

type LicensePatchRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=1"`
	ShortName      *string `json:"shortName" validate:"omitempty,min=1"`
	Owner          *string `json:"owner" validate:"omitempty,min=1"`
	SPDXLicenseKey *string `json:"spdxLicenseKey"`
	Category       *string `json:"category"`
	HomepageURL    *string `json:"homepageUrl" validate:"omitempty,url"`
	FullText       *string `json:"fullText"`
	IsActive       *bool   `json:"isActive"`
	IsException    *bool   `json:"isException"`
	Reviewed       *bool   `json:"reviewed"`
	Guidance       *string `json:"guidance"`
	AdminNotes     *string `json:"adminNotes"`
}

type ComponentCreateRequest struct {
	Name              string `json:"name" validate:"required"`
	Version           string `json:"version"`
	Owner             string `json:"owner"`
	Description       string `json:"description"`
	Copyright         string `json:"copyright"`
	HomepageURL       string `json:"homepageUrl" validate:"omitempty,url"`
	PrimaryLanguage   string `json:"primaryLanguage"`
	LicenseExpression string `json:"licenseExpression"`
	NoticeText        string `json:"noticeText"`
	IsActive          *bool  `json:"isActive"`
	CurationLevel     int    `json:"curationLevel" validate:"gte=0,lte=100"`
	Guidance          string `json:"guidance"`
	AdminNotes        string `json:"adminNotes"`
}

type ComponentPatchRequest struct {
	Name              *string `json:"name" validate:"omitempty,min=1"`
	Version           *string `json:"version"`
	Owner             *string `json:"owner"`
	Description       *string `json:"description"`
	Copyright         *string `json:"copyright"`
	HomepageURL       *string `json:"homepageUrl" validate:"omitempty,url"`
	PrimaryLanguage   *string `json:"primaryLanguage"`
	LicenseExpression *string `json:"licenseExpression"`
	NoticeText        *string `json:"noticeText"`
	IsActive          *bool   `json:"isActive"`
	CurationLevel     *int    `json:"curationLevel" validate:"omitempty,gte=0,lte=100"`
	Guidance          *string `json:"guidance"`
	AdminNotes        *string `json:"adminNotes"`
}

type PackageCreateRequest struct {
	DownloadURL       string `json:"downloadUrl" validate:"omitempty,url"`
	Filename          string `json:"filename"`
	PackageURL        string `json:"packageUrl"`
	SHA1              string `json:"sha1" validate:"omitempty,len=40,hexadecimal"`
	MD5               string `json:"md5" validate:"omitempty,len=32,hexadecimal"`
	Size              *int64 `json:"size" validate:"omitempty,gte=0"`
	LicenseExpression string `json:"licenseExpression"`
	Copyright         string `json:"copyright"`
	PrimaryLanguage   string `json:"primaryLanguage"`
}

type PackagePatchRequest struct {
	DownloadURL       *string `json:"downloadUrl" validate:"omitempty,url"`
	Filename          *string `json:"filename"`
	PackageURL        *string `json:"packageUrl"`
	SHA1              *string `json:"sha1" validate:"omitempty,len=40,hexadecimal"`
	MD5               *string `json:"md5" validate:"omitempty,len=32,hexadecimal"`
	Size              *int64  `json:"size" validate:"omitempty,gte=0"`
	LicenseExpression *string `json:"licenseExpression"`
	Copyright         *string `json:"copyright"`
	PrimaryLanguage   *string `json:"primaryLanguage"`
}
