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
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// User is a catalog user. Every user belongs to exactly one dataspace.
type User struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Username    string     `json:"username" gorm:"type:text;not null;uniqueIndex"`
	Email       string     `json:"email" gorm:"type:text"`
	FirstName   string     `json:"firstName" gorm:"type:text"`
	LastName    string     `json:"lastName" gorm:"type:text"`
	DataspaceID uint       `json:"dataspaceId" gorm:"not null"`
	Dataspace   *Dataspace `json:"dataspace,omitempty" gorm:"foreignKey:DataspaceID;constraint:OnDelete:RESTRICT;"`
	APIKeyHash  string     `json:"-" gorm:"column:api_key_hash;type:text;index"`
	IsStaff     bool       `json:"isStaff" gorm:"not null;default:false"`
	IsSuperuser bool       `json:"isSuperuser" gorm:"not null;default:false"`
	IsActive    bool       `json:"isActive" gorm:"not null;default:true"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u User) String() string {
	return u.Username
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// HashAPIKey returns the stored representation of an api key.
func HashAPIKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
