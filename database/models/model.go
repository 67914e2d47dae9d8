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
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DataspacedModel is embedded by every catalog entity.
// The (dataspace_id, uuid) pair is unique - the uuid identifies the same logical
// entity across dataspaces and survives a copy.
type DataspacedModel struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	DataspaceID      uint      `json:"dataspaceId" gorm:"not null;index:,unique,composite:dataspace_uuid"`
	UUID             uuid.UUID `json:"uuid" gorm:"type:uuid;not null;index:,unique,composite:dataspace_uuid"`
	CreatedDate      time.Time `json:"createdDate" gorm:"autoCreateTime"`
	CreatedByID      *uint     `json:"createdById"`
	LastModifiedDate time.Time `json:"lastModifiedDate" gorm:"autoUpdateTime"`
	LastModifiedByID *uint     `json:"lastModifiedById"`
}

func (m *DataspacedModel) BeforeCreate(tx *gorm.DB) error {
	if m.UUID == uuid.Nil {
		m.UUID = uuid.New()
	}
	return nil
}

func (m *DataspacedModel) GetID() uint {
	return m.ID
}

func (m *DataspacedModel) GetUUID() uuid.UUID {
	return m.UUID
}

func (m *DataspacedModel) GetDataspaceID() uint {
	return m.DataspaceID
}

func (m *DataspacedModel) SetDataspaceID(id uint) {
	m.DataspaceID = id
}

// ResetPrimaryKey prepares an in-memory duplicate for an insert.
func (m *DataspacedModel) ResetPrimaryKey() {
	m.ID = 0
	m.CreatedDate = time.Time{}
	m.LastModifiedDate = time.Time{}
}

func (m *DataspacedModel) SetCreatedBy(userID *uint) {
	m.CreatedByID = userID
	m.LastModifiedByID = userID
}

func (m *DataspacedModel) SetLastModifiedBy(userID *uint) {
	m.LastModifiedByID = userID
}

// UniqueTogether is implemented by models which carry natural keys besides (dataspace_id, uuid).
type UniqueTogether interface {
	UniqueTogether() [][]string
}
