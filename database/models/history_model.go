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
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type ActionFlag int

const (
	ActionAddition ActionFlag = 1
	ActionChange   ActionFlag = 2
	ActionDeletion ActionFlag = 3
)

func (a ActionFlag) String() string {
	switch a {
	case ActionAddition:
		return "addition"
	case ActionChange:
		return "change"
	case ActionDeletion:
		return "deletion"
	}
	return "unknown"
}

// History is an append-only audit entry referencing an object by content type and id.
type History struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	DataspaceID    uint           `json:"dataspaceId" gorm:"not null;index"`
	Dataspace      *Dataspace     `json:"-" gorm:"foreignKey:DataspaceID;constraint:OnDelete:CASCADE;"`
	ContentType    string         `json:"contentType" gorm:"type:text;not null;index:idx_history_object"`
	ObjectID       uint           `json:"objectId" gorm:"not null;index:idx_history_object"`
	ObjectRepr     string         `json:"objectRepr" gorm:"type:text"`
	ActionFlag     ActionFlag     `json:"actionFlag" gorm:"not null"`
	ChangeMessage  string         `json:"changeMessage" gorm:"type:text"`
	SerializedData datatypes.JSON `json:"serializedData,omitempty"`
	UserID         *uint          `json:"userId"`
	User           *User          `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL;"`
	ActionTime     time.Time      `json:"actionTime" gorm:"autoCreateTime;index"`
}

func (History) TableName() string {
	return "histories"
}

// NewHistory builds an audit entry. data is serialized as json when not nil.
func NewHistory(dataspaceID uint, contentType string, objectID uint, repr string, flag ActionFlag, message string, data any, userID *uint) (History, error) {
	h := History{
		DataspaceID:   dataspaceID,
		ContentType:   contentType,
		ObjectID:      objectID,
		ObjectRepr:    repr,
		ActionFlag:    flag,
		ChangeMessage: message,
		UserID:        userID,
	}
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return h, err
		}
		h.SerializedData = datatypes.JSON(b)
	}
	return h, nil
}
