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

package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/aboutcode-org/dejacode/database"
	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var ErrInvalidAPIKey = errors.New("invalid api key")

type userService struct {
	userRepository      shared.UserRepository
	dataspaceRepository shared.DataspaceRepository
	rbacProvider        shared.RBACProvider
}

var _ shared.UserService = (*userService)(nil)

func NewUserService(userRepository shared.UserRepository, dataspaceRepository shared.DataspaceRepository, rbacProvider shared.RBACProvider) *userService {
	return &userService{
		userRepository:      userRepository,
		dataspaceRepository: dataspaceRepository,
		rbacProvider:        rbacProvider,
	}
}

// Create stores the user, grants the role matching its flags and returns the
// plain api key. Only the hash of the key is stored.
func (s *userService) Create(ctx context.Context, user *models.User) (string, error) {
	user.Username = strings.TrimSpace(user.Username)
	if user.Username == "" {
		return "", newValidationError("username", "must not be empty")
	}
	dataspace, err := s.dataspaceRepository.Read(user.DataspaceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", newValidationError("dataspace", "unknown dataspace %d", user.DataspaceID)
	} else if err != nil {
		return "", errors.Wrap(err, "could not read dataspace")
	}

	key, err := generateAPIKey()
	if err != nil {
		return "", err
	}
	user.APIKeyHash = models.HashAPIKey(key)
	user.IsActive = true

	if err := s.userRepository.Create(nil, user); err != nil {
		if database.IsIntegrityViolation(err) {
			return "", &ConflictError{Object: user.Username, Err: err}
		}
		return "", errors.Wrap(err, "could not create user")
	}

	role := shared.RoleForUser(user.IsSuperuser, user.IsStaff)
	if err := s.rbacProvider.GetDomainRBAC(dataspace.Slug).GrantRole(user.Username, role); err != nil {
		return "", errors.Wrap(err, "could not grant role")
	}
	user.Dataspace = &dataspace
	return key, nil
}

func (s *userService) Authenticate(key string) (models.User, error) {
	if key == "" {
		return models.User{}, ErrInvalidAPIKey
	}
	user, err := s.userRepository.FindByAPIKey(key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, ErrInvalidAPIKey
	}
	return user, errors.Wrap(err, "could not authenticate")
}

func generateAPIKey() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "could not generate api key")
	}
	return hex.EncodeToString(b), nil
}
