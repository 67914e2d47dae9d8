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

package accesscontrol

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"

	"github.com/aboutcode-org/dejacode/shared"
	"github.com/aboutcode-org/dejacode/utils"
	"gorm.io/gorm"
)

// rbacModel is a role based model with one domain per dataspace.
const rbacModel = `
[request_definition]
r = sub, dom, obj, act

[policy_definition]
p = sub, dom, obj, act

[role_definition]
g = _, _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub, r.dom) && r.dom == p.dom && r.obj == p.obj && r.act == p.act
`

var _ shared.AccessControl = &casbinRBAC{}

type casbinRBAC struct {
	domain   string // scopes this to a single dataspace
	enforcer *casbin.SyncedEnforcer
}

type casbinRBACProvider struct {
	enforcer *casbin.SyncedEnforcer
}

var _ shared.RBACProvider = casbinRBACProvider{}

func (c casbinRBACProvider) GetDomainRBAC(domain string) shared.AccessControl {
	return &casbinRBAC{
		domain:   domain,
		enforcer: c.enforcer,
	}
}

func (c casbinRBACProvider) DomainsOfUser(user string) ([]string, error) {
	domains, err := c.enforcer.GetDomainsForUser("user::" + user)
	if err != nil {
		return nil, err
	}
	return utils.Map(domains, func(d string) string {
		return strings.TrimPrefix(d, "domain::")
	}), nil
}

func (c *casbinRBAC) GetAllMembersOfDataspace() ([]string, error) {
	users, err := c.enforcer.GetAllUsersByDomain("domain::" + c.domain)
	if err != nil {
		return nil, err
	}
	return utils.Map(utils.Filter(users, func(u string) bool {
		return strings.HasPrefix(u, "user::")
	}), func(u string) string {
		return strings.TrimPrefix(u, "user::")
	}), nil
}

func (c *casbinRBAC) HasAccess(user string) (bool, error) {
	roles := c.enforcer.GetRolesForUserInDomain("user::"+user, "domain::"+c.domain)
	return len(roles) > 0, nil
}

func (c *casbinRBAC) GetAllRoles(user string) []string {
	roles, err := c.enforcer.GetImplicitRolesForUser("user::"+user, "domain::"+c.domain)
	if err != nil {
		slog.Error("GetAllRoles failed", "err", err)
		return []string{}
	}
	return roles
}

func (c *casbinRBAC) GetDomainRole(user string) (shared.Role, error) {
	roles := utils.Map(utils.Filter(c.GetAllRoles(user), func(r string) bool {
		return strings.HasPrefix(r, "role::")
	}), func(r string) shared.Role {
		return shared.Role(strings.TrimPrefix(r, "role::"))
	})

	role, err := getMostPowerfulRole(roles)
	if err != nil {
		slog.Warn("GetDomainRole: no domain role found for user", "user", user, "roles", roles, "domain", c.domain)
	}
	return role, err
}

func getMostPowerfulRole(roles []shared.Role) (shared.Role, error) {
	for _, role := range []shared.Role{shared.RoleAdmin, shared.RoleMember, shared.RoleGuest} {
		if utils.Contains(roles, role) {
			return role, nil
		}
	}
	return "", fmt.Errorf("no domain role found for user. Roles from user: %v", roles)
}

func (c *casbinRBAC) GrantRole(user string, role shared.Role) error {
	_, err := c.enforcer.AddRoleForUserInDomain("user::"+user, "role::"+string(role), "domain::"+c.domain)
	return err
}

func (c *casbinRBAC) RevokeRole(user string, role shared.Role) error {
	_, err := c.enforcer.DeleteRoleForUserInDomain("user::"+user, "role::"+string(role), "domain::"+c.domain)
	return err
}

func (c *casbinRBAC) InheritRole(roleWhichGetsPermissions, roleWhichProvidesPermissions shared.Role) error {
	_, err := c.enforcer.AddRoleForUserInDomain("role::"+string(roleWhichGetsPermissions), "role::"+string(roleWhichProvidesPermissions), "domain::"+c.domain)
	return err
}

func (c *casbinRBAC) AllowRole(role shared.Role, object shared.Object, action []shared.Action) error {
	// one rule at a time, AddPolicies drops the whole batch when a single rule exists
	for _, ac := range action {
		if _, err := c.enforcer.AddPolicy("role::"+string(role), "domain::"+c.domain, "obj::"+string(object), "act::"+string(ac)); err != nil {
			return err
		}
	}
	return nil
}

func (c *casbinRBAC) IsAllowed(user string, object shared.Object, action shared.Action) (bool, error) {
	permissions, err := c.enforcer.GetImplicitPermissionsForUser("user::"+user, "domain::"+c.domain)
	if err != nil {
		return false, err
	}

	for _, p := range permissions {
		if p[2] == "obj::"+string(object) && p[3] == "act::"+string(action) {
			return true, nil
		}
	}
	return false, nil
}

// the provider can be used to create domain specific RBAC instances
func NewCasbinRBACProvider(db *gorm.DB) (casbinRBACProvider, error) {
	enforcer, err := buildEnforcer(db)
	if err != nil {
		return casbinRBACProvider{}, err
	}
	return casbinRBACProvider{
		enforcer: enforcer,
	}, nil
}

func buildEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	// the adapter creates the casbin_rule table when it does not exist
	a, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewSyncedEnforcer(m, a)
	if err != nil {
		return nil, err
	}

	if err = e.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("could not load policy: %w", err)
	}
	return e, nil
}
