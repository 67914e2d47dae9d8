package accesscontrol

import (
	"testing"

	"github.com/aboutcode-org/dejacode/shared"
	"github.com/aboutcode-org/dejacode/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProvider(t *testing.T) casbinRBACProvider {
	provider, err := NewCasbinRBACProvider(tests.NewSQLiteDB(t))
	require.NoError(t, err)
	return provider
}

func TestCasbinRBAC(t *testing.T) {
	t.Run("should grant the permissions of inherited roles", func(t *testing.T) {
		provider := newProvider(t)
		rbac := provider.GetDomainRBAC("nexb")
		require.NoError(t, shared.BootstrapDataspace(rbac))
		require.NoError(t, rbac.GrantRole("alice", shared.RoleAdmin))
		require.NoError(t, rbac.GrantRole("bob", shared.RoleGuest))

		allowed, err := rbac.IsAllowed("alice", shared.ObjectLicense, shared.ActionRead)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = rbac.IsAllowed("alice", shared.ObjectCopy, shared.ActionCreate)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = rbac.IsAllowed("bob", shared.ObjectLicense, shared.ActionRead)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = rbac.IsAllowed("bob", shared.ObjectLicense, shared.ActionDelete)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("should scope roles to a single dataspace", func(t *testing.T) {
		provider := newProvider(t)
		nexb := provider.GetDomainRBAC("nexb")
		other := provider.GetDomainRBAC("other")
		require.NoError(t, shared.BootstrapDataspace(nexb))
		require.NoError(t, shared.BootstrapDataspace(other))
		require.NoError(t, nexb.GrantRole("alice", shared.RoleMember))

		allowed, err := other.IsAllowed("alice", shared.ObjectComponent, shared.ActionRead)
		require.NoError(t, err)
		assert.False(t, allowed)

		hasAccess, err := other.HasAccess("alice")
		require.NoError(t, err)
		assert.False(t, hasAccess)

		domains, err := provider.DomainsOfUser("alice")
		require.NoError(t, err)
		assert.Equal(t, []string{"nexb"}, domains)
	})

	t.Run("should bootstrap a dataspace twice without error", func(t *testing.T) {
		rbac := newProvider(t).GetDomainRBAC("nexb")
		require.NoError(t, shared.BootstrapDataspace(rbac))
		assert.NoError(t, shared.BootstrapDataspace(rbac))
	})

	t.Run("should return the most powerful role", func(t *testing.T) {
		rbac := newProvider(t).GetDomainRBAC("nexb")
		require.NoError(t, shared.BootstrapDataspace(rbac))
		require.NoError(t, rbac.GrantRole("alice", shared.RoleMember))

		role, err := rbac.GetDomainRole("alice")
		require.NoError(t, err)
		assert.Equal(t, shared.RoleMember, role)

		require.NoError(t, rbac.RevokeRole("alice", shared.RoleMember))
		_, err = rbac.GetDomainRole("alice")
		assert.Error(t, err)

		members, err := rbac.GetAllMembersOfDataspace()
		require.NoError(t, err)
		assert.Empty(t, members)
	})
}
