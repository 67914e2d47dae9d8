package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aboutcode-org/dejacode/copier"
	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/database/repositories"
	"github.com/aboutcode-org/dejacode/dtos"
	"github.com/aboutcode-org/dejacode/mocks"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/aboutcode-org/dejacode/tests"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type copyServiceEnv struct {
	db        *gorm.DB
	copier    *copier.Copier
	reference models.Dataspace
	target    models.Dataspace
	other     models.Dataspace
	user      models.User
	rbac      *mocks.AccessControl
	provider  *mocks.RBACProvider
}

func newCopyServiceEnv(t *testing.T) copyServiceEnv {
	db := tests.NewSQLiteDB(t)
	reference := tests.CreateDataspace(t, db, shared.DefaultReferenceDataspace)
	target := tests.CreateDataspace(t, db, "Alternate")
	other := tests.CreateDataspace(t, db, "Other")
	user := tests.CreateUser(t, db, target, "alternate_user")
	user.Dataspace = &target

	rbac := mocks.NewAccessControl(t)
	provider := mocks.NewRBACProvider(t)
	provider.On("GetDomainRBAC", target.Slug).Return(rbac).Maybe()

	return copyServiceEnv{
		db:        db,
		copier:    copier.NewCopier(copier.DefaultRegistry(), copier.NewPolicyResolver(16, time.Minute)),
		reference: reference,
		target:    target,
		other:     other,
		user:      user,
		rbac:      rbac,
		provider:  provider,
	}
}

func (e copyServiceEnv) copyService() *copyService {
	return NewCopyService(e.db, e.copier, repositories.NewDataspaceRepository(e.db), e.provider)
}

func TestCopyServiceCheckPermission(t *testing.T) {
	t.Run("should reject copying inside a single dataspace", func(t *testing.T) {
		env := newCopyServiceEnv(t)
		err := env.copyService().CheckPermission(env.user, env.target, env.target)
		assert.ErrorIs(t, err, copier.ErrSameDataspace)
	})

	t.Run("should reject users without the copy permission", func(t *testing.T) {
		env := newCopyServiceEnv(t)
		env.rbac.On("IsAllowed", "alternate_user", shared.ObjectCopy, shared.ActionCreate).Return(false, nil)

		err := env.copyService().CheckPermission(env.user, env.reference, env.target)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("should allow copying from the reference dataspace into the own dataspace", func(t *testing.T) {
		env := newCopyServiceEnv(t)
		env.rbac.On("IsAllowed", "alternate_user", shared.ObjectCopy, shared.ActionCreate).Return(true, nil)

		assert.NoError(t, env.copyService().CheckPermission(env.user, env.reference, env.target))
	})

	t.Run("should reject copying into a foreign dataspace", func(t *testing.T) {
		env := newCopyServiceEnv(t)
		env.rbac.On("IsAllowed", "alternate_user", shared.ObjectCopy, shared.ActionCreate).Return(true, nil)

		err := env.copyService().CheckPermission(env.user, env.reference, env.other)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("should allow reference users to copy between any dataspaces", func(t *testing.T) {
		env := newCopyServiceEnv(t)
		referenceUser := tests.CreateUser(t, env.db, env.reference, "nexb_user")
		rbac := mocks.NewAccessControl(t)
		rbac.On("IsAllowed", "nexb_user", shared.ObjectCopy, shared.ActionCreate).Return(true, nil)
		env.provider.On("GetDomainRBAC", env.reference.Slug).Return(rbac)

		assert.NoError(t, env.copyService().CheckPermission(referenceUser, env.target, env.other))
	})
}

func TestCopyBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("should sort every object into its bucket", func(t *testing.T) {
		env := newCopyServiceEnv(t)
		env.rbac.On("IsAllowed", "alternate_user", shared.ObjectCopy, shared.ActionCreate).Return(true, nil)

		apache := tests.CreateOwner(t, env.db, env.reference, "Apache")
		mozilla := tests.CreateOwner(t, env.db, env.reference, "Mozilla")
		missing := uuid.New()
		s := env.copyService()

		report, err := s.CopyBatch(ctx, env.user, dtos.CopyRequest{
			Model:  "owner",
			Source: env.reference.Name,
			Target: env.target.Name,
			UUIDs:  []uuid.UUID{apache.UUID, missing},
		})
		require.NoError(t, err)
		require.Len(t, report.Copied, 1)
		assert.Equal(t, apache.UUID, report.Copied[0].UUID)
		require.Len(t, report.Errors, 1)
		assert.Equal(t, missing, report.Errors[0].UUID)

		report, err = s.CopyBatch(ctx, env.user, dtos.CopyRequest{
			Model:  "owner",
			Source: env.reference.Name,
			Target: env.target.Name,
			UUIDs:  []uuid.UUID{apache.UUID, mozilla.UUID},
		})
		require.NoError(t, err)
		assert.Len(t, report.Copied, 1)
		assert.Len(t, report.Skipped, 1)
		assert.Empty(t, report.Errors)

		require.NoError(t, env.db.Model(&models.Owner{}).Where("id = ?", apache.ID).Update("notes", "updated").Error)
		report, err = s.CopyBatch(ctx, env.user, dtos.CopyRequest{
			Model:  "owner",
			Source: env.reference.Name,
			Target: env.target.Name,
			UUIDs:  []uuid.UUID{apache.UUID},
			Update: true,
		})
		require.NoError(t, err)
		require.Len(t, report.Updated, 1)
		assert.Equal(t, []string{"notes"}, report.Updated[0].ChangedFields)
	})

	t.Run("should keep going when one object collides in the target", func(t *testing.T) {
		env := newCopyServiceEnv(t)
		env.rbac.On("IsAllowed", "alternate_user", shared.ObjectCopy, shared.ActionCreate).Return(true, nil)

		apache := tests.CreateOwner(t, env.db, env.reference, "Apache")
		mozilla := tests.CreateOwner(t, env.db, env.reference, "Mozilla")
		gnu := tests.CreateOwner(t, env.db, env.reference, "GNU Project")
		// same name, different uuid
		tests.CreateOwner(t, env.db, env.target, "Mozilla")

		report, err := env.copyService().CopyBatch(ctx, env.user, dtos.CopyRequest{
			Model:  "owner",
			Source: env.reference.Name,
			Target: env.target.Name,
			UUIDs:  []uuid.UUID{apache.UUID, mozilla.UUID, gnu.UUID},
		})
		require.NoError(t, err)

		require.Len(t, report.Copied, 2)
		assert.Equal(t, apache.UUID, report.Copied[0].UUID)
		assert.Equal(t, gnu.UUID, report.Copied[1].UUID)
		require.Len(t, report.Errors, 1)
		assert.Equal(t, mozilla.UUID, report.Errors[0].UUID)

		var n int64
		require.NoError(t, env.db.Model(&models.Owner{}).Where("dataspace_id = ? AND uuid = ?", env.target.ID, mozilla.UUID).Count(&n).Error)
		assert.Zero(t, n)
	})

	t.Run("should reject skipping the copied model", func(t *testing.T) {
		env := newCopyServiceEnv(t)
		owner := tests.CreateOwner(t, env.db, env.reference, "Apache")

		_, err := env.copyService().CopyBatch(ctx, env.user, dtos.CopyRequest{
			Model:   "owner",
			Source:  env.reference.Name,
			Target:  env.target.Name,
			UUIDs:   []uuid.UUID{owner.UUID},
			Exclude: map[string]models.ExclusionEntry{"owner": {Skip: true}},
		})
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "exclude", validationErr.Field)
	})

	t.Run("should apply the requested exclusions", func(t *testing.T) {
		env := newCopyServiceEnv(t)
		env.rbac.On("IsAllowed", "alternate_user", shared.ObjectCopy, shared.ActionCreate).Return(true, nil)

		owner := tests.CreateOwner(t, env.db, env.reference, "Apache")
		require.NoError(t, env.db.Model(&models.Owner{}).Where("id = ?", owner.ID).Update("notes", "internal").Error)

		report, err := env.copyService().CopyBatch(ctx, env.user, dtos.CopyRequest{
			Model:   "owner",
			Source:  env.reference.Name,
			Target:  env.target.Name,
			UUIDs:   []uuid.UUID{owner.UUID},
			Exclude: map[string]models.ExclusionEntry{"owner": {Fields: []string{"notes"}}},
		})
		require.NoError(t, err)
		require.Len(t, report.Copied, 1)

		var copied models.Owner
		require.NoError(t, env.db.Where("dataspace_id = ? AND uuid = ?", env.target.ID, owner.UUID).First(&copied).Error)
		assert.Empty(t, copied.Notes)
	})

	t.Run("should reject unknown models", func(t *testing.T) {
		env := newCopyServiceEnv(t)
		_, err := env.copyService().CopyBatch(ctx, env.user, dtos.CopyRequest{Model: "unknownmodel", Source: env.reference.Name, Target: env.target.Name})
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "model", validationErr.Field)
	})

	t.Run("should reject unknown dataspaces", func(t *testing.T) {
		env := newCopyServiceEnv(t)
		_, err := env.copyService().CopyBatch(ctx, env.user, dtos.CopyRequest{Model: "owner", Source: "nowhere", Target: env.target.Name})
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "source", validationErr.Field)
	})
}

func TestCompareService(t *testing.T) {
	env := newCopyServiceEnv(t)
	env.rbac.On("IsAllowed", "alternate_user", shared.ObjectCopy, shared.ActionRead).Return(true, nil)

	apache := tests.CreateOwner(t, env.db, env.reference, "Apache")
	mozilla := tests.CreateOwner(t, env.db, env.reference, "Mozilla")
	require.NoError(t, env.db.Transaction(func(tx *gorm.DB) error {
		_, err := env.copier.CopyObject(context.Background(), tx, &apache, env.target.ID, nil, copier.CopyOptions{})
		return err
	}))
	require.NoError(t, env.db.Model(&models.Owner{}).Where("id = ?", apache.ID).Update("alias", "ASF").Error)

	s := NewCompareService(env.db, env.copier, repositories.NewDataspaceRepository(env.db), env.provider)
	comparisons, err := s.Compare(context.Background(), env.user, dtos.CompareRequest{
		Model:  "owner",
		Source: env.reference.Name,
		Target: env.target.Name,
		UUIDs:  []uuid.UUID{apache.UUID, mozilla.UUID},
	})
	require.NoError(t, err)
	require.Len(t, comparisons, 2)

	byName := map[string]copier.Comparison{}
	for _, c := range comparisons {
		byName[c.Source.String()] = c
	}
	require.True(t, byName["Apache"].Matched())
	require.Len(t, byName["Apache"].Diffs, 1)
	assert.Equal(t, "alias", byName["Apache"].Diffs[0].Field)
	assert.False(t, byName["Mozilla"].Matched())
}

func TestURNService(t *testing.T) {
	db := tests.NewSQLiteDB(t)
	dataspace := tests.CreateDataspace(t, db, "nexB")
	owner := tests.CreateOwner(t, db, dataspace, "Apache")
	tests.CreateLicense(t, db, dataspace, owner, "apache-2.0")
	tests.CreateComponent(t, db, dataspace, "Zlib.Ada", "1.3")

	s := NewURNService(repositories.NewLicenseRepository(db), repositories.NewOwnerRepository(db), repositories.NewComponentRepository(db))
	ctx := context.Background()

	t.Run("should resolve a component", func(t *testing.T) {
		obj, err := s.Resolve(ctx, dataspace.ID, "urn:dje:component:Zlib.Ada:1.3")
		require.NoError(t, err)
		component, ok := obj.(models.Component)
		require.True(t, ok)
		assert.Equal(t, "Zlib.Ada", component.Name)
	})

	t.Run("should resolve a license and an owner", func(t *testing.T) {
		obj, err := s.Resolve(ctx, dataspace.ID, "urn:dje:license:apache-2.0")
		require.NoError(t, err)
		assert.Equal(t, "apache-2.0", obj.(models.License).Key)

		obj, err = s.Resolve(ctx, dataspace.ID, "urn:dje:owner:Apache")
		require.NoError(t, err)
		assert.Equal(t, "Apache", obj.(models.Owner).Name)
	})

	t.Run("should report a missing segment as urn error", func(t *testing.T) {
		_, err := s.Resolve(ctx, dataspace.ID, "urn:dje:component:Zlib.Ada")
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "Invalid number of segments"))
	})

	t.Run("should report unknown objects as not found", func(t *testing.T) {
		_, err := s.Resolve(ctx, dataspace.ID, "urn:dje:component:Zlib.Ada:2.0")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDataspaceService(t *testing.T) {
	ctx := context.Background()

	newService := func(t *testing.T) (*dataspaceService, *gorm.DB, *mocks.RBACProvider) {
		db := tests.NewSQLiteDB(t)
		provider := mocks.NewRBACProvider(t)
		s := NewDataspaceService(repositories.NewDataspaceRepository(db), provider, copier.DefaultRegistry(), copier.NewPolicyResolver(16, time.Minute))
		return s, db, provider
	}

	t.Run("should create the dataspace with a configuration and its roles", func(t *testing.T) {
		s, db, provider := newService(t)
		rbac := mocks.NewAccessControl(t)
		rbac.On("InheritRole", mock.Anything, mock.Anything).Return(nil)
		rbac.On("AllowRole", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		provider.On("GetDomainRBAC", "my-company").Return(rbac)

		dataspace := models.Dataspace{Name: "My Company"}
		require.NoError(t, s.Create(ctx, &dataspace))
		assert.Equal(t, "my-company", dataspace.Slug)

		var count int64
		require.NoError(t, db.Model(&models.DataspaceConfiguration{}).Where("dataspace_id = ?", dataspace.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
		rbac.AssertCalled(t, "AllowRole", shared.RoleMember, shared.ObjectCopy, []shared.Action{shared.ActionCreate, shared.ActionRead})
	})

	t.Run("should import copy defaults from yaml", func(t *testing.T) {
		s, db, _ := newService(t)
		dataspace := tests.CreateDataspace(t, db, "nexB")

		doc := `
copy_defaults:
  organization:
    owner: [notes, alias]
  license_library:
    licenseannotation: SKIP
`
		configuration, err := s.ImportCopyDefaults(ctx, dataspace, strings.NewReader(doc))
		require.NoError(t, err)

		copyDefaults := configuration.CopyDefaults.Data()
		entry, ok := copyDefaults.Lookup("organization", "owner")
		require.True(t, ok)
		assert.Equal(t, []string{"notes", "alias"}, entry.Fields)
		entry, ok = copyDefaults.Lookup("license_library", "licenseannotation")
		require.True(t, ok)
		assert.True(t, entry.Skip)
		assert.Empty(t, configuration.UpdateDefaults.Data())

		stored, err := repositories.NewDataspaceRepository(db).ReadConfiguration(nil, dataspace.ID)
		require.NoError(t, err)
		assert.Equal(t, copyDefaults, stored.CopyDefaults.Data())
	})

	t.Run("should reject models of another app", func(t *testing.T) {
		s, db, _ := newService(t)
		dataspace := tests.CreateDataspace(t, db, "nexB")

		_, err := s.ImportCopyDefaults(ctx, dataspace, strings.NewReader("copy_defaults:\n  license_library:\n    owner: [notes]\n"))
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("should reject unknown sentinels", func(t *testing.T) {
		s, db, _ := newService(t)
		dataspace := tests.CreateDataspace(t, db, "nexB")

		_, err := s.ImportCopyDefaults(ctx, dataspace, strings.NewReader("copy_defaults:\n  organization:\n    owner: IGNORE\n"))
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("should reject field lists that are not strings", func(t *testing.T) {
		s, db, _ := newService(t)
		dataspace := tests.CreateDataspace(t, db, "nexB")

		_, err := s.ImportCopyDefaults(ctx, dataspace, strings.NewReader("update_defaults:\n  organization:\n    owner: [1, 2]\n"))
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "update_defaults", validationErr.Field)
	})
}

func TestUserService(t *testing.T) {
	ctx := context.Background()
	db := tests.NewSQLiteDB(t)
	dataspace := tests.CreateDataspace(t, db, "nexB")

	rbac := mocks.NewAccessControl(t)
	rbac.On("GrantRole", "admin_user", shared.RoleAdmin).Return(nil)
	provider := mocks.NewRBACProvider(t)
	provider.On("GetDomainRBAC", dataspace.Slug).Return(rbac)

	s := NewUserService(repositories.NewUserRepository(db), repositories.NewDataspaceRepository(db), provider)

	user := models.User{Username: "admin_user", DataspaceID: dataspace.ID, IsSuperuser: true}
	key, err := s.Create(ctx, &user)
	require.NoError(t, err)
	assert.Len(t, key, 40)
	assert.NotEqual(t, key, user.APIKeyHash)

	authenticated, err := s.Authenticate(key)
	require.NoError(t, err)
	assert.Equal(t, user.ID, authenticated.ID)
	require.NotNil(t, authenticated.Dataspace)
	assert.Equal(t, "nexB", authenticated.Dataspace.Name)

	_, err = s.Authenticate("wrong")
	assert.ErrorIs(t, err, ErrInvalidAPIKey)

	_, err = s.Create(ctx, &models.User{Username: "ghost", DataspaceID: 4242})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
