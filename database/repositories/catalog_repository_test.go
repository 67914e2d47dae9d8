package repositories

import (
	"testing"

	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/aboutcode-org/dejacode/tests"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDataspacedRepository(t *testing.T) {
	db := tests.NewSQLiteDB(t)
	nexb := tests.CreateDataspace(t, db, "nexB")
	other := tests.CreateDataspace(t, db, "Other")
	repository := NewOwnerRepository(db)

	apache := tests.CreateOwner(t, db, nexb, "Apache Software Foundation")
	tests.CreateOwner(t, db, nexb, "Mozilla")
	tests.CreateOwner(t, db, nexb, "Free Software Foundation")
	foreign := tests.CreateOwner(t, db, other, "Apache Software Foundation")

	t.Run("ReadByUUID is scoped to the dataspace", func(t *testing.T) {
		owner, err := repository.ReadByUUID(nil, nexb.ID, apache.UUID)
		require.NoError(t, err)
		assert.Equal(t, apache.ID, owner.ID)

		_, err = repository.ReadByUUID(nil, other.ID, apache.UUID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("ListByUUIDs ignores unknown uuids", func(t *testing.T) {
		owners, err := repository.ListByUUIDs(nil, nexb.ID, []uuid.UUID{apache.UUID, foreign.UUID, uuid.New()})
		require.NoError(t, err)
		require.Len(t, owners, 1)
		assert.Equal(t, apache.ID, owners[0].ID)
	})

	t.Run("ListPaged searches case insensitive", func(t *testing.T) {
		paged, err := repository.ListPaged(nexb.ID, shared.PageInfo{Page: 1, PageSize: 10}, "foundation", nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2), paged.Total)
		assert.Equal(t, "Apache Software Foundation", paged.Data[0].Name)
		assert.Equal(t, "Free Software Foundation", paged.Data[1].Name)
	})

	t.Run("ListPaged pages", func(t *testing.T) {
		paged, err := repository.ListPaged(nexb.ID, shared.PageInfo{Page: 2, PageSize: 2}, "", nil)
		require.NoError(t, err)
		assert.Equal(t, int64(3), paged.Total)
		require.Len(t, paged.Data, 1)
		assert.Equal(t, "Mozilla", paged.Data[0].Name)
	})

	t.Run("ReadByName", func(t *testing.T) {
		owner, err := repository.ReadByName(nil, other.ID, "Apache Software Foundation")
		require.NoError(t, err)
		assert.Equal(t, foreign.ID, owner.ID)
	})
}

func TestDataspaceRepository(t *testing.T) {
	db := tests.NewSQLiteDB(t)
	repository := NewDataspaceRepository(db)

	t.Run("Create picks the first free slug", func(t *testing.T) {
		first := models.Dataspace{Name: "Acme Corp"}
		require.NoError(t, repository.Create(nil, &first))
		second := models.Dataspace{Name: "acme-corp"}
		require.NoError(t, repository.Create(nil, &second))

		assert.Equal(t, "acme-corp", first.Slug)
		assert.Equal(t, "acme-corp-1", second.Slug)

		found, err := repository.ReadBySlug("acme-corp-1")
		require.NoError(t, err)
		assert.Equal(t, "acme-corp", found.Name)
	})

	t.Run("ReadConfiguration returns an empty configuration", func(t *testing.T) {
		dataspace := tests.CreateDataspace(t, db, "Unconfigured")
		configuration, err := repository.ReadConfiguration(nil, dataspace.ID)
		require.NoError(t, err)
		assert.Zero(t, configuration.ID)
		assert.Empty(t, configuration.CopyDefaults.Data())
	})

	t.Run("SaveConfiguration round trip", func(t *testing.T) {
		dataspace := tests.CreateDataspace(t, db, "Configured")
		configuration, err := repository.ReadConfiguration(nil, dataspace.ID)
		require.NoError(t, err)
		configuration.CopyDefaults.Data()["license_library"] = map[string]models.ExclusionEntry{
			"license": {Fields: []string{"guidance"}},
		}
		require.NoError(t, repository.SaveConfiguration(nil, &configuration))

		stored, err := repository.ReadConfiguration(nil, dataspace.ID)
		require.NoError(t, err)
		entry, ok := stored.CopyDefaults.Data().Lookup("license_library", "license")
		require.True(t, ok)
		assert.Equal(t, []string{"guidance"}, entry.Fields)
	})
}

func TestComponentRepositoryReplaceAssignedLicenses(t *testing.T) {
	db := tests.NewSQLiteDB(t)
	nexb := tests.CreateDataspace(t, db, "nexB")
	owner := tests.CreateOwner(t, db, nexb, "nexB")
	mit := tests.CreateLicense(t, db, nexb, owner, "mit")
	apache := tests.CreateLicense(t, db, nexb, owner, "apache-2.0")
	gpl := tests.CreateLicense(t, db, nexb, owner, "gpl-2.0")
	component := tests.CreateComponent(t, db, nexb, "zlib", "1.3")
	repository := NewComponentRepository(db)

	require.NoError(t, repository.ReplaceAssignedLicenses(nil, &component, []models.License{mit, apache}))
	var kept models.ComponentAssignedLicense
	require.NoError(t, db.Where("component_id = ? AND license_id = ?", component.ID, mit.ID).First(&kept).Error)

	require.NoError(t, repository.ReplaceAssignedLicenses(nil, &component, []models.License{mit, gpl}))

	var assigned []models.ComponentAssignedLicense
	require.NoError(t, db.Where("component_id = ?", component.ID).Order("license_id").Find(&assigned).Error)
	require.Len(t, assigned, 2)
	assert.Equal(t, mit.ID, assigned[0].LicenseID)
	assert.Equal(t, kept.UUID, assigned[0].UUID)
	assert.Equal(t, gpl.ID, assigned[1].LicenseID)
	assert.Equal(t, nexb.ID, assigned[1].DataspaceID)

	loaded, err := repository.ReadWithRelations(nil, nexb.ID, component.UUID)
	require.NoError(t, err)
	assert.Len(t, loaded.Licenses, 2)
}

func TestPackageRepositoryFindWithoutPackageURL(t *testing.T) {
	db := tests.NewSQLiteDB(t)
	nexb := tests.CreateDataspace(t, db, "nexB")

	withPurl := models.Package{DownloadURL: "https://registry.npmjs.org/lodash/-/lodash-4.17.21.tgz", Type: "npm", Name: "lodash"}
	withPurl.DataspaceID = nexb.ID
	withoutPurl := models.Package{DownloadURL: "https://files.pythonhosted.org/packages/source/d/django/Django-4.2.1.tar.gz"}
	withoutPurl.DataspaceID = nexb.ID
	require.NoError(t, db.Create(&withPurl).Error)
	require.NoError(t, db.Create(&withoutPurl).Error)
	tests.CreatePackage(t, db, nexb, "local.zip")

	packages, err := NewPackageRepository(db).FindWithoutPackageURL(nil, nexb.ID)
	require.NoError(t, err)
	require.Len(t, packages, 1)
	assert.Equal(t, withoutPurl.ID, packages[0].ID)
}

func TestHistoryRepository(t *testing.T) {
	db := tests.NewSQLiteDB(t)
	nexb := tests.CreateDataspace(t, db, "nexB")
	user := tests.CreateUser(t, db, nexb, "alice")
	repository := NewHistoryRepository(db)

	first, err := models.NewHistory(nexb.ID, "organization.owner", 7, "nexB", models.ActionAddition, "Added.", nil, &user.ID)
	require.NoError(t, err)
	require.NoError(t, repository.Create(nil, &first))
	second, err := models.NewHistory(nexb.ID, "organization.owner", 7, "nexB", models.ActionChange, "Changed notes.", map[string]any{"changes": []string{"notes"}}, &user.ID)
	require.NoError(t, err)
	require.NoError(t, repository.Create(nil, &second))
	other, err := models.NewHistory(nexb.ID, "license_library.license", 7, "mit", models.ActionAddition, "Added.", nil, nil)
	require.NoError(t, err)
	require.NoError(t, repository.Create(nil, &other))

	entries, err := repository.ListForObject("organization.owner", 7)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.ActionChange, entries[0].ActionFlag)
	require.NotNil(t, entries[0].User)
	assert.Equal(t, "alice", entries[0].User.Username)
}

func TestUserRepositoryFindByAPIKey(t *testing.T) {
	db := tests.NewSQLiteDB(t)
	nexb := tests.CreateDataspace(t, db, "nexB")
	tests.CreateUser(t, db, nexb, "alice")
	repository := NewUserRepository(db)

	user, err := repository.FindByAPIKey("alice-key")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	require.NotNil(t, user.Dataspace)
	assert.Equal(t, "nexB", user.Dataspace.Name)

	_, err = repository.FindByAPIKey("wrong")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
