package database_test

import (
	"context"
	"testing"

	"github.com/aboutcode-org/dejacode/copier"
	"github.com/aboutcode-org/dejacode/database"
	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMigrationsOnPostgres(t *testing.T) {
	db := tests.NewPostgresDB(t)

	require.NoError(t, database.RunMigrationsWithDB(db))
	// a second run has nothing left to do
	require.NoError(t, database.RunMigrationsWithDB(db))

	version, dirty, err := database.GetMigrationVersionWithDB(db)
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.NotZero(t, version)

	t.Run("the migrated schema supports a copy between dataspaces", func(t *testing.T) {
		nexb := tests.CreateDataspace(t, db, "nexB")
		acme := tests.CreateDataspace(t, db, "acme")
		owner := tests.CreateOwner(t, db, nexb, "Apache Software Foundation")
		license := tests.CreateLicense(t, db, nexb, owner, "apache-2.0")

		c := copier.NewCopier(copier.DefaultRegistry(), copier.NewPolicyResolver(16, 0))

		var result copier.Result
		err := db.Transaction(func(tx *gorm.DB) error {
			var err error
			result, err = c.CopyObject(context.Background(), tx, &license, acme.ID, nil, copier.CopyOptions{})
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, copier.StatusCopied, result.Status)

		var copied models.License
		require.NoError(t, db.Preload("Owner").Where("dataspace_id = ? AND uuid = ?", acme.ID, license.UUID).First(&copied).Error)
		assert.Equal(t, "apache-2.0", copied.Key)
		require.NotNil(t, copied.Owner)
		assert.Equal(t, owner.UUID, copied.Owner.UUID)
	})

	t.Run("a duplicate name is reported as integrity violation", func(t *testing.T) {
		err := db.Create(&models.Dataspace{Name: "nexB"}).Error
		assert.True(t, database.IsIntegrityViolation(err))
	})
}
