package repositories

import (
	"errors"
	"testing"

	"github.com/aboutcode-org/dejacode/database"
	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCatalogRepository(t *testing.T) {
	db := tests.NewSQLiteDB(t)
	nexb := tests.CreateDataspace(t, db, "nexB")
	repository := newCatalogRepository[models.Owner](db)

	t.Run("should create read save and delete a row", func(t *testing.T) {
		owner := models.Owner{Name: "Apache"}
		owner.DataspaceID = nexb.ID
		require.NoError(t, repository.Create(nil, &owner))
		assert.NotZero(t, owner.ID)

		owner.Notes = "foundation"
		require.NoError(t, repository.Save(nil, &owner))

		stored, err := repository.Read(owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "foundation", stored.Notes)
		assert.Equal(t, owner.UUID, stored.UUID)

		require.NoError(t, repository.Delete(nil, owner.ID))
		_, err = repository.Read(owner.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("should not write associations", func(t *testing.T) {
		owner := tests.CreateOwner(t, db, nexb, "Mozilla")
		license := models.License{Key: "mpl-2.0", Name: "Mozilla Public License 2.0", ShortName: "MPL 2.0", OwnerID: owner.ID}
		license.DataspaceID = nexb.ID
		license.Owner = &models.Owner{Name: "never stored"}

		require.NoError(t, newCatalogRepository[models.License](db).Create(nil, &license))

		var n int64
		require.NoError(t, db.Model(&models.Owner{}).Where("name = ?", "never stored").Count(&n).Error)
		assert.Zero(t, n)
	})

	t.Run("should roll back a failing transaction", func(t *testing.T) {
		err := repository.Transaction(func(tx *gorm.DB) error {
			owner := models.Owner{Name: "GNU Project"}
			owner.DataspaceID = nexb.ID
			if err := repository.Create(tx, &owner); err != nil {
				return err
			}
			return errors.New("abort")
		})
		require.Error(t, err)

		var n int64
		require.NoError(t, db.Model(&models.Owner{}).Where("name = ?", "GNU Project").Count(&n).Error)
		assert.Zero(t, n)
	})

	t.Run("should report a unique violation as integrity violation", func(t *testing.T) {
		tests.CreateOwner(t, db, nexb, "Eclipse")
		duplicate := models.Owner{Name: "Eclipse"}
		duplicate.DataspaceID = nexb.ID

		err := repository.Create(nil, &duplicate)
		require.Error(t, err)
		assert.True(t, database.IsIntegrityViolation(err))
	})
}
