package repository_test

import (
	"fmt"
	"testing"

	"github.com/folioworks/folio/pkg/infra/database"
	_ "github.com/folioworks/folio/pkg/infra/migrations"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewDB(logrus.New(), &database.Config{
		Driver: database.DriverSQLite,
		Path:   fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db.DB
}
