package controllers_test

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/intranet-portal/database"
	"github.com/yeremiapane/intranet-portal/services"
	"github.com/yeremiapane/intranet-portal/views"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Wednesday; current week is 2025-03-10..16, next is 17..23.
var testNow = time.Date(2025, time.March, 12, 10, 0, 0, 0, time.Local)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func newTestMenuService(db *gorm.DB, notifier services.MenuNotifier) *services.MenuService {
	svc := services.NewMenuService(database.NewMenuStore(db), notifier)
	svc.Now = func() time.Time { return testNow }
	return svc
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	tmpl, err := views.Templates()
	require.NoError(t, err)
	r.SetHTMLTemplate(tmpl)
	return r
}
