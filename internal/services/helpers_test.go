package services

import (
	"testing"
	"time"

	"github.com/mapboard-app/mapboard/internal/config"
	"github.com/mapboard-app/mapboard/internal/database"
	"github.com/mapboard-app/mapboard/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Reconcile(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiry:     time.Hour,
		AdminUsername: "Admin2",
	}
}

func seedUser(t *testing.T, db *gorm.DB, username string, isAdmin, canDraw bool) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Username: username, Password: string(hash), IsAdmin: isAdmin, CanDraw: canDraw}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedDrawing(t *testing.T, db *gorm.DB, ownerID *uint) models.Drawing {
	t.Helper()
	drawing := models.Drawing{
		Type:   models.DrawingMarker,
		Data:   datatypes.JSON(`{"position":{"lat":42.19,"lng":24.33}}`),
		Title:  "Test marker",
		UserID: ownerID,
	}
	require.NoError(t, db.Create(&drawing).Error)
	return drawing
}

func seedThread(t *testing.T, db *gorm.DB, categoryID uint, userID *uint, title string) models.ForumThread {
	t.Helper()
	thread := models.ForumThread{
		CategoryID: categoryID,
		Title:      title,
		UserID:     userID,
		LastPostAt: time.Now(),
	}
	require.NoError(t, db.Create(&thread).Error)
	return thread
}

func firstCategory(t *testing.T, db *gorm.DB, name string) models.ForumCategory {
	t.Helper()
	var cat models.ForumCategory
	require.NoError(t, db.Where("name = ?", name).First(&cat).Error)
	return cat
}
