// Package testutil holds the store and auth fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"anoa.com/skinannotator/internal/bootstrap"
	"anoa.com/skinannotator/internal/entity"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const JWTSecret = "test-secret"

// SetupTestDB opens a migrated SQLite database in a temp dir. The pool is
// limited to one connection so concurrent callers queue like on a busy
// Postgres pool.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db := openTestDB(t, path+"?_pragma=busy_timeout(5000)")
	if err := bootstrap.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// SetupSharedTestDB opens two handles on one migrated WAL-mode database, so
// a test can read through the second while the first holds a transaction.
func SetupSharedTestDB(t *testing.T) (writer, reader *gorm.DB) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "shared.db") + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	writer = openTestDB(t, dsn)
	if err := bootstrap.Migrate(writer); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return writer, openTestDB(t, dsn)
}

func openTestDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// CreateAnnotator inserts a user with its profile and returns the profile.
func CreateAnnotator(t *testing.T, db *gorm.DB, nickname string, xp int64) *entity.Annotator {
	t.Helper()

	user := &entity.User{
		Email:        nickname + "@example.com",
		PasswordHash: "x",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	profile := &entity.Annotator{
		UserID:   user.ID,
		Nickname: nickname,
		Role:     entity.RoleAnnotator,
		XP:       xp,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create annotator: %v", err)
	}
	return profile
}

// CreateAnnotation inserts an annotation record in the given status.
func CreateAnnotation(t *testing.T, db *gorm.DB, imgID int64, status string, annotatorID *uuid.UUID, at *time.Time) *entity.Annotation {
	t.Helper()

	ann := &entity.Annotation{
		ImgID:               imgID,
		Status:              status,
		AnnotationTimestamp: at,
	}
	if annotatorID != nil {
		id := annotatorID.String()
		ann.AnnotatorID = &id
	}
	if err := db.Create(ann).Error; err != nil {
		t.Fatalf("failed to create annotation %d: %v", imgID, err)
	}
	return ann
}

// Token signs a token for userID the way the auth service does.
func Token(t *testing.T, userID uuid.UUID) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(JWTSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}
