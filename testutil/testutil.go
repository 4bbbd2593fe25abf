package testutil

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"campus-maintenance-server/config"
	"campus-maintenance-server/database"
	"campus-maintenance-server/models"
	"campus-maintenance-server/utils"
)

// Password is the plaintext credential of every user created by CreateUser
const Password = "password123"

// SetupTestDB opens an isolated in-memory database, migrates the schema and
// installs it as the shared connection. Each test gets its own database
// keyed by the test name.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.Load()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	database.DB = db
	return db
}

// CreateUser inserts an active user with the given role
func CreateUser(t *testing.T, db *gorm.DB, name, email string, role models.UserRole) models.User {
	t.Helper()

	hash, err := utils.HashPassword(Password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		FullName:     name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

// CreateBuilding inserts a building into the directory
func CreateBuilding(t *testing.T, db *gorm.DB, name string, hasFloors bool) models.Building {
	t.Helper()

	building := models.Building{Name: name, HasFloors: hasFloors}
	if err := db.Create(&building).Error; err != nil {
		t.Fatalf("failed to create building %s: %v", name, err)
	}
	return building
}

// CreateFloor inserts a floor for a building
func CreateFloor(t *testing.T, db *gorm.DB, buildingID uint, number int, label string) models.Floor {
	t.Helper()

	floor := models.Floor{BuildingID: buildingID, Number: number, Label: label}
	if err := db.Create(&floor).Error; err != nil {
		t.Fatalf("failed to create floor %s: %v", label, err)
	}
	return floor
}

// CreateRoom inserts a room for a building/floor
func CreateRoom(t *testing.T, db *gorm.DB, buildingID uint, floorID *uint, name string) models.Room {
	t.Helper()

	room := models.Room{BuildingID: buildingID, FloorID: floorID, Name: name}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("failed to create room %s: %v", name, err)
	}
	return room
}
