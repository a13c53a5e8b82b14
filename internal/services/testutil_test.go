package services

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"inkspot_backend/internal/config"
	"inkspot_backend/internal/models"
	modelchat "inkspot_backend/internal/models/chat"
)

func TestMain(m *testing.M) {
	// Конфигурация без config.yaml: токенам нужен секрет и TTL
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg

	os.Exit(m.Run())
}

// setupTestDB поднимает изолированную in-memory SQLite на тест.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Appointment{},
		&models.Post{},
		&models.Review{},
		&modelchat.Chat{},
		&modelchat.Message{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, role models.UserRole, name, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		FullName:     name,
	}
	if role == models.UserRoleArtist {
		user.StudioName = name + " Studio"
		user.City = "Almaty"
		user.Styles = []string{"blackwork"}
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// recordingPusher собирает отправленные ws-события для проверок.
type recordingPusher struct {
	events []pushedEvent
}

type pushedEvent struct {
	UserID  string
	Event   string
	Payload interface{}
}

func (p *recordingPusher) PushToUser(userID string, event string, payload interface{}) {
	p.events = append(p.events, pushedEvent{UserID: userID, Event: event, Payload: payload})
}

func (p *recordingPusher) eventsFor(userID string) []pushedEvent {
	var out []pushedEvent
	for _, e := range p.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}
