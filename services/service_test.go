package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"techkwiz/models"
)

// newTestDB opens an isolated in-memory sqlite database migrated with every
// model. The name is derived from the test so parallel tests do not share
// state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.AdminUser{},
		&models.QuizCategory{},
		&models.QuizQuestion{},
		&models.RewardedPopupConfig{},
		&models.ScriptInjection{},
		&models.AdSlot{},
		&models.AdAnalyticsEvent{},
		&models.SiteConfig{},
		&models.StatusCheck{},
	))
	return db
}

// recordingMailer captures the raw reset token instead of sending mail.
type recordingMailer struct {
	toEmail  string
	username string
	token    string
	sends    int
}

func (m *recordingMailer) SendPasswordReset(toEmail, username, resetToken string) error {
	m.toEmail = toEmail
	m.username = username
	m.token = resetToken
	m.sends++
	return nil
}
