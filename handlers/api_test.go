package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"techkwiz/cache"
	"techkwiz/handlers"
	"techkwiz/middleware"
	"techkwiz/models"
	"techkwiz/routes"
	"techkwiz/services"
)

const testJWTSecret = "test-secret"

type nullMailer struct{}

func (nullMailer) SendPasswordReset(string, string, string) error { return nil }

// newTestAPI wires the full router against an isolated in-memory database,
// the same way main does.
func newTestAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:api_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
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

	appCache := cache.NewMemory()
	authService := services.NewAuthService(db, nullMailer{}, testJWTSecret, 30*time.Minute, bcrypt.MinCost, "admin@techkwiz.test")
	categoryService := services.NewCategoryService(db, appCache)
	questionService := services.NewQuestionService(db, appCache)
	rewardedService := services.NewRewardedConfigService(db)
	contentService := services.NewContentService(db)
	analyticsService := services.NewAnalyticsService(db)
	backupService := services.NewBackupService(db, appCache)
	siteConfigService := services.NewSiteConfigService(db)
	statusService := services.NewStatusService(db)

	router := gin.New()
	router.Use(middleware.CORS())
	routes.SetupRoutes(
		router,
		handlers.NewAuthHandler(authService),
		handlers.NewCategoryHandler(categoryService),
		handlers.NewQuestionHandler(questionService),
		handlers.NewContentHandler(contentService),
		handlers.NewRewardedConfigHandler(rewardedService),
		handlers.NewAnalyticsHandler(analyticsService),
		handlers.NewBackupHandler(backupService),
		handlers.NewSiteConfigHandler(siteConfigService),
		handlers.NewStatusHandler(statusService),
		handlers.NewQuizHandler(categoryService, questionService, rewardedService, contentService),
		testJWTSecret,
	)
	return router, db
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

func loginAs(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()

	w := doRequest(t, router, http.MethodPost, "/api/admin/setup", "", gin.H{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodPost, "/api/admin/login", "", gin.H{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var token services.TokenResponse
	decode(t, w, &token)
	require.NotEmpty(t, token.AccessToken)
	return token.AccessToken
}

func TestAdminEndToEnd(t *testing.T) {
	router, db := newTestAPI(t)

	token := loginAs(t, router, "admin", "Secr3t!")

	// Verify the issued token.
	w := doRequest(t, router, http.MethodGet, "/api/admin/verify", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var verify struct {
		Valid    bool   `json:"valid"`
		Username string `json:"username"`
	}
	decode(t, w, &verify)
	assert.True(t, verify.Valid)
	assert.Equal(t, "admin", verify.Username)

	// Create a category.
	w = doRequest(t, router, http.MethodPost, "/api/admin/categories", token, gin.H{
		"name": "Tech", "entry_fee": 100,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var category models.QuizCategory
	decode(t, w, &category)
	assert.Equal(t, 100, category.EntryFee)

	// Two questions under it.
	questionIDs := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		w = doRequest(t, router, http.MethodPost, "/api/admin/questions", token, gin.H{
			"question":       fmt.Sprintf("Question %d?", i),
			"options":        []string{"A", "B", "C"},
			"correct_answer": 0,
			"difficulty":     "beginner",
			"category":       category.ID,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var q models.QuizQuestion
		decode(t, w, &q)
		questionIDs = append(questionIDs, q.ID)
	}

	// Public quiz endpoint always returns exactly five, repeating the pool.
	w = doRequest(t, router, http.MethodGet, "/api/quiz/questions/"+category.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var quizQuestions []models.QuizQuestion
	decode(t, w, &quizQuestions)
	require.Len(t, quizQuestions, 5)
	for _, q := range quizQuestions {
		assert.Contains(t, questionIDs, q.ID)
	}

	// Delete the category; its questions must be gone.
	w = doRequest(t, router, http.MethodDelete, "/api/admin/categories/"+category.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.QuizQuestion{}).Where("category = ?", category.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	for _, id := range questionIDs {
		w = doRequest(t, router, http.MethodGet, "/api/quiz/question/"+id, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router, _ := newTestAPI(t)

	w := doRequest(t, router, http.MethodGet, "/api/admin/categories", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/admin/categories", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSetupDuplicateReturnsBadRequest(t *testing.T) {
	router, _ := newTestAPI(t)
	loginAs(t, router, "admin", "Secr3t!")

	w := doRequest(t, router, http.MethodPost, "/api/admin/setup", "", gin.H{
		"username": "admin", "password": "Other1!",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestForgotPasswordResponsesAreByteEqual(t *testing.T) {
	router, _ := newTestAPI(t)

	w := doRequest(t, router, http.MethodPost, "/api/admin/setup", "", gin.H{
		"username": "admin", "password": "Secr3t!", "email": "admin@techkwiz.test",
	})
	require.Equal(t, http.StatusOK, w.Code)

	known := doRequest(t, router, http.MethodPost, "/api/admin/forgot-password", "", gin.H{
		"email": "admin@techkwiz.test",
	})
	unknown := doRequest(t, router, http.MethodPost, "/api/admin/forgot-password", "", gin.H{
		"email": "ghost@techkwiz.test",
	})

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, known.Body.Bytes(), unknown.Body.Bytes())
}

func TestRewardedConfigAdminAndPublicViews(t *testing.T) {
	router, _ := newTestAPI(t)
	token := loginAs(t, router, "admin", "Secr3t!")

	// Public homepage resolve creates and persists the default.
	w := doRequest(t, router, http.MethodGet, "/api/quiz/rewarded-config", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var publicConfig models.RewardedPopupConfig
	decode(t, w, &publicConfig)
	assert.Equal(t, "Homepage", publicConfig.CategoryName)
	assert.Equal(t, 200, publicConfig.CoinReward)

	// Admin updates the homepage scope by literal.
	w = doRequest(t, router, http.MethodPut, "/api/admin/rewarded-config/homepage", token, gin.H{
		"coin_reward": 500,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The public view reflects the change; other fields are untouched.
	w = doRequest(t, router, http.MethodGet, "/api/quiz/rewarded-config", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &publicConfig)
	assert.Equal(t, 500, publicConfig.CoinReward)
	assert.Equal(t, 5, publicConfig.TriggerAfterQuestions)

	// Admin list shows the single scope.
	w = doRequest(t, router, http.MethodGet, "/api/admin/rewarded-config", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var configs []models.RewardedPopupConfig
	decode(t, w, &configs)
	assert.Len(t, configs, 1)

	// Public view requires no auth; admin get-by-scope does.
	w = doRequest(t, router, http.MethodGet, "/api/admin/rewarded-config/homepage", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTimerConfigEndpoint(t *testing.T) {
	router, _ := newTestAPI(t)
	token := loginAs(t, router, "admin", "Secr3t!")

	w := doRequest(t, router, http.MethodPost, "/api/admin/categories", token, gin.H{
		"name": "Tech", "timer_seconds": 45,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var category models.QuizCategory
	decode(t, w, &category)

	w = doRequest(t, router, http.MethodGet, "/api/quiz/categories/"+category.ID+"/timer-config", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var timerConfig models.TimerConfig
	decode(t, w, &timerConfig)
	assert.Equal(t, 45, timerConfig.TimerSeconds)
	assert.True(t, timerConfig.TimerEnabled)

	w = doRequest(t, router, http.MethodGet, "/api/quiz/categories/ghost/timer-config", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnalyticsEventAndExport(t *testing.T) {
	router, _ := newTestAPI(t)
	token := loginAs(t, router, "admin", "Secr3t!")

	w := doRequest(t, router, http.MethodPost, "/api/quiz/ad-analytics/event", "", gin.H{
		"event_type": "start", "placement": "homepage",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var recorded struct {
		Status string `json:"status"`
		ID     string `json:"id"`
	}
	decode(t, w, &recorded)
	assert.Equal(t, "ok", recorded.Status)
	assert.NotEmpty(t, recorded.ID)

	w = doRequest(t, router, http.MethodGet, "/api/admin/ad-analytics", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary services.AnalyticsSummary
	decode(t, w, &summary)
	assert.EqualValues(t, 1, summary.Totals.Starts)

	w = doRequest(t, router, http.MethodGet, "/api/admin/ad-analytics/export", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ad_analytics.csv")
	assert.True(t, strings.HasPrefix(w.Body.String(), "created_at,event_type,placement"))

	w = doRequest(t, router, http.MethodGet, "/api/admin/ad-analytics?from_ts=yesterday", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdsTxtServesConfiguredContent(t *testing.T) {
	router, _ := newTestAPI(t)
	token := loginAs(t, router, "admin", "Secr3t!")

	w := doRequest(t, router, http.MethodGet, "/ads.txt", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = doRequest(t, router, http.MethodPut, "/api/admin/site-config", token, gin.H{
		"ads_txt_content": "google.com, pub-1, DIRECT",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/ads.txt", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "google.com, pub-1, DIRECT", w.Body.String())
}

func TestExportImportRoundTripOverHTTP(t *testing.T) {
	router, _ := newTestAPI(t)
	token := loginAs(t, router, "admin", "Secr3t!")

	w := doRequest(t, router, http.MethodPost, "/api/admin/categories", token, gin.H{"name": "Tech"})
	require.Equal(t, http.StatusOK, w.Code)
	var category models.QuizCategory
	decode(t, w, &category)

	w = doRequest(t, router, http.MethodPost, "/api/admin/questions", token, gin.H{
		"question":       "Q?",
		"options":        []string{"A", "B"},
		"correct_answer": 1,
		"difficulty":     "beginner",
		"category":       category.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/admin/export/quiz-data", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var export models.QuizDataExport
	decode(t, w, &export)
	require.Len(t, export.Categories, 1)
	require.Len(t, export.Questions, 1)

	w = doRequest(t, router, http.MethodPost, "/api/admin/import/quiz-data", token, gin.H{
		"categories": export.Categories,
		"questions":  export.Questions,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodGet, "/api/quiz/categories/"+category.ID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStatusEndpoints(t *testing.T) {
	router, _ := newTestAPI(t)

	w := doRequest(t, router, http.MethodPost, "/api/status", "", gin.H{"client_name": "probe"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/status", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var checks []models.StatusCheck
	decode(t, w, &checks)
	require.Len(t, checks, 1)
	assert.Equal(t, "probe", checks[0].ClientName)
}
