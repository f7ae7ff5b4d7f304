package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wastecare/wastecare-api/config"
	"github.com/wastecare/wastecare-api/models"
)

func setupAuthTest(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	config.SetConfig(&config.Config{
		GoEnv:     "test",
		JWTSecret: "test-secret",
	})
	return db
}

func createAuthUser(t *testing.T, db *gorm.DB, username, role string, active bool) *models.User {
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
		IsActive:     active,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return &user
}

func protectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{RequireAuth()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		user, err := GetCurrentUser(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"username": user.Username}})
	})
	router.GET("/protected", handlers...)
	return router
}

func requestWithToken(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	db := setupAuthTest(t)
	user := createAuthUser(t, db, "resident1", models.RoleResident, true)
	dormant := createAuthUser(t, db, "dormant", models.RoleResident, false)
	router := protectedRouter()

	t.Run("Valid token passes and loads the user", func(t *testing.T) {
		token, err := GenerateToken(config.GetConfig(), user)
		assert.NoError(t, err)

		w := requestWithToken(router, token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "resident1")
	})

	t.Run("Missing header is rejected", func(t *testing.T) {
		w := requestWithToken(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Garbage token is rejected", func(t *testing.T) {
		w := requestWithToken(router, "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Token signed with another secret is rejected", func(t *testing.T) {
		forged, err := GenerateToken(&config.Config{JWTSecret: "other-secret"}, user)
		assert.NoError(t, err)

		w := requestWithToken(router, forged)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Token for a deleted user is rejected", func(t *testing.T) {
		ghost := createAuthUser(t, db, "ghost", models.RoleResident, true)
		token, err := GenerateToken(config.GetConfig(), ghost)
		assert.NoError(t, err)
		db.Unscoped().Delete(ghost)

		w := requestWithToken(router, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Deactivated user is rejected", func(t *testing.T) {
		token, err := GenerateToken(config.GetConfig(), dormant)
		assert.NoError(t, err)

		w := requestWithToken(router, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireElevated(t *testing.T) {
	db := setupAuthTest(t)
	resident := createAuthUser(t, db, "resident1", models.RoleResident, true)
	staff := createAuthUser(t, db, "staff1", models.RoleStaff, true)
	router := protectedRouter(RequireElevated())

	t.Run("Resident is forbidden", func(t *testing.T) {
		token, err := GenerateToken(config.GetConfig(), resident)
		assert.NoError(t, err)

		w := requestWithToken(router, token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Staff passes", func(t *testing.T) {
		token, err := GenerateToken(config.GetConfig(), staff)
		assert.NoError(t, err)

		w := requestWithToken(router, token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	db := setupAuthTest(t)
	staff := createAuthUser(t, db, "staff1", models.RoleStaff, true)
	admin := createAuthUser(t, db, "admin1", models.RoleAdmin, true)
	router := protectedRouter(RequireAdmin())

	t.Run("Staff is forbidden", func(t *testing.T) {
		token, err := GenerateToken(config.GetConfig(), staff)
		assert.NoError(t, err)

		w := requestWithToken(router, token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Admin passes", func(t *testing.T) {
		token, err := GenerateToken(config.GetConfig(), admin)
		assert.NoError(t, err)

		w := requestWithToken(router, token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestTokenClaims(t *testing.T) {
	setupAuthTest(t)
	user := &models.User{Username: "resident1", Role: models.RoleResident}
	user.ID = 42

	tokenString, err := GenerateToken(config.GetConfig(), user)
	assert.NoError(t, err)

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, models.RoleResident, claims.Role)
	assert.Equal(t, "resident1", claims.Subject)
}
