package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"boardapi/internal/middleware"
	"boardapi/internal/models"
	"boardapi/internal/repository"
	"boardapi/internal/services"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(&models.User{}))
	s.db = db

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, testJWTSecret)
	authHandler := NewAuthHandler(authService)

	r := gin.New()
	auth := r.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", middleware.RequireAuth(testJWTSecret), authHandler.GetCurrentUser)
	s.router = r
}

func (s *AuthHandlerTestSuite) post(path string, body gin.H) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	s.Require().NoError(json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthHandlerTestSuite) signup(username, password string) {
	w := s.post("/api/auth/signup", gin.H{"username": username, "password": password})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
}

func (s *AuthHandlerTestSuite) TestSignupStoresHashedPassword() {
	s.signup("alice", "s3cretpass")

	var user models.User
	s.Require().NoError(s.db.Where("username = ?", "alice").First(&user).Error)
	s.NotEqual("s3cretpass", user.PasswordHash)
	s.NotEmpty(user.PasswordHash)
}

func (s *AuthHandlerTestSuite) TestSignupDuplicateUsernameConflicts() {
	s.signup("alice", "s3cretpass")

	w := s.post("/api/auth/signup", gin.H{"username": "alice", "password": "otherpass1"})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *AuthHandlerTestSuite) TestSignupShortPasswordRejected() {
	w := s.post("/api/auth/signup", gin.H{"username": "alice", "password": "short"})
	s.Equal(http.StatusBadRequest, w.Code)

	var apiErr struct {
		Field string `json:"field"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &apiErr))
	s.Equal("password", apiErr.Field)
}

func (s *AuthHandlerTestSuite) TestLoginReturnsUsableToken() {
	s.signup("alice", "s3cretpass")

	w := s.post("/api/auth/login", gin.H{"username": "alice", "password": "s3cretpass"})
	s.Require().Equal(http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.NotEmpty(resp.Token)
	s.Equal("alice", resp.User.Username)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	me := httptest.NewRecorder()
	s.router.ServeHTTP(me, req)
	s.Equal(http.StatusOK, me.Code)
	s.Contains(me.Body.String(), "alice")
}

func (s *AuthHandlerTestSuite) TestLoginWrongPassword() {
	s.signup("alice", "s3cretpass")

	w := s.post("/api/auth/login", gin.H{"username": "alice", "password": "wrongpass1"})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AuthHandlerTestSuite) TestLoginUnknownUser() {
	w := s.post("/api/auth/login", gin.H{"username": "ghost", "password": "s3cretpass"})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AuthHandlerTestSuite) TestMeRejectsBadToken() {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
