package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"boardapi/internal/database"
	"boardapi/internal/middleware"
	"boardapi/internal/models"
	"boardapi/internal/repository"
	"boardapi/internal/services"
	"boardapi/internal/utils"
)

type InvitationHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine

	admin   models.User
	member  models.User
	invitee models.User

	project models.Project
	tokens  map[uint64]string
}

func (s *InvitationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Membership{},
		&models.Invitation{},
		&models.Task{},
	)
	s.Require().NoError(err)

	s.db = db
	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	invitationService := services.NewInvitationService(invitationRepo, projectRepo, userRepo)
	invitationHandler := NewInvitationHandler(invitationService)

	r := gin.New()
	scoped := r.Group("/api/projects/:id")
	scoped.Use(middleware.RequireAuth(testJWTSecret), middleware.RequireProjectMembership())
	scoped.POST("/invitations", middleware.RequireRole(models.RoleAdmin), invitationHandler.Invite)

	invitations := r.Group("/api/invitations")
	invitations.Use(middleware.RequireAuth(testJWTSecret))
	invitations.GET("", invitationHandler.ListMyInvitations)
	invitations.POST("/:id/accept", invitationHandler.Accept)
	invitations.POST("/:id/decline", invitationHandler.Decline)

	s.router = r

	s.admin = s.createUser("alice")
	s.member = s.createUser("bob")
	s.invitee = s.createUser("dora")

	s.project = models.Project{Name: "Launch", CreatedBy: s.admin.ID}
	s.Require().NoError(db.Create(&s.project).Error)
	s.addMember(s.admin.ID, models.RoleAdmin)
	s.addMember(s.member.ID, models.RoleMember)

	s.tokens = make(map[uint64]string)
	for _, u := range []models.User{s.admin, s.member, s.invitee} {
		token, err := utils.GenerateToken(u.ID, testJWTSecret)
		s.Require().NoError(err)
		s.tokens[u.ID] = token
	}
}

func (s *InvitationHandlerTestSuite) createUser(username string) models.User {
	user := models.User{Username: username, PasswordHash: "x"}
	s.Require().NoError(s.db.Create(&user).Error)
	return user
}

func (s *InvitationHandlerTestSuite) addMember(userID uint64, role models.Role) {
	m := models.Membership{ProjectID: s.project.ID, UserID: userID, Role: role}
	s.Require().NoError(s.db.Create(&m).Error)
}

func (s *InvitationHandlerTestSuite) request(user models.User, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+s.tokens[user.ID])
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *InvitationHandlerTestSuite) invitePath() string {
	return fmt.Sprintf("/api/projects/%d/invitations", s.project.ID)
}

// invite creates a pending invitation for dora and returns its ID.
func (s *InvitationHandlerTestSuite) invite(role string) uint64 {
	w := s.request(s.admin, http.MethodPost, s.invitePath(),
		gin.H{"username": "dora", "role": role})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Invitation struct {
			ID     uint64                  `json:"id"`
			Status models.InvitationStatus `json:"status"`
		} `json:"invitation"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(models.InvitationPending, resp.Invitation.Status)
	return resp.Invitation.ID
}

func (s *InvitationHandlerTestSuite) TestInviteRequiresAdmin() {
	w := s.request(s.member, http.MethodPost, s.invitePath(),
		gin.H{"username": "dora", "role": "MEMBER"})
	s.Equal(http.StatusForbidden, w.Code)
	s.Contains(w.Body.String(), "ADMIN")
}

func (s *InvitationHandlerTestSuite) TestInviteRejectsAdminRole() {
	w := s.request(s.admin, http.MethodPost, s.invitePath(),
		gin.H{"username": "dora", "role": "ADMIN"})
	s.Equal(http.StatusBadRequest, w.Code)

	var apiErr struct {
		Field string `json:"field"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &apiErr))
	s.Equal("role", apiErr.Field)
}

func (s *InvitationHandlerTestSuite) TestInviteUnknownUserGets404() {
	w := s.request(s.admin, http.MethodPost, s.invitePath(),
		gin.H{"username": "nobody", "role": "MEMBER"})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *InvitationHandlerTestSuite) TestInviteExistingMemberConflicts() {
	w := s.request(s.admin, http.MethodPost, s.invitePath(),
		gin.H{"username": "bob", "role": "VIEWER"})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *InvitationHandlerTestSuite) TestDuplicatePendingInvitationConflicts() {
	s.invite("MEMBER")

	w := s.request(s.admin, http.MethodPost, s.invitePath(),
		gin.H{"username": "dora", "role": "VIEWER"})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *InvitationHandlerTestSuite) TestInviteeListsPendingInvitations() {
	id := s.invite("VIEWER")

	w := s.request(s.invitee, http.MethodGet, "/api/invitations", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp struct {
		Invitations []struct {
			ID   uint64      `json:"id"`
			Role models.Role `json:"role"`
		} `json:"invitations"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp.Invitations, 1)
	s.Equal(id, resp.Invitations[0].ID)
	s.Equal(models.RoleViewer, resp.Invitations[0].Role)

	// Bystanders see nothing.
	w = s.request(s.member, http.MethodGet, "/api/invitations", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Empty(resp.Invitations)
}

func (s *InvitationHandlerTestSuite) TestAcceptGrantsInvitedRole() {
	id := s.invite("MEMBER")

	w := s.request(s.invitee, http.MethodPost, fmt.Sprintf("/api/invitations/%d/accept", id), nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var m models.Membership
	err := s.db.Where("project_id = ? AND user_id = ?", s.project.ID, s.invitee.ID).First(&m).Error
	s.Require().NoError(err)
	s.Equal(models.RoleMember, m.Role)
}

func (s *InvitationHandlerTestSuite) TestDeclineDoesNotGrantMembership() {
	id := s.invite("MEMBER")

	w := s.request(s.invitee, http.MethodPost, fmt.Sprintf("/api/invitations/%d/decline", id), nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp struct {
		Invitation struct {
			Status models.InvitationStatus `json:"status"`
		} `json:"invitation"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(models.InvitationDeclined, resp.Invitation.Status)

	var count int64
	s.db.Model(&models.Membership{}).
		Where("project_id = ? AND user_id = ?", s.project.ID, s.invitee.ID).
		Count(&count)
	s.Zero(count)
}

func (s *InvitationHandlerTestSuite) TestInvitationIsOneShot() {
	id := s.invite("MEMBER")
	path := fmt.Sprintf("/api/invitations/%d/accept", id)

	w := s.request(s.invitee, http.MethodPost, path, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.request(s.invitee, http.MethodPost, path, nil)
	s.Equal(http.StatusConflict, w.Code)

	w = s.request(s.invitee, http.MethodPost, fmt.Sprintf("/api/invitations/%d/decline", id), nil)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *InvitationHandlerTestSuite) TestOnlyInviteeCanRespond() {
	id := s.invite("MEMBER")

	w := s.request(s.member, http.MethodPost, fmt.Sprintf("/api/invitations/%d/accept", id), nil)
	s.Equal(http.StatusNotFound, w.Code)

	var inv models.Invitation
	s.Require().NoError(s.db.First(&inv, id).Error)
	s.Equal(models.InvitationPending, inv.Status)
}

func TestInvitationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(InvitationHandlerTestSuite))
}
