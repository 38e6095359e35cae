package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"socialnet/backend/internal/auth"
	"socialnet/backend/internal/config"
	"socialnet/backend/internal/database"
	"socialnet/backend/internal/models"
	"socialnet/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "password123"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{
		JWTSecret:  "test-secret",
		UploadDir:  filepath.Join(os.TempDir(), "socialnet-test-uploads"),
		AdminEmail: "admin@example.com",
	}
	os.Exit(m.Run())
}

// setupTest opens a fresh in-memory database named after the test and returns
// a router with the full route table, so each test starts from empty tables.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	dbName := strings.ReplaceAll(t.Name(), "/", "_")
	database.Connect(fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName))
	return newTestRouter()
}

func newTestRouter() *gin.Engine {
	router := gin.New()
	api := router.Group("/api")

	api.POST("/register", RegisterUser)
	api.POST("/login", LoginUser)
	api.POST("/request-password-reset", RequestPasswordReset)
	api.POST("/reset-password", ResetPassword)

	session := api.Group("")
	session.Use(auth.AuthMiddleware())
	{
		session.POST("/logout", LogoutUser)
		session.GET("/me", GetMe)
		session.GET("/users", SearchUsers)
		session.GET("/profile/:id", GetProfile)
		session.PUT("/profile", UpdateProfile)

		session.POST("/friend-request", SendFriendRequest)
		session.PUT("/friend-request/:id", RespondFriendRequest)
		session.GET("/friends", ListFriends)

		session.GET("/feed", GetFeed)
		session.POST("/posts", CreatePost)
		session.POST("/posts/:id/like", ToggleLike)
		session.POST("/posts/:id/comments", CreateComment)
		session.GET("/posts/:id/comments", ListComments)

		session.POST("/groups", CreateGroup)
		session.GET("/groups", ListGroups)
		session.POST("/groups/:id/join", JoinGroup)
		session.GET("/groups/:id/members", ListGroupMembers)

		session.POST("/messages", SendMessage)
		session.GET("/messages/user/:id", GetDirectMessages)
		session.GET("/messages/group/:id", GetGroupMessages)
	}

	adminRoutes := api.Group("/admin")
	adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
	{
		adminRoutes.GET("/users", AdminListUsers)
		adminRoutes.DELETE("/users/:id", AdminDeleteUser)
		adminRoutes.GET("/posts", AdminListPosts)
		adminRoutes.DELETE("/posts/:id", AdminDeletePost)
		adminRoutes.GET("/dashboard-stats", AdminDashboardStats)
	}

	return router
}

func createTestUser(t *testing.T, name, email string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		FullName:     name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func createTestAdmin(t *testing.T) models.User {
	t.Helper()
	admin := createTestUser(t, "Site Admin", config.AppConfig.AdminEmail)
	require.NoError(t, database.DB.Model(&admin).Update("role", models.RoleAdmin).Error)
	admin.Role = models.RoleAdmin
	return admin
}

func tokenFor(t *testing.T, userID uint) string {
	t.Helper()
	token, err := jwt.GenerateToken(userID)
	require.NoError(t, err)
	return token
}

// doJSON executes a request against the router with an optional bearer token
// and JSON body.
func doJSON(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// doForm executes a multipart form request without any file parts, the way
// browser clients submit forms when no file was chosen.
func doForm(router *gin.Engine, method, path, token string, fields map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		_ = mw.WriteField(name, value)
	}
	_ = mw.Close()

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}

// befriend marks two users as accepted friends directly in the database.
func befriend(t *testing.T, a, b models.User) {
	t.Helper()
	rel := models.Friendship{User1ID: a.ID, User2ID: b.ID, Status: models.StatusAccepted}
	require.NoError(t, database.DB.Create(&rel).Error)
}

func createTestPost(t *testing.T, author models.User, content string) models.Post {
	t.Helper()
	post := models.Post{UserID: author.ID, Content: content}
	require.NoError(t, database.DB.Create(&post).Error)
	return post
}
