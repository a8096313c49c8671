package fakeapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pevans/snooze/stories"
)

// Server is the in-memory API.
type Server struct {
	store  *store
	secret []byte
}

// New creates an empty server that signs tokens with secret.
func New(secret string) *Server {
	return &Server{
		store:  newStore(),
		secret: []byte(secret),
	}
}

// SetupRouter configures the Gin router with every API route.
func (s *Server) SetupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Add CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	})

	router.POST("/signup", s.HandleSignup)
	router.POST("/login", s.HandleLogin)

	router.GET("/stories", s.HandleListStories)
	router.POST("/stories", s.HandleCreateStory)
	router.GET("/stories/:storyId", s.HandleGetStory)
	router.DELETE("/stories/:storyId", s.HandleDeleteStory)

	router.GET("/users/:username", s.HandleGetUser)
	router.POST("/users/:username/favorites/:storyId", s.HandleAddFavorite)
	router.DELETE("/users/:username/favorites/:storyId", s.HandleRemoveFavorite)

	return router
}

// errorResponse writes the API's error envelope.
func errorResponse(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"status":  status,
			"title":   http.StatusText(status),
			"message": message,
		},
	})
}

type userRequest struct {
	User struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Name     string `json:"name"`
	} `json:"user"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

type storyRequest struct {
	Token string        `json:"token"`
	Story stories.Draft `json:"story"`
}

// HandleSignup handles POST /signup.
func (s *Server) HandleSignup(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	username := strings.TrimSpace(req.User.Username)
	if username == "" || req.User.Password == "" || strings.TrimSpace(req.User.Name) == "" {
		errorResponse(c, http.StatusBadRequest, "username, password and name are required")
		return
	}

	if _, err := s.store.createUser(username, req.User.Password, strings.TrimSpace(req.User.Name)); err != nil {
		if errors.Is(err, ErrUserExists) {
			errorResponse(c, http.StatusConflict, "There already exists a user with username '"+username+"'.")
			return
		}
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondWithToken(c, http.StatusCreated, username)
}

// HandleLogin handles POST /login.
func (s *Server) HandleLogin(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	username := strings.TrimSpace(req.User.Username)
	if err := s.store.checkPassword(username, req.User.Password); err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	s.respondWithToken(c, http.StatusOK, username)
}

func (s *Server) respondWithToken(c *gin.Context, status int, username string) {
	token, err := s.issueToken(username)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	profile, err := s.store.profile(username)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(status, gin.H{"token": token, "user": profile})
}

// HandleListStories handles GET /stories.
func (s *Server) HandleListStories(c *gin.Context) {
	skip := 0
	if skipParam := c.Query("skip"); skipParam != "" {
		parsed, err := strconv.Atoi(skipParam)
		if err != nil || parsed < 0 {
			errorResponse(c, http.StatusBadRequest, "Invalid skip parameter")
			return
		}
		skip = parsed
	}

	limit := stories.DefaultPageSize
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 1 {
			errorResponse(c, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	c.JSON(http.StatusOK, gin.H{"stories": s.store.listStories(skip, limit)})
}

// HandleCreateStory handles POST /stories.
func (s *Server) HandleCreateStory(c *gin.Context) {
	var req storyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	username, err := s.tokenUser(req.Token)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, "A valid token is required")
		return
	}

	if err := req.Story.Validate(); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	story := s.store.addStory(username, req.Story)
	c.JSON(http.StatusCreated, gin.H{"story": story})
}

// HandleGetStory handles GET /stories/:storyId.
func (s *Server) HandleGetStory(c *gin.Context) {
	story, err := s.store.getStory(c.Param("storyId"))
	if err != nil {
		errorResponse(c, http.StatusNotFound, "Could not find story with id '"+c.Param("storyId")+"'.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"story": story})
}

// HandleDeleteStory handles DELETE /stories/:storyId.
func (s *Server) HandleDeleteStory(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	username, err := s.tokenUser(req.Token)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, "A valid token is required")
		return
	}

	story, err := s.store.deleteStory(username, c.Param("storyId"))
	switch {
	case errors.Is(err, ErrStoryNotFound):
		errorResponse(c, http.StatusNotFound, "Could not find story with id '"+c.Param("storyId")+"'.")
		return
	case errors.Is(err, ErrNotOwner):
		errorResponse(c, http.StatusForbidden, err.Error())
		return
	case err != nil:
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Story deleted!", "story": story})
}

// HandleGetUser handles GET /users/:username.
func (s *Server) HandleGetUser(c *gin.Context) {
	username, ok := s.authorize(c, c.Query("token"))
	if !ok {
		return
	}

	profile, err := s.store.profile(username)
	if err != nil {
		errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profile})
}

// HandleAddFavorite handles POST /users/:username/favorites/:storyId.
func (s *Server) HandleAddFavorite(c *gin.Context) {
	s.handleFavorite(c, s.store.addFavorite, "Favorite Added Successfully!")
}

// HandleRemoveFavorite handles DELETE /users/:username/favorites/:storyId.
func (s *Server) HandleRemoveFavorite(c *gin.Context) {
	s.handleFavorite(c, s.store.removeFavorite, "Favorite Removed Successfully!")
}

func (s *Server) handleFavorite(c *gin.Context, apply func(username, storyID string) error, message string) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	username, ok := s.authorize(c, req.Token)
	if !ok {
		return
	}

	if err := apply(username, c.Param("storyId")); err != nil {
		if errors.Is(err, ErrStoryNotFound) || errors.Is(err, ErrUserNotFound) {
			errorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	profile, err := s.store.profile(username)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message, "user": profile})
}

// authorize checks that token was issued to the user named in the path.
func (s *Server) authorize(c *gin.Context, token string) (string, bool) {
	username, err := s.tokenUser(token)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, "A valid token is required")
		return "", false
	}

	if username != c.Param("username") {
		errorResponse(c, http.StatusForbidden, "You are not authorized to access this user")
		return "", false
	}

	return username, true
}
