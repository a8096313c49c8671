package fakeapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Test helper: create a test router
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return New("test-secret").SetupRouter()
}

// Test helper: perform a JSON request against the router
func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// Test helper: sign up a user and return the token
func signup(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/signup", gin.H{
		"user": gin.H{"username": username, "password": "secret", "name": "Name " + username},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// Test helper: post a story and return its ID
func postStory(t *testing.T, router *gin.Engine, token, title string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/stories", gin.H{
		"token": token,
		"story": gin.H{"title": title, "author": "A", "url": "http://x.com/" + title},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Story struct {
			StoryID string `json:"storyId"`
		} `json:"story"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Story.StoryID
}

// TestSignup_Duplicate verifies a taken username is rejected with 409
func TestSignup_Duplicate(t *testing.T) {
	router := setupTestRouter(t)
	signup(t, router, "u1")

	w := doJSON(t, router, http.MethodPost, "/signup", gin.H{
		"user": gin.H{"username": "u1", "password": "other", "name": "Other"},
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
}

// TestLogin_BadPassword verifies wrong credentials return 401
func TestLogin_BadPassword(t *testing.T) {
	router := setupTestRouter(t)
	signup(t, router, "u1")

	w := doJSON(t, router, http.MethodPost, "/login", gin.H{
		"user": gin.H{"username": "u1", "password": "wrong"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestListStories_NewestFirstWithPagination verifies ordering and skip/limit
func TestListStories_NewestFirstWithPagination(t *testing.T) {
	router := setupTestRouter(t)
	token := signup(t, router, "u1")
	for i := 1; i <= 5; i++ {
		postStory(t, router, token, fmt.Sprintf("t%d", i))
	}

	w := doJSON(t, router, http.MethodGet, "/stories?skip=1&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Stories []struct {
			Title string `json:"title"`
		} `json:"stories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Stories, 2)
	assert.Equal(t, "t4", resp.Stories[0].Title)
	assert.Equal(t, "t3", resp.Stories[1].Title)
}

// TestListStories_InvalidLimit verifies parameter validation
func TestListStories_InvalidLimit(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/stories?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestCreateStory_RequiresToken verifies anonymous posts are rejected
func TestCreateStory_RequiresToken(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/stories", gin.H{
		"token": "garbage",
		"story": gin.H{"title": "T", "author": "A", "url": "http://x.com"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestDeleteStory_OnlyOwner verifies ownership is enforced
func TestDeleteStory_OnlyOwner(t *testing.T) {
	router := setupTestRouter(t)
	owner := signup(t, router, "owner")
	other := signup(t, router, "other")
	id := postStory(t, router, owner, "mine")

	w := doJSON(t, router, http.MethodDelete, "/stories/"+id, gin.H{"token": other})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/stories/"+id, gin.H{"token": owner})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/stories/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestFavorites_AddRemove verifies favorites responses carry the user
func TestFavorites_AddRemove(t *testing.T) {
	router := setupTestRouter(t)
	token := signup(t, router, "u1")
	id := postStory(t, router, token, "fav")

	w := doJSON(t, router, http.MethodPost, "/users/u1/favorites/"+id, gin.H{"token": token})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string `json:"message"`
		User    struct {
			Favorites []struct {
				StoryID string `json:"storyId"`
			} `json:"favorites"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.User.Favorites, 1)
	assert.Equal(t, id, resp.User.Favorites[0].StoryID)

	w = doJSON(t, router, http.MethodDelete, "/users/u1/favorites/"+id, gin.H{"token": token})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.User.Favorites)
}

// TestGetUser_WrongUser verifies a token cannot read another user's profile
func TestGetUser_WrongUser(t *testing.T) {
	router := setupTestRouter(t)
	token := signup(t, router, "u1")
	signup(t, router, "u2")

	w := doJSON(t, router, http.MethodGet, "/users/u2?token="+token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodGet, "/users/u1?token="+token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
