package discovery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper: serve fixed HTML
func serveHTML(t *testing.T, status int, body string) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server.URL
}

// TestLookupTitle_PrefersOpenGraph verifies og:title wins over <title>
func TestLookupTitle_PrefersOpenGraph(t *testing.T) {
	url := serveHTML(t, http.StatusOK, `<html><head>
<title>Site | Page</title>
<meta property="og:title" content="The Real Title">
</head><body></body></html>`)

	title, err := LookupTitle(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, "The Real Title", title)
}

// TestLookupTitle_TitleElement verifies the <title> fallback
func TestLookupTitle_TitleElement(t *testing.T) {
	url := serveHTML(t, http.StatusOK, "<html><head><title>\n  Plain\n  Title </title></head></html>")

	title, err := LookupTitle(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, "Plain Title", title)
}

// TestLookupTitle_NoTitle verifies pages without a title are reported
func TestLookupTitle_NoTitle(t *testing.T) {
	url := serveHTML(t, http.StatusOK, "<html><body>nothing</body></html>")

	_, err := LookupTitle(context.Background(), url)
	assert.ErrorIs(t, err, ErrNoTitle)
}

// TestFetchHTML_HTTPError verifies non-200 responses fail
func TestFetchHTML_HTTPError(t *testing.T) {
	url := serveHTML(t, http.StatusNotFound, "gone")

	_, err := FetchHTML(context.Background(), url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

// TestExtractURL verifies links are found inside free text
func TestExtractURL(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"https://example.com/a", "https://example.com/a"},
		{"check this out: http://example.com/story?id=1 it's great", "http://example.com/story?id=1"},
		{"see https://go.dev/blog.", "https://go.dev/blog"},
	}

	for _, tt := range tests {
		got, err := ExtractURL(tt.text)
		require.NoError(t, err, tt.text)
		assert.Equal(t, tt.want, got)
	}

	_, err := ExtractURL("no links here")
	assert.ErrorIs(t, err, ErrNoURL)
}
