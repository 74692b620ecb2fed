package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pulse/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeProfile(t *testing.T, w *httptest.ResponseRecorder) (feedPage, int64, bool) {
	t.Helper()
	var payload struct {
		PageObj   feedPage `json:"page_obj"`
		Count     int64    `json:"count"`
		Following bool     `json:"following"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload.PageObj, payload.Count, payload.Following
}

func TestProfileUnknownUser(t *testing.T) {
	app := setupApp(t)

	w := app.get("/profile/nobody", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileShowsCountAndPosts(t *testing.T) {
	app := setupApp(t)
	token := app.signup(t, "alice")
	app.signup(t, "bob")
	app.seedPosts(t, token, 2)

	w := app.get("/profile/alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	page, count, following := decodeProfile(t, w)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(2), count)
	assert.False(t, following)
}

func TestFollowThenFeedThenUnfollow(t *testing.T) {
	app := setupApp(t)
	authorToken := app.signup(t, "author")
	viewerToken := app.signup(t, "viewer")
	app.seedPosts(t, authorToken, 2)

	w := app.postForm("/profile/author/follow", viewerToken, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/profile/author", w.Header().Get("Location"))

	_, _, following := decodeProfile(t, app.get("/profile/author", viewerToken))
	assert.True(t, following)

	feed := decodePage(t, app.get("/follow", viewerToken))
	assert.Len(t, feed.Items, 2)

	w = app.postForm("/profile/author/unfollow", viewerToken, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)

	feed = decodePage(t, app.get("/follow", viewerToken))
	assert.Empty(t, feed.Items)

	_, _, following = decodeProfile(t, app.get("/profile/author", viewerToken))
	assert.False(t, following)
}

// Following yourself silently redirects back to the profile and writes
// nothing.
func TestFollowSelfIsSilentNoop(t *testing.T) {
	app := setupApp(t)
	token := app.signup(t, "alice")

	w := app.postForm("/profile/alice/follow", token, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/profile/alice", w.Header().Get("Location"))

	var count int64
	require.NoError(t, app.db.Model(&models.Follow{}).Count(&count).Error)
	assert.Zero(t, count)
}

// The duplicate guard matches on the target author alone: once one viewer
// follows an author, another viewer's follow is a silent no-op.
func TestFollowDuplicateAuthorIsSilentNoop(t *testing.T) {
	app := setupApp(t)
	app.signup(t, "author")
	firstToken := app.signup(t, "first")
	secondToken := app.signup(t, "second")

	w := app.postForm("/profile/author/follow", firstToken, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = app.postForm("/profile/author/follow", secondToken, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)

	var count int64
	require.NoError(t, app.db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFollowUnknownUser(t *testing.T) {
	app := setupApp(t)
	token := app.signup(t, "alice")

	w := app.postForm("/profile/nobody/follow", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnfollowIsIdempotentOverHTTP(t *testing.T) {
	app := setupApp(t)
	app.signup(t, "author")
	token := app.signup(t, "viewer")

	w := app.postForm("/profile/author/unfollow", token, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = app.postForm("/profile/author/unfollow", token, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
}

func TestFollowRequiresAuth(t *testing.T) {
	app := setupApp(t)
	app.signup(t, "author")

	w := app.postForm("/profile/author/follow", "", nil)
	assert.Equal(t, http.StatusFound, w.Code)
}
