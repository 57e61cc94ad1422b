package server

import (
	"net/http"
	"testing"

	"datingmeet/internal/models"
	"datingmeet/internal/repository"
	"datingmeet/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNotification(t *testing.T, srv *Server, userID, fromUserID string, read bool) models.Notification {
	t.Helper()
	n := models.Notification{
		ID:         models.NewNotificationID(),
		UserID:     userID,
		FromUserID: fromUserID,
		Type:       models.NotificationLike,
		Message:    "Someone liked your profile!",
		IsRead:     read,
	}
	require.NoError(t, srv.db.Create(&n).Error)
	return n
}

func TestGetNotificationsNewestFirst(t *testing.T) {
	srv, app := newTestServer(t)
	bob := authToken(t, "bob")

	first := seedNotification(t, srv, "bob", "alice", false)
	second := seedNotification(t, srv, "bob", "cara", false)
	seedNotification(t, srv, "someone-else", "alice", false)

	resp := doRequest(t, app, http.MethodGet, "/api/notifications", bob, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []models.Notification
	decodeData(t, resp, &items)
	require.Len(t, items, 2, "only bob's notifications are visible")
	ids := []string{items[0].ID, items[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
}

func TestGetRecentNotificationsCappedAtTwenty(t *testing.T) {
	srv, app := newTestServer(t)
	bob := authToken(t, "bob")

	for i := 0; i < repository.DefaultRecentNotificationLimit+5; i++ {
		seedNotification(t, srv, "bob", "alice", false)
	}

	resp := doRequest(t, app, http.MethodGet, "/api/notifications/recent", bob, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []models.Notification
	decodeData(t, resp, &items)
	assert.Len(t, items, repository.DefaultRecentNotificationLimit)
}

func TestMarkNotificationReadOwnership(t *testing.T) {
	srv, app := newTestServer(t)
	bob := authToken(t, "bob")
	mallory := authToken(t, "mallory")

	n := seedNotification(t, srv, "bob", "alice", false)

	resp := doRequest(t, app, http.MethodPost, "/api/notifications/"+n.ID+"/read", mallory, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	out := decodeResponse(t, resp)
	assert.Equal(t, models.CodeForbidden, out.Code)

	resp = doRequest(t, app, http.MethodPost, "/api/notifications/"+n.ID+"/read", bob, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/notifications/does-not-exist/read", bob, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var unread service.UnreadCount
	resp = doRequest(t, app, http.MethodGet, "/api/notifications/unread-count", bob, "")
	decodeData(t, resp, &unread)
	assert.Equal(t, int64(0), unread.Count)
}

func TestMarkAllNotificationsReadIdempotent(t *testing.T) {
	srv, app := newTestServer(t)
	bob := authToken(t, "bob")

	seedNotification(t, srv, "bob", "alice", false)
	seedNotification(t, srv, "bob", "cara", false)
	seedNotification(t, srv, "bob", "dave", true)

	var result service.MarkAllReadResult
	resp := doRequest(t, app, http.MethodPost, "/api/notifications/read-all", bob, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeData(t, resp, &result)
	assert.Equal(t, int64(2), result.Updated)

	resp = doRequest(t, app, http.MethodPost, "/api/notifications/read-all", bob, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeData(t, resp, &result)
	assert.Equal(t, int64(0), result.Updated, "second call has nothing left to update")
}
