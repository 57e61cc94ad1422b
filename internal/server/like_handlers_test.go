package server

import (
	"fmt"
	"net/http"
	"testing"

	"datingmeet/internal/models"
	"datingmeet/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeMatchNotificationFlow(t *testing.T) {
	_, app := newTestServer(t)
	alice := authToken(t, "alice")
	bob := authToken(t, "bob")

	// Alice likes Bob: no match yet, Bob gets a LIKE notification.
	resp := doRequest(t, app, http.MethodPost, "/api/likes", alice,
		`{"toProfileId":"bob","actionType":"LIKE"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var first service.SubmitLikeResult
	decodeData(t, resp, &first)
	assert.False(t, first.IsMatch)
	assert.Nil(t, first.Match)
	require.NotNil(t, first.Like)
	assert.Equal(t, "alice", first.Like.FromUserID)
	assert.Equal(t, "bob", first.Like.ToProfileID)
	require.NotNil(t, first.DailyLikes)
	assert.Equal(t, int64(1), first.DailyLikes.Count)
	assert.Equal(t, int64(19), first.DailyLikes.Remaining)

	resp = doRequest(t, app, http.MethodGet, "/api/notifications/unread-count", bob, "")
	var unread service.UnreadCount
	decodeData(t, resp, &unread)
	assert.Equal(t, int64(1), unread.Count)

	// Bob likes Alice back: reciprocal, so a match and MATCH notifications
	// for both participants.
	resp = doRequest(t, app, http.MethodPost, "/api/likes", bob,
		`{"toProfileId":"alice","actionType":"LIKE"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var second service.SubmitLikeResult
	decodeData(t, resp, &second)
	assert.True(t, second.IsMatch)
	require.NotNil(t, second.Match)
	assert.Equal(t, "alice", second.Match.User1ID)
	assert.Equal(t, "bob", second.Match.User2ID)

	// Matched state is fixed at creation time: only the completing like is
	// flagged, Alice's earlier one stays as written.
	var aliceSent []models.Like
	resp = doRequest(t, app, http.MethodGet, "/api/likes/sent", alice, "")
	decodeData(t, resp, &aliceSent)
	require.Len(t, aliceSent, 1)
	assert.False(t, aliceSent[0].IsMatched)
	var bobSent []models.Like
	resp = doRequest(t, app, http.MethodGet, "/api/likes/sent", bob, "")
	decodeData(t, resp, &bobSent)
	require.Len(t, bobSent, 1)
	assert.True(t, bobSent[0].IsMatched)

	resp = doRequest(t, app, http.MethodGet, "/api/notifications/unread-count", alice, "")
	decodeData(t, resp, &unread)
	assert.Equal(t, int64(1), unread.Count, "alice gets the MATCH notification")

	resp = doRequest(t, app, http.MethodGet, "/api/notifications/unread-count", bob, "")
	decodeData(t, resp, &unread)
	assert.Equal(t, int64(2), unread.Count, "bob keeps the LIKE one and gains the MATCH one")

	// Both see the match in their lists.
	for _, token := range []string{alice, bob} {
		resp = doRequest(t, app, http.MethodGet, "/api/matches", token, "")
		var views []service.MatchView
		decodeData(t, resp, &views)
		require.Len(t, views, 1)
		assert.Equal(t, second.Match.ID, views[0].Match.ID)
	}

	// A repeated like on an already-acted pair is rejected as a duplicate.
	resp = doRequest(t, app, http.MethodPost, "/api/likes", alice,
		`{"toProfileId":"bob","actionType":"LIKE"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	out := decodeResponse(t, resp)
	assert.Equal(t, models.CodeDuplicateAction, out.Code)
}

func TestSubmitLikeValidationOverHTTP(t *testing.T) {
	_, app := newTestServer(t)
	alice := authToken(t, "alice")

	t.Run("missing target", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/likes", alice,
			`{"actionType":"LIKE"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		out := decodeResponse(t, resp)
		assert.Equal(t, models.CodeInvalidRequest, out.Code)
	})

	t.Run("unknown action type", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/likes", alice,
			`{"toProfileId":"bob","actionType":"WINK"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		out := decodeResponse(t, resp)
		assert.Equal(t, models.CodeInvalidRequest, out.Code)
	})

	t.Run("self action", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/likes", alice,
			`{"toProfileId":"alice","actionType":"LIKE"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		out := decodeResponse(t, resp)
		assert.Equal(t, models.CodeSelfActionForbidden, out.Code)
	})

	t.Run("invalid request wins over self action", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/likes", alice,
			`{"toProfileId":"alice","actionType":"WINK"}`)
		out := decodeResponse(t, resp)
		assert.Equal(t, models.CodeInvalidRequest, out.Code)
	})

	t.Run("acting for another user is forbidden", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/likes", alice,
			`{"fromUserId":"mallory","toProfileId":"bob","actionType":"LIKE"}`)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		out := decodeResponse(t, resp)
		assert.Equal(t, models.CodeForbidden, out.Code)
	})
}

func TestSubmitLikeDailyQuotaOverHTTP(t *testing.T) {
	_, app := newTestServer(t)
	alice := authToken(t, "alice")

	for i := 0; i < service.DailyLikeLimit; i++ {
		resp := doRequest(t, app, http.MethodPost, "/api/likes", alice,
			fmt.Sprintf(`{"toProfileId":"user-%d","actionType":"LIKE"}`, i))
		require.Equal(t, http.StatusCreated, resp.StatusCode, "like %d should be accepted", i+1)
	}

	resp := doRequest(t, app, http.MethodPost, "/api/likes", alice,
		`{"toProfileId":"one-too-many","actionType":"LIKE"}`)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	out := decodeResponse(t, resp)
	assert.Equal(t, models.CodeRateLimitExceeded, out.Code)

	// PASS is not subject to the daily quota and reports no quota block.
	resp = doRequest(t, app, http.MethodPost, "/api/likes", alice,
		`{"toProfileId":"pass-target","actionType":"PASS"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var passResult service.SubmitLikeResult
	decodeData(t, resp, &passResult)
	assert.Nil(t, passResult.DailyLikes)

	var status service.DailyLimitStatus
	resp = doRequest(t, app, http.MethodGet, "/api/likes/limit", alice, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeData(t, resp, &status)
	assert.Equal(t, int64(service.DailyLikeLimit), status.Count)
	assert.Equal(t, int64(0), status.Remaining)
}

func TestListLikesEndpoints(t *testing.T) {
	_, app := newTestServer(t)
	alice := authToken(t, "alice")
	bob := authToken(t, "bob")
	cara := authToken(t, "cara")

	resp := doRequest(t, app, http.MethodPost, "/api/likes", alice,
		`{"toProfileId":"bob","actionType":"LIKE"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = doRequest(t, app, http.MethodPost, "/api/likes", cara,
		`{"toProfileId":"bob","actionType":"SUPERCHAT","message":"hi!"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	// Passes never show up in the receiver's list.
	resp = doRequest(t, app, http.MethodPost, "/api/likes", bob,
		`{"toProfileId":"cara","actionType":"PASS"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var sent []models.Like
	resp = doRequest(t, app, http.MethodGet, "/api/likes/sent", alice, "")
	decodeData(t, resp, &sent)
	require.Len(t, sent, 1)
	assert.Equal(t, "bob", sent[0].ToProfileID)

	var received []models.Like
	resp = doRequest(t, app, http.MethodGet, "/api/likes/received", bob, "")
	decodeData(t, resp, &received)
	require.Len(t, received, 2)

	resp = doRequest(t, app, http.MethodGet, "/api/likes/received", cara, "")
	decodeData(t, resp, &received)
	assert.Empty(t, received, "a PASS is invisible to its target")
}

func TestUnlikeOwnership(t *testing.T) {
	_, app := newTestServer(t)
	alice := authToken(t, "alice")
	bob := authToken(t, "bob")

	resp := doRequest(t, app, http.MethodPost, "/api/likes", alice,
		`{"toProfileId":"bob","actionType":"LIKE"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var result service.SubmitLikeResult
	decodeData(t, resp, &result)

	resp = doRequest(t, app, http.MethodDelete, "/api/likes/"+result.Like.ID, bob, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, app, http.MethodDelete, "/api/likes/"+result.Like.ID, alice, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
