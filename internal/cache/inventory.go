package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ProfileKeyPrefix     = "profile:%s"
	MatchListKeyPrefix   = "matches:%s"
	UnreadCountKeyPrefix = "notifications:%s:unread"
)

const (
	ProfileTTL     = 10 * time.Minute
	MatchListTTL   = 2 * time.Minute
	UnreadCountTTL = 1 * time.Minute
)

func ProfileKey(userID string) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func MatchListKey(userID string) string {
	return fmt.Sprintf(MatchListKeyPrefix, userID)
}

func UnreadCountKey(userID string) string {
	return fmt.Sprintf(UnreadCountKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateProfile(ctx context.Context, userID string) {
	Invalidate(ctx, ProfileKey(userID))
}

func InvalidateMatches(ctx context.Context, userID string) {
	Invalidate(ctx, MatchListKey(userID))
}

func InvalidateUnreadCount(ctx context.Context, userID string) {
	Invalidate(ctx, UnreadCountKey(userID))
}
