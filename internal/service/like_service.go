package service

import (
	"context"
	"time"

	"datingmeet/internal/models"
	"datingmeet/internal/observability"
	"datingmeet/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// DailyLikeLimit is the maximum number of LIKE actions a user may submit per
// UTC calendar day. PASS and SUPERCHAT actions do not count toward it.
const DailyLikeLimit = 20

const maxLikeMessageLen = 500

// LikeService implements the like/match engine.
type LikeService struct {
	likeRepo  repository.LikeRepository
	matchRepo repository.MatchRepository
	now       func() time.Time
}

// SubmitLikeInput carries one like, pass, or superchat action.
type SubmitLikeInput struct {
	FromUserID  string
	ToProfileID string
	ActionType  models.LikeAction
	Message     string
}

// DailyLimitStatus reports the caller's standing against the daily like quota.
type DailyLimitStatus struct {
	Count     int64     `json:"count"`
	Limit     int64     `json:"limit"`
	Remaining int64     `json:"remaining"`
	ResetTime time.Time `json:"resetTime"`
}

// SubmitLikeResult is the outcome of an accepted action. DailyLikes is only
// reported for LIKE actions, the only kind the quota tracks.
type SubmitLikeResult struct {
	Like          *models.Like          `json:"like"`
	IsMatch       bool                  `json:"isMatch"`
	Match         *models.Match         `json:"match,omitempty"`
	Notifications []models.Notification `json:"-"`
	DailyLikes    *DailyLimitStatus     `json:"dailyLikes,omitempty"`
}

// NewLikeService returns a new LikeService.
func NewLikeService(likeRepo repository.LikeRepository, matchRepo repository.MatchRepository) *LikeService {
	return &LikeService{
		likeRepo:  likeRepo,
		matchRepo: matchRepo,
		now:       time.Now,
	}
}

// startOfUTCDay returns midnight UTC of the day containing t.
func startOfUTCDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SubmitLike validates and persists one action. Checks run in a fixed order:
// request shape, self-action, duplicate, then the daily quota. A reciprocal
// like promotes the action to a match, and the like, the match, and the
// resulting notifications are written in a single transaction.
func (s *LikeService) SubmitLike(ctx context.Context, in SubmitLikeInput) (*SubmitLikeResult, error) {
	ctx, span := observability.GetTraceLayer().TraceServiceMethod(ctx, "LikeService", "SubmitLike")
	defer span.End()
	observability.AddTraceAttributesToContext(ctx,
		attribute.String("like.action_type", string(in.ActionType)))

	if in.FromUserID == "" {
		return nil, models.NewInvalidRequestError("fromUserId is required")
	}
	if in.ToProfileID == "" {
		return nil, models.NewInvalidRequestError("toProfileId is required")
	}
	if !in.ActionType.Valid() {
		return nil, models.NewInvalidRequestError("actionType must be LIKE, PASS, or SUPERCHAT")
	}
	if in.ActionType == models.ActionSuperchat && in.Message == "" {
		return nil, models.NewInvalidRequestError("message is required for SUPERCHAT actions")
	}
	if len(in.Message) > maxLikeMessageLen {
		return nil, models.NewInvalidRequestError("message exceeds maximum length")
	}

	if in.FromUserID == in.ToProfileID {
		return nil, models.NewSelfActionError()
	}

	existing, err := s.likeRepo.FindActiveByPair(ctx, in.FromUserID, in.ToProfileID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewDuplicateActionError("You have already acted on this profile")
	}

	now := s.now().UTC()
	dayStart := startOfUTCDay(now)

	var dailyCount int64
	if in.ActionType == models.ActionLike {
		dailyCount, err = s.likeRepo.CountActionsSince(ctx, in.FromUserID, models.ActionLike, dayStart)
		if err != nil {
			return nil, err
		}
		if dailyCount >= DailyLikeLimit {
			observability.RateLimitRejections.Inc()
			return nil, models.NewRateLimitError(dailyCount, DailyLikeLimit)
		}
	}

	like := &models.Like{
		ID:          models.NewLikeID(in.FromUserID, in.ToProfileID, now),
		FromUserID:  in.FromUserID,
		ToProfileID: in.ToProfileID,
		ActionType:  in.ActionType,
		Message:     in.Message,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var match *models.Match
	var notifications []models.Notification

	if in.ActionType != models.ActionPass {
		// Reciprocity requires an active LIKE from the other side. An earlier
		// like's matched flag stays as written at its creation time; only the
		// completing like carries it.
		reciprocal, err := s.likeRepo.FindActiveByPair(ctx, in.ToProfileID, in.FromUserID)
		if err != nil {
			return nil, err
		}
		if reciprocal != nil && reciprocal.ActionType == models.ActionLike {
			// Guard against a match row already existing for the pair,
			// e.g. after an unlike and re-like.
			existingMatch, err := s.matchRepo.FindActiveByPair(ctx, in.FromUserID, in.ToProfileID)
			if err != nil {
				return nil, err
			}
			if existingMatch == nil {
				like.IsMatched = true
				match = models.NewMatch(in.FromUserID, in.ToProfileID, now)
				notifications = append(notifications,
					models.Notification{
						ID:         models.NewNotificationID(),
						UserID:     in.FromUserID,
						FromUserID: in.ToProfileID,
						Type:       models.NotificationMatch,
						Message:    "It's a match!",
						CreatedAt:  now,
					},
					models.Notification{
						ID:         models.NewNotificationID(),
						UserID:     in.ToProfileID,
						FromUserID: in.FromUserID,
						Type:       models.NotificationMatch,
						Message:    "It's a match!",
						CreatedAt:  now,
					},
				)
			}
		}

		if match == nil {
			notifications = append(notifications, models.Notification{
				ID:         models.NewNotificationID(),
				UserID:     in.ToProfileID,
				FromUserID: in.FromUserID,
				Type:       models.NotificationLike,
				Message:    "Someone liked your profile!",
				CreatedAt:  now,
			})
		}
	}

	if err := s.likeRepo.CreateWithFanout(ctx, like, match, notifications); err != nil {
		observability.RecordErrorInContext(ctx, err)
		return nil, err
	}

	observability.LikesSubmitted.WithLabelValues(string(in.ActionType)).Inc()
	if match != nil {
		observability.MatchesCreated.Inc()
	}
	for _, n := range notifications {
		observability.NotificationsCreated.WithLabelValues(string(n.Type)).Inc()
	}

	var daily *DailyLimitStatus
	if in.ActionType == models.ActionLike {
		status := s.limitStatus(dailyCount+1, now)
		daily = &status
	}

	return &SubmitLikeResult{
		Like:          like,
		IsMatch:       match != nil,
		Match:         match,
		Notifications: notifications,
		DailyLikes:    daily,
	}, nil
}

// GetDailyLimitStatus reports how many LIKE actions the user has submitted in
// the current UTC day and when the window resets.
func (s *LikeService) GetDailyLimitStatus(ctx context.Context, userID string) (*DailyLimitStatus, error) {
	if userID == "" {
		return nil, models.NewInvalidRequestError("userId is required")
	}

	now := s.now().UTC()
	count, err := s.likeRepo.CountActionsSince(ctx, userID, models.ActionLike, startOfUTCDay(now))
	if err != nil {
		return nil, err
	}
	status := s.limitStatus(count, now)
	return &status, nil
}

func (s *LikeService) limitStatus(count int64, now time.Time) DailyLimitStatus {
	remaining := int64(DailyLikeLimit) - count
	if remaining < 0 {
		remaining = 0
	}
	return DailyLimitStatus{
		Count:     count,
		Limit:     DailyLikeLimit,
		Remaining: remaining,
		ResetTime: startOfUTCDay(now).Add(24 * time.Hour),
	}
}

// ListSentLikes returns the user's own active likes, newest first.
func (s *LikeService) ListSentLikes(ctx context.Context, userID string, limit int) ([]models.Like, error) {
	if userID == "" {
		return nil, models.NewInvalidRequestError("userId is required")
	}
	return s.likeRepo.ListSent(ctx, userID, limit)
}

// ListReceivedLikes returns the likes and superchats received by the user,
// newest first. Passes are never exposed to the receiving side.
func (s *LikeService) ListReceivedLikes(ctx context.Context, userID string, limit int) ([]models.Like, error) {
	if userID == "" {
		return nil, models.NewInvalidRequestError("userId is required")
	}
	return s.likeRepo.ListReceived(ctx, userID, limit)
}

// Unlike withdraws an active like. Only the author may withdraw it.
func (s *LikeService) Unlike(ctx context.Context, userID, likeID string) error {
	if userID == "" || likeID == "" {
		return models.NewInvalidRequestError("userId and likeId are required")
	}
	like, err := s.likeRepo.GetByID(ctx, likeID)
	if err != nil {
		return err
	}
	if like.FromUserID != userID {
		return models.NewForbiddenError("You cannot withdraw this like")
	}
	return s.likeRepo.Deactivate(ctx, likeID)
}
