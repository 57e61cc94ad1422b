package service

import (
	"context"

	"datingmeet/internal/models"
	"datingmeet/internal/repository"
)

// MatchService exposes read and lifecycle operations over matches.
type MatchService struct {
	matchRepo   repository.MatchRepository
	profileRepo repository.ProfileRepository
}

// NewMatchService returns a new MatchService.
func NewMatchService(matchRepo repository.MatchRepository, profileRepo repository.ProfileRepository) *MatchService {
	return &MatchService{matchRepo: matchRepo, profileRepo: profileRepo}
}

// MatchView couples a match with the other participant's profile for list
// responses.
type MatchView struct {
	Match   models.Match    `json:"match"`
	Partner *models.Profile `json:"partner,omitempty"`
}

// List returns the user's active matches, newest first, each annotated with
// the other participant's profile when one exists.
func (s *MatchService) List(ctx context.Context, userID string, limit int) ([]MatchView, error) {
	if userID == "" {
		return nil, models.NewInvalidRequestError("userId is required")
	}

	matches, err := s.matchRepo.ListForUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	views := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		view := MatchView{Match: m}
		if other, ok := m.OtherParticipant(userID); ok {
			profile, err := s.profileRepo.Get(ctx, other)
			if err == nil {
				view.Partner = profile
			}
			// A missing partner profile degrades the view, it does not
			// fail the listing.
		}
		views = append(views, view)
	}
	return views, nil
}

// Get returns a single match. Only participants may read it.
func (s *MatchService) Get(ctx context.Context, userID, matchID string) (*models.Match, error) {
	if userID == "" || matchID == "" {
		return nil, models.NewInvalidRequestError("userId and matchId are required")
	}
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasParticipant(userID) {
		return nil, models.NewForbiddenError("You are not part of this match")
	}
	return match, nil
}

// End closes a match. Only participants may end it.
func (s *MatchService) End(ctx context.Context, userID, matchID string) error {
	match, err := s.Get(ctx, userID, matchID)
	if err != nil {
		return err
	}
	return s.matchRepo.End(ctx, match.ID)
}

// MarkSeen clears the user's unread counter on the match.
func (s *MatchService) MarkSeen(ctx context.Context, userID, matchID string) error {
	match, err := s.Get(ctx, userID, matchID)
	if err != nil {
		return err
	}
	return s.matchRepo.ResetUnread(ctx, match, userID)
}
