package match

import (
	"sort"

	"edcall/internal/models"
)

// Service computes compatibility scores between profiles and produces the
// ranked and filtered candidate lists consumed by the discovery endpoints.
// All operations are pure functions of the profiles passed in.
type Service interface {
	Score(viewer, candidate *models.User) int
	Rank(viewer *models.User, candidates []*models.User) []ScoredUser
	Visible(viewer *models.User, candidates []*models.User) []*models.User
	FilterOnline(viewer *models.User, candidates []*models.User) []*models.User
	FilterLiked(viewer *models.User, candidates []*models.User, likedIDs map[uint]bool) []*models.User
}

type service struct{}

// NewService creates a new match scoring service.
func NewService() Service {
	return &service{}
}

// Score computes the 0-99 compatibility score between viewer and candidate.
func (s *service) Score(viewer, candidate *models.User) int {
	score := BaseScore

	// Interest overlap carries the primary weight.
	for _, interest := range candidate.Interests {
		if viewer.Interests.ContainsFold(interest) {
			score += InterestWeight
		}
	}

	if viewer.Location == candidate.Location {
		score += LocationBonus
	}

	// Small age gaps score a bonus, large gaps a steep penalty.
	ageDiff := viewer.Age - candidate.Age
	if ageDiff < 0 {
		ageDiff = -ageDiff
	}
	switch {
	case ageDiff <= CloseAgeGap:
		score += CloseAgeBonus
	case ageDiff <= NearAgeGap:
		score += NearAgeBonus
	default:
		score -= AgePenaltyWeight * ageDiff
	}

	if candidate.IsOnline {
		score += OnlineBonus
	}
	if candidate.Tier == models.TierPremium {
		score += PremiumBonus
	}

	return clamp(score)
}

// Rank scores every visible candidate and sorts them by descending score.
// The sort is stable: candidates with equal scores keep their input order.
func (s *service) Rank(viewer *models.User, candidates []*models.User) []ScoredUser {
	ranked := make([]ScoredUser, 0, len(candidates))
	for _, c := range s.Visible(viewer, candidates) {
		ranked = append(ranked, ScoredUser{User: c, Score: s.Score(viewer, c)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Visible drops the viewer itself and any blocked candidate.
func (s *service) Visible(viewer *models.User, candidates []*models.User) []*models.User {
	visible := make([]*models.User, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == viewer.ID || c.Blocked {
			continue
		}
		visible = append(visible, c)
	}
	return visible
}

// FilterOnline returns the visible candidates that are currently online.
func (s *service) FilterOnline(viewer *models.User, candidates []*models.User) []*models.User {
	online := make([]*models.User, 0, len(candidates))
	for _, c := range s.Visible(viewer, candidates) {
		if c.IsOnline {
			online = append(online, c)
		}
	}
	return online
}

// FilterLiked returns the visible candidates present in the liked-id set.
func (s *service) FilterLiked(viewer *models.User, candidates []*models.User, likedIDs map[uint]bool) []*models.User {
	liked := make([]*models.User, 0, len(likedIDs))
	for _, c := range s.Visible(viewer, candidates) {
		if likedIDs[c.ID] {
			liked = append(liked, c)
		}
	}
	return liked
}

func clamp(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
