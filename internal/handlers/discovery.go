package handlers

import (
	"strconv"
	"strings"

	"edcall/internal/models"
	"edcall/internal/repositories"
	"edcall/internal/services/match"
	"edcall/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// discoveryPoolSize caps how many candidates a single discovery request
// scores.
const discoveryPoolSize = 500

type DiscoveryHandler struct {
	matchService match.Service
	userRepo     repositories.UserRepository
}

func NewDiscoveryHandler(matchService match.Service, userRepo repositories.UserRepository) *DiscoveryHandler {
	return &DiscoveryHandler{
		matchService: matchService,
		userRepo:     userRepo,
	}
}

// GetDiscovery returns candidate profiles for the authenticated viewer.
// The filter query parameter selects the view: foryou (ranked by score),
// all, online, or liked. The liked view takes a comma-separated id list
// in the liked query parameter.
func (h *DiscoveryHandler) GetDiscovery(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	filter := match.Filter(c.Query("filter", string(match.FilterForYou)))
	if !match.ValidFilter(filter) {
		return utils.BadRequest(c, "unknown filter: "+string(filter))
	}

	viewer, err := h.userRepo.GetByID(claims.UserID)
	if err != nil {
		return utils.NotFound(c, "user not found")
	}

	candidates, _, err := h.userRepo.List(0, discoveryPoolSize)
	if err != nil {
		return utils.InternalError(c, "failed to load candidates")
	}

	switch filter {
	case match.FilterForYou:
		ranked := h.matchService.Rank(viewer, candidates)
		return utils.Success(c, fiber.Map{
			"filter":  filter,
			"matches": scoredResponse(ranked),
		})
	case match.FilterOnline:
		return utils.Success(c, fiber.Map{
			"filter":  filter,
			"matches": usersResponse(h.matchService.FilterOnline(viewer, candidates)),
		})
	case match.FilterLiked:
		likedIDs := parseIDSet(c.Query("liked"))
		return utils.Success(c, fiber.Map{
			"filter":  filter,
			"matches": usersResponse(h.matchService.FilterLiked(viewer, candidates, likedIDs)),
		})
	default: // match.FilterAll
		return utils.Success(c, fiber.Map{
			"filter":  filter,
			"matches": usersResponse(h.matchService.Visible(viewer, candidates)),
		})
	}
}

// GetScore returns the viewer's compatibility score with a single profile.
func (h *DiscoveryHandler) GetScore(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	candidateID, err := c.ParamsInt("id")
	if err != nil || candidateID <= 0 {
		return utils.BadRequest(c, "invalid user id")
	}

	viewer, err := h.userRepo.GetByID(claims.UserID)
	if err != nil {
		return utils.NotFound(c, "user not found")
	}
	candidate, err := h.userRepo.GetByID(uint(candidateID))
	if err != nil {
		return utils.NotFound(c, "candidate not found")
	}

	return utils.Success(c, fiber.Map{
		"user_id": candidate.ID,
		"score":   h.matchService.Score(viewer, candidate),
	})
}

func scoredResponse(ranked []match.ScoredUser) []fiber.Map {
	out := make([]fiber.Map, 0, len(ranked))
	for _, r := range ranked {
		entry := userResponse(r.User)
		entry["score"] = r.Score
		out = append(out, entry)
	}
	return out
}

func usersResponse(users []*models.User) []fiber.Map {
	out := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse(u))
	}
	return out
}

func parseIDSet(raw string) map[uint]bool {
	ids := make(map[uint]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := strconv.ParseUint(part, 10, 32); err == nil {
			ids[uint(id)] = true
		}
	}
	return ids
}
