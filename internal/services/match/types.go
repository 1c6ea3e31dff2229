package match

import "edcall/internal/models"

// Filter selects which discovery view to return.
type Filter string

const (
	FilterForYou Filter = "foryou"
	FilterAll    Filter = "all"
	FilterOnline Filter = "online"
	FilterLiked  Filter = "liked"
)

// ValidFilter reports whether f is one of the known discovery filters.
func ValidFilter(f Filter) bool {
	switch f {
	case FilterForYou, FilterAll, FilterOnline, FilterLiked:
		return true
	}
	return false
}

// ScoredUser pairs a discovery candidate with the viewer's compatibility score.
type ScoredUser struct {
	User  *models.User `json:"user"`
	Score int          `json:"score"`
}
