package feed

import "time"

// HotLikesThreshold is the like count above which a post appears in the
// hot feed even without the explicit hot flag.
const HotLikesThreshold = 20

// StatusTTL is how long a status stays visible after posting.
const StatusTTL = 24 * time.Hour

// FeedPoolSize caps how many recent posts a single feed request considers.
const FeedPoolSize = 200
