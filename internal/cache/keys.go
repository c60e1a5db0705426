package cache

import "fmt"

// PrioritizedFeedKey caches the serialized top-N-by-score listing.
func PrioritizedFeedKey() string {
	return "threats:prioritized"
}

func RateLimitKey(client string) string {
	return fmt.Sprintf("ratelimit:%s", client)
}
