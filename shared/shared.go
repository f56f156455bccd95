package shared

import (
	"strconv"
	"strings"
)

const cacheKeySeparator = ":"

// BuildCacheKey joins a prefix and its parts into one namespaced cache key.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// ParseID converts a path parameter into a positive integer id.
func ParseID(value string) (int, bool) {
	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}
