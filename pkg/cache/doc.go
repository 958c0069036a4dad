// Package cache provides a small typed cache with in-memory and Redis
// backends plus a stampede-safe GetOrSet helper.
//
// The newsletter uses it to build each day's issue once: the scheduled send
// and the web version of the issue read the same cached content.
//
//	c := cache.NewMemory[content.Content](24*time.Hour, time.Minute)
//	issue, err := cache.GetOrSet(ctx, c, "issue:2025-06-01", build)
package cache
