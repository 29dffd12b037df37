// Package cache provides an optional Redis-backed page response cache.
//
// Cached entries are decoded-ready JSON bodies keyed by endpoint URL and
// pagination query parameters. Entries expire via Redis TTL using the
// configured cache TTL, so re-running the scraper against an unchanged
// remote within the TTL serves pages from Redis instead of the API.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	manager := cache.NewManager(redisClient)
//
//	key := cache.Key{
//		Endpoint:    "https://api.example.com/items",
//		QueryParams: url.Values{"page": []string{"3"}},
//	}
//
//	entry, err := manager.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// fetch from the API, then:
//		manager.Set(ctx, key, &cache.Entry{Body: body, CachedAt: time.Now()}, ttl)
//	}
//
// The cache is a best-effort layer: all cache errors are survivable and
// callers fall back to a direct request.
package cache
