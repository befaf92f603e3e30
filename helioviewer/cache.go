// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helioviewer

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache holds the results of queries whose answers do not change over
// the lifetime of the cache. Entries expire after the TTL the cache
// was created with, and can be invalidated explicitly.
type Cache struct {
	c *cache.Cache
}

// NewCache returns a new cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{c: cache.New(ttl, 2*ttl)}
}

// EventsKey returns the cache key of the events in the given range.
func EventsKey(start, end time.Time) string {
	return fmt.Sprintf("events:%s:%s", APIDate(start), APIDate(end))
}

// ImageKey returns the cache key of the image nearest to the given time.
func ImageKey(source int, t time.Time) string {
	return fmt.Sprintf("image:%d:%s", source, APIDate(t))
}

// Get returns the entry for the key, if present and not expired.
func (ca *Cache) Get(key string) (any, bool) {
	return ca.c.Get(key)
}

// Set stores the value under the key with the default expiration.
func (ca *Cache) Set(key string, v any) {
	ca.c.Set(key, v, cache.DefaultExpiration)
}

// Invalidate removes the entry for the key.
func (ca *Cache) Invalidate(key string) {
	ca.c.Delete(key)
}

// Flush removes all entries.
func (ca *Cache) Flush() {
	ca.c.Flush()
}

// Len returns the number of entries, including expired ones that
// have not been cleaned up yet.
func (ca *Cache) Len() int {
	return ca.c.ItemCount()
}

// cached returns the value of type T under key, recording a hit or miss.
func cached[T any](c *Client, key string) (T, bool) {
	if v, ok := c.cache.Get(key); ok {
		if tv, ok := v.(T); ok {
			c.metrics.CacheHits.Inc()
			return tv, true
		}
	}
	c.metrics.CacheMisses.Inc()
	var zv T
	return zv, false
}
