package yacache

import "errors"

var (
	ErrCacheKeyNotFound = errors.New("cache key not found")
	ErrCacheClosed      = errors.New("cache is closed")
)
