package cache

import (
	"time"

	"github.com/arrowlake/kvcache/clock"
	"github.com/arrowlake/kvcache/eviction"
	"github.com/arrowlake/kvcache/expiration"
)

// Options configures a cache core. Capacity and both policies are
// required; New validates them and returns InvalidArgument if they are
// missing or malformed, rather than panicking, so a misconfigured
// policy/capacity pair is recoverable by the caller.
type Options[K comparable, V any] struct {
	// Capacity is the maximum number of live entries. Must be >= 1.
	Capacity int

	// Eviction selects the victim on capacity pressure. Required.
	Eviction eviction.Policy[K]

	// Expiration tracks per-key deadlines. Required; pass
	// expiration/none.New[K]() for a cache with no TTL support.
	Expiration expiration.Policy[K]

	// DefaultTTL applies to Put when PutTTL is not used. Zero means "let
	// the expiration policy's own default (if any) decide".
	DefaultTTL time.Duration

	// Clock is stored on the core (nil uses clock.Default), but the core
	// itself reads no time: TTL deadlines use the clock passed to the
	// expiration policy's own constructor, so setting Clock here does not
	// change how keys expire.
	Clock clock.Clock
}
