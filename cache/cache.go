// Package cache holds the process-wide cache that repositories invalidate on writes.
package cache

import (
	"context"
	"time"
)

// Keys of the listing views that writes invalidate.
const (
	KeyFeaturedProjects = "featured_projects"
	KeyAllProjects      = "all_projects"
	KeyFeaturedSkills   = "featured_skills"
	KeyAllSkills        = "all_skills"
	KeyPersonalInfo     = "personal_info"
)

// Cache is a best-effort byte cache. Missing keys are never an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Invalidate(ctx context.Context, keys ...string)
}

// Nop satisfies Cache and stores nothing.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool)         { return nil, false }
func (Nop) Set(context.Context, string, []byte, time.Duration) {}
func (Nop) Invalidate(context.Context, ...string)              {}
