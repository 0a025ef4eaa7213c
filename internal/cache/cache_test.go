// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New(time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get returned a value for a missing key")
	}

	c.Set("k", 42)
	v, ok := c.Get("k")
	if !ok {
		t.Fatal("Get missed a freshly set key")
	}
	if v.(int) != 42 {
		t.Errorf("Get = %v, want 42", v)
	}
}

func TestExpiry(t *testing.T) {
	c := New(time.Minute)
	c.SetWithTTL("k", "v", -time.Second)

	if _, ok := c.Get("k"); ok {
		t.Error("Get returned an expired entry")
	}

	stats := c.GetStats()
	if stats.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", stats.Evictions)
	}
	if stats.Keys != 0 {
		t.Errorf("Keys = %d, want 0 after eviction on access", stats.Keys)
	}
}

func TestDeleteAndClear(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("deleted key still present")
	}

	c.Clear()
	if _, ok := c.Get("b"); ok {
		t.Error("key survived Clear")
	}
	if keys := c.GetStats().Keys; keys != 0 {
		t.Errorf("Keys = %d after Clear, want 0", keys)
	}
}

func TestCleanup(t *testing.T) {
	c := New(time.Minute)
	c.Set("fresh", 1)
	c.SetWithTTL("stale1", 2, -time.Second)
	c.SetWithTTL("stale2", 3, -time.Second)

	if evicted := c.Cleanup(); evicted != 2 {
		t.Errorf("Cleanup evicted %d, want 2", evicted)
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Error("Cleanup removed an unexpired entry")
	}
}

func TestStatsAndHitRate(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", 1)

	c.Get("k")
	c.Get("k")
	c.Get("missing")

	stats := c.GetStats()
	if stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("stats = %+v, want 2 hits and 1 miss", stats)
	}
	if rate := c.HitRate(); rate < 66.0 || rate > 67.0 {
		t.Errorf("HitRate = %f, want ~66.7", rate)
	}
}

func TestGenerateKeyDeterministic(t *testing.T) {
	a := GenerateKey("recommend", "hash", 1710000000, "seed", 10)
	b := GenerateKey("recommend", "hash", 1710000000, "seed", 10)
	if a != b {
		t.Errorf("same parts produced different keys: %q vs %q", a, b)
	}

	other := GenerateKey("recommend", "hash", 1710000000, "seed", 20)
	if a == other {
		t.Error("different parts produced the same key")
	}
	if GenerateKey("recommend")[:9] != "recommend" {
		t.Error("key does not start with its prefix")
	}
}
