package bulletin

import (
	"testing"
	"time"
)

func TestExportCacheHitAndMiss(t *testing.T) {
	c := NewExportCache(time.Minute)
	c.Put("s1", 3, "png", []byte("a"))

	if data, ok := c.Get("s1", 3, "png"); !ok || string(data) != "a" {
		t.Errorf("Get(s1, 3, png) = %q, %v", data, ok)
	}
	if _, ok := c.Get("s1", 3, "pdf"); ok {
		t.Error("expected miss for other format")
	}
	if _, ok := c.Get("s1", 4, "png"); ok {
		t.Error("expected miss for newer version")
	}
	if _, ok := c.Get("s2", 3, "png"); ok {
		t.Error("expected miss for other session")
	}
}

func TestExportCacheDropsOlderVersions(t *testing.T) {
	c := NewExportCache(time.Minute)
	c.Put("s1", 1, "png", []byte("v1"))
	c.Put("s1", 1, "pdf", []byte("v1"))
	c.Put("s2", 1, "png", []byte("other"))
	c.Put("s1", 2, "png", []byte("v2"))

	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	if _, ok := c.Get("s1", 1, "pdf"); ok {
		t.Error("expected stale version evicted")
	}
	if _, ok := c.Get("s2", 1, "png"); !ok {
		t.Error("other sessions must be kept")
	}
}

func TestExportCacheExpires(t *testing.T) {
	c := NewExportCache(50 * time.Millisecond)
	c.Put("s1", 1, "png", []byte("a"))

	time.Sleep(60 * time.Millisecond)

	if _, ok := c.Get("s1", 1, "png"); ok {
		t.Error("expected expired entry")
	}
	c.Put("s2", 1, "png", []byte("b"))
	if c.Len() != 1 {
		t.Errorf("Len = %d after sweep, want 1", c.Len())
	}
}
