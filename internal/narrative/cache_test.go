package narrative

import (
	"testing"

	"github.com/licomply/licomply/internal/rules"
)

func TestKey(t *testing.T) {
	p := rules.BusinessProfile{Area: 80, Seats: 45, ServesMeat: true}

	if Key("W/\"abc\"", p) != Key("W/\"abc\"", p) {
		t.Error("Key() not stable for identical inputs")
	}
	if Key("W/\"abc\"", p) == Key("W/\"def\"", p) {
		t.Error("Key() ignored the ETag")
	}
	q := p
	q.Deliveries = true
	if Key("W/\"abc\"", p) == Key("W/\"abc\"", q) {
		t.Error("Key() ignored a profile field")
	}
}

func TestCachePutGet(t *testing.T) {
	c := NewCache()
	p := rules.BusinessProfile{Area: 80, Seats: 45}
	key := Key(`W/"v1"`, p)

	if _, ok := c.Get(key); ok {
		t.Fatal("Get() on empty cache reported a hit")
	}

	c.Put(`W/"v1"`, key, "דוח")
	got, ok := c.Get(key)
	if !ok || got != "דוח" {
		t.Fatalf("Get() = %q, %v", got, ok)
	}
}

func TestCacheEvictsOnETagChange(t *testing.T) {
	c := NewCache()
	p := rules.BusinessProfile{Area: 80, Seats: 45}
	oldKey := Key(`W/"v1"`, p)
	newKey := Key(`W/"v2"`, p)

	c.Put(`W/"v1"`, oldKey, "old")
	c.Put(`W/"v2"`, newKey, "new")

	if _, ok := c.Get(oldKey); ok {
		t.Error("stale entry survived the ETag change")
	}
	if got, ok := c.Get(newKey); !ok || got != "new" {
		t.Errorf("Get(newKey) = %q, %v", got, ok)
	}
}
