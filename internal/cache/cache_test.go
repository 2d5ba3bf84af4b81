package cache

import (
	"testing"

	"github.com/ivylang/ivyc/internal/config"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestGetOnEmptyCacheMisses(t *testing.T) {
	c := openTestCache(t)
	_, ok, err := c.Get("nonexistent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected a miss on an empty cache")
	}
}

func TestPutThenGetRoundTrips(t *testing.T) {
	c := openTestCache(t)
	if err := c.Put("k1", "(function(){})();"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	out, ok, err := c.Get("k1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit after Put")
	}
	if out != "(function(){})();" {
		t.Errorf("Get() = %q, want the stored output", out)
	}
}

func TestPutOverwritesExistingKey(t *testing.T) {
	c := openTestCache(t)
	if err := c.Put("k1", "first"); err != nil {
		t.Fatal(err)
	}
	if err := c.Put("k1", "second"); err != nil {
		t.Fatal(err)
	}
	out, ok, err := c.Get("k1")
	if err != nil || !ok {
		t.Fatalf("Get: out=%q ok=%v err=%v", out, ok, err)
	}
	if out != "second" {
		t.Errorf("Get() = %q, want the last-written value", out)
	}
}

func TestKeyIsDeterministicAndOptionSensitive(t *testing.T) {
	source := []byte("source bytes")
	opts := config.Defaults()

	k1, err := Key(source, opts)
	if err != nil {
		t.Fatal(err)
	}
	k2, err := Key(source, opts)
	if err != nil {
		t.Fatal(err)
	}
	if k1 != k2 {
		t.Errorf("Key() not deterministic: %q vs %q", k1, k2)
	}

	opts.ArityCheck = !opts.ArityCheck
	k3, err := Key(source, opts)
	if err != nil {
		t.Fatal(err)
	}
	if k1 == k3 {
		t.Error("expected a different key when Options change")
	}
}

func TestKeyIsSourceSensitive(t *testing.T) {
	opts := config.Defaults()
	k1, err := Key([]byte("a"), opts)
	if err != nil {
		t.Fatal(err)
	}
	k2, err := Key([]byte("b"), opts)
	if err != nil {
		t.Fatal(err)
	}
	if k1 == k2 {
		t.Error("expected a different key for different source bytes")
	}
}
