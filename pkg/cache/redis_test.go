package cache

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisCache(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	data, ok, err := c.Get(ctx, "missing")
	if err != nil || ok || data != nil {
		t.Fatalf("Get(missing) = %q, %v, %v, want miss without error", data, ok, err)
	}

	if err := c.Set(ctx, "k", []byte("value"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok, err = c.Get(ctx, "k")
	if err != nil || !ok || !bytes.Equal(data, []byte("value")) {
		t.Fatalf("Get(k) = %q, %v, %v", data, ok, err)
	}
	if ttl := mr.TTL("k"); ttl != 0 {
		t.Errorf("zero ttl stored as %v, want no expiry", ttl)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if mr.Exists("k") {
		t.Error("key still present after Delete")
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get after Delete hit")
	}
}

func TestRedisCacheExpiry(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL("k"); ttl != time.Minute {
		t.Errorf("TTL = %v, want 1m", ttl)
	}
	if _, ok, _ := c.Get(ctx, "k"); !ok {
		t.Fatal("fresh entry missed")
	}

	mr.FastForward(2 * time.Minute)
	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Errorf("expired entry: ok=%v err=%v, want miss", ok, err)
	}

	// Negative ttls are stored without expiry.
	if err := c.Set(ctx, "forever", []byte("v"), -time.Second); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL("forever"); ttl != 0 {
		t.Errorf("negative ttl stored as %v, want no expiry", ttl)
	}
}

func TestNewRedisCache(t *testing.T) {
	defer func(d time.Duration) { retryDelay = d }(retryDelay)
	retryDelay = time.Millisecond
	ctx := context.Background()

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	c, err := NewRedisCache(ctx, "redis://"+addr+"/0")
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if got, _ := mr.Get("k"); got != "v" {
		t.Errorf("server holds %q, want v", got)
	}

	mr.Close()
	if _, _, err := c.Get(ctx, "k"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Get on a stopped server = %v, want ErrUnavailable", err)
	}
	_ = c.Close()

	if _, err := NewRedisCache(ctx, "redis://"+addr+"/0"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("NewRedisCache on a stopped server = %v, want ErrUnavailable", err)
	}
	if _, err := NewRedisCache(ctx, "not a url"); err == nil || errors.Is(err, ErrUnavailable) {
		t.Errorf("NewRedisCache(bad url) = %v, want a parse error", err)
	}
}
