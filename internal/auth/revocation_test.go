package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupRedisRevocationList(t *testing.T) (*RedisRevocationList, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisRevocationList(client), mr
}

func TestRedisRevocationList(t *testing.T) {
	rl, mr := setupRedisRevocationList(t)
	ctx := context.Background()

	if err := rl.Revoke(ctx, "jti-1", time.Hour); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}

	revoked, err := rl.IsRevoked(ctx, "jti-1")
	if err != nil {
		t.Fatalf("IsRevoked failed: %v", err)
	}
	if !revoked {
		t.Error("revoked jti not reported as revoked")
	}

	revoked, err = rl.IsRevoked(ctx, "unknown-jti")
	if err != nil {
		t.Fatalf("IsRevoked failed: %v", err)
	}
	if revoked {
		t.Error("unknown jti reported as revoked")
	}

	// Entry disappears once the token lifetime has passed.
	mr.FastForward(2 * time.Hour)
	revoked, err = rl.IsRevoked(ctx, "jti-1")
	if err != nil {
		t.Fatalf("IsRevoked failed: %v", err)
	}
	if revoked {
		t.Error("expired revocation entry still reported as revoked")
	}
}

func TestRedisRevocationListExpiredToken(t *testing.T) {
	rl, _ := setupRedisRevocationList(t)
	ctx := context.Background()

	// A non-positive TTL means the token has already expired.
	if err := rl.Revoke(ctx, "jti-expired", 0); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	revoked, err := rl.IsRevoked(ctx, "jti-expired")
	if err != nil {
		t.Fatalf("IsRevoked failed: %v", err)
	}
	if revoked {
		t.Error("already-expired token should not create an entry")
	}
}

func TestMemoryRevocationList(t *testing.T) {
	rl := NewMemoryRevocationList()
	ctx := context.Background()

	if err := rl.Revoke(ctx, "jti-1", time.Hour); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}

	revoked, err := rl.IsRevoked(ctx, "jti-1")
	if err != nil {
		t.Fatalf("IsRevoked failed: %v", err)
	}
	if !revoked {
		t.Error("revoked jti not reported as revoked")
	}

	if revoked, _ := rl.IsRevoked(ctx, "other"); revoked {
		t.Error("unknown jti reported as revoked")
	}
}

func TestMemoryRevocationListPrunesExpired(t *testing.T) {
	rl := NewMemoryRevocationList()
	ctx := context.Background()

	if err := rl.Revoke(ctx, "jti-short", time.Nanosecond); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	time.Sleep(time.Millisecond)

	revoked, err := rl.IsRevoked(ctx, "jti-short")
	if err != nil {
		t.Fatalf("IsRevoked failed: %v", err)
	}
	if revoked {
		t.Error("expired entry still reported as revoked")
	}
}
