// Package ban throttles repeated failed logins per client address using
// Redis counters. Every Redis failure lets the request through.
package ban

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const BanLogKey = "login:banlog"

type BanLogEntry struct {
	Target  string    `json:"target"`
	Route   string    `json:"route"`
	Strikes int       `json:"strikes"`
	Time    time.Time `json:"time"`
}

type Guard struct {
	rdb        redis.Cmdable
	maxStrikes int
	ttl        time.Duration
	now        func() time.Time
}

func NewGuard(rdb redis.Cmdable, maxStrikes int, ttl time.Duration) *Guard {
	if maxStrikes <= 0 {
		maxStrikes = 5
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Guard{rdb: rdb, maxStrikes: maxStrikes, ttl: ttl, now: time.Now}
}

func strikesKey(target string) string { return fmt.Sprintf("login:strikes:%s", target) }
func banKey(target string) string     { return fmt.Sprintf("login:ban:%s", target) }

// Banned reports whether target is currently locked out.
func (g *Guard) Banned(ctx context.Context, target string) bool {
	n, err := g.rdb.Exists(ctx, banKey(target)).Result()
	if err != nil {
		log.Printf("⚠️ ban lookup for %s failed: %v", target, err)
		return false
	}
	return n > 0
}

// Strike records one failed attempt and bans target once the limit is
// reached. It returns true when this strike caused the ban.
func (g *Guard) Strike(ctx context.Context, target, route string) bool {
	key := strikesKey(target)
	strikes, err := g.rdb.Incr(ctx, key).Result()
	if err != nil {
		log.Printf("⚠️ strike for %s failed: %v", target, err)
		return false
	}
	if strikes == 1 {
		if err := g.rdb.Expire(ctx, key, g.ttl).Err(); err != nil {
			log.Printf("⚠️ strike window for %s not set: %v", target, err)
		}
	}
	if strikes < int64(g.maxStrikes) {
		return false
	}

	if err := g.rdb.Set(ctx, banKey(target), strikes, g.ttl).Err(); err != nil {
		log.Printf("⚠️ ban for %s not stored: %v", target, err)
		return false
	}
	g.rdb.Del(ctx, key)
	log.Printf("🚫 %s banned for %v after %d failed logins", target, g.ttl, strikes)

	entry := BanLogEntry{Target: target, Route: route, Strikes: int(strikes), Time: g.now().UTC()}
	data, _ := json.Marshal(entry)
	if err := g.rdb.RPush(ctx, BanLogKey, data).Err(); err != nil {
		log.Printf("⚠️ ban log append failed: %v", err)
	}
	return true
}

// Reset forgets the strikes of target after a successful login.
func (g *Guard) Reset(ctx context.Context, target string) {
	if err := g.rdb.Del(ctx, strikesKey(target)).Err(); err != nil {
		log.Printf("⚠️ strike reset for %s failed: %v", target, err)
	}
}

// Log returns every recorded ban, oldest first.
func (g *Guard) Log(ctx context.Context) ([]BanLogEntry, error) {
	items, err := g.rdb.LRange(ctx, BanLogKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading ban log: %w", err)
	}

	entries := make([]BanLogEntry, 0, len(items))
	for _, item := range items {
		var entry BanLogEntry
		if err := json.Unmarshal([]byte(item), &entry); err == nil {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}
