package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/logging"

	"github.com/kpumuk/lazytimeline/internal/devtools"
	"github.com/kpumuk/lazytimeline/internal/timeline"
)

func init() {
	// Disable all Redis logging globally using the built-in VoidLogger
	redis.SetLogger(&logging.VoidLogger{})
}

// DefaultRedisURL is used when no URL is configured.
const DefaultRedisURL = "redis://localhost:6379/0"

// RedisSource reads groups and entries from Redis.
//
// Layout, with prefix "lazytimeline":
//
//	lazytimeline:groups          list of JSON groups in row order
//	lazytimeline:entries:<group> sorted set of JSON entries scored by start ms
//	lazytimeline:bounds          hash of start, end and longest (entry duration)
type RedisSource struct {
	redis           *redis.Client
	prefix          string
	displayRedisURL string
}

// NewRedisSource creates a source configured from a Redis URL. When tracker
// is not nil every command is recorded in it.
func NewRedisSource(redisURL, prefix string, tracker *devtools.Tracker) (*RedisSource, error) {
	if redisURL == "" {
		redisURL = DefaultRedisURL
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.MaxRetries = -1
	opts.DialTimeout = 2 * time.Second
	opts.ReadTimeout = 2 * time.Second
	opts.WriteTimeout = 2 * time.Second
	opts.PoolSize = 2

	rdb := redis.NewClient(opts)
	if tracker != nil {
		rdb.AddHook(tracker.Hook())
	}

	return newRedisSource(rdb, prefix, sanitizeRedisURL(redisURL)), nil
}

func newRedisSource(rdb *redis.Client, prefix, displayURL string) *RedisSource {
	if prefix == "" {
		prefix = "lazytimeline"
	}
	return &RedisSource{
		redis:           rdb,
		prefix:          prefix,
		displayRedisURL: displayURL,
	}
}

// DisplayRedisURL returns a sanitized URL safe for display.
func (s *RedisSource) DisplayRedisURL() string {
	return s.displayRedisURL
}

func sanitizeRedisURL(redisURL string) string {
	if redisURL == "" {
		return ""
	}
	parsed, err := url.Parse(redisURL)
	if err != nil {
		return redisURL
	}
	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = nil
		} else {
			parsed.User = url.User(username)
		}
	}
	return parsed.String()
}

func (s *RedisSource) groupsKey() string {
	return s.prefix + ":groups"
}

func (s *RedisSource) entriesKey(groupID string) string {
	return s.prefix + ":entries:" + groupID
}

func (s *RedisSource) boundsKey() string {
	return s.prefix + ":bounds"
}

// Close closes the Redis connection.
func (s *RedisSource) Close() error {
	return s.redis.Close()
}

// Groups implements Source.
func (s *RedisSource) Groups(ctx context.Context) ([]timeline.Group, error) {
	ctx = devtools.WithOrigin(ctx, "store.Groups")
	values, err := s.redis.LRange(ctx, s.groupsKey(), 0, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("load groups: %w", err)
	}

	groups := make([]timeline.Group, 0, len(values))
	for _, value := range values {
		g, err := decodeMember[timeline.Group](value)
		if err != nil {
			return nil, fmt.Errorf("decode group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// Entries implements Source. Entries are read by start score from the window
// start minus the longest stored duration up to the window end, and then
// filtered by their end, so long entries that started before the window are
// included. Without a recorded longest duration the whole history is scanned.
func (s *RedisSource) Entries(ctx context.Context, window timeline.TimeWindow, groupIDs []string) ([]timeline.Entry, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	if len(groupIDs) == 0 {
		return nil, nil
	}
	ctx = devtools.WithOrigin(ctx, "store.Entries")

	minScore, err := s.lookback(ctx, window)
	if err != nil {
		return nil, err
	}

	pipe := s.redis.Pipeline()
	cmds := make([]*redis.StringSliceCmd, len(groupIDs))
	for i, id := range groupIDs {
		cmds[i] = pipe.ZRangeByScore(ctx, s.entriesKey(id), &redis.ZRangeBy{
			Min: minScore,
			Max: strconv.FormatInt(window.End, 10),
		})
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("load entries: %w", err)
	}

	var entries []timeline.Entry
	for _, cmd := range cmds {
		values, err := cmd.Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("load entries: %w", err)
		}
		for _, value := range values {
			e, err := decodeMember[timeline.Entry](value)
			if err != nil {
				return nil, fmt.Errorf("decode entry: %w", err)
			}
			if e.End < window.Start {
				continue
			}
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// lookback returns the lowest start score of an entry that can reach window.
func (s *RedisSource) lookback(ctx context.Context, window timeline.TimeWindow) (string, error) {
	longest, err := s.redis.HGet(ctx, s.boundsKey(), "longest").Int64()
	if errors.Is(err, redis.Nil) {
		return "-inf", nil
	}
	if err != nil {
		return "", fmt.Errorf("load bounds: %w", err)
	}
	return strconv.FormatInt(window.Start-max(longest, 0), 10), nil
}

// Save replaces everything stored under the prefix with ds.
func (s *RedisSource) Save(ctx context.Context, ds Dataset) error {
	ctx = devtools.WithOrigin(ctx, "store.Save")

	previous, err := s.Groups(ctx)
	if err != nil {
		return err
	}

	pipe := s.redis.TxPipeline()
	pipe.Del(ctx, s.groupsKey(), s.boundsKey())
	for _, g := range previous {
		pipe.Del(ctx, s.entriesKey(g.ID))
	}

	for _, g := range ds.Groups {
		member, err := encodeMember(g)
		if err != nil {
			return fmt.Errorf("group %s: %w", g.ID, err)
		}
		pipe.RPush(ctx, s.groupsKey(), member)
	}
	var longest int64
	for _, e := range ds.Entries {
		longest = max(longest, e.End-e.Start)
		member, err := encodeMember(e)
		if err != nil {
			return fmt.Errorf("entry %s: %w", e.ID, err)
		}
		pipe.ZAdd(ctx, s.entriesKey(e.GroupID), redis.Z{
			Score:  float64(e.Start),
			Member: member,
		})
	}

	if w, ok := ds.Window(); ok {
		pipe.HSet(ctx, s.boundsKey(), "start", w.Start, "end", w.End, "longest", longest)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save dataset: %w", err)
	}
	return nil
}

// Bounds implements Bounder with the range recorded by Save.
func (s *RedisSource) Bounds(ctx context.Context) (timeline.TimeWindow, bool, error) {
	ctx = devtools.WithOrigin(ctx, "store.Bounds")
	values, err := s.redis.HMGet(ctx, s.boundsKey(), "start", "end").Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return timeline.TimeWindow{}, false, fmt.Errorf("load bounds: %w", err)
	}
	if len(values) != 2 || values[0] == nil || values[1] == nil {
		return timeline.TimeWindow{}, false, nil
	}

	var w timeline.TimeWindow
	if w.Start, err = parseBound(values[0]); err != nil {
		return timeline.TimeWindow{}, false, err
	}
	if w.End, err = parseBound(values[1]); err != nil {
		return timeline.TimeWindow{}, false, err
	}
	return w, w.Valid(), nil
}

func parseBound(value any) (int64, error) {
	text, ok := value.(string)
	if !ok {
		return 0, fmt.Errorf("decode bounds: unexpected %T", value)
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode bounds: %w", err)
	}
	return n, nil
}
