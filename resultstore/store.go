// Package resultstore persists task results for later retrieval, backed by
// Redis. Persistence is optional: the SDK evaluates tasks without a store,
// and attaches one only when results must outlive the process.
package resultstore

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/webarena-verified/sdk/eval"
)

// Record wraps a stored task result with run metadata.
type Record struct {
	// ID uniquely identifies this stored record.
	ID string `json:"id"`

	// RunID groups records produced by the same evaluation run.
	RunID string `json:"run_id,omitempty"`

	// StoredAt is when the record was written.
	StoredAt time.Time `json:"stored_at"`

	// Result is the full task result.
	Result *eval.TaskResult `json:"result"`
}

// Store defines the interface for task result persistence.
type Store interface {
	// Put stores a task result, overwriting any previous result for the
	// same task.
	Put(ctx context.Context, runID string, result *eval.TaskResult) error

	// Get returns the stored record for a task, or redis.Nil-wrapped error
	// when absent.
	Get(ctx context.Context, taskID int) (*Record, error)

	// List returns all stored records ordered by task ID.
	List(ctx context.Context) ([]*Record, error)

	// Close closes the underlying connection.
	Close() error
}

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379")
	URL string

	// KeyPrefix namespaces all keys written by the store. Default "results".
	KeyPrefix string

	// TLS configuration for secure connections
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment
	ConnectTimeout time.Duration
}

// RedisStore implements Store using go-redis/v9. Results are stored one key
// per task as JSON, with a set index for listing.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed result store and verifies the
// connection.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = "results"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client, prefix: opts.KeyPrefix}, nil
}

func (s *RedisStore) taskKey(taskID int) string {
	return fmt.Sprintf("%s:task:%d", s.prefix, taskID)
}

func (s *RedisStore) indexKey() string {
	return s.prefix + ":index"
}

// Put stores a task result as JSON under its task key and indexes it.
func (s *RedisStore) Put(ctx context.Context, runID string, result *eval.TaskResult) error {
	record := Record{
		ID:       uuid.NewString(),
		RunID:    runID,
		StoredAt: time.Now().UTC(),
		Result:   result,
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.taskKey(result.TaskID), data, 0)
	pipe.SAdd(ctx, s.indexKey(), strconv.Itoa(result.TaskID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store result for task %d: %w", result.TaskID, err)
	}
	return nil
}

// Get returns the stored record for a task.
func (s *RedisStore) Get(ctx context.Context, taskID int) (*Record, error) {
	data, err := s.client.Get(ctx, s.taskKey(taskID)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to load result for task %d: %w", taskID, err)
	}
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode record for task %d: %w", taskID, err)
	}
	return &record, nil
}

// List returns every stored record ordered by task ID.
func (s *RedisStore) List(ctx context.Context) ([]*Record, error) {
	members, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list stored tasks: %w", err)
	}

	ids := make([]int, 0, len(members))
	for _, m := range members {
		id, err := strconv.Atoi(m)
		if err != nil {
			return nil, fmt.Errorf("corrupt index entry %q: %w", m, err)
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)

	records := make([]*Record, 0, len(ids))
	for _, id := range ids {
		record, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
