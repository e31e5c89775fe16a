package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/okian/cvparse/internal/domain/model"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "cvparse"
	pingTimeout   = 5 * time.Second
)

// RedisStore keeps each job as a JSON string and a sorted set of job ids
// scored by submission time.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore checks connectivity and returns a store on client.
func NewRedisStore(ctx context.Context, client *redis.Client, opts ...RedisOption) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	s := &RedisStore{client: client, prefix: defaultPrefix}
	for _, opt := range opts {
		opt(s)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return s, nil
}

type storedJob struct {
	ID          string       `json:"id"`
	Fingerprint string       `json:"fingerprint"`
	Filename    string       `json:"filename"`
	BlobKey     string       `json:"blob_key"`
	Text        string       `json:"text,omitempty"`
	Status      model.Status `json:"status"`
	Record      model.Record `json:"record"`
	Error       string       `json:"error,omitempty"`
	Submitted   time.Time    `json:"submitted"`
	Completed   time.Time    `json:"completed"`
}

func toStored(j *model.Job) storedJob {
	return storedJob{
		ID: j.ID, Fingerprint: j.Fingerprint, Filename: j.Filename, BlobKey: j.BlobKey,
		Text: j.Text, Status: j.Status, Record: j.Record, Error: j.Error,
		Submitted: j.Submitted, Completed: j.Completed,
	}
}

func (s *storedJob) job() model.Job {
	return model.Job{
		ID: s.ID, Fingerprint: s.Fingerprint, Filename: s.Filename, BlobKey: s.BlobKey,
		Text: s.Text, Status: s.Status, Record: s.Record, Error: s.Error,
		Submitted: s.Submitted, Completed: s.Completed,
	}
}

func (s *RedisStore) jobKey(id string) string { return s.prefix + ":job:" + id }

func (s *RedisStore) indexKey() string { return s.prefix + ":jobs" }

// Save stores j. The index entry is only added once, so a job keeps its
// original position when it is saved again after processing.
func (s *RedisStore) Save(ctx context.Context, j model.Job) error { //nolint:gocritic // hugeParam: jobs travel by value
	defer observe("save", time.Now())
	if j.ID == "" {
		return ErrInvalidJob
	}

	data, err := json.Marshal(toStored(&j))
	if err != nil {
		return fmt.Errorf("marshal job %s: %w", j.ID, err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.jobKey(j.ID), data, s.ttl)
	pipe.ZAddNX(ctx, s.indexKey(), redis.Z{Score: float64(j.Submitted.UnixMicro()), Member: j.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save job %s: %w", j.ID, err)
	}
	return nil
}

// Get returns the job with id.
func (s *RedisStore) Get(ctx context.Context, id string) (model.Job, error) {
	defer observe("get", time.Now())

	data, err := s.client.Get(ctx, s.jobKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Job{}, ErrNotFound
	}
	if err != nil {
		return model.Job{}, fmt.Errorf("get job %s: %w", id, err)
	}
	var sj storedJob
	if err := json.Unmarshal(data, &sj); err != nil {
		return model.Job{}, fmt.Errorf("decode job %s: %w", id, err)
	}
	return sj.job(), nil
}

// List returns up to limit jobs, newest first.
func (s *RedisStore) List(ctx context.Context, limit int) ([]model.Job, error) {
	defer observe("list", time.Now())
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	return s.load(ctx, int64(limit-1))
}

// All returns every job, newest first.
func (s *RedisStore) All(ctx context.Context) ([]model.Job, error) {
	defer observe("all", time.Now())
	return s.load(ctx, -1)
}

// load reads the index range [0, stop] and the jobs it names. Ids whose job
// key has expired are skipped.
func (s *RedisStore) load(ctx context.Context, stop int64) ([]model.Job, error) {
	ids, err := s.client.ZRevRange(ctx, s.indexKey(), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	if len(ids) == 0 {
		return []model.Job{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.jobKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load jobs: %w", err)
	}

	out := make([]model.Job, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var sj storedJob
		if err := json.Unmarshal([]byte(raw), &sj); err != nil {
			return nil, fmt.Errorf("decode job %s: %w", ids[i], err)
		}
		out = append(out, sj.job())
	}
	return out, nil
}

// Delete removes the job with id and its index entry.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	defer observe("delete", time.Now())

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.jobKey(id))
	pipe.ZRem(ctx, s.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete job %s: %w", id, err)
	}
	return nil
}

// Count returns the number of indexed jobs.
func (s *RedisStore) Count(ctx context.Context) int {
	n, err := s.client.ZCard(ctx, s.indexKey()).Result()
	if err != nil {
		return 0
	}
	return int(n)
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
