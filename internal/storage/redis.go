package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/ignite/customer-onboarding/internal/domain"
	"github.com/ignite/customer-onboarding/internal/service/customer"
	"github.com/redis/go-redis/v9"
)

// saveScript allocates the next ID and writes the record in one server-side
// step. KEYS[1] is the counter, KEYS[2] the record hash, ARGV[1] the payload.
var saveScript = redis.NewScript(`
local id = redis.call("INCR", KEYS[1])
redis.call("HSET", KEYS[2], tostring(id), ARGV[1])
return id
`)

// RedisStore keeps customers in a redis hash keyed by ID, with the ID counter
// in a sibling key. Every replica pointed at the same server and prefix shares
// one identifier sequence.
type RedisStore struct {
	client     *redis.Client
	counterKey string
	recordsKey string
}

// NewRedisStore creates a store using keys under prefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client:     client,
		counterKey: prefix + ":customers:seq",
		recordsKey: prefix + ":customers",
	}
}

// redisRecord is the stored payload. The ID lives in the hash field, not here.
type redisRecord struct {
	BusinessName string   `json:"businessName"`
	PhoneNumber  string   `json:"phoneNumber"`
	Website      string   `json:"website"`
	Documents    []string `json:"documents"`
}

// Save assigns the next ID to c and stores it.
func (s *RedisStore) Save(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	payload, err := json.Marshal(redisRecord{
		BusinessName: c.BusinessName,
		PhoneNumber:  c.PhoneNumber,
		Website:      c.Website,
		Documents:    c.Documents,
	})
	if err != nil {
		return nil, fmt.Errorf("encode customer: %w", err)
	}

	id, err := saveScript.Run(ctx, s.client, []string{s.counterKey, s.recordsKey}, payload).Int64()
	if err != nil {
		return nil, fmt.Errorf("save customer: %w", err)
	}

	c.ID = uint64(id)
	return c, nil
}

// FindByID returns the stored customer or customer.ErrNotFound.
func (s *RedisStore) FindByID(ctx context.Context, id uint64) (*domain.Customer, error) {
	payload, err := s.client.HGet(ctx, s.recordsKey, strconv.FormatUint(id, 10)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, customer.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find customer %d: %w", id, err)
	}

	var rec redisRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decode customer %d: %w", id, err)
	}
	return &domain.Customer{
		ID:           id,
		BusinessName: rec.BusinessName,
		PhoneNumber:  rec.PhoneNumber,
		Website:      rec.Website,
		Documents:    rec.Documents,
	}, nil
}

// Close closes the redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
