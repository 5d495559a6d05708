package storage

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/ignite/customer-onboarding/internal/config"
	"github.com/ignite/customer-onboarding/internal/domain"
	"github.com/ignite/customer-onboarding/internal/service/customer"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(client, "test")
	t.Cleanup(func() { s.Close() })
	return s, mr
}

// backends runs fn against every IdentityStore implementation.
func backends(t *testing.T, fn func(t *testing.T, s IdentityStore)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemoryStore())
	})
	t.Run("redis", func(t *testing.T) {
		s, _ := newTestRedisStore(t)
		fn(t, s)
	})
}

func TestSaveAndFindScenario(t *testing.T) {
	backends(t, func(t *testing.T, s IdentityStore) {
		ctx := context.Background()

		first, err := s.Save(ctx, &domain.Customer{BusinessName: "Acme", PhoneNumber: "555-0100"})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), first.ID)

		second, err := s.Save(ctx, &domain.Customer{BusinessName: "Globex", PhoneNumber: "555-0199"})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), second.ID)

		got, err := s.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, domain.Customer{ID: 1, BusinessName: "Acme", PhoneNumber: "555-0100"}, *got)

		got, err = s.FindByID(ctx, 99)
		assert.ErrorIs(t, err, customer.ErrNotFound)
		assert.Nil(t, got)
	})
}

func TestSaveIgnoresCallerID(t *testing.T) {
	backends(t, func(t *testing.T, s IdentityStore) {
		ctx := context.Background()

		saved, err := s.Save(ctx, &domain.Customer{ID: 42, BusinessName: "Acme", PhoneNumber: "1"})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), saved.ID)

		_, err = s.FindByID(ctx, 42)
		assert.ErrorIs(t, err, customer.ErrNotFound)
	})
}

func TestSaveKeepsOptionalFields(t *testing.T) {
	backends(t, func(t *testing.T, s IdentityStore) {
		ctx := context.Background()
		in := &domain.Customer{
			BusinessName: "Acme",
			PhoneNumber:  "555-0100",
			Website:      "https://acme.test",
			Documents:    []string{"kyc.pdf", "lease.pdf"},
		}

		saved, err := s.Save(ctx, in)
		require.NoError(t, err)

		got, err := s.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://acme.test", got.Website)
		assert.Equal(t, []string{"kyc.pdf", "lease.pdf"}, got.Documents)
	})
}

func TestStoredRecordIsIsolatedFromCaller(t *testing.T) {
	backends(t, func(t *testing.T, s IdentityStore) {
		ctx := context.Background()
		in := &domain.Customer{BusinessName: "Acme", PhoneNumber: "1", Documents: []string{"a"}}

		saved, err := s.Save(ctx, in)
		require.NoError(t, err)

		in.BusinessName = "Mutated"
		in.Documents[0] = "mutated"

		got, err := s.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme", got.BusinessName)
		assert.Equal(t, []string{"a"}, got.Documents)

		got.BusinessName = "Also mutated"
		again, err := s.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme", again.BusinessName)
	})
}

func TestConcurrentSavesAssignDenseUniqueIDs(t *testing.T) {
	const n = 200

	backends(t, func(t *testing.T, s IdentityStore) {
		ctx := context.Background()
		ids := make([]uint64, n)

		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				c, err := s.Save(ctx, &domain.Customer{BusinessName: "Acme", PhoneNumber: "1"})
				if err != nil {
					t.Errorf("Save: %v", err)
					return
				}
				ids[i] = c.ID
			}(i)
		}
		close(start)
		wg.Wait()

		sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
		for i, id := range ids {
			require.Equal(t, uint64(i+1), id, "ids must be exactly 1..%d", n)
		}

		for _, id := range ids {
			_, err := s.FindByID(ctx, id)
			require.NoError(t, err)
		}
	})
}

func TestMemoryStoreLen(t *testing.T) {
	s := NewMemoryStore()
	assert.Equal(t, 0, s.Len())

	_, err := s.Save(context.Background(), &domain.Customer{BusinessName: "Acme", PhoneNumber: "1"})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
	assert.NoError(t, s.Close())
}

func TestRedisStoreUsesPrefixedKeys(t *testing.T) {
	s, mr := newTestRedisStore(t)

	_, err := s.Save(context.Background(), &domain.Customer{BusinessName: "Acme", PhoneNumber: "1"})
	require.NoError(t, err)

	seq, err := mr.Get("test:customers:seq")
	require.NoError(t, err)
	assert.Equal(t, "1", seq)
	assert.True(t, mr.Exists("test:customers"))
	assert.JSONEq(t, `{"businessName":"Acme","phoneNumber":"1","website":"","documents":null}`, mr.HGet("test:customers", "1"))
}

func TestRedisStoreCounterSurvivesHashLoss(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, &domain.Customer{BusinessName: "Acme", PhoneNumber: "1"})
	require.NoError(t, err)
	mr.Del("test:customers")

	c, err := s.Save(ctx, &domain.Customer{BusinessName: "Globex", PhoneNumber: "2"})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), c.ID, "identifiers are never reused")
}

func TestRedisStoreReportsBackendErrors(t *testing.T) {
	s, mr := newTestRedisStore(t)
	mr.Close()

	_, err := s.Save(context.Background(), &domain.Customer{BusinessName: "Acme", PhoneNumber: "1"})
	assert.Error(t, err)

	_, err = s.FindByID(context.Background(), 1)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, customer.ErrNotFound)
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		s, err := New(ctx, config.StorageConfig{Type: config.StorageMemory})
		require.NoError(t, err)
		assert.IsType(t, &MemoryStore{}, s)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		s, err := New(ctx, config.StorageConfig{
			Type:  config.StorageRedis,
			Redis: config.RedisConfig{Addr: mr.Addr(), KeyPrefix: "onb"},
		})
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &RedisStore{}, s)
	})

	t.Run("redis unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := New(ctx, config.StorageConfig{
			Type:  config.StorageRedis,
			Redis: config.RedisConfig{Addr: addr},
		})
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := New(ctx, config.StorageConfig{Type: "etcd"})
		assert.Error(t, err)
	})
}
