//go:build ignore
// +build ignore

// Onboarding Load Test - Validates identifier allocation under concurrent traffic
//
// Test Scenarios:
// 1. Burst Create Test - Many admins onboard customers at once
// 2. Lookup Test - Every created customer is readable by a USER token
// 3. Allocation Check - Returned ids are unique and, on a fresh store, dense
//
// Usage:
//
//	go run scripts/onboarding_loadtest.go \
//	  --url="http://localhost:8080" \
//	  --redis="localhost:6379" \
//	  --requests=10000 \
//	  --workers=32
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

// LoadTestConfig defines the test configuration
type LoadTestConfig struct {
	BaseURL    string
	RedisAddr  string
	KeyPrefix  string
	Requests   int
	Workers    int
	AdminToken string
	UserToken  string
	Timeout    time.Duration
}

// DefaultConfig returns defaults matching a local server
func DefaultConfig() *LoadTestConfig {
	return &LoadTestConfig{
		BaseURL:    "http://localhost:8080",
		KeyPrefix:  "onboarding",
		Requests:   10_000,
		Workers:    32,
		AdminToken: "ADMIN123",
		UserToken:  "USER123",
		Timeout:    10 * time.Second,
	}
}

// =============================================================================
// METRICS COLLECTION
// =============================================================================

// Metrics holds collected results
type Metrics struct {
	StartTime time.Time
	EndTime   time.Time

	CreatesAttempted int64
	CreatesSucceeded int64
	CreateLatencies  []time.Duration

	LookupsAttempted int64
	LookupsSucceeded int64

	IDs          []uint64
	ErrorsByType map[string]int64

	mu sync.Mutex
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	return &Metrics{ErrorsByType: make(map[string]int64)}
}

// RecordCreate records one create call
func (m *Metrics) RecordCreate(latency time.Duration, id uint64, err error) {
	atomic.AddInt64(&m.CreatesAttempted, 1)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.ErrorsByType["create"]++
		return
	}
	m.CreatesSucceeded++
	m.CreateLatencies = append(m.CreateLatencies, latency)
	m.IDs = append(m.IDs, id)
}

// RecordLookup records one lookup call
func (m *Metrics) RecordLookup(err error) {
	atomic.AddInt64(&m.LookupsAttempted, 1)
	if err != nil {
		m.mu.Lock()
		m.ErrorsByType["lookup"]++
		m.mu.Unlock()
		return
	}
	atomic.AddInt64(&m.LookupsSucceeded, 1)
}

// percentile calculates the p-th percentile of durations
func percentile(durations []time.Duration, p int) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := int(float64(len(sorted)-1) * float64(p) / 100)
	return sorted[idx]
}

// =============================================================================
// CLIENT
// =============================================================================

type customerPayload struct {
	ID           uint64 `json:"id,omitempty"`
	BusinessName string `json:"businessName"`
	PhoneNumber  string `json:"phoneNumber"`
}

type client struct {
	cfg  *LoadTestConfig
	http *http.Client
}

func (c *client) create(ctx context.Context, n int) (uint64, error) {
	body, err := json.Marshal(customerPayload{
		BusinessName: fmt.Sprintf("Load Test Business %d", n),
		PhoneNumber:  fmt.Sprintf("555-%04d", n%10000),
	})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/customers", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.AdminToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("create returned %d", resp.StatusCode)
	}

	var created customerPayload
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return 0, fmt.Errorf("decoding create response: %w", err)
	}
	return created.ID, nil
}

func (c *client) lookup(ctx context.Context, id uint64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/customers/%d", c.cfg.BaseURL, id), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.UserToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("lookup %d returned %d", id, resp.StatusCode)
	}
	return nil
}

// =============================================================================
// TEST PHASES
// =============================================================================

func runCreates(ctx context.Context, c *client, m *Metrics) {
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < c.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range jobs {
				start := time.Now()
				id, err := c.create(ctx, n)
				m.RecordCreate(time.Since(start), id, err)
			}
		}()
	}

	for n := 0; n < c.cfg.Requests; n++ {
		select {
		case jobs <- n:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return
		}
	}
	close(jobs)
	wg.Wait()
}

func runLookups(ctx context.Context, c *client, m *Metrics) {
	ids := make(chan uint64)
	var wg sync.WaitGroup

	for w := 0; w < c.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range ids {
				m.RecordLookup(c.lookup(ctx, id))
			}
		}()
	}

	m.mu.Lock()
	created := append([]uint64(nil), m.IDs...)
	m.mu.Unlock()

	for _, id := range created {
		select {
		case ids <- id:
		case <-ctx.Done():
			close(ids)
			wg.Wait()
			return
		}
	}
	close(ids)
	wg.Wait()
}

// checkAllocation reports duplicate ids and whether the ids form one
// contiguous run.
func checkAllocation(ids []uint64) (duplicates int, contiguous bool) {
	if len(ids) == 0 {
		return 0, true
	}
	sorted := append([]uint64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	contiguous = true
	for i := 1; i < len(sorted); i++ {
		switch sorted[i] - sorted[i-1] {
		case 0:
			duplicates++
		case 1:
		default:
			contiguous = false
		}
	}
	return duplicates, contiguous
}

// =============================================================================
// MAIN
// =============================================================================

func main() {
	cfg := DefaultConfig()
	flag.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "API base URL")
	flag.StringVar(&cfg.RedisAddr, "redis", "", "Redis address (optional, checks the id counter)")
	flag.StringVar(&cfg.KeyPrefix, "prefix", cfg.KeyPrefix, "Redis key prefix used by the server")
	flag.IntVar(&cfg.Requests, "requests", cfg.Requests, "Number of customers to create")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Concurrent workers")
	flag.StringVar(&cfg.AdminToken, "admin-token", cfg.AdminToken, "ADMIN bearer token")
	flag.StringVar(&cfg.UserToken, "user-token", cfg.UserToken, "USER bearer token")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var startSeq int64
	var rdb *redis.Client
	seqKey := cfg.KeyPrefix + ":customers:seq"
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		v, err := rdb.Get(ctx, seqKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			log.Fatalf("Failed to read %s: %v", seqKey, err)
		}
		startSeq = v
	}

	c := &client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
	m := NewMetrics()

	log.Printf("Creating %d customers against %s with %d workers", cfg.Requests, cfg.BaseURL, cfg.Workers)
	m.StartTime = time.Now()
	runCreates(ctx, c, m)
	m.EndTime = time.Now()

	log.Printf("Looking up %d customers", len(m.IDs))
	runLookups(ctx, c, m)

	elapsed := m.EndTime.Sub(m.StartTime)
	rate := 0.0
	if elapsed > 0 {
		rate = float64(m.CreatesSucceeded) / elapsed.Seconds()
	}
	duplicates, contiguous := checkAllocation(m.IDs)

	fmt.Println("=== Onboarding Load Test ===")
	fmt.Printf("Creates:     %d/%d succeeded (%.1f/s)\n", m.CreatesSucceeded, m.CreatesAttempted, rate)
	fmt.Printf("Latency:     p50=%v p99=%v\n", percentile(m.CreateLatencies, 50), percentile(m.CreateLatencies, 99))
	fmt.Printf("Lookups:     %d/%d succeeded\n", m.LookupsSucceeded, m.LookupsAttempted)
	fmt.Printf("Duplicates:  %d\n", duplicates)
	fmt.Printf("Contiguous:  %v\n", contiguous)
	for kind, n := range m.ErrorsByType {
		fmt.Printf("Errors[%s]: %d\n", kind, n)
	}

	failed := duplicates > 0 || m.LookupsSucceeded != m.CreatesSucceeded

	if rdb != nil {
		endSeq, err := rdb.Get(context.Background(), seqKey).Int64()
		if err != nil {
			log.Fatalf("Failed to read %s: %v", seqKey, err)
		}
		fmt.Printf("Counter:     %d -> %d\n", startSeq, endSeq)
		// Every successful create advances the counter by exactly one
		if endSeq-startSeq < m.CreatesSucceeded {
			failed = true
		}
	}

	if failed {
		fmt.Println("Status:      FAIL")
		os.Exit(1)
	}
	fmt.Println("Status:      PASS")
}
