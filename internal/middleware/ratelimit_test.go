package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestRateLimit_BlocksAfterBurst(t *testing.T) {
	handler := RateLimit(rate.Limit(1), 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/legacy/tok", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("first two requests = %v; want both 200", codes[:2])
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request = %d; want 429", codes[2])
	}
}

func TestRateLimit_PerClientBuckets(t *testing.T) {
	handler := RateLimit(rate.Limit(1), 1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/legacy/tok", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	handler.ServeHTTP(first, req)

	// A different client must not inherit the first client's spent bucket.
	other := httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/legacy/tok", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	handler.ServeHTTP(other, req)

	if first.Code != http.StatusOK || other.Code != http.StatusOK {
		t.Errorf("codes = %d, %d; want both 200", first.Code, other.Code)
	}
}

func TestLimiterRegistry_CapBoundsClientState(t *testing.T) {
	reg := newLimiterRegistry(rate.Limit(1), 1)
	reg.max = 4
	reg.now = func() time.Time { return time.Unix(1000, 0) }

	for i := 0; i < 100; i++ {
		reg.get(fmt.Sprintf("10.0.0.%d", i))
	}
	if len(reg.entries) > reg.max {
		t.Errorf("registry holds %d entries; cap is %d", len(reg.entries), reg.max)
	}
}

func TestLimiterRegistry_EvictsIdleBeforeActive(t *testing.T) {
	clock := time.Unix(1000, 0)
	reg := newLimiterRegistry(rate.Limit(1), 1)
	reg.max = 2
	reg.now = func() time.Time { return clock }

	reg.get("idle-client")
	clock = clock.Add(reg.idleTTL + time.Second)
	reg.get("active-client")
	reg.get("new-client") // at cap, must evict the idle entry

	if _, ok := reg.entries["idle-client"]; ok {
		t.Error("idle entry survived eviction")
	}
	if _, ok := reg.entries["active-client"]; !ok {
		t.Error("active entry was evicted while an idle one existed")
	}
	if _, ok := reg.entries["new-client"]; !ok {
		t.Error("new client did not get a bucket")
	}
}

func TestLimiterRegistry_ReturnsSameBucketForKey(t *testing.T) {
	reg := newLimiterRegistry(rate.Limit(1), 1)
	if reg.get("10.0.0.1") != reg.get("10.0.0.1") {
		t.Error("repeat lookups for one client must share a bucket")
	}
}
