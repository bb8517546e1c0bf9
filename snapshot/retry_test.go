package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("transient store failure")

type flakyStore struct {
	failures int
	inner    Store
}

func (f *flakyStore) Save(ctx context.Context, snap Snapshot) error {
	if f.failures > 0 {
		f.failures--
		return errTransient
	}
	return f.inner.Save(ctx, snap)
}

func (f *flakyStore) Load(ctx context.Context, runID string) (Snapshot, error) {
	if f.failures > 0 {
		f.failures--
		return Snapshot{}, errTransient
	}
	return f.inner.Load(ctx, runID)
}

func alwaysRetryable(error) bool { return true }

func TestRetryPolicyValidateRejectsBadConfig(t *testing.T) {
	cases := []RetryPolicy{
		{MaxAttempts: 0},
		{MaxAttempts: 3, BaseDelay: time.Second, MaxDelay: time.Millisecond},
	}
	for _, rp := range cases {
		if err := rp.Validate(); err != ErrInvalidRetryPolicy {
			t.Errorf("Validate(%+v) = %v, want ErrInvalidRetryPolicy", rp, err)
		}
	}
}

func TestRetryingStoreRetriesUntilSuccess(t *testing.T) {
	inner := NewMemoryStore()
	flaky := &flakyStore{failures: 2, inner: inner}

	policy := RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		MaxDelay:    10 * time.Millisecond,
		Retryable:   alwaysRetryable,
	}
	rs, err := NewRetryingStore(flaky, policy, 1)
	if err != nil {
		t.Fatalf("NewRetryingStore: %v", err)
	}

	snap := Snapshot{RunID: "run-1", Entries: []Entry{{CellName: "a", Value: 1}}}
	if err := rs.Save(context.Background(), snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := inner.Load(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("Load from inner: %v", err)
	}
	if len(got.Entries) != 1 {
		t.Fatalf("Load = %+v", got)
	}
}

func TestRetryingStoreGivesUpAfterMaxAttempts(t *testing.T) {
	flaky := &flakyStore{failures: 10, inner: NewMemoryStore()}
	policy := RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		Retryable:   alwaysRetryable,
	}
	rs, err := NewRetryingStore(flaky, policy, 1)
	if err != nil {
		t.Fatalf("NewRetryingStore: %v", err)
	}

	err = rs.Save(context.Background(), Snapshot{RunID: "run-1"})
	if err != errTransient {
		t.Fatalf("err = %v, want errTransient", err)
	}
}

func TestRetryingStoreDoesNotRetryNonRetryableErrors(t *testing.T) {
	flaky := &flakyStore{failures: 1, inner: NewMemoryStore()}
	policy := RetryPolicy{
		MaxAttempts: 5,
		BaseDelay:   time.Millisecond,
		Retryable:   func(error) bool { return false },
	}
	rs, err := NewRetryingStore(flaky, policy, 1)
	if err != nil {
		t.Fatalf("NewRetryingStore: %v", err)
	}

	err = rs.Save(context.Background(), Snapshot{RunID: "run-1"})
	if err != errTransient {
		t.Fatalf("err = %v, want errTransient (no retry attempted)", err)
	}
	if flaky.failures != 0 {
		t.Fatalf("flaky.failures = %d, want 0 (exactly one attempt consumed)", flaky.failures)
	}
}

func TestRetryingStoreNeverRetriesErrNotFound(t *testing.T) {
	inner := NewMemoryStore()
	rs, err := NewRetryingStore(inner, RetryPolicy{MaxAttempts: 5, BaseDelay: time.Millisecond, Retryable: alwaysRetryable}, 1)
	if err != nil {
		t.Fatalf("NewRetryingStore: %v", err)
	}

	_, err = rs.Load(context.Background(), "missing")
	if err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRetryingStoreRespectsContextCancellation(t *testing.T) {
	flaky := &flakyStore{failures: 10, inner: NewMemoryStore()}
	policy := RetryPolicy{
		MaxAttempts: 10,
		BaseDelay:   50 * time.Millisecond,
		MaxDelay:    time.Second,
		Retryable:   alwaysRetryable,
	}
	rs, err := NewRetryingStore(flaky, policy, 1)
	if err != nil {
		t.Fatalf("NewRetryingStore: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err = rs.Save(ctx, Snapshot{RunID: "run-1"})
	if err != context.DeadlineExceeded {
		t.Fatalf("err = %v, want context.DeadlineExceeded", err)
	}
}
