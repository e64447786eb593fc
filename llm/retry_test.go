package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Kothajagadish22/Gemini-Finance-AI/logging"
)

// fakeSleeper records requested waits without blocking.
type fakeSleeper struct {
	waits []time.Duration
}

func (f *fakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	f.waits = append(f.waits, d)
	return ctx.Err()
}

func TestDefaultRetryPolicy(t *testing.T) {
	p := DefaultRetryPolicy()
	if p.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", p.MaxAttempts)
	}
	if p.Delay != 2*time.Second {
		t.Errorf("Delay = %v, want 2s", p.Delay)
	}
	if p.Multiplier != 1 {
		t.Errorf("Multiplier = %v, want 1", p.Multiplier)
	}
}

func TestRetryPolicy_Delays(t *testing.T) {
	tests := []struct {
		name   string
		policy RetryPolicy
		want   []time.Duration
	}{
		{"fixed", RetryPolicy{MaxAttempts: 3, Delay: 2 * time.Second, Multiplier: 1}, []time.Duration{2 * time.Second, 2 * time.Second}},
		{"backoff", RetryPolicy{MaxAttempts: 4, Delay: time.Second, Multiplier: 2}, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}},
		{"multiplier below one is fixed", RetryPolicy{MaxAttempts: 3, Delay: time.Second, Multiplier: 0}, []time.Duration{time.Second, time.Second}},
		{"single attempt", RetryPolicy{MaxAttempts: 1, Delay: time.Second}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.policy.Delays()
			if len(got) != len(tt.want) {
				t.Fatalf("Delays() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Delays()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRetryPolicy_Do_FailsForever(t *testing.T) {
	sleeper := &fakeSleeper{}
	policy := DefaultRetryPolicy()
	policy.Sleep = sleeper.Sleep

	core, logs := observer.New(zapcore.WarnLevel)
	calls := 0
	attempts, err := policy.Do(context.Background(), logging.NewWithCore(core), func(ctx context.Context, attempt int) error {
		calls++
		if attempt != calls {
			t.Errorf("attempt = %d, want %d", attempt, calls)
		}
		return errors.New("service unavailable")
	})

	if !errors.Is(err, ErrRetriesExhausted) {
		t.Errorf("error = %v, want ErrRetriesExhausted", err)
	}
	if attempts != 3 || calls != 3 {
		t.Errorf("attempts = %d, calls = %d, want 3", attempts, calls)
	}
	if len(sleeper.waits) != 2 {
		t.Fatalf("slept %d times, want 2 (none after the last attempt)", len(sleeper.waits))
	}
	for _, w := range sleeper.waits {
		if w != 2*time.Second {
			t.Errorf("wait = %v, want 2s", w)
		}
	}
	if logs.Len() != 3 {
		t.Errorf("logged %d warnings, want 3", logs.Len())
	}
}

func TestRetryPolicy_Do_SucceedsAfterFailure(t *testing.T) {
	sleeper := &fakeSleeper{}
	policy := RetryPolicy{MaxAttempts: 3, Delay: time.Second, Multiplier: 1, Sleep: sleeper.Sleep}

	attempts, err := policy.Do(context.Background(), nil, func(ctx context.Context, attempt int) error {
		if attempt == 1 {
			return errors.New("transient")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
	if len(sleeper.waits) != 1 {
		t.Errorf("slept %d times, want 1", len(sleeper.waits))
	}
}

func TestRetryPolicy_Do_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sleeper := &fakeSleeper{}
	policy := RetryPolicy{MaxAttempts: 3, Delay: time.Second, Sleep: sleeper.Sleep}

	attempts, err := policy.Do(ctx, nil, func(ctx context.Context, attempt int) error {
		cancel()
		return errors.New("fail")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestSleepContext(t *testing.T) {
	if err := SleepContext(context.Background(), time.Millisecond); err != nil {
		t.Errorf("SleepContext() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	if err := SleepContext(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("SleepContext() error = %v, want context.Canceled", err)
	}
	if time.Since(start) > time.Second {
		t.Error("SleepContext() should return promptly when cancelled")
	}
}
