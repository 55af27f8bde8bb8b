package budget

import (
	"errors"
	"testing"
)

func TestBudget_Consume(t *testing.T) {
	b := New("determinize", 10)

	for i := 0; i < 10; i++ {
		if err := b.Consume(1); err != nil {
			t.Fatalf("unexpected error at step %d: %v", i, err)
		}
	}
	err := b.Consume(1)
	if err == nil {
		t.Fatal("expected limit error after ceiling crossed")
	}

	var le *LimitError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LimitError, got %T", err)
	}
	if le.Op != "determinize" {
		t.Errorf("Op = %q, want %q", le.Op, "determinize")
	}
	if le.Limit != 10 || le.Consumed != 11 {
		t.Errorf("Limit/Consumed = %d/%d, want 10/11", le.Limit, le.Consumed)
	}
}

func TestBudget_Unlimited(t *testing.T) {
	b := New("nfa", 0)
	if err := b.Consume(1 << 30); err != nil {
		t.Fatalf("unlimited budget must never abort: %v", err)
	}
	if b.Consumed() != 1<<30 {
		t.Errorf("Consumed = %d, want %d", b.Consumed(), 1<<30)
	}
}

func TestBudget_NilDisablesBounding(t *testing.T) {
	var b *Budget
	if err := b.Consume(1 << 40); err != nil {
		t.Fatalf("nil budget must be a no-op: %v", err)
	}
	b.UpdateStats(1, 2, 3)
	if b.Consumed() != 0 || b.Op() != "" {
		t.Error("nil budget accessors should return zero values")
	}
}

func TestBudget_Stats(t *testing.T) {
	b := New("minimize", 100)
	b.UpdateStats(5, 40, 12)
	got := b.Stats()
	if got.States != 5 || got.Transitions != 40 || got.AlphabetSize != 12 {
		t.Errorf("Stats = %+v", got)
	}
}

func TestLimitError_Is(t *testing.T) {
	err := New("nfa", 1).Consume(2)
	if !errors.Is(err, &LimitError{}) {
		t.Error("errors.Is should match any *LimitError")
	}
}
