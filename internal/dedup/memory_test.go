package dedup_test

import (
	"context"
	"testing"
	"time"

	"github.com/lagosinph/ticketstore/internal/dedup"
)

func TestMemoryMarkSeen(t *testing.T) {
	s := dedup.NewMemory(time.Hour)
	ctx := context.Background()

	first, err := s.MarkSeen(ctx, "ref-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first {
		t.Fatal("first appearance should report true")
	}

	again, err := s.MarkSeen(ctx, "ref-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again {
		t.Fatal("second appearance should report false")
	}

	other, _ := s.MarkSeen(ctx, "ref-2")
	if !other {
		t.Fatal("distinct references are independent")
	}
}

func TestMemoryForget(t *testing.T) {
	s := dedup.NewMemory(time.Hour)
	ctx := context.Background()

	if first, _ := s.MarkSeen(ctx, "ref-1"); !first {
		t.Fatal("first appearance should report true")
	}

	if err := s.Forget(ctx, "ref-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// a forgotten reference counts as new again
	if first, _ := s.MarkSeen(ctx, "ref-1"); !first {
		t.Fatal("forgotten reference should report true again")
	}
}

func TestMemoryRetentionIsBounded(t *testing.T) {
	s := dedup.NewMemory(10 * time.Millisecond)
	ctx := context.Background()

	if first, _ := s.MarkSeen(ctx, "ref-1"); !first {
		t.Fatal("first appearance should report true")
	}

	time.Sleep(25 * time.Millisecond)

	// outside the retention window the reference counts as new again
	if first, _ := s.MarkSeen(ctx, "ref-1"); !first {
		t.Fatal("expired reference should report true again")
	}
}
