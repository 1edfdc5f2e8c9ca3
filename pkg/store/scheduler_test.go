package store

import (
	"context"
	"testing"
)

func TestScheduleInvalidExpression(t *testing.T) {
	s := New(t.TempDir(), nil, testLogger(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Schedule(ctx, "not a cron expr"); err == nil {
		t.Error("Schedule() accepted an invalid expression")
	}
	if err := s.Schedule(ctx, "60 * * * *"); err == nil {
		t.Error("Schedule() accepted an out-of-range minute field")
	}
}

func TestScheduleEmptyExpressionIsNoop(t *testing.T) {
	s := New(t.TempDir(), nil, testLogger(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Schedule(ctx, ""); err != nil {
		t.Errorf("Schedule(\"\") error: %v", err)
	}
}

func TestScheduleValidExpression(t *testing.T) {
	s := New(t.TempDir(), nil, testLogger(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	if err := s.Schedule(ctx, "*/30 * * * *"); err != nil {
		t.Errorf("Schedule() error: %v", err)
	}
	cancel()
}
