package telemetry

import (
	"fmt"
	"testing"
	"time"
)

func TestRecordAndSnapshot(t *testing.T) {
	svc := NewService(4, nil)
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	svc.nowFunc = func() time.Time { return now }

	svc.Record(Metric{Name: "LCP", Value: 1200, Page: "/en/blog"})
	svc.Record(Metric{Name: "CLS", Value: 0.02})

	got := svc.Snapshot()
	if len(got) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(got))
	}
	if got[0].Name != "LCP" || !got[0].ReceivedAt.Equal(now) {
		t.Fatalf("unexpected first sample %+v", got[0])
	}
}

func TestRecordDropsInvalidSamples(t *testing.T) {
	svc := NewService(4, nil)

	svc.Record(Metric{Name: "", Value: 1})
	svc.Record(Metric{Name: "TTFB", Value: -5})

	if got := svc.Snapshot(); len(got) != 0 {
		t.Fatalf("invalid samples must be dropped, got %d", len(got))
	}
}

func TestRingOverwritesOldest(t *testing.T) {
	svc := NewService(3, nil)

	for i := 0; i < 5; i++ {
		svc.Record(Metric{Name: fmt.Sprintf("m%d", i), Value: float64(i)})
	}

	got := svc.Snapshot()
	if len(got) != 3 {
		t.Fatalf("expected bounded buffer of 3, got %d", len(got))
	}
	if got[0].Name != "m2" || got[2].Name != "m4" {
		t.Fatalf("expected oldest-first window m2..m4, got %v", got)
	}
}
