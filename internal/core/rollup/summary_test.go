package rollup

import (
	"testing"

	"github.com/google/uuid"

	"headcount/internal/core/classify"
)

func TestSummarize(t *testing.T) {
	points := []classify.Datapoint{
		dp(spaceA, "2019-09-20", "09:00", classify.Metrics{Max: 10, Entrances: 4, Exits: 3}),
		dp(spaceA, "2019-09-20", "10:00", classify.Metrics{Max: 20, Entrances: 6, Exits: 5}),
		dp(spaceB, "2019-09-20", "09:00", classify.Metrics{Max: 7, Entrances: 1, Exits: 2}),
	}
	capacities := map[uuid.UUID]*int{spaceA: iptr(50)}

	rows := Summarize(points, nil, capacities)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	a := rows[0]
	if a.SpaceID != spaceA {
		t.Fatalf("rows not sorted by space id: %+v", rows)
	}
	if a.Peak != 20 || a.Average != 15 || a.TotalEntrances != 10 || a.TotalExits != 8 {
		t.Fatalf("space A row = %+v", a)
	}
	if a.PeakOpportunity == nil || *a.PeakOpportunity != 30 {
		t.Fatalf("peak opportunity = %v, want 30", a.PeakOpportunity)
	}
	if a.AverageOpportunity == nil || *a.AverageOpportunity != 35 {
		t.Fatalf("average opportunity = %v, want 35", a.AverageOpportunity)
	}

	// no capacity configured: opportunity stays nil, never zero
	b := rows[1]
	if b.PeakOpportunity != nil || b.AverageOpportunity != nil {
		t.Fatalf("space B opportunity = %v/%v, want nil", b.PeakOpportunity, b.AverageOpportunity)
	}
}

func TestSummarizeHidden(t *testing.T) {
	points := []classify.Datapoint{
		dp(spaceA, "2019-09-20", "09:00", classify.Metrics{Max: 10}),
		dp(spaceB, "2019-09-20", "09:00", classify.Metrics{Max: 7}),
	}
	rows := Summarize(points, map[uuid.UUID]bool{spaceA: true}, nil)
	if len(rows) != 1 || rows[0].SpaceID != spaceB {
		t.Fatalf("hidden space leaked: %+v", rows)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if rows := Summarize(nil, nil, nil); len(rows) != 0 {
		t.Fatalf("empty summary = %+v", rows)
	}
}
