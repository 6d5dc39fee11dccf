package domain_test

import (
	"math"
	"testing"
	"time"

	"tempo/internal/modules/analytics/domain"
)

func record(start time.Time, minutes float64, tag string) domain.Record {
	return domain.Record{
		StartedAt: start,
		Duration:  time.Duration(minutes * float64(time.Minute)),
		Tag:       tag,
		Completed: true,
	}
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 0.05
}

func TestAggregateDayPeriod(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	today := func(hour int) time.Time {
		return time.Date(2026, 3, 1, hour, 15, 0, 0, time.UTC)
	}
	records := []domain.Record{
		record(today(9), 30, "Work"),
		record(today(9), 30, "Work"),
		record(today(14), 30, "Study"),
	}
	snap := domain.Aggregate(records, domain.PeriodDay, now)

	if snap.SessionCount != 3 {
		t.Fatalf("expected 3 sessions, got %d", snap.SessionCount)
	}
	if snap.Hours[9] != 60 || snap.Hours[14] != 30 {
		t.Fatalf("unexpected hour buckets: h9=%v h14=%v", snap.Hours[9], snap.Hours[14])
	}
	if snap.TotalTagged != 90 {
		t.Fatalf("expected 90 tagged minutes, got %v", snap.TotalTagged)
	}
	if len(snap.Tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(snap.Tags))
	}
	if snap.Tags[0].Tag != "Work" || snap.Tags[0].Minutes != 60 || !closeTo(snap.Tags[0].Percent, 66.7) {
		t.Fatalf("unexpected first tag share: %+v", snap.Tags[0])
	}
	if snap.Tags[1].Tag != "Study" || snap.Tags[1].Minutes != 30 || !closeTo(snap.Tags[1].Percent, 33.3) {
		t.Fatalf("unexpected second tag share: %+v", snap.Tags[1])
	}
}

func TestAggregateFiltersByPeriodWindow(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	records := []domain.Record{
		record(time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC), 10, ""),  // today
		record(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), 20, ""),   // this month
		record(time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC), 40, ""),  // this year
		record(time.Date(2025, 12, 31, 9, 0, 0, 0, time.UTC), 80, ""), // last year
	}
	cases := []struct {
		period domain.Period
		count  int
		total  float64
	}{
		{domain.PeriodDay, 1, 10},
		{domain.PeriodMonth, 2, 30},
		{domain.PeriodYear, 3, 70},
		{domain.PeriodAll, 4, 150},
	}
	for _, tc := range cases {
		snap := domain.Aggregate(records, tc.period, now)
		if snap.SessionCount != tc.count {
			t.Fatalf("%s: expected %d sessions, got %d", tc.period, tc.count, snap.SessionCount)
		}
		var sum float64
		for _, m := range snap.Hours {
			sum += m
		}
		if !closeTo(sum, tc.total) {
			t.Fatalf("%s: expected %v bucket minutes, got %v", tc.period, tc.total, sum)
		}
	}
}

func TestAggregateExcludesActiveAndFutureSessions(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	active := domain.Record{StartedAt: now.Add(-time.Hour), Duration: 0, Tag: "Work"}
	future := record(now.Add(time.Hour), 30, "Work")
	done := record(now.Add(-2*time.Hour), 30, "Work")

	snap := domain.Aggregate([]domain.Record{active, future, done}, domain.PeriodDay, now)
	if snap.SessionCount != 1 {
		t.Fatalf("only the completed past session counts, got %d", snap.SessionCount)
	}
	if snap.TotalTagged != 30 {
		t.Fatalf("expected 30 tagged minutes, got %v", snap.TotalTagged)
	}
}

func TestAggregateUntaggedSessionsStayOutOfTagShares(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	records := []domain.Record{
		record(now.Add(-3*time.Hour), 30, ""),
		record(now.Add(-2*time.Hour), 60, "Work"),
	}
	snap := domain.Aggregate(records, domain.PeriodDay, now)
	if snap.SessionCount != 2 {
		t.Fatalf("untagged sessions still count, got %d", snap.SessionCount)
	}
	if snap.TotalTagged != 60 {
		t.Fatalf("untagged minutes must not enter the denominator, got %v", snap.TotalTagged)
	}
	if len(snap.Tags) != 1 || !closeTo(snap.Tags[0].Percent, 100) {
		t.Fatalf("single tagged session must hold 100%%, got %+v", snap.Tags)
	}
	var bucketSum float64
	for _, m := range snap.Hours {
		bucketSum += m
	}
	if !closeTo(bucketSum, 90) {
		t.Fatalf("buckets include untagged time, expected 90, got %v", bucketSum)
	}
}

func TestAggregateEmptyInputYieldsZeroSnapshot(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	snap := domain.Aggregate(nil, domain.PeriodAll, now)
	if snap.SessionCount != 0 || snap.TotalTagged != 0 || len(snap.Tags) != 0 {
		t.Fatalf("empty input must give a zero snapshot: %+v", snap)
	}
	for h, m := range snap.Hours {
		if m != 0 {
			t.Fatalf("bucket %d must be zero, got %v", h, m)
		}
	}
}

func TestAggregatePercentagesSumToHundred(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC)
	records := []domain.Record{
		record(now.Add(-10*time.Hour), 17, "Work"),
		record(now.Add(-9*time.Hour), 23, "Study"),
		record(now.Add(-8*time.Hour), 41, "Review"),
		record(now.Add(-7*time.Hour), 5.5, "Work"),
	}
	snap := domain.Aggregate(records, domain.PeriodDay, now)
	var percent float64
	for _, share := range snap.Tags {
		percent += share.Percent
	}
	if !closeTo(percent, 100) {
		t.Fatalf("tag percentages must sum to 100, got %v", percent)
	}
	for i := 1; i < len(snap.Tags); i++ {
		if snap.Tags[i].Minutes > snap.Tags[i-1].Minutes {
			t.Fatalf("tag shares must be sorted descending by minutes: %+v", snap.Tags)
		}
	}
}

func TestAggregateBucketsByViewingTimezone(t *testing.T) {
	t.Parallel()
	east := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2026, 3, 15, 23, 0, 0, 0, east)
	// Started 09:00 UTC = 12:00 in the viewing zone.
	records := []domain.Record{record(time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC), 30, "")}
	snap := domain.Aggregate(records, domain.PeriodDay, now)
	if snap.Hours[12] != 30 {
		t.Fatalf("bucket must follow the viewing timezone, got %+v", snap.Hours)
	}
	if snap.Hours[9] != 0 {
		t.Fatalf("recording-zone bucket must stay empty")
	}
}

func TestPeriodValidate(t *testing.T) {
	t.Parallel()
	for _, p := range []domain.Period{domain.PeriodDay, domain.PeriodMonth, domain.PeriodYear, domain.PeriodAll} {
		if err := p.Validate(); err != nil {
			t.Fatalf("%s must validate: %v", p, err)
		}
	}
	if err := domain.Period("week").Validate(); err == nil {
		t.Fatalf("unknown period must fail validation")
	}
}
