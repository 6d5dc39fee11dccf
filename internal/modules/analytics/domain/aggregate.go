package domain

import (
	"sort"
	"time"
)

// Record is the aggregator's read-model of a session: just the fields the
// rollup needs, decoupled from the session module's entity.
type Record struct {
	StartedAt time.Time
	Duration  time.Duration
	Tag       string
	Completed bool
}

// TagShare is one row of the tag distribution.
type TagShare struct {
	Tag     string
	Minutes float64
	Percent float64
}

// Snapshot is the derived view: hour-of-day buckets of minutes, per-tag
// minutes with their share of tagged time, and the session count after the
// period filter. It is recomputed per request and never persisted.
type Snapshot struct {
	Period       Period
	Hours        [24]float64
	Tags         []TagShare
	TotalTagged  float64
	SessionCount int
}

// Aggregate rolls completed sessions inside the period window up into a
// Snapshot. A session's full duration lands in the bucket of its start
// hour, even when it crosses an hour boundary. Hour attribution uses now's
// location: viewing from a different timezone than the one a session was
// recorded in shifts its bucket.
func Aggregate(records []Record, period Period, now time.Time) Snapshot {
	snap := Snapshot{Period: period}
	from, bounded := period.Start(now)
	tagged := map[string]float64{}

	for _, r := range records {
		if !r.Completed {
			continue
		}
		if bounded && (r.StartedAt.Before(from) || r.StartedAt.After(now)) {
			continue
		}
		snap.SessionCount++
		minutes := r.Duration.Minutes()
		snap.Hours[r.StartedAt.In(now.Location()).Hour()] += minutes
		if r.Tag != "" {
			tagged[r.Tag] += minutes
			snap.TotalTagged += minutes
		}
	}

	snap.Tags = make([]TagShare, 0, len(tagged))
	for tag, minutes := range tagged {
		share := TagShare{Tag: tag, Minutes: minutes}
		if snap.TotalTagged > 0 {
			share.Percent = minutes / snap.TotalTagged * 100
		}
		snap.Tags = append(snap.Tags, share)
	}
	sort.Slice(snap.Tags, func(i, j int) bool {
		if snap.Tags[i].Minutes != snap.Tags[j].Minutes {
			return snap.Tags[i].Minutes > snap.Tags[j].Minutes
		}
		return snap.Tags[i].Tag < snap.Tags[j].Tag
	})
	return snap
}
