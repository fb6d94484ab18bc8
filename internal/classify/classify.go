// Package classify derives the live/upcoming/finished view from the raw
// record set. Classification is recomputed every cycle from the cache; it is
// never persisted.
package classify

import (
	"sort"
	"time"

	"zalgiris-matches-service/internal/domain"
)

// finishedWindow is how long after tip-off a scoreless match still counts as
// finished rather than silently vanishing from every bucket.
const finishedWindow = 6 * time.Hour

// Buckets is the classified view of the cached records.
type Buckets struct {
	Live                  *domain.MatchRecord
	Upcoming              []domain.MatchRecord
	Finished              []domain.MatchRecord
	LastFinishedWithScore *domain.MatchRecord
}

// Partition splits records into buckets relative to now. At most one record
// is reported live; when the page marks several, the earliest start wins so
// repeated cycles agree. Records without a parsed start cannot be classified
// and stay out of every bucket, live flag or not.
func Partition(records []domain.MatchRecord, now time.Time) Buckets {
	var (
		liveCandidates []domain.MatchRecord
		rest           []domain.MatchRecord
	)
	for _, rec := range records {
		if rec.IsLive && rec.Start != nil {
			liveCandidates = append(liveCandidates, rec)
			continue
		}
		rest = append(rest, rec)
	}

	var b Buckets
	if len(liveCandidates) > 0 {
		sortAscending(liveCandidates)
		live := liveCandidates[0]
		b.Live = &live
		// Extra live-marked records fall back to time classification so
		// they do not vanish from the snapshot entirely.
		rest = append(rest, liveCandidates[1:]...)
	}

	for _, rec := range rest {
		if rec.Start == nil {
			continue
		}
		if rec.Start.After(now) {
			b.Upcoming = append(b.Upcoming, rec)
			continue
		}
		if rec.HasScore() || now.Sub(*rec.Start) <= finishedWindow {
			b.Finished = append(b.Finished, rec)
		}
	}

	sortAscending(b.Upcoming)
	sortDescending(b.Finished)

	for i := range b.Finished {
		if b.Finished[i].HasScore() {
			b.LastFinishedWithScore = &b.Finished[i]
			break
		}
	}
	return b
}

func sortAscending(records []domain.MatchRecord) {
	sort.Slice(records, func(i, j int) bool {
		ki, kj := records[i].StartKey(), records[j].StartKey()
		if ki != kj {
			return ki < kj
		}
		return records[i].GameID < records[j].GameID
	})
}

func sortDescending(records []domain.MatchRecord) {
	sort.Slice(records, func(i, j int) bool {
		ki, kj := records[i].StartKey(), records[j].StartKey()
		if ki != kj {
			return ki > kj
		}
		return records[i].GameID < records[j].GameID
	})
}
