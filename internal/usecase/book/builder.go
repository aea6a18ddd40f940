// Package book reconstructs consolidated cross-venue book ladders from
// per-venue top-of-book states.
//
// Venues report asynchronously and at different rates, so the builder keeps
// every venue's last-known state and re-derives the consolidated view after
// every incoming record: any single venue's update can change which price is
// best overall.
package book

import (
	"sort"

	"github.com/google/btree"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
	snapshotv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/snapshot/v1"
)

// ladderEntry accumulates the venues quoting one price.
type ladderEntry struct {
	price  int64
	venues []snapshotv1.VenueQuantity
}

// Builder holds per-venue latest states and derives consolidated snapshots.
// The state map only grows within a run; venues are never removed.
type Builder struct {
	levels int
	latest map[uint64]recordv1.Tops
	last   snapshotv1.Snapshot
	primed bool
}

// NewBuilder creates a Builder emitting ladders of up to levels price
// levels per side.
func NewBuilder(levels int) *Builder {
	return &Builder{
		levels: levels,
		latest: make(map[uint64]recordv1.Tops),
	}
}

// Apply overwrites the originating venue's latest state with the incoming
// record, rebuilds the consolidated snapshot and reports whether it differs
// structurally from the previously emitted one. The first non-empty snapshot
// always reports changed.
func (b *Builder) Apply(entry recordv1.TaggedTops) (snapshotv1.Snapshot, bool) {
	b.latest[entry.FeedID] = entry.Tops

	snap := b.build(entry.Tops.Ts)
	if snap.Empty() {
		return snap, false
	}
	if b.primed && snap.EqualLevels(b.last) {
		return snap, false
	}
	b.last = snap
	b.primed = true
	return snap, true
}

// build accumulates every venue's non-empty levels into per-side price
// ladders and takes the best b.levels prices of each side.
func (b *Builder) build(ts uint64) snapshotv1.Snapshot {
	// Bid traversal wants highest price first; invert the comparator so
	// Ascend yields descending prices.
	bids := btree.NewG[*ladderEntry](2, func(a, c *ladderEntry) bool { return a.price > c.price })
	asks := btree.NewG[*ladderEntry](2, func(a, c *ladderEntry) bool { return a.price < c.price })

	for feedID, tops := range b.latest {
		for i := 0; i < recordv1.BookLevels; i++ {
			accumulate(bids, tops.Bids[i], feedID)
			accumulate(asks, tops.Asks[i], feedID)
		}
	}

	return snapshotv1.Snapshot{
		Ts:   ts,
		Bids: takeLevels(bids, b.levels),
		Asks: takeLevels(asks, b.levels),
	}
}

func accumulate(ladder *btree.BTreeG[*ladderEntry], level recordv1.Level, feedID uint64) {
	if level.Empty() {
		return
	}
	contribution := snapshotv1.VenueQuantity{Qty: level.Qty, FeedID: feedID}
	if existing, ok := ladder.Get(&ladderEntry{price: level.Price}); ok {
		existing.venues = append(existing.venues, contribution)
		return
	}
	ladder.ReplaceOrInsert(&ladderEntry{
		price:  level.Price,
		venues: []snapshotv1.VenueQuantity{contribution},
	})
}

func takeLevels(ladder *btree.BTreeG[*ladderEntry], max int) []snapshotv1.Level {
	var levels []snapshotv1.Level
	ladder.Ascend(func(entry *ladderEntry) bool {
		venues := append([]snapshotv1.VenueQuantity(nil), entry.venues...)
		sort.Slice(venues, func(i, j int) bool {
			return venues[i].Less(venues[j])
		})
		levels = append(levels, snapshotv1.Level{
			Price:  entry.price,
			Venues: venues,
		})
		return len(levels) < max
	})
	return levels
}
