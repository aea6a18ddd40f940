// Package snapshot defines the consolidated cross-venue book snapshot and
// its binary stream layout.
package snapshot

// VenueQuantity is one venue's contribution to a consolidated price level.
type VenueQuantity struct {
	Qty    uint32
	FeedID uint64
}

// Less orders venue contributions within a level: by feed id, then quantity.
func (v VenueQuantity) Less(other VenueQuantity) bool {
	if v.FeedID != other.FeedID {
		return v.FeedID < other.FeedID
	}
	return v.Qty < other.Qty
}

// Level is one consolidated price level with the venues quoting it.
type Level struct {
	Price  int64
	Venues []VenueQuantity
}

// Equal reports structural equality of two levels.
func (l Level) Equal(other Level) bool {
	if l.Price != other.Price || len(l.Venues) != len(other.Venues) {
		return false
	}
	for i := range l.Venues {
		if l.Venues[i] != other.Venues[i] {
			return false
		}
	}
	return true
}

// Snapshot is a consolidated book view: bid levels in descending price
// order, ask levels ascending, recomputed after every merged record.
type Snapshot struct {
	Ts   uint64
	Bids []Level
	Asks []Level
}

// Empty reports whether the snapshot carries no levels on either side.
func (s Snapshot) Empty() bool {
	return len(s.Bids) == 0 && len(s.Asks) == 0
}

// EqualLevels reports whether two snapshots carry the same ladder,
// ignoring timestamps. Emission dedup compares ladders only: a tick that
// leaves the consolidated view unchanged is not re-emitted.
func (s Snapshot) EqualLevels(other Snapshot) bool {
	return levelsEqual(s.Bids, other.Bids) && levelsEqual(s.Asks, other.Asks)
}

func levelsEqual(a, b []Level) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
