package publishv1

import (
	"encoding/json"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
)

// PriceLevel is one non-empty book level in decimal terms.
type PriceLevel struct {
	Price float64 `json:"price"`
	Qty   uint32  `json:"qty"`
}

// TickEvent is the downstream-facing form of one merged top-of-book entry.
type TickEvent struct {
	FeedID uint64       `json:"feed_id"`
	Symbol string       `json:"symbol"`
	Ts     uint64       `json:"ts"`
	Seqno  uint64       `json:"seqno"`
	Bids   []PriceLevel `json:"bids"`
	Asks   []PriceLevel `json:"asks"`
}

// CreateFromTaggedTops builds a tick event from a merged entry, dropping
// empty sentinel levels.
func CreateFromTaggedTops(symbol string, entry recordv1.TaggedTops) *TickEvent {
	event := &TickEvent{
		FeedID: entry.FeedID,
		Symbol: symbol,
		Ts:     entry.Tops.Ts,
		Seqno:  entry.Tops.Seqno,
	}
	for i := 0; i < recordv1.BookLevels; i++ {
		if bid := entry.Tops.Bids[i]; !bid.Empty() {
			event.Bids = append(event.Bids, PriceLevel{Price: bid.PriceFloat(), Qty: bid.Qty})
		}
		if ask := entry.Tops.Asks[i]; !ask.Empty() {
			event.Asks = append(event.Asks, PriceLevel{Price: ask.PriceFloat(), Qty: ask.Qty})
		}
	}
	return event
}

// ToBytes converts the tick event to a byte array.
func ToBytes(event *TickEvent) []byte {
	data, err := json.Marshal(event)
	if err != nil {
		return nil
	}
	return data
}

// FromBytes converts a byte array to a tick event.
func FromBytes(data []byte) *TickEvent {
	var event TickEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil
	}
	return &event
}
