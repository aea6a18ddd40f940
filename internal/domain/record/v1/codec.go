package record

import (
	"encoding/binary"
	"math"

	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/errors"
)

// Wire sizes in bytes. These are contractual: files produced by other tools
// in the chain carry exactly these layouts.
const (
	HeaderSize          = 24
	TopsSize            = 88
	FillsSize           = 90
	TaggedTopsSize      = 8 + TopsSize
	TaggedFillsSize     = 8 + FillsSize
	ExecutionResultSize = 40
	BarSize             = 40
	FillsBarSize        = 44
)

// DecodeHeader decodes a file header from the first HeaderSize bytes of buf.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, errors.ErrTruncatedInput
	}
	return Header{
		FeedID:    binary.LittleEndian.Uint64(buf[0:]),
		DateInt:   binary.LittleEndian.Uint32(buf[8:]),
		Count:     binary.LittleEndian.Uint32(buf[12:]),
		SymbolIdx: binary.LittleEndian.Uint64(buf[16:]),
	}, nil
}

// EncodeHeader encodes h into a fresh HeaderSize-byte slice.
func EncodeHeader(h Header) []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint64(buf[0:], h.FeedID)
	binary.LittleEndian.PutUint32(buf[8:], h.DateInt)
	binary.LittleEndian.PutUint32(buf[12:], h.Count)
	binary.LittleEndian.PutUint64(buf[16:], h.SymbolIdx)
	return buf
}

// DecodeTops decodes a top-of-book record from the first TopsSize bytes of
// buf. The wire layout interleaves the sides per level slot:
// (bid_price, ask_price, bid_qty, ask_qty) x 3.
func DecodeTops(buf []byte) (Tops, error) {
	if len(buf) < TopsSize {
		return Tops{}, errors.ErrTruncatedInput
	}
	t := Tops{
		Ts:    binary.LittleEndian.Uint64(buf[0:]),
		Seqno: binary.LittleEndian.Uint64(buf[8:]),
	}
	off := 16
	for i := 0; i < BookLevels; i++ {
		t.Bids[i].Price = int64(binary.LittleEndian.Uint64(buf[off:]))
		t.Asks[i].Price = int64(binary.LittleEndian.Uint64(buf[off+8:]))
		t.Bids[i].Qty = binary.LittleEndian.Uint32(buf[off+16:])
		t.Asks[i].Qty = binary.LittleEndian.Uint32(buf[off+20:])
		off += 24
	}
	return t, nil
}

// EncodeTops encodes t into a fresh TopsSize-byte slice.
func EncodeTops(t Tops) []byte {
	buf := make([]byte, TopsSize)
	binary.LittleEndian.PutUint64(buf[0:], t.Ts)
	binary.LittleEndian.PutUint64(buf[8:], t.Seqno)
	off := 16
	for i := 0; i < BookLevels; i++ {
		binary.LittleEndian.PutUint64(buf[off:], uint64(t.Bids[i].Price))
		binary.LittleEndian.PutUint64(buf[off+8:], uint64(t.Asks[i].Price))
		binary.LittleEndian.PutUint32(buf[off+16:], t.Bids[i].Qty)
		binary.LittleEndian.PutUint32(buf[off+20:], t.Asks[i].Qty)
		off += 24
	}
	return buf
}

// DecodeFills decodes a fill record from the first FillsSize bytes of buf.
func DecodeFills(buf []byte) (Fills, error) {
	if len(buf) < FillsSize {
		return Fills{}, errors.ErrTruncatedInput
	}
	return Fills{
		Ts:                        binary.LittleEndian.Uint64(buf[0:]),
		Seqno:                     binary.LittleEndian.Uint64(buf[8:]),
		RestingOrderID:            binary.LittleEndian.Uint64(buf[16:]),
		WasHidden:                 buf[24] != 0,
		TradePrice:                int64(binary.LittleEndian.Uint64(buf[25:])),
		TradeQty:                  binary.LittleEndian.Uint32(buf[33:]),
		ExecutionID:               binary.LittleEndian.Uint64(buf[37:]),
		RestingOriginalQty:        binary.LittleEndian.Uint32(buf[45:]),
		RestingRemainingQty:       binary.LittleEndian.Uint32(buf[49:]),
		RestingLastUpdateTs:       binary.LittleEndian.Uint64(buf[53:]),
		RestingSideIsBid:          buf[61] != 0,
		RestingSidePrice:          int64(binary.LittleEndian.Uint64(buf[62:])),
		RestingSideQty:            binary.LittleEndian.Uint32(buf[70:]),
		OpposingSidePrice:         int64(binary.LittleEndian.Uint64(buf[74:])),
		OpposingSideQty:           binary.LittleEndian.Uint32(buf[82:]),
		RestingSideNumberOfOrders: binary.LittleEndian.Uint32(buf[86:]),
	}, nil
}

// EncodeFills encodes f into a fresh FillsSize-byte slice.
func EncodeFills(f Fills) []byte {
	buf := make([]byte, FillsSize)
	binary.LittleEndian.PutUint64(buf[0:], f.Ts)
	binary.LittleEndian.PutUint64(buf[8:], f.Seqno)
	binary.LittleEndian.PutUint64(buf[16:], f.RestingOrderID)
	if f.WasHidden {
		buf[24] = 1
	}
	binary.LittleEndian.PutUint64(buf[25:], uint64(f.TradePrice))
	binary.LittleEndian.PutUint32(buf[33:], f.TradeQty)
	binary.LittleEndian.PutUint64(buf[37:], f.ExecutionID)
	binary.LittleEndian.PutUint32(buf[45:], f.RestingOriginalQty)
	binary.LittleEndian.PutUint32(buf[49:], f.RestingRemainingQty)
	binary.LittleEndian.PutUint64(buf[53:], f.RestingLastUpdateTs)
	if f.RestingSideIsBid {
		buf[61] = 1
	}
	binary.LittleEndian.PutUint64(buf[62:], uint64(f.RestingSidePrice))
	binary.LittleEndian.PutUint32(buf[70:], f.RestingSideQty)
	binary.LittleEndian.PutUint64(buf[74:], uint64(f.OpposingSidePrice))
	binary.LittleEndian.PutUint32(buf[82:], f.OpposingSideQty)
	binary.LittleEndian.PutUint32(buf[86:], f.RestingSideNumberOfOrders)
	return buf
}

// DecodeTaggedTops decodes a merged-stream tops entry: an origin feed id
// prefix followed by a tops record.
func DecodeTaggedTops(buf []byte) (TaggedTops, error) {
	if len(buf) < TaggedTopsSize {
		return TaggedTops{}, errors.ErrTruncatedInput
	}
	tops, err := DecodeTops(buf[8:])
	if err != nil {
		return TaggedTops{}, err
	}
	return TaggedTops{
		FeedID: binary.LittleEndian.Uint64(buf[0:]),
		Tops:   tops,
	}, nil
}

// EncodeTaggedTops encodes t into a fresh TaggedTopsSize-byte slice.
func EncodeTaggedTops(t TaggedTops) []byte {
	buf := make([]byte, 8, TaggedTopsSize)
	binary.LittleEndian.PutUint64(buf[0:], t.FeedID)
	return append(buf, EncodeTops(t.Tops)...)
}

// DecodeExecutionResult decodes an execution result from the first
// ExecutionResultSize bytes of buf.
func DecodeExecutionResult(buf []byte) (ExecutionResult, error) {
	if len(buf) < ExecutionResultSize {
		return ExecutionResult{}, errors.ErrTruncatedInput
	}
	return ExecutionResult{
		Ts:                binary.LittleEndian.Uint64(buf[0:]),
		Seqno:             binary.LittleEndian.Uint64(buf[8:]),
		BidExecPrice:      math.Float64frombits(binary.LittleEndian.Uint64(buf[16:])),
		BidLevelsConsumed: binary.LittleEndian.Uint32(buf[24:]),
		AskExecPrice:      math.Float64frombits(binary.LittleEndian.Uint64(buf[28:])),
		AskLevelsConsumed: binary.LittleEndian.Uint32(buf[36:]),
	}, nil
}

// EncodeExecutionResult encodes r into a fresh ExecutionResultSize-byte
// slice.
func EncodeExecutionResult(r ExecutionResult) []byte {
	buf := make([]byte, ExecutionResultSize)
	binary.LittleEndian.PutUint64(buf[0:], r.Ts)
	binary.LittleEndian.PutUint64(buf[8:], r.Seqno)
	binary.LittleEndian.PutUint64(buf[16:], math.Float64bits(r.BidExecPrice))
	binary.LittleEndian.PutUint32(buf[24:], r.BidLevelsConsumed)
	binary.LittleEndian.PutUint64(buf[28:], math.Float64bits(r.AskExecPrice))
	binary.LittleEndian.PutUint32(buf[36:], r.AskLevelsConsumed)
	return buf
}

// DecodeBar decodes a tops bar from the first BarSize bytes of buf.
func DecodeBar(buf []byte) (Bar, error) {
	if len(buf) < BarSize {
		return Bar{}, errors.ErrTruncatedInput
	}
	return Bar{
		TsSec: binary.LittleEndian.Uint64(buf[0:]),
		Open:  math.Float64frombits(binary.LittleEndian.Uint64(buf[8:])),
		High:  math.Float64frombits(binary.LittleEndian.Uint64(buf[16:])),
		Low:   math.Float64frombits(binary.LittleEndian.Uint64(buf[24:])),
		Close: math.Float64frombits(binary.LittleEndian.Uint64(buf[32:])),
	}, nil
}

// EncodeBar encodes b into a fresh BarSize-byte slice.
func EncodeBar(b Bar) []byte {
	buf := make([]byte, BarSize)
	binary.LittleEndian.PutUint64(buf[0:], b.TsSec)
	binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(b.Open))
	binary.LittleEndian.PutUint64(buf[16:], math.Float64bits(b.High))
	binary.LittleEndian.PutUint64(buf[24:], math.Float64bits(b.Low))
	binary.LittleEndian.PutUint64(buf[32:], math.Float64bits(b.Close))
	return buf
}

// DecodeFillsBar decodes a fills bar from the first FillsBarSize bytes of
// buf.
func DecodeFillsBar(buf []byte) (FillsBar, error) {
	if len(buf) < FillsBarSize {
		return FillsBar{}, errors.ErrTruncatedInput
	}
	bar, err := DecodeBar(buf)
	if err != nil {
		return FillsBar{}, err
	}
	return FillsBar{
		Bar:    bar,
		Volume: int32(binary.LittleEndian.Uint32(buf[40:])),
	}, nil
}

// EncodeFillsBar encodes b into a fresh FillsBarSize-byte slice.
func EncodeFillsBar(b FillsBar) []byte {
	buf := EncodeBar(b.Bar)
	buf = append(buf, 0, 0, 0, 0)
	binary.LittleEndian.PutUint32(buf[40:], uint32(b.Volume))
	return buf
}
