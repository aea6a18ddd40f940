package record

import (
	"encoding/binary"
	"io"

	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/errors"
)

// Kind selects which record layout a stream carries. A file never mixes
// kinds.
type Kind int

// Stream kinds.
const (
	KindTops Kind = iota
	KindFills
)

// Size returns the wire size of one record of the kind.
func (k Kind) Size() int {
	if k == KindFills {
		return FillsSize
	}
	return TopsSize
}

// TaggedSize returns the wire size of one merged entry of the kind,
// including the origin feed id prefix.
func (k Kind) TaggedSize() int {
	return 8 + k.Size()
}

// Suffix returns the per-venue filename component for the kind.
func (k Kind) Suffix() string {
	if k == KindFills {
		return "book_fills"
	}
	return "book_tops"
}

// MergedName returns the merged-file filename component for the kind.
func (k Kind) MergedName() string {
	if k == KindFills {
		return "fills"
	}
	return "tops"
}

// ReadHeader reads and decodes one file header from r. A stream with fewer
// bytes than a full header is a truncated input.
func ReadHeader(r io.Reader) (Header, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Header{}, errors.NewTracer("read header").Wrap(errors.ErrTruncatedInput)
	}
	return DecodeHeader(buf)
}

// ReadRaw fills buf with the next len(buf) bytes of r. It returns io.EOF on
// a clean end of stream and ErrTruncatedInput when a partial record remains;
// the caller treats the partial tail as a recoverable end-of-stream.
func ReadRaw(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	switch err {
	case nil:
		return nil
	case io.EOF:
		return io.EOF
	case io.ErrUnexpectedEOF:
		return errors.ErrTruncatedInput
	default:
		return err
	}
}

// RawTimestamp extracts the leading nanosecond timestamp shared by every
// record layout.
func RawTimestamp(buf []byte) uint64 {
	return binary.LittleEndian.Uint64(buf)
}

// ReadTops reads and decodes the next top-of-book record from r.
func ReadTops(r io.Reader) (Tops, error) {
	buf := make([]byte, TopsSize)
	if err := ReadRaw(r, buf); err != nil {
		return Tops{}, err
	}
	return DecodeTops(buf)
}

// ReadTaggedTops reads and decodes the next merged-stream tops entry from r.
func ReadTaggedTops(r io.Reader) (TaggedTops, error) {
	buf := make([]byte, TaggedTopsSize)
	if err := ReadRaw(r, buf); err != nil {
		return TaggedTops{}, err
	}
	return DecodeTaggedTops(buf)
}

// ReadFills reads and decodes the next fill record from r.
func ReadFills(r io.Reader) (Fills, error) {
	buf := make([]byte, FillsSize)
	if err := ReadRaw(r, buf); err != nil {
		return Fills{}, err
	}
	return DecodeFills(buf)
}

// ReadBars reads tops bars from r until the stream ends, dropping a
// truncated tail.
func ReadBars(r io.Reader) ([]Bar, error) {
	var bars []Bar
	buf := make([]byte, BarSize)
	for {
		err := ReadRaw(r, buf)
		if err == io.EOF || errors.Is(err, errors.ErrTruncatedInput) {
			return bars, nil
		}
		if err != nil {
			return bars, err
		}
		bar, err := DecodeBar(buf)
		if err != nil {
			return bars, err
		}
		bars = append(bars, bar)
	}
}

// ReadFillsBars reads fills bars from r until the stream ends, dropping a
// truncated tail.
func ReadFillsBars(r io.Reader) ([]FillsBar, error) {
	var bars []FillsBar
	buf := make([]byte, FillsBarSize)
	for {
		err := ReadRaw(r, buf)
		if err == io.EOF || errors.Is(err, errors.ErrTruncatedInput) {
			return bars, nil
		}
		if err != nil {
			return bars, err
		}
		bar, err := DecodeFillsBar(buf)
		if err != nil {
			return bars, err
		}
		bars = append(bars, bar)
	}
}
