package snapshot

import (
	"encoding/binary"
	"io"

	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/errors"
)

// Wire sizes in bytes.
const (
	SnapshotHeaderSize = 10
	LevelHeaderSize    = 9
	VenueEntrySize     = 12
)

// Write serializes one snapshot: snapshot header, bid levels block, ask
// levels block. Each level is a level header followed by its venue entries.
func Write(w io.Writer, s Snapshot) error {
	buf := make([]byte, 0, SnapshotHeaderSize+encodedLevelsSize(s.Bids)+encodedLevelsSize(s.Asks))

	var hdr [SnapshotHeaderSize]byte
	binary.LittleEndian.PutUint64(hdr[0:], s.Ts)
	hdr[8] = uint8(len(s.Bids))
	hdr[9] = uint8(len(s.Asks))
	buf = append(buf, hdr[:]...)

	buf = appendLevels(buf, s.Bids)
	buf = appendLevels(buf, s.Asks)

	_, err := w.Write(buf)
	return err
}

func encodedLevelsSize(levels []Level) int {
	n := 0
	for _, l := range levels {
		n += LevelHeaderSize + len(l.Venues)*VenueEntrySize
	}
	return n
}

func appendLevels(buf []byte, levels []Level) []byte {
	for _, l := range levels {
		var lh [LevelHeaderSize]byte
		binary.LittleEndian.PutUint64(lh[0:], uint64(l.Price))
		lh[8] = uint8(len(l.Venues))
		buf = append(buf, lh[:]...)
		for _, v := range l.Venues {
			var ve [VenueEntrySize]byte
			binary.LittleEndian.PutUint32(ve[0:], v.Qty)
			binary.LittleEndian.PutUint64(ve[4:], v.FeedID)
			buf = append(buf, ve[:]...)
		}
	}
	return buf
}

// Read deserializes one snapshot from r. A clean end of stream before the
// snapshot header returns io.EOF; a partial snapshot is a truncated input.
func Read(r io.Reader) (Snapshot, error) {
	var hdr [SnapshotHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if err == io.EOF {
			return Snapshot{}, io.EOF
		}
		return Snapshot{}, errors.ErrTruncatedInput
	}

	s := Snapshot{Ts: binary.LittleEndian.Uint64(hdr[0:])}
	numBids := int(hdr[8])
	numAsks := int(hdr[9])

	var err error
	if s.Bids, err = readLevels(r, numBids); err != nil {
		return Snapshot{}, err
	}
	if s.Asks, err = readLevels(r, numAsks); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

func readLevels(r io.Reader, n int) ([]Level, error) {
	levels := make([]Level, 0, n)
	for i := 0; i < n; i++ {
		var lh [LevelHeaderSize]byte
		if _, err := io.ReadFull(r, lh[:]); err != nil {
			return nil, errors.ErrTruncatedInput
		}
		level := Level{Price: int64(binary.LittleEndian.Uint64(lh[0:]))}
		numVenues := int(lh[8])
		for j := 0; j < numVenues; j++ {
			var ve [VenueEntrySize]byte
			if _, err := io.ReadFull(r, ve[:]); err != nil {
				return nil, errors.ErrTruncatedInput
			}
			level.Venues = append(level.Venues, VenueQuantity{
				Qty:    binary.LittleEndian.Uint32(ve[0:]),
				FeedID: binary.LittleEndian.Uint64(ve[4:]),
			})
		}
		levels = append(levels, level)
	}
	return levels, nil
}
