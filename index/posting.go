package index

import (
	"encoding/binary"
	"fmt"
)

// RecordSize is the fixed, constant size of one encoded Posting. Readers
// translate a byte offset into a record boundary by dividing by RecordSize.
const RecordSize = 12

// Posting is an immutable occurrence of a term in a document: the triple
// (term_id, doc_id, term_freq). Total order is (TermID, DocID) ascending;
// TermFreq is not part of the order or of equality.
type Posting struct {
	TermID   uint32
	DocID    uint32
	TermFreq uint32
}

// Less reports whether p sorts before other under the Posting total order:
// primary key TermID ascending, secondary key DocID ascending.
func (p Posting) Less(other Posting) bool {
	if p.TermID != other.TermID {
		return p.TermID < other.TermID
	}
	return p.DocID < other.DocID
}

// SameKey reports whether p and other share the (TermID, DocID) key,
// ignoring TermFreq. Two postings fed to the builder for the same
// (term, doc) pair collide on this key and must be fused by summing
// TermFreq rather than kept as separate records.
func (p Posting) SameKey(other Posting) bool {
	return p.TermID == other.TermID && p.DocID == other.DocID
}

// Encode writes the fixed 12-byte little-endian representation of p into
// buf, which must be at least RecordSize bytes long.
func Encode(p Posting, buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], p.TermID)
	binary.LittleEndian.PutUint32(buf[4:8], p.DocID)
	binary.LittleEndian.PutUint32(buf[8:12], p.TermFreq)
}

// Decode parses a RecordSize-byte buffer back into a Posting. It is the
// exact inverse of Encode: Decode(Encode(p)) == p for every Posting.
func Decode(buf []byte) (Posting, error) {
	if len(buf) != RecordSize {
		return Posting{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrDecodeError, RecordSize, len(buf))
	}
	return Posting{
		TermID:   binary.LittleEndian.Uint32(buf[0:4]),
		DocID:    binary.LittleEndian.Uint32(buf[4:8]),
		TermFreq: binary.LittleEndian.Uint32(buf[8:12]),
	}, nil
}
