package index

import (
	"fmt"
	"io"
)

// readFull reads exactly len(buf) bytes, or fewer at clean EOF (returning
// the short count and no error only when zero bytes were read). It exists
// because io.ReadFull's partial-read semantics are easy to get wrong when
// threading EOF through a record-at-a-time merge loop.
func readFull(r io.Reader, buf []byte) (int, error) {
	n, err := io.ReadFull(r, buf)
	if err == io.EOF {
		return 0, nil
	}
	if err == io.ErrUnexpectedEOF {
		return n, fmt.Errorf("%w: truncated record", ErrDecodeError)
	}
	return n, err
}

// postingStream reads Postings one at a time from a FileSystem path.
type postingStream struct {
	r   io.ReadSeekCloser
	buf [RecordSize]byte
}

func openPostingStream(fs FileSystem, path string) (*postingStream, error) {
	r, err := fs.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return &postingStream{r: r}, nil
}

// next returns the next Posting and ok=true, or ok=false once the stream is
// exhausted. An exhausted stream is treated as +infinity by callers doing a
// merge: it never wins a Less comparison against a real posting, so the
// other stream drains first, exactly as a null sentinel would but without
// relying on nil/zero-value truthiness.
func (s *postingStream) next() (Posting, bool, error) {
	n, err := readFull(s.r, s.buf[:])
	if err != nil {
		return Posting{}, false, err
	}
	if n == 0 {
		return Posting{}, false, nil
	}
	p, err := Decode(s.buf[:])
	if err != nil {
		return Posting{}, false, err
	}
	return p, true, nil
}

func (s *postingStream) close() error {
	return s.r.Close()
}

// postingWriter writes Postings one at a time to a FileSystem path.
type postingWriter struct {
	w   io.WriteCloser
	buf [RecordSize]byte
}

func openPostingWriter(fs FileSystem, path string) (*postingWriter, error) {
	w, err := fs.OpenWriter(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return &postingWriter{w: w}, nil
}

func (w *postingWriter) write(p Posting) error {
	Encode(p, w.buf[:])
	if _, err := w.w.Write(w.buf[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

func (w *postingWriter) close() error {
	return w.w.Close()
}

// writePostings writes postings, which must already be sorted and fused,
// to path in order.
func writePostings(fs FileSystem, path string, postings []Posting) error {
	w, err := openPostingWriter(fs, path)
	if err != nil {
		return err
	}
	for _, p := range postings {
		if err := w.write(p); err != nil {
			w.close()
			return err
		}
	}
	return w.close()
}

// copyPostingsFile streams src to dst without holding more than one record
// in memory at a time.
func copyPostingsFile(fs FileSystem, src, dst string) error {
	r, err := openPostingStream(fs, src)
	if err != nil {
		return err
	}
	defer r.close()
	w, err := openPostingWriter(fs, dst)
	if err != nil {
		return err
	}
	for {
		p, ok, err := r.next()
		if err != nil {
			w.close()
			return err
		}
		if !ok {
			break
		}
		if err := w.write(p); err != nil {
			w.close()
			return err
		}
	}
	return w.close()
}

// mergePostingsFiles performs a two-way streaming merge of a and b (each
// already sorted under the Posting total order, each already internally
// fused) into dst, fusing across the two streams when a posting from a and
// a posting from b share the same (TermID, DocID) key.
func mergePostingsFiles(fs FileSystem, a, b, dst string) error {
	sa, err := openPostingStream(fs, a)
	if err != nil {
		return err
	}
	defer sa.close()
	sb, err := openPostingStream(fs, b)
	if err != nil {
		return err
	}
	defer sb.close()
	w, err := openPostingWriter(fs, dst)
	if err != nil {
		return err
	}

	pa, okA, err := sa.next()
	if err != nil {
		w.close()
		return err
	}
	pb, okB, err := sb.next()
	if err != nil {
		w.close()
		return err
	}

	for okA || okB {
		switch {
		case okA && okB && pa.SameKey(pb):
			fused := pa
			fused.TermFreq += pb.TermFreq
			if err := w.write(fused); err != nil {
				w.close()
				return err
			}
			pa, okA, err = sa.next()
			if err != nil {
				w.close()
				return err
			}
			pb, okB, err = sb.next()
			if err != nil {
				w.close()
				return err
			}
		case okB == false || (okA && pa.Less(pb)):
			if err := w.write(pa); err != nil {
				w.close()
				return err
			}
			pa, okA, err = sa.next()
			if err != nil {
				w.close()
				return err
			}
		default:
			if err := w.write(pb); err != nil {
				w.close()
				return err
			}
			pb, okB, err = sb.next()
			if err != nil {
				w.close()
				return err
			}
		}
	}
	return w.close()
}
