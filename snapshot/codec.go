package snapshot

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/DataDog/zstd"
	"github.com/segmentio/encoding/json"
)

// DefaultLevel is the zstd level used by Recorder unless overridden.
const DefaultLevel = zstd.DefaultCompression

// maxHeader bounds the JSON header and maxNodes the grid a header may
// declare. Image blocks are bounded by the zstd worst case for the image
// the header declares, so a corrupt length prefix cannot force a large
// allocation.
const (
	maxHeader = 1 << 20
	maxNodes  = 1 << 28
)

// Encode writes f to w, compressing the images with the given zstd level.
func Encode(w io.Writer, f *Frame, level int) error {
	if level < 1 || level > 22 {
		return fmt.Errorf("Encode(level=%d): %w", level, ErrBadLevel)
	}
	header, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("Encode(iteration=%d): %w", f.Iteration, err)
	}
	if err := writeBlock(w, header); err != nil {
		return err
	}

	var raw, buf []byte
	for _, ls := range f.LevelSets {
		raw = raw[:0]
		for _, s := range ls.Statuses {
			raw = append(raw, byte(s))
		}
		if buf, err = zstd.CompressLevel(buf, raw, level); err != nil {
			return fmt.Errorf("Encode(level_set=%d): %w", ls.ID, err)
		}
		if err := writeBlock(w, buf); err != nil {
			return err
		}

		raw = raw[:0]
		for _, v := range ls.Values {
			raw = binary.LittleEndian.AppendUint64(raw, math.Float64bits(v))
		}
		if buf, err = zstd.CompressLevel(buf, raw, level); err != nil {
			return fmt.Errorf("Encode(level_set=%d): %w", ls.ID, err)
		}
		if err := writeBlock(w, buf); err != nil {
			return err
		}
	}

	return nil
}

// Decode reads one frame from r. It returns io.EOF when r is exhausted
// before the first byte of a frame and ErrCorrupt for any other short or
// inconsistent read.
func Decode(r io.Reader) (*Frame, error) {
	header, err := readBlock(r, nil, maxHeader)
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}
	f := &Frame{}
	if err := json.Unmarshal(header, f); err != nil {
		return nil, fmt.Errorf("Decode: %v: %w", err, ErrCorrupt)
	}
	n := f.nodes()
	if n <= 0 {
		return nil, fmt.Errorf("Decode(size=%v): %w", f.Size, ErrCorrupt)
	}
	limit := int64(zstd.CompressBound(8 * n))

	var buf, raw []byte
	for k := range f.LevelSets {
		ls := &f.LevelSets[k]

		if buf, raw, err = readCompressed(r, buf, raw, limit); err != nil {
			return nil, err
		}
		if len(raw) != n {
			return nil, fmt.Errorf("Decode(level_set=%d): %d statuses for %d nodes: %w", ls.ID, len(raw), n, ErrCorrupt)
		}
		ls.Statuses = make([]int8, n)
		for i, b := range raw {
			ls.Statuses[i] = int8(b)
		}

		if buf, raw, err = readCompressed(r, buf, raw, limit); err != nil {
			return nil, err
		}
		if len(raw) != 8*n {
			return nil, fmt.Errorf("Decode(level_set=%d): %d value bytes for %d nodes: %w", ls.ID, len(raw), n, ErrCorrupt)
		}
		ls.Values = make([]float64, n)
		for i := range ls.Values {
			ls.Values[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[8*i:]))
		}
	}

	return f, nil
}

// ReadAll decodes frames until r is exhausted.
func ReadAll(r io.Reader) ([]*Frame, error) {
	var out []*Frame
	for {
		f, err := Decode(r)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, f)
	}
}

func writeBlock(w io.Writer, b []byte) error {
	if err := binary.Write(w, binary.LittleEndian, int64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)

	return err
}

// readBlock reads one length-prefixed block of at most limit bytes into
// buf (resized as needed).
func readBlock(r io.Reader, buf []byte, limit int64) ([]byte, error) {
	var n int64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("readBlock: %v: %w", err, ErrCorrupt)
	}
	if n < 0 || n > limit {
		return nil, fmt.Errorf("readBlock(len=%d): %w", n, ErrCorrupt)
	}
	if int64(cap(buf)) < n {
		buf = make([]byte, n)
	}
	buf = buf[:n]
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("readBlock(len=%d): %v: %w", n, err, ErrCorrupt)
	}

	return buf, nil
}

func readCompressed(r io.Reader, buf, raw []byte, limit int64) (bufOut, rawOut []byte, err error) {
	buf, err = readBlock(r, buf, limit)
	if err == io.EOF {
		err = fmt.Errorf("readCompressed: %v: %w", io.ErrUnexpectedEOF, ErrCorrupt)
	}
	if err != nil {
		return nil, nil, err
	}
	raw, err = zstd.Decompress(raw[:0], buf)
	if err != nil {
		return nil, nil, fmt.Errorf("readCompressed: %v: %w", err, ErrCorrupt)
	}

	return buf, raw, nil
}
