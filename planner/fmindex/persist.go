package fmindex

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// ErrBadIndexFile is returned when a stream is not a readable index.
var ErrBadIndexFile = errors.New("not a valid index file")

var fileMagic = [4]byte{'G', 'P', 'F', 'M'}

const fileVersion uint32 = 1

// header precedes the BWT in a saved index. Occurrence checkpoints and the C
// table are rebuilt on load.
type header struct {
	Magic      [4]byte
	Version    uint32
	SampleRate uint32
	Length     uint64
}

// Save writes idx to w.
func (idx *Index) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	h := header{
		Magic:      fileMagic,
		Version:    fileVersion,
		SampleRate: uint32(idx.sampleRate),
		Length:     uint64(len(idx.bwt)),
	}
	if err := binary.Write(bw, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("writing index header: %w", err)
	}
	if _, err := bw.Write(idx.bwt); err != nil {
		return fmt.Errorf("writing index body: %w", err)
	}
	return bw.Flush()
}

// Load reads an index written by Save.
func Load(r io.Reader) (*Index, error) {
	br := bufio.NewReader(r)
	var h header
	if err := binary.Read(br, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrBadIndexFile, err)
	}
	if h.Magic != fileMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrBadIndexFile, h.Magic[:])
	}
	if h.Version != fileVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadIndexFile, h.Version)
	}
	if h.SampleRate == 0 || h.Length == 0 {
		return nil, fmt.Errorf("%w: sample rate %d, length %d", ErrBadIndexFile, h.SampleRate, h.Length)
	}
	if h.Length > math.MaxUint32 {
		return nil, fmt.Errorf("%w: length %d exceeds the index limit", ErrBadIndexFile, h.Length)
	}
	bwt, err := io.ReadAll(io.LimitReader(br, int64(h.Length)))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrBadIndexFile, err)
	}
	if uint64(len(bwt)) != h.Length {
		return nil, fmt.Errorf("%w: body has %d of %d symbols", ErrBadIndexFile, len(bwt), h.Length)
	}
	sentinels := 0
	for _, s := range bwt {
		if s >= sigma {
			return nil, fmt.Errorf("%w: symbol code %d out of range", ErrBadIndexFile, s)
		}
		if s == symSentinel {
			sentinels++
		}
	}
	if sentinels != 1 {
		return nil, fmt.Errorf("%w: %d sentinels", ErrBadIndexFile, sentinels)
	}
	return fromBWT(bwt, int(h.SampleRate)), nil
}

// SaveFile writes idx to path, replacing any existing file.
func (idx *Index) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating index file: %w", err)
	}
	if err := idx.Save(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing index file: %w", err)
	}
	logrus.Infof("wrote index %s (%s symbols)", path, humanize.Comma(int64(idx.Len())))
	return nil
}

// LoadFile reads an index from path.
func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening index file: %w", err)
	}
	defer func() { _ = f.Close() }()
	idx, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	logrus.Debugf("loaded index %s (%s symbols, sample rate %d)", path, humanize.Comma(int64(idx.Len())), idx.sampleRate)
	return idx, nil
}
