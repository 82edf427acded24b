// Package fasta loads target and source genomes from FASTA files.
package fasta

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Record is one labelled, cleaned sequence.
type Record struct {
	Label string
	Seq   []byte
}

// Load reads every record in path. Sequence lines are upper-cased and
// stripped of anything outside {A,C,G,T}; blank lines are skipped. Records
// with an empty header are dropped, and a repeated label replaces the earlier
// record. The result is sorted by label. Paths ending in ".gz" are
// decompressed, "-" reads stdin.
func Load(path string) ([]Record, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening fasta: %w", err)
	}
	defer func() { _ = rc.Close() }()
	recs, err := Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return recs, nil
}

// Parse reads FASTA records from r with the same rules as Load.
func Parse(r io.Reader) ([]Record, error) {
	byLabel := make(map[string][]byte)
	var (
		label   string
		seq     []byte
		started bool
	)
	flush := func() {
		if !started {
			return
		}
		if label == "" {
			logrus.Warnf("dropping record with empty header (%d bp)", len(seq))
			return
		}
		if _, dup := byLabel[label]; dup {
			logrus.Warnf("duplicate record %q; keeping the later one", label)
		}
		byLabel[label] = seq
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<30)
	for sc.Scan() {
		line := bytes.TrimRight(sc.Bytes(), "\r")
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			flush()
			label = string(line[1:])
			seq = nil
			started = true
			continue
		}
		seq = appendClean(seq, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()

	recs := make([]Record, 0, len(byLabel))
	for l, s := range byLabel {
		recs = append(recs, Record{Label: l, Seq: s})
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Label < recs[j].Label })
	return recs, nil
}

// Clean returns the upper-cased {A,C,G,T} bases of b.
func Clean(b []byte) []byte {
	return appendClean(make([]byte, 0, len(b)), b)
}

func appendClean(dst, line []byte) []byte {
	for _, ch := range line {
		switch ch {
		case 'A', 'C', 'G', 'T':
			dst = append(dst, ch)
		case 'a', 'c', 'g', 't':
			dst = append(dst, ch-'a'+'A')
		}
	}
	return dst
}

// SanitizeLabel makes a label safe for the CSV report by replacing spaces and
// commas with underscores.
func SanitizeLabel(label string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == ',' {
			return '_'
		}
		return r
	}, label)
}

// Sequences returns the bare sequences of recs, in order.
func Sequences(recs []Record) [][]byte {
	out := make([][]byte, len(recs))
	for i, r := range recs {
		out[i] = r.Seq
	}
	return out
}

func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return struct {
			io.Reader
			io.Closer
		}{Reader: gr, Closer: fh}, nil
	}
	return fh, nil
}
