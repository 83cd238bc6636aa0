package fastq

// package for handling fastq data

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// NOTE: fastq format https://en.wikipedia.org/wiki/FASTQ_format
// each record spans four consecutive lines;
// header / sequence / separator ('+') / quality string
const LinesPerRecord = 4

const headerChar = '@'

// ErrMalformedRecord means the input stream ended in the middle of a
// selected record's four-line group.
var ErrMalformedRecord = errors.New("malformed fastq record")

// SampleRecord is one sampled sequencing read. Trimmed fields stay
// empty when every base fails the leading quality threshold; that is
// a valid state, not an error.
type SampleRecord struct {
	Header          string // header line without the leading '@', first tab-delimited field
	Sequence        string
	Quality         string // raw ASCII quality string
	Scores          []int  // decoded per-base confidence scores
	TrimmedSequence string
	TrimmedScores   []int
}

// CountRecords streams the input once and reports how many four-line
// records it holds. Trailing partial groups are ignored here; they
// only matter if sampling happens to select them.
func CountRecords(r io.Reader) (int, error) {
	scanner := newScanner(r)
	lines := 0
	for scanner.Scan() {
		lines++
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return lines / LinesPerRecord, nil
}

// Load streams the input once and extracts the records whose
// zero-based positions appear in selected, decoding quality strings
// with the given encoding. Returns the records keyed by header plus
// the headers in file order. Only the line's offset from the record
// start decides what it is; the separator line is not inspected.
func Load(r io.Reader, selected map[int]bool, enc Encoding) (map[string]*SampleRecord, []string, error) {
	records := make(map[string]*SampleRecord, len(selected))
	order := make([]string, 0, len(selected))

	scanner := newScanner(r)
	var current *SampleRecord
	lineNum := 0
	for ; scanner.Scan(); lineNum++ {
		pos := lineNum / LinesPerRecord
		if !selected[pos] {
			current = nil
			continue
		}
		line := strings.TrimRight(scanner.Text(), "\r\n")
		switch lineNum % LinesPerRecord {
		case 0:
			header := strings.TrimPrefix(line, string(headerChar))
			// anything after a tab is instrument metadata, not identity
			header = strings.SplitN(header, "\t", 2)[0]
			current = &SampleRecord{Header: header}
			records[header] = current
			order = append(order, header)
		case 1:
			current.Sequence = line
		case 3:
			current.Quality = line
			current.Scores = enc.Decode(line)
			current = nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	if current != nil {
		return nil, nil, fmt.Errorf("%w: stream ended at line %d inside record %q",
			ErrMalformedRecord, lineNum, current.Header)
	}
	return records, order, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	// long-read instruments can blow past the default 64KB line limit
	scanner.Buffer(make([]byte, 0, 1048576), 1048576)
	return scanner
}
