package blast

// hit record construction from alignment-search results

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"fastqblast/fastq"
)

// ErrEmptySearchResult means the search response held zero usable
// alignments across all queries. This is the signal that the remote
// search was rejected or returned nothing; the pipeline must halt
// before attempting any metadata fetch.
var ErrEmptySearchResult = errors.New("empty search result")

// Query is one (identifier, trimmed sequence) pair submitted to the
// search collaborator.
type Query struct {
	ID       string
	Sequence string
}

// Alignment is one alignment record from the search response, already
// lifted out of the wire format by the collaborator. HitTitle is the
// compound pipe-delimited key: source|numeric-id|database|accession|description.
type Alignment struct {
	QueryID    string
	HitTitle   string
	Length     int // alignment length
	Identities int
	Score      float64
	EValue     float64
	QuerySeq   string // aligned portion of the query
}

// Searcher is the remote alignment-search collaborator.
type Searcher interface {
	Search(queries []Query, hitlistSize int) ([]Alignment, error)
}

// HitRecord is one (query, database-hit) pair. The identifier fields
// are set once at parse time; the taxonomy fields are filled in later
// by the metadata merge.
type HitRecord struct {
	QueryID         string
	Sequence        string
	Length          int
	Description     string
	Accession       string
	Db              string
	Score           float64
	EValue          float64
	PercentIdentity float64

	Organism string
	Source   string
	Domain   string
	Taxonomy []string
}

// Result is the outcome of parsing a search response: the hits keyed
// by title, the titles in first-seen order, and the deduplicated
// cross-reference identifiers to feed the metadata fetch.
type Result struct {
	Hits    map[string]*HitRecord
	Titles  []string
	GeneIDs []string
	// duplicate titles overwrite their predecessor; the count is kept
	// so the run can report how many hits were lost that way
	Duplicates int
}

const titleFields = 5

// Correlate builds hit records from raw alignments and collects the
// deduplicated cross-reference identifier set. Returns
// ErrEmptySearchResult when that set comes out empty.
func Correlate(alignments []Alignment) (*Result, error) {
	res := &Result{Hits: make(map[string]*HitRecord)}
	seen := make(map[string]bool)

	for _, al := range alignments {
		parts := strings.SplitN(al.HitTitle, "|", titleFields)
		if len(parts) < titleFields {
			// not the compound form we key on; an external-service
			// inconsistency, skipped rather than fatal
			continue
		}
		geneID := parts[1]
		if !seen[geneID] {
			seen[geneID] = true
			res.GeneIDs = append(res.GeneIDs, geneID)
		}

		if _, ok := res.Hits[al.HitTitle]; ok {
			res.Duplicates++
		} else {
			res.Titles = append(res.Titles, al.HitTitle)
		}
		res.Hits[al.HitTitle] = &HitRecord{
			QueryID:         al.QueryID,
			Sequence:        al.QuerySeq,
			Length:          len(al.QuerySeq),
			Description:     strings.TrimSpace(parts[4]),
			Accession:       parts[3],
			Db:              parts[2],
			Score:           al.Score,
			EValue:          al.EValue,
			PercentIdentity: percentIdentity(al.Identities, al.Length),
		}
	}

	if len(res.GeneIDs) == 0 {
		return nil, fmt.Errorf("%w: no alignments parsed from the search response", ErrEmptySearchResult)
	}
	return res, nil
}

// percent identity = 100 * identities / alignment length, to 2 decimals
func percentIdentity(identities, length int) float64 {
	if length == 0 {
		return 0
	}
	return math.Round(100*float64(identities)/float64(length)*100) / 100
}

// Queries collects the (header, trimmed sequence) pairs to submit,
// skipping reads whose trimmed sequence came out empty.
func Queries(records map[string]*fastq.SampleRecord, order []string) []Query {
	var queries []Query
	for _, header := range order {
		rec := records[header]
		if rec.TrimmedSequence == "" {
			continue
		}
		queries = append(queries, Query{ID: rec.Header, Sequence: rec.TrimmedSequence})
	}
	return queries
}

// WriteFasta writes the queries in FASTA form, one record per query.
func WriteFasta(w io.Writer, queries []Query) error {
	for _, q := range queries {
		if _, err := fmt.Fprintf(w, ">%s\n%s\n", q.ID, q.Sequence); err != nil {
			return err
		}
	}
	return nil
}
