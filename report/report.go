package report

// merging fetched metadata onto hits and writing the tabular report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fastqblast/blast"
	"fastqblast/fastq"
	"fastqblast/fetch"
)

// Columns is the fixed header row of the report.
var Columns = []string{
	"SeqID", "Sequence", "SeqLength", "Description", "Accession", "Db",
	"Score", "E_value", "Percent_Identity", "Organism", "Source", "Domain", "Taxonomy",
}

// NoHitMarker closes out every sampled read that yielded no usable hit.
const NoHitMarker = "NO HIT OR SEQUENCE QUALITY BELOW THRESHOLD"

// accessionMatches is the single place that decides whether a fetched
// metadata record belongs to a hit. Substring containment mirrors the
// historical matching rule; change it here if the policy is ever
// tightened to an exact match.
func accessionMatches(metaAccession, hitAccession string) bool {
	return strings.Contains(hitAccession, metaAccession)
}

// Merge copies organism, source, domain and taxonomy from each
// metadata record onto every hit whose accession matches it.
func Merge(res *blast.Result, metas []fetch.MetadataRecord) {
	for _, meta := range metas {
		for _, title := range res.Titles {
			hit := res.Hits[title]
			if !accessionMatches(meta.Accession, hit.Accession) {
				continue
			}
			hit.Organism = meta.Organism
			hit.Source = meta.Source
			hit.Domain = meta.Domain
			hit.Taxonomy = meta.Taxonomy
		}
	}
}

// Write emits the report: the header row, one row per hit in
// first-seen title order, then one fallback row per sampled read that
// never appeared as a hit's query, in file order. Every sampled read
// lands in exactly one of the two groups.
func Write(w io.Writer, samples map[string]*fastq.SampleRecord, order []string, res *blast.Result) error {
	if _, err := fmt.Fprintln(w, strings.Join(Columns, "\t")); err != nil {
		return err
	}

	queried := make(map[string]bool)
	for _, title := range res.Titles {
		hit := res.Hits[title]
		queried[hit.QueryID] = true
		if _, err := fmt.Fprintln(w, strings.Join(hitRow(hit), "\t")); err != nil {
			return err
		}
	}

	for _, header := range order {
		if queried[header] {
			continue
		}
		rec := samples[header]
		row := []string{rec.Header, rec.TrimmedSequence, strconv.Itoa(len(rec.TrimmedSequence)), NoHitMarker}
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}

func hitRow(hit *blast.HitRecord) []string {
	return []string{
		hit.QueryID,
		hit.Sequence,
		strconv.Itoa(hit.Length),
		hit.Description,
		hit.Accession,
		hit.Db,
		formatFloat(hit.Score),
		formatFloat(hit.EValue),
		formatFloat(hit.PercentIdentity),
		hit.Organism,
		hit.Source,
		hit.Domain,
		strings.Join(hit.Taxonomy, "; "),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
