package ncbi

// minimal GenBank flat-file parsing; only the annotation fields the
// report needs (accession, organism, source, taxonomy)

import (
	"bufio"
	"io"
	"strings"

	"fastqblast/fetch"
)

// ParseGenBank scans a GenBank flat-file stream and extracts one
// metadata record per entry. The accession comes from the VERSION
// line (accession.version, matching what the search results carry),
// falling back to the ACCESSION line when VERSION is absent.
func ParseGenBank(r io.Reader) ([]fetch.MetadataRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1048576), 1048576)

	var records []fetch.MetadataRecord
	var cur *fetch.MetadataRecord
	var lineage strings.Builder
	inLineage := false

	flush := func() {
		if cur == nil {
			return
		}
		cur.Taxonomy = splitLineage(lineage.String())
		if len(cur.Taxonomy) > 0 {
			cur.Domain = cur.Taxonomy[0]
		}
		if cur.Accession != "" {
			records = append(records, *cur)
		}
		cur = nil
		lineage.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "LOCUS"):
			flush()
			cur = &fetch.MetadataRecord{}
			inLineage = false
		case cur == nil:
			// junk between records
		case line == "//":
			flush()
		case strings.HasPrefix(line, "ACCESSION"):
			if cur.Accession == "" {
				cur.Accession = firstField(line[len("ACCESSION"):])
			}
			inLineage = false
		case strings.HasPrefix(line, "VERSION"):
			if v := firstField(line[len("VERSION"):]); v != "" {
				cur.Accession = v
			}
			inLineage = false
		case strings.HasPrefix(line, "  ORGANISM"):
			cur.Organism = strings.TrimSpace(line[len("  ORGANISM"):])
			inLineage = true
		case strings.HasPrefix(line, "SOURCE"):
			cur.Source = strings.TrimSpace(line[len("SOURCE"):])
			inLineage = false
		case inLineage && strings.HasPrefix(line, "    "):
			// lineage continuation lines under ORGANISM
			lineage.WriteString(" ")
			lineage.WriteString(strings.TrimSpace(line))
		default:
			inLineage = false
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return records, nil
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// "Eukaryota; Metazoa; ...; Homo." -> ordered rank slice
func splitLineage(s string) []string {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".")
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	ranks := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			ranks = append(ranks, p)
		}
	}
	return ranks
}
