package ncbi

import (
	"strings"
	"testing"
)

const testGenBank = `LOCUS       JN900492                1200 bp    DNA     linear   PRI 01-JAN-2018
DEFINITION  Homo sapiens clone something.
ACCESSION   JN900492
VERSION     JN900492.1  GI:123456
SOURCE      Homo sapiens (human)
  ORGANISM  Homo sapiens
            Eukaryota; Metazoa; Chordata; Craniata; Vertebrata; Euteleostomi;
            Mammalia; Primates; Haplorrhini; Catarrhini; Hominidae; Homo.
FEATURES             Location/Qualifiers
     source          1..1200
ORIGIN
        1 acgtacgtac
//
LOCUS       AB000001                 500 bp    DNA     linear   BCT 01-JAN-2018
ACCESSION   AB000001
SOURCE      Escherichia coli
  ORGANISM  Escherichia coli
            Bacteria; Pseudomonadota; Gammaproteobacteria; Enterobacterales;
            Enterobacteriaceae; Escherichia.
//
`

func TestParseGenBank(t *testing.T) {
	records, err := ParseGenBank(strings.NewReader(testGenBank))
	if err != nil {
		t.Fatalf("ParseGenBank: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	first := records[0]
	if first.Accession != "JN900492.1" {
		t.Fatalf("accession = %q, want the VERSION value JN900492.1", first.Accession)
	}
	if first.Organism != "Homo sapiens" {
		t.Fatalf("organism = %q", first.Organism)
	}
	if first.Source != "Homo sapiens (human)" {
		t.Fatalf("source = %q", first.Source)
	}
	if first.Domain != "Eukaryota" {
		t.Fatalf("domain = %q", first.Domain)
	}
	if len(first.Taxonomy) != 12 || first.Taxonomy[11] != "Homo" {
		t.Fatalf("taxonomy = %v", first.Taxonomy)
	}

	second := records[1]
	// no VERSION line; the ACCESSION value stands in
	if second.Accession != "AB000001" {
		t.Fatalf("accession = %q, want AB000001", second.Accession)
	}
	if second.Domain != "Bacteria" {
		t.Fatalf("domain = %q", second.Domain)
	}
}

func TestParseGenBankEmpty(t *testing.T) {
	records, err := ParseGenBank(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseGenBank: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("got %d records from empty input", len(records))
	}
}
