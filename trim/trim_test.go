package trim

import (
	"testing"

	"fastqblast/fastq"
)

func record(seq string, scores []int) *fastq.SampleRecord {
	return &fastq.SampleRecord{Header: "r", Sequence: seq, Scores: scores}
}

func TestEndsTrimsBothSides(t *testing.T) {
	rec := record("ACGTACGT", []int{5, 10, 30, 30, 30, 30, 10, 5})
	Ends(rec, 20, 20)
	if rec.TrimmedSequence != "GTAC" {
		t.Fatalf("trimmed sequence = %q, want GTAC", rec.TrimmedSequence)
	}
	if len(rec.TrimmedScores) != len(rec.TrimmedSequence) {
		t.Fatalf("trimmed scores length %d != sequence length %d",
			len(rec.TrimmedScores), len(rec.TrimmedSequence))
	}
}

func TestEndsAllPassing(t *testing.T) {
	rec := record("ACGT", []int{30, 30, 30, 30})
	Ends(rec, 20, 20)
	if rec.TrimmedSequence != "ACGT" {
		t.Fatalf("trimmed sequence = %q, want ACGT", rec.TrimmedSequence)
	}
}

func TestEndsAllBelowLeadingThreshold(t *testing.T) {
	rec := record("ACGT", []int{5, 5, 5, 5})
	Ends(rec, 20, 20)
	if rec.TrimmedSequence != "" || rec.TrimmedScores != nil {
		t.Fatalf("expected empty trimmed fields, got %q / %v",
			rec.TrimmedSequence, rec.TrimmedScores)
	}
}

func TestEndsIdempotent(t *testing.T) {
	rec := record("ACGTACGT", []int{5, 30, 30, 30, 30, 30, 30, 5})
	Ends(rec, 20, 20)
	first := rec.TrimmedSequence

	// retrim the already-trimmed result with the same thresholds
	again := record(rec.TrimmedSequence, rec.TrimmedScores)
	Ends(again, 20, 20)
	if again.TrimmedSequence != first {
		t.Fatalf("retrim changed result: %q -> %q", first, again.TrimmedSequence)
	}
}

func TestEndsIndependentThresholds(t *testing.T) {
	rec := record("ACGTAC", []int{15, 25, 25, 25, 15, 15})
	Ends(rec, 10, 20)
	// leading threshold 10 keeps everything from position 0; trailing
	// threshold 20 cuts after the last score >= 20
	if rec.TrimmedSequence != "ACGT" {
		t.Fatalf("trimmed sequence = %q, want ACGT", rec.TrimmedSequence)
	}
}

func TestEndsNoTrailingPass(t *testing.T) {
	rec := record("ACGT", []int{25, 25, 25, 25})
	Ends(rec, 20, 30)
	if rec.TrimmedSequence != "" {
		t.Fatalf("expected empty trimmed sequence, got %q", rec.TrimmedSequence)
	}
}
