package trim

// two-sided quality trimming of sampled reads

import (
	"fastqblast/fastq"
)

// Ends trims low-confidence bases from the leading and trailing ends
// of a record, filling in its trimmed fields. The leading scan keeps
// everything from the first score >= leadingQ; the trailing scan then
// keeps everything up to the last remaining score >= trailingQ. When
// no base passes, the trimmed fields stay empty; such a record
// contributes no search query but still shows up in the report as a
// no-hit fallback row.
func Ends(rec *fastq.SampleRecord, leadingQ int, trailingQ int) {
	start := -1
	for i, q := range rec.Scores {
		if q >= leadingQ {
			start = i
			break
		}
	}
	if start < 0 {
		rec.TrimmedSequence = ""
		rec.TrimmedScores = nil
		return
	}

	seq := rec.Sequence[start:]
	scores := rec.Scores[start:]

	end := -1
	for i := len(scores) - 1; i >= 0; i-- {
		if scores[i] >= trailingQ {
			end = i
			break
		}
	}
	if end < 0 {
		rec.TrimmedSequence = ""
		rec.TrimmedScores = nil
		return
	}

	rec.TrimmedSequence = seq[:end+1]
	rec.TrimmedScores = scores[:end+1]
}
