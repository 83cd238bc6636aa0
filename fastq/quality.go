package fastq

// phred quality score encoding / decoding
// https://en.wikipedia.org/wiki/FASTQ_format#Quality

// Encoding is the ASCII offset used to encode per-base Phred quality
// scores. Nearly all current instruments emit Phred33; Phred64 covers
// the legacy Illumina 1.3-1.7 pipelines.
type Encoding int

const (
	Phred33 Encoding = 33
	Phred64 Encoding = 64
)

// Decode converts an ASCII quality string into numeric per-base
// confidence scores.
func (e Encoding) Decode(ascii string) []int {
	scores := make([]int, len(ascii))
	for i := 0; i < len(ascii); i++ {
		scores[i] = int(ascii[i]) - int(e)
	}
	return scores
}

// Encode is the inverse of Decode.
func (e Encoding) Encode(scores []int) string {
	ascii := make([]byte, len(scores))
	for i, q := range scores {
		ascii[i] = byte(q + int(e))
	}
	return string(ascii)
}
