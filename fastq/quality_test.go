package fastq

import "testing"

func TestDecodeKnownScores(t *testing.T) {
	scores := Phred33.Decode("!I5")
	want := []int{0, 40, 20}
	if len(scores) != len(want) {
		t.Fatalf("got %d scores, want %d", len(scores), len(want))
	}
	for i := range want {
		if scores[i] != want[i] {
			t.Fatalf("score[%d] = %d, want %d", i, scores[i], want[i])
		}
	}

	scores = Phred64.Decode("h@")
	if scores[0] != 40 || scores[1] != 0 {
		t.Fatalf("phred64 decode = %v, want [40 0]", scores)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, enc := range []Encoding{Phred33, Phred64} {
		in := "!\"#IJKabc~"
		if enc == Phred64 {
			in = "@ABhij~"
		}
		out := enc.Encode(enc.Decode(in))
		if out != in {
			t.Fatalf("encoding %d: round trip %q -> %q", enc, in, out)
		}
	}
}

func TestDecodeEmpty(t *testing.T) {
	if got := Phred33.Decode(""); len(got) != 0 {
		t.Fatalf("expected no scores for empty string, got %v", got)
	}
}
