package ncbi

// client for the NCBI BLAST URL API
// https://blast.ncbi.nlm.nih.gov/Blast.cgi?CMD=Web&PAGE_TYPE=BlastDocs&DOC_TYPE=DeveloperInfo

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fastqblast/blast"
)

const DefaultBlastURL = "https://blast.ncbi.nlm.nih.gov/Blast.cgi"

// BlastClient submits query sequences to the BLAST URL API and polls
// until the search finishes. It implements blast.Searcher.
type BlastClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Email      string // NCBI requires a contact address with every request
	Tool       string
	Program    string // e.g. blastn
	Database   string // e.g. nt

	PollInterval time.Duration
	MaxPolls     int

	// raw XML response is copied here before parsing when non-nil
	RawOut io.Writer
}

func NewBlastClient(email string) *BlastClient {
	return &BlastClient{
		BaseURL:      DefaultBlastURL,
		HTTPClient:   &http.Client{Timeout: 5 * time.Minute},
		Email:        email,
		Tool:         "fastqblast",
		Program:      "blastn",
		Database:     "nt",
		PollInterval: 30 * time.Second,
		MaxPolls:     120,
	}
}

// RecordRaw makes the client copy the raw XML response to w.
func (c *BlastClient) RecordRaw(w io.Writer) { c.RawOut = w }

var ridPattern = regexp.MustCompile(`RID = (\S+)`)

// Search submits the queries as one FASTA document, waits for the
// search to complete, and returns the parsed alignments.
func (c *BlastClient) Search(queries []blast.Query, hitlistSize int) ([]blast.Alignment, error) {
	var fasta strings.Builder
	if err := blast.WriteFasta(&fasta, queries); err != nil {
		return nil, err
	}

	rid, err := c.submit(fasta.String(), hitlistSize)
	if err != nil {
		return nil, err
	}
	if err := c.wait(rid); err != nil {
		return nil, err
	}
	return c.results(rid)
}

func (c *BlastClient) submit(fasta string, hitlistSize int) (string, error) {
	form := url.Values{
		"CMD":          {"Put"},
		"PROGRAM":      {c.Program},
		"DATABASE":     {c.Database},
		"QUERY":        {fasta},
		"HITLIST_SIZE": {strconv.Itoa(hitlistSize)},
		"EMAIL":        {c.Email},
		"TOOL":         {c.Tool},
	}
	body, err := c.do(form)
	if err != nil {
		return "", fmt.Errorf("submitting search: %w", err)
	}
	m := ridPattern.FindSubmatch(body)
	if m == nil {
		return "", fmt.Errorf("submitting search: no request id in response")
	}
	return string(m[1]), nil
}

func (c *BlastClient) wait(rid string) error {
	form := url.Values{
		"CMD":           {"Get"},
		"FORMAT_OBJECT": {"SearchInfo"},
		"RID":           {rid},
	}
	for i := 0; i < c.MaxPolls; i++ {
		if i > 0 {
			time.Sleep(c.PollInterval)
		}
		body, err := c.do(form)
		if err != nil {
			return fmt.Errorf("polling search %s: %w", rid, err)
		}
		switch {
		case strings.Contains(string(body), "Status=READY"):
			return nil
		case strings.Contains(string(body), "Status=WAITING"):
			continue
		default:
			return fmt.Errorf("polling search %s: search failed or expired", rid)
		}
	}
	return fmt.Errorf("polling search %s: not ready after %d polls", rid, c.MaxPolls)
}

func (c *BlastClient) results(rid string) ([]blast.Alignment, error) {
	form := url.Values{
		"CMD":         {"Get"},
		"FORMAT_TYPE": {"XML"},
		"RID":         {rid},
	}
	body, err := c.do(form)
	if err != nil {
		return nil, fmt.Errorf("retrieving search %s: %w", rid, err)
	}
	if c.RawOut != nil {
		if _, err := c.RawOut.Write(body); err != nil {
			return nil, err
		}
	}
	return ParseBlastXML(body)
}

func (c *BlastClient) do(form url.Values) ([]byte, error) {
	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.PostForm(c.BaseURL, form)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}
	return body, nil
}

// wire structs for the NCBI BlastOutput DTD; only the fields the
// pipeline consumes
type blastOutput struct {
	XMLName    xml.Name         `xml:"BlastOutput"`
	Iterations []blastIteration `xml:"BlastOutput_iterations>Iteration"`
}

type blastIteration struct {
	QueryDef string     `xml:"Iteration_query-def"`
	Hits     []blastHit `xml:"Iteration_hits>Hit"`
}

type blastHit struct {
	ID   string     `xml:"Hit_id"`
	Def  string     `xml:"Hit_def"`
	Hsps []blastHsp `xml:"Hit_hsps>Hsp"`
}

type blastHsp struct {
	Score    float64 `xml:"Hsp_score"`
	EValue   float64 `xml:"Hsp_evalue"`
	Identity int     `xml:"Hsp_identity"`
	AlignLen int     `xml:"Hsp_align-len"`
	Qseq     string  `xml:"Hsp_qseq"`
}

// ParseBlastXML flattens a BLAST XML response into alignment records,
// one per (query, hit, hsp). The hit title is rebuilt as
// "Hit_id Hit_def" so the pipe-delimited identifier fields survive.
func ParseBlastXML(body []byte) ([]blast.Alignment, error) {
	var out blastOutput
	if err := xml.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	var alignments []blast.Alignment
	for _, it := range out.Iterations {
		for _, hit := range it.Hits {
			title := hit.ID + " " + hit.Def
			for _, hsp := range hit.Hsps {
				alignments = append(alignments, blast.Alignment{
					QueryID:    it.QueryDef,
					HitTitle:   title,
					Length:     hsp.AlignLen,
					Identities: hsp.Identity,
					Score:      hsp.Score,
					EValue:     hsp.EValue,
					QuerySeq:   hsp.Qseq,
				})
			}
		}
	}
	return alignments, nil
}
