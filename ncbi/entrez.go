package ncbi

// Entrez E-utilities client for metadata lookup. Each batch is posted
// with epost first, then pulled with efetch, which is the recommended
// pattern for large id lists.

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fastqblast/fetch"
)

const DefaultEntrezURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// EntrezClient fetches GenBank records for cross-reference
// identifiers. It implements fetch.Client; failures are classified so
// the retry policy can tell transient server errors from the rest.
type EntrezClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Email      string
	Tool       string
	Db         string // e.g. nucleotide

	// raw GenBank text is copied here before parsing when non-nil
	RawOut io.Writer
}

func NewEntrezClient(email string) *EntrezClient {
	return &EntrezClient{
		BaseURL:    DefaultEntrezURL,
		HTTPClient: &http.Client{Timeout: 2 * time.Minute},
		Email:      email,
		Tool:       "fastqblast",
		Db:         "nucleotide",
	}
}

// RecordRaw makes the client copy the raw GenBank text to w.
func (c *EntrezClient) RecordRaw(w io.Writer) { c.RawOut = w }

type epostResult struct {
	XMLName  xml.Name `xml:"ePostResult"`
	QueryKey string   `xml:"QueryKey"`
	WebEnv   string   `xml:"WebEnv"`
}

// FetchBatch posts the batch of ids, fetches the matching GenBank
// records in text form, and extracts the metadata fields.
func (c *EntrezClient) FetchBatch(ids []string) ([]fetch.MetadataRecord, error) {
	form := url.Values{
		"db":    {c.Db},
		"id":    {strings.Join(ids, ",")},
		"email": {c.Email},
		"tool":  {c.Tool},
	}
	body, err := c.post("/epost.fcgi", form)
	if err != nil {
		return nil, err
	}
	var posted epostResult
	if err := xml.Unmarshal(body, &posted); err != nil {
		return nil, &fetch.PermanentServiceError{Err: fmt.Errorf("decoding epost response: %w", err)}
	}

	form = url.Values{
		"db":        {c.Db},
		"rettype":   {"gb"},
		"retmode":   {"text"},
		"query_key": {posted.QueryKey},
		"WebEnv":    {posted.WebEnv},
		"retstart":  {"0"},
		"retmax":    {strconv.Itoa(len(ids))},
		"email":     {c.Email},
		"tool":      {c.Tool},
	}
	body, err = c.post("/efetch.fcgi", form)
	if err != nil {
		return nil, err
	}
	if c.RawOut != nil {
		if _, err := c.RawOut.Write(body); err != nil {
			return nil, err
		}
	}
	return ParseGenBank(bytes.NewReader(body))
}

func (c *EntrezClient) post(path string, form url.Values) ([]byte, error) {
	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.PostForm(c.BaseURL+path, form)
	if err != nil {
		return nil, &fetch.PermanentServiceError{Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &fetch.PermanentServiceError{Err: err}
	}
	if resp.StatusCode >= 500 {
		return nil, &fetch.TransientServiceError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s: %s", path, resp.Status),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &fetch.PermanentServiceError{
			Err: fmt.Errorf("%s: %s", path, resp.Status),
		}
	}
	return body, nil
}
