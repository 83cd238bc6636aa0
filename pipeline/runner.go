package pipeline

// wrapper methods that drive the staged run:
// sample -> load -> trim -> search -> correlate -> fetch -> merge -> report

import (
	"fmt"
	"io"
	"log"

	"fastqblast/blast"
	"fastqblast/fastq"
	"fastqblast/fetch"
	_io "fastqblast/io"
	"fastqblast/report"
	"fastqblast/sample"
	"fastqblast/trim"
)

// collaborators that can persist their raw response bytes implement
// this; the runner wires the artifact files in when they do
type rawRecorder interface {
	RecordRaw(w io.Writer)
}

// Run executes the whole pipeline for the config. Any terminal
// condition comes back as an error; nothing is swallowed.
func (c *Config) Run() error {
	total, err := c.countRecords()
	if err != nil {
		return err
	}
	log.Printf("You have %d sequences in your FASTQ file\n", total)

	selected, err := sample.Draw(total, c.SampleAbsolute, c.SamplePercent, c.Rand)
	if err != nil {
		return err
	}
	log.Printf("Sampling %d sequences from your file...\n", len(selected))

	records, order, err := c.loadSample(selected)
	if err != nil {
		return err
	}

	log.Printf("Trimming the low-quality ends...")
	for _, header := range order {
		trim.Ends(records[header], c.LeadingQ, c.TrailingQ)
	}

	queries := blast.Queries(records, order)
	if err := c.writeQueries(queries); err != nil {
		return err
	}

	log.Printf("Searching for BLAST hits...")
	alignments, err := c.search(queries)
	if err != nil {
		return err
	}

	log.Printf("Parsing the BLAST results...")
	res, err := blast.Correlate(alignments)
	if err != nil {
		return err
	}
	if res.Duplicates > 0 {
		log.Printf("WARNING: %d duplicate hit titles were overwritten\n", res.Duplicates)
	}

	log.Printf("Looking up additional information about the genes identified by BLAST...")
	metas, err := c.fetchMetadata(res.GeneIDs)
	if err != nil {
		return err
	}
	report.Merge(res, metas)

	log.Printf("Writing the report...")
	return c.writeReport(records, order, res)
}

func (c *Config) countRecords() (int, error) {
	reader, err := _io.GetReader(c.InputFilepath)
	if err != nil {
		return 0, err
	}
	defer reader.Close()
	total, err := fastq.CountRecords(reader.Reader)
	if err != nil {
		return 0, fmt.Errorf("counting records in %s: %w", c.InputFilepath, err)
	}
	return total, nil
}

func (c *Config) loadSample(selected map[int]bool) (map[string]*fastq.SampleRecord, []string, error) {
	reader, err := _io.GetReader(c.InputFilepath)
	if err != nil {
		return nil, nil, err
	}
	defer reader.Close()
	records, order, err := fastq.Load(reader.Reader, selected, c.Encoding)
	if err != nil {
		return nil, nil, fmt.Errorf("loading sample from %s: %w", c.InputFilepath, err)
	}
	return records, order, nil
}

func (c *Config) writeQueries(queries []blast.Query) error {
	writer, err := _io.GetWriter(c.QueriesFilepath)
	if err != nil {
		return err
	}
	if err := blast.WriteFasta(writer, queries); err != nil {
		writer.Close()
		return fmt.Errorf("writing %s: %w", c.QueriesFilepath, err)
	}
	return writer.Close()
}

func (c *Config) search(queries []blast.Query) ([]blast.Alignment, error) {
	if rec, ok := c.Searcher.(rawRecorder); ok && c.RawSearchFilepath != "" {
		writer, err := _io.GetWriter(c.RawSearchFilepath)
		if err != nil {
			return nil, err
		}
		defer writer.Close()
		rec.RecordRaw(writer)
	}
	return c.Searcher.Search(queries, c.HitlistSize)
}

func (c *Config) fetchMetadata(geneIDs []string) ([]fetch.MetadataRecord, error) {
	if rec, ok := c.Fetcher.(rawRecorder); ok && c.RawFetchFilepath != "" {
		writer, err := _io.GetWriter(c.RawFetchFilepath)
		if err != nil {
			return nil, err
		}
		defer writer.Close()
		rec.RecordRaw(writer)
	}
	return fetch.Run(c.Fetcher, geneIDs, c.BatchSize, c.Retry, c.Progress)
}

func (c *Config) writeReport(records map[string]*fastq.SampleRecord, order []string, res *blast.Result) error {
	writer, err := _io.GetWriter(c.ReportFilepath)
	if err != nil {
		return err
	}
	if err := report.Write(writer, records, order, res); err != nil {
		writer.Close()
		return fmt.Errorf("writing %s: %w", c.ReportFilepath, err)
	}
	return writer.Close()
}
