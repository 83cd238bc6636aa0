package pipeline

// put the run configuration in here

import (
	"math/rand"
	"time"

	"fastqblast/blast"
	"fastqblast/fastq"
	"fastqblast/fetch"
)

// default values; make sure these match the CLI help text!
const (
	DefaultAbsolute    = 100
	DefaultLeadingQ    = 20
	DefaultTrailingQ   = 20
	DefaultHitlistSize = 1

	DefaultQueriesFilepath   = "blast_queries.fasta"
	DefaultRawSearchFilepath = "blast_results.xml"
	DefaultRawFetchFilepath  = "fetch_results.txt"
	DefaultReportFilepath    = "blast_report.txt"
)

// Config holds all the parameters for one run, built once in main and
// handed to each stage; no stage reads anything ambient.
type Config struct {
	InputFilepath string
	Email         string

	Encoding       fastq.Encoding
	SamplePercent  float64 // takes precedence over SampleAbsolute when nonzero
	SampleAbsolute int
	LeadingQ       int
	TrailingQ      int
	HitlistSize    int

	// intermediate and final artifacts
	QueriesFilepath   string
	RawSearchFilepath string
	RawFetchFilepath  string
	ReportFilepath    string

	BatchSize int
	Retry     fetch.RetryPolicy

	// the two remote collaborators
	Searcher blast.Searcher
	Fetcher  fetch.Client

	// nil means a time-seeded source
	Rand *rand.Rand

	Progress  bool
	TimeStart time.Time
}

// NewConfig fills in the defaults the CLI help text promises.
func NewConfig(inputFilepath, email string) *Config {
	return &Config{
		InputFilepath:     inputFilepath,
		Email:             email,
		Encoding:          fastq.Phred33,
		SampleAbsolute:    DefaultAbsolute,
		LeadingQ:          DefaultLeadingQ,
		TrailingQ:         DefaultTrailingQ,
		HitlistSize:       DefaultHitlistSize,
		QueriesFilepath:   DefaultQueriesFilepath,
		RawSearchFilepath: DefaultRawSearchFilepath,
		RawFetchFilepath:  DefaultRawFetchFilepath,
		ReportFilepath:    DefaultReportFilepath,
		BatchSize:         fetch.DefaultBatchSize,
		Retry:             fetch.DefaultPolicy(),
		TimeStart:         time.Now(),
	}
}
