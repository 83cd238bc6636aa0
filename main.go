package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fastqblast/blast"
	"fastqblast/fastq"
	"fastqblast/ncbi"
	"fastqblast/pipeline"
)

// overwrite this at build time ;
// -ldflags="-X 'main.Version=someversion'"
var Version = "foo-version"

func GetFileSize(filepath string) (int64, error) {
	fi, err := os.Stat(filepath)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// print the file size to the console log
func LogFileSize(filepath string, filetype string) {
	size, err := GetFileSize(filepath)
	if err != nil {
		log.Printf("WARNING: could not get size for file %v\n", filepath)
		return
	}
	log.Printf("%v file %v of size %v Bytes\n", filetype, filepath, bytefmt.ByteSize(uint64(size)))
}

func main() {
	var (
		email       string
		ascii64     bool
		nPercent    float64
		nAbsolute   int
		leadingQ    int
		trailingQ   int
		hitlistSize int
		queriesOut  string
		searchOut   string
		fetchOut    string
		reportOut   string
		noProgress  bool
		showVersion bool
	)

	cmd := &cobra.Command{
		Use:   "fastqblast [flags] <reads.fastq>",
		Short: "Sample reads from a FASTQ file, trim low-quality ends, BLAST them, and report",
		Long: `fastqblast takes a sample of sequences from a FASTQ file, trims the
low-quality ends, BLASTs them against NCBI nt, looks up taxonomic
metadata for the hits, and produces a tab-separated report.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Println(Version)
				return nil
			}
			if len(args) != 1 {
				return fmt.Errorf("the FASTQ file path is required, or use -h for help")
			}
			if email == "" {
				return fmt.Errorf("a valid email address is required to use NCBI tools (--email)")
			}

			config := pipeline.NewConfig(args[0], email)
			if ascii64 {
				config.Encoding = fastq.Phred64
			}
			config.SamplePercent = nPercent
			config.SampleAbsolute = nAbsolute
			config.LeadingQ = leadingQ
			config.TrailingQ = trailingQ
			config.HitlistSize = hitlistSize
			config.QueriesFilepath = queriesOut
			config.RawSearchFilepath = searchOut
			config.RawFetchFilepath = fetchOut
			config.ReportFilepath = reportOut
			config.Progress = !noProgress
			config.Searcher = ncbi.NewBlastClient(email)
			config.Fetcher = ncbi.NewEntrezClient(email)

			LogFileSize(config.InputFilepath, "Input")

			if err := config.Run(); err != nil {
				if errors.Is(err, blast.ErrEmptySearchResult) {
					color.HiRed("Your BLAST query was rejected or returned nothing.")
					color.HiRed("Please enter a smaller sample size or try running at a better time;")
					color.HiRed("NCBI asks that bulk searches run on weekends or between 9pm and 5am Eastern.")
				}
				return err
			}

			LogFileSize(config.ReportFilepath, "Report")
			color.HiGreen("Done in %v\n", time.Since(config.TimeStart))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&email, "email", "e", "", "A valid email address, required by NCBI and contacted if requests violate their policies")
	flags.BoolVarP(&ascii64, "ascii64", "a", false, "Set if Phred quality scores are encoded as ASCII 64 (most are ASCII 33)")
	flags.Float64VarP(&nPercent, "npercent", "p", 0, "Percent of sequences to sample (0-100); takes precedence over --nabsolute when nonzero")
	flags.IntVarP(&nAbsolute, "nabsolute", "n", pipeline.DefaultAbsolute, "Absolute number of sequences to sample")
	flags.IntVarP(&leadingQ, "leadingq", "l", pipeline.DefaultLeadingQ, "Minimum quality to keep a base at the leading end of a read")
	flags.IntVarP(&trailingQ, "trailingq", "t", pipeline.DefaultTrailingQ, "Minimum quality to keep a base at the trailing end of a read")
	flags.IntVarP(&hitlistSize, "hitlist-size", "s", pipeline.DefaultHitlistSize, "Number of BLAST hits to keep per query")
	flags.StringVar(&queriesOut, "queries-out", pipeline.DefaultQueriesFilepath, "Where to write the query FASTA file")
	flags.StringVar(&searchOut, "results-out", pipeline.DefaultRawSearchFilepath, "Where to write the raw BLAST XML response")
	flags.StringVar(&fetchOut, "fetch-out", pipeline.DefaultRawFetchFilepath, "Where to write the raw GenBank fetch results")
	flags.StringVar(&reportOut, "report-out", pipeline.DefaultReportFilepath, "Where to write the final report")
	flags.BoolVar(&noProgress, "no-progress", false, "Disable the metadata fetch progress bar")
	flags.BoolVarP(&showVersion, "version", "v", false, "print version information")

	if err := cmd.Execute(); err != nil {
		log.Fatalf("ERROR: %v\n", err)
	}
}
