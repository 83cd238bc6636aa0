package fetch

// batched metadata fetching with a bounded retry policy

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/cheggaaa/pb/v3"
)

// MetadataRecord is one record from the metadata-fetch collaborator.
type MetadataRecord struct {
	Accession string
	Organism  string
	Source    string
	Domain    string // first taxonomy rank
	Taxonomy  []string
}

// Client fetches metadata for one batch of cross-reference
// identifiers. Implementations classify their failures as
// TransientServiceError or PermanentServiceError.
type Client interface {
	FetchBatch(ids []string) ([]MetadataRecord, error)
}

// TransientServiceError is a server-side failure worth retrying
// (HTTP 5xx equivalent).
type TransientServiceError struct {
	StatusCode int
	Err        error
}

func (e *TransientServiceError) Error() string {
	return fmt.Sprintf("transient service error (status %d): %v", e.StatusCode, e.Err)
}

func (e *TransientServiceError) Unwrap() error { return e.Err }

// PermanentServiceError is any other remote failure; it propagates
// immediately with no retry.
type PermanentServiceError struct {
	Err error
}

func (e *PermanentServiceError) Error() string {
	return fmt.Sprintf("permanent service error: %v", e.Err)
}

func (e *PermanentServiceError) Unwrap() error { return e.Err }

// RetryPolicy bounds how an operation against a remote collaborator
// is retried: at most MaxAttempts tries with a fixed Delay between
// them, retrying only while Retryable says the failure qualifies.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	Retryable   func(error) bool
	// nil sleep means time.Sleep; tests swap it out
	Sleep func(time.Duration)
}

// DefaultPolicy matches the historical behavior: 3 attempts, 15s
// apart, retrying transient failures only.
func DefaultPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Delay:       15 * time.Second,
		Retryable:   IsTransient,
	}
}

// IsTransient reports whether err is a TransientServiceError.
func IsTransient(err error) bool {
	var te *TransientServiceError
	return errors.As(err, &te)
}

// Do runs op under the policy. The last failure is returned when the
// attempts are exhausted.
func (p RetryPolicy) Do(op func() error) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	var err error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if p.Retryable == nil || !p.Retryable(err) {
			return err
		}
		log.Printf("Received error from server: %v\n", err)
		log.Printf("Attempt %d of %d\n", attempt, p.MaxAttempts)
		if attempt < p.MaxAttempts {
			sleep(p.Delay)
		}
	}
	return err
}

// DefaultBatchSize keeps individual requests small enough not to
// overload the collaborator.
const DefaultBatchSize = 100

// Run fetches metadata for ids in fixed-size sequential batches,
// retrying each batch under the policy. Output accumulates in order;
// a failed batch aborts the run. A progress bar is drawn when
// progress is true and there is more than one batch.
func Run(client Client, ids []string, batchSize int, policy RetryPolicy, progress bool) ([]MetadataRecord, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	count := len(ids)
	numBatches := (count + batchSize - 1) / batchSize
	var bar *pb.ProgressBar
	if progress && numBatches > 1 {
		bar = pb.Full.Start64(int64(numBatches))
	}

	var records []MetadataRecord
	for start := 0; start < count; start += batchSize {
		end := start + batchSize
		if end > count {
			end = count
		}
		log.Printf("Fetching records %d through %d\n", start+1, end)

		batch := ids[start:end]
		err := policy.Do(func() error {
			got, err := client.FetchBatch(batch)
			if err != nil {
				return err
			}
			records = append(records, got...)
			return nil
		})
		if err != nil {
			if bar != nil {
				bar.Finish()
			}
			return nil, fmt.Errorf("fetching records %d-%d: %w", start+1, end, err)
		}
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}
	return records, nil
}
