package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/douglaslassance/gitalong/trackedcommit"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/go-retryablehttp"
)

// jsonStore is the hosted-JSON-document Store Backend variant: a single
// document, fetched and replaced whole over HTTP, with optimistic
// concurrency via an ETag-style revision header when the host provides one.
type jsonStore struct {
	url     string
	headers Headers
	retry   RetryPolicy
	client  *retryablehttp.Client

	mu       sync.Mutex
	revision string
}

// revisionHeader is the conventional header gitalong reads a document
// revision token from, when the host supplies one, to detect concurrent
// writers without a full diff.
const revisionHeader = "ETag"

func newJSONStore(url string, headers Headers, retry RetryPolicy) *jsonStore {
	rc := retryablehttp.NewClient()
	rc.RetryMax = retry.MaxAttempts
	rc.RetryWaitMin = retry.BaseDelay
	rc.RetryWaitMax = retry.MaxDelay
	rc.Logger = nil

	return &jsonStore{
		url:     url,
		headers: headers.Resolve(os.LookupEnv),
		retry:   retry,
		client:  rc,
	}
}

// Lock is a no-op for the JSON-document variant: concurrency is handled by
// the optimistic revision check in Commit, not by cross-process exclusion.
func (s *jsonStore) Lock() error { return nil }

// Unlock is a no-op for the JSON-document variant.
func (s *jsonStore) Unlock() error { return nil }

func (s *jsonStore) newRequest(ctx context.Context, method string, body []byte) (*retryablehttp.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, s.url, reader)
	if err != nil {
		return nil, err
	}
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Snapshot GETs the document and decodes it as a JSON array of records.
func (s *jsonStore) Snapshot(ctx context.Context) ([]trackedcommit.Record, error) {
	req, err := s.newRequest(ctx, http.MethodGet, nil)
	if err != nil {
		return nil, fmt.Errorf("building store request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching store document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("store returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading store document: %w", err)
	}

	s.mu.Lock()
	s.revision = resp.Header.Get(revisionHeader)
	s.mu.Unlock()

	if len(body) == 0 {
		return nil, nil
	}

	var records []trackedcommit.Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("parsing store document: %w", err)
	}
	return records, nil
}

// Commit re-fetches the document, merges mine into it per the §4.3 rule,
// and PUTs the result, retrying the whole read-merge-write cycle on a
// revision conflict per the configured RetryPolicy.
func (s *jsonStore) Commit(ctx context.Context, remote, host, author string, mine []trackedcommit.Record) error {
	var errs *multierror.Error
	for attempt := 0; attempt < s.retry.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.retry.Delay(attempt - 1)):
			}
		}

		current, err := s.Snapshot(ctx)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}

		merged := merge(current, host, author, remote, mine)
		body, err := json.Marshal(merged)
		if err != nil {
			return fmt.Errorf("encoding store document: %w", err)
		}

		req, err := s.newRequest(ctx, http.MethodPut, body)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}

		s.mu.Lock()
		if s.revision != "" {
			req.Header.Set("If-Match", s.revision)
		}
		s.mu.Unlock()

		resp, err := s.client.Do(req)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusPreconditionFailed || resp.StatusCode == http.StatusConflict {
			errs = multierror.Append(errs, fmt.Errorf("store document conflict (status %d)", resp.StatusCode))
			continue
		}
		if resp.StatusCode/100 != 2 {
			errs = multierror.Append(errs, fmt.Errorf("store rejected write with status %d", resp.StatusCode))
			continue
		}

		return nil
	}

	return fmt.Errorf("store commit failed after %d attempts: %w", s.retry.MaxAttempts, errs.ErrorOrNil())
}
