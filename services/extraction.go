package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequiredPDFCount is how many quote PDFs the extraction workflow expects per
// submission: one per supplier being compared.
const RequiredPDFCount = 3

// ErrPDFCount is returned before any network call when the submission does
// not contain exactly RequiredPDFCount documents.
var ErrPDFCount = fmt.Errorf("exactly %d PDF quotes are required", RequiredPDFCount)

// PDFFile is one uploaded quote document.
type PDFFile struct {
	Name    string
	Content []byte
}

// ExtractionClient talks to the external workflow service that turns quote
// PDFs into a CSV dataset. The whole exchange is a single blocking request
// with a bounded timeout; there is no retry and no cancellation beyond the
// caller's context.
type ExtractionClient struct {
	URL        string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// NewExtractionClient builds a client with the given endpoint and timeout.
func NewExtractionClient(url string, timeout time.Duration) *ExtractionClient {
	return &ExtractionClient{
		URL:        url,
		Timeout:    timeout,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type extractionFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type extractionRequest struct {
	Files []extractionFile `json:"files"`
}

type extractionResponse struct {
	CSV string `json:"csv"`
}

// SubmitPDFs sends the quote documents to the extraction service and returns
// the decoded CSV bytes it produced.
func (c *ExtractionClient) SubmitPDFs(ctx context.Context, files []PDFFile) ([]byte, error) {
	if len(files) != RequiredPDFCount {
		return nil, ErrPDFCount
	}

	payload := extractionRequest{Files: make([]extractionFile, 0, len(files))}
	for _, f := range files {
		payload.Files = append(payload.Files, extractionFile{
			Name:    f.Name,
			Content: base64.StdEncoding.EncodeToString(f.Content),
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode extraction request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build extraction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("extraction service timed out after %s", c.Timeout)
		}
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("extraction service returned status %d", resp.StatusCode)
	}

	var decoded extractionResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 32<<20)).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode extraction response: %w", err)
	}
	if decoded.CSV == "" {
		return nil, fmt.Errorf("extraction response contained no CSV data")
	}

	csvBytes, err := base64.StdEncoding.DecodeString(decoded.CSV)
	if err != nil {
		return nil, fmt.Errorf("decode extraction CSV payload: %w", err)
	}
	return csvBytes, nil
}
