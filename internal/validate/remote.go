package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/otelview-labs/otelview/internal/collector"
)

// RemoteValidator checks a configuration against rules not enforceable
// locally, for example distribution-specific component catalogs.
type RemoteValidator interface {
	Validate(ctx context.Context, text string) ([]collector.Issue, error)
}

// HTTPValidator posts the configuration to a validation endpoint and decodes
// the returned issue list. It carries no retry logic of its own.
type HTTPValidator struct {
	endpoint string
	client   *http.Client
}

// NewHTTPValidator creates a validator against the given endpoint.
func NewHTTPValidator(endpoint string) *HTTPValidator {
	return &HTTPValidator{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type remoteIssue struct {
	Path     string `json:"path"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

type remoteResponse struct {
	Issues []remoteIssue `json:"issues"`
}

// Validate implements RemoteValidator.
func (v *HTTPValidator) Validate(ctx context.Context, text string) ([]collector.Issue, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, bytes.NewReader([]byte(text)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/yaml")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("remote validation returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var decoded remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode remote validation response: %w", err)
	}

	issues := make([]collector.Issue, 0, len(decoded.Issues))
	for _, ri := range decoded.Issues {
		sev := collector.Severity(ri.Severity)
		if sev != collector.SeverityError && sev != collector.SeverityWarning {
			sev = collector.SeverityWarning
		}
		issues = append(issues, collector.Issue{
			Path:     ri.Path,
			Message:  ri.Message,
			Severity: sev,
			Line:     ri.Line,
			Column:   ri.Column,
		})
	}
	return issues, nil
}
