package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"filloutproxy"
	"filloutproxy/internal/api/models"
	"filloutproxy/pkg"

	"github.com/rs/zerolog"
)

// SubmissionParams are the query parameters forwarded verbatim to the
// upstream submissions endpoint. Filters never leave this service.
type SubmissionParams struct {
	Limit           int
	Offset          int
	Status          string
	Sort            string
	AfterDate       string
	BeforeDate      string
	IncludeEditLink *bool
}

// FilloutClient calls the Fillout REST API
type FilloutClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewFilloutClient creates a client from the app config
func NewFilloutClient(config filloutproxy.AppConfig, logger zerolog.Logger) *FilloutClient {
	return &FilloutClient{
		baseURL: config.Fillout.BaseURL,
		apiKey:  config.Fillout.ApiKey,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Fillout.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}
}

// GetSubmissions fetches one page of submissions for a form. The call is made
// once per request, bounded by ctx and the client timeout; it is never retried.
func (slf *FilloutClient) GetSubmissions(ctx context.Context, formID string, params SubmissionParams) (*models.SubmissionList, error) {
	endpoint := fmt.Sprintf("%s/api/forms/%s/submissions", slf.baseURL, url.PathEscape(formID))

	query := url.Values{}
	query.Set("limit", strconv.Itoa(params.Limit))
	query.Set("offset", strconv.Itoa(params.Offset))
	query.Set("status", params.Status)
	query.Set("sort", params.Sort)
	if params.AfterDate != "" {
		query.Set("afterDate", params.AfterDate)
	}
	if params.BeforeDate != "" {
		query.Set("beforeDate", params.BeforeDate)
	}
	if params.IncludeEditLink != nil {
		query.Set("includeEditLink", strconv.FormatBool(*params.IncludeEditLink))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building submissions request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+slf.apiKey)

	resp, err := slf.httpClient.Do(req)
	if err != nil {
		pkg.UpstreamCallsFailed.WithLabelValues("transport").Inc()
		return nil, fmt.Errorf("calling submissions endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		pkg.UpstreamCallsFailed.WithLabelValues("status").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		slf.logger.Error().
			Int("status", resp.StatusCode).
			Str("formId", formID).
			Bytes("body", body).
			Msg("Fillout API returned an error status")
		return nil, fmt.Errorf("submissions endpoint returned status %d", resp.StatusCode)
	}

	var list models.SubmissionList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		pkg.UpstreamCallsFailed.WithLabelValues("decode").Inc()
		return nil, fmt.Errorf("decoding submissions response: %w", err)
	}

	return &list, nil
}
