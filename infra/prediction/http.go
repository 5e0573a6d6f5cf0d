// Package prediction provides an HTTP client for the external predictor
// service, implementing core/prediction.Engine.
package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/courtflow/courtflow/auth"
	"github.com/courtflow/courtflow/config"
	"github.com/courtflow/courtflow/core/prediction"
	"github.com/courtflow/courtflow/infra/logger"
)

// HTTPEngine calls the predictor service's scoring endpoints.
type HTTPEngine struct {
	client  *http.Client
	baseURL string
	cred    *auth.ClientCred
	log     logger.Logger
}

var _ prediction.Engine = (*HTTPEngine)(nil)

// NewHTTPEngine creates a prediction engine talking to cfg.BaseURL. When the
// config carries an auth URL, requests are authenticated with OAuth2 client
// credentials.
func NewHTTPEngine(cfg config.PredictionConfig) *HTTPEngine {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	e := &HTTPEngine{
		client:  &http.Client{Timeout: timeout},
		baseURL: cfg.BaseURL,
		log:     logger.New("prediction-client"),
	}
	if cfg.Auth.Enabled() {
		e.cred = auth.NewClientCred(cfg.Auth)
	}
	return e
}

type durationResponse struct {
	DurationHours float64 `json:"estimated_duration_hours"`
}

type settlementResponse struct {
	Probability float64 `json:"settlement_probability"`
}

// EstimateDuration returns the expected hearing duration in hours.
func (e *HTTPEngine) EstimateDuration(ctx context.Context, f prediction.CaseFeatures) (float64, error) {
	var out durationResponse
	if err := e.post(ctx, "/predict/hearing-duration", f, &out); err != nil {
		return 0, err
	}
	return out.DurationHours, nil
}

// EstimateOutcome returns outcome probabilities for the case.
func (e *HTTPEngine) EstimateOutcome(ctx context.Context, f prediction.CaseFeatures) (prediction.OutcomeEstimate, error) {
	var out prediction.OutcomeEstimate
	if err := e.post(ctx, "/predict/outcome", f, &out); err != nil {
		return prediction.OutcomeEstimate{}, err
	}
	return out, nil
}

// EstimateSettlement returns the probability that the case settles before
// judgment.
func (e *HTTPEngine) EstimateSettlement(ctx context.Context, f prediction.CaseFeatures) (float64, error) {
	var out settlementResponse
	if err := e.post(ctx, "/predict/settlement", f, &out); err != nil {
		return 0, err
	}
	return out.Probability, nil
}

func (e *HTTPEngine) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if e.cred != nil {
		if err := e.cred.SetAuthHeader(req); err != nil {
			return fmt.Errorf("predictor auth: %w", err)
		}
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("predictor %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		e.log.Warnf("predictor %s returned %d: %s", path, resp.StatusCode, snippet)
		return fmt.Errorf("predictor %s: unexpected status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
