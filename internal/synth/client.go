package synth

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentwood/voice-engine/internal/audio"
	"github.com/agentwood/voice-engine/internal/observability"
	"github.com/agentwood/voice-engine/internal/resilience"
)

// ClientConfig describes one backend family: its servers in priority order
// (primary first) and its resilience parameters.
type ClientConfig struct {
	Family          string
	Servers         []string
	Timeout         time.Duration
	RetryAttempts   int
	RetryBackoff    time.Duration
	BreakerCooldown time.Duration
	ReferenceLoader *ReferenceLoader
}

// Client is the resilient synthesis client for one backend family. It is
// safe for concurrent use; all callers share the per-server breakers.
type Client struct {
	family   string
	servers  []string
	breakers []*resilience.Breaker
	policy   resilience.Policy
	timeout  time.Duration
	refs     *ReferenceLoader

	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient builds a client from config. Every configured server starts
// with a closed breaker.
func NewClient(cfg ClientConfig, log zerolog.Logger) (*Client, error) {
	if cfg.Family == "" {
		return nil, fmt.Errorf("backend family name is required")
	}
	if len(cfg.Servers) == 0 {
		return nil, fmt.Errorf("backend family %s has no servers", cfg.Family)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RetryAttempts < 1 {
		cfg.RetryAttempts = 1
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = time.Second
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = time.Minute
	}

	servers := make([]string, len(cfg.Servers))
	breakers := make([]*resilience.Breaker, len(cfg.Servers))
	for i, s := range cfg.Servers {
		servers[i] = strings.TrimRight(s, "/")
		breakers[i] = resilience.NewBreaker(servers[i], cfg.BreakerCooldown)
	}

	return &Client{
		family:   cfg.Family,
		servers:  servers,
		breakers: breakers,
		policy: resilience.Policy{
			MaxAttempts: cfg.RetryAttempts,
			Backoff:     resilience.LinearBackoff(cfg.RetryBackoff),
			Abort:       abortRetry,
		},
		timeout:    cfg.Timeout,
		refs:       cfg.ReferenceLoader,
		httpClient: &http.Client{},
		log:        log.With().Str("component", "synth_client").Str("family", cfg.Family).Logger(),
	}, nil
}

// abortRetry stops the retry loop for errors that another attempt on the
// same server cannot fix.
func abortRetry(err error) bool {
	if resilience.IsConnectionRefused(err) {
		return true
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return !upstream.Retryable()
	}
	return false
}

// Family returns the backend family name.
func (c *Client) Family() string {
	return c.family
}

// Synthesize generates audio for the request, failing over across the
// family's servers. A reference-audio problem is terminal: the input is bad
// on every server.
func (c *Client) Synthesize(ctx context.Context, req Request) (*Result, error) {
	started := time.Now()
	result, err := c.synthesize(ctx, req)
	observability.RecordSynthesis(c.family, err, started)
	if result != nil {
		observability.RecordAudioBytes("out", len(result.Audio))
	}
	return result, err
}

func (c *Client) synthesize(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := c.resolveReference(ctx, &req); err != nil {
		return nil, err
	}

	opts := req.Options.withDefaults()
	wire := synthesizeRequest{
		Text:    req.Text,
		VoiceID: req.Voice.VoiceID,
		Speed:   opts.Speed,
		Tone:    opts.Tone,
		Emotion: opts.Emotion,
		Accent:  opts.Accent,
	}
	if len(req.Voice.ReferenceAudio) > 0 {
		wire.ReferenceAudioB64 = base64.StdEncoding.EncodeToString(req.Voice.ReferenceAudio)
	}

	var result *Result
	err := c.eachServer(ctx, func(ctx context.Context, server string) error {
		res, err := c.postSynthesize(ctx, server, wire)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// resolveReference loads inline reference audio for cloning calls that name
// a stored sample path.
func (c *Client) resolveReference(ctx context.Context, req *Request) error {
	if req.Voice.VoiceID != "" || len(req.Voice.ReferenceAudio) > 0 {
		return nil
	}
	if c.refs == nil {
		return &ReferenceLoadError{Path: req.Voice.ReferencePath, Err: errors.New("no reference loader configured")}
	}
	payload, err := c.refs.Load(ctx, req.Voice.ReferencePath)
	if err != nil {
		return err
	}
	req.Voice.ReferenceAudio = payload
	return nil
}

// eachServer runs call against each configured server in priority order
// until one succeeds. Open breakers are skipped; network failures open
// them; a non-retryable backend response is surfaced without failover.
func (c *Client) eachServer(ctx context.Context, call func(ctx context.Context, server string) error) error {
	var lastErr error
	var skipErr error

	for i, server := range c.servers {
		breaker := c.breakers[i]
		if err := breaker.Allow(); err != nil {
			c.log.Debug().Str("server", server).Msg("breaker open, skipping server")
			observability.RecordFailover(c.family)
			skipErr = err
			continue
		}

		server := server
		err := c.policy.Do(ctx, func() error {
			return call(ctx, server)
		})
		if err == nil {
			breaker.MarkSuccess()
			observability.SetBreakerState(c.family, server, false)
			return nil
		}

		lastErr = err
		if resilience.IsNetworkError(err) {
			breaker.MarkFailure()
			observability.SetBreakerState(c.family, server, true)
		}

		var upstream *UpstreamError
		if errors.As(err, &upstream) && !upstream.Retryable() {
			// The backend answered; trying its siblings will not change the verdict.
			return err
		}

		c.log.Warn().Str("server", server).Err(err).Msg("server exhausted, failing over")
		observability.RecordFailover(c.family)
	}

	if lastErr != nil {
		return lastErr
	}
	if skipErr != nil {
		return skipErr
	}
	return fmt.Errorf("no servers configured for %s", c.family)
}

func (c *Client) postSynthesize(ctx context.Context, server string, wire synthesizeRequest) (*Result, error) {
	body, err := json.Marshal(wire)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	data, contentType, err := c.post(ctx, server, "/synthesize", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(contentType, "application/json") {
		var resp synthesizeResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, &UpstreamError{Server: server, StatusCode: http.StatusOK, Message: "malformed response body"}
		}
		raw, err := base64.StdEncoding.DecodeString(resp.AudioB64)
		if err != nil {
			return nil, &UpstreamError{Server: server, StatusCode: http.StatusOK, Message: "malformed audio payload"}
		}
		return &Result{
			Audio:      raw,
			SampleRate: resp.SampleRate,
			Format:     resp.Format,
			Duration:   resp.Duration,
		}, nil
	}

	// Simpler backends answer with the audio bytes directly.
	result := &Result{Audio: data, Format: string(audio.DetectFormat(data))}
	if clip, err := audio.DecodeWAV(data); err == nil {
		result.SampleRate = clip.SampleRate
		result.Duration = clip.Duration()
	}
	return result, nil
}

// Clone registers a stored reference-audio sample with the backend and
// returns the created voice ID.
func (c *Client) Clone(ctx context.Context, referencePath string) (string, error) {
	if c.refs == nil {
		return "", &ReferenceLoadError{Path: referencePath, Err: errors.New("no reference loader configured")}
	}
	payload, err := c.refs.Load(ctx, referencePath)
	if err != nil {
		return "", err
	}
	observability.RecordAudioBytes("in", len(payload))

	var voiceID string
	err = c.eachServer(ctx, func(ctx context.Context, server string) error {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, err := writer.CreateFormFile("reference_audio", "reference.wav")
		if err != nil {
			return &ValidationError{Reason: err.Error()}
		}
		if _, err := part.Write(payload); err != nil {
			return &ValidationError{Reason: err.Error()}
		}
		if err := writer.Close(); err != nil {
			return &ValidationError{Reason: err.Error()}
		}

		data, _, err := c.post(ctx, server, "/clone", writer.FormDataContentType(), &buf)
		if err != nil {
			return err
		}
		var resp cloneResponse
		if err := json.Unmarshal(data, &resp); err != nil || resp.VoiceID == "" {
			return &UpstreamError{Server: server, StatusCode: http.StatusOK, Message: "malformed clone response"}
		}
		voiceID = resp.VoiceID
		return nil
	})
	if err != nil {
		return "", err
	}
	return voiceID, nil
}

// Batch synthesizes several texts with one stored voice in a single backend
// round trip. Each entry succeeds or fails independently.
func (c *Client) Batch(ctx context.Context, texts []string, voiceID string, opts Options) ([]BatchItem, error) {
	if len(texts) == 0 {
		return nil, &ValidationError{Reason: "no texts"}
	}
	if voiceID == "" {
		return nil, &ValidationError{Reason: "no voice reference"}
	}
	opts = opts.withDefaults()

	wire := batchRequest{Texts: texts, VoiceID: voiceID, Speed: opts.Speed, Tone: opts.Tone}
	body, err := json.Marshal(wire)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	var items []BatchItem
	err = c.eachServer(ctx, func(ctx context.Context, server string) error {
		data, _, err := c.post(ctx, server, "/batch", "application/json", bytes.NewReader(body))
		if err != nil {
			return err
		}
		var resp batchResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			return &UpstreamError{Server: server, StatusCode: http.StatusOK, Message: "malformed batch response"}
		}

		items = make([]BatchItem, 0, len(resp.Results))
		for i, r := range resp.Results {
			item := BatchItem{}
			if i < len(texts) {
				item.Text = texts[i]
			}
			if r.Error != "" {
				item.Err = &UpstreamError{Server: server, StatusCode: http.StatusOK, Message: r.Error}
			} else {
				raw, decErr := base64.StdEncoding.DecodeString(r.AudioB64)
				if decErr != nil {
					item.Err = &UpstreamError{Server: server, StatusCode: http.StatusOK, Message: "malformed audio payload"}
				} else {
					item.Result = &Result{Audio: raw, SampleRate: r.SampleRate, Format: r.Format, Duration: r.Duration}
				}
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Health probes the family's servers in priority order and returns the
// first answer.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var lastErr error
	for _, server := range c.servers {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		req, err := http.NewRequestWithContext(callCtx, http.MethodGet, server+"/health", nil)
		if err != nil {
			cancel()
			lastErr = err
			continue
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			cancel()
			lastErr = err
			continue
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		cancel()
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			lastErr = &UpstreamError{Server: server, StatusCode: resp.StatusCode, Message: decodeDetail(data)}
			continue
		}

		var h Health
		if err := json.Unmarshal(data, &h); err != nil {
			lastErr = &UpstreamError{Server: server, StatusCode: http.StatusOK, Message: "malformed health response"}
			continue
		}
		return &h, nil
	}
	return nil, lastErr
}

// post issues one bounded-timeout POST and classifies the outcome: network
// errors come back unwrapped for the retry policy, non-2xx responses as
// UpstreamError.
func (c *Client) post(ctx context.Context, server, path, contentType string, body io.Reader) ([]byte, string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, server+path, body)
	if err != nil {
		return nil, "", &ValidationError{Reason: err.Error()}
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &UpstreamError{Server: server, StatusCode: resp.StatusCode, Message: decodeDetail(data)}
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func decodeDetail(data []byte) string {
	var e errorResponse
	if err := json.Unmarshal(data, &e); err == nil && e.Detail != "" {
		return e.Detail
	}
	if len(data) > 200 {
		data = data[:200]
	}
	return strings.TrimSpace(string(data))
}
