package synth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentwood/voice-engine/internal/audio"
)

// ReferenceLoader resolves a voice's reference-audio path into a payload the
// backend accepts. It tries local storage first, falls back to fetching over
// HTTP, and transcodes to mono PCM WAV at the backend's sample rate when the
// source encoding differs.
type ReferenceLoader struct {
	root       string
	fetchBase  string
	targetRate int
	httpClient *http.Client
	log        zerolog.Logger
}

// NewReferenceLoader creates a loader rooted at the local asset directory,
// with fetchBase as the HTTP fallback origin.
func NewReferenceLoader(root, fetchBase string, targetRate int, httpClient *http.Client, log zerolog.Logger) *ReferenceLoader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ReferenceLoader{
		root:       root,
		fetchBase:  strings.TrimRight(fetchBase, "/"),
		targetRate: targetRate,
		httpClient: httpClient,
		log:        log.With().Str("component", "reference_loader").Logger(),
	}
}

// Load returns the reference audio at path, transcoded for upload. All
// failures come back as a ReferenceLoadError: the input is bad, so the
// caller must not fail over to another server.
func (l *ReferenceLoader) Load(ctx context.Context, path string) ([]byte, error) {
	raw, err := l.read(ctx, path)
	if err != nil {
		return nil, &ReferenceLoadError{Path: path, Err: err}
	}

	if format := audio.DetectFormat(raw); format != audio.FormatWAV {
		return nil, &ReferenceLoadError{Path: path, Err: fmt.Errorf("unsupported encoding %s", format)}
	}

	transcoded, err := audio.TranscodeToWAV(raw, l.targetRate)
	if err != nil {
		return nil, &ReferenceLoadError{Path: path, Err: err}
	}
	return transcoded, nil
}

func (l *ReferenceLoader) read(ctx context.Context, path string) ([]byte, error) {
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		local := filepath.Join(l.root, filepath.Clean("/"+path))
		data, err := os.ReadFile(local)
		if err == nil {
			return data, nil
		}
		l.log.Debug().Str("path", local).Err(err).Msg("local read failed, falling back to fetch")
	}
	return l.fetch(ctx, path)
}

func (l *ReferenceLoader) fetch(ctx context.Context, path string) ([]byte, error) {
	url := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		if l.fetchBase == "" {
			return nil, fmt.Errorf("no local file and no fetch origin configured")
		}
		url = l.fetchBase + "/" + strings.TrimLeft(path, "/")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
