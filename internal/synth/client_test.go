package synth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentwood/voice-engine/internal/audio"
)

func testWAV(t *testing.T) []byte {
	t.Helper()
	clip := &audio.Clip{Samples: make([]int16, 2400), SampleRate: 24000, Channels: 1}
	for i := range clip.Samples {
		clip.Samples[i] = int16(i % 512)
	}
	data, err := audio.EncodeWAV(clip)
	if err != nil {
		t.Fatalf("encode test wav: %v", err)
	}
	return data
}

// okSynthesizeHandler answers every /synthesize with a fixed JSON payload.
func okSynthesizeHandler(calls *int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(synthesizeResponse{
			AudioB64:   base64.StdEncoding.EncodeToString([]byte("pcm")),
			SampleRate: 24000,
			Format:     "wav",
			Duration:   0.5,
		})
	}
}

func newTestClient(t *testing.T, servers []string, attempts int) *Client {
	t.Helper()
	c, err := NewClient(ClientConfig{
		Family:          "openvoice",
		Servers:         servers,
		Timeout:         2 * time.Second,
		RetryAttempts:   attempts,
		RetryBackoff:    time.Millisecond,
		BreakerCooldown: time.Minute,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func synthReq() Request {
	return Request{Text: "hello there", Voice: VoiceRef{VoiceID: "kore"}}
}

func TestSynthesize_FailoverToSecondary(t *testing.T) {
	var aCalls, bCalls int32
	a := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&aCalls, 1)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(errorResponse{Detail: "gpu exhausted"})
	}))
	defer a.Close()
	b := httptest.NewServer(okSynthesizeHandler(&bCalls))
	defer b.Close()

	c := newTestClient(t, []string{a.URL, b.URL}, 2)
	res, err := c.Synthesize(context.Background(), synthReq())
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if string(res.Audio) != "pcm" {
		t.Errorf("audio = %q, want pcm", res.Audio)
	}
	if got := atomic.LoadInt32(&aCalls); got != 2 {
		t.Errorf("primary calls = %d, want 2 (exhaust retries before failover)", got)
	}
	if got := atomic.LoadInt32(&bCalls); got != 1 {
		t.Errorf("secondary calls = %d, want 1", got)
	}
}

func TestSynthesize_BreakerSkipsFailedServer(t *testing.T) {
	var aCalls, bCalls int32
	a := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&aCalls, 1)
		panic(http.ErrAbortHandler) // drop the connection mid-flight
	}))
	defer a.Close()
	b := httptest.NewServer(okSynthesizeHandler(&bCalls))
	defer b.Close()

	c := newTestClient(t, []string{a.URL, b.URL}, 1)

	if _, err := c.Synthesize(context.Background(), synthReq()); err != nil {
		t.Fatalf("first Synthesize: %v", err)
	}
	if got := atomic.LoadInt32(&aCalls); got != 1 {
		t.Fatalf("primary calls after first request = %d, want 1", got)
	}

	// Within the cool-down the failed server must not see another request.
	if _, err := c.Synthesize(context.Background(), synthReq()); err != nil {
		t.Fatalf("second Synthesize: %v", err)
	}
	if got := atomic.LoadInt32(&aCalls); got != 1 {
		t.Errorf("primary calls after second request = %d, want still 1", got)
	}
	if got := atomic.LoadInt32(&bCalls); got != 2 {
		t.Errorf("secondary calls = %d, want 2", got)
	}
}

func TestSynthesize_ConnectionRefusedFailsOver(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	var bCalls int32
	b := httptest.NewServer(okSynthesizeHandler(&bCalls))
	defer b.Close()

	c := newTestClient(t, []string{deadURL, b.URL}, 3)
	res, err := c.Synthesize(context.Background(), synthReq())
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if res == nil || len(res.Audio) == 0 {
		t.Fatal("expected audio from secondary")
	}
	if got := atomic.LoadInt32(&bCalls); got != 1 {
		t.Errorf("secondary calls = %d, want 1", got)
	}
}

func TestSynthesize_ValidationNeverReachesNetwork(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(okSynthesizeHandler(&calls))
	defer srv.Close()

	c := newTestClient(t, []string{srv.URL}, 3)

	_, err := c.Synthesize(context.Background(), Request{Voice: VoiceRef{VoiceID: "kore"}})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Errorf("server calls = %d, want 0", got)
	}
}

func TestSynthesize_ClientErrorNotRetriedNotFailedOver(t *testing.T) {
	var aCalls, bCalls int32
	a := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&aCalls, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(errorResponse{Detail: "unknown voice"})
	}))
	defer a.Close()
	b := httptest.NewServer(okSynthesizeHandler(&bCalls))
	defer b.Close()

	c := newTestClient(t, []string{a.URL, b.URL}, 3)

	_, err := c.Synthesize(context.Background(), synthReq())
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("error = %v, want UpstreamError", err)
	}
	if upstream.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", upstream.StatusCode)
	}
	if got := atomic.LoadInt32(&aCalls); got != 1 {
		t.Errorf("primary calls = %d, want 1 (4xx is not retried)", got)
	}
	if got := atomic.LoadInt32(&bCalls); got != 0 {
		t.Errorf("secondary calls = %d, want 0 (4xx does not fail over)", got)
	}
}

func TestSynthesize_RawBinaryResponse(t *testing.T) {
	wav := testWAV(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/wav")
		w.Write(wav)
	}))
	defer srv.Close()

	c := newTestClient(t, []string{srv.URL}, 1)
	res, err := c.Synthesize(context.Background(), synthReq())
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if res.Format != string(audio.FormatWAV) {
		t.Errorf("format = %q, want wav", res.Format)
	}
	if res.SampleRate != 24000 {
		t.Errorf("sample rate = %d, want 24000", res.SampleRate)
	}
}

func TestSynthesize_ReferenceLoadErrorIsTerminal(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(okSynthesizeHandler(&calls))
	defer srv.Close()

	c := newTestClient(t, []string{srv.URL}, 3)
	c.refs = NewReferenceLoader(t.TempDir(), "", 24000, nil, zerolog.Nop())

	_, err := c.Synthesize(context.Background(), Request{
		Text:  "hello",
		Voice: VoiceRef{ReferencePath: "voices/missing.wav"},
	})
	var refErr *ReferenceLoadError
	if !errors.As(err, &refErr) {
		t.Fatalf("error = %v, want ReferenceLoadError", err)
	}
	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Errorf("server calls = %d, want 0", got)
	}
}

func TestClone_UploadsReferenceAudio(t *testing.T) {
	dir := t.TempDir()
	wav := testWAV(t)
	if err := os.MkdirAll(filepath.Join(dir, "voices"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "voices", "kore.wav"), wav, 0o644); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/clone" {
			t.Errorf("path = %s, want /clone", r.URL.Path)
		}
		file, _, err := r.FormFile("reference_audio")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		file.Close()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cloneResponse{VoiceID: "cloned-42"})
	}))
	defer srv.Close()

	c := newTestClient(t, []string{srv.URL}, 1)
	c.refs = NewReferenceLoader(dir, "", 24000, nil, zerolog.Nop())

	id, err := c.Clone(context.Background(), "voices/kore.wav")
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if id != "cloned-42" {
		t.Errorf("voice id = %q, want cloned-42", id)
	}
}

func TestBatch_PerEntryOutcomes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/batch" {
			t.Errorf("path = %s, want /batch", r.URL.Path)
		}
		var req batchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode batch request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[
			{"audio_base64":"` + base64.StdEncoding.EncodeToString([]byte("one")) + `","sample_rate":24000,"format":"wav"},
			{"error":"text too long"}
		]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, []string{srv.URL}, 1)
	items, err := c.Batch(context.Background(), []string{"first line", "second line"}, "kore", Options{})
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].Err != nil || string(items[0].Result.Audio) != "one" {
		t.Errorf("first item = %+v, want audio 'one'", items[0])
	}
	if items[1].Err == nil {
		t.Error("second item should carry the backend error")
	}
}

func TestHealth_FallsToSecondary(t *testing.T) {
	a := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer a.Close()
	b := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %s, want /health", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Health{Status: "ok", Ready: true, Version: "1.4.0"})
	}))
	defer b.Close()

	c := newTestClient(t, []string{a.URL, b.URL}, 1)
	h, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if !h.Ready || h.Status != "ok" {
		t.Errorf("health = %+v, want ready ok", h)
	}
}

func TestSynthesizeMany_BoundedConcurrency(t *testing.T) {
	var inflight, peak int32
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := atomic.AddInt32(&inflight, 1)
		mu.Lock()
		if cur > peak {
			peak = cur
		}
		mu.Unlock()
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inflight, -1)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(synthesizeResponse{
			AudioB64:   base64.StdEncoding.EncodeToString([]byte("pcm")),
			SampleRate: 24000,
			Format:     "wav",
		})
	}))
	defer srv.Close()

	c := newTestClient(t, []string{srv.URL}, 1)
	reqs := make([]Request, 6)
	for i := range reqs {
		reqs[i] = synthReq()
	}

	items, err := c.SynthesizeMany(context.Background(), reqs, 2)
	if err != nil {
		t.Fatalf("SynthesizeMany: %v", err)
	}
	if len(items) != 6 {
		t.Fatalf("items = %d, want 6", len(items))
	}
	for i, item := range items {
		if item.Err != nil {
			t.Errorf("item %d failed: %v", i, item.Err)
		}
	}
	mu.Lock()
	defer mu.Unlock()
	if peak > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", peak)
	}
}
