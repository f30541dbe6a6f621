package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Wastetoken/Palettebuddy/internal/analyzer"
	"github.com/Wastetoken/Palettebuddy/internal/params"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	p            params.Parameters
	audio        bool
	startCalls   int
	stopCalls    int
	exportCalled bool
}

func (f *fakeEngine) Params() params.Parameters     { return f.p }
func (f *fakeEngine) SetParams(p params.Parameters) { f.p = p.Clamp() }
func (f *fakeEngine) Energy() analyzer.Energy       { return analyzer.Energy{Bass: 0.5} }
func (f *fakeEngine) FPS() float64                  { return 30 }
func (f *fakeEngine) AudioActive() bool             { return f.audio }
func (f *fakeEngine) AudioDevice() string           { return "" }
func (f *fakeEngine) StartAudioSync()               { f.startCalls++; f.audio = true }
func (f *fakeEngine) StopAudioSync()                { f.stopCalls++; f.audio = false }
func (f *fakeEngine) ExportCurrent(w, h int) ([]byte, error) {
	f.exportCalled = true
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

func TestMergeUpdateKeepsUnsetFields(t *testing.T) {
	p := params.Defaults()
	p.Distortion = 42

	hue := 90.0
	merged := MergeUpdate(p, UpdateRequest{Hue: &hue})
	require.Equal(t, 90.0, merged.Hue)
	require.Equal(t, 42.0, merged.Distortion, "unset fields keep their value")
}

func TestHandleUpdateClampsAndTogglesAudio(t *testing.T) {
	eng := &fakeEngine{p: params.Defaults()}
	srv := NewServer(eng, nil)

	body, _ := json.Marshal(map[string]any{
		"distortion": 400,
		"pattern":    "vortex",
		"audioSync":  true,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/update", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.handleUpdate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 100.0, eng.p.Distortion, "boundary must clamp")
	require.Equal(t, params.Vortex, eng.p.Pattern)
	require.Equal(t, 1, eng.startCalls)
}

func TestHandleUpdateRejectsGet(t *testing.T) {
	srv := NewServer(&fakeEngine{}, nil)
	rec := httptest.NewRecorder()
	srv.handleUpdate(rec, httptest.NewRequest(http.MethodGet, "/api/update", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleStatusReportsEngineState(t *testing.T) {
	eng := &fakeEngine{p: params.Defaults(), audio: true}
	srv := NewServer(eng, nil)

	rec := httptest.NewRecorder()
	srv.handleStatus(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	var status StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.Equal(t, 30.0, status.FPS)
	require.True(t, status.AudioActive)
	require.Equal(t, 0.5, status.Energy.Bass)
}

func TestHandleExportDelegates(t *testing.T) {
	eng := &fakeEngine{p: params.Defaults()}
	srv := NewServer(eng, nil)

	rec := httptest.NewRecorder()
	srv.handleExport(rec, httptest.NewRequest(http.MethodGet, "/api/export?width=320&height=240", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.True(t, eng.exportCalled)
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	p := params.Defaults()
	p.Pattern = params.Glitch
	p.Seed = 987
	p.Hue = 123

	require.NoError(t, SaveConfig(path, p))
	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, p, loaded)
}

func TestPatternsEndpointListsAllTen(t *testing.T) {
	srv := NewServer(&fakeEngine{}, nil)
	rec := httptest.NewRecorder()
	srv.handlePatterns(rec, httptest.NewRequest(http.MethodGet, "/api/patterns", nil))

	var names []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &names))
	require.Len(t, names, 10)
}
