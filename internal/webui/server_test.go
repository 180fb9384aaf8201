package webui

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-modscope/dsp/modulation"
	"github.com/cwbudde/algo-modscope/internal/app"
	"github.com/cwbudde/algo-modscope/internal/compute"
	"github.com/cwbudde/algo-modscope/internal/figure"
	"github.com/cwbudde/algo-modscope/internal/render"
	"github.com/cwbudde/algo-modscope/measure/snr"
)

func newTestServer(t *testing.T) (*Server, *app.Session) {
	t.Helper()
	pipe := compute.New(
		compute.WithSweeper(snr.NewSweeper(snr.WithSeed(3))),
		compute.WithMaxSamples(10000),
	)
	session := app.NewSession(app.WithPipeline(pipe))
	r, err := render.NewRenderer(render.Config{Width: 400, Height: 300})
	require.NoError(t, err)
	return New(session, r, nil), session
}

func form(values map[string]string, scheme string) url.Values {
	f := url.Values{}
	for k, v := range values {
		f.Set(k, v)
	}
	f.Set("scheme", scheme)
	return f
}

func post(h http.Handler, f url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/update", strings.NewReader(f.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestIndexShowsForm(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := get(srv.Handler(), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, f := range app.Fields() {
		assert.Contains(t, body, f.Label)
		assert.Contains(t, body, `name="`+f.Key+`" value="`+f.Default+`"`)
	}
	for _, s := range modulation.Schemes() {
		assert.Contains(t, body, `<option value="`+s.String()+`"`)
	}
	assert.Contains(t, body, `<option value="DSB" selected>`)
	assert.Contains(t, body, "Update Plot")
	assert.Contains(t, body, `<img src="/plot.png"`)
	assert.NotContains(t, body, "<dialog")
}

func TestUnknownPath(t *testing.T) {
	srv, _ := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, get(srv.Handler(), "/nope").Code)
}

func TestUpdateRedirects(t *testing.T) {
	srv, session := newTestServer(t)
	rec := post(srv.Handler(), form(app.Values(modulation.DefaultParams()), "FM"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, "SNR vs Gamma (FM)", session.Figure().Panes[figure.PaneSNR].Title)

	body := get(srv.Handler(), "/").Body.String()
	assert.Contains(t, body, `<option value="FM" selected>`)
}

func TestInvalidInputShowsDialog(t *testing.T) {
	srv, session := newTestServer(t)
	before := session.Figure()

	values := app.Values(modulation.DefaultParams())
	values[app.KeyCarrierFreq] = "abc"
	rec := post(srv.Handler(), form(values, "AM"))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<dialog open>")
	assert.Contains(t, body, "<h2>Error</h2>")
	assert.Contains(t, body, "Invalid input! Please enter numeric values.")
	assert.Contains(t, body, `value="abc"`)
	assert.Equal(t, before, session.Figure())
}

func TestMissingFieldShowsDialog(t *testing.T) {
	srv, _ := newTestServer(t)
	values := app.Values(modulation.DefaultParams())
	delete(values, app.KeyAMIndex)

	rec := post(srv.Handler(), form(values, "AM"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "<dialog open>")
}

func TestUpdateRejectsBadSchemeAndRate(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := post(srv.Handler(), form(app.Values(modulation.DefaultParams()), "QAM"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	values := app.Values(modulation.DefaultParams())
	values[app.KeySampleRate] = "0"
	rec = post(srv.Handler(), form(values, "DSB"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	values[app.KeySampleRate] = "1e6"
	rec = post(srv.Handler(), form(values, "DSB"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "sample limit")
}

func TestPlotPNG(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()
	require.Equal(t, http.StatusSeeOther, post(h, form(app.Values(modulation.DefaultParams()), "PM")).Code)

	rec := get(h, "/plot.png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestFigureJSON(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	var blank figure.Figure
	rec := get(h, "/figure.json")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &blank))
	assert.Len(t, blank.Panes, figure.PaneCount)
	assert.Equal(t, "SNR vs Gamma", blank.Panes[figure.PaneSNR].Title)

	require.Equal(t, http.StatusSeeOther, post(h, form(app.Values(modulation.DefaultParams()), "USSB")).Code)

	var fig figure.Figure
	rec = get(h, "/figure.json")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fig))
	assert.Equal(t, "SNR vs Gamma (USSB)", fig.Panes[figure.PaneSNR].Title)
	assert.Len(t, fig.Panes[figure.PaneSNR].Series[0].Y, snr.GammaSteps)
	assert.Len(t, fig.Panes[figure.PaneSidebands].Series, 2)
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)
	assert.Equal(t, http.StatusMethodNotAllowed, get(srv.Handler(), "/update").Code)
}

func TestNewHTTPServer(t *testing.T) {
	srv, _ := newTestServer(t)
	hs := srv.NewHTTPServer("127.0.0.1:0")
	assert.Equal(t, "127.0.0.1:0", hs.Addr)
	assert.NotNil(t, hs.Handler)
	assert.NotZero(t, hs.ReadHeaderTimeout)
}
