package transport_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nanoindent/internal/adapters/logger"
	"go.trai.ch/nanoindent/internal/adapters/transport"
	"go.trai.ch/nanoindent/internal/algorithms"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/core/ports/mocks"
	"go.trai.ch/nanoindent/internal/engine/pipeline"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type reply struct {
	Status        string          `json:"status"`
	Action        string          `json:"action"`
	ID            string          `json:"id"`
	SessionID     string          `json:"session_id"`
	Data          json.RawMessage `json:"data"`
	Message       string          `json:"message"`
	Configuration bool            `json:"configuration_error"`
}

func newServer(t *testing.T) (*transport.Server, *mocks.MockPipeline) {
	t.Helper()
	ctrl := gomock.NewController(t)
	p := mocks.NewMockPipeline(ctrl)
	s := transport.New(transport.Config{
		Pipeline:    p,
		Registry:    algorithms.NewRegistry(),
		Metrics:     pipeline.NewMetrics().Handler(),
		Logger:      logger.New("error"),
		ServiceName: "nanoindent-test",
	})
	return s, p
}

func serve(t *testing.T, s *transport.Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	s, _ := newServer(t)
	rec := serve(t, s, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_Algorithms(t *testing.T) {
	t.Parallel()

	s, _ := newServer(t)
	rec := serve(t, s, http.MethodGet, "/algorithms", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var catalog []domain.AlgorithmInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalog))
	names := make(map[string]domain.Family)
	for _, info := range catalog {
		names[info.Name] = info.Family
	}
	assert.Equal(t, domain.FamilyContactPoint, names["autothresh"])
	assert.Equal(t, domain.FamilyFilter, names["median"])
	assert.Equal(t, domain.FamilyForceModel, names["hertz"])
	assert.Equal(t, domain.FamilyElasticModel, names["bilayer"])
}

func TestServer_Metrics(t *testing.T) {
	t.Parallel()

	s, _ := newServer(t)
	rec := serve(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestServer_Process(t *testing.T) {
	t.Parallel()

	s, p := newServer(t)
	p.EXPECT().Process(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *domain.Request) (*domain.Response, error) {
			assert.Equal(t, []int{3}, req.CurveIDs)
			assert.Equal(t, []string{"autothresh"}, req.Filters.CPFilter.Names())
			resp := &domain.Response{}
			resp.ForceVsPosition.Add(domain.Series{ID: "3", X: []float64{0, 1}, Y: []float64{2, 3}})
			return resp, nil
		})

	rec := serve(t, s, http.MethodPost, "/process",
		`{"curve_ids":[3],"filters":{"cp_filters":{"autothresh":{"zeroRange":300}}}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.ForceVsPosition.Curves, 1)
	assert.Equal(t, &domain.Domain{XMin: 0, XMax: 1, YMin: 2, YMax: 3}, resp.ForceVsPosition.Domain)
	assert.Nil(t, resp.ForceVsIndentation.Domain)
}

func TestServer_ProcessErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "malformed", body: `{"curve_ids":`, status: http.StatusBadRequest},
		{
			name:   "configuration",
			body:   `{"curve_ids":[1]}`,
			err:    zerr.Wrap(domain.ErrUnknownAlgorithm, "resolve"),
			status: http.StatusBadRequest,
		},
		{
			name:   "store",
			body:   `{"curve_ids":[1]}`,
			err:    zerr.Wrap(domain.ErrCacheReadFailed, "lookup"),
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, p := newServer(t)
			if tt.err != nil {
				p.EXPECT().Process(gomock.Any(), gomock.Any()).Return(nil, tt.err)
			}
			rec := serve(t, s, http.MethodPost, "/process", tt.body)
			require.Equal(t, tt.status, rec.Code)

			var r reply
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
			assert.Equal(t, transport.StatusError, r.Status)
			assert.NotEmpty(t, r.Message)
			assert.Equal(t, tt.status == http.StatusBadRequest, r.Configuration)
		})
	}
}

func dial(t *testing.T, s *transport.Server) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	t.Cleanup(func() { _ = conn.Close() })

	var hello reply
	require.NoError(t, conn.ReadJSON(&hello))
	require.Equal(t, transport.StatusSession, hello.Status)
	_, err = uuid.Parse(hello.SessionID)
	require.NoError(t, err)
	return conn
}

func TestWebsocket_Process(t *testing.T) {
	t.Parallel()

	s, p := newServer(t)
	p.EXPECT().Process(gomock.Any(), gomock.Any()).Return(&domain.Response{}, nil)
	conn := dial(t, s)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"action":  transport.ActionProcess,
		"id":      "req-1",
		"request": map[string]any{"curve_ids": []int{1}},
	}))

	var r reply
	require.NoError(t, conn.ReadJSON(&r))
	assert.Equal(t, transport.StatusSuccess, r.Status)
	assert.Equal(t, transport.ActionProcess, r.Action)
	assert.Equal(t, "req-1", r.ID)

	var resp domain.Response
	require.NoError(t, json.Unmarshal(r.Data, &resp))
	assert.Empty(t, resp.ForceVsPosition.Curves)
}

func TestWebsocket_Scan(t *testing.T) {
	t.Parallel()

	s, p := newServer(t)
	p.EXPECT().Scan(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *domain.ScanRequest, emit func(domain.ScanChunk) error) error {
			assert.Equal(t, 2, req.ChunkSize)
			for b := range 2 {
				err := emit(domain.ScanChunk{
					Progress: domain.Progress{BatchIndex: b, TotalBatches: 2, Done: 2 * (b + 1), Total: 4},
					Entries:  []domain.ScanEntry{{CurveID: b, Model: "constant", Params: []float64{1}}},
				})
				if err != nil {
					return err
				}
			}
			return nil
		})
	conn := dial(t, s)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"action":  transport.ActionScan,
		"request": map[string]any{"chunk_size": 2},
	}))

	for b := range 2 {
		var r reply
		require.NoError(t, conn.ReadJSON(&r))
		require.Equal(t, transport.StatusBatch, r.Status)
		var chunk domain.ScanChunk
		require.NoError(t, json.Unmarshal(r.Data, &chunk))
		assert.Equal(t, b, chunk.Progress.BatchIndex)
		assert.Equal(t, 4, chunk.Progress.Total)
	}

	var done reply
	require.NoError(t, conn.ReadJSON(&done))
	assert.Equal(t, transport.StatusDone, done.Status)
}

func TestWebsocket_Errors(t *testing.T) {
	t.Parallel()

	s, p := newServer(t)
	p.EXPECT().Process(gomock.Any(), gomock.Any()).Return(nil, zerr.Wrap(domain.ErrCurveNotFound, "get curves"))
	conn := dial(t, s)

	require.NoError(t, conn.WriteJSON(map[string]any{"action": "explode"}))
	var unknown reply
	require.NoError(t, conn.ReadJSON(&unknown))
	assert.Equal(t, transport.StatusError, unknown.Status)
	assert.True(t, unknown.Configuration)

	require.NoError(t, conn.WriteJSON(map[string]any{"action": transport.ActionProcess, "request": map[string]any{"curve_ids": []int{9}}}))
	var missing reply
	require.NoError(t, conn.ReadJSON(&missing))
	assert.Equal(t, transport.StatusError, missing.Status)
	assert.True(t, missing.Configuration)
	assert.Contains(t, missing.Message, "curve not found")
}

func TestWebsocket_DisconnectCancelsWithQueuedMessage(t *testing.T) {
	t.Parallel()

	s, p := newServer(t)
	started := make(chan struct{})
	cancelled := make(chan struct{})
	p.EXPECT().Scan(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *domain.ScanRequest, _ func(domain.ScanChunk) error) error {
			close(started)
			<-ctx.Done()
			close(cancelled)
			return ctx.Err()
		})
	conn := dial(t, s)

	require.NoError(t, conn.WriteJSON(map[string]any{"action": transport.ActionScan, "request": map[string]any{}}))
	<-started
	require.NoError(t, conn.WriteJSON(map[string]any{"action": transport.ActionProcess, "request": map[string]any{"curve_ids": []int{1}}}))
	require.NoError(t, conn.Close())

	select {
	case <-cancelled:
	case <-time.After(5 * time.Second):
		t.Fatal("scan was not cancelled after the client disconnected")
	}
}
