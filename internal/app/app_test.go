package app_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nanoindent/internal/adapters/logger"
	"go.trai.ch/nanoindent/internal/adapters/transport"
	"go.trai.ch/nanoindent/internal/algorithms"
	"go.trai.ch/nanoindent/internal/app"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	app      *app.App
	pipeline *mocks.MockPipeline
	cache    *mocks.MockCacheStore
}

func newApp(t *testing.T) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	p := mocks.NewMockPipeline(ctrl)
	cache := mocks.NewMockCacheStore(ctrl)
	log := logger.New("error")
	reg := algorithms.NewRegistry()
	server := transport.New(transport.Config{Pipeline: p, Registry: reg, Logger: log, ServiceName: "nanoindent-test"})
	return fixture{
		app:      app.New(p, reg, server, cache, log),
		pipeline: p,
		cache:    cache,
	}
}

func TestApp_Process(t *testing.T) {
	t.Parallel()

	f := newApp(t)
	req := &domain.Request{CurveIDs: []int{7}}
	resp := &domain.Response{}
	resp.ForceVsPosition.Add(domain.Series{ID: "7", X: []float64{1}, Y: []float64{2}})
	f.pipeline.EXPECT().Process(gomock.Any(), req).Return(resp, nil)

	var out bytes.Buffer
	require.NoError(t, f.app.Process(context.Background(), req, &out))

	var got domain.Response
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, *resp, got)
}

func TestApp_ProcessError(t *testing.T) {
	t.Parallel()

	f := newApp(t)
	f.pipeline.EXPECT().Process(gomock.Any(), gomock.Any()).Return(nil, domain.ErrCurveNotFound)

	var out bytes.Buffer
	err := f.app.Process(context.Background(), &domain.Request{CurveIDs: []int{1}}, &out)
	require.ErrorIs(t, err, domain.ErrCurveNotFound)
	assert.Contains(t, err.Error(), "process failed")
	assert.Zero(t, out.Len())
}

func TestApp_ScanWritesOneLinePerChunk(t *testing.T) {
	t.Parallel()

	f := newApp(t)
	f.pipeline.EXPECT().Scan(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *domain.ScanRequest, emit func(domain.ScanChunk) error) error {
			for b := range 3 {
				err := emit(domain.ScanChunk{
					Progress: domain.Progress{BatchIndex: b, TotalBatches: 3, Done: b + 1, Total: 3},
					Entries:  []domain.ScanEntry{{CurveID: b, Model: "constant", Params: []float64{float64(b)}}},
				})
				if err != nil {
					return err
				}
			}
			return nil
		})

	var out bytes.Buffer
	require.NoError(t, f.app.Scan(context.Background(), &domain.ScanRequest{}, &out))

	var chunks []domain.ScanChunk
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var c domain.ScanChunk
		require.NoError(t, json.Unmarshal(sc.Bytes(), &c))
		chunks = append(chunks, c)
	}
	require.Len(t, chunks, 3)
	assert.Equal(t, 2, chunks[2].Entries[0].CurveID)
	assert.InDelta(t, 1.0, chunks[2].Progress.Fraction(), 1e-12)
}

func TestApp_ScanError(t *testing.T) {
	t.Parallel()

	f := newApp(t)
	f.pipeline.EXPECT().Scan(gomock.Any(), gomock.Any(), gomock.Any()).Return(context.Canceled)

	var out bytes.Buffer
	err := f.app.Scan(context.Background(), &domain.ScanRequest{}, &out)
	require.ErrorIs(t, err, context.Canceled)
}

func TestApp_Algorithms(t *testing.T) {
	t.Parallel()

	f := newApp(t)

	var all bytes.Buffer
	require.NoError(t, f.app.Algorithms(&all, ""))
	lines := strings.Split(strings.TrimSpace(all.String()), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "FAMILY"))
	assert.Contains(t, all.String(), "autothresh")
	assert.Contains(t, all.String(), "bilayer")

	var models bytes.Buffer
	require.NoError(t, f.app.Algorithms(&models, string(domain.FamilyForceModel)))
	assert.Contains(t, models.String(), "hertz")
	assert.NotContains(t, models.String(), "autothresh")

	err := f.app.Algorithms(&bytes.Buffer{}, "nonsense")
	require.ErrorIs(t, err, domain.ErrUnknownFamily)
}

func TestApp_ServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	f := newApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, f.app.Serve(ctx, "127.0.0.1:0"))
}

func TestApp_Close(t *testing.T) {
	t.Parallel()

	f := newApp(t)
	f.cache.EXPECT().Close().Return(nil)
	flushed := false
	f.app.WithShutdown(func(context.Context) error {
		flushed = true
		return nil
	})
	require.NoError(t, f.app.Close(context.Background()))
	assert.True(t, flushed)
}

func TestApp_CloseJoinsErrors(t *testing.T) {
	t.Parallel()

	f := newApp(t)
	closeErr := errors.New("badger closed twice")
	flushErr := errors.New("exporter gone")
	f.cache.EXPECT().Close().Return(closeErr)
	f.app.WithShutdown(func(context.Context) error { return flushErr })

	err := f.app.Close(context.Background())
	require.ErrorIs(t, err, closeErr)
	require.ErrorIs(t, err, flushErr)
}
