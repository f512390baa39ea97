package commands_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nanoindent/cmd/nanoindent/commands"
	"go.trai.ch/nanoindent/internal/adapters/logger"
	"go.trai.ch/nanoindent/internal/adapters/transport"
	"go.trai.ch/nanoindent/internal/algorithms"
	"go.trai.ch/nanoindent/internal/app"
	"go.trai.ch/nanoindent/internal/build"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newCLI(t *testing.T, args ...string) (*commands.CLI, *mocks.MockPipeline) {
	t.Helper()
	ctrl := gomock.NewController(t)
	p := mocks.NewMockPipeline(ctrl)
	log := logger.New("error")
	reg := algorithms.NewRegistry()
	server := transport.New(transport.Config{Pipeline: p, Registry: reg, Logger: log})
	cli := commands.New(app.New(p, reg, server, mocks.NewMockCacheStore(ctrl), log))
	cli.SetArgs(args)
	cli.SetOutput(io.Discard)
	return cli, p
}

func TestProcess_BuildsRequestFromFlags(t *testing.T) {
	cli, p := newCLI(t, "process", "4", "2",
		"--filter", "median:window=5",
		"--detector", "autothresh:zeroRange=300, threshold=10",
		"--fmodel", "hertz",
		"--emodel", "constant",
		"--single",
		"--no-zero-force",
		"--tip-geometry", "cone",
		"--window", "31",
	)
	p.EXPECT().Process(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *domain.Request) (*domain.Response, error) {
			assert.Equal(t, []int{4, 2}, req.CurveIDs)
			assert.Equal(t, domain.Algorithms{{Name: "median", Params: map[string]any{"window": "5"}}}, req.Filters.Regular)
			assert.Equal(t, domain.Algorithms{{
				Name:   "autothresh",
				Params: map[string]any{"zeroRange": "300", "threshold": "10"},
			}}, req.Filters.CPFilter)
			assert.Equal(t, []string{"hertz"}, req.Filters.FModels.Names())
			assert.Equal(t, []string{"constant"}, req.Filters.EModels.Names())
			assert.True(t, req.Single)
			assert.False(t, req.ZeroForceEnabled())
			require.NotNil(t, req.MetadataOverrides)
			assert.Equal(t, "cone", *req.MetadataOverrides.TipGeometry)
			require.NotNil(t, req.Elasticity)
			assert.Equal(t, 31, req.Elasticity.Window)
			assert.Equal(t, domain.DefaultElasticitySettings().Order, req.Elasticity.Order)
			return &domain.Response{}, nil
		})

	require.NoError(t, cli.Execute(context.Background()))
}

func TestProcess_ReadsRequestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.json")
	body := `{"curve_ids":[1],"filters":{"cp_filters":{"threshold":{"threshold":5}}}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cli, p := newCLI(t, "process", "-r", path, "9")
	p.EXPECT().Process(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *domain.Request) (*domain.Response, error) {
			assert.Equal(t, []int{9}, req.CurveIDs)
			assert.Equal(t, []string{"threshold"}, req.Filters.CPFilter.Names())
			return &domain.Response{}, nil
		})

	require.NoError(t, cli.Execute(context.Background()))
}

func TestProcess_NoArgsShowsHelp(t *testing.T) {
	cli, _ := newCLI(t, "process")
	require.NoError(t, cli.Execute(context.Background()))
}

func TestProcess_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "non-numeric id", args: []string{"process", "one"}},
		{name: "empty algorithm", args: []string{"process", "1", "--detector", ":x=1"}},
		{name: "missing value", args: []string{"process", "1", "--filter", "median:window"}},
		{name: "missing file", args: []string{"process", "-r", "/nonexistent/request.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, _ := newCLI(t, tt.args...)
			require.Error(t, cli.Execute(context.Background()))
		})
	}
}

func TestScan_PassesChunkSize(t *testing.T) {
	cli, p := newCLI(t, "scan", "--detector", "autothresh", "--emodel", "bilayer", "--chunk-size", "7")
	p.EXPECT().Scan(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *domain.ScanRequest, emit func(domain.ScanChunk) error) error {
			assert.Equal(t, 7, req.ChunkSize)
			assert.Equal(t, []string{"bilayer"}, req.Filters.EModels.Names())
			assert.Nil(t, req.ZeroForce)
			return emit(domain.ScanChunk{Progress: domain.Progress{TotalBatches: 1, Done: 1, Total: 1}})
		})

	require.NoError(t, cli.Execute(context.Background()))
}

func TestScan_RejectsArgs(t *testing.T) {
	cli, _ := newCLI(t, "scan", "1")
	require.Error(t, cli.Execute(context.Background()))
}

func TestAlgorithms_UnknownFamily(t *testing.T) {
	cli, _ := newCLI(t, "algorithms", "--family", "nonsense")
	err := cli.Execute(context.Background())
	require.ErrorIs(t, err, domain.ErrUnknownFamily)
}

func TestRoot_Help(t *testing.T) {
	cli, _ := newCLI(t, "--help")
	require.NoError(t, cli.Execute(context.Background()))
}

func TestVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mocks.NewMockPipeline(ctrl)
	cli := commands.New(app.New(p, algorithms.NewRegistry(), nil, nil, logger.New("error")))

	var out bytes.Buffer
	cli.SetOutput(&out)
	cli.SetArgs([]string{"version"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "nanoindent version "+build.String(), strings.TrimSpace(out.String()))
}
