package wiring_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nanoindent/internal/adapters/config"
	"go.trai.ch/nanoindent/internal/app"
	_ "go.trai.ch/nanoindent/internal/wiring"
)

// TestGraftDependencies ensures that the dependency injection graph is valid
// at compile/test time. It checks that every node declaring a dependency
// actually uses it, and every used dependency is declared.
func TestGraftDependencies(t *testing.T) {
	// graft.AssertDepsValid infers the dependency ID from the package name of the
	// type used in Dep[T]. Several distinct nodes provide types from the shared
	// `ports` and `domain` packages, so the inference does not apply here.
	t.Skip("Skipping Graft validation due to static analysis limitation with shared ports package")
	graft.AssertDepsValid(t, "../../internal")
}

// TestGraftResolvesComponents builds the whole graph from a config file.
func TestGraftResolvesComponents(t *testing.T) {
	dir := t.TempDir()
	curves := filepath.Join(dir, "curves.json")
	require.NoError(t, os.WriteFile(curves, []byte(`[{"id":1,"z":[0,1,2],"f":[0,0,1]}]`), 0o600))
	cfg := filepath.Join(dir, "nanoindent.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("log_level: error\ncurves_path: "+curves+"\n"), 0o600))
	t.Setenv(config.EnvConfigPath, cfg)

	components, _, err := graft.ExecuteFor[*app.Components](context.Background(), graft.DisableCache())
	require.NoError(t, err)
	require.NotNil(t, components.App)
	assert.NotNil(t, components.Logger)
	require.NoError(t, components.App.Close(context.Background()))
}
