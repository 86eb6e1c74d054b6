package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/humansort"
	"github.com/agentstation/humansort/internal/appcontext"
	"github.com/agentstation/humansort/internal/store"
	"github.com/agentstation/humansort/pkg/errors"
)

func newApp(t *testing.T) (*appcontext.Mock, humansort.Client) {
	t.Helper()
	ctx := context.Background()
	client, err := humansort.New()
	require.NoError(t, err)
	_, err = client.Create(ctx, []string{"a", "b", "c"}, humansort.WithBatchSize(3))
	require.NoError(t, err)
	_, err = client.Judge(ctx, []string{"c", "a", "b"})
	require.NoError(t, err)
	return &appcontext.Mock{
		ClientFunc: func(context.Context, string) (humansort.Client, error) { return client, nil },
	}, client
}

func run(app *appcontext.Mock, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := NewCommand(app)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestExportFile(t *testing.T) {
	app, client := newApp(t)
	want, err := client.State(context.Background())
	require.NoError(t, err)

	for _, name := range []string{"state.json", "state.yaml", "state.humansort"} {
		t.Run(name, func(t *testing.T) {
			to := filepath.Join(t.TempDir(), name)
			_, stderr, err := run(app, "state", "--to", to)
			require.NoError(t, err)
			assert.Contains(t, stderr, "Exported 3 items to "+to)

			got, err := store.NewFileStore(to).Load(context.Background())
			require.NoError(t, err)
			assert.True(t, want.Equal(got))

			_, err = os.Stat(to + ".lock")
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestExportYAMLContent(t *testing.T) {
	app, _ := newApp(t)
	to := filepath.Join(t.TempDir(), "state.yml")

	_, _, err := run(app, "state", "--to", to)
	require.NoError(t, err)

	data, err := os.ReadFile(to)
	require.NoError(t, err)
	assert.Contains(t, string(data), "batch_size: 3")
}

func TestExportStdout(t *testing.T) {
	app, _ := newApp(t)

	stdout, stderr, err := run(app, "state", "--to", "-")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, `"batch_size": 3`)

	stdout, _, err = run(app, "state", "--to", "-", "--state-format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "batch_size: 3")
}

func TestExportErrors(t *testing.T) {
	app, _ := newApp(t)

	_, _, err := run(app, "state")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	_, _, err = run(app, "state", "--to", "-", "--state-format", "toml")
	require.Error(t, err)
}
