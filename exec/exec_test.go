package exec

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFS(t *testing.T) {
	dir := t.TempDir()
	e := NewExecer(dir, false)
	_, err := e.RunX(context.Background(), "touch", "a.txt")
	require.NoError(t, err)

	fs := e.FS()

	t.Run("exists", func(t *testing.T) {
		exists, err := afero.Exists(fs, "a.txt")
		require.True(t, exists)
		require.NoError(t, err)
	})

	t.Run("do not exist", func(t *testing.T) {
		exists, err := afero.Exists(fs, "b.txt")
		require.False(t, exists)
		require.NoError(t, err)
	})
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	e := NewExecer(t.TempDir(), false)

	t.Run("keeps non zero exit code", func(t *testing.T) {
		res, err := e.Run(ctx, "sh", "-c", "echo out; echo err >&2; exit 3")
		require.NoError(t, err)
		require.Equal(t, 3, res.ExitCode())
		require.Equal(t, "out\n", res.Stdout())
		require.Equal(t, "out", res.TrimStdout())
		require.Equal(t, "err\n", res.Stderr())
		require.False(t, res.Cancelled())
	})

	t.Run("fails on unknown command", func(t *testing.T) {
		_, err := e.Run(ctx, "fakecc-command-that-does-not-exist")
		require.Error(t, err)
		require.Contains(t, err.Error(), "fakecc-command-that-does-not-exist")
	})
}

func TestRunX(t *testing.T) {
	ctx := context.Background()
	e := NewExecer(t.TempDir(), false)

	t.Run("returns stdout", func(t *testing.T) {
		out, err := e.RunX(ctx, "echo", "g++")
		require.NoError(t, err)
		require.Equal(t, "g++\n", out)
	})

	t.Run("returns exec error on non zero exit code", func(t *testing.T) {
		_, err := e.RunX(ctx, "sh", "-c", "echo bad flag >&2; exit 2")
		require.Error(t, err)
		require.Equal(t, "sh -c echo bad flag >&2; exit 2: exit code 2", err.Error())

		stderr, ok := GetStderr(err)
		require.True(t, ok)
		require.Equal(t, "bad flag\n", stderr)

		code, ok := GetExitCode(err)
		require.True(t, ok)
		require.Equal(t, 2, code)
	})
}

func TestRunWithStdinX(t *testing.T) {
	e := NewExecer(t.TempDir(), false)
	out, err := e.RunWithStdinX(context.Background(), strings.NewReader("int main() {}\n"), "cat")
	require.NoError(t, err)
	require.Equal(t, "int main() {}\n", out)
}

func TestWithEnv(t *testing.T) {
	ctx := context.Background()
	e := NewExecer(t.TempDir(), false)

	withEnv := e.WithEnv("FAKECC_A=1").WithEnv("FAKECC_B=2")
	out, err := withEnv.RunX(ctx, "sh", "-c", `printf "%s-%s" "$FAKECC_A" "$FAKECC_B"`)
	require.NoError(t, err)
	require.Equal(t, "1-2", out)

	t.Run("does not modify the parent", func(t *testing.T) {
		out, err := e.RunX(ctx, "sh", "-c", `printf "%s" "$FAKECC_A"`)
		require.NoError(t, err)
		require.Empty(t, out)
	})
}

func TestLog(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	e := NewExecerWithLogger(t.TempDir(), false, logger).WithLogFields("fixture", "g++")
	_, err := e.RunX(context.Background(), "true")
	require.NoError(t, err)

	logs := buf.String()
	require.Contains(t, logs, "running command")
	require.Contains(t, logs, "cmd=true")
	require.Contains(t, logs, "fixture=g++")
}
