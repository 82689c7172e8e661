// Package testenv installs the fake g++ on PATH for tests that exercise
// compiler detection.
package testenv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jcchavezs/fakecc/exec"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const (
	// BinaryName is the name the fixture is installed as.
	BinaryName = "g++"
	// DefaultPackage is the package built into the fixture binary.
	DefaultPackage = "github.com/jcchavezs/fakecc/cmd/gxx"
)

type Options struct {
	// Dir is where the fixture gets installed. It must be absolute.
	Dir string
	// Aliases are extra names linked to the fixture, e.g. g++-1.0.
	Aliases []string
	// Package overrides DefaultPackage.
	Package string
	// FS is the filesystem rooted at Dir. Defaults to the OS filesystem.
	FS afero.Fs
}

// Env is an installed fixture.
type Env struct {
	Dir    string
	Binary string
}

func exeName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

// Build compiles the fixture into opts.Dir using x and links the aliases to it.
func Build(ctx context.Context, x exec.Execer, opts Options) (Env, error) {
	if !filepath.IsAbs(opts.Dir) {
		return Env{}, fmt.Errorf("install dir %q is not absolute", opts.Dir)
	}

	pkg := opts.Package
	if pkg == "" {
		pkg = DefaultPackage
	}

	fs := opts.FS
	if fs == nil {
		fs = afero.NewBasePathFs(afero.NewOsFs(), opts.Dir)
	}

	name := exeName(BinaryName)
	binary := filepath.Join(opts.Dir, name)

	x = x.WithLogFields("fixture", BinaryName)
	if _, err := x.RunX(ctx, "go", "build", "-o", binary, pkg); err != nil {
		if stderr, ok := exec.GetStderr(err); ok {
			return Env{}, fmt.Errorf("building fixture: %w: %s", err, stderr)
		}
		return Env{}, fmt.Errorf("building fixture: %w", err)
	}

	if exists, err := afero.Exists(fs, name); err != nil {
		return Env{}, fmt.Errorf("checking fixture: %w", err)
	} else if !exists {
		return Env{}, fmt.Errorf("fixture %s was not installed", binary)
	}

	if len(opts.Aliases) > 0 {
		linker, ok := fs.(afero.Linker)
		if !ok {
			return Env{}, errors.New("filesystem does not support symlinks")
		}

		for _, alias := range opts.Aliases {
			if err := linker.SymlinkIfPossible(name, exeName(alias)); err != nil {
				return Env{}, fmt.Errorf("linking alias %s: %w", alias, err)
			}
		}
	}

	x.Log(ctx, slog.LevelDebug, "fixture installed", "path", binary, "aliases", opts.Aliases)

	return Env{Dir: opts.Dir, Binary: binary}, nil
}

// Environ returns the env entries that put the fixture first on PATH.
func (e Env) Environ() []string {
	return []string{"PATH=" + e.Dir + string(os.PathListSeparator) + os.Getenv("PATH")}
}

// Execer returns x with the fixture first on PATH for spawned processes.
// Commands started by x itself are still looked up with the parent's PATH, so
// run the fixture by e.Binary or through a shell.
func (e Env) Execer(x exec.Execer) exec.Execer {
	return x.WithEnv(e.Environ()...)
}

// Setup installs the fixture in a temporary dir for the duration of the test.
func Setup(t testing.TB, aliases ...string) Env {
	t.Helper()

	dir := t.TempDir()
	env, err := Build(context.Background(), exec.NewExecer("", false), Options{Dir: dir, Aliases: aliases})
	require.NoError(t, err)

	return env
}
