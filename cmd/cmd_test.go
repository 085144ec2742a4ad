package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// resetFlags puts every flag back to its default so tests don't leak
// values into each other through the shared command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// writeConfig writes a config file into a temp dir and returns its path.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".taskrank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

type cmdResult struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command with args, stdin and a fresh config.
func execute(t *testing.T, stdin string, args ...string) cmdResult {
	t.Helper()
	return executeContext(t, context.Background(), stdin, args...)
}

func executeContext(t *testing.T, ctx context.Context, stdin string, args ...string) cmdResult {
	t.Helper()

	viper.Reset()
	resetFlags(rootCmd)
	GlobalAppConfig = nil
	t.Cleanup(func() { viper.Reset() })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	var in io.Reader = strings.NewReader(stdin)
	rootCmd.SetIn(in)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	return cmdResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// withInputFs swaps the filesystem task files are read from.
func withInputFs(t *testing.T, fs afero.Fs) {
	t.Helper()
	prev := inputFs
	inputFs = fs
	t.Cleanup(func() { inputFs = prev })
}
