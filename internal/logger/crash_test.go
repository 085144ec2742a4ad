package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withMemFs points crash output at an in-memory filesystem.
func withMemFs(t *testing.T) (afero.Fs, *bytes.Buffer) {
	t.Helper()
	fs := afero.NewMemMapFs()
	var stderr bytes.Buffer

	origFs, origErr, origCtx := crashFs, crashStderr, globalContext
	crashFs, crashStderr = fs, &stderr
	globalContext = &CrashContext{}
	t.Cleanup(func() {
		crashFs, crashStderr, globalContext = origFs, origErr, origCtx
	})
	return fs, &stderr
}

func TestCrashHandler_SetContext(t *testing.T) {
	withMemFs(t)

	SetBasePath("/tmp/test-taskrank")
	SetVersion("1.0.0-test")
	SetCommand("analyze")
	SetLastInput("  [{\"title\":\"A\"}]  ")
	SetStrategy("smart")

	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	assert.Equal(t, "/tmp/test-taskrank", globalContext.basePath)
	assert.Equal(t, "1.0.0-test", globalContext.version)
	assert.Equal(t, "analyze", globalContext.command)
	assert.Equal(t, `[{"title":"A"}]`, globalContext.lastInput)
	assert.Equal(t, "smart", globalContext.strategy)
}

func TestCrashHandler_SetLastInput_Truncation(t *testing.T) {
	withMemFs(t)

	SetLastInput(strings.Repeat("a", 5000))

	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()
	assert.LessOrEqual(t, len(globalContext.lastInput), 2100)
	assert.Contains(t, globalContext.lastInput, "[truncated]")
}

func TestCrashHandler_FormatCrashLog(t *testing.T) {
	formatted := formatCrashLog(CrashLog{
		Timestamp:  time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		Version:    "1.0.0",
		Command:    "analyze",
		Strategy:   "deadline",
		PanicValue: "test panic",
		StackTrace: "goroutine 1 [running]:\nmain.main()",
		LastInput:  "[]",
		GoVersion:  "go1.24.3",
		OS:         "darwin",
		Arch:       "arm64",
	})

	for _, expected := range []string{
		"TASKRANK CRASH LOG",
		"Timestamp: 2025-01-01T12:00:00Z",
		"Version:   1.0.0",
		"Command:   analyze",
		"Strategy:  deadline",
		"OS/Arch:   darwin/arm64",
		"PANIC VALUE",
		"STACK TRACE",
		"goroutine 1 [running]",
		"LAST TASK INPUT",
		"END OF CRASH LOG",
	} {
		assert.Contains(t, formatted, expected)
	}
}

func TestCrashHandler_WriteAndList(t *testing.T) {
	fs, _ := withMemFs(t)
	SetBasePath("/home/u/.taskrank")

	path, err := writeCrashLog(createCrashLog("boom"))
	require.NoError(t, err)

	exists, err := afero.DirExists(fs, filepath.Join("/home/u/.taskrank", CrashLogDir))
	require.NoError(t, err)
	assert.True(t, exists)

	logs, err := ListCrashLogs()
	require.NoError(t, err)
	require.Equal(t, []string{path}, logs)

	content, err := ReadCrashLog(path)
	require.NoError(t, err)
	assert.Contains(t, content, "boom")
}

func TestCrashHandler_KeepsMostRecent(t *testing.T) {
	fs, _ := withMemFs(t)
	SetBasePath("/base")
	dir := filepath.Join("/base", CrashLogDir)

	for i := range MaxCrashLogs + 5 {
		name := fmt.Sprintf("crash_20250101_1200%02d.000.log", i)
		require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, name), []byte("old"), 0o644))
	}

	_, err := writeCrashLog(createCrashLog("new"))
	require.NoError(t, err)

	logs, err := ListCrashLogs()
	require.NoError(t, err)
	assert.Len(t, logs, MaxCrashLogs)
	assert.NotContains(t, logs, filepath.Join(dir, "crash_20250101_120000.000.log"), "oldest removed first")
}

func TestCrashHandler_GetCrashLogPath(t *testing.T) {
	withMemFs(t)
	SetBasePath("/tmp/test")

	path := getCrashLogPath(time.Date(2025, 1, 15, 14, 30, 45, 0, time.UTC))
	assert.Equal(t, filepath.Join("/tmp/test", "crash_logs", "crash_20250115_143045.000.log"), path)
}

func TestCrashHandler_DefaultBasePath(t *testing.T) {
	withMemFs(t)
	assert.Equal(t, filepath.Join(".taskrank", "crash_logs"), getCrashLogDir())
}

func TestHandlePanic_WritesLogAndExits(t *testing.T) {
	_, stderr := withMemFs(t)
	SetBasePath("/crash")
	SetCommand("watch")

	var code int
	origExit := exit
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = origExit })

	func() {
		defer HandlePanic()
		panic("kaboom")
	}()

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "crash log has been saved")

	logs, err := ListCrashLogs()
	require.NoError(t, err)
	require.Len(t, logs, 1)
	content, err := ReadCrashLog(logs[0])
	require.NoError(t, err)
	assert.Contains(t, content, "kaboom")
	assert.Contains(t, content, "Command:   watch")
}

func TestSetup(t *testing.T) {
	orig := slog.Default()
	t.Cleanup(func() { slog.SetDefault(orig) })

	var buf bytes.Buffer
	l := Setup(&buf, false, "text")
	l.Debug("hidden")
	l.Warn("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "k=v")

	buf.Reset()
	Setup(&buf, true, "json")
	slog.Debug("visible", "run_id", "r1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "visible", rec["msg"])
	assert.Equal(t, "r1", rec["run_id"])
}
