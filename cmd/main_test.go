package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarthome-go/ueval/ueval"
	"github.com/smarthome-go/ueval/ueval/config"
)

func testSession() session {
	return session{
		cfg:    config.Default(),
		logger: zerolog.Nop(),
		color:  false,
	}
}

func writeProgram(t *testing.T, dir string, name string, source string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(source), 0o600))
	return path
}

func analyzeSource(t *testing.T, source string) ueval.Result {
	t.Helper()

	result, _, syntaxErrors := ueval.Analyze(ueval.InputProgram{
		ProgramText: source,
		Filename:    "test.java",
	}, nil, zerolog.Nop())
	require.Empty(t, syntaxErrors)
	return result
}

func TestFlushReportsKeepsOrder(t *testing.T) {
	reports := make(chan report, 3)
	reports <- report{index: 2, output: "c"}
	reports <- report{index: 0, output: "a"}
	reports <- report{index: 1, output: "b"}
	close(reports)

	var out bytes.Buffer
	flushReports(reports, &out)
	assert.Equal(t, "abc", out.String())
}

func TestRenderMethods(t *testing.T) {
	result := analyzeSource(t, `
int answer() {
	int a = 40;
	a += 2;
	return a;
}

void flag(boolean p) {
	boolean q = !true;
}`)

	assert.Equal(t, `int answer()
    a = 42
    returns 42
    (end of method is unreachable)
void flag(boolean p)
    q = false
`, renderMethods(result))
}

func TestEvalFiles(t *testing.T) {
	dir := t.TempDir()
	first := writeProgram(t, dir, "first.java", "int one() { return 1; }")
	second := writeProgram(t, dir, "second.java", "long two() { return 2L; }")

	var out bytes.Buffer
	require.NoError(t, testSession().evalFiles([]string{first, second}, &out))

	assert.Equal(t, "=== FILE: "+first+" ===\nint one()\n    returns 1\n    (end of method is unreachable)\n"+
		"=== FILE: "+second+" ===\nlong two()\n    returns (long)2\n    (end of method is unreachable)\n", out.String())
}

func TestEvalFilesReportsSyntaxErrors(t *testing.T) {
	dir := t.TempDir()
	broken := writeProgram(t, dir, "broken.java", "int one() { return }")
	fine := writeProgram(t, dir, "fine.java", "int one() { return 1; }")

	var out bytes.Buffer
	err := testSession().evalFiles([]string{broken, fine}, &out)
	require.ErrorIs(t, err, errSyntax)

	assert.Contains(t, out.String(), "=== FILE: "+broken+" ===")
	assert.Contains(t, out.String(), "=== FILE: "+fine+" ===\nint one()\n    returns 1\n")
}

func TestMissingFile(t *testing.T) {
	_, _, err := testSession().analyzeFile(filepath.Join(t.TempDir(), "missing.java"), &bytes.Buffer{}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInspectPrintsDiagnostics(t *testing.T) {
	path := writeProgram(t, t.TempDir(), "folding.java", "int f() { return 1 + 2; }")

	var out bytes.Buffer
	_, diagnostics, err := testSession().analyzeFile(path, &out, true)
	require.NoError(t, err)

	require.Len(t, diagnostics, 1)
	assert.Contains(t, out.String(), "Expression can be folded to `3`")
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestDumpMethod(t *testing.T) {
	result := analyzeSource(t, "void f(int p) { int x = 1 + 2; }")

	var out bytes.Buffer
	require.NoError(t, dumpMethod(result, result.File.Methods[0], false, &out))

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 5)
	assert.Equal(t, "void f(int p)", string(lines[0]))
	assert.Equal(t, []string{"SPAN", "EXPRESSION", "KIND", "VALUE"}, fields(lines[1]))
	assert.Equal(t, []string{"Int", "3"}, fields(lines[2])[len(fields(lines[2]))-2:])
	assert.Equal(t, []string{"Int", "1"}, fields(lines[3])[len(fields(lines[3]))-2:])
	assert.Equal(t, []string{"Int", "2"}, fields(lines[4])[len(fields(lines[4]))-2:])
}

func TestDumpMethodRaw(t *testing.T) {
	result := analyzeSource(t, "int f() { if (false) { return 1; } return 2; }")

	var out bytes.Buffer
	require.NoError(t, dumpMethod(result, result.File.Methods[0], true, &out))

	assert.Contains(t, out.String(), "not evaluated")
	assert.Contains(t, out.String(), "values.IntConstant")
}

func TestUseColor(t *testing.T) {
	assert.True(t, useColor(config.ColorAlways, os.Stdout))
	assert.False(t, useColor(config.ColorNever, os.Stdout))
}

func TestLoggerIsDisabledWithoutTrace(t *testing.T) {
	var out bytes.Buffer
	logger := newLogger(config.Default(), &out, false)
	logger.Error().Msg("hidden")
	assert.Empty(t, out.String())

	cfg := config.Default()
	cfg.Output.Trace = true
	logger = newLogger(cfg, &out, false)
	logger.Debug().Msg("visible")
	assert.Contains(t, out.String(), "visible")
}

func fields(line []byte) []string {
	output := make([]string, 0)
	for _, field := range bytes.Fields(line) {
		output = append(output, string(field))
	}
	return output
}
