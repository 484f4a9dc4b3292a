package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lattice-substrate/json-parse/jsonerr"
	"github.com/lattice-substrate/json-parse/jsontoken"
)

type cliResult struct {
	exitCode int
	stdout   string
	stderr   string
}

func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return cliResult{exitCode: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestWriteClassifiedErrorWrapped(t *testing.T) {
	inner := jsonerr.New(jsonerr.InvalidLiteral, 3, "bad literal")
	err := fmt.Errorf("outer: %w", inner)
	var stderr bytes.Buffer
	code := writeClassifiedError(&stderr, err)
	require.Equal(t, jsonerr.InvalidLiteral.ExitCode(), code)
	require.Contains(t, stderr.String(), "INVALID_LITERAL at byte 3")
}

func TestWriteClassifiedErrorExitError(t *testing.T) {
	var stderr bytes.Buffer
	code := writeClassifiedError(&stderr, internalf("disk on fire"))
	require.Equal(t, exitInternal, code)
	require.Equal(t, "error: disk on fire\n", stderr.String())
}

func TestWriteClassifiedErrorFallback(t *testing.T) {
	var stderr bytes.Buffer
	code := writeClassifiedError(&stderr, errors.New("unknown flag: --bogus"))
	require.Equal(t, exitInvalid, code)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWriteClassifiedErrorWriteFailure(t *testing.T) {
	require.Equal(t, exitInternal, writeClassifiedError(failingWriter{}, errors.New("x")))
}

func TestNoCommand(t *testing.T) {
	res := runCLI(t, "")
	require.Equal(t, exitInvalid, res.exitCode)
	require.Contains(t, res.stderr, "missing command")
}

func TestUnknownCommand(t *testing.T) {
	res := runCLI(t, "", "canonicalize")
	require.Equal(t, exitInvalid, res.exitCode)
}

func TestUnknownFlag(t *testing.T) {
	res := runCLI(t, "1", "parse", "--bogus")
	require.Equal(t, exitInvalid, res.exitCode)
	require.Contains(t, res.stderr, "bogus")
}

func TestParseStdin(t *testing.T) {
	res := runCLI(t, ` {"b":[1,2.5,"x"],"a":null,"a":true} `, "parse")
	require.Equal(t, exitSuccess, res.exitCode, res.stderr)
	require.Equal(t, `{"a":true,"b":[1,2.5,"x"]}`+"\n", res.stdout)
}

func TestParseDashReadsStdin(t *testing.T) {
	res := runCLI(t, `[9223372036854775808,1e400,"<&>"]`, "parse", "-")
	require.Equal(t, exitSuccess, res.exitCode, res.stderr)
	require.Equal(t, `["9223372036854775808","1e400","<&>"]`+"\n", res.stdout)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBF{\"k\":\"\\u00e9\"}"), 0o600))

	res := runCLI(t, "", "parse", path)
	require.Equal(t, exitSuccess, res.exitCode, res.stderr)
	require.Equal(t, `{"k":"é"}`+"\n", res.stdout)
}

func TestParseInvalidInput(t *testing.T) {
	res := runCLI(t, `[1,2,]`, "parse")
	require.Equal(t, exitInvalid, res.exitCode)
	require.Empty(t, res.stdout)
	require.Contains(t, res.stderr, "MISSING_SEPARATOR at byte 5")
}

func TestParseMissingFile(t *testing.T) {
	res := runCLI(t, "", "parse", filepath.Join(t.TempDir(), "absent.json"))
	require.Equal(t, exitInvalid, res.exitCode)
	require.Contains(t, res.stderr, "reading input")
}

func TestParseTooManyArgs(t *testing.T) {
	res := runCLI(t, "", "parse", "a.json", "b.json")
	require.Equal(t, exitInvalid, res.exitCode)
}

func TestParseMaxInputSize(t *testing.T) {
	res := runCLI(t, `[1,2,3]`, "parse", "--max-input-size=4")
	require.Equal(t, exitInvalid, res.exitCode)
	require.Contains(t, res.stderr, "exceeds maximum size")
}

func TestParseDepthBomb(t *testing.T) {
	depth := jsontoken.MaxDepth + 1
	res := runCLI(t, strings.Repeat("[", depth)+strings.Repeat("]", depth), "parse")
	require.Equal(t, exitInvalid, res.exitCode)
	require.Contains(t, res.stderr, "EXCEEDED_NESTING_LIMIT")
}

func TestParseSummary(t *testing.T) {
	res := runCLI(t, `{"a":[1,2.5,"s",null],"b":{"c":true}}`, "parse", "--summary")
	require.Equal(t, exitSuccess, res.exitCode, res.stderr)
	require.Equal(t,
		"root=object values=9 depth=2 null=1 bool=1 int=1 double=1 string=1 array=1 object=2\n",
		res.stdout)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"a":1}`), 0o600))
	require.NoError(t, os.WriteFile(bad, []byte(`{"a":1} x`), 0o600))

	res := runCLI(t, "", "validate", "--workers=2", good, bad)
	require.Equal(t, exitInvalid, res.exitCode)
	require.Equal(t, "valid\t"+good+"\tobject\ninvalid\t"+bad+"\tTRAILING_GARBAGE\t8\n", res.stdout)
	require.Contains(t, res.stderr, "1 of 2 inputs failed validation")
	require.Contains(t, res.stderr, `msg="input invalid"`)
}

func TestValidateAllValidWithMetrics(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	metrics := filepath.Join(dir, "run.prom")
	require.NoError(t, os.WriteFile(in, []byte(`[true]`), 0o600))

	res := runCLI(t, "null", "validate", "--log-level=error", "--metrics-file", metrics, in, "-")
	require.Equal(t, exitSuccess, res.exitCode, res.stderr)
	require.Equal(t, "valid\t"+in+"\tarray\nvalid\t-\tnull\n", res.stdout)
	require.Empty(t, res.stderr)

	out, err := os.ReadFile(metrics)
	require.NoError(t, err)
	require.Contains(t, string(out), "jsonparse_input_bytes_total 10")
}

func TestValidateRequiresInput(t *testing.T) {
	res := runCLI(t, "", "validate")
	require.Equal(t, exitInvalid, res.exitCode)
}

func TestValidateRejectsBadConfig(t *testing.T) {
	res := runCLI(t, "", "validate", "--workers=0", "x.json")
	require.Equal(t, exitInvalid, res.exitCode)
	require.Contains(t, res.stderr, "workers must be positive")
}
