// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treextract/internal/app"
)

func write(t *testing.T, dir, fn, data string) string {
	t.Helper()
	path := filepath.Join(dir, fn)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func run(argv ...string) (int, string, string) {
	var out, errBuf bytes.Buffer
	code := app.Run(argv, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestUnnamedNewickTreesGetPrefixedNames(t *testing.T) {
	dir := t.TempDir()
	in := write(t, dir, "boot.nwk", "(A,B);\n(B,C);\n(C,D);\n")
	outDir := t.TempDir()

	code, out, errOut := run("-i", in, "-f", "newick", "-p", "rep", "-o", outDir)
	require.Zero(t, code, "stderr: %s", errOut)
	assert.Empty(t, out, "nothing goes to stdout on a normal run")

	assert.Equal(t, "(A,B);", readFile(t, filepath.Join(outDir, "rep_0.tre")))
	assert.Equal(t, "(B,C);", readFile(t, filepath.Join(outDir, "rep_1.tre")))
	assert.Equal(t, "(C,D);", readFile(t, filepath.Join(outDir, "rep_2.tre")))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestNexusTreesKeepEmbeddedNames(t *testing.T) {
	dir := t.TempDir()
	in := write(t, dir, "trees.nex",
		"#NEXUS\nBEGIN TREES;\nTRANSLATE 1 A, 2 B, 3 C;\nTREE bestTree = [&R] ((1,2),3);\nEND;\n")
	outDir := t.TempDir()

	code, _, errOut := run("-i", in, "-f", "nexus", "-o", outDir)
	require.Zero(t, code, "stderr: %s", errOut)
	assert.Equal(t, "((A,B),C);", readFile(t, filepath.Join(outDir, "bestTree.tre")))
}

func TestNexmlEndToEnd(t *testing.T) {
	dir := t.TempDir()
	in := write(t, dir, "trees.xml",
		`<nexml><trees><tree id="t1" label="ml">
		   <node id="r" root="true"/><node id="a" label="A"/><node id="b" label="B"/>
		   <edge source="r" target="a" length="1"/><edge source="r" target="b" length="2"/>
		 </tree></trees></nexml>`)
	outDir := t.TempDir()

	code, _, errOut := run("-i", in, "-f", "nexml", "-o", outDir)
	require.Zero(t, code, "stderr: %s", errOut)
	assert.Equal(t, "(A:1,B:2);", readFile(t, filepath.Join(outDir, "ml.tre")))
}

func TestGzipInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boot.nwk.gz")
	fh, err := os.Create(path)
	require.NoError(t, err)
	gw := gzip.NewWriter(fh)
	_, err = gw.Write([]byte("(A,B);"))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, fh.Close())

	outDir := t.TempDir()
	code, _, errOut := run("-i", path, "-f", "newick", "-o", outDir)
	require.Zero(t, code, "stderr: %s", errOut)
	assert.Equal(t, "(A,B);", readFile(t, filepath.Join(outDir, "tree_0.tre")))
}

func TestZeroTreesIsExitOne(t *testing.T) {
	dir := t.TempDir()
	in := write(t, dir, "empty.nwk", "  \n\t\n")
	outDir := t.TempDir()

	code, out, errOut := run("-i", in, "-f", "newick", "-o", outDir)
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "no trees were found")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no files may be written")
}

func TestUnknownFormatFailsBeforeAnyIO(t *testing.T) {
	// The input path does not exist; an open attempt would surface as a
	// different error, so reaching the format diagnostic proves the gate
	// runs first.
	code, out, errOut := run("-i", filepath.Join(t.TempDir(), "absent.tre"), "-f", "xyz")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, `invalid input format: "xyz"`)
	for _, name := range []string{"newick", "nexus", "nexml"} {
		assert.Contains(t, errOut, name)
	}
	assert.NotContains(t, errOut, "no such file")
}

func TestParseFailureIsExitOne(t *testing.T) {
	dir := t.TempDir()
	in := write(t, dir, "broken.nwk", "((A,B);\n")
	code, _, errOut := run("-i", in, "-f", "newick", "-o", t.TempDir())
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "newick")
}

func TestMissingRequiredOption(t *testing.T) {
	code, _, errOut := run("-f", "newick")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "required option, --input, missing")
}

func TestMissingInputFileIsExitOne(t *testing.T) {
	code, _, errOut := run("-i", filepath.Join(t.TempDir(), "absent.nwk"), "-f", "newick")
	assert.Equal(t, 1, code)
	assert.NotEmpty(t, errOut)
}

func TestMissingOutDirIsExitOne(t *testing.T) {
	dir := t.TempDir()
	in := write(t, dir, "boot.nwk", "(A,B);")
	code, _, errOut := run("-i", in, "-f", "newick", "-o", filepath.Join(dir, "absent"))
	assert.Equal(t, 1, code)
	assert.NotEmpty(t, errOut)
}

func TestHelpGoesToStdout(t *testing.T) {
	code, out, errOut := run("--help")
	assert.Zero(t, code)
	assert.Contains(t, out, "Usage:")
	assert.Empty(t, errOut)
}

func TestListFormats(t *testing.T) {
	code, out, _ := run("--list-formats")
	assert.Zero(t, code)
	assert.Equal(t, "newick\nnexus\nnexml\n", out)
}

func TestVersion(t *testing.T) {
	code, out, _ := run("--version")
	assert.Zero(t, code)
	assert.Contains(t, out, "treextract version")
}

func TestNameCollisionLastWriteWins(t *testing.T) {
	// Two nexus trees with the same embedded name resolve to one file.
	dir := t.TempDir()
	in := write(t, dir, "dup.nex",
		"#NEXUS\nBEGIN TREES;\nTREE t = (A,B);\nTREE t = (C,D);\nEND;\n")
	outDir := t.TempDir()

	code, _, errOut := run("-i", in, "-f", "nexus", "-o", outDir)
	require.Zero(t, code, "stderr: %s", errOut)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "(C,D);", readFile(t, filepath.Join(outDir, "t.tre")))
}
