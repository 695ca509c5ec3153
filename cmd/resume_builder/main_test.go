package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/app"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/storage"
)

// resetFlags restores every flag variable so commands do not leak state between runs.
func resetFlags() {
	configPath, dataDirFlag, verboseFlag = "", "", false
	serveAddr, serveUpload = "", false
	renderFormat, renderOutputFile, renderPrint = "html", "", false
	exportFormat, exportOutputDir, exportUpload = "pdf", "", false
	dumpFormat, dumpOutputFile = "json", ""
	templatesSet = ""
	clearYes = false
}

// execute runs the CLI against dataDir and returns stdout and stderr.
func execute(t *testing.T, dataDir string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("S3_BUCKET", "")
	t.Setenv("RESUME_OUTPUT_DIR", t.TempDir())
	resetFlags()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--data-dir", dataDir}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func fixture(name string) string {
	return filepath.Join("..", "..", "testdata", "valid", name)
}

func TestTemplatesCommand(t *testing.T) {
	dir := t.TempDir()

	out, _, err := execute(t, dir, "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "TEMPLATES")
	assert.Contains(t, out, "* modern-professional")

	out, _, err = execute(t, dir, "templates", "--set", "ats-devops")
	require.NoError(t, err)
	assert.Contains(t, out, "Template set to devops")
	assert.Contains(t, out, "* devops")

	_, _, err = execute(t, dir, "templates", "--set", "no-such-template")
	assert.Error(t, err)
}

func TestImportShowAndDump(t *testing.T) {
	dir := t.TempDir()

	out, _, err := execute(t, dir, "import", fixture("resume_record.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "Imported")
	assert.Contains(t, out, "Jane Doe")

	out, _, err = execute(t, dir, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "(technical-it)")

	out, _, err = execute(t, dir, "dump")
	require.NoError(t, err)
	assert.Contains(t, out, `"fullName":"Jane Doe"`)

	out, _, err = execute(t, dir, "dump", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "fullName: Jane Doe")
}

func TestImport_LegacyRecord(t *testing.T) {
	dir := t.TempDir()

	_, _, err := execute(t, dir, "import", fixture("legacy_record.json"))
	require.NoError(t, err)

	out, _, err := execute(t, dir, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "John Smith")
	assert.Contains(t, out, "(devops)")
	assert.Contains(t, out, "SRE @ Initech")
}

func TestImport_YAMLRoundTrip(t *testing.T) {
	src := t.TempDir()
	_, _, err := execute(t, src, "import", fixture("resume_record.json"))
	require.NoError(t, err)

	yamlFile := filepath.Join(t.TempDir(), "resume.yaml")
	_, _, err = execute(t, src, "dump", "--format", "yaml", "--out", yamlFile)
	require.NoError(t, err)

	dst := t.TempDir()
	_, _, err = execute(t, dst, "import", yamlFile)
	require.NoError(t, err)

	a, _, err := execute(t, src, "dump")
	require.NoError(t, err)
	b, _, err := execute(t, dst, "dump")
	require.NoError(t, err)
	assert.JSONEq(t, a, b)
}

func TestImport_RejectsInvalidFile(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"schemaVersion": 1, "templateId": 5}`), 0644))

	_, _, err := execute(t, t.TempDir(), "import", bad)
	assert.Error(t, err)

	_, _, err = execute(t, t.TempDir(), "import", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	_, _, err := execute(t, dir, "import", fixture("resume_record.json"))
	require.NoError(t, err)

	out, _, err := execute(t, dir, "render", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Doe")
	assert.NotContains(t, out, "<div")

	out, _, err = execute(t, dir, "render", "--format", "document", "--print")
	require.NoError(t, err)
	assert.Contains(t, out, "pdf-resume")
	assert.Contains(t, out, "window.print()")

	outFile := filepath.Join(t.TempDir(), "preview.html")
	_, _, err = execute(t, dir, "render", "--out", outFile)
	require.NoError(t, err)
	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Jane Doe")

	_, _, err = execute(t, dir, "render", "--format", "docx")
	assert.Error(t, err)
}

func TestExportCommand_RequiresName(t *testing.T) {
	_, _, err := execute(t, t.TempDir(), "export")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "full name")

	_, _, err = execute(t, t.TempDir(), "export", "--format", "gif")
	assert.Error(t, err)

	_, _, err = execute(t, t.TempDir(), "export", "--upload")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3")
}

func TestExportFailure_WritesPrintFallback(t *testing.T) {
	resetFlags()
	engine, err := rendering.NewEngine()
	require.NoError(t, err)
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctrl := app.New(engine, store)
	t.Cleanup(func() { ctrl.Close() }) //nolint:errcheck
	require.NoError(t, ctrl.SetPersonal("fullName", "Jane Doe"))

	exportOutputDir = filepath.Join(t.TempDir(), "not", "created", "yet")
	var stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetErr(&stderr)

	err = exportFailure(cmd, &session{ctrl: ctrl}, &export.PipelineError{
		Stage:        export.StageLoad,
		Cause:        errors.New("chrome crashed"),
		FallbackHTML: "<html><script>window.print()</script></html>",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chrome crashed")
	assert.NotContains(t, err.Error(), "could not be written")

	data, err := os.ReadFile(filepath.Join(exportOutputDir, "Jane_Doe_Resume_print.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "window.print()")
	assert.Contains(t, stderr.String(), "print it to PDF")
}

func TestClearCommand(t *testing.T) {
	dir := t.TempDir()
	_, _, err := execute(t, dir, "import", fixture("resume_record.json"))
	require.NoError(t, err)

	_, _, err = execute(t, dir, "clear")
	assert.Error(t, err, "confirmation is required")

	out, _, err := execute(t, dir, "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "cleared")

	out, _, err = execute(t, dir, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "(no name)")
}

func TestShow_WarnsAboutCorruptData(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), storage.RecordKey, []byte("{not json")))

	_, stderr, err := execute(t, dir, "show")
	require.NoError(t, err)
	assert.Contains(t, stderr, "could not be read")

	_, stderr, err = execute(t, dir, "show")
	require.NoError(t, err)
	assert.Empty(t, stderr, "corrupt data was removed on the first load")
}
