package export

import (
	"context"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chromeForTest returns a target when a browser is installed, skipping otherwise.
func chromeForTest(t *testing.T) *ChromeTarget {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	target := NewChromeTarget(60 * time.Second)
	if target.ExecPath != "" {
		if _, err := os.Stat(target.ExecPath); err != nil {
			t.Skipf("CHROME_PATH %s not usable: %v", target.ExecPath, err)
		}
		return target
	}
	for _, name := range []string{"chromium", "chromium-browser", "google-chrome", "google-chrome-stable", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			return target
		}
	}
	t.Skip("no Chrome/Chromium installed, skipping browser test")
	return nil
}

func TestChromeTarget_ExportPDF(t *testing.T) {
	target := chromeForTest(t)
	p := newTestPipeline(t, target)

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	res, err := p.Export(ctx, exportableRecord(), Options{Format: FormatPDF})
	require.NoError(t, err)

	assert.Equal(t, "%PDF", string(res.Data[:4]))
	assert.GreaterOrEqual(t, res.PageCount, 1)
	assert.Greater(t, res.ContentHeight, 0.0)
}

func TestChromeTarget_ExportPNG(t *testing.T) {
	target := chromeForTest(t)
	p := newTestPipeline(t, target)

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	res, err := p.Export(ctx, exportableRecord(), Options{Format: FormatPNG})
	require.NoError(t, err)
	require.NotEmpty(t, res.Pages)
	assert.Equal(t, len(res.Pages), res.PageCount)
}
