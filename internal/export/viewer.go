package export

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/banshee-data/scattermap/internal/monitoring"
)

// Viewer shows a figure to the user.
type Viewer interface {
	View(fig Interactive) error
}

// BrowserViewer writes the interactive page to a temporary file and opens it.
type BrowserViewer struct {
	// Dir holds the page. Empty means os.TempDir().
	Dir string
	// Open launches the page. Nil means OpenBrowser.
	Open func(path string) error
}

// View implements Viewer.
func (v *BrowserViewer) View(fig Interactive) error {
	f, err := os.CreateTemp(v.Dir, "scattermap-*.html")
	if err != nil {
		return fmt.Errorf("%w: creating view page: %v", ErrIOWrite, err)
	}
	werr := fig.WriteHTML(f)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		_ = os.Remove(f.Name())
		return fmt.Errorf("%w: writing view page: %v", ErrIOWrite, werr)
	}

	open := v.Open
	if open == nil {
		open = OpenBrowser
	}
	monitoring.Logf("opening %s", f.Name())
	if err := open(f.Name()); err != nil {
		return fmt.Errorf("opening %s: %w", f.Name(), err)
	}
	return nil
}

// OpenBrowser opens target with the platform's default handler.
func OpenBrowser(target string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{target}
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = "xdg-open"
		args = []string{target}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", target}
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return exec.Command(cmd, args...).Start()
}
