package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/Dicklesworthstone/radius_viewer/pkg/logging"
)

// Preview port range tried by StartPreview when no port is given.
const (
	PreviewPortRangeStart = 9000
	PreviewPortRangeEnd   = 9100
)

// PreviewServer serves an export bundle (see Options.Bundle) over HTTP with
// caching disabled, so a re-export shows up on reload.
type PreviewServer struct {
	bundlePath string
	port       int
	server     *http.Server
}

// NewPreviewServer creates a preview server for the given bundle directory.
func NewPreviewServer(bundlePath string, port int) *PreviewServer {
	return &PreviewServer{
		bundlePath: bundlePath,
		port:       port,
	}
}

// Port returns the port the server listens on.
func (p *PreviewServer) Port() int {
	return p.port
}

// URL returns the base URL of the preview server.
func (p *PreviewServer) URL() string {
	return fmt.Sprintf("http://localhost:%d", p.port)
}

func (p *PreviewServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", noCacheMiddleware(http.FileServer(http.Dir(p.bundlePath))))
	mux.HandleFunc("/__preview__/status", p.statusHandler)
	return mux
}

// Start serves the bundle until ctx is cancelled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (p *PreviewServer) Start(ctx context.Context) error {
	if _, err := os.Stat(p.bundlePath); os.IsNotExist(err) {
		return fmt.Errorf("bundle path does not exist: %s", p.bundlePath)
	}
	if _, err := os.Stat(filepath.Join(p.bundlePath, "index.html")); os.IsNotExist(err) {
		return fmt.Errorf("no index.html found in bundle: %s", p.bundlePath)
	}

	p.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", p.port),
		Handler:           p.handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logging.Logger().Info("preview server listening", "url", p.URL(), "bundle", p.bundlePath)
		if err := p.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		return p.Stop()
	case err := <-errChan:
		return err
	}
}

// Stop gracefully stops the preview server.
func (p *PreviewServer) Stop() error {
	if p.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return p.server.Shutdown(ctx)
}

type previewStatus struct {
	Status     string `json:"status"`
	Port       int    `json:"port"`
	BundlePath string `json:"bundle_path"`
	HasIndex   bool   `json:"has_index"`
	FileCount  int    `json:"file_count"`
}

// statusHandler reports the bundle state as JSON.
func (p *PreviewServer) statusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	st := previewStatus{Status: "running", Port: p.port, BundlePath: p.bundlePath, HasIndex: true}
	if _, err := os.Stat(filepath.Join(p.bundlePath, "index.html")); os.IsNotExist(err) {
		st.HasIndex = false
	}
	filepath.WalkDir(p.bundlePath, func(path string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			st.FileCount++
		}
		return nil
	})
	json.NewEncoder(w).Encode(st)
}

// noCacheMiddleware adds headers that prevent browser caching.
func noCacheMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// FindAvailablePort returns the first port in [start, end] that accepts a
// listener.
func FindAvailablePort(start, end int) (int, error) {
	for port := start; port <= end; port++ {
		listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			listener.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port in range %d-%d", start, end)
}

// StartPreview serves bundlePath on the first free port of the preview
// range, optionally opening a browser, until ctx is cancelled. Progress
// messages go to w.
func StartPreview(ctx context.Context, w io.Writer, bundlePath string, openBrowser bool) error {
	port, err := FindAvailablePort(PreviewPortRangeStart, PreviewPortRangeEnd)
	if err != nil {
		return fmt.Errorf("could not find available port: %w", err)
	}
	server := NewPreviewServer(bundlePath, port)

	fmt.Fprintf(w, "Preview server running at %s\n", server.URL())
	fmt.Fprintf(w, "Serving: %s\n", bundlePath)
	fmt.Fprintln(w, "Press Ctrl+C to stop")

	if openBrowser {
		go func() {
			time.Sleep(500 * time.Millisecond)
			if err := OpenInBrowser(server.URL()); err != nil {
				logging.Logger().Warn("open browser", "url", server.URL(), "err", err)
			}
		}()
	}
	return server.Start(ctx)
}

// OpenInBrowser opens url with the platform's default handler.
func OpenInBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
