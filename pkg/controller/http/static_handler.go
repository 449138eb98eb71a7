package http

import (
	"io"
	"net/http"
	"os"
	"path"

	"github.com/m-mizutani/goerr/v2"
)

// StaticHandler serves the embedded UI. Paths that do not name a file get the index page.
type StaticHandler struct {
	fileSystem http.FileSystem
	index      []byte
}

// NewStaticHandler creates a handler over the given filesystem, which must contain /index.html
func NewStaticHandler(filesystem http.FileSystem) (*StaticHandler, error) {
	f, err := filesystem.Open("/index.html")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open index.html")
	}
	defer f.Close()

	index, err := io.ReadAll(f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read index.html")
	}

	return &StaticHandler{
		fileSystem: filesystem,
		index:      index,
	}, nil
}

// ServeHTTP implements http.Handler
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + r.URL.Path)

	file, err := h.fileSystem.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			h.serveIndex(w)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if stat.IsDir() {
		h.serveIndex(w)
		return
	}

	if contentType := mimeTypes[path.Ext(name)]; contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	if _, err := io.Copy(w, file); err != nil {
		http.Error(w, "Failed to serve file", http.StatusInternalServerError)
	}
}

func (h *StaticHandler) serveIndex(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.index)
}

var mimeTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "application/javascript; charset=utf-8",
	".json": "application/json; charset=utf-8",
	".png":  "image/png",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
}
