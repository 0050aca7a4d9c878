package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// FrontendHandler serves the built single-page app from a directory.
type FrontendHandler struct {
	root string
}

func NewFrontendHandler(root string) *FrontendHandler {
	return &FrontendHandler{root: root}
}

func (h *FrontendHandler) Index(c *gin.Context) {
	c.File(filepath.Join(h.root, "index.html"))
}

// Static serves an existing file under root for unmatched GET/HEAD requests.
func (h *FrontendHandler) Static(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		respondMessage(c, http.StatusNotFound, "Not found")
		return
	}
	clean := path.Clean("/" + c.Request.URL.Path)
	full := filepath.Join(h.root, filepath.FromSlash(clean))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		respondMessage(c, http.StatusNotFound, "Not found")
		return
	}
	c.File(full)
}
