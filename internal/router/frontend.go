package router

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gold-pos/internal/config"
)

// Frontend serves the built SPA in production and proxies to the dev asset server otherwise.
func Frontend(cfg *config.Config) gin.HandlerFunc {
	if cfg.IsProduction() {
		return StaticSPA(cfg.Frontend.StaticDir)
	}

	target, err := url.Parse(cfg.Frontend.DevAssetURL)
	if err != nil || target.Host == "" {
		logrus.WithError(err).WithField("url", cfg.Frontend.DevAssetURL).
			Warn("invalid DEV_ASSET_URL, serving static files instead")
		return StaticSPA(cfg.Frontend.StaticDir)
	}
	return DevProxy(target)
}

// StaticSPA serves files from dir. Paths that are not files get index.html so the
// client-side router can take over.
func StaticSPA(dir string) gin.HandlerFunc {
	index := filepath.Join(dir, "index.html")
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Status(http.StatusNotFound)
			return
		}

		name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+c.Request.URL.Path)))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			c.File(name)
			return
		}
		c.File(index)
	}
}

func DevProxy(target *url.URL) gin.HandlerFunc {
	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logrus.WithError(err).WithField("path", r.URL.Path).Warn("dev asset server unreachable")
		w.WriteHeader(http.StatusBadGateway)
	}

	return func(c *gin.Context) {
		proxy.ServeHTTP(c.Writer, c.Request)
	}
}
