package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/roofingmaterials/roofserve"
)

// DefaultPrefix is the URL path segment both resources are published under.
const DefaultPrefix = "/RoofingMaterials"

type Service interface {
	Image(ctx context.Context, path string) (roofserve.Asset, io.ReadSeekCloser, error)
	Companies(ctx context.Context) (roofserve.Asset, io.ReadSeekCloser, error)
}

type HandlerConfig struct {
	// Prefix must start with "/" and must not end with "/". Empty means DefaultPrefix.
	Prefix string
	// Port is only used to render the information page.
	Port int
	// RequestTimeout bounds non-streaming requests; file transfers are
	// exempt. Zero disables it.
	RequestTimeout time.Duration
}

// Handler provides HTTP handlers for the image directory and the companies document.
type Handler struct {
	config  HandlerConfig
	service Service
}

// NewHandler creates a new Handler with the given configuration and service.
func NewHandler(config *HandlerConfig, service Service) *Handler {
	cfg := *config
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	return &Handler{
		config:  cfg,
		service: service,
	}
}

// Router returns an http.Handler with every route configured.
// Every response, including 404 and 405, carries Access-Control-Allow-Origin: *.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(AllowAllOrigins)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Content-Length", "Content-Range", RequestIDHeader},
	}))
	r.Use(middleware.GetHead)

	r.NotFound(h.handleNotFound)
	r.MethodNotAllowed(h.handleMethodNotAllowed)

	r.Group(func(r chi.Router) {
		if h.config.RequestTimeout > 0 {
			r.Use(middleware.Timeout(h.config.RequestTimeout))
		}
		r.Get("/", h.handleIndex)
	})

	// File transfers may outlast RequestTimeout once the 200 is sent. They
	// are bounded by the server's WriteTimeout and stop when the client goes.
	r.Get(h.imagesPrefix()+"*", h.handleImage)
	r.Get(h.config.Prefix+"/"+roofserve.CompaniesDocument, h.handleCompanies)

	return r
}

func (h *Handler) imagesPrefix() string {
	return h.config.Prefix + "/Images/"
}

func (h *Handler) handleImage(w http.ResponseWriter, r *http.Request) {
	// r.URL.Path is already percent-decoded, so encoded traversal
	// sequences are caught by the same validation.
	path, ok := strings.CutPrefix(r.URL.Path, h.imagesPrefix())
	if !ok {
		h.handleNotFound(w, r)
		return
	}

	asset, content, err := h.service.Image(r.Context(), path)
	if err != nil {
		if errors.Is(err, roofserve.ErrNotFound) || errors.Is(err, roofserve.ErrInvalidInput) {
			slog.Debug("image not found", "path", path, "err", err)
			WriteError(w, http.StatusNotFound, "not_found", "Image not found")
		} else {
			HandleError(w, err)
		}
		return
	}

	serveAsset(w, r, asset, content)
}

func (h *Handler) handleCompanies(w http.ResponseWriter, r *http.Request) {
	asset, content, err := h.service.Companies(r.Context())
	if err != nil {
		if errors.Is(err, roofserve.ErrNotFound) {
			writeCompaniesNotFound(w)
		} else {
			HandleError(w, err)
		}
		return
	}

	serveAsset(w, r, asset, content)
}

func (h *Handler) handleIndex(w http.ResponseWriter, _ *http.Request) {
	writeIndex(w, h.config.Prefix, h.config.Port)
}

func (h *Handler) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeDefaultNotFound(w)
}

func (h *Handler) handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
}

// serveAsset streams content and closes it. A read failure mid-transfer
// aborts the response and is logged.
func serveAsset(w http.ResponseWriter, r *http.Request, asset roofserve.Asset, content io.ReadSeekCloser) {
	defer func() { _ = content.Close() }()

	w.Header().Set("Content-Type", asset.ContentType)

	tr := &transferReader{ReadSeeker: content}
	http.ServeContent(w, r, asset.Path, asset.ModTime, tr)

	if tr.err != nil {
		slog.Warn("transfer aborted",
			"path", asset.Path,
			"request_id", GetRequestID(r.Context()),
			"err", tr.err,
		)
	}
}

// transferReader records the first non-EOF read error, which
// http.ServeContent otherwise discards.
type transferReader struct {
	io.ReadSeeker
	err error
}

func (t *transferReader) Read(p []byte) (int, error) {
	n, err := t.ReadSeeker.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && t.err == nil {
		t.err = err
	}
	return n, err
}
