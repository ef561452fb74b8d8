package server

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"prodstore/internal/blobstore"
	"prodstore/internal/config"
	"prodstore/internal/store"
)

const (
	apiTokenEnvKey         = "PRODSTORE_API_TOKEN"
	allowRemoteEnvKey      = "PRODSTORE_ALLOW_REMOTE"
	readHeaderTimeout      = 5 * time.Second
	readTimeout            = 60 * time.Second
	writeTimeout           = 60 * time.Second
	idleTimeout            = 60 * time.Second
	importConcurrencyLimit = 1
	uploadConcurrencyLimit = 4

	loginMaxFailures = 5
	loginWindow      = time.Minute
	loginBlockFor    = 5 * time.Minute
)

// Server wraps HTTP handlers for the prodstore API.
type Server struct {
	addr          string
	store         store.CatalogStore
	blobs         blobstore.BlobStore
	catalog       *CatalogService
	authService   *AuthService
	logger        *slog.Logger
	apiToken      string
	dbPath        string
	version       string
	uploads       config.UploadConfig
	loginLimiter  *loginRateLimiter
	importLimiter chan struct{}
	uploadLimiter chan struct{}
}

// Options carries the dependencies a Server needs beyond the catalog store.
type Options struct {
	Addr    string
	DBPath  string
	Version string
	Blobs   blobstore.BlobStore
	Uploads config.UploadConfig
	Logger  *slog.Logger
}

// New creates a new server instance. The auth service is only wired when the
// catalog store also implements the staff surface.
func New(catalogStore store.CatalogStore, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var authService *AuthService
	if authStore, ok := any(catalogStore).(store.AuthStore); ok {
		authService = NewAuthService(authStore)
	}

	return &Server{
		addr:          opts.Addr,
		store:         catalogStore,
		blobs:         opts.Blobs,
		catalog:       NewCatalogService(catalogStore, opts.Blobs, logger.With("component", "catalog")),
		authService:   authService,
		logger:        logger,
		apiToken:      strings.TrimSpace(os.Getenv(apiTokenEnvKey)),
		dbPath:        opts.DBPath,
		version:       opts.Version,
		uploads:       opts.Uploads,
		loginLimiter:  newLoginRateLimiter(loginMaxFailures, loginWindow, loginBlockFor),
		importLimiter: make(chan struct{}, importConcurrencyLimit),
		uploadLimiter: make(chan struct{}, uploadConcurrencyLimit),
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.log().Info("starting server", "addr", s.addr)
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return server.ListenAndServe()
}

// ListenAddr converts a base API URL into a listen address.
func ListenAddr(apiURL string) (string, error) {
	if apiURL == "" {
		return "", fmt.Errorf("api url is required")
	}
	if u, err := url.Parse(apiURL); err == nil && u.Host != "" {
		host := u.Hostname()
		if !isAllowedListenHost(host) {
			return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
		}
		return u.Host, nil
	}

	host, _, err := net.SplitHostPort(apiURL)
	if err == nil && !isAllowedListenHost(host) {
		return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
	}

	return apiURL, nil
}

func isAllowedListenHost(host string) bool {
	if host == "" {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv(allowRemoteEnvKey)), "true") {
		return true
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func (s *Server) acquireLimiter(limiter chan struct{}, w http.ResponseWriter, r *http.Request, name string) bool {
	if limiter == nil {
		return true
	}
	select {
	case limiter <- struct{}{}:
		return true
	default:
		err := apiError{
			status:  http.StatusTooManyRequests,
			code:    "resource_exhausted",
			errCode: ErrCodeResourceExhausted,
			err:     fmt.Errorf("too many concurrent %s requests", name),
		}
		s.writeErrorReq(w, r, http.StatusTooManyRequests, err)
		return false
	}
}

func (s *Server) releaseLimiter(limiter chan struct{}) {
	if limiter == nil {
		return
	}
	select {
	case <-limiter:
	default:
	}
}

func (s *Server) withLimiter(w http.ResponseWriter, r *http.Request, limiter chan struct{}, name string, fn func()) {
	if !s.acquireLimiter(limiter, w, r, name) {
		return
	}
	defer s.releaseLimiter(limiter)
	fn()
}

func (s *Server) log() *slog.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
