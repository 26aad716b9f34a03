package service

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/rules"
	"github.com/poiesic/taxonomist/search"
	"golang.org/x/sync/errgroup"
)

// Server defaults.
const (
	DefaultAddr          = ":8080"
	DefaultCacheSize     = 256
	DefaultCacheTTL      = 5 * time.Minute
	DefaultDebounce      = 250 * time.Millisecond
	DefaultRetryAttempts = 3
	DefaultRetryDelay    = 500 * time.Millisecond
)

// RebuildFunc produces a fresh snapshot, typically by reloading and
// rebuilding the input metadata.
type RebuildFunc func(ctx context.Context) (*core.Snapshot, error)

// Server serves a taxonomy snapshot over HTTP. The snapshot is replaced
// atomically on rebuild and never mutated in place.
type Server struct {
	snapshot atomic.Pointer[core.Snapshot]

	searcher      *search.Searcher
	cache         *resultCache
	ignored       map[string]struct{}
	rebuild       RebuildFunc
	reloadMu      sync.Mutex
	addr          string
	watchPath     string
	debounce      time.Duration
	retryAttempts int
	retryDelay    time.Duration
	logger        *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithSearcher sets the searcher used by /search.
func WithSearcher(searcher *search.Searcher) Option {
	return func(s *Server) error {
		if searcher == nil {
			return fmt.Errorf("%w: searcher is nil", ErrInvalidOption)
		}
		s.searcher = searcher
		return nil
	}
}

// WithCache sizes the search result cache.
func WithCache(size int, ttl time.Duration) Option {
	return func(s *Server) error {
		if size < 1 || ttl < 0 {
			return fmt.Errorf("%w: cache size %d, ttl %s", ErrInvalidOption, size, ttl)
		}
		s.cache = newResultCache(size, ttl)
		return nil
	}
}

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(s *Server) error {
		s.addr = addr
		return nil
	}
}

// WithIgnoredColumns sets the column names left out of shared-column lookups.
// Default is the generic columns of the default rules.
func WithIgnoredColumns(columns map[string]struct{}) Option {
	return func(s *Server) error {
		s.ignored = columns
		return nil
	}
}

// WithRebuild sets the function used by Reload.
func WithRebuild(fn RebuildFunc) Option {
	return func(s *Server) error {
		s.rebuild = fn
		return nil
	}
}

// WithWatch reloads the snapshot whenever the file at path changes.
// Changes are coalesced over debounce.
func WithWatch(path string, debounce time.Duration) Option {
	return func(s *Server) error {
		if debounce <= 0 {
			return fmt.Errorf("%w: debounce must be positive, got %s", ErrInvalidOption, debounce)
		}
		s.watchPath = path
		s.debounce = debounce
		return nil
	}
}

// WithRetry sets how often a failed rebuild is attempted.
func WithRetry(attempts int, baseDelay time.Duration) Option {
	return func(s *Server) error {
		if attempts < 1 {
			return fmt.Errorf("%w: %w", ErrInvalidOption, ErrInvalidMaxAttempts)
		}
		s.retryAttempts = attempts
		s.retryDelay = baseDelay
		return nil
	}
}

// NewServer creates a server for the initial snapshot.
func NewServer(initial *core.Snapshot, opts ...Option) (*Server, error) {
	if initial == nil || initial.Taxonomy == nil {
		return nil, ErrSnapshotRequired
	}

	s := &Server{
		addr:          DefaultAddr,
		debounce:      DefaultDebounce,
		retryAttempts: DefaultRetryAttempts,
		retryDelay:    DefaultRetryDelay,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.searcher == nil {
		searcher, err := search.NewSearcher(search.WithLogger(s.logger))
		if err != nil {
			return nil, err
		}
		s.searcher = searcher
	}
	if s.cache == nil {
		s.cache = newResultCache(DefaultCacheSize, DefaultCacheTTL)
	}
	if s.ignored == nil {
		s.ignored = rules.Default().GenericColumnSet()
	}

	s.snapshot.Store(initial)
	return s, nil
}

// Snapshot returns the snapshot currently served.
func (s *Server) Snapshot() *core.Snapshot {
	return s.snapshot.Load()
}

// Swap replaces the served snapshot and drops cached results.
func (s *Server) Swap(next *core.Snapshot) error {
	if next == nil || next.Taxonomy == nil {
		return ErrSnapshotRequired
	}
	prev := s.snapshot.Swap(next)
	s.cache.purge()
	s.logger.Info("swapped snapshot", "previous", prev.Id, "current", next.Id, "tables", len(next.Taxonomy.TableIndex))
	return nil
}

// Reload rebuilds the snapshot, retrying with backoff, and swaps it in.
// On failure the current snapshot keeps being served.
func (s *Server) Reload(ctx context.Context) error {
	if s.rebuild == nil {
		return ErrNoRebuild
	}
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	var next *core.Snapshot
	err := retryWithBackoff(ctx, s.logger, s.retryAttempts, s.retryDelay, func() error {
		var err error
		next, err = s.rebuild(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("rebuilding snapshot: %w", err)
	}
	return s.Swap(next)
}

// CacheStats reports search cache usage.
func (s *Server) CacheStats() CacheStats {
	return s.cache.stats()
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
	)

	r.Get("/healthz", s.handleHealth)
	r.Get("/domains", s.handleDomains)
	r.Get("/tables", s.handleTables)
	r.Get("/tables/{name}", s.handleTable)
	r.Get("/search", s.handleSearch)
	return r
}

// Serve listens on the configured address until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watchPath != "" {
		eg.Go(func() error {
			return s.watch(egctx)
		})
	}

	eg.Go(func() error {
		s.logger.Info("serving taxonomy", "addr", s.addr, "snapshot", s.Snapshot().Id)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
