package ingestion

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/poiesic/taxonomist/core"
)

// Loader reads metadata snapshots.
type Loader struct {
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) (*Loader, error) {
	l := &Loader{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// LoadFile reads and validates the snapshot at path.
func (l *Loader) LoadFile(path string) (*core.Metadata, error) {
	if path == "" {
		return nil, ErrInputRequired
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputUnreadable, err)
	}
	defer f.Close()

	meta, err := l.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.logger.Info("loaded metadata", "path", path, "tables", len(meta.Tables), "groups", len(meta.Info.Groups))
	return meta, nil
}

// Decode reads one snapshot document from r and validates it.
func (l *Loader) Decode(r io.Reader) (*core.Metadata, error) {
	var meta core.Metadata
	if err := json.NewDecoder(r).Decode(&meta); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := core.ValidateMetadata(&meta); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return &meta, nil
}

// LoadFile reads and validates the snapshot at path with a default Loader.
func LoadFile(path string) (*core.Metadata, error) {
	l, _ := NewLoader()
	return l.LoadFile(path)
}

// Decode reads and validates a snapshot from r with a default Loader.
func Decode(r io.Reader) (*core.Metadata, error) {
	l, _ := NewLoader()
	return l.Decode(r)
}
