package badger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

const defaultZSTDLevel = 3

// Backend wraps a BadgerDB instance and provides low-level operations.
// One Backend corresponds to one tenant store on disk.
type Backend struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Option configures a Backend.
type Option func(*backendOptions)

type backendOptions struct {
	compression options.CompressionType
	zstdLevel   int
	logger      *slog.Logger
}

// WithCompression sets the value compression codec. Default is ZSTD.
func WithCompression(c options.CompressionType) Option {
	return func(o *backendOptions) { o.compression = c }
}

// WithZSTDLevel sets the ZSTD compression level. Default is 3.
func WithZSTDLevel(level int) Option {
	return func(o *backendOptions) {
		if level > 0 {
			o.zstdLevel = level
		}
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *backendOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// CompressionFromName maps a configuration name to a badger compression
// type. The empty name means the default codec.
func CompressionFromName(name string) (options.CompressionType, error) {
	switch strings.ToLower(name) {
	case "", "zstd":
		return options.ZSTD, nil
	case "snappy":
		return options.Snappy, nil
	case "none":
		return options.None, nil
	}
	return options.None, fmt.Errorf("unknown compression codec %q", name)
}

// OpenBackend opens a BadgerDB database at the specified path.
// Creates the directory if it doesn't exist.
func OpenBackend(filePath string, inMemory bool, opts ...Option) (*Backend, error) {
	cfg := backendOptions{
		compression: options.ZSTD,
		zstdLevel:   defaultZSTDLevel,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var bopts badger.Options
	if inMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		// Ensure directory exists
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		bopts = badger.DefaultOptions(filePath)
	}

	bopts.Logger = &badgerLoggerAdapter{logger: cfg.logger}
	bopts.Compression = cfg.compression
	if cfg.compression == options.ZSTD {
		bopts.ZSTDCompressionLevel = cfg.zstdLevel
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, err
	}

	return &Backend{
		db:     db,
		logger: cfg.logger,
	}, nil
}

// Close closes the BadgerDB database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// IsClosed returns true if the database is closed.
func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// Sync forces buffered writes to durable storage. Ordinary writes may be
// buffered by the engine, so flush callers need this before relying on
// durability. No-op for in-memory databases.
func (b *Backend) Sync() error {
	if b.db.Opts().InMemory {
		return nil
	}
	return b.db.Sync()
}

// WithTx executes a function within a BadgerDB transaction.
// If isWrite is true, creates a read-write transaction.
// The transaction is automatically discarded if fn returns an error.
func (b *Backend) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	tx := b.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}
