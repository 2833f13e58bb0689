// Package redis stores scripts and images as Redis string values, one key per slash path.
package redis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aretw0/marionette/pkg/domain"
	"github.com/aretw0/marionette/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

const defaultTimeout = 5 * time.Second

// Repository addresses script bytes held in Redis.
type Repository struct {
	client  *backend.Client
	prefix  string
	timeout time.Duration
}

// Option configures a Repository.
type Option func(*Repository)

// WithPrefix namespaces every key.
func WithPrefix(prefix string) Option {
	return func(r *Repository) {
		r.prefix = prefix
	}
}

// WithTimeout bounds each Redis round trip made by a Location.
func WithTimeout(d time.Duration) Option {
	return func(r *Repository) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// New creates a repository connected to addr.
func New(addr, password string, db int, opts ...Option) *Repository {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a repository over an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Repository {
	r := &Repository{
		client:  client,
		prefix:  "marionette:",
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Put stores data under the slash path p.
func (r *Repository) Put(ctx context.Context, p string, data []byte) error {
	if err := r.client.Set(ctx, r.key(clean(p)), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store %s: %w", p, err)
	}
	return nil
}

// Ping verifies the connection.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the client.
func (r *Repository) Close() error {
	return r.client.Close()
}

// Locate returns the location of p.
func (r *Repository) Locate(p string) *Location {
	return &Location{repo: r, path: clean(p)}
}

func (r *Repository) key(p string) string {
	return r.prefix + "script:" + p
}

func (r *Repository) exists(p string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	n, err := r.client.Exists(ctx, r.key(p)).Result()
	return err == nil && n > 0
}

// Location implements ports.Location over a Repository.
type Location struct {
	repo *Repository
	path string
}

// String returns the slash path of the location.
func (l *Location) String() string { return l.path }

// Refer resolves target next to this location when that key exists.
// A leading slash always addresses the root.
func (l *Location) Refer(target string) ports.Location {
	if !path.IsAbs(target) {
		candidate := path.Join(path.Dir(l.path), target)
		if l.repo.exists(candidate) {
			return &Location{repo: l.repo, path: candidate}
		}
	}
	return l.repo.Locate(target)
}

// Open fetches the stored bytes.
func (l *Location) Open() (io.ReadCloser, error) {
	ctx, cancel := context.WithTimeout(context.Background(), l.repo.timeout)
	defer cancel()

	data, err := l.repo.client.Get(ctx, l.repo.key(l.path)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, fmt.Errorf("open %s: %w: key does not exist", l.path, domain.ErrIO)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", l.path, domain.ErrIO, err)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func clean(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}
