// Package redis provides a store.Store backed by a Redis server.
package redis

import (
	"context"
	"crypto/tls"
	"fmt"
	log "log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/sharedcode/meshin"
)

// Options holds configuration for connecting to a Redis server.
type Options struct {
	// Address is the host:port of the Redis server.
	Address string
	// Password is the password used to authenticate.
	Password string
	// DB is the database index to select.
	DB int
	// TLSConfig contains TLS configuration for secure connections.
	TLSConfig *tls.Config
}

// Connection wraps a redis.Client and the Options used to create it.
type Connection struct {
	Client  *redis.Client
	Options Options
}

// DefaultOptions returns an Options with localhost defaults (no password, DB 0).
func DefaultOptions() Options {
	return Options{
		Address:  "localhost:6379",
		Password: "", // no password set
		DB:       0,  // use default DB
	}
}

// OptionsFromConfig maps the engine's redis config section to connection options.
func OptionsFromConfig(c meshin.RedisConfig) Options {
	o := DefaultOptions()
	if c.Address != "" {
		o.Address = c.Address
	}
	o.Password = c.Password
	o.DB = c.DB
	return o
}

var connection *Connection
var mux sync.Mutex

// IsConnectionInstantiated reports whether the package-level singleton connection exists.
func IsConnectionInstantiated() bool {
	mux.Lock()
	defer mux.Unlock()
	return connection != nil
}

// OpenConnection initializes and returns the package-level singleton connection.
// Subsequent calls return the same connection.
func OpenConnection(options Options) (*Connection, error) {
	mux.Lock()
	defer mux.Unlock()
	if connection != nil {
		return connection, nil
	}
	log.Info("Opening Redis connection", "address", options.Address, "db", options.DB)
	connection = openConnection(&redis.Options{
		TLSConfig: options.TLSConfig,
		Addr:      options.Address,
		Password:  options.Password,
		DB:        options.DB,
	}, options)
	return connection, nil
}

// OpenConnectionWithURL initializes and returns the package-level singleton connection using a Redis URI.
func OpenConnectionWithURL(url string) (*Connection, error) {
	mux.Lock()
	defer mux.Unlock()
	if connection != nil {
		return connection, nil
	}
	log.Info("Opening Redis connection with URL")
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	connection = openConnection(opts, Options{Address: opts.Addr, Password: opts.Password, DB: opts.DB, TLSConfig: opts.TLSConfig})
	return connection, nil
}

// OpenConnectionFromConfig opens the singleton connection described by c, preferring its URL.
func OpenConnectionFromConfig(c meshin.RedisConfig) (*Connection, error) {
	if c.URL != "" {
		return OpenConnectionWithURL(c.URL)
	}
	return OpenConnection(OptionsFromConfig(c))
}

// CloseConnection closes the package-level singleton connection, if present.
func CloseConnection() error {
	mux.Lock()
	defer mux.Unlock()
	if connection == nil {
		return nil
	}
	log.Info("Closing Redis connection")
	err := closeConnection(connection)
	connection = nil
	return err
}

func openConnection(opts *redis.Options, options Options) *Connection {
	opts.OnConnect = func(ctx context.Context, cn *redis.Conn) error {
		log.Debug("Redis connected", "address", opts.Addr)
		return nil
	}
	return &Connection{
		Client:  redis.NewClient(opts),
		Options: options,
	}
}

func closeConnection(c *Connection) error {
	if c == nil || c.Client == nil {
		return nil
	}
	err := c.Client.Close()
	c.Client = nil
	return err
}
