// Command meshin-server serves the meshin command set over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	log "log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sharedcode/meshin"
	"github.com/sharedcode/meshin/command"
	"github.com/sharedcode/meshin/ops"
	"github.com/sharedcode/meshin/redis"
	"github.com/sharedcode/meshin/restapi"
	"github.com/sharedcode/meshin/store"
	"github.com/sharedcode/meshin/store/inmemory"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to a JSON or YAML config file")
	flag.Parse()

	meshin.ConfigureLogging()

	o, err := meshin.LoadOptions(*configPath)
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, o); err != nil {
		log.Error("meshin-server stopped", "error", err)
		os.Exit(1)
	}
}

// openStore returns the keyspace selected by o and a func releasing it.
func openStore(ctx context.Context, o meshin.Options) (store.Store, func() error, error) {
	switch o.StoreType {
	case meshin.InMemory:
		return inmemory.NewKeyspace(), func() error { return nil }, nil
	case meshin.Redis:
		conn, err := redis.OpenConnectionFromConfig(*o.Redis)
		if err != nil {
			return nil, nil, err
		}
		s := redis.NewStore(conn, o.Retry, o.CompactListMaxEntries)
		if err := s.Ping(ctx); err != nil {
			redis.CloseConnection()
			return nil, nil, err
		}
		return s, redis.CloseConnection, nil
	}
	return nil, nil, fmt.Errorf("store type %v not supported", o.StoreType)
}

func run(ctx context.Context, o meshin.Options) error {
	s, closeStore, err := openStore(ctx, o)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("closing store failed", "error", err)
		}
	}()

	router, err := restapi.NewRouter(command.NewDispatcher(ops.NewEngine(s, o)))
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              o.HTTPAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.Info("meshin-server listening", "address", o.HTTPAddress, "store", o.StoreType.String(), "version", meshin.Version)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		log.Info("meshin-server shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return eg.Wait()
}
