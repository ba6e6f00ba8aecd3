// Command ignite-server binds the networked front-end of spec §6 over a
// data directory opened through pkg/ignite.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iamNilotpal/ignite/internal/server"
	"github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/iamNilotpal/ignite/pkg/ignite"
	"github.com/iamNilotpal/ignite/pkg/logger"
	"github.com/iamNilotpal/ignite/pkg/options"
)

func main() {
	addr := flag.String("addr", options.DefaultAddr, "address to bind")
	engine := flag.String("engine", string(options.EngineKVS), "storage engine: kvs|sled")
	dataDir := flag.String("data-dir", options.DefaultDataDir, "data directory")
	poolKind := flag.String("pool", string(options.PoolSharedQueue), "worker pool: naive|shared|stealing")
	poolSize := flag.Int("pool-size", options.DefaultPoolSize, "worker pool size")
	tlsCert := flag.String("tls-cert", "", "TLS certificate file (optional)")
	tlsKey := flag.String("tls-key", "", "TLS key file (optional)")
	flag.Parse()

	log := logger.New("ignite-server")

	ctx := context.Background()
	instance, err := ignite.NewInstance(
		ctx, "ignite-server",
		options.WithDataDir(*dataDir),
		options.WithEngine(options.EngineKind(*engine)),
		options.WithAddr(*addr),
		options.WithPool(options.PoolKind(*poolKind), *poolSize),
		options.WithTLS(*tlsCert, *tlsKey),
	)
	if err != nil {
		if code := errors.GetErrorCode(err); code == errors.ErrorCodeEngineMismatch {
			fmt.Fprintf(os.Stderr, "ignite-server: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "ignite-server: failed to open data directory: %v\n", err)
		os.Exit(1)
	}
	defer instance.Close(ctx)

	srv, err := server.New(instance.Options(), instance.Engine(), log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ignite-server: failed to bind: %v\n", err)
		os.Exit(1)
	}

	log.Infow("listening", "addr", srv.Addr().String(), "engine", *engine, "pool", *poolKind)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		log.Infow("shutting down")
		srv.Close()
	}()

	if err := srv.Serve(); err != nil {
		fmt.Fprintf(os.Stderr, "ignite-server: %v\n", err)
		os.Exit(1)
	}
}
