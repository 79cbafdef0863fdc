package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/yanun0323/logs"

	"main/internal/ops"
	"main/internal/quote"
	"main/internal/rpc"
	"main/internal/server"
	"main/pkg/socket"
)

func main() {
	if err := run(); err != nil {
		log.Printf("server: %v", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "config.json", "Path to JSON config")
	listenFlag := flag.String("listen", "", "Override listen address from config")
	flag.Parse()

	loaded, err := ops.Load(*configPath)
	if err != nil {
		return err
	}
	if addr := strings.TrimSpace(*listenFlag); addr != "" {
		loaded.Listen.Address = addr
	}

	if loaded.Profiling.Enabled {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: loaded.Profiling.ApplicationName,
			ServerAddress:   loaded.Profiling.ServerAddress,
			Logger:          emptyLogger{},
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			return err
		}
		defer func() {
			_ = profiler.Stop()
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener, err := socket.NewServer(loaded.Listen.Network, loaded.Listen.Address)
	if err != nil {
		return err
	}
	if err := listener.Listen(); err != nil {
		return err
	}
	defer listener.Close()

	dispatcher := rpc.NewDispatcher(quote.NewService(loaded.Registry))
	srv := server.New(listener, dispatcher, server.Config{IdleTimeout: loaded.IdleTimeout})

	logs.Infof("slippage server listening on %s %s, instruments: %s",
		loaded.Listen.Network, listener.Addr(), strings.Join(loaded.Registry.Instruments(), ", "))

	return srv.Serve(ctx)
}

type emptyLogger struct{}

func (emptyLogger) Infof(_ string, _ ...interface{})  {}
func (emptyLogger) Debugf(_ string, _ ...interface{}) {}
func (emptyLogger) Errorf(_ string, _ ...interface{}) {}
