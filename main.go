package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/richoux/microPhantom/agent"
	"github.com/richoux/microPhantom/config"
	"github.com/richoux/microPhantom/ipc"
	"github.com/richoux/microPhantom/production"
	"github.com/richoux/microPhantom/solver"
)

const banner = `
 _ __ ___ (_) ___ _ __ ___  _ __ | |__   __ _ _ __ | |_ ___  _ __ ___
| '_ ' _ \| |/ __| '__/ _ \| '_ \| '_ \ / _' | '_ \| __/ _ \| '_ ' _ \
| | | | | | | (__| | | (_) | |_) | | | | (_| | | | | || (_) | | | | | |
|_| |_| |_|_|\___|_|  \___/| .__/|_| |_|\__,_|_| |_|\__\___/|_| |_| |_|
                           |_|
Solver-Driven RTS Decision Core`

func main() {
	configPath := flag.String("config", "", "path to a config file (yaml, json or toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)
	slog.Info("starting microPhantom", "solver", cfg.Solver.Mode, "socket", cfg.Socket)

	if err := run(cfg); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	types, err := config.LoadUnitTypes(cfg.UnitTypes)
	if err != nil {
		return fmt.Errorf("load unit types: %w", err)
	}
	newPolicy, closePolicy, err := policyFactory(cfg.Solver)
	if err != nil {
		return err
	}
	defer closePolicy()

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(cfg.Socket); err != nil {
		return fmt.Errorf("clean up socket %s: %w", cfg.Socket, err)
	}
	listener, err := net.Listen("unix", cfg.Socket)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Socket, err)
	}
	defer os.Remove(cfg.Socket)
	slog.Info("listening on domain socket", "path", cfg.Socket)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-ctx.Done()
		return listener.Close()
	})
	g.Go(func() error {
		for {
			conn, err := listener.Accept()
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
					return nil
				}
				slog.Error("failed to accept connection", "error", err)
				continue
			}
			g.Go(func() error {
				handleConn(ctx, conn, agent.Options{
					Params:     cfg.Rules,
					Policy:     newPolicy(),
					UnitTypes:  types,
					TickBudget: cfg.TickBudget,
					Logger:     slog.Default(),
				})
				return nil
			})
		}
	})

	err = g.Wait()
	slog.Info("shutting down")
	return err
}

func handleConn(ctx context.Context, conn net.Conn, opts agent.Options) {
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	opts.Session = uuid.New()
	log := slog.With("session", opts.Session.String())
	log.Info("new connection accepted")

	c := ipc.NewConnection(conn, nil, log)
	a, err := agent.New(c, opts)
	if err != nil {
		log.Error("failed to start agent", "error", err)
		conn.Close()
		return
	}
	c.RegisterHandler(ipc.TypeHello, a.HandleHello)
	c.RegisterHandler(ipc.TypeGameState, a.HandleGameState)
	c.ReadLoop()
	log.Info("connection closed")
}

// policyFactory returns a constructor for per-session production policies
// and a cleanup function for whatever they share.
func policyFactory(cfg config.SolverConfig) (func() production.Policy, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Mode {
	case config.ModeRandom:
		var sessions atomic.Uint64
		seed := cfg.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		return func() production.Policy {
			return production.NewRandomPolicy(seed + sessions.Add(1))
		}, noop, nil

	case config.ModeDial:
		client := solver.NewDialClient(cfg.Address)
		return func() production.Policy {
			return production.NewSolverPolicy(client, cfg.Timeout, cfg.Samples, nil)
		}, noop, nil

	default:
		client, err := solver.ListenProcessClient(cfg.Address, cfg.Command, cfg.Args, slog.Default())
		if err != nil {
			return nil, nil, fmt.Errorf("bind solver channel: %w", err)
		}
		slog.Info("solver channel bound", "address", client.Addr(), "command", cfg.Command)
		return func() production.Policy {
			return production.NewSolverPolicy(client, cfg.Timeout, cfg.Samples, nil)
		}, client.Close, nil
	}
}
