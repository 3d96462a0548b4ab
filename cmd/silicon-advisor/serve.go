package main

import (
	"context"
	"encoding/json"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ajeetraina/Ace-Step-v1.5/internal/config"
	"github.com/ajeetraina/Ace-Step-v1.5/pkg/silicon"
)

// runServe exposes the settings report and Prometheus metrics over HTTP for
// fleet inventory scraping. Blocks until interrupted.
func runServe(cfg *config.Config, log *zap.Logger) error {
	app := fx.New(
		fx.Supply(cfg, log),
		fx.Provide(newOptimizer),
		fx.Invoke(startServer),
		fx.NopLogger,
	)
	app.Run()
	return nil
}

func newOptimizer(log *zap.Logger, cfg *config.Config) *silicon.Optimizer {
	return silicon.New(log, silicon.WithConfig(cfg))
}

func startServer(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger, opt *silicon.Optimizer) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/v1/settings", settingsHandler(opt, log))

	srv := &http.Server{Addr: cfg.Serve.ListenAddress, Handler: mux}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("serving settings and metrics", zap.String("address", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
					log.Error("server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

// settingsHandler recomputes memory and advice on every request, so a
// long-running advisor tracks current system load.
func settingsHandler(opt *silicon.Optimizer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		report := opt.Report()
		silicon.RecordMetrics(report)
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			log.Warn("failed to encode settings report", zap.Error(err))
		}
	}
}
