package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/branched-services/go-fibdapp"
)

func (a *app) loadArtifact() (*fibdapp.Artifact, error) {
	if a.cfg.Artifact == "" {
		return fibdapp.DefaultArtifact(), nil
	}
	return fibdapp.LoadArtifactFile(a.cfg.Artifact)
}

func (a *app) newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func (a *app) newSession(reg prometheus.Registerer, opts ...fibdapp.SessionOption) *fibdapp.Session {
	base := []fibdapp.SessionOption{
		fibdapp.WithLogger(a.logger),
		fibdapp.WithPollInterval(a.cfg.GetPollInterval()),
		fibdapp.WithCallTimeout(a.cfg.GetCallTimeout()),
	}
	if reg != nil {
		base = append(base, fibdapp.WithMetrics(fibdapp.NewMetrics(reg)))
	}
	return fibdapp.NewSession(append(base, opts...)...)
}

// bootstrap creates a session and connects it to the configured node.
func (a *app) bootstrap(ctx context.Context, opts ...fibdapp.SessionOption) (*fibdapp.Session, error) {
	artifact, err := a.loadArtifact()
	if err != nil {
		return nil, err
	}
	session := a.newSession(nil, opts...)
	if err := session.Bootstrap(ctx, fibdapp.Dialer(a.cfg.RPCURL), artifact); err != nil {
		session.Close()
		return nil, err
	}
	return session, nil
}

// serveMetrics serves reg on addr until ctx is done.
func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("serving metrics", zap.String("addr", addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
