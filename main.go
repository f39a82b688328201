package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"platformer/config"
	"platformer/logging"
	"platformer/server"
)

// 权威服务端入口：加载配置，启动房间 Tick 与 HTTP/WebSocket 服务
func main() {
	if err := config.Load(); err != nil {
		panic(err)
	}
	cfg, err := config.ServerFromEnv()
	if err != nil {
		panic(err)
	}
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "server listen address, e.g. :4433")
	flag.StringVar(&cfg.CertFile, "cert", cfg.CertFile, "TLS certificate (PEM)")
	flag.StringVar(&cfg.KeyFile, "key", cfg.KeyFile, "TLS private key (PEM)")
	flag.StringVar(&cfg.PublicURL, "public-url", cfg.PublicURL, "URL clients use to reach this server")
	flag.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file path")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.Parse()

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	if err := logging.Init(logging.Options{File: cfg.LogFile, Level: level, Console: true}); err != nil {
		panic(err)
	}
	defer logging.Sync()
	log := logging.Log

	srv := &http.Server{
		Addr:              cfg.Addr,
		ReadHeaderTimeout: 10 * time.Second,
	}
	// 证书缺失时服务端无法运行，直接退出
	if cfg.TLSEnabled() {
		pair, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			log.Fatalf("load TLS key pair (%s, %s): %v", cfg.CertFile, cfg.KeyFile, err)
		}
		srv.TLSConfig = &tls.Config{Certificates: []tls.Certificate{pair}, MinVersion: tls.VersionTLS12}
		log.Infof("loaded TLS certificate from %s", cfg.CertFile)
	}
	if cfg.PublicURL == "" {
		scheme := "ws"
		if cfg.TLSEnabled() {
			scheme = "wss"
		}
		cfg.PublicURL = scheme + "://localhost" + cfg.Addr + "/ws"
	}

	game := server.New(cfg)
	srv.Handler = game.Handler()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return game.Run(ctx)
	})
	g.Go(func() error {
		log.Infof("platformer server listening on %s; public url %s", cfg.Addr, cfg.PublicURL)
		var err error
		if srv.TLSConfig != nil {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Errorf("server stopped: %v", err)
		logging.Sync()
		os.Exit(1)
	}
}
