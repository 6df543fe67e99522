package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignite/email-domain-filter/internal/api"
	"github.com/ignite/email-domain-filter/internal/config"
	"github.com/ignite/email-domain-filter/internal/domain"
	"github.com/ignite/email-domain-filter/internal/notify"
	"github.com/ignite/email-domain-filter/internal/pkg/logger"
	"github.com/ignite/email-domain-filter/internal/plugin"
	"github.com/ignite/email-domain-filter/internal/repository"
	"github.com/ignite/email-domain-filter/internal/sender"
	"github.com/ignite/email-domain-filter/internal/service/settings"
)

// checkPortAvailable verifies that the target port is not already in use.
func checkPortAvailable(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("address %s is already in use: %v", addr, err)
	}
	ln.Close()
	return nil
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.SetLevel(logger.ParseLevel(cfg.Log.Level))
	logger.SetRedactPII(cfg.Log.Redact())

	addr := cfg.Server.Addr()
	if err := checkPortAvailable(addr); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Settings store
	store, err := repository.Open(ctx, cfg.Settings)
	if err != nil {
		log.Fatalf("Failed to open settings store: %v", err)
	}
	defer store.Close()
	settingsSvc := settings.NewService(store.Repo)

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	if err := settingsSvc.Ping(pingCtx); err != nil {
		logger.Warn("settings store unreachable at startup, filters will pass recipients through until it recovers",
			"backend", store.Backend, "error", err)
	}
	pingCancel()
	seedExcludedDomains(ctx, settingsSvc, cfg.Settings.Initial)
	logger.Info("settings store ready", "backend", store.Backend)

	// Notification delivery
	msgSender, err := newSender(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize sender: %v", err)
	}

	overrides := make(map[domain.NotificationEvent]notify.MessageTemplate, len(cfg.Templates))
	for ev, tpl := range cfg.Templates {
		overrides[ev] = notify.MessageTemplate{Subject: tpl.Subject, HTML: tpl.HTML}
	}
	templates, err := notify.NewTemplates(cfg.Sender.SiteName, overrides)
	if err != nil {
		log.Fatalf("Failed to parse notification templates: %v", err)
	}
	dispatcher := notify.NewDispatcher(notify.DispatcherConfig{
		FromName:  cfg.Sender.FromName,
		FromEmail: cfg.Sender.FromEmail,
	}, templates, msgSender)

	// Plugin activation
	host := plugin.StaticHost{
		Loaded:        cfg.Host.ExtensionLoaded,
		Active:        cfg.Host.ActiveExtensions,
		Multisite:     cfg.Host.Multisite,
		NetworkActive: cfg.Host.NetworkActiveExtensions,
	}
	p := plugin.New(dispatcher, settingsSvc, host, cfg.Events)
	if err := p.Activate(ctx); err != nil {
		log.Fatalf("Failed to register recipient filters: %v", err)
	}

	handlers, err := api.NewHandlers(settingsSvc, p, dispatcher)
	if err != nil {
		log.Fatalf("Failed to build handlers: %v", err)
	}
	server := api.NewServer(cfg.Server, handlers)

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("starting server", "addr", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	logger.Info("server stopped")
}

func newSender(ctx context.Context, cfg *config.Config) (notify.Sender, error) {
	switch cfg.Sender.Type {
	case "ses":
		sesCtx, cancel := context.WithTimeout(ctx, cfg.SES.Timeout())
		defer cancel()
		s, err := sender.NewSESSender(sesCtx, cfg.SES.AccessKey, cfg.SES.SecretKey, cfg.SES.Region, cfg.SES.ConfigurationSet)
		if err != nil {
			return nil, err
		}
		logger.Info("SES sender initialized", "region", cfg.SES.Region)
		return s, nil
	default:
		logger.Info("log sender initialized, notifications will not leave this process")
		return sender.NewLogSender(), nil
	}
}

// seedExcludedDomains stores initial when the setting has never been
// written.
func seedExcludedDomains(ctx context.Context, svc *settings.Service, initial string) {
	if initial == "" {
		return
	}
	current, err := svc.GetExcludedDomains(ctx)
	if err != nil || current != "" {
		return
	}
	if err := svc.SetExcludedDomains(ctx, initial); err != nil {
		logger.Warn("seeding excluded domains failed", "error", err)
		return
	}
	logger.Info("excluded domains seeded from config", "count", len(domain.ParseExclusionList(initial)))
}
