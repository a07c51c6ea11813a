package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/rosabot/rosa/backend/internal/config"
	"github.com/rosabot/rosa/backend/internal/handler"
	"github.com/rosabot/rosa/backend/internal/service/ai"
	"github.com/rosabot/rosa/backend/internal/service/analytics"
	"github.com/rosabot/rosa/backend/internal/service/application"
	"github.com/rosabot/rosa/backend/internal/service/authreq"
	"github.com/rosabot/rosa/backend/internal/service/delivery"
	"github.com/rosabot/rosa/backend/internal/service/identity"
	"github.com/rosabot/rosa/backend/internal/service/intent"
	"github.com/rosabot/rosa/backend/internal/service/templates"
	"github.com/rosabot/rosa/backend/internal/service/turn"
	"github.com/rosabot/rosa/backend/internal/store"
)

const janitorInterval = 10 * time.Minute

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := store.New(cfg.Storage.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	identitySvc, err := identity.NewService(db, cfg.Identity.TokenHashSecret)
	if err != nil {
		log.Fatalf("failed to initialize identity service: %v", err)
	}

	requestSvc := authreq.NewService(db, identitySvc, cfg.Links.TTL)

	// Optional LLM fallback for application name matching
	var resolver application.Resolver
	if cfg.AI.Enabled() {
		chatModel, err := cfg.AI.NewChatModel(ctx)
		if err != nil {
			log.Printf("warning: failed to initialize chat model: %v", err)
		} else if nameResolver, err := ai.NewNameResolver(ctx, chatModel); err != nil {
			log.Printf("warning: failed to initialize name resolver: %v", err)
		} else {
			resolver = nameResolver
			log.Println("LLM application matching enabled")
		}
	} else {
		log.Println("Ark 凭证未配置或未开启，应用名称匹配不使用大模型")
	}
	applicationSvc := application.NewService(db, resolver)

	tmpls := templates.Default()
	if cfg.Templates.Dir != "" {
		tmpls = templates.FromDir(cfg.Templates.Dir)
		log.Printf("loading chat templates from %s", cfg.Templates.Dir)
	}

	var deliverer intent.ContactCardDeliverer = delivery.LogDeliverer{}
	if cfg.Twilio.Enabled() {
		deliverer = &delivery.TwilioClient{
			AccountSID: cfg.Twilio.AccountSID,
			AuthToken:  cfg.Twilio.AuthToken,
			From:       cfg.Twilio.FromNumber,
			VCardURL:   cfg.Twilio.VCardURL,
			BaseURL:    cfg.Twilio.BaseURL,
			HTTP:       &http.Client{Timeout: 10 * time.Second},
		}
	} else {
		log.Println("Twilio 凭证未配置，名片只记录日志")
	}

	var recorder turn.AnalyticsRecorder = analytics.LogRecorder{}
	if cfg.Analytics.Enabled() {
		recorder = &analytics.DashbotClient{
			APIKey:  cfg.Analytics.APIKey,
			BaseURL: cfg.Analytics.BaseURL,
			HTTP:    &http.Client{Timeout: 5 * time.Second},
		}
	} else {
		log.Println("Dashbot 未配置，分析事件只记录日志")
	}

	dispatcher := intent.NewDispatcher(tmpls, applicationSvc, requestSvc, deliverer, intent.NewLinks(cfg.Links))
	turnSvc := turn.NewService(identitySvc, recorder, dispatcher)

	router := handler.NewRouter(handler.Services{
		Turns:        turnSvc,
		Requests:     requestSvc,
		Applications: applicationSvc,
		WebOrigin:    cfg.Links.Origin(),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		requestSvc.RunJanitor(gctx, janitorInterval)
		return nil
	})
	g.Go(func() error {
		return startServer(gctx, cfg.Server, router)
	})
	if err := g.Wait(); err != nil {
		log.Printf("server error: %v", err)
		db.Close()
		os.Exit(1)
	}
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) error {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Rosa backend listening on %s", addr)
	return runServer(ctx, srv)
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
