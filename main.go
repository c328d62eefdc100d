package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admin/internal/apiclient"
	intconfig "admin/internal/config"
	router "admin/internal/http"
	"admin/internal/http/handlers"
	"admin/internal/http/middleware"
	"admin/internal/nav"
	"admin/internal/repositories"
	"admin/internal/screen"
	"admin/internal/session"
	"admin/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "viveo-admin",
		Short:         "Viveo administratorski panel",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Pokreće HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	})

	sessions := &cobra.Command{Use: "sessions", Short: "Održavanje sesija"}
	sessions.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Briše istekle sesije iz skladišta",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return purge(cmd.Context())
		},
	})
	root.AddCommand(sessions)
	return root
}

// openStore builds the configured session store. The returned closer is
// never nil.
func openStore(ctx context.Context, env intconfig.Env) (session.Store, func(), error) {
	if env.SessionStore != intconfig.SessionStoreMySQL {
		return session.NewMemoryStore(), func() {}, nil
	}
	conn, err := intconfig.ConnectDB(ctx, env.MySQLDSN)
	if err != nil {
		return nil, nil, err
	}
	closer := func() { _ = conn.Close() }
	store, err := session.NewMySQLStore(conn, []byte(env.SessionHashKey))
	if err != nil {
		closer()
		return nil, nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		closer()
		return nil, nil, err
	}
	return store, closer, nil
}

func purge(ctx context.Context) error {
	env, err := intconfig.LoadEnv()
	if err != nil {
		return err
	}
	log := utils.NewLogger(env.LogLevel, env.LogPretty)
	store, closeStore, err := openStore(ctx, env)
	if err != nil {
		return err
	}
	defer closeStore()

	n, err := session.NewManager(store, nil, env.SessionTTL, log).Purge(ctx)
	if err != nil {
		return fmt.Errorf("purge sessions: %w", err)
	}
	log.Info().Int64("removed", n).Msg("istekle sesije obrisane")
	return nil
}

func serve(parent context.Context) error {
	env, err := intconfig.LoadEnv()
	if err != nil {
		return err
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	log := utils.NewLogger(env.LogLevel, env.LogPretty)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, env)
	if err != nil {
		return err
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	sessions := session.NewManager(store, nil, env.SessionTTL, log)
	client := apiclient.New(apiclient.Config{
		BaseURL:   env.APIBaseURL,
		Timeout:   env.APITimeout,
		RateLimit: env.APIRateLimit,
		RateBurst: env.APIRateBurst,
	}, sessions, apiclient.WithObserver(apiclient.NewPromObserver(reg)))
	repos := repositories.New(client)
	sessions.SetAuthenticator(repos.Auth)

	menu, err := nav.Default()
	if err != nil {
		return fmt.Errorf("load navigation: %w", err)
	}

	screens := screen.NewRegistry(env.ScreenIdleTTL)
	go screens.Run(ctx, time.Minute)
	go purgeLoop(ctx, sessions, log)

	r, err := router.NewRouter(env, handlers.Deps{
		Log:      log,
		Sessions: sessions,
		Cookie: middleware.SessionCookie{
			Name:   env.SessionCookie,
			MaxAge: int(env.SessionTTL.Seconds()),
			Secure: env.CookieSecure,
		},
		Repos:    repos,
		Screens:  screens,
		Nav:      menu,
		PageSize: env.PageSize,
		Debounce: env.SearchDebounce,
	}, reg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", env.AppAddr).Str("api", env.APIBaseURL).Msg("server pokrenut")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("gašenje servera...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server zaustavljen")
	return nil
}

func purgeLoop(ctx context.Context, m *session.Manager, log zerolog.Logger) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n, err := m.Purge(ctx); err != nil {
				log.Warn().Err(err).Msg("brisanje isteklih sesija nije uspelo")
			} else if n > 0 {
				log.Debug().Int64("removed", n).Msg("istekle sesije obrisane")
			}
		}
	}
}
