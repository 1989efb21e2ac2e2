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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yeremiapane/intranet-portal/board"
	"github.com/yeremiapane/intranet-portal/config"
	"github.com/yeremiapane/intranet-portal/database"
	"github.com/yeremiapane/intranet-portal/middlewares"
	"github.com/yeremiapane/intranet-portal/router"
	"github.com/yeremiapane/intranet-portal/services"
	"github.com/yeremiapane/intranet-portal/utils"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = 5 * time.Minute
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "intranet-portal",
		Short:         "Hospital intranet portal (cardápio, protocolos, blog, zeladoria)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newHashPasswordCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the portal tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			utils.SetLogLevel(cfg.LogLevel)

			db, err := config.InitDB(cfg)
			if err != nil {
				return err
			}
			return database.Migrate(db)
		},
	}
}

func newHashPasswordCmd() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash for a system password (e.g. CARDAPIO_CRYPT)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), cost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	return cmd
}

func serve(parent context.Context, cfg *config.Config) error {
	utils.SetLogLevel(cfg.LogLevel)
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	rosterDB, err := config.InitRosterDB(cfg)
	if err != nil {
		// the portal still serves everything except the patient export
		utils.ErrorLogger.Errorf("Roster database unavailable: %v", err)
		rosterDB = nil
	}

	policy, err := config.LoadAccessPolicy(cfg.AccessPolicyFile)
	if err != nil {
		return err
	}
	access, err := middlewares.NewAccessEnforcer(policy)
	if err != nil {
		return err
	}

	hub := board.NewHub()
	menu := services.NewMenuService(database.NewMenuStore(db), hub)

	r, err := router.SetupRouter(router.Deps{
		Config:   cfg,
		DB:       db,
		RosterDB: rosterDB,
		Menu:     menu,
		Hub:      hub,
		Access:   access,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweeper := services.NewSessionSweeper(sweepInterval)
	sweeper.Start()
	defer sweeper.Stop()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		utils.InfoLogger.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
