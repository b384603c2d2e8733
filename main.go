package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "transitbook/internal/config"
	intdb "transitbook/internal/db"
	router "transitbook/internal/http"
	"transitbook/internal/http/handlers"
	"transitbook/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
)

func main() {
	var (
		envFile     string
		addr        string
		migrateOnly bool
	)
	pflag.StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	pflag.StringVar(&addr, "addr", "", "listen address, overrides APP_ADDR")
	pflag.BoolVar(&migrateOnly, "migrate-only", false, "create the schema and exit")
	pflag.Parse()

	env := intconfig.LoadEnv(envFile)
	if addr != "" {
		env.AppAddr = addr
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	if err := env.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := intconfig.ConnectDB(env)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer intconfig.CloseDB()

	if env.AutoMigrate || migrateOnly {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := intdb.EnsureSchema(ctx, db)
		cancel()
		if err != nil {
			log.Fatalf("schema: %v", err)
		}
	}
	if migrateOnly {
		return
	}

	bootstrapCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	created, err := services.AuthService{DB: db}.EnsureBootstrapAdmin(bootstrapCtx, env.AdminUsername, env.AdminPassword)
	cancel()
	if err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}
	if created {
		log.Printf("created bootstrap admin %q", env.AdminUsername)
	}

	if err := handlers.Configure(env); err != nil {
		log.Fatalf("config: %v", err)
	}
	log.Printf("fare mode: %s", env.FareMode)

	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}

	log.Println("server stopped")
}
