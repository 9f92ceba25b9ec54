package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-auth-gateway/cognito"
	"github.com/jrsteele09/go-auth-gateway/internal/config"
	"github.com/jrsteele09/go-auth-gateway/server"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	configureLogging(c.GetEnv())
	displayAppname(c.GetAppName())

	if err := config.Validate(c); err != nil {
		return fmt.Errorf("config.Validate %w", err)
	}

	provider, err := cognito.NewClient(c)
	if err != nil {
		return fmt.Errorf("cognito.NewClient %w", err)
	}

	var options []server.Option
	if c.GetCognitoUserPoolID() != "" {
		verifier, err := cognito.NewVerifier(context.Background(), c)
		if err != nil {
			return fmt.Errorf("cognito.NewVerifier %w", err)
		}
		options = append(options, server.WithVerifier(verifier))
	} else {
		zlog.Warn().Msg("COGNITO_USER_POOL_ID not set, bearer token routes disabled")
	}

	s, err := server.New(c, provider, options...)
	if err != nil {
		return fmt.Errorf("server.New %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: s}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func configureLogging(env string) {
	if env == "DEV" {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
