package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/pevans/snooze/config"
	"github.com/pevans/snooze/fakeapi"
	"github.com/pevans/snooze/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addr := flag.String("addr", cfg.StubAddr, "Address to listen on")
	secret := flag.String("secret", getEnv("SNOOZE_STUB_SECRET", "dev-secret"), "Token signing secret")
	flag.Parse()

	if err := logger.Init(cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := fakeapi.New(*secret).SetupRouter()

	logger.Log.Infow("starting Hack-or-Snooze stub API", "addr", "http://"+*addr)
	if err := router.Run(*addr); err != nil {
		logger.Log.Errorw("server failed", "error", err)
		os.Exit(1)
	}
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
