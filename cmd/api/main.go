package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/idnildas/hipchat/internal/config"
	"github.com/idnildas/hipchat/internal/database"
	"github.com/idnildas/hipchat/internal/server"
	"github.com/idnildas/hipchat/internal/utils"
)

func main() {
	log := logrus.New()

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	flags := pflag.NewFlagSet("api", pflag.ExitOnError)
	addr := flags.String("addr", ":"+cfg.Port, "listen address")
	level := flags.String("log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	_ = flags.Parse(os.Args[1:])

	lvl, err := logrus.ParseLevel(*level)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	log.SetLevel(lvl)
	if cfg.Env != "dev" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	srv := server.NewServer(*addr, database.New(), cfg.JWTSecret, time.Duration(cfg.JWTTTLHrs)*time.Hour, log)

	// Integration token with every scope, so a fresh stand-in is usable.
	token, err := srv.IssueToken(0, utils.AllScopes...)
	if err != nil {
		log.Fatalf("token error: %v", err)
	}
	fmt.Printf("HIPCHAT_TOKEN=%s\nHIPCHAT_SERVER_URL=http://localhost%s\n", token, *addr)

	if err := srv.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
