package main

import (
	"cmp"
	"flag"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"dbwizard/internal/api"
	"dbwizard/internal/db"
	_ "dbwizard/internal/db/extractors"
	"dbwizard/internal/logger"
	"dbwizard/pkg/config"
)

var defaultPort = 8080

func main() {
	// flags
	cfgPath := flag.String("config", filepath.Join(".", "configs", "example.yaml"), "path to config YAML")
	driverFlag := flag.String("driver", "", "db driver override (postgres,mysql,sqlite,sqlserver,godror)")
	dsnFlag := flag.String("dsn", "", "dsn override")
	port := flag.Int("port", 0, "http port (overrides config, default"+fmt.Sprintf(" %d)", defaultPort))
	timeout := flag.Int("timeout", 0, "db connect timeout seconds (overrides config)")
	webdir := flag.String("web", filepath.Join(".", "web"), "web ui directory")
	flag.Parse()

	// attempt to load config file (optional), falling back to the environment
	appCfg, err := config.LoadFile(*cfgPath)
	if err != nil {
		if appCfg, err = config.LoadEnv(); err != nil {
			panic(err)
		}
	}
	if err := logger.Init(appCfg.Log.Level, appCfg.Log.Development); err != nil {
		panic(err)
	}
	defer logger.Sync()
	logger.Info("config file %s", *cfgPath)

	// allow CLI overrides
	if *driverFlag != "" && *dsnFlag != "" {
		appCfg.Database = config.DBConfig{Type: *driverFlag, DSN: *dsnFlag}
	}
	appCfg.Discovery.Timeout = cmp.Or(*timeout, appCfg.Discovery.Timeout, 10)
	*port = cmp.Or(*port, appCfg.Server.Port, defaultPort)

	mux := http.NewServeMux()
	// static web
	mux.Handle("/", http.FileServer(http.Dir(*webdir)))
	api.New(appCfg).Routes(mux)

	// HTTP server
	addr := fmt.Sprintf(":%d", *port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	logger.Info("listening on %s, serving %s", addr, *webdir)
	logger.Info("registered dialects: %v", db.RegisteredDialects())
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("%v", err)
	}
}
