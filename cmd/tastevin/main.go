package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mbellini/tastevin/internal/app"
	"github.com/mbellini/tastevin/internal/logger"
)

var version = "dev"

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "tastevin.db", "SQLite database path")
	baseURL := flag.String("baseurl", "", "Base URL for join links and QR codes (auto-detected if not set)")
	logLevel := flag.String("loglevel", "info", "Log level (debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Tastevin - Blind Wine Tasting Events

Usage:
  tastevin [options]

Options:
  -port int      HTTP server port (default 8080)
  -db string     SQLite database path (default "tastevin.db")
  -baseurl str   Base URL for join links (auto-detected from LAN IP if not set)
  -loglevel str  Log level: debug, info, warn, error (default "info")
  -version       Show version and exit
  -help          Show this help message

Examples:
  tastevin                           # Run on port 8080 with tastevin.db
  tastevin -port 9000                # Run on port 9000
  tastevin -db /data/tasting.db      # Use custom database path
  tastevin -baseurl https://wine.example.com

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("tastevin %s\n", version)
		os.Exit(0)
	}

	appLog := logger.NewWithLevel(logger.ParseLevel(*logLevel))

	addr := fmt.Sprintf(":%d", *port)
	base := *baseURL
	if base == "" {
		base = app.DetectBaseURL(addr)
	}

	a, err := app.New(appLog, *dbPath, base)
	if err != nil {
		log.Fatal("Failed to initialize application:", err)
	}
	defer a.Close()

	appLog.Info("Join link base", "url", base)
	if err := a.Run(addr); err != nil {
		log.Fatal(err)
	}
}
