package main

import (
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/decred/slog"

	"github.com/blitzgame/blitzserver/pkg/server"
	"github.com/blitzgame/blitzserver/pkg/utils"
)

func main() {
	var (
		host       string
		port       int
		portFile   string
		datadir    string
		debugLevel string
	)
	flag.StringVar(&host, "host", "127.0.0.1", "Host to listen on")
	flag.IntVar(&port, "port", 0, "Port to listen on (0 for random free port)")
	flag.StringVar(&portFile, "portfile", "", "If set, write selected port to this file")
	flag.StringVar(&datadir, "datadir", "", "Data directory for logs (default: none, stdout only)")
	flag.StringVar(&debugLevel, "debuglevel", "info", "Logging level: trace, debug, info, warn, error")
	flag.Parse()

	backend := slog.NewBackend(os.Stdout)
	log := backend.Logger("SERV")
	if level, ok := slog.LevelFromString(debugLevel); ok {
		log.SetLevel(level)
	}

	if datadir != "" {
		if err := utils.EnsureDataDirExists(datadir); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create datadir: %v\n", err)
			os.Exit(1)
		}
		logPath := filepath.Join(datadir, "logs", "blitzsrv.log")
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer logFile.Close()
		fileBackend := slog.NewBackend(logFile)
		log = fileBackend.Logger("SERV")
		if level, ok := slog.LevelFromString(debugLevel); ok {
			log.SetLevel(level)
		}
	}

	srv := server.NewServer(log)

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to listen: %v\n", err)
		os.Exit(1)
	}

	if portFile != "" {
		_, p, _ := net.SplitHostPort(lis.Addr().String())
		_ = os.WriteFile(portFile, []byte(p), 0600)
	}

	log.Infof("Listening on %s", lis.Addr())
	if err := http.Serve(lis, srv.Router()); err != nil {
		fmt.Fprintf(os.Stderr, "serve error: %v\n", err)
		os.Exit(1)
	}
}
