// Command hud runs the overlay render loop. It reads vehicle state from a
// serial bench feed, stdin or the synthetic generator, renders one overlay
// bundle per UI frame and fans it out to gRPC clients and the recorder.
//
// Usage:
//
//	hud [flags]
//
// Flags:
//
//	-config       Tuning config file, JSON or YAML (default: config/tuning.defaults.json)
//	-port         Serial port carrying the state feed; "-" reads stdin
//	-synthetic    Generate a synthetic drive instead of reading a feed
//	-grpc-listen  Overlay stream address; empty disables (default: localhost:50061)
//	-db           Recorder database; empty disables (default: hud.db)
//	-listen       Debug HTTP address; empty disables (default: localhost:8080)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/velocity.hud/internal/config"
	"github.com/banshee-data/velocity.hud/internal/monitoring"
	"github.com/banshee-data/velocity.hud/internal/version"
)

type options struct {
	configPath  string
	logLevel    string
	port        string
	baud        int
	parity      string
	synthetic   bool
	seed        int64
	grpcListen  string
	maxClients  int
	dbPath      string
	recordEvery uint64
	listen      string
}

func parseFlags(fs *flag.FlagSet, args []string) (options, bool, error) {
	var o options
	fs.StringVar(&o.configPath, "config", config.DefaultConfigPath, "Tuning config file (JSON or YAML)")
	fs.StringVar(&o.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.StringVar(&o.port, "port", "", `Serial port carrying the state feed ("-" reads stdin)`)
	fs.IntVar(&o.baud, "baud", 115200, "Serial baud rate")
	fs.StringVar(&o.parity, "parity", "N", "Serial parity (N, E or O)")
	fs.BoolVar(&o.synthetic, "synthetic", false, "Generate a synthetic drive instead of reading a feed")
	fs.Int64Var(&o.seed, "seed", 1, "Synthetic drive seed")
	fs.StringVar(&o.grpcListen, "grpc-listen", "localhost:50061", "Overlay stream listen address (empty disables)")
	fs.IntVar(&o.maxClients, "max-clients", 5, "Maximum concurrent stream clients")
	fs.StringVar(&o.dbPath, "db", "hud.db", "Recorder database path (empty disables)")
	fs.Uint64Var(&o.recordEvery, "record-every", 1, "Record one frame in N")
	fs.StringVar(&o.listen, "listen", "localhost:8080", "Debug HTTP listen address (empty disables)")
	showVersion := fs.Bool("version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return o, false, err
	}
	if *showVersion {
		return o, true, nil
	}
	if o.synthetic && o.port != "" {
		return o, false, errors.New("-synthetic and -port are mutually exclusive")
	}
	if !o.synthetic && o.port == "" {
		return o, false, errors.New("one of -port or -synthetic is required")
	}
	return o, false, nil
}

func main() {
	opts, showVersion, err := parseFlags(flag.CommandLine, os.Args[1:])
	if showVersion {
		fmt.Println(version.String())
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "hud: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}
	if err := monitoring.SetLevel(opts.logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "hud: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	monitoring.Logf("%s starting", version.String())
	if err := run(ctx, opts); err != nil {
		monitoring.Logf("hud: %v", err)
		os.Exit(1)
	}
}
