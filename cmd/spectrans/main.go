// Command spectrans computes the transmission, excitation efficiency and
// relative brightness of fluorescence filter configurations.
//
// Usage:
//
//	spectrans [flags] <command> [command flags]
//
// Commands:
//
//	list [dyes|filters|excitation|sets]   list the catalogue
//	compute                               compute one configuration
//	rank                                  rank every dye in a configuration
//	points                                dump a composite spectrum as TSV
//
// Examples:
//
//	spectrans -dir ./spectra list dyes
//	spectrans -dir ./spectra compute -set "GFP"
//	spectrans -dir ./spectra compute -dye Alexa-488 -source LED-470 -filter 525-50 -filter 495lp:r
//	spectrans -config spectrans.yaml rank -set "GFP"
//	spectrans -dir ./spectra -watch compute -set "GFP"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwbudde/spectral-transmission/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("spectrans", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML or JSON configuration file")
	driver := fs.String("driver", "", "spectra source: dir, http, s3 or sqlite")
	dir := fs.String("dir", "", "spectra directory (dir driver)")
	url := fs.String("url", "", "spectra base URL (http driver)")
	sqlitePath := fs.String("sqlite", "", "spectra database (sqlite driver)")
	top := fs.Int("top", 0, "number of dyes per ranking")
	watch := fs.Bool("watch", false, "recompute when spectra files change (dir driver)")
	verbose := fs.Bool("v", false, "log diagnostics to stderr")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: spectrans [flags] <command> [command flags]\n\n")
		fmt.Fprintf(stderr, "Computes filter transmission, excitation efficiency and dye brightness.\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		fmt.Fprintf(stderr, "  list [dyes|filters|excitation|sets]\n")
		fmt.Fprintf(stderr, "  compute   compute one configuration\n")
		fmt.Fprintf(stderr, "  rank      rank every dye in a configuration\n")
		fmt.Fprintf(stderr, "  points    dump a composite spectrum as TSV\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}
	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	if setFlags["driver"] {
		cfg.Source.Driver = *driver
	}
	if setFlags["dir"] {
		cfg.Source.Dir = *dir
	}
	if setFlags["url"] {
		cfg.Source.URL = *url
	}
	if setFlags["sqlite"] {
		cfg.Source.SQLite.Path = *sqlitePath
	}
	if setFlags["top"] {
		cfg.TopDyes = *top
	}
	if setFlags["watch"] {
		cfg.Watch = *watch
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logOut := io.Discard
	if *verbose {
		logOut = stderr
	}
	logger := log.New(logOut, "spectrans: ", log.LstdFlags)

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return flag.ErrHelp
	}

	app, err := newApp(ctx, cfg, logger, stdout)
	if err != nil {
		return err
	}
	defer app.Close()

	switch cmd, cmdArgs := rest[0], rest[1:]; cmd {
	case "list":
		return app.list(ctx, cmdArgs)
	case "compute":
		return app.compute(ctx, cmdArgs)
	case "rank":
		return app.rank(ctx, cmdArgs)
	case "points":
		return app.points(ctx, cmdArgs)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}
