package main

import (
	"context"
	"database/sql"
	"log"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"

	_ "modernc.org/sqlite"

	"github.com/coldwatch/coldwatch/internal/api"
	"github.com/coldwatch/coldwatch/internal/httputil"
	"github.com/coldwatch/coldwatch/internal/ingest"
	"github.com/coldwatch/coldwatch/internal/report"
	"github.com/coldwatch/coldwatch/internal/store"
)

var cli struct {
	Source     string  `help:"Workbook source: http(s)/ftp URL or local path." required:"" env:"COLDWATCH_SOURCE"`
	DB         string  `help:"Path to the SQLite source cache." default:"data/coldwatch.db" env:"COLDWATCH_DB"`
	Port       string  `help:"HTTP listen port." default:"8080" env:"COLDWATCH_PORT"`
	DesiredMin float64 `help:"Lower bound of the acceptable range, inclusive." default:"-25" env:"COLDWATCH_DESIRED_MIN"`
	DesiredMax float64 `help:"Upper bound of the acceptable range, inclusive." default:"-10" env:"COLDWATCH_DESIRED_MAX"`
	Year       int     `help:"Restrict dashboards to this ISO year (0 = all years)." default:"0" env:"COLDWATCH_YEAR"`
	Offline    bool    `help:"Serve the last cached workbook without fetching."`
	NoCache    bool    `help:"Disable the SQLite payload cache."`
	Once       bool    `help:"Load the source, log per-channel compliance, and exit."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("coldwatch"),
		kong.Description("Cold-chain temperature compliance dashboard."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	if cli.DesiredMax < cli.DesiredMin {
		log.Fatalf("desired-max %.1f is below desired-min %.1f", cli.DesiredMax, cli.DesiredMin)
	}

	var st *store.Store
	if !cli.NoCache {
		db, err := sql.Open("sqlite", cli.DB)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer db.Close()

		db.Exec("PRAGMA journal_mode=WAL")
		db.Exec("PRAGMA busy_timeout=5000")

		st = store.New(db)
		if err := st.Migrate(); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	loader := ingest.NewLoader(cli.Source, httputil.NewClient(), st, cli.Offline)

	channels, err := loader.Load(ctx)
	if err != nil {
		log.Fatalf("load source: %v", err)
	}
	log.Printf("loaded %d channels from %s", len(channels), cli.Source)

	rng := report.Range{Min: cli.DesiredMin, Max: cli.DesiredMax}

	if cli.Once {
		for _, kpi := range report.ComplianceAll(report.FilterYearAll(channels, cli.Year), rng) {
			log.Printf("%s: %d/%d readings in range (%.1f%%)", kpi.Channel, kpi.SafeCount, kpi.TotalCount, kpi.Ratio*100)
		}
		return
	}

	server := api.NewServer(loader, api.Config{Range: rng, SelectedYear: cli.Year}, cli.Port)
	log.Printf("starting server on :%s", cli.Port)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
