// Command statement renders a monthly PDF statement from the persisted
// ledger without going through the HTTP server.
package main

import (
	"context"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"financetrack/internal/cli"
	"financetrack/internal/core"
	"financetrack/internal/log"
	"financetrack/internal/report"
	"financetrack/internal/storage"
	"financetrack/internal/store"
)

var args struct {
	Backend  string `help:"Persistence backend." enum:"json,sqlite" default:"json"`
	DataDir  string `help:"Data directory for the json backend." default:"./data" type:"path"`
	DBPath   string `help:"Database path for the sqlite backend." default:"./data/financetrack.db" type:"path"`
	Month    string `help:"Statement month as YYYY-MM. Defaults to the current month."`
	Category string `help:"Restrict to one category." default:"all"`
	Group    string `help:"Restrict to one group." default:"all"`
	Out      string `help:"Output file." default:"statement.pdf" type:"path"`
}

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	kctx := kong.Parse(&args,
		kong.Name("statement"),
		kong.Description("Render a monthly financial statement as PDF."))

	ctx := context.Background()

	month := core.MonthKeyOf(time.Now())
	if args.Month != "" {
		parsed, err := core.ParseMonthKey(args.Month)
		kctx.FatalIfErrorf(err)
		month = parsed
	}

	var persistence store.Persistence
	switch args.Backend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(args.DBPath)
		kctx.FatalIfErrorf(err)
		defer repo.Close()
		persistence = repo
	default:
		persistence = store.NewJSONFileInDir(args.DataDir)
	}

	ledger, err := store.Open(ctx, persistence)
	kctx.FatalIfErrorf(err)

	criteria := core.Criteria{Month: month, Category: args.Category, Group: args.Group}
	filtered, err := core.Apply(ledger.All(), criteria)
	kctx.FatalIfErrorf(err)

	out, err := os.Create(args.Out)
	kctx.FatalIfErrorf(err)
	defer out.Close()

	stmt := report.Statement{
		Month:        month,
		Transactions: filtered,
		Totals:       core.ComputeTotals(filtered),
		GeneratedAt:  time.Now(),
	}
	kctx.FatalIfErrorf(report.WriteStatement(out, stmt))

	logger.Info("Statement written",
		"file", args.Out,
		log.FieldMonth, string(month),
		log.FieldCount, len(filtered))
}
