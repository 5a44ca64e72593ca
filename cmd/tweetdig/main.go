package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"tweetdig/internal/cmdlog"
	"tweetdig/internal/config"
	"tweetdig/internal/metrics"
	"tweetdig/internal/pipeline"
	"tweetdig/internal/sentiment"
	"tweetdig/internal/store/tweetdb"
	"tweetdig/internal/theme"
	"tweetdig/internal/xclient"
)

func main() {
	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	switch cmd {
	case "init":
		cmdInit()
	case "schema":
		cmdSchema()
	case "run":
		cmdRun()
	default:
		printHelp()
	}
}

func printHelp() {
	theme.PrintBanner()
	fmt.Println("Usage: tweetdig <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  init      Create a config file at ./tweetdig.yaml")
	fmt.Println("  schema    Create the database file and tweets table")
	fmt.Println("  run       Search, analyze, and store tweets for a query")
	fmt.Println()
	fmt.Println("  run [-config path] [-count n] [-db path] <query> [resultCount]")
}

func loadConfig(path string) config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		cfg = config.Default()
		cfg.ResolveEnv()
	}
	return cfg
}

func cmdInit() {
	out := flag.NewFlagSet("init", flag.ExitOnError)
	path := out.String("path", "./tweetdig.yaml", "path to write config")
	_ = out.Parse(os.Args[2:])
	cfg := config.Default()
	if err := config.Save(*path, cfg); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	abs, _ := filepath.Abs(*path)
	theme.PrintBanner()
	fmt.Println("Config written to:", abs)
}

func cmdSchema() {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	cfgPath := fs.String("config", "./tweetdig.yaml", "config path")
	dbPath := fs.String("db", "", "database path override")
	_ = fs.Parse(os.Args[2:])
	cfg := loadConfig(*cfgPath)
	path := cfg.Storage.DBPath
	if *dbPath != "" {
		path = *dbPath
	}
	err := cmdlog.Run("schema", func() error {
		db, err := tweetdb.Open(path)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.EnsureSchema(context.Background())
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	fmt.Println("Schema ready at:", path)
}

func cmdRun() {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	cfgPath := fs.String("config", "./tweetdig.yaml", "config path")
	countFlag := fs.Int("count", 0, "result count override")
	dbPath := fs.String("db", "", "database path override")
	_ = fs.Parse(os.Args[2:])
	args := fs.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: tweetdig run [options] <query> [resultCount]")
		os.Exit(1)
	}
	query := args[0]

	cfg := loadConfig(*cfgPath)
	count := cfg.Search.DefaultCount
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			fmt.Fprintln(os.Stderr, "error: resultCount must be a positive integer")
			os.Exit(1)
		}
		count = n
	}
	if *countFlag > 0 {
		count = *countFlag
	}
	path := cfg.Storage.DBPath
	if *dbPath != "" {
		path = *dbPath
	}

	metrics.StartServer(cfg.Metrics.Addr)
	scorer, err := sentiment.New(cfg.Sentiment)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	client := xclient.NewHTTPClient(cfg.Credentials.APIKey, cfg.Credentials.APISecret, cfg.Credentials.BearerToken)

	theme.PrintBanner()
	fmt.Printf("Searching for tweets about: %s\n", query)

	err = cmdlog.Run("run", func() error {
		db, err := tweetdb.Open(path)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.EnsureSchema(context.Background()); err != nil {
			return err
		}
		d := &pipeline.Driver{
			Provider: client,
			Store:    db,
			Scorer:   scorer,
			FoldCase: cfg.Tokenizer.FoldCase,
		}
		sum, err := d.Run(context.Background(), query, count)
		if err != nil {
			return err
		}
		fmt.Println("==================================")
		fmt.Printf("Fetched: %d  Stored: %d  Failed: %d\n", sum.Fetched, sum.Stored, len(sum.Failed))
		for _, f := range sum.Failed {
			fmt.Fprintf(os.Stderr, "post %d: %v\n", f.ID, f.Err)
		}
		if sum.HasFatal() {
			return errors.New("storage failed mid-batch")
		}
		return nil
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
