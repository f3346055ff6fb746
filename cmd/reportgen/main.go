// reportgen fetches journal entries from a running journal analyzer API,
// applies a date-only analysis window, and builds the HTML report locally.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/JanHsuanChu/JournalAnalyzer/internal/config"
	"github.com/JanHsuanChu/JournalAnalyzer/internal/journal"
	"github.com/JanHsuanChu/JournalAnalyzer/internal/llm"
	"github.com/JanHsuanChu/JournalAnalyzer/internal/report"
	"github.com/JanHsuanChu/JournalAnalyzer/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	apiBase := flag.String("api", "http://127.0.0.1:8000", "base URL of the journal analyzer API")
	from := flag.String("from", "", "analysis window start (YYYY-MM-DD)")
	to := flag.String("to", "", "analysis window end (YYYY-MM-DD)")
	phrases := flag.String("phrases", "", "comma-separated trend phrases")
	outDir := flag.String("out", "reports", "directory for the generated report")
	flag.Parse()

	if *from == "" || *to == "" {
		fmt.Fprintln(os.Stderr, "Please select an analysis date range (-from and -to).")
		os.Exit(1)
	}
	dateFrom, err := time.Parse(journal.DateFormat, *from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -from date %q; expected YYYY-MM-DD.\n", *from)
		os.Exit(1)
	}
	dateTo, err := time.Parse(journal.DateFormat, *to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -to date %q; expected YYYY-MM-DD.\n", *to)
		os.Exit(1)
	}

	ctx := context.Background()

	entries, err := store.FetchEntries(ctx, *apiBase)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Unable to load journal entries. Please ensure the API is running and try again.")
		os.Exit(1)
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No journal entries available. Ensure the entries file is present and try again.")
		os.Exit(1)
	}

	subset := journal.FilterDateOnly(entries, &dateFrom, &dateTo)
	if len(subset) == 0 {
		fmt.Fprintln(os.Stderr, "No journal entries in the selected date range. Adjust the range and try again.")
		os.Exit(1)
	}

	cfg := config.Default()
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	var summarizer report.Summarizer
	if cfg.LLM.APIKey != "" {
		client, err := llm.NewClient(ctx, cfg.LLM)
		if err != nil {
			log.Fatalf("Failed to initialize LLM client: %v", err)
		}
		summarizer = llm.NewGateway(client, time.Duration(cfg.LLM.TimeoutSeconds)*time.Second)
	} else {
		log.Println("LLM_API_KEY not set; building report with placeholder summaries")
	}

	var trendPhrases []string
	for _, p := range strings.Split(*phrases, ",") {
		if p = strings.TrimSpace(p); p != "" {
			trendPhrases = append(trendPhrases, p)
		}
	}

	builder := report.NewBuilder(summarizer, *outDir, cfg.LLM.Model)
	path, err := builder.Build(ctx, subset, trendPhrases, dateFrom, dateTo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Report generation failed. Check that the API is running and LLM_API_KEY is set.")
		os.Exit(1)
	}

	fmt.Println(path)
}
