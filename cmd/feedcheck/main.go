// Command feedcheck fetches the PreStocks feed once and prints how each
// configured target resolves. Useful for verifying feed connectivity and
// alias coverage without running the full service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/jopli11/PreStocks-Tracker/internal/config"
	"github.com/jopli11/PreStocks-Tracker/internal/feed"
	"github.com/jopli11/PreStocks-Tracker/internal/format"
	"github.com/jopli11/PreStocks-Tracker/internal/match"
	"github.com/jopli11/PreStocks-Tracker/internal/targets"
)

func main() {
	baseURL := flag.String("url", config.DefaultFeedURL, "feed base URL")
	timeout := flag.Duration("timeout", 10*time.Second, "fetch timeout")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	client := feed.NewClient(*baseURL,
		feed.WithTimeout(*timeout),
		feed.WithLogger(logger),
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	records, err := client.Fetch(ctx)
	if err != nil {
		logger.Error("fetch failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("fetched %d records from %s%s\n\n", len(records), *baseURL, feed.Path)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TARGET\tSYMBOL\tPRICE\tVALUATION")

	for _, entry := range match.ResolveAll(targets.Default(), records) {
		if entry.Record == nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\n", entry.Key)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			entry.Key,
			entry.Record.Symbol,
			format.Currency(entry.Record.Price()),
			format.Compact(entry.Record.Valuation()),
		)
	}

	w.Flush()
}
