// Command alice builds an FM-Index over a text file and serves Count,
// Contains and Locate queries against it from the command line.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ext-sakamoro/ALICE-Search"
	"github.com/ext-sakamoro/ALICE-Search/pkg/config"
	"github.com/ext-sakamoro/ALICE-Search/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	textPath := flag.String("text", "", "path to the text file to index")
	mode := flag.String("mode", "count", "query mode: count, contains, or locate")
	pattern := flag.String("pattern", "", "pattern to search for")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if *textPath == "" || *pattern == "" {
		fmt.Fprintln(os.Stderr, "usage: alice -text=<path> -pattern=<pattern> [-mode=count|contains|locate] [-config=<path>]")
		os.Exit(1)
	}

	text, err := os.ReadFile(*textPath)
	if err != nil {
		slog.Error("reading text file", "path", *textPath, "error", err)
		os.Exit(1)
	}

	ix, err := alice.Build(text, cfg.Index.SASampleStep)
	if err != nil {
		slog.Error("building index", "error", err)
		os.Exit(1)
	}
	slog.Info("index built", "text_len", ix.TextLen(), "size_bytes", ix.SizeBytes(), "compression_ratio", ix.CompressionRatio())

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	switch *mode {
	case "count":
		fmt.Fprintln(out, ix.Count([]byte(*pattern)))
	case "contains":
		fmt.Fprintln(out, ix.Contains([]byte(*pattern)))
	case "locate":
		for _, pos := range ix.LocateAll([]byte(*pattern)) {
			fmt.Fprintln(out, pos)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(1)
	}
}
