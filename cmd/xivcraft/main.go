package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sevenpixels/xivcraft/internal/catalog"
	"github.com/sevenpixels/xivcraft/internal/config"
	"github.com/sevenpixels/xivcraft/internal/engine"
	"github.com/sevenpixels/xivcraft/internal/logger"
	"github.com/sevenpixels/xivcraft/internal/store"
	"github.com/sevenpixels/xivcraft/internal/tree"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, "xivcraft", false))

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr)
	}

	client := store.NewClient(cfg.StoreBaseURL, cfg.StoreTimeout)
	legacy := store.NewLegacyClient(cfg.LegacyDataURL, cfg.StoreTimeout)
	svc := engine.NewService(catalog.NewGateway(client, legacy))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithRequestID(ctx, logger.GenerateRequestID())

	if err := run(ctx, svc, os.Args[1], os.Args[2:]); err != nil {
		logger.FromContext(ctx).Error("command failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, svc engine.Service, command string, args []string) error {
	switch command {
	case "search":
		fs := flag.NewFlagSet("search", flag.ExitOnError)
		fuzzyOnly := fs.Bool("fuzzy", false, "skip the cascade and fuzzy-match directly")
		_ = fs.Parse(args)
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: search [-fuzzy] <text>")
		}
		outcome, err := svc.SearchItems(ctx, fs.Arg(0), *fuzzyOnly)
		if err != nil {
			return err
		}
		return printJSON(outcome)

	case "item":
		fs := flag.NewFlagSet("item", flag.ExitOnError)
		id := fs.Int("id", 0, "item id")
		_ = fs.Parse(args)
		item, err := svc.GetItemByID(ctx, *id)
		if err != nil {
			return err
		}
		if item == nil {
			fmt.Println("null")
			return nil
		}
		return printJSON(item)

	case "tree":
		fs := flag.NewFlagSet("tree", flag.ExitOnError)
		id := fs.Int("id", 0, "item id")
		quantity := fs.Int("n", 1, "quantity to craft")
		excludeCrystals := fs.Bool("no-crystals", false, "drop elemental crystals from the tree")
		flat := fs.Bool("flat", false, "print summed totals instead of the tree")
		_ = fs.Parse(args)
		node, err := svc.BuildCraftingTree(ctx, *id, *quantity, *excludeCrystals)
		if err != nil {
			return err
		}
		if *flat {
			return printJSON(tree.Flatten(node))
		}
		return printJSON(node)

	case "related":
		fs := flag.NewFlagSet("related", flag.ExitOnError)
		id := fs.Int("id", 0, "item id")
		_ = fs.Parse(args)
		ids, err := svc.FindRelatedItems(ctx, *id)
		if err != nil {
			return err
		}
		return printJSON(ids)

	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("metrics listener failed", "error", err)
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: xivcraft <command> [flags]

commands:
  search [-fuzzy] <text>                resolve text into catalog items
  item -id <id>                         fetch one item
  tree -id <id> [-n qty] [-no-crystals] [-flat]
                                        expand the crafting tree
  related -id <id>                      items that consume the given item`)
}
