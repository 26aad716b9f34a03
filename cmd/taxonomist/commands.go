package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/poiesic/taxonomist"
	"github.com/poiesic/taxonomist/heuristics"
	"github.com/poiesic/taxonomist/ingestion"
	"github.com/poiesic/taxonomist/search"
	"github.com/poiesic/taxonomist/service"
	"github.com/poiesic/taxonomist/taxonomy"
	"github.com/urfave/cli/v2"
)

func buildCommand(c *cli.Context) error {
	ctx := context.Background()

	src, err := openSource(c)
	if err != nil {
		return err
	}
	defer src.Close()

	snap, err := src.build()
	if err != nil {
		return err
	}
	if err := taxonomy.WriteArtifacts(snap.Taxonomy, src.cfg.OutputJSON, src.cfg.OutputMarkdown); err != nil {
		return err
	}
	if snap, err = src.store(ctx, snap); err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Built taxonomy %016x: %d tables, %d domains, %d relationships\n",
		uint64(snap.Id), len(snap.Taxonomy.TableIndex), len(snap.Taxonomy.Domains), len(snap.Taxonomy.Relationships))
	for _, path := range []string{src.cfg.OutputJSON, src.cfg.OutputMarkdown} {
		if path != "" {
			fmt.Fprintf(w, "  wrote %s\n", path)
		}
	}
	if src.catalog != nil {
		fmt.Fprintf(w, "  stored in %s\n", src.cfg.DB)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.Join(c.Args().Slice(), " ")
	queriesPath := c.String("queries")
	if strings.TrimSpace(query) == "" && queriesPath == "" {
		return fmt.Errorf("a query or --queries file is required")
	}

	src, err := openSource(c)
	if err != nil {
		return err
	}
	defer src.Close()

	snap, err := src.snapshot(ctx)
	if err != nil {
		return err
	}
	searcher, err := search.NewSearcher(append(src.cfg.SearchOptions(), search.WithLogger(src.logger))...)
	if err != nil {
		return err
	}

	if queriesPath == "" {
		results, err := searcher.Search(snap.Taxonomy, query)
		if err != nil {
			return err
		}
		if c.Bool("json") {
			return writeJSON(c.App.Writer, results)
		}
		renderResults(c.App.Writer, results)
		return nil
	}

	queries, err := readQueries(queriesPath)
	if err != nil {
		return err
	}
	progress := search.NewProgressTracker(c.App.ErrWriter, len(queries), max(1, len(queries)/20))
	batch, err := searcher.SearchMany(ctx, snap.Taxonomy, queries, progress)
	if err != nil {
		return err
	}
	if c.Bool("json") {
		return writeJSON(c.App.Writer, batch)
	}
	for _, b := range batch {
		fmt.Fprintf(c.App.Writer, "\n%q\n", b.Query)
		if b.Err != nil {
			fmt.Fprintf(c.App.Writer, "  error: %v\n", b.Err)
			continue
		}
		renderResults(c.App.Writer, b.Results)
	}
	return nil
}

// readQueries reads one query per line, skipping blank lines and # comments.
func readQueries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var queries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	return queries, scanner.Err()
}

func showCommand(c *cli.Context) error {
	ctx := context.Background()

	src, err := openSource(c)
	if err != nil {
		return err
	}
	defer src.Close()

	snap, err := src.snapshot(ctx)
	if err != nil {
		return err
	}
	tax := snap.Taxonomy
	w := c.App.Writer

	if name := c.Args().First(); name != "" {
		entry, ok := tax.TableIndex[name]
		if !ok {
			return fmt.Errorf("%w: %q", taxonomy.ErrUnknownTable, name)
		}
		shared, err := taxonomy.SharedColumns(tax, name, src.rules.GenericColumnSet())
		if err != nil {
			return err
		}
		renderTableDetails(w, name, entry, tax.TableDetails[name], shared, taxonomy.RelatedRelationships(tax, name))
		return nil
	}

	if c.IsSet("filter") {
		renderTableList(w, tax, c.String("filter"))
		return nil
	}
	return taxonomy.WriteMarkdown(w, tax)
}

func suggestCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	meta, err := ingestion.LoadFile(cfg.Input)
	if err != nil {
		return err
	}
	suggester, err := heuristics.NewSuggester()
	if err != nil {
		return err
	}
	suggestions, err := suggester.Suggest(meta)
	if err != nil {
		return err
	}
	if c.Bool("json") {
		return writeJSON(c.App.Writer, suggestions)
	}
	renderSuggestions(c.App.Writer, suggestions)
	return nil
}

func snapshotsCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	catalog, err := taxonomist.OpenCatalog(cfg.DB)
	if err != nil {
		return err
	}
	defer catalog.Close()

	headers, err := catalog.Snapshots(ctx)
	if err != nil {
		return err
	}
	renderSnapshots(c.App.Writer, headers)
	return nil
}

func serveCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := openSource(c)
	if err != nil {
		return err
	}
	defer src.Close()

	snap, err := src.snapshot(ctx)
	if err != nil {
		return err
	}
	searcher, err := search.NewSearcher(append(src.cfg.SearchOptions(), search.WithLogger(src.logger))...)
	if err != nil {
		return err
	}

	opts := []service.Option{
		service.WithLogger(src.logger),
		service.WithSearcher(searcher),
		service.WithAddr(src.cfg.Server.Addr),
		service.WithCache(src.cfg.Server.CacheSize, src.cfg.Server.CacheTTL),
		service.WithIgnoredColumns(src.rules.GenericColumnSet()),
		service.WithRebuild(src.rebuild),
	}
	if src.cfg.Server.Watch {
		opts = append(opts, service.WithWatch(src.cfg.Input, service.DefaultDebounce))
	}

	srv, err := service.NewServer(snap, opts...)
	if err != nil {
		return err
	}
	if err := srv.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
