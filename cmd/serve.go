package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/docsitehq/docsite/internal/index"
	"github.com/docsitehq/docsite/internal/progress"
	"github.com/docsitehq/docsite/internal/semantic"
	"github.com/docsitehq/docsite/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and serve it locally with live reload",
	Long: `Builds the site, serves it on localhost, and watches the content directory
for changes. Connected browsers track the section being read, reload when
the site is rebuilt, and search through the site index.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("open", false, "open the browser once serving")
	serveCmd.Flags().Bool("all-origins", false, "allow any origin on the search API")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Serve.Port = port
	}
	if open, _ := cmd.Flags().GetBool("open"); open {
		cfg.Serve.Open = true
	}
	allOrigins, _ := cmd.Flags().GetBool("all-origins")

	gen := site.NewGenerator(cfg)
	gen.Reporter = progress.NewReporter()

	res, err := gen.Build(false)
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}

	store, err := index.OpenStore(indexPath(cfg))
	if err != nil {
		return err
	}
	defer store.Close()

	// Refresh the index after a real build, or when it is empty (a clean
	// tree whose index.db was deleted).
	count, err := store.Count()
	if err != nil {
		return fmt.Errorf("reading search index: %w", err)
	}
	if !res.Skipped || count == 0 {
		if _, err := store.Replace(res.Entries, res.Table.Len()); err != nil {
			return fmt.Errorf("updating search index: %w", err)
		}
	}

	// Semantic search serves the last persisted snapshot; `docsite build`
	// refreshes it.
	var sem *semantic.Store
	if cfg.Search.Semantic {
		sem, err = loadSemanticStore(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: semantic index unavailable: %v\n", err)
			fmt.Fprintf(os.Stderr, "Falling back to keyword search. Run `docsite build` to embed the site.\n")
			sem = nil
		}
	}

	srv := site.NewServer(site.ServerConfig{
		Port:            cfg.Serve.Port,
		Open:            cfg.Serve.Open,
		AllowAllOrigins: allOrigins,
	}, cfg.OutputDir, res.Table, store, sem)

	// A terminal progress bar would garble watch-loop log output.
	gen.Reporter = nil

	watcher, err := site.NewWatcher(cfg.ContentDir, func() {
		res, err := gen.Build(false)
		if err != nil {
			log.Printf("serve: rebuild failed: %v", err)
			return
		}
		if res.Skipped {
			return
		}
		if _, err := store.Replace(res.Entries, res.Table.Len()); err != nil {
			log.Printf("serve: index update failed: %v", err)
		}
		srv.SetTable(res.Table)
		srv.Hub().BroadcastReload()
		log.Printf("serve: rebuilt %d pages", res.Written)
	})
	if err != nil {
		return fmt.Errorf("watching %s: %w", cfg.ContentDir, err)
	}
	watcher.Start()
	defer watcher.Stop()

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("serve: shutdown: %v", err)
		}
	}()

	fmt.Printf("Serving at http://localhost:%d — press Ctrl+C to stop\n", cfg.Serve.Port)
	if err := srv.Start(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serving site: %w", err)
	}
	return nil
}
