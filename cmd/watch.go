package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/linkrank/internal/corpus"
	"github.com/papapumpkin/linkrank/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch <corpus>",
	Short: "Re-rank a corpus every time its files change",
	Long: `Ranks the corpus once, then watches its directory and ranks it again
whenever an .html page or .toml manifest is written, created, or removed.
Errors while re-ranking (for example a half-saved page) are reported and
watching continues. Stop with ctrl-c.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	source := args[0]
	info, err := os.Stat(source)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	dir := source
	if !info.IsDir() {
		dir = filepath.Dir(source)
	}

	w, err := corpus.NewWatcher(dir)
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("watch: %s: %w", dir, err)
	}
	defer w.Stop()

	ctx, cancel := setupSignalContext(s.printer)
	defer cancel()

	s.printer.Watching(dir)
	if err := s.rankCorpus(source); err != nil {
		s.printer.Error(err.Error())
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-w.Changes:
			if !ok {
				return nil
			}
			s.printer.CorpusChanged(c.Kind.String(), filepath.Base(c.File))
			if err := s.rankCorpus(source); err != nil {
				s.printer.Error(err.Error())
			}
		}
	}
}

// setupSignalContext returns a context that is canceled on SIGINT or SIGTERM.
func setupSignalContext(printer *ui.Printer) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			printer.Info("\nstopping...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}
