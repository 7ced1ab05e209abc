// Package main provides the CLI entrypoint for keydrill.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/keydrill/internal/config"
	"github.com/verte-zerg/keydrill/internal/curriculum"
	"github.com/verte-zerg/keydrill/internal/lesson"
	"github.com/verte-zerg/keydrill/internal/lessonlist"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/publish"
	"github.com/verte-zerg/keydrill/internal/store"
	"github.com/verte-zerg/keydrill/internal/trainer"
	"github.com/verte-zerg/keydrill/internal/tui"
)

const publishQueueSize = 64

var (
	practiceCurriculum    string
	practiceContentLength int
	practiceWordLength    int
	practiceFocusWeight   float64
	practiceOnFinish      string
	practiceBackend       string
	practiceStatePath     string
	practiceNatsURL       string
	practiceSubject       string
	practiceReset         bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := model.DefaultConfig()
	rootCmd := &cobra.Command{
		Use:           "keydrill",
		Short:         "Keyboard layout lesson trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&practiceCurriculum, "curriculum", defaults.Curriculum, "lesson progression (bone, qwerty)")
	pf.IntVar(&practiceContentLength, "content-length", defaults.ContentLength, "minimum characters per practice text")
	pf.IntVar(&practiceWordLength, "word-length", defaults.WordLength, "characters per generated word")
	pf.Float64Var(&practiceFocusWeight, "focus-weight", defaults.FocusWeight, "weight of newly introduced characters (1 disables focus)")
	pf.StringVar(&practiceBackend, "backend", defaults.Backend, "state storage backend (json, sqlite)")
	pf.StringVar(&practiceStatePath, "state", "", "state file path (default: XDG data dir)")

	rootCmd.Flags().StringVar(&practiceOnFinish, "on-finish", defaults.OnFinish, "after a finished text: repeat the lesson or return to selection (repeat, select)")
	rootCmd.Flags().StringVar(&practiceNatsURL, "nats-url", "", "publish finished records to this NATS server")
	rootCmd.Flags().StringVar(&practiceSubject, "subject", defaults.Subject, "NATS subject for published records")
	rootCmd.Flags().BoolVar(&practiceReset, "reset", false, "ignore stored history and selection")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLessonsCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

// resolveConfig merges the config file under the command-line flags.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "curriculum", &practiceCurriculum, fileCfg.Practice.Curriculum)
	applyIntConfig(cmd, "content-length", &practiceContentLength, fileCfg.Practice.ContentLength)
	applyIntConfig(cmd, "word-length", &practiceWordLength, fileCfg.Practice.WordLength)
	applyFloatConfig(cmd, "focus-weight", &practiceFocusWeight, fileCfg.Practice.FocusWeight)
	applyStringConfig(cmd, "on-finish", &practiceOnFinish, fileCfg.Practice.OnFinish)
	applyStringConfig(cmd, "backend", &practiceBackend, fileCfg.Storage.Backend)
	applyStringConfig(cmd, "state", &practiceStatePath, fileCfg.Storage.Path)
	applyStringConfig(cmd, "nats-url", &practiceNatsURL, fileCfg.Publish.NatsURL)
	applyStringConfig(cmd, "subject", &practiceSubject, fileCfg.Publish.Subject)

	cfg := model.Config{
		Curriculum:    practiceCurriculum,
		ContentLength: practiceContentLength,
		WordLength:    practiceWordLength,
		FocusWeight:   practiceFocusWeight,
		OnFinish:      practiceOnFinish,
		Backend:       practiceBackend,
		StatePath:     practiceStatePath,
		NatsURL:       practiceNatsURL,
		Subject:       practiceSubject,
		Reset:         practiceReset,
	}
	if cfg.StatePath == "" {
		cfg.StatePath = config.DefaultStatePath(cfg.Backend)
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func buildLessons(cfg model.Config) ([]lesson.Lesson, error) {
	return curriculum.Build(cfg.Curriculum, curriculum.Options{
		ContentLength: cfg.ContentLength,
		WordLength:    cfg.WordLength,
		FocusWeight:   cfg.FocusWeight,
	})
}

func openStore(cfg model.Config) (store.Store, error) {
	backend, err := store.ParseBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(backend, cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open state: %w", err)
	}
	return st, nil
}

func closeStore(st store.Store) {
	if err := st.Close(); err != nil {
		logErrf("failed to close state: %v\n", err)
	}
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	policy, err := trainer.ParseFinishPolicy(cfg.OnFinish)
	if err != nil {
		return fmt.Errorf("invalid --on-finish: %w", err)
	}
	lessons, err := buildLessons(cfg)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	list, err := loadList(ctx, st, lessons, cfg.Reset)
	if err != nil {
		return fmt.Errorf("failed to load state from %s: %w", cfg.StatePath, err)
	}

	opts := trainer.Options{OnFinish: policy}
	var queue *publish.Queue
	if cfg.NatsURL != "" {
		pub, err := publish.Connect(cfg.NatsURL, cfg.Subject)
		if err != nil {
			logErrf("%v; records will not be published\n", err)
		} else {
			defer func() {
				if cerr := pub.Close(); cerr != nil {
					logErrf("failed to close nats connection: %v\n", cerr)
				}
			}()
			queue = publish.NewQueue(pub, publishQueueSize)
			opts.OnRecord = queue.Enqueue
		}
	}

	app := trainer.New(list, opts)
	program := tea.NewProgram(tui.NewModel(app), tea.WithAltScreen())
	_, runErr := program.Run()

	if queue != nil {
		for _, perr := range queue.Close() {
			logErrf("%v\n", perr)
		}
	}
	if err := st.Save(ctx, app.List().Snapshot()); err != nil {
		return fmt.Errorf("failed to save state to %s: %w", cfg.StatePath, err)
	}
	if runErr != nil {
		return fmt.Errorf("failed to run TUI: %w", runErr)
	}
	return nil
}

// loadList restores history for lessons from st. A missing state starts
// fresh.
func loadList(ctx context.Context, st store.Store, lessons []lesson.Lesson, reset bool) (*lessonlist.List, error) {
	if reset {
		return lessonlist.New(lessons), nil
	}
	snap, err := st.Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return lessonlist.New(lessons), nil
	}
	if err != nil {
		return nil, err
	}
	return lessonlist.Rebind(lessons, snap), nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func validateConfig(cfg model.Config) error {
	if cfg.ContentLength < 0 {
		return fmt.Errorf("--content-length must be >= 0")
	}
	if cfg.WordLength <= 0 {
		return fmt.Errorf("--word-length must be > 0")
	}
	if cfg.FocusWeight <= 0 {
		return fmt.Errorf("--focus-weight must be > 0")
	}
	if _, err := store.ParseBackend(cfg.Backend); err != nil {
		return fmt.Errorf("invalid --backend: %w", err)
	}
	if _, err := trainer.ParseFinishPolicy(cfg.OnFinish); err != nil {
		return fmt.Errorf("invalid --on-finish: %w", err)
	}
	if cfg.StatePath == "" {
		return fmt.Errorf("--state must not be empty")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
