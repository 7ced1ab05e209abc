package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/keydrill/internal/config"
	"github.com/verte-zerg/keydrill/internal/curriculum"
	"github.com/verte-zerg/keydrill/internal/generator"
	"github.com/verte-zerg/keydrill/internal/lesson"
	"github.com/verte-zerg/keydrill/internal/lessonlist"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/stats"
	"github.com/verte-zerg/keydrill/internal/store"
)

const (
	defaultGenerateCount = 500
	defaultStatsWindow   = 5
)

var (
	generateOut   string
	generateCount int

	statsLesson string
	statsWindow int
	statsHeight int
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	d := model.DefaultConfig()
	return fmt.Sprintf(`# keydrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# curriculum = %q       # Lesson progression: %s
# content-length = %d      # Minimum characters per practice text
# word-length = %d           # Characters per generated word
# focus-weight = %.1f        # Weight of newly introduced characters (1 disables focus)
# on-finish = %q       # After a finished text: "repeat" or "select"

[storage]
# backend = %q           # "json" or "sqlite"
# path = ""                 # State file (default: %s)

[publish]
# nats-url = "nats://127.0.0.1:4222"   # Publish finished records to NATS
# subject = %q
`,
		d.Curriculum,
		strings.Join(curriculum.Names(), ", "),
		d.ContentLength,
		d.WordLength,
		d.FocusWeight,
		d.OnFinish,
		d.Backend,
		config.DefaultStatePath(d.Backend),
		d.Subject,
	)
}

func newLessonsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lessons",
		Short: "List the lessons of the configured curriculum",
		Args:  cobra.NoArgs,
		RunE:  runLessonsCmd,
	}
}

func runLessonsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	lessons, err := buildLessons(cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "%s: %s\n\n", cfg.Curriculum, curriculum.Describe(cfg.Curriculum)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for _, line := range lessonLines(lessons) {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func lessonLines(lessons []lesson.Lesson) []string {
	lines := make([]string, 0, len(lessons))
	for _, l := range lessons {
		lines = append(lines, strings.TrimRight(fmt.Sprintf("%-10s %-14s %s", l.Name, string(l.Runes()), l.Strategy), " "))
	}
	return lines
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write generated practice text for every lesson",
		Args:  cobra.NoArgs,
		RunE:  runGenerateCmd,
	}
	cmd.Flags().StringVar(&generateOut, "out", "output", "output directory")
	cmd.Flags().IntVar(&generateCount, "count", defaultGenerateCount, "minimum characters per lesson file")
	return cmd
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if generateCount < 0 {
		return fmt.Errorf("--count must be >= 0")
	}
	lessons, err := buildLessons(cfg)
	if err != nil {
		return err
	}
	paths, err := writeLessonFiles(generateOut, lessons, generateCount, generator.New())
	if err != nil {
		return err
	}
	for _, path := range paths {
		logErrf("Wrote %s\n", path)
	}
	return nil
}

// writeLessonFiles writes lesson<N>.txt for every lesson, numbered from zero.
func writeLessonFiles(dir string, lessons []lesson.Lesson, count int, gen *generator.Generator) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	paths := make([]string, 0, len(lessons))
	for i, l := range lessons {
		content, err := gen.LessonContent(l.WithDimensions(count, l.WordLength))
		if err != nil {
			return paths, fmt.Errorf("failed to generate %s: %w", l.Name, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("lesson%d.txt", i))
		if err := writeFileAtomic(path, content); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFileAtomic(path, content string) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "lesson-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.WriteString(content); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show training history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsLesson, "lesson", "", "show one lesson in detail")
	cmd.Flags().IntVar(&statsWindow, "window", defaultStatsWindow, "moving average window")
	cmd.Flags().IntVar(&statsHeight, "height", 0, "chart height in rows")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	statsCfg := model.StatsConfig{Lesson: statsLesson, Window: statsWindow, Height: statsHeight}
	if statsCfg.Window < 0 {
		return fmt.Errorf("--window must be >= 0")
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore(st)

	snap, err := st.Load(context.Background())
	if errors.Is(err, store.ErrNotFound) {
		logErrln("No training history yet. Run keydrill to practice.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load state from %s: %w", cfg.StatePath, err)
	}
	list, err := lessonlist.FromSnapshot(snap)
	if err != nil {
		return fmt.Errorf("failed to load state from %s: %w", cfg.StatePath, err)
	}
	return renderStats(cmd, list, statsCfg)
}

func renderStats(cmd *cobra.Command, list *lessonlist.List, cfg model.StatsConfig) error {
	out := cmd.OutOrStdout()
	if cfg.Lesson == "" {
		return stats.RenderOverview(out, list)
	}
	for i, l := range list.Lessons() {
		if !strings.EqualFold(l.Name, cfg.Lesson) {
			continue
		}
		return stats.RenderLesson(out, l.Name, list.RecordsFor(i), stats.RenderOptions{
			Window: cfg.Window,
			Width:  stats.TerminalWidth(os.Stdout),
			Height: cfg.Height,
		})
	}
	return fmt.Errorf("unknown lesson %q", cfg.Lesson)
}
