package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/meshview/internal/config"
	"github.com/san-kum/meshview/internal/export"
	"github.com/san-kum/meshview/internal/gui"
	"github.com/san-kum/meshview/internal/session"
	"github.com/san-kum/meshview/internal/viz"
	"github.com/spf13/cobra"
)

type options struct {
	pixels     int
	hesitation int
	configFile string
	preset     string
	gui        bool
	tui        bool
	theme      string
	logFile    string
	autostart  bool

	output string
	format string
	record string
}

// main builds the meshview command tree and exits with status 1 when the
// command fails.
func main() {
	if err := newRootCmd(&options{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "meshview [flags] < mesh.txt",
		Short: "watch a triangulation being built, one edge at a time",
		Long: `meshview reads a mesh event stream on stdin: a title line, a bounding
box line "minX maxX minY maxY", then commands "t <millis>", "+ ax ay bx by"
and "- ax ay bx by". Press Run to start consuming it.`,
		Args:               cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(cmd, opts)
		},
	}

	// -h is the hesitation; help keeps only --help
	rootCmd.PersistentFlags().IntVarP(&opts.pixels, "pixels", "p", config.DefaultPixels, "canvas side in pixels")
	rootCmd.PersistentFlags().IntVarP(&opts.hesitation, "hesitation", "h", 0, "delay before each command in milliseconds")
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.preset, "preset", "", "use preset configuration")
	rootCmd.Flags().BoolVar(&opts.gui, "gui", false, "open the graphical window (default)")
	rootCmd.Flags().BoolVar(&opts.tui, "tui", false, "draw in the terminal instead of a window")
	rootCmd.MarkFlagsMutuallyExclusive("gui", "tui")
	rootCmd.Flags().StringVar(&opts.theme, "theme", "", "terminal color theme")
	rootCmd.Flags().StringVar(&opts.logFile, "log", "", "write diagnostic log to file")
	rootCmd.Flags().BoolVar(&opts.autostart, "autostart", false, "press Run immediately")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "replay stdin to the end and write the final mesh as svg or png",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts)
		},
	}
	exportCmd.Flags().StringVarP(&opts.output, "output", "o", "mesh.svg", "output file")
	exportCmd.Flags().StringVar(&opts.format, "format", "", "svg or png (default: from the output extension)")
	exportCmd.Flags().StringVar(&opts.record, "record", "", "also write session metadata and stats as json")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "parse stdin without rendering and report the first bad line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, opts)
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPIXELS\tHESITATION\tFRONTEND\tTHEME")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%dms\t%s\t%s\n", name, p.Pixels, p.HesitationMs, p.Frontend, p.Theme)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(exportCmd, validateCmd, presetsCmd)
	return rootCmd
}

// loadConfig layers preset, config file and explicitly set flags, in that
// order.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if opts.preset != "" {
		p, err := config.MustPreset(opts.preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	if opts.configFile != "" {
		loaded, err := config.LoadOver(opts.configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("pixels") {
		cfg.Pixels = opts.pixels
	}
	if flags.Changed("hesitation") {
		cfg.HesitationMs = opts.hesitation
	}
	if flags.Changed("gui") && opts.gui {
		cfg.Frontend = config.FrontendGUI
	}
	if flags.Changed("tui") && opts.tui {
		cfg.Frontend = config.FrontendTUI
	}
	if flags.Changed("theme") {
		cfg.Theme = opts.theme
	}
	if flags.Changed("log") {
		cfg.LogFile = opts.logFile
	}
	if flags.Changed("autostart") {
		cfg.Autostart = opts.autostart
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func sessionOptions(cfg *config.Config) session.Options {
	return session.Options{Hesitation: cfg.Hesitation(), HistorySize: cfg.History}
}

func runViewer(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "meshview")
		if err != nil {
			return fmt.Errorf("failed to open log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	sess, err := session.Open(cmd.InOrStdin(), sessionOptions(cfg))
	if err != nil {
		return err
	}
	log.Printf("session %s: %q %s, %s frontend", sess.ID, sess.Header.Title, sess.Header.Bounds, cfg.Frontend)

	if cfg.Frontend == config.FrontendGUI {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		go func() {
			<-ctx.Done()
			sess.Quit()
		}()
		return runGUI(sess, cfg)
	}
	return runTUI(sess, cfg)
}

// Front-end launchers; tests swap them out.
var (
	runGUI = gui.Run
	runTUI = func(sess *session.Session, cfg *config.Config) error {
		return viz.Run(sess, cfg, snapshotter(cfg))
	}
)

// snapshotter saves the current mesh next to the working directory as
// meshview-<id>.svg.
func snapshotter(cfg *config.Config) viz.Snapshotter {
	return func(s *session.Session) (string, error) {
		path := filepath.Join(".", "meshview-"+s.ID[:8]+".svg")
		if err := export.Save(path, export.FormatSVG, s, cfg.Pixels, styleFor(cfg)); err != nil {
			return "", err
		}
		log.Printf("session %s: snapshot %s", s.ID, path)
		return path, nil
	}
}

func styleFor(cfg *config.Config) export.Style {
	style := export.DefaultStyle
	style.DotSize = cfg.DotSize
	return style
}

// replay runs a session over stdin to the end with no front-end attached.
func replay(cmd *cobra.Command, cfg *config.Config) (*session.Session, error) {
	sess, err := session.Open(cmd.InOrStdin(), sessionOptions(cfg))
	if err != nil {
		return nil, err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	sess.Run()
	if err := sess.Wait(ctx); err != nil {
		sess.Quit()
		return sess, err
	}
	return sess, nil
}

func runExport(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	log.SetOutput(cmd.ErrOrStderr())

	format, err := export.FormatFor(opts.output, opts.format)
	if err != nil {
		return err
	}

	sess, err := replay(cmd, cfg)
	if err != nil {
		return err
	}
	if err := export.Save(opts.output, format, sess, cfg.Pixels, styleFor(cfg)); err != nil {
		return err
	}
	log.Printf("session %s: wrote %s", sess.ID, opts.output)

	if opts.record != "" {
		if err := export.WriteRecord(opts.record, export.RecordOf(sess, cfg.Pixels, opts.output)); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d edges -> %s\n", sess.Header.Title, sess.Edges.Len(), opts.output)
	return printSummary(cmd.OutOrStdout(), sess)
}

func runValidate(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	cfg.HesitationMs = 0

	sess, err := replay(cmd, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %q bounds %s\n", sess.Header.Title, sess.Header.Bounds)
	return printSummary(cmd.OutOrStdout(), sess)
}

func printSummary(out io.Writer, sess *session.Session) error {
	values := sess.Stats.Summary().Values()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%g\n", k, values[k])
	}
	return w.Flush()
}
