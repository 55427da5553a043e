package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/san-kum/periodix/internal/build"
	"github.com/san-kum/periodix/internal/chem"
	"github.com/san-kum/periodix/internal/compare"
	"github.com/san-kum/periodix/internal/config"
	"github.com/san-kum/periodix/internal/modeldata"
	"github.com/san-kum/periodix/internal/quiz"
	"github.com/san-kum/periodix/internal/reactions"
	"github.com/san-kum/periodix/internal/render"
	"github.com/san-kum/periodix/internal/session"
	"github.com/san-kum/periodix/internal/tui"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

var (
	dataDir    string
	configFile string
	preset     string
	modelsFile string
	verbose    bool
	logFile    string

	mode    string
	width   int
	height  int
	seconds float64
	plain   bool

	limit         int
	reactionType  string
	listTypes     bool
	xlsxPath      string
	svgPath       string

	difficulty string
	topic      string
	count      int
	seed       int64

	outPath   string
	svgWidth  int
	svgHeight int
	gifWidth  int
	gifHeight int
	frames    int
	delay     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "periodix",
		Short:         "periodic table explorer with 3D atom, molecule and crystal views",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(os.Stderr)
			return nil
		},
		RunE: runExplorer,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".periodix", "snapshot directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultPath(), "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&modelsFile, "models", "", "replacement model data file (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write explorer logs to this file")

	showCmd := &cobra.Command{
		Use:   "show [element]",
		Short: "draw an element in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
	showCmd.Flags().StringVarP(&mode, "mode", "m", "atom", "atom, molecule or crystal")
	showCmd.Flags().IntVar(&width, "width", 60, "columns")
	showCmd.Flags().IntVar(&height, "height", 20, "rows")
	showCmd.Flags().Float64Var(&seconds, "seconds", 0, "animate for this long")
	showCmd.Flags().BoolVar(&plain, "plain", false, "no colour")

	infoCmd := &cobra.Command{
		Use:   "info [element]",
		Short: "print element properties",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}

	reactionsCmd := &cobra.Command{
		Use:   "reactions [element]",
		Short: "list notable reactions of an element",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runReactions,
	}
	reactionsCmd.Flags().StringVar(&reactionType, "type", "", "only reactions of this type")
	reactionsCmd.Flags().BoolVar(&listTypes, "types", false, "list reaction types and covered elements")

	searchCmd := &cobra.Command{
		Use:   "search [query]",
		Short: "find elements by name, symbol, number or category",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSearch,
	}
	searchCmd.Flags().IntVar(&limit, "limit", chem.DefaultSearchLimit, "maximum results")

	trendCmd := &cobra.Command{
		Use:   "trend [property]",
		Short: "plot a property across atomic numbers",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrend,
	}
	trendCmd.Flags().StringVar(&svgPath, "svg", "", "also write the plot as svg")

	compareCmd := &cobra.Command{
		Use:   "compare [element] [element] ...",
		Short: "compare up to four elements side by side",
		Args:  cobra.RangeArgs(1, compare.MaxElements),
		RunE:  runCompare,
	}
	compareCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "export the comparison to a spreadsheet")

	quizCmd := &cobra.Command{
		Use:   "quiz",
		Short: "multiple-choice element quiz",
		RunE:  runQuiz,
	}
	quizCmd.Flags().StringVar(&difficulty, "difficulty", "medium", "easy, medium or hard")
	quizCmd.Flags().StringVar(&topic, "category", "all", "symbols, properties, categories, electron-config or all")
	quizCmd.Flags().IntVar(&count, "count", quiz.DefaultCount, "number of questions")
	quizCmd.Flags().Int64Var(&seed, "seed", 0, "random seed")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [element]",
		Short: "write a vector snapshot of an element model",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&mode, "mode", "m", "atom", "atom, molecule or crystal")
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: save a snapshot)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 640, "pixels")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 480, "pixels")

	exportGIFCmd := &cobra.Command{
		Use:   "export-gif [element]",
		Short: "ray-trace a rotating animation of an element model",
		Args:  cobra.ExactArgs(1),
		RunE:  exportGIF,
	}
	exportGIFCmd.Flags().StringVarP(&mode, "mode", "m", "atom", "atom, molecule or crystal")
	exportGIFCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: save a snapshot)")
	exportGIFCmd.Flags().IntVar(&gifWidth, "width", 320, "pixels")
	exportGIFCmd.Flags().IntVar(&gifHeight, "height", 240, "pixels")
	exportGIFCmd.Flags().IntVar(&frames, "frames", 120, "frames per turn")
	exportGIFCmd.Flags().IntVar(&delay, "delay", 5, "frame delay in 1/100 s")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "check model data and build every element in every mode",
		RunE:  runValidate,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTHEME\tCELL\tSHELLS\tPLACEMENT")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%s\n", name, p.Theme, p.Geometry.CellSize, p.Geometry.ShellSpacing, p.Placement)
			}
			return w.Flush()
		},
	}

	metricsCmd := &cobra.Command{
		Use:   "metrics [element]",
		Short: "show an element in every mode and dump session metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  runMetrics,
	}

	snapshotsCmd := &cobra.Command{
		Use:   "snapshots",
		Short: "list saved snapshots",
		RunE:  listSnapshots,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [id]",
		Short: "print snapshot metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showSnapshot,
	}

	rootCmd.AddCommand(showCmd, infoCmd, reactionsCmd, searchCmd, trendCmd, compareCmd, quizCmd,
		exportSVGCmd, exportGIFCmd, snapshotsCmd, snapshotCmd, validateCmd, presetsCmd, metricsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func setupLogging(w io.Writer) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// loadConfig applies, in order: defaults, the config file, a preset and
// the --models flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if modelsFile != "" {
		cfg.ModelsFile = modelsFile
	}
	return cfg, nil
}

func newBuilder(cfg *config.Config) (*build.Builder, error) {
	var (
		tables *modeldata.Tables
		err    error
	)
	if cfg.ModelsFile != "" {
		tables, err = modeldata.LoadFile(cfg.ModelsFile)
	} else {
		tables, err = modeldata.Load()
	}
	if err != nil {
		return nil, err
	}
	res, err := modeldata.NewResolver(tables, modeldata.DefaultCacheSize)
	if err != nil {
		return nil, err
	}
	return build.New(res, cfg.Options()), nil
}

func element(ref string) (*chem.Catalog, chem.Element, error) {
	cat, err := chem.Load()
	if err != nil {
		return nil, chem.Element{}, err
	}
	e, err := cat.Find(ref)
	return cat, e, err
}

func runExplorer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	b, err := newBuilder(cfg)
	if err != nil {
		return err
	}
	cat, err := chem.Load()
	if err != nil {
		return err
	}
	rx, err := reactions.Load()
	if err != nil {
		return err
	}

	logOut := io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	setupLogging(logOut)

	path := configFile
	if preset != "" {
		path = ""
	}
	return tui.Run(tui.Options{
		Catalog:    cat,
		Reactions:  rx,
		Builder:    b,
		Config:     cfg,
		ConfigPath: path,
		Logger:     slog.Default(),
	})
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	b, err := newBuilder(cfg)
	if err != nil {
		return err
	}
	_, e, err := element(args[0])
	if err != nil {
		return err
	}

	surface := render.NewTerminal(width, height)
	surface.Color = !plain
	s := session.New(session.Config{
		Builder:       b,
		Surface:       surface,
		Rotate:        true,
		RotationSpeed: cfg.RotationSpeed,
	})
	defer s.Dispose()

	if err := s.Show(e, build.ParseMode(mode)); err != nil {
		return err
	}
	m := s.Model()

	if seconds <= 0 {
		fmt.Print(surface.Frame())
		fmt.Printf("%s  %s\n", m.Title, m.Description)
		return nil
	}

	fmt.Print(hideCursor)
	defer fmt.Print(showCursor)

	token := s.Token()
	interval := cfg.FrameInterval()
	deadline := time.Now().Add(time.Duration(seconds * float64(time.Second)))
	for time.Now().Before(deadline) {
		if !s.Frame(token, interval.Seconds()) {
			break
		}
		fmt.Print(clearScreen + surface.Frame())
		fmt.Printf("%s  %s\n", m.Title, m.Description)
		time.Sleep(interval)
	}
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	_, e, err := element(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "name\t%s\n", e.Name)
	fmt.Fprintf(w, "symbol\t%s\n", e.Symbol)
	fmt.Fprintf(w, "number\t%d\n", e.Number)
	fmt.Fprintf(w, "mass\t%g u\n", e.Mass)
	fmt.Fprintf(w, "category\t%s\n", e.Category.Label())
	fmt.Fprintf(w, "configuration\t%s\n", e.Config)
	fmt.Fprintf(w, "shells\t%v\n", e.Shells)
	hybrid := "none"
	if len(e.Hybridization) > 0 {
		hybrid = strings.Join(e.Hybridization, ", ")
	}
	fmt.Fprintf(w, "hybridization\t%s\n", hybrid)
	for _, p := range chem.Properties {
		fmt.Fprintf(w, "%s\t%s\n", strings.ToLower(p.Label()), p.Format(e))
	}
	return w.Flush()
}

func runSearch(cmd *cobra.Command, args []string) error {
	cat, err := chem.Load()
	if err != nil {
		return err
	}
	results := cat.Search(strings.Join(args, " "), limit)
	if len(results) == 0 {
		fmt.Println("no matches")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NUMBER\tSYMBOL\tNAME\tCATEGORY")
	for _, e := range results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.Number, e.Symbol, e.Name, e.Category.Label())
	}
	return w.Flush()
}

func runTrend(cmd *cobra.Command, args []string) error {
	p, err := chem.ParseProperty(args[0])
	if err != nil {
		return err
	}
	cat, err := chem.Load()
	if err != nil {
		return err
	}
	series := cat.Series(p)

	caption := p.Label() + " by atomic number"
	if u := p.Unit(); u != "" {
		caption += " (" + u + ")"
	}
	fmt.Println(asciigraph.Plot(series,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	))

	if lo, hi, ok := cat.PropertyRange(p); ok {
		fmt.Printf("\nrange: %g to %g\n", lo, hi)
	}

	if svgPath != "" {
		if err := os.WriteFile(svgPath, []byte(exportTrend(series)), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	cat, err := chem.Load()
	if err != nil {
		return err
	}
	tray := compare.NewTray()
	for _, ref := range args {
		e, err := cat.Find(ref)
		if err != nil {
			return err
		}
		if err := tray.Add(e); err != nil {
			return err
		}
	}

	fmt.Println(tray.Render(func(e chem.Element) string { return e.Category.Color() }))

	if xlsxPath != "" {
		if err := tray.WriteXLSX(xlsxPath); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", xlsxPath)
	}
	return nil
}

func runQuiz(cmd *cobra.Command, args []string) error {
	cat, err := chem.Load()
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	q := quiz.New(cat, quiz.Settings{
		Difficulty: quiz.ParseDifficulty(difficulty),
		Topic:      quiz.ParseTopic(topic),
		Count:      count,
	}, rand.New(rand.NewSource(seed)))

	in := bufio.NewScanner(os.Stdin)
	for !q.Done() {
		cur, _ := q.Current()
		fmt.Printf("\nQ%d/%d: %s\n", q.Index()+1, q.Len(), cur.Text)
		for i, o := range cur.Options {
			fmt.Printf("  %d) %s\n", i+1, o)
		}
		fmt.Print("answer (1-4, s to skip): ")
		if !in.Scan() {
			break
		}
		line := strings.TrimSpace(in.Text())
		if line == "s" {
			q.Skip()
			fmt.Printf("skipped, the answer was %s\n", cur.Answer)
			continue
		}
		var choice int
		if _, err := fmt.Sscanf(line, "%d", &choice); err != nil {
			fmt.Println("enter a number")
			continue
		}
		r, err := q.Answer(choice - 1)
		if errors.Is(err, quiz.ErrInvalidIndex) {
			fmt.Println("no such option")
			continue
		}
		if r.Correct {
			fmt.Println("correct!")
		} else {
			fmt.Printf("wrong, the answer was %s\n", cur.Answer)
		}
	}

	correct, total := q.Score()
	fmt.Printf("\nscore: %d/%d (%d%%)\n%s\n", correct, total, q.Percent(), q.Feedback())
	return in.Err()
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	b, err := newBuilder(cfg)
	if err != nil {
		return err
	}
	cat, err := chem.Load()
	if err != nil {
		return err
	}

	var errs []error
	if _, err := reactions.Load(); err != nil {
		errs = append(errs, err)
	}
	built := 0
	for _, e := range cat.All() {
		for _, m := range build.Modes {
			if _, err := b.Build(e, m); err != nil {
				errs = append(errs, fmt.Errorf("%s %s: %w", e.Symbol, m, err))
				continue
			}
			built++
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	fmt.Printf("ok: %d elements, %d scenes\n", cat.Len(), built)
	return nil
}

func runMetrics(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	b, err := newBuilder(cfg)
	if err != nil {
		return err
	}
	_, e, err := element(args[0])
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics, err := session.NewMetrics(reg)
	if err != nil {
		return err
	}
	s := session.New(session.Config{
		Builder: b,
		Surface: render.NewTerminal(40, 12),
		Metrics: metrics,
		Rotate:  true,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	for _, m := range build.Modes {
		if err := s.Show(e, m); err != nil {
			return err
		}
	}
	if err := s.Run(ctx, cfg.FPS); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	s.Dispose()

	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(os.Stdout, mf); err != nil {
			return err
		}
	}
	return nil
}
