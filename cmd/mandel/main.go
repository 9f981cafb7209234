package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/mandel/internal/compute"
	"github.com/san-kum/mandel/internal/config"
	"github.com/san-kum/mandel/internal/gui"
	"github.com/san-kum/mandel/internal/logging"
	"github.com/san-kum/mandel/internal/storage"
	"github.com/san-kum/mandel/internal/tui"
	"github.com/san-kum/mandel/internal/view"
)

var (
	configFile string
	dataDir    string
	verbose    bool
	preset     string
	bookmark   string

	backend  string
	width    int
	height   int
	maxIter  int
	workers  int
	bits     uint
	digits   int32
	centerRe string
	centerIm string
	zoom     string

	// gui
	scale int
	// render
	cols    int
	rows    int
	jsonOut bool
	// bench
	steps   int
	factor  float64
	csvPath string
	against string
	// compare
	baseline string
	// eval
	allBackends bool
	// bookmark
	note string
)

func init() {
	// The window toolkit must stay on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "mandel",
		Short: "interactive Mandelbrot explorer",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logging.SetLogger(logging.NewTextLogger(os.Stderr, slog.LevelDebug))
			}
		},
		RunE:          runGUI,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&dataDir, "data", ".mandel", "data directory")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
	pf.StringVar(&preset, "preset", "", "start at a named landmark")
	pf.StringVar(&bookmark, "bookmark", "", "start at a saved bookmark")
	pf.StringVarP(&backend, "backend", "b", config.DefaultBackend, "numeric backend ("+strings.Join(compute.Names(), ", ")+")")
	pf.IntVar(&width, "width", config.DefaultWidth, "image width in pixels")
	pf.IntVar(&height, "height", config.DefaultHeight, "image height in pixels")
	pf.IntVar(&maxIter, "max-iter", config.DefaultMaxIter, "iteration budget")
	pf.IntVar(&workers, "workers", 0, "render workers (0 = one per CPU)")
	pf.UintVar(&bits, "bits", config.DefaultBits, "mantissa bits (arbitrary)")
	pf.Int32Var(&digits, "digits", config.DefaultDigits, "decimal places (decimal)")
	pf.StringVar(&centerRe, "re", "", "view center, real part")
	pf.StringVar(&centerIm, "im", "", "view center, imaginary part")
	pf.StringVar(&zoom, "zoom", "", "view zoom")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "explore in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	rootCmd.Flags().IntVar(&scale, "scale", 2, "window pixels per image pixel")
	guiCmd.Flags().IntVar(&scale, "scale", 2, "window pixels per image pixel")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "explore in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render one frame and print a preview",
		Args:  cobra.NoArgs,
		RunE:  renderFrame,
	}
	renderCmd.Flags().IntVar(&cols, "cols", 80, "preview columns")
	renderCmd.Flags().IntVar(&rows, "rows", 30, "preview rows")
	renderCmd.Flags().BoolVar(&jsonOut, "json", false, "print frame statistics as JSON")

	evalCmd := &cobra.Command{
		Use:   "eval [re] [im]",
		Short: "iteration count of one point",
		Args:  cobra.ExactArgs(2),
		RunE:  evalPoint,
	}
	evalCmd.Flags().BoolVar(&allBackends, "all", false, "evaluate with every backend")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time frames along a zoom sequence",
		Args:  cobra.NoArgs,
		RunE:  benchZoom,
	}
	benchCmd.Flags().IntVar(&steps, "steps", 8, "number of zoom levels")
	benchCmd.Flags().Float64Var(&factor, "factor", 10, "zoom factor between levels")
	benchCmd.Flags().StringVar(&csvPath, "csv", "", "also write measurements to this CSV file")
	benchCmd.Flags().StringVar(&against, "against", "", "compare frame times with a CSV from an earlier run")

	compareCmd := &cobra.Command{
		Use:   "compare [backend...]",
		Short: "count pixels where backends disagree with a baseline",
		RunE:  compareBackends,
	}
	compareCmd.Flags().StringVar(&baseline, "baseline", "fixed64", "reference backend")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list named landmarks",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	bookmarkCmd := &cobra.Command{
		Use:   "bookmark",
		Short: "manage saved views",
	}
	bookmarkAddCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "save the configured view",
		Args:  cobra.ExactArgs(1),
		RunE:  addBookmark,
	}
	bookmarkAddCmd.Flags().StringVar(&note, "note", "", "free-form note")
	bookmarkListCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved views",
		Args:  cobra.NoArgs,
		RunE:  listBookmarks,
	}
	bookmarkShowCmd := &cobra.Command{
		Use:   "show [name]",
		Short: "print a saved view",
		Args:  cobra.ExactArgs(1),
		RunE:  showBookmark,
	}
	bookmarkRmCmd := &cobra.Command{
		Use:   "rm [name]",
		Short: "delete a saved view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).Delete(args[0])
		},
	}
	bookmarkCmd.AddCommand(bookmarkAddCmd, bookmarkListCmd, bookmarkShowCmd, bookmarkRmCmd)

	rootCmd.AddCommand(guiCmd, tuiCmd, renderCmd, evalCmd, benchCmd, compareCmd, presetsCmd, bookmarkCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig layers the config file, the preset or bookmark, and any flag
// the user set, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
	}
	if bookmark != "" {
		b, err := storage.New(dataDir).Load(bookmark)
		if err != nil {
			return nil, err
		}
		cfg.View.CenterRe = b.View.CenterRe
		cfg.View.CenterIm = b.View.CenterIm
		cfg.View.Zoom = b.View.Zoom
		cfg.Backend = b.Backend
		cfg.MaxIter = b.MaxIter
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("max-iter") {
		cfg.MaxIter = maxIter
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("bits") {
		cfg.Precision.Bits = bits
	}
	if flags.Changed("digits") {
		cfg.Precision.Digits = digits
	}
	if centerRe != "" {
		cfg.View.CenterRe = centerRe
	}
	if centerIm != "" {
		cfg.View.CenterIm = centerIm
	}
	if zoom != "" {
		cfg.View.Zoom = zoom
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newBackend(cmd *cobra.Command) (compute.Backend, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	b, err := compute.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return b, cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runGUI(cmd *cobra.Command, args []string) error {
	b, _, err := newBackend(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	return gui.Run(ctx, b, gui.Options{Scale: scale, Title: "mandel :: " + b.Name()})
}

func runTUI(cmd *cobra.Command, args []string) error {
	b, _, err := newBackend(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	return tui.Run(ctx, b)
}

type frameReport struct {
	Backend  string        `json:"backend"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	MaxIter  int           `json:"max_iter"`
	View     view.Snapshot `json:"view"`
	Elapsed  string        `json:"elapsed"`
	Interior int           `json:"interior"`
	MinIter  int           `json:"min_iter"`
	MaxSeen  int           `json:"max_iter_seen"`
	MeanIter float64       `json:"mean_iter"`
}

func renderFrame(cmd *cobra.Command, args []string) error {
	b, cfg, err := newBackend(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	f, _, err := b.Redraw(ctx)
	if err != nil {
		return err
	}
	defer f.Release()

	s := f.Stats(cfg.MaxIter)
	report := frameReport{
		Backend:  b.Name(),
		Width:    f.Width,
		Height:   f.Height,
		MaxIter:  cfg.MaxIter,
		View:     b.View(),
		Elapsed:  f.Elapsed.Round(time.Microsecond).String(),
		Interior: s.Interior,
		MinIter:  s.Min,
		MaxSeen:  s.Max,
		MeanIter: s.Mean,
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Print(tui.ASCII(f, cfg.MaxIter, cols, rows))
	fmt.Printf("\n%s  %dx%d  %s\n", report.Backend, report.Width, report.Height, report.Elapsed)
	fmt.Printf("center  %s %s\nzoom    %s\n", report.View.CenterRe, report.View.CenterIm, report.View.Zoom)
	fmt.Printf("iter    min %d  max %d  mean %.1f  interior %.1f%%\n",
		s.Min, s.Max, s.Mean, 100*float64(s.Interior)/float64(s.Pixels))
	return nil
}

func evalPoint(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	names := []string{cfg.Backend}
	if allBackends {
		names = compute.Names()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BACKEND\tITER\tRESULT")
	for _, name := range names {
		c := *cfg
		c.Backend = name
		b, err := compute.New(&c)
		if err != nil {
			return err
		}
		n, err := b.Evaluate(args[0], args[1])
		if err != nil {
			return err
		}
		result := "escaped"
		if n >= cfg.MaxIter {
			result = "bounded"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", name, n, result)
	}
	return w.Flush()
}

// zoomSequence returns steps zoom levels starting at start, each factor
// times the previous one. Levels are computed with big floats so deep
// sequences do not overflow.
func zoomSequence(start string, factor float64, steps int) ([]string, error) {
	z, _, err := big.ParseFloat(start, 10, 256, big.ToNearestEven)
	if err != nil {
		return nil, fmt.Errorf("zoom %q: %w", start, err)
	}
	if factor <= 0 {
		return nil, fmt.Errorf("zoom factor must be positive, got %g", factor)
	}
	f := new(big.Float).SetPrec(256).SetFloat64(factor)

	zooms := make([]string, 0, steps)
	for i := 0; i < steps; i++ {
		zooms = append(zooms, z.Text('g', 12))
		z = new(big.Float).SetPrec(256).Mul(z, f)
	}
	return zooms, nil
}

func benchZoom(cmd *cobra.Command, args []string) error {
	b, cfg, err := newBackend(cmd)
	if err != nil {
		return err
	}
	zooms, err := zoomSequence(cfg.View.Zoom, factor, steps)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	var prior map[string]time.Duration
	if against != "" {
		if prior, err = loadPrior(against); err != nil {
			return err
		}
	}

	ms, err := compute.Bench(ctx, b, zooms)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if prior != nil {
		fmt.Fprintln(w, "ZOOM\tTIME\tMEAN ITER\tINTERIOR\tVS PRIOR")
	} else {
		fmt.Fprintln(w, "ZOOM\tTIME\tMEAN ITER\tINTERIOR")
	}
	data := make([]float64, 0, len(ms))
	for _, m := range ms {
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%.1f%%", m.Zoom, m.Elapsed.Round(time.Microsecond), m.MeanIter, 100*m.Interior)
		if prior != nil {
			fmt.Fprintf(w, "\t%s", speedup(prior[m.Zoom], m.Elapsed))
		}
		fmt.Fprintln(w)
		data = append(data, float64(m.Elapsed)/float64(time.Millisecond))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(data) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("%s frame time (ms) per zoom level", b.Name())),
		))
	}

	if csvPath != "" {
		if err := saveMeasurements(csvPath, ms); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", csvPath)
	}
	return nil
}

func saveMeasurements(path string, ms []storage.Measurement) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := storage.WriteMeasurements(f, ms); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// loadPrior reads an earlier bench CSV keyed by zoom.
func loadPrior(path string) (map[string]time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ms, err := storage.ReadMeasurements(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	prior := make(map[string]time.Duration, len(ms))
	for _, m := range ms {
		prior[m.Zoom] = m.Elapsed
	}
	return prior, nil
}

// speedup formats how many times faster now is than before.
func speedup(before, now time.Duration) string {
	if before <= 0 || now <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2fx", float64(before)/float64(now))
}

func compareBackends(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		for _, n := range compute.Names() {
			if n != baseline {
				names = append(names, n)
			}
		}
	}

	ctx, cancel := signalContext()
	defer cancel()
	cmps, err := compute.Compare(ctx, cfg, baseline, names)
	if err != nil {
		return err
	}

	total := cfg.Width * cfg.Height
	fmt.Printf("baseline %s, %dx%d, max_iter %d, zoom %s\n\n", baseline, cfg.Width, cfg.Height, cfg.MaxIter, cfg.View.Zoom)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BACKEND\tMISMATCHED\tSHARE\tMAX DELTA\tTIME")
	for _, c := range cmps {
		fmt.Fprintf(w, "%s\t%d\t%.3f%%\t%d\t%s\n",
			c.Backend, c.Mismatches, 100*float64(c.Mismatches)/float64(total), c.MaxDelta, c.Elapsed.Round(time.Millisecond))
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCENTER\tZOOM\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\n", name, p.CenterRe, p.CenterIm, p.Zoom, p.Description)
	}
	return w.Flush()
}

func addBookmark(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	b := storage.Bookmark{
		Name:    args[0],
		Backend: cfg.Backend,
		MaxIter: cfg.MaxIter,
		View: view.Snapshot{
			CenterRe: cfg.View.CenterRe,
			CenterIm: cfg.View.CenterIm,
			Zoom:     cfg.View.Zoom,
		},
		Note: note,
	}
	if err := storage.New(dataDir).Save(b); err != nil {
		return err
	}
	fmt.Printf("saved %s\n", b.Name)
	return nil
}

func listBookmarks(cmd *cobra.Command, args []string) error {
	marks, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(marks) == 0 {
		fmt.Println("no bookmarks")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBACKEND\tZOOM\tSAVED\tNOTE")
	for _, m := range marks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", m.Name, m.Backend, m.View.Zoom, m.Timestamp.Format("2006-01-02 15:04"), m.Note)
	}
	return w.Flush()
}

func showBookmark(cmd *cobra.Command, args []string) error {
	b, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}
