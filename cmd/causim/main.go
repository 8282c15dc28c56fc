package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/causelab/causim/internal/config"
	"github.com/causelab/causim/internal/cycles"
	"github.com/causelab/causim/internal/graph"
	"github.com/causelab/causim/internal/metrics"
	"github.com/causelab/causim/internal/sim"
	"github.com/causelab/causim/internal/state"
	"github.com/causelab/causim/internal/storage"
	"github.com/causelab/causim/internal/tui"
)

var (
	dataDir    string
	graphFile  string
	configFile string
	preset     string
	steps      int
	dt         float64
	damping    float64
	frameRate  int

	// Five-factor anchor flags; only flags the user actually set are
	// passed to the engine, so partial states stay partial.
	vitality     float64
	cognition    float64
	emotion      float64
	adaptability float64
	meaning      float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "causim",
		Short: "causal-loop dynamical simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".causim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [name]",
		Short: "run a simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	cyclesCmd := &cobra.Command{
		Use:   "cycles",
		Short: "analyze feedback loops without simulating",
		RunE:  analyzeCycles,
	}
	cyclesCmd.Flags().StringVar(&graphFile, "graph", "", "graph description file (yaml or json)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's trajectory as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with a live trajectory view",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 4, "steps per second")

	rootCmd.AddCommand(runCmd, cyclesCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&graphFile, "graph", "", "graph description file (yaml or json)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&steps, "steps", sim.DefaultSteps, "number of steps")
	cmd.Flags().Float64Var(&dt, "dt", sim.DefaultDt, "step size")
	cmd.Flags().Float64Var(&damping, "damping", sim.DefaultDamping, "damping coefficient")
	cmd.Flags().Float64Var(&vitality, "vitality", 5, "initial vitality (1-10)")
	cmd.Flags().Float64Var(&cognition, "cognition", 5, "initial cognition (1-10)")
	cmd.Flags().Float64Var(&emotion, "emotion", 5, "initial emotion (1-10)")
	cmd.Flags().Float64Var(&adaptability, "adaptability", 5, "initial adaptability (1-10)")
	cmd.Flags().Float64Var(&meaning, "meaning", 5, "initial meaning (1-10)")
}

// resolveOptions merges preset, config file and explicit flags, flags
// winning over the config file, the config file over the preset.
func resolveOptions(cmd *cobra.Command) (sim.Options, any, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return sim.Options{}, nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return sim.Options{}, nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("damping") {
		cfg.Damping = damping
	}
	if cmd.Flags().Changed("graph") {
		cfg.Graph = graphFile
	}

	factorFlags := map[string]float64{
		"vitality":     vitality,
		"cognition":    cognition,
		"emotion":      emotion,
		"adaptability": adaptability,
		"meaning":      meaning,
	}
	for name, value := range factorFlags {
		if cmd.Flags().Changed(name) {
			if cfg.State == nil {
				cfg.State = make(map[string]float64)
			}
			cfg.State[name] = value
		}
	}

	var desc any
	if cfg.Graph != "" {
		var err error
		desc, err = config.LoadGraph(cfg.Graph)
		if err != nil {
			return sim.Options{}, nil, err
		}
	}

	return cfg.Options(), desc, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	name := "run"
	if len(args) > 0 {
		name = args[0]
	}

	opts, desc, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	engine := sim.NewEngine()
	for _, factory := range metrics.Standard() {
		engine.AddMetric(factory)
	}
	result := engine.Run(desc, opts)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(name, opts.Sanitize(), result)
	if err != nil {
		return err
	}

	printSummary(runID, result)
	return nil
}

func printSummary(runID string, result *sim.Result) {
	fmt.Printf("run: %s\n", runID)
	fmt.Printf("snapshots: %d\n\n", len(result.Series))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "variable\tstart\tfinal")
	final := result.Series.Final()
	initial := result.Series[0].Values
	for _, id := range sortedIDs(final) {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\n", id, initial[id], final[id])
	}
	w.Flush()

	if len(result.Loops) > 0 {
		fmt.Println()
		printLoops(result.Loops)
	}

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "factor\tvalue")
	ns := result.NewState
	fmt.Fprintf(w, "vitality\t%.2f\n", ns.Vitality)
	fmt.Fprintf(w, "cognition\t%.2f\n", ns.Cognition)
	fmt.Fprintf(w, "emotion\t%.2f\n", ns.Emotion)
	fmt.Fprintf(w, "adaptability\t%.2f\n", ns.Adaptability)
	fmt.Fprintf(w, "meaning\t%.2f\n", ns.Meaning)
	w.Flush()

	if len(result.Metrics) > 0 {
		fmt.Println()
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "metric\tvalue")
		for _, name := range sortedIDs(result.Metrics) {
			fmt.Fprintf(w, "%s\t%.4f\n", name, result.Metrics[name])
		}
		w.Flush()
	}
}

func printLoops(loops []cycles.Record) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "type\tdominance\tloop")
	for _, loop := range loops {
		fmt.Fprintf(w, "%s\t%d\t%s\n", loop.Type, loop.Dominance, loop.Chain)
	}
	w.Flush()
}

func analyzeCycles(cmd *cobra.Command, args []string) error {
	var desc any
	if graphFile != "" {
		var err error
		desc, err = config.LoadGraph(graphFile)
		if err != nil {
			return err
		}
	}

	g := graph.Normalize(desc)
	loops := cycles.Detect(g.Edges)
	if len(loops) == 0 {
		fmt.Println("no feedback loops found")
		return nil
	}
	printLoops(loops)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "id\ttimestamp\tsteps\tloops")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", run.ID, run.Timestamp.Format("2006-01-02 15:04:05"), run.Steps, len(run.Loops))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	ids, series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", args[0])
	fmt.Printf("samples: %d\n\n", len(series))

	for _, id := range ids {
		data := make([]float64, len(series))
		for i, snap := range series {
			data[i] = snap.Values[id]
		}
		plot := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(id),
		)
		fmt.Println(plot)
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	_, series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	out := struct {
		*storage.RunMetadata
		Series sim.TimeSeries `json:"timeSeries"`
	}{meta, series}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	ids, series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	fmt.Print("step")
	for _, id := range ids {
		fmt.Printf(",%s", id)
	}
	fmt.Println()
	for _, snap := range series {
		fmt.Print(snap.Step)
		for _, id := range ids {
			fmt.Printf(",%.6f", snap.Values[id])
		}
		fmt.Println()
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	opts, desc, err := resolveOptions(cmd)
	if err != nil {
		return err
	}
	opts = opts.Sanitize()

	g := graph.Normalize(desc)
	state.Anchor(g, opts.InitialState)
	loops := cycles.Detect(g.Edges)

	return tui.Run(g, loops, opts, frameRate)
}

func sortedIDs[V any](m map[string]V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
