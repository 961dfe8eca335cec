package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/glamlens/glamlens/internal/analyzer"
	"github.com/glamlens/glamlens/internal/config"
	"github.com/glamlens/glamlens/internal/container"
	apperrors "github.com/glamlens/glamlens/internal/errors"
	"github.com/glamlens/glamlens/internal/service"
	"github.com/glamlens/glamlens/pkg/models"
	"github.com/jszwec/csvutil"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file|url>...",
		Short: "Analyze the skin tone of one or more photos",
		Long: `Analyze samples each photo, classifies the skin tone and prints the
matching colour recommendations. Sources may be local files, http(s) URLs
or Azure blob URLs. Several sources are analyzed concurrently.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().String("strategy", "", "Sampling region: center or wrist (default from SAMPLING_STRATEGY)")
	cmd.Flags().Float64("fraction", 0, "Centre window side as a fraction of the shorter image side (default from SAMPLE_FRACTION)")
	cmd.Flags().Bool("palette", false, "Also extract the prominent colours of the sampled window")
	cmd.Flags().Int("workers", 0, "Number of photos analyzed in parallel (0 = number of CPUs)")
	cmd.Flags().Bool("json", false, "Print results as JSON")
	cmd.Flags().Bool("csv", false, "Print one CSV row per photo")
	cmd.MarkFlagsMutuallyExclusive("json", "csv")
	return cmd
}

// batchOutput is one entry of the --json output
type batchOutput struct {
	Source string                 `json:"source"`
	Result *models.AnalysisResult `json:"result,omitempty"`
	Error  *models.ErrorResponse  `json:"error,omitempty"`
}

// csvRow is one line of the --csv output
type csvRow struct {
	Source    string  `csv:"source"`
	Tone      string  `csv:"tone"`
	Hex       string  `csv:"hex"`
	R         uint8   `csv:"r"`
	G         uint8   `csv:"g"`
	B         uint8   `csv:"b"`
	Luminance float64 `csv:"luminance"`
	Hue       float64 `csv:"hue"`
	Coverage  float64 `csv:"coverage"`
	Fallback  bool    `csv:"fallback"`
	Error     string  `csv:"error"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("strategy") {
		cfg.SamplingStrategy = strings.ToLower(mustGetString(cmd, "strategy"))
	}
	if cmd.Flags().Changed("fraction") {
		cfg.SampleFraction = mustGetFloat64(cmd, "fraction")
	}
	if cmd.Flags().Changed("palette") {
		cfg.ExtractPalette = mustGetBool(cmd, "palette")
	}
	if cmd.Flags().Changed("workers") {
		cfg.MaxWorkers = mustGetInt(cmd, "workers")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	jsonOut := mustGetBool(cmd, "json")
	csvOut := mustGetBool(cmd, "csv")

	c, err := container.NewContainer(cfg, container.WithLocalFiles(), container.WithoutEventLogging())
	if err != nil {
		return err
	}

	options := analyzer.DefaultOptions().
		WithStrategy(cfg.SamplingStrategy).
		WithFraction(cfg.SampleFraction)
	if cfg.ExtractPalette {
		options = options.WithPalette(cfg.PaletteSize)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var onDone func(service.BatchItem)
	if len(args) > 1 {
		bar := progressbar.NewOptions(len(args),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("Analyzing photos"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetItsString("photos"),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionClearOnFinish(),
		)
		onDone = func(service.BatchItem) { _ = bar.Add(1) }
		defer bar.Finish()
	}

	items := c.Service().AnalyzeBatch(ctx, args, options, onDone)

	failed := 0
	for _, item := range items {
		if item.Err != nil {
			failed++
		}
	}

	out := cmd.OutOrStdout()
	switch {
	case jsonOut:
		if err := writeJSON(out, items); err != nil {
			return err
		}
	case csvOut:
		if err := writeCSV(out, items); err != nil {
			return err
		}
	default:
		for _, item := range items {
			writeText(out, item)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d photos could not be analyzed", failed, len(items))
	}
	return nil
}

func writeJSON(w io.Writer, items []service.BatchItem) error {
	entries := make([]batchOutput, len(items))
	for i, item := range items {
		entries[i] = batchOutput{Source: item.Source, Result: item.Result}
		if item.Err != nil {
			entries[i].Error = errorResponse(item.Err)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func writeCSV(w io.Writer, items []service.BatchItem) error {
	rows := make([]csvRow, len(items))
	for i, item := range items {
		rows[i].Source = item.Source
		if item.Err != nil {
			rows[i].Error = describeError(item.Err)
			continue
		}
		r := item.Result
		rows[i].Tone = r.Tone
		rows[i].Hex = r.DominantColor
		rows[i].R, rows[i].G, rows[i].B = r.RGB.R, r.RGB.G, r.RGB.B
		rows[i].Luminance = r.Luminance
		rows[i].Hue = r.Hue
		rows[i].Coverage = r.Sampling.Coverage
		rows[i].Fallback = r.Fallback
	}
	data, err := csvutil.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode CSV: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func errorResponse(err error) *models.ErrorResponse {
	resp := &models.ErrorResponse{Error: err.Error()}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		resp.Error = appErr.Message
		resp.Type = string(appErr.Type)
		resp.Details = appErr.Details
	}
	return resp
}

func writeText(w io.Writer, item service.BatchItem) {
	if item.Err != nil {
		fmt.Fprintf(w, "%s: error: %s\n", item.Source, describeError(item.Err))
		return
	}

	r := item.Result
	fmt.Fprintf(w, "%s: %s (%s, luminance %.1f, hue %.1f°)\n", item.Source, r.Tone, r.DominantColor, r.Luminance, r.Hue)
	fmt.Fprintf(w, "  sampled %d pixels with %s, %d skin-like (%.0f%%)\n",
		r.Sampling.SampledPixels, r.Sampling.Strategy, r.Sampling.AcceptedPixels, r.Sampling.Coverage*100)
	if r.Fallback {
		fmt.Fprintln(w, "  no entry for this tone, showing general recommendations")
	}
	writeBundle(w, r.Recommendations)
	if len(r.Palette) > 0 {
		shades := make([]string, len(r.Palette))
		for i, p := range r.Palette {
			shades[i] = fmt.Sprintf("%s %.0f%%", p.Hex, p.Share*100)
		}
		fmt.Fprintf(w, "  palette:  %s\n", strings.Join(shades, ", "))
	}
}

func writeBundle(w io.Writer, b models.Recommendations) {
	fmt.Fprintf(w, "  fashion:  %s\n", joinColors(b.Fashion))
	fmt.Fprintf(w, "  lipstick: %s\n", joinColors(b.Makeup.Lipstick))
	fmt.Fprintf(w, "  blush:    %s\n", joinColors(b.Makeup.Blush))
	fmt.Fprintf(w, "  avoid:    %s\n", joinColors(b.Avoid))
	if b.Rationale != nil {
		if b.Rationale.Fashion != "" {
			fmt.Fprintf(w, "  why:      %s\n", b.Rationale.Fashion)
		}
		if b.Rationale.Makeup != "" {
			fmt.Fprintf(w, "            %s\n", b.Rationale.Makeup)
		}
	}
}

func joinColors(colors []models.ColorInfo) string {
	names := make([]string, len(colors))
	for i, c := range colors {
		names[i] = fmt.Sprintf("%s %s", c.Name, c.Hex)
	}
	return strings.Join(names, ", ")
}
