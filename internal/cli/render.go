package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/internal/ctxlog"
	"github.com/cwbudde/algo-synth/internal/wav"
	"github.com/cwbudde/algo-synth/synth/preset"
	"github.com/cwbudde/algo-synth/synth/render"
)

var (
	renderOut       string
	renderDuration  float64
	renderNoProtect bool
)

var renderCmd = &cobra.Command{
	Use:   "render <preset-file>",
	Short: "Render a preset to a WAV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "out.wav", "Output WAV path")
	renderCmd.Flags().Float64VarP(&renderDuration, "duration", "d", 1.0, "Render duration in seconds")
	renderCmd.Flags().BoolVar(&renderNoProtect, "no-protect", false, "Skip emergency output protection")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	doc, err := loadPreset(args[0])
	if err != nil {
		return err
	}
	g, err := preset.Build(doc, core.WithSampleRate(flagSampleRate), core.WithBlockSize(flagBlockSize))
	if err != nil {
		return err
	}

	if issues := g.Validate(); len(issues) > 0 {
		for _, issue := range issues {
			slog.Warn("graph issue", "issue", issue)
		}
	}

	r := render.New(
		render.WithEmergencyProtection(!renderNoProtect),
		render.WithProcessorOptions(core.WithSampleRate(flagSampleRate), core.WithBlockSize(flagBlockSize)),
	)

	numSamples := int(renderDuration * flagSampleRate)
	ctx := ctxlog.WithLogger(cmd.Context(), slog.Default())
	result, err := r.Render(ctx, g, numSamples)
	if err != nil {
		return err
	}

	if err := wav.WriteFile(renderOut, result.Samples, int(flagSampleRate)); err != nil {
		return err
	}

	fmt.Printf("rendered %d samples (%d blocks) in %s -> %s\n",
		len(result.Samples), result.Blocks, result.Elapsed, renderOut)
	fmt.Printf("true peak %.2f dB, RMS %.2f dB, headroom %.2f dB\n",
		result.Metrics.TruePeakDB, result.Metrics.RMSDB, result.Metrics.HeadroomDB)
	if result.BudgetExceeded {
		fmt.Println("warning: latency budget exceeded during render")
	}

	return nil
}
