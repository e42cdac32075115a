package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/synth/preset"
	"github.com/cwbudde/algo-synth/synth/render"
	"github.com/cwbudde/algo-synth/synth/safety"
)

var validateFix bool

var validateCmd = &cobra.Command{
	Use:   "validate <preset-file>",
	Short: "Check a preset's graph structure and safety",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateFix, "fix", false, "Apply protection passes before re-checking")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	doc, err := loadPreset(args[0])
	if err != nil {
		return err
	}
	g, err := preset.Build(doc, core.WithSampleRate(flagSampleRate))
	if err != nil {
		return err
	}

	if validateFix {
		safety.ApplyProtection(g, safety.DefaultConstraints())
	}

	var issues []string
	issues = append(issues, g.Validate()...)
	issues = append(issues, safety.CheckGainStaging(g)...)
	issues = append(issues, safety.ChaosIndicators(g)...)
	if !safety.CheckFeedbackStability(g) {
		issues = append(issues, fmt.Sprintf("estimated loop gain %.3f is unstable", safety.LoopGain(g)))
	}

	// Render a short probe block and gate it through the safety monitor.
	r := render.New(render.WithEmergencyProtection(false),
		render.WithProcessorOptions(core.WithSampleRate(flagSampleRate), core.WithBlockSize(flagBlockSize)))
	result, err := r.Render(context.Background(), g, flagBlockSize)
	if err != nil {
		return err
	}
	issues = append(issues, safety.ValidateAudio(result.Samples)...)
	if safety.DetectChaos(result.Samples, flagSampleRate) {
		issues = append(issues, "rendered output looks chaotic")
	}

	if len(issues) == 0 {
		fmt.Println("ok: no issues found")
		return nil
	}
	for _, issue := range issues {
		fmt.Println("issue:", issue)
	}
	return fmt.Errorf("%d issue(s) found", len(issues))
}
