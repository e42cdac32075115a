// Package cli implements the algosynth command tree: rendering, validating,
// and inspecting synthesis graph presets.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-synth/synth/preset"
)

var (
	flagVerbose    bool
	flagSampleRate float64
	flagBlockSize  int
)

var rootCmd = &cobra.Command{
	Use:   "algosynth",
	Short: "Audio signal graph engine",
	Long: `algosynth builds oscillator/filter/envelope/LFO graphs from preset
files (JSON, HCL, or TOML), renders them offline, and checks them against
the safety layer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Float64Var(&flagSampleRate, "sample-rate", 44100, "Sample rate in Hz")
	rootCmd.PersistentFlags().IntVar(&flagBlockSize, "block-size", 1024, "Processing block size in samples")
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

// loadPreset parses a preset file, picking the format from the extension.
func loadPreset(path string) (*preset.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return preset.ParseJSON(data)
	case ".hcl":
		return preset.ParseHCL(filepath.Base(path), data)
	case ".toml":
		return preset.ParseTOML(data)
	default:
		return nil, fmt.Errorf("unsupported preset format %q (want .json, .hcl, or .toml)", filepath.Ext(path))
	}
}
