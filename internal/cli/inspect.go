package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/synth/preset"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <preset-file>",
	Short: "Show a preset's stages, parameters, and execution order",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Re-serialize the graph as JSON")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	doc, err := loadPreset(args[0])
	if err != nil {
		return err
	}
	g, err := preset.Build(doc, core.WithSampleRate(flagSampleRate))
	if err != nil {
		return err
	}

	if inspectJSON {
		snap, err := preset.Snapshot(g)
		if err != nil {
			return err
		}
		data, err := preset.MarshalJSON(snap)
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
		fmt.Println()
		return nil
	}

	for _, name := range g.StageNames() {
		s := g.Stage(name)
		fmt.Printf("%s: %s\n", name, s.Description())
		for _, pn := range s.ParameterNames() {
			v, err := s.Parameter(pn)
			if err != nil {
				return err
			}
			fmt.Printf("  %s = %s\n", pn, v.GoString())
		}
	}

	if conns := g.Connections(); len(conns) > 0 {
		fmt.Println("connections:")
		for _, c := range conns {
			fmt.Printf("  %s -> %s", c.Source, c.Destination)
			if c.Parameter != "" {
				fmt.Printf(" (modulates %s x%g)", c.Parameter, c.Amount)
			}
			if !c.Enabled {
				fmt.Print(" [disabled]")
			}
			fmt.Println()
		}
	}

	if g.HasCycles() {
		fmt.Println("order: graph is cyclic; no valid topological order")
	} else {
		fmt.Println("order:", g.TopologicalOrder())
	}

	return nil
}
