// algosynth renders, validates, and inspects synthesis graph presets.
package main

import (
	"os"

	"github.com/cwbudde/algo-synth/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
