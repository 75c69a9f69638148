package cmd

import (
	"fmt"
	"os"

	"github.com/ferrite-lang/ferritec/internal/diagnostics"
	"github.com/ferrite-lang/ferritec/pkg/ferritec"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var flagKeepGoing bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Type-check a fixture without printing its IR",
	Long: `check runs the core's name resolution, constant evaluation,
coercion checking, and IR generation over the selected --fixture
scenario and reports any diagnostics; the generated IR is discarded,
not printed.

By default the first error is fatal, matching the core's single-pass
contract (spec §7). --keep-going instead checks every top-level
function independently and reports every diagnostic found.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&flagKeepGoing, "keep-going", false, "collect diagnostics from every top-level function instead of stopping at the first")
}

func runCheck(_ *cobra.Command, _ []string) error {
	log := newLogger()
	buildID := uuid.NewString()[:8]
	log.WithField("build", buildID).WithField("fixture", flagFixture).Debug("check starting")

	scenario, err := loadFixture()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var diags diagnostics.List
	if flagKeepGoing {
		diags = ferritec.CheckAll(scenario.Root, scenario.Importer, cfg)
	} else {
		result := ferritec.Compile(scenario.Root, scenario.Importer, cfg)
		diags = result.Diagnostics
	}

	printDiagnostics(diags)
	if diags.HasErrors() {
		return fmt.Errorf("check failed with %d error(s)", len(diags))
	}
	fmt.Printf("%s: ok\n", scenario.Name)
	return nil
}

func printDiagnostics(diags diagnostics.List) {
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, diagnostics.Format(d, nil))
	}
}
