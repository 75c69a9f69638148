package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/ferrite-lang/ferritec/internal/config"
	"github.com/ferrite-lang/ferritec/internal/fixtures"
	"github.com/ferrite-lang/ferritec/internal/ir"
	"github.com/ferrite-lang/ferritec/pkg/ferritec"
	"github.com/google/uuid"
	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var flagDumpIR string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Type-check a fixture and generate its IR",
	Long: `build runs the full core (spec §2 "Data flow") over the selected
--fixture scenario: name resolution, constant evaluation, coercion
checking, and IR generation, then reports the resulting runtime statics.

--dump-ir=json serializes the RuntimeStatic list as JSON, tagging it
with a build id via sjson for traceability and printing a gjson-queried
count of the runtime statics. --dump-ir=pretty pretty-prints the same value
with k0kubun/pp instead.`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVar(&flagDumpIR, "dump-ir", "", `IR dump format: "", "json", or "pretty"`)
}

func runBuild(_ *cobra.Command, _ []string) error {
	log := newLogger()
	buildID := uuid.NewString()[:8]
	log.WithFields(logrus.Fields{"build": buildID, "fixture": flagFixture}).Debug("build starting")

	scenario, err := loadFixture()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dumpIR := flagDumpIR
	if dumpIR == "" {
		if tc, err := config.LoadToolConfig(flagToolConfig); err == nil {
			dumpIR = tc.DumpIRMode
		}
	}

	result := buildOnce(log, buildID, cfg, scenario)
	printDiagnostics(result.Diagnostics)
	if result.Diagnostics.HasErrors() {
		return fmt.Errorf("build failed with %d error(s)", len(result.Diagnostics))
	}

	log.WithField("build", buildID).Infof("generated %d runtime static(s)", len(result.Statics))
	return dumpStatics(result.Statics, buildID, dumpIR)
}

// buildOnce runs one full compilation of scenario, shared by `build` and
// the re-run loop in `watch`.
func buildOnce(log *logrus.Logger, buildID string, cfg *config.Config, scenario fixtures.Scenario) ferritec.Result {
	log.WithField("build", buildID).WithField("fixture", scenario.Name).Debug("running core")
	return ferritec.Compile(scenario.Root, scenario.Importer, cfg)
}

func dumpStatics(statics []ir.RuntimeStatic, buildID, mode string) error {
	switch mode {
	case "", "none":
		return nil
	case "pretty":
		pp.Println(statics)
		return nil
	case "json":
		raw, err := json.Marshal(map[string]any{"statics": statics})
		if err != nil {
			return fmt.Errorf("marshalling IR: %w", err)
		}
		tagged, err := sjson.SetBytes(raw, "buildId", buildID)
		if err != nil {
			return fmt.Errorf("tagging IR json: %w", err)
		}
		count := gjson.GetBytes(tagged, "statics.#").Int()
		fmt.Printf("%s\n", tagged)
		fmt.Printf("// %d static(s), build %s\n", count, buildID)
		return nil
	default:
		return fmt.Errorf("unknown --dump-ir mode %q", mode)
	}
}
