package cmd

import (
	"fmt"
	"os"

	"github.com/ferrite-lang/ferritec/internal/config"
	"github.com/ferrite-lang/ferritec/internal/fixtures"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version information, overridable by build flags (-ldflags), in the
// same shape as the teacher's cmd/dwscript/cmd package.
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	flagVerbose        bool
	flagFixture        string
	flagManifest       string
	flagToolConfig     string
	flagAddressSize    int
	flagDefaultIntSize int
)

var rootCmd = &cobra.Command{
	Use:   "ferritec",
	Short: "Ferrite semantic analysis and IR generation core",
	Long: `ferritec is the semantic analysis / IR generation core of a
compiler for Ferrite, a Jai/Odin-like systems language: name resolution,
compile-time constant evaluation, polymorphic-function and -struct
instantiation, implicit coercion, and lowering to a flat register-based
IR.

Lexing and parsing are out of scope for this module: every subcommand
runs one of the hand-built scenario ASTs under --fixture in place of a
real frontend.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose debug logging")
	rootCmd.PersistentFlags().StringVarP(&flagFixture, "fixture", "f", "s2", fmt.Sprintf("scenario fixture to compile (%v)", fixtures.Names()))
	rootCmd.PersistentFlags().StringVar(&flagManifest, "manifest", "", "path to a ferrite.yaml project manifest (optional)")
	rootCmd.PersistentFlags().StringVar(&flagToolConfig, "toolconfig", defaultToolConfigPath(), "path to a ferritec.toml user preferences file")
	rootCmd.PersistentFlags().IntVar(&flagAddressSize, "address-size", 0, "override the manifest's address integer size in bits")
	rootCmd.PersistentFlags().IntVar(&flagDefaultIntSize, "default-int-size", 0, "override the manifest's default integer size in bits")
}

func defaultToolConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.ferritec.toml"
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

// loadConfig builds the architectural-constant Config a build runs
// under (spec §6 "Ambient configuration"): a manifest file if one was
// given, then flag overrides, falling back to config.Default().
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if flagManifest != "" {
		manifest, err := config.LoadManifest(flagManifest)
		if err != nil {
			return nil, fmt.Errorf("loading manifest: %w", err)
		}
		cfg = manifest.Config()
	}
	opts := []config.Option{}
	if flagAddressSize != 0 {
		opts = append(opts, config.WithAddressSize(flagAddressSize))
	} else {
		opts = append(opts, config.WithAddressSize(cfg.AddressSize))
	}
	if flagDefaultIntSize != 0 {
		opts = append(opts, config.WithDefaultIntSize(flagDefaultIntSize))
	} else {
		opts = append(opts, config.WithDefaultIntSize(cfg.DefaultIntSize))
	}
	cfg = config.NewConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFixture() (fixtures.Scenario, error) {
	scenario, ok := fixtures.Get(flagFixture)
	if !ok {
		return fixtures.Scenario{}, fmt.Errorf("unknown fixture %q (available: %v)", flagFixture, fixtures.Names())
	}
	return scenario, nil
}
