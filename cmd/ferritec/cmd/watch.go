package cmd

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run build whenever --toolconfig or --manifest changes",
	Long: `watch is a thin long-lived companion to build: it re-runs the
single-pass core against the selected --fixture every time the manifest
or tool-config file on disk changes, purely as a CLI convenience. It
never touches the core's single-pass contract (spec §5): each change
triggers one brand new Compile, not an incremental one.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	log := newLogger()

	scenario, err := loadFixture()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	watched := 0
	for _, path := range []string{flagManifest, flagToolConfig} {
		if path == "" {
			continue
		}
		if err := watcher.Add(path); err != nil {
			log.WithError(err).Warnf("not watching %s", path)
			continue
		}
		watched++
	}
	if watched == 0 {
		return fmt.Errorf("watch needs at least one of --manifest or --toolconfig to point at an existing file")
	}

	if err := runBuild(cmd, args); err != nil {
		log.WithError(err).Warn("initial build failed")
	}

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := loadConfig()
			if err != nil {
				log.WithError(err).Error("reloading config")
				continue
			}
			buildID := uuid.NewString()[:8]
			log.WithField("build", buildID).Infof("%s changed, rebuilding", ev.Name)
			result := buildOnce(log, buildID, cfg, scenario)
			printDiagnostics(result.Diagnostics)
			if !result.Diagnostics.HasErrors() {
				log.WithField("build", buildID).Infof("generated %d runtime static(s)", len(result.Statics))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Error("watch error")
		}
	}
}
