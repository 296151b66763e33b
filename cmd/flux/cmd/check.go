package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/config"
	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/parser"
)

var watch bool

var checkCmd = &cobra.Command{
	Use:   "check <file|dir>",
	Short: "Parse Flux sources and report diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-check on file changes")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	root := target
	if !info.IsDir() {
		root = filepath.Dir(target)
	}

	manifest, err := config.Find(root)
	if err != nil {
		return err
	}
	if manifest != nil {
		if err := manifest.CheckLanguage(config.LanguageVersion); err != nil {
			return err
		}
		log.Debug().Str("package", manifest.Package.Name).Msg("manifest loaded")
		if info.IsDir() {
			target = manifest.SourceRoot(root)
		}
	}

	if watch {
		return watchAndCheck(target, info.IsDir())
	}
	if checkOnce(target, info.IsDir()) {
		return nil
	}
	return fmt.Errorf("check failed")
}

// checkOnce parses every source under target and reports true when all of
// them are clean.
func checkOnce(target string, isDir bool) bool {
	files := []string{target}
	if isDir {
		var err error
		files, err = fluxSources(target)
		if err != nil {
			log.Error().Err(err).Msg("source scan failed")
			return false
		}
		if len(files) == 0 {
			fmt.Printf("no .flux sources under %s\n", target)
			return true
		}
	}

	clean := true
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("read failed")
			clean = false
			continue
		}

		started := time.Now()
		_, collector := parser.ParseSource(string(src), path, parserOptions()...)
		log.Debug().Str("file", path).Dur("took", time.Since(started)).
			Int("diagnostics", collector.Len()).Msg("parsed")

		if collector.Len() > 0 {
			printDiagnostics(os.Stdout, collector)
		}
		if collector.HasErrors() {
			clean = false
		} else {
			fmt.Printf("%s %s\n", okStyle.Render("ok"), path)
		}
	}
	return clean
}

// fluxSources returns all .flux files under dir, sorted for stable output.
func fluxSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".flux") {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

// watchAndCheck re-runs the check whenever a .flux file under the target
// changes. Rapid event bursts from editors are coalesced.
func watchAndCheck(target string, isDir bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watchRoot := target
	if !isDir {
		watchRoot = filepath.Dir(target)
	}
	if err := watcher.Add(watchRoot); err != nil {
		return err
	}
	if isDir {
		err := filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() && path != watchRoot {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	checkOnce(target, isDir)
	fmt.Printf("watching %s\n", watchRoot)

	var pending <-chan time.Time
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ".flux") {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("change detected")
			pending = time.After(200 * time.Millisecond)

		case <-pending:
			pending = nil
			checkOnce(target, isDir)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("watch error")
		}
	}
}
