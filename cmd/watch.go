package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Sena-ops/compliguard/internal/aggregate"
	"github.com/Sena-ops/compliguard/internal/classify"
	"github.com/Sena-ops/compliguard/internal/config"
	"github.com/Sena-ops/compliguard/internal/logging"
	"github.com/Sena-ops/compliguard/internal/model"
	"github.com/Sena-ops/compliguard/internal/report"
	"github.com/Sena-ops/compliguard/internal/rules"
	"github.com/Sena-ops/compliguard/internal/scanner"
)

var watchDebug bool

var watchCmd = &cobra.Command{
	Use:   "watch [caminho]",
	Short: "Reescaneia a cada mudança no diretório e imprime o resumo",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logging.InitLogger(watchDebug)
		logger = logging.Logger

		cfg := config.Default()
		if len(args) == 1 {
			cfg.Root = args[0]
		}
		cfg, err := config.Load(cfg)
		if err != nil {
			logger.Errorw("Configuração inválida", "erro", err)
			os.Exit(2)
		}

		if err := runWatch(cfg, nil); err != nil {
			logger.Errorw("Erro no watch", "erro", err)
			os.Exit(2)
		}
	},
}

// runWatch observa a árvore e dispara um rescan com debounce de 300ms.
// Eventos dentro do próprio diretório de saída são ignorados.
func runWatch(cfg config.Config, stop <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("iniciar watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchRecursive(watcher, cfg.Root, cfg.ExcludeGlobs); err != nil {
		return fmt.Errorf("registrar diretórios: %w", err)
	}

	logger.Infof("Observando %s (Ctrl+C para sair)", cfg.Root)

	trigger := func() {
		set := rules.Default(cfg.ApprovedVerbs)
		opts := scanner.Options{
			Root:       cfg.Root,
			Extensions: cfg.Extensions,
			Classify: classify.Options{
				ExcludeGlobs: cfg.ExcludeGlobs,
				TestSuffixes: cfg.TestSuffixes,
			},
			RuleTimeout: cfg.RuleTimeout,
			Workers:     cfg.Workers,
		}
		records, err := scanner.Scan(context.Background(), set, opts)
		if err != nil {
			logger.Errorw("Erro ao reescanear", "erro", err)
			return
		}
		out, err := report.Render(aggregate.Aggregate(records), report.FormatConsole, false)
		if err != nil {
			logger.Errorw("Erro ao renderizar", "erro", err)
			return
		}
		fmt.Println(out)
	}

	var timer *time.Timer
	debounce := 300 * time.Millisecond

	for {
		select {
		case <-stop:
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if strings.Contains(ev.Name, string(filepath.Separator)+".compliguard"+string(filepath.Separator)) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorw("Erro do watcher", "erro", err)
		}
	}
}

func addWatchRecursive(w *fsnotify.Watcher, root string, excludeGlobs []string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		rel, rerr := filepath.Rel(root, path)
		if rerr == nil && rel != "." {
			copts := classify.Options{ExcludeGlobs: excludeGlobs}
			if classify.Classify(filepath.ToSlash(rel), copts) == model.ClassExcluded {
				return fs.SkipDir
			}
		}
		return w.Add(path)
	})
}

func init() {
	watchCmd.Flags().BoolVar(&watchDebug, "debug", false, "Habilita logs em nível debug")
	rootCmd.AddCommand(watchCmd)
}
