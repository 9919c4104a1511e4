package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Sena-ops/compliguard/internal/classify"
	"github.com/Sena-ops/compliguard/internal/model"
	"github.com/Sena-ops/compliguard/internal/rules"
)

// Progress é o sink opcional de progresso, chamado uma vez por arquivo
// concluído. Precisa ser seguro para chamada concorrente.
type Progress func(path string, done, total int)

// Options configura uma execução do scan. Nada aqui é estado global: o
// contexto inteiro do scan viaja explícito nesta struct.
type Options struct {
	Root        string
	Extensions  []string
	Classify    classify.Options
	// ExcludeTests trata arquivos de teste como excluídos (flag da CLI).
	ExcludeTests bool
	RuleTimeout  time.Duration
	Workers      int
	Progress     Progress
}

// Scan percorre a árvore, classifica e avalia cada arquivo, e devolve os
// registros ordenados por caminho. Erro só para falha de configuração
// (raiz ilegível); arquivo individual ilegível vira registro sintético e o
// scan continua. Cancelamento via ctx é checado entre arquivos e os
// registros parciais continuam agregáveis.
func Scan(ctx context.Context, set rules.Set, opts Options) ([]model.FileRecord, error) {
	paths, err := enumerate(opts)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	records := make([]model.FileRecord, len(paths))
	finished := make([]bool, len(paths))

	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records[i] = scanFile(opts.Root, p, set, opts)
			mu.Lock()
			finished[i] = true
			done++
			n := done
			mu.Unlock()
			if opts.Progress != nil {
				opts.Progress(p, n, len(paths))
			}
			return nil
		})
	}

	waitErr := g.Wait()

	out := make([]model.FileRecord, 0, len(records))
	for i, rec := range records {
		if finished[i] {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })

	return out, waitErr
}

// enumerate coleta os caminhos candidatos (relativos à raiz, separador "/"),
// podando diretórios excluídos inteiros.
func enumerate(opts Options) ([]string, error) {
	info, err := os.Stat(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("raiz do scan inacessível: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("raiz do scan não é um diretório: %s", opts.Root)
	}

	var paths []string
	err = filepath.WalkDir(opts.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// diretório ilegível no meio da árvore: pula e segue
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, rerr := filepath.Rel(opts.Root, path)
		if rerr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && classify.Classify(rel, classify.Options{ExcludeGlobs: opts.Classify.ExcludeGlobs}) == model.ClassExcluded {
				return fs.SkipDir
			}
			return nil
		}

		if matchesExtension(rel, opts.Extensions) {
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao percorrer %s: %w", opts.Root, err)
	}

	sort.Strings(paths)
	return paths, nil
}

func matchesExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// scanFile produz o FileRecord de um único arquivo. Nenhuma regra pode
// tocar o filesystem; aqui é o único ponto de leitura.
func scanFile(root, rel string, set rules.Set, opts Options) model.FileRecord {
	full := filepath.Join(root, filepath.FromSlash(rel))

	var size int64
	if info, err := os.Stat(full); err == nil {
		size = info.Size()
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return model.FileRecord{
			Path:           rel,
			SizeBytes:      size,
			Classification: model.ClassExcluded,
			Errored:        true,
			Passed:         false,
			Findings: []model.Finding{{
				RuleID:   rules.FileUnreadableID,
				Category: model.CatInternal,
				Severity: model.SevCritical,
				FilePath: rel,
				Message:  fmt.Sprintf("arquivo ilegível: %v", err),
			}},
		}
	}

	class := classify.Classify(rel, opts.Classify)
	if class == model.ClassTest && opts.ExcludeTests {
		class = model.ClassExcluded
	}
	if class == model.ClassExcluded {
		return model.FileRecord{
			Path:           rel,
			SizeBytes:      size,
			Classification: class,
			Passed:         true,
		}
	}

	findings := rules.Evaluate(set, class, rel, string(data), opts.RuleTimeout)
	return model.FileRecord{
		Path:           rel,
		SizeBytes:      size,
		Classification: class,
		Findings:       findings,
		Passed:         model.Passed(class, findings),
	}
}
