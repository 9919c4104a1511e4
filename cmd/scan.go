package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Sena-ops/compliguard/internal/aggregate"
	"github.com/Sena-ops/compliguard/internal/classify"
	"github.com/Sena-ops/compliguard/internal/config"
	"github.com/Sena-ops/compliguard/internal/model"
	"github.com/Sena-ops/compliguard/internal/report"
	"github.com/Sena-ops/compliguard/internal/rules"
	"github.com/Sena-ops/compliguard/internal/scanner"
)

var (
	outputFormat string
	outputFile   string
	detailed     bool
	excludeTests bool
	extraExclude []string
	extensions   []string
	workers      int
	withTool     string
	debugMode    bool
)

var logger *zap.SugaredLogger

var scanCmd = &cobra.Command{
	Use:   "scan [caminho]",
	Short: "Escaneia um diretório aplicando as regras de conformidade",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Inicializa logger
		var logConfig zap.Config
		if debugMode {
			logConfig = zap.NewDevelopmentConfig()
		} else {
			logConfig = zap.NewProductionConfig()
			logConfig.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		}
		logConfig.Encoding = "console"
		rawLogger, err := logConfig.Build()
		if err != nil {
			fmt.Println("Erro ao iniciar logger:", err)
			os.Exit(2)
		}
		defer rawLogger.Sync()
		logger = rawLogger.Sugar()

		cfg := config.Default()
		if len(args) == 1 {
			cfg.Root = args[0]
		}
		if len(extensions) > 0 {
			cfg.Extensions = extensions
		}
		cfg.ExcludeGlobs = append(cfg.ExcludeGlobs, extraExclude...)
		cfg.ExcludeTests = excludeTests
		if workers > 0 {
			cfg.Workers = workers
		}

		cfg, err = config.Load(cfg)
		if err != nil {
			logger.Errorw("Configuração inválida", "erro", err)
			os.Exit(2)
		}

		format, err := report.ParseFormat(outputFormat)
		if err != nil {
			logger.Errorw("Formato inválido", "erro", err)
			os.Exit(2)
		}

		os.Exit(runScan(cfg, format))
	},
}

// runScan executa o pipeline completo e devolve o exit code do processo.
func runScan(cfg config.Config, format report.Format) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Infof("Escaneando diretório: %s", cfg.Root)

	copts := classify.Options{
		ExcludeGlobs: cfg.ExcludeGlobs,
		TestSuffixes: cfg.TestSuffixes,
	}
	opts := scanner.Options{
		Root:         cfg.Root,
		Extensions:   cfg.Extensions,
		Classify:     copts,
		ExcludeTests: cfg.ExcludeTests,
		RuleTimeout:  cfg.RuleTimeout,
		Workers:      cfg.Workers,
		Progress: func(path string, done, total int) {
			logger.Debugf("analisado %s (%d/%d)", path, done, total)
		},
	}

	set := rules.Default(cfg.ApprovedVerbs)

	started := time.Now()
	records, err := scanner.Scan(ctx, set, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// scan interrompido: reporta o que deu tempo de analisar
			logger.Warnw("Scan cancelado, agregando resultados parciais", "arquivos", len(records))
		} else {
			logger.Errorw("Erro ao escanear", "erro", err)
			return 2
		}
	}
	logger.Infow("Scan concluído", "arquivos", len(records), "duração", time.Since(started))

	if withTool != "" {
		logger.Infof("Executando ferramenta externa: %s...", withTool)
		external, terr := scanner.RunTool(withTool, cfg.Root)
		if terr != nil {
			// colaborador externo ausente não derruba o scan embutido
			logger.Errorw("Erro ao executar ferramenta externa", "ferramenta", withTool, "erro", terr)
		} else {
			records = scanner.MergeExternal(records, external, cfg.Root, copts)
		}
	}

	result := aggregate.Aggregate(records)
	if err := emit(result, format); err != nil {
		logger.Errorw("Erro ao emitir relatório", "erro", err)
		// o relatório em memória sobrevive: tenta o console como fallback
		if format != report.FormatConsole {
			if out, rerr := report.Render(result, report.FormatConsole, detailed); rerr == nil {
				fmt.Println(out)
			}
		}
	}

	return report.ExitCode(result)
}

// emit renderiza e escreve no destino; separado para a falha de escrita não
// se confundir com falha do scan.
func emit(result model.ScanReport, format report.Format) error {
	out, err := report.Render(result, format, detailed)
	if err != nil {
		return err
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(out), 0o644); err != nil {
			return fmt.Errorf("escrever %s: %w", outputFile, err)
		}
		logger.Infow("Relatório salvo", "arquivo", outputFile, "formato", format)
		return nil
	}

	fmt.Println(out)
	return nil
}

func init() {
	scanCmd.Flags().StringVarP(&outputFormat, "format", "f", "console", "Formato da saída (console, json, xml, html, sarif)")
	scanCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Escreve o relatório num arquivo em vez de stdout")
	scanCmd.Flags().BoolVar(&detailed, "detailed", false, "Inclui o detalhe por arquivo na saída console")
	scanCmd.Flags().BoolVar(&excludeTests, "exclude-tests", false, "Trata arquivos de teste como excluídos")
	scanCmd.Flags().StringSliceVar(&extraExclude, "exclude", nil, "Globs adicionais de exclusão (ex: build,dist)")
	scanCmd.Flags().StringSliceVar(&extensions, "ext", nil, "Extensões a analisar (padrão: .ps1,.psm1,.psd1)")
	scanCmd.Flags().IntVar(&workers, "workers", 0, "Número de workers do scan (padrão: 4)")
	scanCmd.Flags().StringVarP(&withTool, "with", "w", "", "Executa ferramenta externa e mescla os findings (ex: pssa, pester)")
	scanCmd.Flags().BoolVar(&debugMode, "debug", false, "Habilita logs em nível debug")
	rootCmd.AddCommand(scanCmd)
}
