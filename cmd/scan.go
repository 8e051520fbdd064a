package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"cstats/internal/config"
	"cstats/internal/languages"
	"cstats/internal/report"
	"cstats/internal/scanner"

	"github.com/spf13/cobra"
)

// scanOptions 存放 scan 命令的可配置参数。
// 列表类参数以逗号分隔的原始字符串接收，执行时再拆分。
type scanOptions struct {
	config.Config
	ignore  string
	exclude string
	verbose bool
}

// newScanCmd 创建 scan 子命令。
// 示例：
//
//	cstats scan .
//	cstats scan ./project --format json --output result.json
//	cstats scan . --ignore ".git,build,dist" --exclude-files "*test*.*,miniz.h" --top 50 --format html --output c.html
func newScanCmd(registry *languages.Registry, defaults config.Config) *cobra.Command {
	options := scanOptions{
		Config:  defaults,
		ignore:  strings.Join(defaults.IgnoreDirs, ","),
		exclude: strings.Join(defaults.ExcludePatterns, ","),
	}

	scanCmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "扫描目录或文件并输出 C/C++ 代码度量信息",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}

			cfg := options.Config
			cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
			cfg.IgnoreDirs = config.SplitList(options.ignore)
			cfg.ExcludePatterns = config.SplitList(options.exclude)
			if options.verbose {
				cfg.LogLevel = "debug"
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			service := scanner.NewService(registry, scanner.Options{
				Workers:         cfg.Workers,
				IgnoreDirs:      cfg.IgnoreDirs,
				ExcludePatterns: cfg.ExcludePatterns,
				FollowSymlinks:  cfg.FollowSymlinks,
				CacheSize:       cfg.CacheSize,
				Logger:          newLogger(cmd.ErrOrStderr(), cfg.LogLevel),
			})
			result, err := service.ScanPath(cmd.Context(), target)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(result.Files) == 0 && len(result.Errors) == 0 {
				_, err := fmt.Fprintln(out, "No C/C++ files found.")
				return err
			}

			switch cfg.Format {
			case config.FormatTable:
				return report.PrintTable(out, result, cfg.Top)
			case config.FormatJSON:
				if err := report.PrintJSON(out, result); err != nil {
					return err
				}

				outputPath := cfg.OutputPath()
				if err := report.WriteJSONFile(outputPath, result); err != nil {
					return err
				}

				_, _ = fmt.Fprintf(out, "\nJSON exported to %s\n", outputPath)
				return nil
			case config.FormatHTML:
				outputPath, err := filepath.Abs(cfg.OutputPath())
				if err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}

				htmlOptions := report.HTMLOptions{Top: cfg.Top, ExcludePatterns: cfg.ExcludePatterns}
				if err := report.WriteHTMLFile(outputPath, result, htmlOptions); err != nil {
					return err
				}

				_, _ = fmt.Fprintf(out, "Wrote HTML report: %s\n", outputPath)
				return nil
			default:
				return errors.New("unsupported format")
			}
		},
	}

	flags := scanCmd.Flags()
	flags.StringVar(&options.Format, "format", options.Format, "输出格式: table、json 或 html")
	flags.StringVar(&options.Output, "output", options.Output, "导出文件路径，默认 json 为 output.json、html 为 c_stats_report.html")
	flags.IntVar(&options.Workers, "workers", options.Workers, "并发 worker 数量")
	flags.IntVar(&options.Top, "top", options.Top, "Top 表格与图表的行数")
	flags.StringVar(&options.ignore, "ignore", options.ignore, "逗号分隔的忽略目录名（精确匹配）")
	flags.StringVar(&options.exclude, "exclude-files", options.exclude, "逗号分隔的文件排除模式，匹配文件名或相对路径，** 可跨目录")
	flags.BoolVar(&options.FollowSymlinks, "follow-symlinks", options.FollowSymlinks, "进入符号链接指向的目录")
	flags.IntVar(&options.CacheSize, "cache-size", options.CacheSize, "按内容缓存分析结果的条目数，0 表示关闭")
	flags.BoolVarP(&options.verbose, "verbose", "v", false, "输出调试日志")

	return scanCmd
}
