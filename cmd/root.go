// Package cmd 提供 cstats 的命令行入口与子命令编排。
package cmd

import (
	"context"
	"os"
	"os/signal"

	"cstats/internal/config"
	"cstats/internal/languages"

	"github.com/spf13/cobra"
)

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
// 收到 Ctrl+C 时取消 context，正在进行的扫描会尽快退出。
func Execute(version string) error {
	defaults, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	registry := languages.NewRegistry()
	rootCmd := newRootCmd(version, registry, defaults)
	return rootCmd.ExecuteContext(ctx)
}

// newRootCmd 创建根命令并注册全部子命令。
func newRootCmd(version string, registry *languages.Registry, defaults config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cstats",
		Short: "C/C++ 代码行统计与报告工具",
		Long: "cstats 使用启发式行分类器统计 C/C++ 代码库的 total/code/comment/blank 行数，\n" +
			"按后缀与顶层目录汇总，并输出表格、JSON 或单文件 HTML 报告。",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newLanguageCmd(registry))
	rootCmd.AddCommand(newScanCmd(registry, defaults))
	rootCmd.AddCommand(newClassifyCmd(registry))

	return rootCmd
}
