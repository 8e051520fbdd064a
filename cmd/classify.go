package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"cstats/internal/languages"

	"github.com/spf13/cobra"
)

// newClassifyCmd 创建 classify 子命令。
// 命令逐行输出分类结果，便于排查某个文件的统计为什么与预期不同。
//
//	cstats classify src/main.c
//	cstats classify src/main.c --summary
func newClassifyCmd(registry *languages.Registry) *cobra.Command {
	var summaryOnly bool

	classifyCmd := &cobra.Command{
		Use:   "classify <file>",
		Short: "逐行展示单个文件的 blank/comment/code 分类",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filePath := args[0]

			analyzer, ok := registry.AnalyzerForFile(filePath)
			if !ok {
				return fmt.Errorf("unsupported file extension: %s", filepath.Ext(filePath))
			}
			lineAnalyzer, ok := analyzer.(languages.LineAnalyzer)
			if !ok {
				return fmt.Errorf("%s analyzer does not support per-line output", analyzer.Name())
			}

			file, err := os.Open(filePath)
			if err != nil {
				return err
			}
			defer file.Close()

			lines, result, err := lineAnalyzer.AnalyzeLines(file)
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if !summaryOnly {
				if _, err := fmt.Fprintln(writer, "LINE\tCLASS\tTEXT"); err != nil {
					return err
				}
				for idx, class := range result.Lines {
					text := strings.ReplaceAll(lines[idx], "\t", "    ")
					if _, err := fmt.Fprintf(writer, "%d\t%s\t%s\n", idx+1, class, text); err != nil {
						return err
					}
				}
				if _, err := fmt.Fprintln(writer); err != nil {
					return err
				}
			}

			if _, err := fmt.Fprintln(writer, "TOTAL\tBLANK\tCOMMENT\tCODE"); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(writer, "%d\t%d\t%d\t%d\n", result.Total, result.Blank, result.CommentOnly, result.Code); err != nil {
				return err
			}

			return writer.Flush()
		},
	}

	classifyCmd.Flags().BoolVar(&summaryOnly, "summary", false, "只输出汇总行数")

	return classifyCmd
}
