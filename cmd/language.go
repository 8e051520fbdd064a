package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"cstats/internal/languages"

	"github.com/spf13/cobra"
)

// newLanguageCmd 创建 language 子命令。
// 不带参数时列出全部已实现语言，带语言名时只输出该语言的后缀，每行一个。
func newLanguageCmd(registry *languages.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "language [name]",
		Short: "展示已实现语言及后缀",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				extensions := registry.ExtensionsForLanguage(args[0])
				if len(extensions) == 0 {
					return fmt.Errorf("unknown language: %s", args[0])
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(extensions, "\n"))
				return err
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if _, err := fmt.Fprintln(writer, "LANGUAGE\tEXTENSIONS"); err != nil {
				return err
			}

			for _, item := range registry.Languages() {
				if _, err := fmt.Fprintf(writer, "%s\t%s\n", item.Name, strings.Join(item.Extensions, ", ")); err != nil {
					return err
				}
			}

			return writer.Flush()
		},
	}
}
