package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func exportCmd(opts *options) *cobra.Command {
	var (
		format string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "导出统计表（xlsx）或课表（ics）",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			week, err := opts.resolveWeek()
			if err != nil {
				return err
			}
			e, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			var (
				data     []byte
				filename string
			)
			switch format {
			case "xlsx":
				buf, name, err := e.svc.Export.ExportStats(cmd.Context(), week)
				if err != nil {
					return err
				}
				data, filename = buf.Bytes(), name
			case "ics":
				data, filename, err = e.svc.Schedule.ExportICS(cmd.Context(), week)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("不支持的导出格式: %s（可选 xlsx、ics）", format)
			}

			path := filepath.Join(outDir, filename)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("写入导出文件失败: %w", err)
			}
			e.logger.Info("导出完成", zap.String("path", path), zap.Int("bytes", len(data)))
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "xlsx", "导出格式：xlsx 或 ics")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "输出目录")
	return cmd
}
