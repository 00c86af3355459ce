package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func syncWeekCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sync-week",
		Short: "为已初始化的周补齐名单中新增的学生",
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

			res, err := e.svc.Attendance.SyncWeek(cmd.Context(), week)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d élève(s) ajouté(s)\n", res.WeekKey, res.Added)
			return nil
		},
	}
}
