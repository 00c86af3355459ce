package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func statsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "打印某周的统计表",
	}
	cmd.AddCommand(
		statsSubCmd(opts, "students", "按学生统计出勤小时数", printStudentStats),
		statsSubCmd(opts, "subjects", "按课程统计出勤人次", printSubjectStats),
		statsSubCmd(opts, "teachers", "按教师统计出勤人次", printTeacherStats),
	)
	return cmd
}

type statsPrinter func(cmd *cobra.Command, e *env, week string, w io.Writer) error

func statsSubCmd(opts *options, use, short string, render statsPrinter) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
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

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			if err := render(cmd, e, week, tw); err != nil {
				return err
			}
			return tw.Flush()
		},
	}
}

func printStudentStats(cmd *cobra.Command, e *env, week string, w io.Writer) error {
	rows, err := e.svc.Stats.Students(cmd.Context(), week)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "ÉLÈVE\tPRÉSENT (h)\tABSENT (h)\tTAUX (%)")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f\n", r.Student, r.PresentHours, r.AbsentHours, r.PresenceRate)
	}
	return nil
}

func printSubjectStats(cmd *cobra.Command, e *env, week string, w io.Writer) error {
	rows, err := e.svc.Stats.Subjects(cmd.Context(), week)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "JOUR\tMATIÈRE\tPROFESSEUR\tPRÉSENTS\tABSENTS\tTAUX (%)")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.1f\n",
			r.Weekday, r.Subject, r.Teacher.Name, r.Present, r.Absent, r.Rate)
	}
	return nil
}

func printTeacherStats(cmd *cobra.Command, e *env, week string, w io.Writer) error {
	rows, err := e.svc.Stats.Teachers(cmd.Context(), week)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "PROFESSEUR\tMATIÈRES\tPRÉSENTS\tABSENTS\tTAUX (%)")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.1f\n",
			r.Teacher.Name, len(r.Subjects), r.Present, r.Absent, r.Rate)
	}
	return nil
}
