package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hach2pro/app-letp/internal/attendance"
)

var errPasswordMismatch = errors.New("两次输入的密码不一致")

func resetPasswordCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password",
		Short: "重置共享管理密码（无需旧密码）",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			read := promptReader(cmd.InOrStdin(), cmd.ErrOrStderr())
			secret, err := read("Nouveau mot de passe : ")
			if err != nil {
				return err
			}
			confirm, err := read("Confirmer : ")
			if err != nil {
				return err
			}
			if secret != confirm {
				return errPasswordMismatch
			}

			e, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			err = e.store.Update(cmd.Context(), func(st *attendance.State) (bool, error) {
				return true, st.Gate.Reset(secret)
			})
			if err != nil {
				return err
			}
			e.logger.Info("管理密码已重置")
			fmt.Fprintln(cmd.OutOrStdout(), "mot de passe mis à jour")
			return nil
		},
	}
}

// promptReader 终端下关闭回显读取；管道输入时逐行读取
func promptReader(in io.Reader, prompt io.Writer) func(label string) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		return func(label string) (string, error) {
			fmt.Fprint(prompt, label)
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(prompt)
			if err != nil {
				return "", fmt.Errorf("读取密码失败: %w", err)
			}
			return string(b), nil
		}
	}

	sc := bufio.NewScanner(in)
	return func(label string) (string, error) {
		fmt.Fprint(prompt, label)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", fmt.Errorf("读取密码失败: %w", err)
			}
			return "", io.ErrUnexpectedEOF
		}
		return strings.TrimRight(sc.Text(), "\r"), nil
	}
}
