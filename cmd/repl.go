package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vitormoschetta/go-askchat/internal/repl"
)

func newReplCmd(a *app) *cobra.Command {
	var prompt string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Chat line by line on stdin and stdout",
		Long:  "Reads one message per line and prints each answer. Type sair, exit or quit to leave.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, _, err := a.newHandler()
			if err != nil {
				return err
			}

			r := repl.New(h, cmd.InOrStdin(), cmd.OutOrStdout(),
				repl.WithLogger(a.logger),
				repl.WithPrompt(prompt),
			)
			return r.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&prompt, "prompt", "> ", "Prompt printed before each message")

	return cmd
}
