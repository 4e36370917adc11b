package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vitormoschetta/go-askchat/internal/transcript"
)

func newAskCmd(a *app) *cobra.Command {
	var showTranscript bool

	cmd := &cobra.Command{
		Use:   "ask <message...>",
		Short: "Send one message and print the answer",
		Example: `  askchat ask "What is the capital of France?"
  askchat ask --endpoint http://localhost:8080 hello there`,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, _, err := a.newHandler()
			if err != nil {
				return err
			}

			view := &bufferView{Transcript: transcript.New(), value: strings.Join(args, " ")}
			exchange, err := h.Send(cmd.Context(), view)
			if err != nil {
				return err
			}
			if exchange == nil {
				a.logger.Debug("blank message, nothing sent")
				return nil
			}

			out := cmd.OutOrStdout()
			if !showTranscript {
				_, err = fmt.Fprintln(out, transcript.Sanitize(exchange.Answer))
				return err
			}
			for _, msg := range view.Last(2) {
				if _, err := fmt.Fprintln(out, transcript.Line(msg)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showTranscript, "transcript", false, "Print the question and the answer as transcript lines")

	return cmd
}

// bufferView é uma view sem tela: a entrada são os argumentos concatenados e
// o histórico fica em memória.
type bufferView struct {
	*transcript.Transcript
	value string
}

func (v *bufferView) Value() string { return v.value }

func (v *bufferView) SetValue(s string) { v.value = s }

func (v *bufferView) ScrollToBottom() {}
