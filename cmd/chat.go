package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vitormoschetta/go-askchat/internal/tui"
)

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start the full-screen chat (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChat(cmd)
		},
	}
}

func (a *app) runChat(cmd *cobra.Command) error {
	h, c, err := a.newHandler()
	if err != nil {
		return err
	}

	return tui.Run(cmd.Context(), h, tui.Options{
		Endpoint: c.Endpoint(),
		Logger:   a.logger,
	})
}
