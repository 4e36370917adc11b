package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vitormoschetta/go-askchat/internal/config"
	"github.com/vitormoschetta/go-askchat/internal/handler"
	"github.com/vitormoschetta/go-askchat/internal/server"
)

func newMockServerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Run a local ask backend for development",
		Long: `Serves POST <path> with {"answer": "..."}. Without --answer it echoes the
message back as "You said: <message>".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := server.NewServer(a.cfg.Mock, a.cfg.Path, a.logger)
			h := handler.NewHandler(srv)
			srv.SetupRouter(h.HandleRoot, h.HandleHealth, h.HandleAsk)

			return srv.Start(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.String("addr", config.DefaultMockAddr, "Address to listen on (or ASKCHAT_MOCK_ADDR)")
	flags.String("answer", "", "Fixed answer to return instead of echoing (or ASKCHAT_MOCK_ANSWER)")
	flags.Duration("latency", time.Duration(0), "Delay before each answer (or ASKCHAT_MOCK_LATENCY)")

	_ = a.v.BindPFlag(config.KeyMockAddr, flags.Lookup("addr"))
	_ = a.v.BindPFlag(config.KeyMockAnswer, flags.Lookup("answer"))
	_ = a.v.BindPFlag(config.KeyMockLatency, flags.Lookup("latency"))

	return cmd
}
