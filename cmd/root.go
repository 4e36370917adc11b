// Package cmd monta os comandos do askchat.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vitormoschetta/go-askchat/internal/chat"
	"github.com/vitormoschetta/go-askchat/internal/client"
	"github.com/vitormoschetta/go-askchat/internal/config"
	errUtils "github.com/vitormoschetta/go-askchat/internal/errors"
	"github.com/vitormoschetta/go-askchat/internal/logging"
)

// app guarda o estado compartilhado pelos comandos de uma execução.
type app struct {
	v        *viper.Viper
	cfg      *config.Config
	logger   *log.Logger
	logClose io.Closer
}

// NewRootCmd cria a árvore de comandos do askchat com configuração própria.
// A função close retornada libera o arquivo de log aberto pelo comando e deve
// ser chamada depois que o comando retornar, mesmo com erro.
func NewRootCmd() (*cobra.Command, func() error) {
	a := &app{v: config.New()}
	return newRootCmd(a), a.close
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "askchat",
		Short: "Chat with an ask backend from the terminal",
		Long: `askchat sends each message you type to a backend as
POST <endpoint><path> {"message": "..."} and shows the {"answer": "..."} it returns.

Run without a subcommand to start the full-screen chat.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChat(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(config.KeyEndpoint, config.DefaultEndpoint, "Base URL of the ask backend (or ASKCHAT_ENDPOINT)")
	flags.String(config.KeyPath, config.DefaultPath, "Path of the ask endpoint (or ASKCHAT_PATH)")
	flags.String(config.KeyLogLevel, config.DefaultLogLevel, "Log level: debug, info, warn, error (or ASKCHAT_LOG_LEVEL)")
	flags.String(config.KeyLogFile, "", "Write logs to this file instead of stderr (or ASKCHAT_LOG_FILE)")
	flags.String(config.KeyInFlight, config.DefaultInFlight, "What a send does while another is in flight: reject or wait (or ASKCHAT_IN_FLIGHT)")

	for _, key := range []string{config.KeyEndpoint, config.KeyPath, config.KeyLogLevel, config.KeyLogFile, config.KeyInFlight} {
		_ = a.v.BindPFlag(key, flags.Lookup(key))
	}

	rootCmd.AddCommand(
		newChatCmd(a),
		newReplCmd(a),
		newAskCmd(a),
		newMockServerCmd(a),
	)

	return rootCmd
}

// Execute roda o comando raiz e retorna o código de saída do processo.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd, closeLog := NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	if closeErr := closeLog(); err == nil {
		err = closeErr
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, errUtils.Format(err))
		return 1
	}
	return 0
}

func (a *app) close() error {
	if a.logClose == nil {
		return nil
	}
	err := a.logClose.Close()
	a.logClose = nil
	return errors.Wrap(err, "close log file")
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return errUtils.WithHintf(err, "fix or remove the .env file")
	}
	a.cfg = config.Load(a.v)

	// A TUI ocupa o terminal: sem arquivo de log, os logs são descartados.
	fallback := cmd.ErrOrStderr()
	if isTUI(cmd) {
		fallback = io.Discard
	}

	logger, closer, err := logging.Open(a.cfg.LogLevel, a.cfg.LogFile, fallback)
	if err != nil {
		return err
	}
	a.logger = logger
	a.logClose = closer
	log.SetDefault(logger)

	return nil
}

func isTUI(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "chat"
}

// newHandler cria o cliente e o handler de troca a partir da configuração.
func (a *app) newHandler() (*chat.Handler, *client.Client, error) {
	policy, err := chat.ParsePolicy(a.cfg.InFlight)
	if err != nil {
		return nil, nil, err
	}

	c, err := client.New(a.cfg.Endpoint, client.WithPath(a.cfg.Path), client.WithLogger(a.logger))
	if err != nil {
		return nil, nil, err
	}

	a.logger.Debug("client ready", "endpoint", c.Endpoint(), "in_flight", policy.String())

	return chat.NewHandler(c, chat.WithPolicy(policy), chat.WithLogger(a.logger)), c, nil
}
