package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/moyoez/imgup/button"
	"github.com/moyoez/imgup/notify"
	"github.com/moyoez/imgup/picker"
	"github.com/moyoez/imgup/tool"
	"github.com/moyoez/imgup/transfer"
	"github.com/moyoez/imgup/types"
)

// ErrUploadFailed is returned by commands whose upload did not succeed. The
// user has already been notified, so main only sets the exit status.
var ErrUploadFailed = errors.New("upload did not succeed")

var (
	flags  types.Config
	appCfg types.AppConfig
)

var rootCmd = &cobra.Command{
	Use:           "imgup",
	Short:         "Upload images to an image server",
	Long:          "imgup picks image files and posts them as one multipart form to <server>/api/upload.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		tool.InitLogger()
		tool.SetLogMode(flags.Log)

		cfg, err := tool.LoadConfig(flags.ConfigPath)
		if err != nil {
			return err
		}
		if err := tool.ApplyOverrides(&cfg, flags); err != nil {
			return err
		}
		appCfg = cfg
		tool.DefaultLogger.Debugf("Config: server=%s mode=%s field=%s timeout=%q", cfg.Server, cfg.Mode, cfg.FieldName, cfg.Timeout)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "config file path (default ./imgup.yaml)")
	rootCmd.PersistentFlags().StringVar(&flags.Log, "log", "", "log mode: dev|prod|none")
	rootCmd.PersistentFlags().StringVarP(&flags.Server, "server", "s", "", "image server base URL, e.g. http://localhost:3000")
	rootCmd.PersistentFlags().StringVarP(&flags.Mode, "mode", "m", "", "selection mode: single|multi")
	rootCmd.PersistentFlags().StringVar(&flags.Timeout, "timeout", "", "request timeout, e.g. 30s (default none)")
	rootCmd.PersistentFlags().StringVar(&flags.NotifySocket, "notify-socket", "", "also send alerts to this Unix socket")

	rootCmd.AddCommand(newUploadCmd())
	rootCmd.AddCommand(newPromptCmd())
	rootCmd.AddCommand(newServeCmd())
}

// newHandler wires the handler from the loaded config.
func newHandler(sel *picker.Selection, trig button.Button, notifier notify.Notifier) (*transfer.Handler, error) {
	endpoint, err := tool.BuildUploadURL(appCfg.Server)
	if err != nil {
		return nil, err
	}
	timeout, err := tool.ParseTimeout(appCfg.Timeout)
	if err != nil {
		return nil, err
	}
	return transfer.New(sel, trig, notifier,
		transfer.WithEndpoint(endpoint),
		transfer.WithClient(tool.NewHTTPClient(timeout)),
		transfer.WithFieldName(appCfg.FieldName),
		transfer.WithMessages(types.DefaultMessages(appCfg.SizeLimitMB)),
	), nil
}

// notifiers returns the terminal notifier plus the socket one when configured.
func notifiers(term *notify.Terminal) notify.Notifier {
	if appCfg.NotifySocket == "" {
		return term
	}
	return notify.Multi{term, notify.NewSocket(appCfg.NotifySocket)}
}
