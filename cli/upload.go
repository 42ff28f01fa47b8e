package cli

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/moyoez/imgup/button"
	"github.com/moyoez/imgup/notify"
	"github.com/moyoez/imgup/picker"
	"github.com/moyoez/imgup/types"
)

func newUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload [files...]",
		Short: "Upload the given files once",
		Long: `Select the given files (glob patterns allowed) and upload them in one request.
In single mode only the first file is sent. With no files the request is not made.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := picker.New(appCfg.Mode)
			if err := sel.Select(args...); err != nil {
				return err
			}

			term := notify.NewTerminal(cmd.OutOrStdout(), cmd.InOrStdin(), appCfg.Acknowledge)
			h, err := newHandler(sel, button.New(), notifiers(term))
			if err != nil {
				return err
			}

			res := h.Upload(cmd.Context())
			if flags.JSON {
				if err := printResult(cmd.OutOrStdout(), res); err != nil {
					return err
				}
			}
			if !res.OK() {
				return ErrUploadFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "print the result as JSON")
	return cmd
}

func printResult(w io.Writer, res types.UploadResult) error {
	data, err := sonic.Marshal(&res)
	if err != nil {
		return fmt.Errorf("failed to encode result: %v", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
