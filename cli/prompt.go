package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moyoez/imgup/button"
	"github.com/moyoez/imgup/notify"
	"github.com/moyoez/imgup/picker"
	"github.com/moyoez/imgup/tool"
	"github.com/moyoez/imgup/types"
)

const quitCommand = ":q"

func newPromptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Select and upload files interactively",
		Long: `Each line replaces the selection with the files it names and presses upload.
An empty line presses upload with nothing selected. Lines entered while an upload
is running still change the selection, but the press is ignored. ":q" quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := picker.New(appCfg.Mode)
			// stdin carries the selections, so alerts are never acknowledged here
			term := notify.NewTerminal(cmd.OutOrStdout(), nil, false)
			h, err := newHandler(sel, button.New(), notifiers(term))
			if err != nil {
				return err
			}
			return runPrompt(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), sel, h)
		},
	}
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "print every result as JSON")
	return cmd
}

type trigger interface {
	Trigger(ctx context.Context) (<-chan types.UploadResult, bool)
}

func runPrompt(ctx context.Context, in io.Reader, out io.Writer, sel *picker.Selection, h trigger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	var pending <-chan types.UploadResult
	// report prints a settled result and redraws the prompt.
	report := func(res types.UploadResult, ok bool) {
		pending = nil
		if ok && flags.JSON {
			if err := printResult(out, res); err != nil {
				tool.DefaultLogger.Warnf("%v", err)
			}
		}
		fmt.Fprintf(out, "%s files> ", sel.Mode())
	}

	fmt.Fprintf(out, "%s files> ", sel.Mode())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			line = strings.TrimSpace(line)
			if !ok || line == quitCommand {
				if pending != nil {
					res, ok := <-pending
					report(res, ok)
				}
				return nil
			}
			if err := sel.Select(strings.Fields(line)...); err != nil {
				fmt.Fprintln(out, err)
				fmt.Fprintf(out, "%s files> ", sel.Mode())
				continue
			}
			ch, started := h.Trigger(ctx)
			if !started {
				fmt.Fprintln(out, "upload in progress, press ignored")
				continue
			}
			// the trigger was enabled again, so the previous result is about to land
			if pending != nil {
				res, ok := <-pending
				report(res, ok)
			}
			pending = ch
		case res, ok := <-pending:
			report(res, ok)
		}
	}
}
