package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/founder_radar/app/insight/pkg/attachment"
	"github.com/iWorld-y/founder_radar/app/insight/pkg/engine"
)

var (
	attachFile string
	attachURL  string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive founder assistant (reads stdin, /reset and /exit supported)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		eng, cleanup, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		att := attachment.Attachment{URL: attachURL}
		if attachFile != "" {
			b, err := os.ReadFile(attachFile)
			if err != nil {
				return fmt.Errorf("read attachment: %w", err)
			}
			att = attachment.Attachment{Name: attachFile, Text: string(b)}
		}
		return runChat(ctx, eng, att, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	chatCmd.Flags().StringVar(&attachFile, "attach-file", "", "Text file attached to every turn")
	chatCmd.Flags().StringVar(&attachURL, "attach-url", "", "Web page attached to every turn")
}

func runChat(ctx context.Context, eng *engine.Engine, att attachment.Attachment, in io.Reader, out io.Writer) error {
	session := eng.NewSession()
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			fmt.Fprint(out, "> ")
			continue
		case "/exit", "/quit":
			return nil
		case "/reset":
			eng.ResetSession(session)
			session = eng.NewSession()
			fmt.Fprint(out, "(new session)\n> ")
			continue
		}

		tctx, cancel := context.WithTimeout(ctx, timeout)
		reply, err := eng.Chat(tctx, session, line, att)
		cancel()
		switch {
		case reply != nil:
			fmt.Fprintln(out, reply.Reply)
		case errors.Is(err, engine.ErrUnknownSession):
			// 闲置过久的会话已被回收
			session = eng.NewSession()
			fmt.Fprintln(out, "(session expired, started a new one)")
		case err != nil:
			fmt.Fprintf(out, "error: %v\n", err)
		}
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}
