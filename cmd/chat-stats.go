package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/chatlogtools/chatparse/chatlog"
	"github.com/chatlogtools/chatparse/config"
	"github.com/chatlogtools/chatparse/stats"
)

var (
	topN        int
	attachments bool
	dateOrder   string
)

// NewStatsCmd builds the chat-stats subcommand: parse an export and show
// per-author activity instead of the messages themselves.
func NewStatsCmd() *cobra.Command {
	statsCmd := &cobra.Command{
		Use:   "chat-stats [chat export]",
		Short: "Analyse a chat export and show statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			exportPath := args[0]

			order, err := config.ParseDateOrder(dateOrder)
			if err != nil {
				return err
			}
			cfg := config.Config{DateOrder: order}

			msgs, err := chatlog.ParseFile(exportPath, chatlog.Options{
				DaysFirst:        cfg.DaysFirst(),
				ParseAttachments: attachments,
			})
			if err != nil {
				return err
			}

			summary := stats.Collect(msgs)

			pterm.DefaultSection.Println("Chat Statistics")
			pterm.Info.Printf("Export: %s\n", exportPath)
			pterm.Info.Printf("Messages: %d\n", summary.Messages)
			pterm.Info.Printf("System messages: %d\n", summary.SystemMessages)
			if attachments {
				pterm.Info.Printf("Messages with attachments: %d\n", summary.WithAttachments)
			}
			if !summary.First.IsZero() {
				pterm.Info.Printf("From %s to %s\n", summary.First.Format("2006-01-02"), summary.Last.Format("2006-01-02"))
			}

			pterm.Println()
			pterm.DefaultSection.Printf("Top %d authors", topN)
			stats.PrettyPrintTop(summary, topN)

			return nil
		},
	}

	flags := statsCmd.Flags()
	flags.IntVarP(&topN, "top", "t", 10, "Number of top authors to display")
	flags.BoolVar(&attachments, "attachments", false, "Also count attachment markers")
	flags.StringVar(&dateOrder, "date-order", config.DateOrderAuto, "Interpretation of ambiguous date fields: auto, day-first or month-first")

	return statsCmd
}
