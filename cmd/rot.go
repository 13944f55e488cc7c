package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/gbp-pulse/internal/audit"
	"github.com/sells-group/gbp-pulse/internal/score"
)

var (
	rotEmail  string
	rotNotify bool
	rotJSON   bool
)

var rotCmd = &cobra.Command{
	Use:   "rot <business>",
	Short: "Check a business's review rot score",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := initAuditor(ctx, sinkSelection{notify: rotNotify})
		if err != nil {
			return err
		}
		defer e.Close()

		res, err := e.auditor.RotCheck(ctx, audit.Request{
			Business: strings.Join(args, " "),
			Email:    rotEmail,
		})
		if err != nil {
			return eris.Wrap(err, "rot check")
		}

		if rotJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		printRotResult(res)
		return nil
	},
}

func printRotResult(res *audit.RotResult) {
	if !res.Found {
		fmt.Printf("No business found for %q\n", res.Query)
		return
	}

	fmt.Printf("%s\n", res.BusinessName)
	if res.DaysSinceLastReview == score.UnknownReviewDays {
		fmt.Println("Last review:     unknown")
	} else {
		fmt.Printf("Last review:     %d days ago\n", res.DaysSinceLastReview)
	}
	fmt.Printf("Review rot:      %d/100 (%s, %s urgency)\n", res.RotScore, res.Status.Label, res.Status.Urgency)
	if res.Hot {
		fmt.Println("\nHot lead: reviews have gone stale enough to pitch a fix.")
	}
}

func init() {
	rotCmd.Flags().StringVar(&rotEmail, "email", "", "contact email to capture with the lead")
	rotCmd.Flags().BoolVar(&rotNotify, "notify", false, "fan out to the configured webhook/CRM/notification sinks")
	rotCmd.Flags().BoolVar(&rotJSON, "json", false, "print the raw result as JSON")
	rootCmd.AddCommand(rotCmd)
}
