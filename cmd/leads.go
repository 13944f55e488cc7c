package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/gbp-pulse/internal/store"
)

var (
	leadsHotOnly  bool
	leadsMinScore int
	leadsLimit    int
	leadsJSON     bool
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "List captured leads",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		leads, err := st.ListLeads(ctx, store.LeadFilter{
			HotOnly:  leadsHotOnly,
			MinScore: leadsMinScore,
			Limit:    leadsLimit,
		})
		if err != nil {
			return eris.Wrap(err, "list leads")
		}

		if leadsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(leads)
		}

		if len(leads) == 0 {
			fmt.Println("No leads captured yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "BUSINESS\tEMAIL\tOVERALL\tROT\tSTATUS\tHOT\tCAPTURED")
		for _, l := range leads {
			hot := ""
			if l.Hot {
				hot = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
				l.BusinessName, l.Email, l.OverallScore, l.RotScore,
				l.StatusLabel, hot, l.CreatedAt.Format("2006-01-02"))
		}
		return w.Flush()
	},
}

func init() {
	leadsCmd.Flags().BoolVar(&leadsHotOnly, "hot", false, "only hot leads")
	leadsCmd.Flags().IntVar(&leadsMinScore, "min-score", 0, "minimum overall score")
	leadsCmd.Flags().IntVar(&leadsLimit, "limit", 0, "maximum rows (default 100)")
	leadsCmd.Flags().BoolVar(&leadsJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(leadsCmd)
}
