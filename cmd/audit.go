package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/gbp-pulse/internal/audit"
)

var (
	auditEmail  string
	auditSave   bool
	auditNotify bool
	auditJSON   bool
	auditYAML   bool
)

var auditCmd = &cobra.Command{
	Use:   "audit <business>",
	Short: "Run a full profile audit for a business",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := initAuditor(ctx, sinkSelection{save: auditSave, notify: auditNotify})
		if err != nil {
			return err
		}
		defer e.Close()

		res, err := e.auditor.Run(ctx, audit.Request{
			Business: strings.Join(args, " "),
			Email:    auditEmail,
		})
		if err != nil {
			return eris.Wrap(err, "run audit")
		}

		switch {
		case auditJSON:
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		case auditYAML:
			return yaml.NewEncoder(os.Stdout).Encode(res)
		default:
			printAuditResult(res)
			return nil
		}
	},
}

func printAuditResult(res *audit.Result) {
	if !res.Found {
		fmt.Printf("No business found for %q\n", res.Query)
		return
	}

	r := res.Report
	fmt.Printf("%s\n%s\n\n", res.BusinessName, res.Address)
	fmt.Printf("Overall score:   %d/100 (%s)\n", r.OverallScore, r.Status.Label)
	fmt.Printf("Review health:   %d/100\n", r.ReviewHealthScore)
	fmt.Printf("Review rot:      %d/100 (%s, %s urgency)\n", r.RotScore, r.Rot.Label, r.Rot.Urgency)
	fmt.Printf("Profile:         %d/100\n", r.Profile.Value)
	fmt.Printf("Photos:          %d/100 (%d photos)\n", r.Photo.Value, r.Photo.Count)
	fmt.Printf("Responses:       %d/100 (%d%% responded)\n", r.Response.Value, r.Response.ResponseRate)

	if r.Impact.MonthlyRevenueAtRisk > 0 {
		fmt.Printf("\nEstimated impact: %d missed calls, $%d revenue at risk per month\n",
			r.Impact.MissedCallsPerMonth, r.Impact.MonthlyRevenueAtRisk)
	}

	issues := make([]string, 0, 8)
	issues = append(issues, r.Profile.Issues...)
	issues = append(issues, r.Photo.Issues...)
	issues = append(issues, r.Response.Issues...)
	if len(issues) > 0 {
		fmt.Println("\nIssues:")
		for _, issue := range issues {
			fmt.Printf("  - %s\n", issue)
		}
	}

	recs := make([]string, 0, 8)
	recs = append(recs, r.Profile.Recommendations...)
	recs = append(recs, r.Photo.Recommendations...)
	recs = append(recs, r.Response.Recommendations...)
	if len(recs) > 0 {
		fmt.Println("\nRecommendations:")
		for _, rec := range recs {
			fmt.Printf("  - %s\n", rec)
		}
	}

	if res.Hot {
		fmt.Println("\nHot lead: this business is a strong outreach candidate.")
	}
}

func init() {
	auditCmd.Flags().StringVar(&auditEmail, "email", "", "contact email to capture with the lead")
	auditCmd.Flags().BoolVar(&auditSave, "save", false, "persist the lead to the store")
	auditCmd.Flags().BoolVar(&auditNotify, "notify", false, "fan out to the configured webhook/CRM/notification sinks")
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "print the raw result as JSON")
	auditCmd.Flags().BoolVar(&auditYAML, "yaml", false, "print the raw result as YAML")
	rootCmd.AddCommand(auditCmd)
}
