package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vitalcheck/internal/diagnosis"
)

func (a *app) newRulesCmd() *cobra.Command {
	var duplicates bool
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rule table in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			table := diagnosis.DefaultTable()

			if duplicates {
				dups := table.DuplicateConjunctions()
				if len(dups) == 0 {
					fmt.Fprintln(w, "No duplicate rules.")
					return nil
				}
				fmt.Fprintf(w, "%d rules can never fire:\n", len(dups))
				for _, d := range dups {
					fmt.Fprintf(w, "  #%-3d %-28s shadowed by #%d %s\n",
						d.Rule.Priority, d.Rule.Label, d.ShadowedBy.Priority, d.ShadowedBy.Label)
				}
				return nil
			}

			header := make([]string, 0, diagnosis.TermsPerRule)
			for _, k := range diagnosis.RuleVitals() {
				header = append(header, fmt.Sprintf("%-15s", k.Key()))
			}
			fmt.Fprintf(w, "%-4s  %-28s  %s\n", "#", "Label", strings.Join(header, " "))
			fmt.Fprintln(w, strings.Repeat("─", 36+16*diagnosis.TermsPerRule))

			for _, r := range table.Rules() {
				terms := make([]string, len(r.Terms))
				for i, t := range r.Terms {
					terms[i] = fmt.Sprintf("%-15s", t.Predicate.String())
				}
				fmt.Fprintf(w, "%-4d  %-28s  %s\n", r.Priority, r.Label, strings.Join(terms, " "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&duplicates, "duplicates", false, "Only list rules shadowed by an earlier identical rule")
	return cmd
}
