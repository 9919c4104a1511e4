package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sena-ops/compliguard/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Lista as regras embutidas e suas severidades",
	Run: func(cmd *cobra.Command, args []string) {
		set := rules.Default(nil)
		fmt.Printf("Conjunto '%s' com %d regra(s):\n\n", set.Name, len(set.Rules))
		for _, r := range set.Rules {
			test := r.TestSeverity
			if test == "" {
				test = r.Severity
			}
			fmt.Printf("  %-28s categoria=%-12s severidade=%-8s (teste: %-8s) aplica=%s\n",
				r.ID, r.Category, r.Severity, test, r.AppliesTo)
		}
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
