package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "compliguard",
	Short: "CompliGuard - Scanner de Conformidade de Padrões",
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
