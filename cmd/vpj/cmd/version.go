package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vpj version %s\n", version)
		fmt.Println("A volume-profile trade journal")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
