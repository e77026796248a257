package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the renkodisc CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("renkodisc version %s\n", version)
		fmt.Println("A Renko brick scanner for moving-average pullback signals")
		fmt.Println("https://github.com/forrestang/RenkoDiscovery-sub000")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
