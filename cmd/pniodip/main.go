package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pniodip",
		Short: "PROFINET IO Real-Time Cyclic dissector",
		Long: `PNIODIP dissects PROFINET IO traffic, with a focus on the Real-Time
Cyclic (RTC) PDU format and the PROFIsafe sub-frames nested inside it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newClassifyCmd())
	rootCmd.AddCommand(newPcapCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
