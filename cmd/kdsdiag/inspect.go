package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/irongatelabs/kds-bridge/bridge/kds"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Verify and print the structure of a raw KDS buffer on disk",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			logrus.Fatalf("Failed to read %s: %v", args[0], err)
		}
		decoded, err := kds.Verify(data)
		if err != nil {
			logrus.Fatalf("Buffer failed verification: %v", err)
		}
		fmt.Printf("total length:   %d\n", decoded.TotalLength)
		fmt.Printf("format tag:     0x%04x\n", decoded.FormatTag)
		fmt.Printf("column count:   %d\n", decoded.ColumnCount)
		fmt.Printf("capacity rows:  %d\n", decoded.CapacityRows)
		fmt.Printf("actual rows:    %d\n", decoded.ActualRows)
		fmt.Println("column offsets:")
		for i, off := range decoded.ColumnOffsets {
			fmt.Printf("  [%d] %d\n", i, off)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
