package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CodePeacock/pdf-parser/internal/schemas"
)

var validateRecordCmd = &cobra.Command{
	Use:   "validate-record",
	Short: "Validate extracted record files against the record schema",
	RunE:  runValidateRecord,
}

var validateInputs []string

func init() {
	validateRecordCmd.Flags().StringSliceVarP(&validateInputs, "in", "i", nil, "Record JSON file (repeatable)")
	rootCmd.AddCommand(validateRecordCmd)
}

func runValidateRecord(_ *cobra.Command, args []string) error {
	inputs := append(append([]string(nil), validateInputs...), args...)
	if len(inputs) == 0 {
		return fmt.Errorf("at least one record file is required (--in)")
	}

	invalid := 0
	for _, path := range inputs {
		if err := schemas.ValidateRecordFile(path); err != nil {
			invalid++
			fmt.Fprintf(os.Stdout, "%s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(os.Stdout, "%s: valid\n", path)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d record(s) invalid", invalid, len(inputs))
	}
	return nil
}
