package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "convert a problem file between JSON and the binary format",
	Long:  "convert reads a problem file (JSON or binary) and writes it in the format implied by the output extension: .json for JSON, anything else for the binary CBOR format.",
	Args:  cobra.ExactArgs(2),
	RunE:  runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	problem, err := readProblem(args[0])
	if err != nil {
		return err
	}

	out, err := os.Create(filepath.Clean(args[1]))
	if err != nil {
		return err
	}
	defer out.Close()

	if filepath.Ext(args[1]) == ".json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(problem); err != nil {
			return fmt.Errorf("writing %s: %w", args[1], err)
		}
		return nil
	}
	if _, err := problem.WriteTo(out); err != nil {
		return fmt.Errorf("writing %s: %w", args[1], err)
	}
	return nil
}
