package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dreamware/kaspan/internal/convert"
	"github.com/dreamware/kaspan/internal/kerr"
)

var (
	convertInput  string
	convertOutput string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert an edge-list file into the on-disk CSR format",
	Example: `  # Convert a plain edge list into a manifest + CSR files
  ` + BinName() + ` convert --input graph.edges --output ./data/graph`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if convertInput == "" || convertOutput == "" {
			return kerr.New(kerr.Assumption, "cmd.convert", "--input and --output are both required")
		}
		res, err := convert.Convert(convertInput, convertOutput)
		if err != nil {
			return err
		}
		fmt.Printf("converted %d vertices, %d edges (head_bytes=%d csr_bytes=%d self_loops=%t duplicates=%t)\n",
			res.NodeCount, res.EdgeCount, res.HeadBytes, res.CSRBytes, res.SelfLoops, res.DuplicateEdges)
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertInput, "input", "", "path to the edge-list file")
	convertCmd.Flags().StringVar(&convertOutput, "output", "", "output file prefix")
}
