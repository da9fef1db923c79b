package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/ukaji3/mergesplit-go/pkg/mergesplit"
	"github.com/ukaji3/mergesplit-go/pkg/mergesplit/models"
	"github.com/ukaji3/mergesplit-go/pkg/mergesplit/output"
)

var (
	processType  string
	weightColumn int
	boxColumn    int
	outputPath   string
	fillMerged   bool
	stopAtBlank  bool
	jsonOutput   bool
	pretty       bool
)

func newProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process [input.xlsx]",
		Short: "Split merged weight and box cells into one row each",
		Args:  cobra.ExactArgs(1),
		RunE:  runProcess,
	}

	cmd.Flags().StringVarP(&processType, "type", "t", string(models.SeaRailNoImage),
		"Process type: "+processTypeList())
	cmd.Flags().IntVar(&weightColumn, "weight-col", 0, "Override the weight column (1-based)")
	cmd.Flags().IntVar(&boxColumn, "box-col", 0, "Override the box column (1-based)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: <input>_拆分表.xlsx)")
	cmd.Flags().BoolVar(&fillMerged, "fill-merged", false, "Unmerge other merged cells by copying their value down")
	cmd.Flags().BoolVar(&stopAtBlank, "stop-at-blank", false, "End the table at the first row with a blank first column")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	// Validate input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	resolver, err := newResolver()
	if err != nil {
		return err
	}
	cfg, err := resolver.Get(models.ProcessType(processType))
	if err != nil {
		return err
	}
	if weightColumn > 0 {
		cfg.WeightColumn = weightColumn
	}
	if boxColumn > 0 {
		cfg.BoxColumn = boxColumn
	}
	if err := resolver.Validate(cfg); err != nil {
		return err
	}

	result, procErr := mergesplit.Process(cmd.Context(), inputPath, cfg, mergesplit.Options{
		Logger:         newLogger(),
		OutputPath:     outputPath,
		FillMerged:     fillMerged,
		StopAtBlankKey: stopAtBlank,
	})

	if jsonOutput {
		jsonData, err := output.ToJSON(result, pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	} else {
		printTranscript(cmd, result)
	}

	if procErr != nil {
		return fmt.Errorf("processing failed: %w", procErr)
	}
	return nil
}

func printTranscript(cmd *cobra.Command, result *models.ProcessResult) {
	out := cmd.OutOrStdout()
	warned := make(map[string]bool, len(result.Warnings))
	for _, w := range result.Warnings {
		warned[w.String()] = true
	}

	for _, line := range result.Logs {
		if warned[line] {
			fmt.Fprintln(out, color.YellowString(line))
			continue
		}
		fmt.Fprintln(out, line)
	}

	if !result.Success {
		fmt.Fprintln(out, color.RedString("failed: %s", result.Message))
		return
	}
	fmt.Fprintf(out, "%s %s\n", color.GreenString("done:"), color.HiYellowString(result.OutputPath))
	if n := len(result.Warnings); n > 0 {
		fmt.Fprintln(out, color.YellowString("%d warning(s)", n))
	}
}

func processTypeList() string {
	names := make([]string, len(models.ProcessTypes))
	for i, t := range models.ProcessTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
