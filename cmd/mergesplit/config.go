package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/ukaji3/mergesplit-go/pkg/mergesplit/config"
	"github.com/ukaji3/mergesplit-go/pkg/mergesplit/models"
	"github.com/ukaji3/mergesplit-go/pkg/mergesplit/output"
)

var (
	setWeightColumn int
	setBoxColumn    int
	setCopyImages   bool
	configJSON      bool
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or edit per-process-type column settings",
	}
	cmd.PersistentFlags().BoolVar(&configJSON, "json", false, "Print configurations as JSON")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the effective configuration of every process type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := newResolver()
			if err != nil {
				return err
			}
			configs, err := resolver.All()
			if err != nil {
				return err
			}
			return printConfigs(cmd, configs)
		},
	}

	getCmd := &cobra.Command{
		Use:   "get [type]",
		Short: "Show the configuration of one process type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := newResolver()
			if err != nil {
				return err
			}
			cfg, err := resolver.Get(models.ProcessType(args[0]))
			if err != nil {
				return err
			}
			return printConfigs(cmd, []models.ProcessConfig{cfg})
		},
	}

	setCmd := &cobra.Command{
		Use:   "set [type]",
		Short: "Save the configuration of one process type",
		Args:  cobra.ExactArgs(1),
		RunE:  runConfigSet,
	}
	setCmd.Flags().IntVar(&setWeightColumn, "weight-col", 0, "Weight column (1-based)")
	setCmd.Flags().IntVar(&setBoxColumn, "box-col", 0, "Box column (1-based)")
	setCmd.Flags().BoolVar(&setCopyImages, "copy-images", false, "Copy images (accepted, not implemented)")

	resetCmd := &cobra.Command{
		Use:   "reset [type]",
		Short: "Drop the saved configuration so the default applies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := newResolver()
			if err != nil {
				return err
			}
			return resolver.Reset(models.ProcessType(args[0]))
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.NewFileStore(configPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), store.Path)
			return nil
		},
	}

	cmd.AddCommand(listCmd, getCmd, setCmd, resetCmd, pathCmd)
	return cmd
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	resolver, err := newResolver()
	if err != nil {
		return err
	}
	cfg, err := resolver.Get(models.ProcessType(args[0]))
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("weight-col") {
		cfg.WeightColumn = setWeightColumn
	}
	if flags.Changed("box-col") {
		cfg.BoxColumn = setBoxColumn
	}
	if flags.Changed("copy-images") {
		cfg.CopyImages = setCopyImages
	}

	if err := resolver.Put(cfg); err != nil {
		return err
	}
	return printConfigs(cmd, []models.ProcessConfig{cfg})
}

func printConfigs(cmd *cobra.Command, configs []models.ProcessConfig) error {
	if configJSON {
		jsonData, err := output.ConfigsToJSON(configs, true)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tWEIGHT\tQUANTITY\tBOX\tCOPY IMAGES")
	for _, cfg := range configs {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%t\n",
			cfg.ProcessType, cfg.WeightColumn, cfg.QuantityColumn(), cfg.BoxColumn, cfg.CopyImages)
	}
	return tw.Flush()
}
