package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtflow/courtflow/app"
	"github.com/courtflow/courtflow/config"
)

var workloadCourtID string

var workloadCmd = &cobra.Command{
	Use:   "workload",
	Short: "Report judge workload balance",
	RunE:  reportWorkload,
}

func init() {
	workloadCmd.Flags().StringVar(&workloadCourtID, "court", "", "restrict to one court")
	rootCmd.AddCommand(workloadCmd)
}

func reportWorkload(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	report, err := svc.Analyzer.Analyze(context.Background(), workloadCourtID)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
