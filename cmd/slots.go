package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtflow/courtflow/app"
	"github.com/courtflow/courtflow/config"
	"github.com/courtflow/courtflow/core/scheduling"
)

var (
	slotsCaseID     string
	slotsMinAdvance int
	slotsDailyLimit float64
)

var slotsCmd = &cobra.Command{
	Use:   "find-slots",
	Short: "Suggest ranked hearing slots for a case",
	RunE:  findSlots,
}

func init() {
	slotsCmd.Flags().StringVar(&slotsCaseID, "case", "", "case id")
	slotsCmd.Flags().IntVar(&slotsMinAdvance, "min-advance-days", 0, "minimum notice in days")
	slotsCmd.Flags().Float64Var(&slotsDailyLimit, "max-daily-hours", 0, "judge daily hour cap")
	_ = slotsCmd.MarkFlagRequired("case")
	rootCmd.AddCommand(slotsCmd)
}

func findSlots(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	res, err := svc.Finder.FindSlots(context.Background(), slotsCaseID, scheduling.Constraints{
		MinAdvanceDays: slotsMinAdvance,
		MaxDailyHours:  slotsDailyLimit,
	})
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
