package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"banditLab/business/bandit"
	"banditLab/pkg/config"
	"banditLab/pkg/logger"

	"github.com/spf13/cobra"
)

type runFlags struct {
	rounds   int
	seed     uint64
	trials   int
	arms     string
	policies string
	trace    bool
	json     bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "banditlab",
		Short:         "Multi-armed bandit simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Play every policy against the same arm pool",
		Long: `Runs one simulation, or --trials independent ones, and prints per-policy
pull counts, payoff and regret.

Arms are given as a comma separated list, e.g.
  --arms bernoulli:0.7,bernoulli:0.5,normal:1:0.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := f.config()
			if err != nil {
				return err
			}
			if f.trials > 1 {
				return runTrials(cmd, c, f)
			}
			return runOnce(cmd, c, f)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&f.rounds, "rounds", 1000, "rounds per simulation")
	flags.Uint64Var(&f.seed, "seed", 0, "random seed")
	flags.IntVar(&f.trials, "trials", 1, "independent runs to aggregate")
	flags.StringVar(&f.arms, "arms", "", "arm pool (default: bernoulli 0.7,0.5,0.2,0.2,0.3)")
	flags.StringVar(&f.policies, "policies", "", "comma separated policies (default: all)")
	flags.BoolVar(&f.trace, "trace", false, "print every pull of a single run")
	flags.BoolVar(&f.json, "json", false, "print the result as JSON")

	return cmd
}

func (f runFlags) config() (bandit.Config, error) {
	c := bandit.DefaultConfig()
	c.Rounds = f.rounds
	c.Seed = f.seed
	c.Trace = f.trace && f.trials <= 1

	arms, err := config.ParseArms(f.arms)
	if err != nil {
		return bandit.Config{}, fmt.Errorf("--arms: %w", err)
	}
	if arms != nil {
		c.Arms = arms
	}

	kinds, err := config.ParsePolicies(f.policies)
	if err != nil {
		return bandit.Config{}, fmt.Errorf("--policies: %w", err)
	}
	if kinds != nil {
		c.Policies = kinds
	}

	return c, c.Validate()
}

func runOnce(cmd *cobra.Command, c bandit.Config, f runFlags) error {
	w := cmd.OutOrStdout()
	report, err := bandit.RunContext(cmd.Context(), c)
	if err != nil {
		return err
	}
	logger.Debug("simulation finished", "rounds", report.Rounds, "seed", c.Seed)

	if f.json {
		return writeJSON(w, report)
	}

	fmt.Fprintf(w, "rounds=%d seed=%d best_arm=%d\n\n", report.Rounds, c.Seed, report.BestArm)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POLICY\tPAYOFF\tREGRET\tCOUNTS")
	for _, p := range report.Policies {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%v\n", p.Name, p.Payoff, p.Regret, p.Counts)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(report.Trace) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROUND\tPOLICY\tARM\tREWARD\tCUMULATIVE")
	for _, p := range report.Trace {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.4f\t%.4f\n", p.Round, p.Policy, p.Arm, p.Reward, p.Cumulative)
	}
	return tw.Flush()
}

func runTrials(cmd *cobra.Command, c bandit.Config, f runFlags) error {
	w := cmd.OutOrStdout()
	if f.trace {
		logger.Warn("trace ignored for multi-trial runs", "trials", f.trials)
	}

	res, err := bandit.RunTrials(cmd.Context(), c, f.trials)
	if err != nil {
		return err
	}

	if f.json {
		return writeJSON(w, res)
	}

	fmt.Fprintf(w, "trials=%d rounds=%d seed=%d best_arm=%d\n\n", res.Trials, res.Rounds, c.Seed, res.BestArm)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POLICY\tMEAN PAYOFF\tSTDDEV\tMIN\tMAX\tMEAN REGRET")
	for _, p := range res.Policies {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
			p.Name, p.MeanPayoff, p.StdDevPayoff, p.MinPayoff, p.MaxPayoff, p.MeanRegret)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
