package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/anything-labs/leadgen-cli/internal/model"
	"github.com/anything-labs/leadgen-cli/internal/scorer"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single business against an ICP",
	Long: `Score a single business candidate without searching or persisting.

The score is the sum of four capped buckets, clamped at 100:
  website opportunity (0-40), business signals (0-25),
  ICP match (0-20), contact availability (0-15).

Examples:
  # Score a business with no website (highest opportunity)
  score --name "Joe's Diner" --category restaurants --location "Austin, TX" \
    --type restaurant --address "123 Main St, Austin, TX" --phone 555-0100 \
    --rating 3.2 --reviews 8

  # Score a business whose website was not analyzed
  score --name "Acme Plumbing" --category plumbers --location "Denver, CO" \
    --website https://acmeplumbing.example`,
	RunE: runScoreCmd,
}

func init() {
	f := scoreCmd.Flags()
	f.String("name", "", "business name (required)")
	f.String("category", "", "ICP business category (required)")
	f.String("location", "", "ICP location, e.g. \"Austin, TX\" (required)")
	f.String("address", "", "business address")
	f.String("phone", "", "business phone")
	f.String("website", "", "business website URL")
	f.String("type", "", "business type as reported by the provider")
	f.Float64("rating", -1, "average rating, 0-5 (-1 = unknown)")
	f.Int("reviews", -1, "review count (-1 = unknown)")
	_ = scoreCmd.MarkFlagRequired("name")
	_ = scoreCmd.MarkFlagRequired("category")
	_ = scoreCmd.MarkFlagRequired("location")
	rootCmd.AddCommand(scoreCmd)
}

func runScoreCmd(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("name")
	category, _ := cmd.Flags().GetString("category")
	location, _ := cmd.Flags().GetString("location")
	address, _ := cmd.Flags().GetString("address")
	phone, _ := cmd.Flags().GetString("phone")
	website, _ := cmd.Flags().GetString("website")
	bizType, _ := cmd.Flags().GetString("type")
	rating, _ := cmd.Flags().GetFloat64("rating")
	reviews, _ := cmd.Flags().GetInt("reviews")

	c := model.BusinessCandidate{
		Name:         name,
		Address:      address,
		Phone:        phone,
		Website:      website,
		BusinessType: bizType,
	}
	if rating >= 0 {
		c.Rating = &rating
	}
	if reviews >= 0 {
		c.ReviewCount = &reviews
	}

	icp := model.NewICP(category, location)
	if err := icp.Validate(); err != nil {
		return err
	}

	// No website analysis here; candidates with a website score the
	// not-analyzed base. Use generate for the full analysis path.
	result := scorer.Compute(c, nil, icp)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(result), "encode result")
}
