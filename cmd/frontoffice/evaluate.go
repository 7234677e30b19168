package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jtalbot/frontoffice/internal/engine"
	"github.com/jtalbot/frontoffice/internal/entropy"
	"github.com/jtalbot/frontoffice/internal/negotiation"
	"github.com/jtalbot/frontoffice/internal/personality"
	"github.com/jtalbot/frontoffice/internal/roster"
)

func newEvaluateCmd() *cobra.Command {
	var (
		position   string
		overall    int
		age        int
		teamName   string
		years      int
		apy        float64
		guaranteed float64
		week       int
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Generate a player and evaluate one contract offer against them",
		RunE: func(cmd *cobra.Command, args []string) error {
			seed := flagSeed
			if seed == 0 {
				seed = entropy.Seed()
			}

			pos, err := roster.ParsePosition(strings.ToUpper(position))
			if err != nil {
				return err
			}

			team := findTeam(teamName)
			if team == nil {
				return fmt.Errorf("unknown team %q", teamName)
			}

			player := &roster.Player{
				ID:        uuid.New(),
				Name:      "Sample Player",
				Position:  pos,
				Age:       age,
				Overall:   overall,
				HomeState: "OH",
			}

			gen := personality.NewGenerator(personality.GeneratorConfig{BlendEnabled: true},
				rand.New(rand.NewSource(seed+100)))
			p, err := gen.Generate(player, 1)
			if err != nil {
				return fmt.Errorf("generate personality: %w", err)
			}

			offer := negotiation.ContractOffer{
				Years:            years,
				APY:              apy,
				TotalValue:       apy * float64(years),
				GuaranteedAmount: guaranteed,
				TeamQuality:      team.Quality,
				LocationMatch:    negotiation.LocationMatch(p.LocationPrefs, team),
			}

			eval := negotiation.NewEvaluator(negotiation.DefaultCalibration(), nil)
			result := eval.Evaluate(p, &negotiation.EvaluationContext{
				Offer:       offer,
				Team:        team,
				CurrentWeek: week,
				Stage:       engine.StageFor(week),
			})

			out := map[string]any{
				"player":     player,
				"archetype":  p.Archetype,
				"offer":      offer,
				"evaluation": result,
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&position, "position", "WR", "player position")
	cmd.Flags().IntVar(&overall, "overall", 85, "player overall rating")
	cmd.Flags().IntVar(&age, "age", 27, "player age")
	cmd.Flags().StringVar(&teamName, "team", "Gators", "offering team name")
	cmd.Flags().IntVar(&years, "years", 4, "contract length in years")
	cmd.Flags().Float64Var(&apy, "apy", 18.0, "average per year in $M")
	cmd.Flags().Float64Var(&guaranteed, "guaranteed", 40.0, "guaranteed money in $M")
	cmd.Flags().IntVar(&week, "week", 10, "week of the league year")

	return cmd
}

func findTeam(name string) *roster.Team {
	for i := range roster.Teams {
		if strings.EqualFold(roster.Teams[i].Name, name) {
			return &roster.Teams[i]
		}
	}
	return nil
}
