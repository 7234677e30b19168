package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/jtalbot/frontoffice/internal/entropy"
	"github.com/jtalbot/frontoffice/internal/personality"
	"github.com/jtalbot/frontoffice/internal/roster"
)

func newGenerateCmd() *cobra.Command {
	var (
		count         int
		archetypePath string
		locationPath  string
		blend         bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate players with personalities and print them as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			seed := flagSeed
			if seed == 0 {
				seed = entropy.Seed()
			}

			spawner := roster.NewSpawner(seed)
			players := spawner.SpawnPlayers(count)

			gen := personality.NewGenerator(personality.GeneratorConfig{
				ArchetypePath: archetypePath,
				LocationPath:  locationPath,
				BlendEnabled:  blend,
			}, rand.New(rand.NewSource(seed+100)))

			type generated struct {
				Player      *roster.Player           `json:"player"`
				Personality *personality.Personality `json:"personality"`
			}

			out := make([]generated, 0, len(players))
			for _, pl := range players {
				p, err := gen.Generate(pl, 1)
				if err != nil {
					return fmt.Errorf("personality for %s: %w", pl.Name, err)
				}
				out = append(out, generated{Player: pl, Personality: p})
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().IntVar(&count, "count", 5, "number of players to generate")
	cmd.Flags().StringVar(&archetypePath, "archetypes", "", "archetype table JSON (empty = builtin)")
	cmd.Flags().StringVar(&locationPath, "locations", "", "location rules JSON (empty = builtin)")
	cmd.Flags().BoolVar(&blend, "blend", true, "enable archetype blending")

	return cmd
}
