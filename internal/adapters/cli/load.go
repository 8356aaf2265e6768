package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/session"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/session/commands"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/archetype"
)

// NewLoadCommand creates the load command
func NewLoadCommand() *cobra.Command {
	var (
		waitIcons     bool
		showCrew      bool
		showShips     bool
		showEquipment bool
	)

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load player data and print the roster",
		Long: `Run the full data load: crew archetypes, server and platform configuration,
then player data. On success the crew roster, ship list and equipment catalog
are built and their images resolved in the background.

Examples:
  sttc load
  sttc load --wait-icons --crew
  sttc load --ships --equipment`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			a, ctx, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := a.close(ctx); err == nil && closeErr != nil {
					err = closeErr
				}
			}()

			resp, err := a.mediator.Send(ctx, &commands.LoadSessionCommand{WaitForIcons: waitIcons})
			if err != nil {
				return err
			}
			summary := resp.(*commands.LoadSessionResponse).Summary

			printSummary(os.Stdout, summary)

			state := a.session.State()
			if showCrew {
				printCrew(os.Stdout, state)
			}
			if showShips {
				printShips(os.Stdout, state)
			}
			if showEquipment {
				printEquipment(os.Stdout, state)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&waitIcons, "wait-icons", false, "Wait for image resolution before printing")
	cmd.Flags().BoolVar(&showCrew, "crew", false, "Print the crew roster")
	cmd.Flags().BoolVar(&showShips, "ships", false, "Print the ship list")
	cmd.Flags().BoolVar(&showEquipment, "equipment", false, "Print the equipment catalog")

	return cmd
}

func printSummary(out io.Writer, s commands.Summary) {
	fmt.Fprintf(out, "%s (%s)\n", s.Captain.Name, s.Captain.SecondLine)
	fmt.Fprintf(out, "Status:     %s\n", s.Status)
	if s.FleetID != nil {
		fmt.Fprintf(out, "Fleet:      %d\n", *s.FleetID)
	}
	fmt.Fprintf(out, "Crew:       %d\n", s.Crew)
	fmt.Fprintf(out, "Ships:      %d\n", s.Ships)
	fmt.Fprintf(out, "Equipment:  %d\n", s.Equipment)
	fmt.Fprintf(out, "Items:      %d\n", s.Items)
}

func printCrew(out io.Writer, state *session.State) {
	crew := state.Crew.List()
	sort.Slice(crew, func(i, j int) bool { return crew[i].Name < crew[j].Name })

	fmt.Fprintln(out, "\nCrew:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tRARITY\tLEVEL\tFLAGS\tICON")
	for _, c := range crew {
		fmt.Fprintf(w, "%d\t%s\t%d/%d\t%d\t%s\t%s\n",
			c.ID, c.Name, c.Rarity, c.MaxRarity, c.Level, crewFlags(c.Favorite, c.Active, c.Buyback), orDash(c.IconURL))
	}
	w.Flush()
}

func crewFlags(favorite, active, buyback bool) string {
	var flags []string
	if favorite {
		flags = append(flags, "favorite")
	}
	if active {
		flags = append(flags, "active")
	}
	if buyback {
		flags = append(flags, "buyback")
	}
	return orDash(strings.Join(flags, ","))
}

func printShips(out io.Writer, state *session.State) {
	ships := state.Ships.List()
	sort.Slice(ships, func(i, j int) bool { return ships[i].Name < ships[j].Name })

	fmt.Fprintln(out, "\nShips:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tRARITY\tLEVEL\tATTACK\tSHIELDS\tHULL\tICON")
	for _, s := range ships {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d/%d\t%d\t%d\t%d\t%s\n",
			s.ID, s.Name, s.Rarity, s.Level, s.MaxLevel,
			s.Attributes.Attack, s.Attributes.Shields, s.Attributes.Hull, orDash(s.IconURL))
	}
	w.Flush()
}

func printEquipment(out io.Writer, state *session.State) {
	entries := state.Equipment.List()
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	fmt.Fprintln(out, "\nEquipment:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tRARITY\tRECIPE\tSOURCES\tICON")
	for _, e := range entries {
		recipe := "-"
		if e.Recipe != nil {
			recipe = fmt.Sprintf("%d parts", len(e.Recipe))
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
			e.ID, e.Name, orDash(archetype.RarityName(e.Rarity)), recipe, len(e.Sources), orDash(e.IconURL))
	}
	w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
