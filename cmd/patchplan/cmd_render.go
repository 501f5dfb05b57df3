package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/newtron-network/patchplan/pkg/audit"
	"github.com/newtron-network/patchplan/pkg/model"
	"github.com/newtron-network/patchplan/pkg/render"
	"github.com/newtron-network/patchplan/pkg/revstore"
)

var (
	renderFormat   string
	renderView     string
	renderRackA    string
	renderRackB    string
	renderOut      string
	renderRevision string
)

var renderCmd = &cobra.Command{
	Use:   "render [project-file]",
	Short: "Render a plan as CSV, JSON, or SVG",
	Long: `Render a computed or saved plan in CSV, JSON, or SVG format.

Pass a project file to compute the plan fresh, or --revision to render a
plan already saved in the revision store. Exactly one of the two is
required.

SVG rendering supports three views (--view):
  topology  one node per rack, one edge per rack pair (default)
  rack      per-U panel occupancy grid for a single rack (--rack)
  pair      modules and cable count between two racks (--rack, --peer)

Examples:
  patchplan render rack-fabric-03.yaml --format csv
  patchplan render --revision 8f3c2a1d --format json
  patchplan render rack-fabric-03.yaml --format svg --view rack --rack R01`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderFormat, "format", "csv", "Output format: csv, json, svg")
	renderCmd.Flags().StringVar(&renderView, "view", "topology", "SVG view: topology, rack, pair")
	renderCmd.Flags().StringVar(&renderRackA, "rack", "", "Rack id for the rack/pair SVG views")
	renderCmd.Flags().StringVar(&renderRackB, "peer", "", "Peer rack id for the pair SVG view")
	renderCmd.Flags().StringVar(&renderOut, "out", "", "Output file path (default: stdout)")
	renderCmd.Flags().StringVar(&renderRevision, "revision", "", "Render a revision already saved in the revision store")
}

func runRender(cmd *cobra.Command, args []string) error {
	start := time.Now()
	user := app.permChecker.CurrentUser()

	source := renderRevision
	if source == "" && len(args) == 1 {
		source = args[0]
	}

	result, err := resolveRenderSource(args)
	if err != nil {
		audit.Log(audit.NewEvent(user, source, string(audit.EventTypeRender)).
			WithError(err).WithDuration(time.Since(start)))
		return err
	}

	out := os.Stdout
	if renderOut != "" {
		f, err := os.Create(renderOut)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := writeRendered(out, result); err != nil {
		audit.Log(audit.NewEvent(user, source, string(audit.EventTypeRender)).
			WithError(err).WithDuration(time.Since(start)))
		return err
	}

	audit.Log(audit.NewEvent(user, source, string(audit.EventTypeRender)).
		WithRevision(renderRevision).WithSuccess().WithDuration(time.Since(start)))
	return nil
}

func resolveRenderSource(args []string) (model.AllocationResult, error) {
	if renderRevision != "" {
		store := revstore.NewStore(app.revStoreAddr)
		defer store.Close()

		rev, err := store.Load(renderRevision)
		if err != nil {
			return model.AllocationResult{}, fmt.Errorf("loading revision %s: %w", renderRevision, err)
		}
		return rev.Result, nil
	}

	if len(args) != 1 {
		return model.AllocationResult{}, fmt.Errorf("render requires a project file or --revision")
	}

	result, _, err := computePlan(args[0])
	return result, err
}

func writeRendered(out *os.File, result model.AllocationResult) error {
	switch renderFormat {
	case "csv":
		return render.WriteCSV(out, result)
	case "json":
		return render.WriteJSON(out, result)
	case "svg":
		return writeRenderedSVG(out, result)
	default:
		return fmt.Errorf("unknown format %q (want csv, json, or svg)", renderFormat)
	}
}

func writeRenderedSVG(out *os.File, result model.AllocationResult) error {
	switch renderView {
	case "topology":
		return render.WriteTopologySVG(out, result)
	case "rack":
		if renderRackA == "" {
			return fmt.Errorf("--rack is required for the rack SVG view")
		}
		return render.WriteRackSVG(out, result, renderRackA)
	case "pair":
		if renderRackA == "" || renderRackB == "" {
			return fmt.Errorf("--rack and --peer are both required for the pair SVG view")
		}
		return render.WritePairSVG(out, result, renderRackA, renderRackB)
	default:
		return fmt.Errorf("unknown SVG view %q (want topology, rack, or pair)", renderView)
	}
}
