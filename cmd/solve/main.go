/**
 * Filename: cmd/solve/main.go
 * Path: gfase-maxcut-solver
 *
 * Copyright (c) 2018 Haibao Tang
 */

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	logging "github.com/op/go-logging"
	"github.com/urfave/cli"

	gfase "github.com/jzhang-dev/gfase-maxcut-solver"
)

var log = logging.MustGetLogger("main")

func init() {
	cli.AppHelpTemplate = `
   _____   ______   _____   _____ ______
  / ____| |  ____| |  _  | / ____|  ____|
 | |  __  | |__    | |_| || (___ | |__
 | | |_ | |  __|   |  _  | \___ \|  __|
 | |__| | | |      | | | | ____) | |____
  \_____| |_|      |_| |_||_____/|______|

` + cli.AppHelpTemplate
}

func banner(message string) {
	log.Noticef("* %s *", message)
}

func main() {
	logging.SetBackend(gfase.BackendFormatter)

	app := cli.NewApp()
	app.Compiled = time.Now()
	app.Copyright = "(c) gfase-maxcut-solver contributors"
	app.Name = "solve-maxcut"
	app.Usage = "Phase a contact graph under bipartite alt constraints"
	app.Version = gfase.Version

	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "id_path", Usage: "id<->name CSV (required)"},
		cli.StringFlag{Name: "graph_path", Usage: "contact-map CSV, name_a,name_b,weight (required)"},
		cli.StringFlag{Name: "output_dir", Usage: "directory to write results into", Value: "."},
		cli.IntFlag{Name: "core_iterations", Usage: "local-search iterations per sample per round", Value: gfase.DefaultOptimizerConfig().CoreIterations},
		cli.IntFlag{Name: "sample_size", Usage: "independent restarts per round", Value: gfase.DefaultOptimizerConfig().Samples},
		cli.IntFlag{Name: "n_rounds", Usage: "sampling rounds", Value: gfase.DefaultOptimizerConfig().Rounds},
		cli.IntFlag{Name: "threads", Usage: "worker pool size", Value: 1},
	}

	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	idPath := c.String("id_path")
	graphPath := c.String("graph_path")
	if idPath == "" || graphPath == "" {
		cli.ShowAppHelp(c)
		return cli.NewExitError("must specify --id_path and --graph_path", 1)
	}
	outputDir := c.String("output_dir")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return cli.NewExitError(fmt.Sprintf("creating output dir: %v", err), 1)
	}

	runID := uuid.New().String()
	log.Infof("run %s", runID)

	banner("Loading id map and contact graph")
	idMap, err := gfase.LoadIDMapCSV(idPath)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	g := gfase.NewGraph()
	if err := gfase.LoadContactMapCSV(graphPath, idMap, g); err != nil {
		return cli.NewExitError(err, 1)
	}
	log.Infof("loaded %d nodes, %d edges", g.Size(), g.EdgeCount())

	banner("Discovering alt pairs")
	provider := gfase.NamingConventionAltPairProvider{}
	pairs, err := provider.FindAltPairs(idMap, g)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	for _, p := range pairs {
		if err := g.AddAlt(p.A, p.B); err != nil {
			return cli.NewExitError(err, 1)
		}
	}
	log.Infof("found %d alt pairs", len(pairs))

	banner("Pruning non-alt nodes")
	for _, id := range g.NodeIDs() {
		n, _ := g.GetNode(id)
		if !n.HasAlt() {
			if err := g.RemoveNode(id); err != nil {
				return cli.NewExitError(err, 1)
			}
		}
	}
	for _, id := range g.NodeIDs() {
		g.RemoveEdge(id, id)
	}
	if g.EdgeCount() == 0 {
		return cli.NewExitError("no edges remain after pruning; nothing to phase", 1)
	}
	log.Infof("%d nodes, %d edges remain after pruning", g.Size(), g.EdgeCount())

	banner("Running Monte Carlo phase optimizer")
	opt := gfase.NewOptimizer(gfase.OptimizerConfig{
		Rounds:         c.Int("n_rounds"),
		Samples:        c.Int("sample_size"),
		CoreIterations: c.Int("core_iterations"),
		Threads:        c.Int("threads"),
	})
	score, err := opt.Run(context.Background(), g)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	log.Infof("final consistency score: %.1f", score)

	if err := g.ValidateAlts(); err != nil {
		return cli.NewExitError(err, 1)
	}

	checksum := gfase.GraphChecksum(g)
	log.Infof("graph checksum: %s", checksum)

	banner("Writing outputs")
	if err := gfase.WriteBandageCSV(g, idMap, filepath.Join(outputDir, "bandage.csv")); err != nil {
		return cli.NewExitError(err, 1)
	}
	if err := gfase.WriteNodeDataCSV(g, idMap, filepath.Join(outputDir, "node_data.csv")); err != nil {
		return cli.NewExitError(err, 1)
	}
	if err := gfase.WriteFinalComponentsCSV(g, idMap, filepath.Join(outputDir, "components_final.csv")); err != nil {
		return cli.NewExitError(err, 1)
	}

	log.Noticef("done: %s", runID)
	return nil
}
