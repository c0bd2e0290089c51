package gfase

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// OptimizerConfig controls the parallel Monte Carlo phase optimizer.
type OptimizerConfig struct {
	// Rounds is the number of successive sampling rounds; each round
	// reseeds its samples from the previous round's best partition.
	Rounds int
	// Samples is the number of independent restarts drawn per round.
	Samples int
	// CoreIterations is the number of local-search steps per sample in
	// every round but the last.
	CoreIterations int
	// FinalRoundMultiplier scales CoreIterations on the last round, when
	// the search is expected to be closest to a local optimum already.
	FinalRoundMultiplier int
	// Threads is the number of concurrent workers; 0 or less runs a
	// single worker.
	Threads int
}

// DefaultOptimizerConfig returns the defaults used by the CLI driver.
func DefaultOptimizerConfig() OptimizerConfig {
	return OptimizerConfig{
		Rounds:                2,
		Samples:               30,
		CoreIterations:        200,
		FinalRoundMultiplier:  3,
		Threads:               0,
	}
}

// Optimizer runs the parallel Monte Carlo local search described in the
// phasing core's optimization surface (L3): each round runs Samples
// independent jobs across Threads workers, each job perturbing and locally
// maximizing its own cloned graph, and publishes into a single shared best-score/
// best-partition pair guarded by a mutex.
type Optimizer struct {
	cfg OptimizerConfig
}

// NewOptimizer builds an Optimizer with the given config. Zero-valued
// fields fall back to DefaultOptimizerConfig's values.
func NewOptimizer(cfg OptimizerConfig) *Optimizer {
	defaults := DefaultOptimizerConfig()
	if cfg.Rounds <= 0 {
		cfg.Rounds = defaults.Rounds
	}
	if cfg.Samples <= 0 {
		cfg.Samples = defaults.Samples
	}
	if cfg.CoreIterations <= 0 {
		cfg.CoreIterations = defaults.CoreIterations
	}
	if cfg.FinalRoundMultiplier <= 0 {
		cfg.FinalRoundMultiplier = defaults.FinalRoundMultiplier
	}
	return &Optimizer{cfg: cfg}
}

type bestResult struct {
	mu         sync.Mutex
	score      float64
	partitions map[int32]int8
	set        bool
}

func (b *bestResult) publish(score float64, snapshot map[int32]int8) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.set || score > b.score {
		b.score = score
		b.partitions = snapshot
		b.set = true
	}
}

// Run executes every round in sequence and writes the winning partition
// assignment back onto g before returning its score. g is not touched
// until the very end; all search happens on private clones (spec §5:
// L1/L2 are single-owner, so a worker never shares a *Graph with
// another worker or the caller).
func (o *Optimizer) Run(ctx context.Context, g *Graph) (float64, error) {
	best := &bestResult{}
	reps := g.GetComponentRepresentatives()

	for round := 0; round < o.cfg.Rounds; round++ {
		iterations := o.cfg.CoreIterations
		if round == o.cfg.Rounds-1 {
			iterations *= o.cfg.FinalRoundMultiplier
		}

		var seed map[int32]int8
		if best.set {
			seed = best.partitions
		}

		if err := o.runRound(ctx, g, reps, iterations, seed, best); err != nil {
			return 0, err
		}
	}

	if !best.set {
		return g.ComputeTotalConsistencyScore(), nil
	}
	if err := applyPartitions(g, best.partitions); err != nil {
		return 0, err
	}
	return best.score, nil
}

func (o *Optimizer) runRound(ctx context.Context, g *Graph, reps []int32, iterations int, seed map[int32]int8, best *bestResult) error {
	var jobIndex int64
	group, ctx := errgroup.WithContext(ctx)

	threads := o.cfg.Threads
	if threads <= 0 {
		threads = 1
	}
	samples := int64(o.cfg.Samples)

	for w := 0; w < threads; w++ {
		workerSeed := int64(w) + 1
		group.Go(func() error {
			rng := rand.New(rand.NewSource(workerSeed))
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				job := atomic.AddInt64(&jobIndex, 1) - 1
				if job >= samples {
					return nil
				}

				clone := g.Clone()
				perturb := reps
				if seed != nil {
					if err := applyPartitions(clone, seed); err != nil {
						return err
					}
					// Start from the previous round's best and re-randomize
					// only ceil(len(reps)/30) randomly drawn representatives.
					perturb = make([]int32, (len(reps)+29)/30)
					for i := range perturb {
						perturb[i] = reps[rng.Intn(len(reps))]
					}
				}
				randomizePartitions(clone, perturb, rng)
				localMaximize(clone, reps, iterations, rng)

				score := clone.ComputeTotalConsistencyScore()
				best.publish(score, snapshotPartitions(clone))
			}
		})
	}
	return group.Wait()
}

// randomizePartitions assigns each alt component a uniformly random side
// (+1 or -1), following the original's randomize_partitions. Non-alt
// (singleton) representatives are not bound to a bipartition, so each
// draws uniformly from the full ternary {-1,0,1}, matching spec §4.4's
// perturbation domain for unconstrained nodes.
func randomizePartitions(g *Graph, reps []int32, rng *rand.Rand) {
	for _, rep := range reps {
		if g.mustNode(rep).HasAlt() {
			comp, err := g.GetAltComponent(rep)
			if err != nil {
				continue
			}
			side := int8(1)
			if rng.Intn(2) == 0 {
				side = -1
			}
			_ = g.SetPartitionComponent(comp, side)
			continue
		}
		_ = g.SetPartition(rep, int8(rng.Intn(3))-1)
	}
}

// localMaximize repeatedly picks a random representative and perturbs it
// if doing so does not decrease the graph's consistency score restricted
// to its incident edges, following the perturb-then-locally-maximize step
// of the original's monte_carlo_phase_contacts. Alt-bearing
// representatives flip their whole component's side; non-alt
// representatives try a random label from {-1,0,1}.
func localMaximize(g *Graph, reps []int32, iterations int, rng *rand.Rand) {
	if len(reps) == 0 {
		return
	}
	for i := 0; i < iterations; i++ {
		rep := reps[rng.Intn(len(reps))]
		if g.mustNode(rep).HasAlt() {
			comp, err := g.GetAltComponent(rep)
			if err != nil {
				continue
			}
			if _, ok := comp.sideOf(rep); !ok {
				continue
			}

			before := g.ComputeConsistencyScoreComponent(comp)
			currentLabel := g.mustNode(rep).Partition
			_ = g.SetPartitionComponent(comp, -currentLabel)

			after := g.ComputeConsistencyScoreComponent(comp)
			if after < before {
				_ = g.SetPartitionComponent(comp, currentLabel)
			}
			continue
		}

		before := g.nodeIncidentScore(rep)
		currentLabel := g.mustNode(rep).Partition
		candidate := int8(rng.Intn(3)) - 1
		_ = g.SetPartition(rep, candidate)

		after := g.nodeIncidentScore(rep)
		if after < before {
			_ = g.SetPartition(rep, currentLabel)
		}
	}
}

func (g *Graph) mustNode(id int32) *MultiNode {
	return g.nodes[id]
}

func snapshotPartitions(g *Graph) map[int32]int8 {
	out := make(map[int32]int8, g.Size())
	g.ForEachNode(func(id int32, n *MultiNode) {
		out[id] = n.Partition
	})
	return out
}

func applyPartitions(g *Graph, partitions map[int32]int8) error {
	for id, p := range partitions {
		if !g.HasNode(id) {
			continue
		}
		if err := g.SetPartition(id, p); err != nil {
			return err
		}
	}
	return nil
}
