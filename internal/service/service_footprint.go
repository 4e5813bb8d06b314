// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"

	"github.com/tkarimov/casesync/internal/config"
	"github.com/tkarimov/casesync/internal/logger"
	"github.com/tkarimov/casesync/internal/store"
	"github.com/tkarimov/casesync/models"
)

// FootprintCalculator computes case footprints: the transitive closure of a
// seed set over forward index edges. A case in the footprint pulls in every
// case it indexes, recursively, regardless of ownership.
type FootprintCalculator struct {
	cases    store.CaseStore
	depthCap int
	logger   *logger.Logger
}

// NewFootprintCalculator constructs a calculator reading from the given
// case store. cfg.FootprintDepthCap bounds the traversal depth.
func NewFootprintCalculator(cases store.CaseStore, cfg config.Cleanliness, logger *logger.Logger) *FootprintCalculator {
	return &FootprintCalculator{
		cases:    cases,
		depthCap: cfg.FootprintDepthCap,
		logger:   logger,
	}
}

// Expand returns the footprint of the seed cases, keyed by case ID. The
// seeds themselves are always part of the result. Dangling edges (a
// referenced ID with no live case behind it) are skipped silently; cycles
// terminate because visited cases are never re-expanded.
//
// Hitting the depth cap stops the traversal and logs a data-quality
// diagnostic; the partial closure is returned without error.
func (f *FootprintCalculator) Expand(ctx context.Context, domain string, seeds []*models.Case) (map[string]*models.Case, error) {
	log := logger.FromContext(ctx)

	visited := make(map[string]*models.Case, len(seeds))
	frontier := make([]*models.Case, 0, len(seeds))
	for _, c := range seeds {
		if _, ok := visited[c.CaseID]; ok {
			continue
		}
		visited[c.CaseID] = c
		frontier = append(frontier, c)
	}

	for depth := 0; len(frontier) > 0; depth++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if depth >= f.depthCap {
			log.Warn().
				Str("func", "FootprintCalculator.Expand").
				Str("domain", domain).
				Int("depth_cap", f.depthCap).
				Int("frontier", len(frontier)).
				Msg("footprint traversal hit depth cap; case graph is suspiciously deep")
			break
		}

		next := nextLevelIDs(frontier, visited)
		if len(next) == 0 {
			break
		}

		fetched, err := f.cases.GetCases(ctx, domain, next)
		if err != nil {
			return nil, err
		}

		frontier = frontier[:0]
		for _, c := range fetched {
			if _, ok := visited[c.CaseID]; ok {
				continue
			}
			visited[c.CaseID] = c
			frontier = append(frontier, c)
		}
	}

	return visited, nil
}

// nextLevelIDs collects the unvisited referenced IDs of one BFS level.
func nextLevelIDs(frontier []*models.Case, visited map[string]*models.Case) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, c := range frontier {
		for _, refID := range c.ReferencedIDs() {
			if _, ok := visited[refID]; ok {
				continue
			}
			if _, ok := seen[refID]; ok {
				continue
			}
			seen[refID] = struct{}{}
			ids = append(ids, refID)
		}
	}
	return ids
}

// StateClosure computes reachability over the index edges recorded inside a
// sync log, without consulting the live case store. Used when a log's
// footprint must shrink: the closure of the remaining seeds decides which
// dependent cases survive.
func StateClosure(states []models.CaseState, seeds []string) map[string]struct{} {
	edges := make(map[string][]string, len(states))
	for _, st := range states {
		for _, idx := range st.Indices {
			edges[st.CaseID] = append(edges[st.CaseID], idx.ReferencedID)
		}
	}

	reachable := make(map[string]struct{}, len(seeds))
	stack := append([]string(nil), seeds...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := reachable[id]; ok {
			continue
		}
		reachable[id] = struct{}{}
		stack = append(stack, edges[id]...)
	}
	return reachable
}
