package apriori

import (
	"math"

	"github.com/freqmine/apriori/measure"
)

// rotation is one way of splitting an itemset into body (antecedent) and
// head (consequent) for evaluation: supp is the support of the whole set,
// body the support of the set with the head item removed, head the head
// item's global frequency.
type rotation struct {
	supp, body, head uint64
}

// evaluate computes the configured measure for the set path(n)+itemAt(idx),
// aggregated over its rotations per cfg.aggregation (spec.md §4.4). It
// reports ok=false when no measure is configured.
func (t *Tree) evaluate(n *node, idx int) (float64, bool) {
	if !t.cfg.hasMeasure {
		return 0, false
	}
	fn, _ := measure.FunctionOf(t.cfg.measureID)
	rots := t.rotations(n, idx)

	values := make([]float64, len(rots))
	for i, r := range rots {
		values[i] = t.applyMeasure(fn, r)
	}
	return aggregate(values, t.cfg.aggregation), true
}

// rotations enumerates every way to pick one member of path(n)+itemAt(idx)
// as head, the rest as body, per spec.md §4.4. Rotation 0 is canonical
// (head = itemAt(idx), body = the set represented by n). Rotation m+1 uses
// path(n)[m] as head, rebuilding body support via getSupport from that
// item's ancestor.
func (t *Tree) rotations(n *node, idx int) []rotation {
	supp := n.counts[idx]
	headItem := n.itemAt(idx)

	if t.cfg.aggregation == AggFirst {
		return []rotation{{
			supp: supp,
			body: t.supportOf(n),
			head: t.base.Frequency(headItem),
		}}
	}

	path := t.pathOf(n)
	ancestors := ancestorChain(n)
	rots := make([]rotation, 0, len(path)+1)
	rots = append(rots, rotation{supp: supp, body: t.supportOf(n), head: t.base.Frequency(headItem)})

	subPath := t.scratchPath(len(path) + 1)[:0]
	for m := 0; m < len(path); m++ {
		subPath = subPath[:0]
		subPath = append(subPath, path[m+1:]...)
		subPath = append(subPath, headItem)
		body, ok := ancestors[m].getSupport(subPath)
		if !ok {
			continue
		}
		rots = append(rots, rotation{supp: supp, body: body, head: t.base.Frequency(path[m])})
	}
	return rots
}

// applyMeasure runs fn on one rotation, applying the invert-below-
// expectation gate first.
func (t *Tree) applyMeasure(fn measure.Func, r rotation) float64 {
	if t.cfg.invertBelowExp && r.head*r.body >= r.supp*t.totalWeight {
		return 0
	}
	return fn(r.supp, r.body, r.head, t.totalWeight)
}

func aggregate(values []float64, agg Aggregation) float64 {
	if len(values) == 0 {
		return 0
	}
	switch agg {
	case AggMin:
		m := values[0]
		for _, v := range values[1:] {
			m = math.Min(m, v)
		}
		return m
	case AggMax:
		m := values[0]
		for _, v := range values[1:] {
			m = math.Max(m, v)
		}
		return m
	case AggAvg:
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))
	default: // AggFirst
		return values[0]
	}
}

// passesThreshold reports whether val clears the configured measure's
// threshold, on the side its direction prefers.
func (t *Tree) passesThreshold(val float64) bool {
	if !t.cfg.hasMeasure {
		return true
	}
	dir, _ := measure.DirectionOf(t.cfg.measureID)
	if dir == measure.Lower {
		return val <= t.cfg.evalThreshold
	}
	return val >= t.cfg.evalThreshold
}

// passesImprovement applies the minimum-improvement gate: agg minus the
// best one-item-smaller subset's evaluation, signed by the measure's
// direction, must be at least minImprovement. Disabled when
// cfg.minImprovement is -Inf.
func (t *Tree) passesImprovement(n *node, idx int, agg float64) bool {
	if math.IsInf(t.cfg.minImprovement, -1) {
		return true
	}
	best, ok := t.bestSubsetEval(n, idx)
	if !ok {
		return true
	}
	dir, _ := measure.DirectionOf(t.cfg.measureID)
	improvement := float64(dir) * (agg - best)
	return improvement >= t.cfg.minImprovement
}

// bestSubsetEval evaluates each one-item-smaller subset of path(n)+itemAt(idx)
// (drop the new item, or drop one ancestor item) using the canonical
// rotation, and returns the direction-preferred best.
func (t *Tree) bestSubsetEval(n *node, idx int) (float64, bool) {
	if !t.cfg.hasMeasure {
		return 0, false
	}
	fn, _ := measure.FunctionOf(t.cfg.measureID)
	dir, _ := measure.DirectionOf(t.cfg.measureID)

	var best float64
	haveBest := false
	consider := func(r rotation) {
		v := t.applyMeasure(fn, r)
		if !haveBest || float64(dir)*v > float64(dir)*best {
			best = v
			haveBest = true
		}
	}

	// drop the new item: subset is path(n) itself, evaluated against its
	// own parent's rotation.
	if n.parent != nil {
		consider(rotation{
			supp: t.supportOf(n),
			body: t.supportOf(n.parent),
			head: t.base.Frequency(n.item),
		})
	}

	// drop one ancestor item: subset is (path(n) minus that item) + itemAt(idx).
	path := t.pathOf(n)
	ancestors := ancestorChain(n)
	headItem := n.itemAt(idx)
	subPath := t.scratchPath(len(path) + 1)[:0]
	for m := 0; m < len(path); m++ {
		subPath = subPath[:0]
		subPath = append(subPath, path[m+1:]...)
		subPath = append(subPath, headItem)
		supp, ok := ancestors[m].getSupport(subPath)
		if !ok {
			continue
		}
		var body uint64
		if m == len(path)-1 {
			// dropping n's own edge item leaves exactly path(n.parent).
			body = t.supportOf(n.parent)
		} else {
			var ok bool
			body, ok = ancestors[m].getSupport(path[m+1:])
			if !ok {
				continue
			}
		}
		consider(rotation{supp: supp, body: body, head: t.base.Frequency(headItem)})
	}
	return best, haveBest
}

// LogSupportRatio computes the distinguished log-of-support-ratio measure
// for items directly, independent of the measure catalog and any
// configured evaluation (spec.md §4.4): (log(supp) - sum of log(freq of
// each item) + len(items)*log(base)) / log 2. supp must be the joint
// support of items as found via the tree.
func (t *Tree) LogSupportRatio(items []int32, supp uint64) float64 {
	if supp == 0 || t.totalWeight == 0 {
		return math.Inf(-1)
	}
	sum := math.Log(float64(supp))
	for _, item := range items {
		f := t.base.Frequency(item)
		if f == 0 {
			return math.Inf(-1)
		}
		sum -= math.Log(float64(f))
	}
	sum += float64(len(items)) * math.Log(float64(t.totalWeight))
	return sum / math.Log(2)
}
