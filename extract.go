package apriori

import "github.com/freqmine/apriori/measure"

// cursorState is one state of the extraction state machine (spec.md §4.7).
type cursorState int

const (
	stateScanning cursorState = iota
	stateSelectedSet
	stateScanningHead
	stateSelectedRule
	stateExhausted
)

// cursor drives NextItemset/NextRule. It is resumable: every call leaves
// it positioned so the next call continues from where the last left off,
// yielding each frequent set or rule exactly once.
type cursor struct {
	minSize, maxSize, order int

	state cursorState
	depth int // current itemset size being scanned
	node  *node
	idx   int

	emittedEmpty bool // depth-0 (empty set) already emitted this pass

	// rule rotation state: headPos m < len(path(node)) uses path(node)[m]
	// as head; headPos == len(path(node)) is the canonical head
	// (itemAt(idx)), the last rotation tried for a counter.
	headPos int
}

// SetSize configures the size range and traversal direction: order=+1
// scans short to long, order=-1 long to short.
func (t *Tree) SetSize(min, max, order int) {
	t.cursor.minSize = min
	t.cursor.maxSize = max
	if order >= 0 {
		t.cursor.order = 1
	} else {
		t.cursor.order = -1
	}
}

// Init resets the cursor to the first candidate of the configured range.
func (t *Tree) Init() {
	c := &t.cursor
	c.emittedEmpty = false
	c.headPos = 0
	if c.order > 0 {
		c.depth = c.minSize
	} else {
		c.depth = c.maxSize
	}
	t.seekLevel()
}

// seekLevel positions node/idx at the start of the level for c.depth,
// advancing depth (per order) past empty or out-of-height levels until
// one is found or the range is exhausted.
func (t *Tree) seekLevel() {
	c := &t.cursor
	for {
		if c.depth < c.minSize || c.depth > c.maxSize {
			c.state = stateExhausted
			return
		}
		if c.depth == 0 {
			c.state = stateScanning
			return
		}
		treeDepth := c.depth - 1
		if treeDepth >= len(t.levels) {
			c.depth += c.order
			continue
		}
		if t.levels[treeDepth] == nil {
			c.depth += c.order
			continue
		}
		c.node = t.levels[treeDepth]
		c.idx = 0
		c.state = stateScanning
		return
	}
}

// advance moves the cursor to the next candidate position, crossing node
// and level boundaries per spec.md §4.7.
func (t *Tree) advance() {
	c := &t.cursor
	if c.depth == 0 {
		c.emittedEmpty = true
		c.depth += c.order
		t.seekLevel()
		return
	}
	c.idx++
	for c.node != nil && c.idx >= c.node.size() {
		c.node = c.node.next
		c.idx = 0
	}
	if c.node == nil {
		c.depth += c.order
		t.seekLevel()
	}
}

// NextItemset emits the next frequent itemset meeting the configured
// support bounds and (if configured) evaluation measure, writing its
// items ascending into outSet. Returns false once exhausted.
func (t *Tree) NextItemset(outSet *[]int32, outSupp *uint64, outEval *float64) bool {
	c := &t.cursor
	for c.state != stateExhausted {
		if c.depth == 0 {
			if !c.emittedEmpty && t.emptySetQualifies() {
				*outSet = (*outSet)[:0]
				*outSupp = t.totalWeight
				*outEval = 0
				t.advance()
				return true
			}
			t.advance()
			continue
		}

		if c.node == nil {
			t.advance()
			continue
		}

		item := c.node.itemAt(c.idx)
		supp := c.node.counts[c.idx]

		if t.appearance(item) == Ignore || c.node.isSkipped(c.idx) || !t.withinSupportBounds(supp) {
			t.advance()
			continue
		}

		eval, hasEval := t.evaluate(c.node, c.idx)
		if hasEval {
			if !t.passesThreshold(eval) || !t.passesImprovement(c.node, c.idx, eval) {
				t.advance()
				continue
			}
		}

		*outSet = t.reconstructSet(*outSet, c.node, item)
		*outSupp = supp
		*outEval = eval
		t.advance()
		return true
	}
	return false
}

func (t *Tree) emptySetQualifies() bool {
	return t.withinSupportBounds(t.totalWeight)
}

func (t *Tree) withinSupportBounds(supp uint64) bool {
	if supp < t.cfg.minSupport {
		return false
	}
	if t.cfg.maxSupport != 0 && supp > t.cfg.maxSupport {
		return false
	}
	return true
}

// reconstructSet writes itemAtIdx at the last position, then walks
// node.parent upward filling the rest, per spec.md §4.7.
func (t *Tree) reconstructSet(buf []int32, n *node, itemAtIdx int32) []int32 {
	size := n.depth() + 1
	if cap(buf) < size {
		buf = make([]int32, size)
	}
	buf = buf[:size]
	buf[size-1] = itemAtIdx
	for cur, i := n, size-2; cur.parent != nil; cur, i = cur.parent, i-1 {
		buf[i] = cur.item
	}
	return buf
}

// NextRule emits the next association rule whose body support meets the
// rule-support threshold and whose confidence meets the configured
// bound, rotating through every candidate head of each qualifying
// itemset before advancing to the next one, per spec.md §4.7.
func (t *Tree) NextRule(outRule *[]int32, outSupp, outBody *uint64, outEval *float64) bool {
	c := &t.cursor
	for c.state != stateExhausted {
		if c.depth < 2 {
			// a rule needs at least one head and one body item.
			c.headPos = 0
			t.advance()
			continue
		}
		if c.node == nil {
			c.headPos = 0
			t.advance()
			continue
		}

		item := c.node.itemAt(c.idx)
		supp := c.node.counts[c.idx]
		path := t.pathOf(c.node)
		if t.appearance(item) == Ignore || c.node.isSkipped(c.idx) || supp < t.cfg.minSupport || c.headPos > len(path) {
			c.headPos = 0
			t.advance()
			continue
		}

		pos := c.headPos
		node := c.node
		c.headPos++
		if pos == len(path) {
			c.headPos = 0
			t.advance()
		}

		headItem, bodySupp, ok := t.ruleRotation(node, path, item, pos)
		if !ok {
			continue
		}
		headFreq := t.base.Frequency(headItem)
		if bodySupp < t.cfg.ruleSupport || float64(supp) < float64(bodySupp)*t.cfg.confidence {
			continue
		}

		*outRule = assembleRule(*outRule, path, item, headItem)
		*outSupp = supp
		*outBody = bodySupp
		*outEval = t.ruleEval(supp, bodySupp, headFreq)
		return true
	}
	return false
}

// ruleRotation returns the head item and the body support for rotation
// pos of the set path(n)+itemAtIdx: pos==len(path) is canonical
// (head=itemAtIdx, body=path(n)); pos==m<len(path) uses path[m] as head,
// with body = (path(n) minus path[m]) + itemAtIdx, found by querying
// ancestors[m] (which already encodes path[:m]) for the rest. subPath
// always includes itemAtIdx, so it's never empty and needs no extra
// special case even when m is the last path position.
func (t *Tree) ruleRotation(n *node, path []int32, itemAtIdx int32, pos int) (headItem int32, bodySupp uint64, ok bool) {
	if pos == len(path) {
		return itemAtIdx, t.supportOf(n), true
	}
	m := pos
	headItem = path[m]
	ancestors := ancestorChain(n)
	subPath := append(t.scratchPath(len(path)-m)[:0], path[m+1:]...)
	subPath = append(subPath, itemAtIdx)
	supp, found := ancestors[m].getSupport(subPath)
	if !found {
		return 0, 0, false
	}
	return headItem, supp, true
}

// assembleRule writes head at position 0, then the remaining set items
// (path plus itemAtIdx, minus head) in path order.
func assembleRule(buf []int32, path []int32, itemAtIdx, head int32) []int32 {
	buf = buf[:0]
	buf = append(buf, head)
	for _, it := range path {
		if it != head {
			buf = append(buf, it)
		}
	}
	if itemAtIdx != head {
		buf = append(buf, itemAtIdx)
	}
	return buf
}

func (t *Tree) ruleEval(supp, body, headFreq uint64) float64 {
	if !t.cfg.hasMeasure {
		return 0
	}
	fn, ok := measure.FunctionOf(t.cfg.measureID)
	if !ok {
		return 0
	}
	return t.applyMeasure(fn, rotation{supp: supp, body: body, head: headFreq})
}
