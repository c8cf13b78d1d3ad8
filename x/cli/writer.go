package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/freqmine/apriori"
	"github.com/freqmine/apriori/x/itembase"
)

// writer formats extracted itemsets/rules as one line each, resolving
// item ids back to names via base. When showAvg is set, each item is
// annotated with base.AverageWeight (tract.h's extended-frequency /
// transaction-count average, kept alive from x/itembase for exactly this
// reporting).
type writer struct {
	out     io.Writer
	base    *itembase.Base
	showAvg bool
	count   int
}

func newWriter(out io.Writer, base *itembase.Base, showAvg bool) *writer {
	return &writer{out: out, base: base, showAvg: showAvg}
}

func (w *writer) names(ids []int32) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		if w.showAvg {
			parts[i] = fmt.Sprintf("%s[%.2f]", w.base.Name(id), w.base.AverageWeight(id))
		} else {
			parts[i] = w.base.Name(id)
		}
	}
	return strings.Join(parts, " ")
}

func writeItemsets(t *apriori.Tree, w *writer) error {
	var set []int32
	var supp uint64
	var eval float64
	for t.NextItemset(&set, &supp, &eval) {
		w.count++
		if _, err := fmt.Fprintf(w.out, "%s (%d)\n", w.names(set), supp); err != nil {
			return err
		}
	}
	return nil
}

func writeRules(t *apriori.Tree, w *writer) error {
	var rule []int32
	var supp, body uint64
	var eval float64
	for t.NextRule(&rule, &supp, &body, &eval) {
		w.count++
		if len(rule) == 0 {
			continue
		}
		head := w.names(rule[:1])
		bodyStr := w.names(rule[1:])
		if _, err := fmt.Fprintf(w.out, "%s -> %s (%d, %d) %.4f\n", bodyStr, head, supp, body, eval); err != nil {
			return err
		}
	}
	return nil
}
