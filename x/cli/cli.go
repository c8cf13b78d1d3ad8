package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/freqmine/apriori"
	"github.com/freqmine/apriori/measure"
	"github.com/freqmine/apriori/x/itembase"
	"github.com/freqmine/apriori/x/txn"
)

// Options holds every flag ParseFlags registers, mirroring cc-backend's
// cmd/cc-backend/cli.go flat flag-variable style.
type Options struct {
	input  string
	output string

	target string // "sets" or "rules"
	order  string // "short" or "long" first
	useTree bool

	minSupport  uint64
	maxSupport  uint64
	ruleSupport uint64
	confidence  float64
	minSize     int
	maxSize     int
	maxDepth    int

	perfectExtension bool
	closedOnly       bool
	maximalOnly      bool

	measureName    string
	aggName        string
	evalThreshold  float64
	minImprovement float64
	pruneLevel     int
	invertBelowExp bool

	showAvgWeight bool

	logLevel string
	logDate  bool
}

// ParseFlags registers and parses the driver's flags from args (pass
// os.Args[1:] from main), the way cc-backend's cliInit populates package
// vars via flag.*Var before flag.Parse.
func ParseFlags(args []string) (*Options, error) {
	o := &Options{}
	fs := flag.NewFlagSet("apriori", flag.ContinueOnError)

	fs.StringVar(&o.input, "input", "", "path to the transaction file (one transaction per line, items separated by spaces or commas); - reads stdin")
	fs.StringVar(&o.output, "output", "-", "path to write results to; - writes stdout")
	fs.StringVar(&o.target, "target", "sets", "what to extract: `sets` or `rules`")
	fs.StringVar(&o.order, "order", "short", "extraction order: `short` (small sets first) or `long`")
	fs.BoolVar(&o.useTree, "tree", false, "build a prefix-compressed transaction tree instead of a flat bag before counting")

	fs.Uint64Var(&o.minSupport, "supp", 1, "minimum absolute support")
	fs.Uint64Var(&o.maxSupport, "maxsupp", 0, "maximum absolute support, 0 for unlimited")
	fs.Uint64Var(&o.ruleSupport, "rulesupp", 1, "minimum absolute body support for a rule")
	fs.Float64Var(&o.confidence, "conf", 0, "minimum confidence in [0,1]")
	fs.IntVar(&o.minSize, "min", 1, "minimum itemset/rule size")
	fs.IntVar(&o.maxSize, "max", 1<<30, "maximum itemset/rule size")
	fs.IntVar(&o.maxDepth, "maxdepth", 1<<30, "maximum tree height (largest itemset size mined)")

	fs.BoolVar(&o.perfectExtension, "px", true, "enable perfect-extension pruning")
	fs.BoolVar(&o.closedOnly, "closed", false, "report only closed itemsets")
	fs.BoolVar(&o.maximalOnly, "maximal", false, "report only maximal itemsets")

	fs.StringVar(&o.measureName, "measure", "", "evaluation measure by name (e.g. confidence, lift, conviction, chi2, fetprob); empty disables evaluation-based filtering")
	fs.StringVar(&o.aggName, "agg", "first", "rotation aggregation for multi-item sets: first, min, max, avg")
	fs.Float64Var(&o.evalThreshold, "thresh", 0, "evaluation measure threshold")
	fs.Float64Var(&o.minImprovement, "minimp", -1e308, "minimum evaluation improvement over the best one-item-smaller subset")
	fs.IntVar(&o.pruneLevel, "prunelevel", 0, "prune level passed to the run configuration; candidate generation does not read it")
	fs.BoolVar(&o.invertBelowExp, "invert-below-exp", false, "force a measure to 0 below the independence expectation")

	fs.BoolVar(&o.showAvgWeight, "avgweight", false, "annotate each reported item with its average per-transaction weight")

	fs.StringVar(&o.logLevel, "loglevel", "warn", "logging level: debug, info, warn, err")
	fs.BoolVar(&o.logDate, "logdate", false, "add date/time to log messages")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return o, nil
}

// measureByName mirrors the full RE_* catalog in measure.go (ruleval.h's
// RE_CONF..RE_FETSUPP) plus the two non-ruleval.h extras, so every
// registered measure is reachable from the CLI, not just the original six.
var measureByName = map[string]measure.ID{
	"confidence":     measure.Confidence,
	"addedvalue":     measure.AddedValue,
	"lift":           measure.Lift,
	"liftdiff":       measure.LiftDiff,
	"liftquot":       measure.LiftQuot,
	"conviction":     measure.Conviction,
	"convictiondiff": measure.ConvictionDiff,
	"convictionquot": measure.ConvictionQuot,
	"certainty":      measure.Certainty,
	"chi2":           measure.Chi2,
	"chi2pval":       measure.Chi2PVal,
	"yates":          measure.Yates,
	"yatespval":      measure.YatesPVal,
	"info":           measure.Info,
	"infopval":       measure.InfoPVal,
	"fetprob":        measure.FETProb,
	"fetchi2":        measure.FETChi2,
	"fetinfo":        measure.FETInfo,
	"fetsupp":        measure.FETSupp,
	"jaccard":        measure.Jaccard,
	"cosine":         measure.Cosine,
}

var aggByName = map[string]apriori.Aggregation{
	"first": apriori.AggFirst,
	"min":   apriori.AggMin,
	"max":   apriori.AggMax,
	"avg":   apriori.AggAvg,
}

// Run loads transactions, mines them per opts, and writes the extracted
// itemsets or rules. It is the one place x/cli logs: everything below it
// (the apriori package, x/itembase, x/txn) stays silent, per SPEC_FULL.md.
func Run(opts *Options) error {
	SetLogLevel(opts.logLevel)
	SetLogDateTime(opts.logDate)

	in, closeIn, err := openInput(opts.input)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer closeOut()

	logInfo("apriori: loading transactions from ", displayName(opts.input))
	base := itembase.New(false)
	txns, allInt, err := loadTransactions(in, base)
	if err != nil {
		return err
	}
	base.SetNamesAreInt(allInt)
	logInfo(fmt.Sprintf("apriori: loaded %d transactions over %d items", len(txns), base.NumItems()))

	opts2 := []apriori.Option{
		apriori.WithMinSupport(opts.minSupport),
		apriori.WithMaxSupport(opts.maxSupport),
		apriori.WithRuleSupport(opts.ruleSupport),
		apriori.WithConfidence(opts.confidence),
		apriori.WithMaxDepth(opts.maxDepth),
		apriori.WithPerfectExtension(opts.perfectExtension),
		apriori.WithMinImprovement(opts.minImprovement),
		apriori.WithInvertBelowExpectation(opts.invertBelowExp),
	}
	if opts.measureName != "" {
		id, ok := measureByName[opts.measureName]
		if !ok {
			return fmt.Errorf("apriori: unknown measure %q", opts.measureName)
		}
		agg, ok := aggByName[opts.aggName]
		if !ok {
			return fmt.Errorf("apriori: unknown aggregation %q", opts.aggName)
		}
		opts2 = append(opts2, apriori.WithMeasure(id, agg, opts.evalThreshold, opts.pruneLevel))
	}

	cfg, err := apriori.NewConfig(opts2...)
	if err != nil {
		return err
	}
	tree, err := apriori.New(base, cfg)
	if err != nil {
		return err
	}

	logInfo("apriori: mining")
	if opts.useTree {
		t := txn.BuildTree(txns)
		if err := tree.RunTree(t); err != nil {
			return err
		}
	} else {
		if err := tree.Run(txn.NewBag(txns)); err != nil {
			return err
		}
	}

	if opts.closedOnly {
		tree.Mark(apriori.Closed)
	} else if opts.maximalOnly {
		tree.Mark(apriori.Maximal)
	}

	order := 1
	if opts.order == "long" {
		order = -1
	}
	tree.SetSize(opts.minSize, opts.maxSize, order)
	tree.Init()

	w := newWriter(out, base, opts.showAvgWeight)
	switch opts.target {
	case "sets":
		err = writeItemsets(tree, w)
	case "rules":
		err = writeRules(tree, w)
	default:
		return fmt.Errorf("apriori: unknown target %q", opts.target)
	}
	if err != nil {
		return err
	}
	logInfo(fmt.Sprintf("apriori: reported %d %s", w.count, opts.target))
	return nil
}

func displayName(path string) string {
	if path == "" || path == "-" {
		return "<stdin>"
	}
	return path
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("apriori: opening input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("apriori: creating output: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// loadTransactions reads one transaction per line (items separated by
// spaces and/or commas), registering each item name with base. It reports
// whether every item name parsed as a decimal integer, which x/cli uses
// to set ItemBase.NamesAreInt for the writer's formatting.
func loadTransactions(r io.Reader, base *itembase.Base) ([]apriori.Transaction, bool, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	var txns []apriori.Transaction
	allInt := true
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == '\t' || r == ',' })
		if len(fields) == 0 {
			continue
		}
		items := make([]int32, 0, len(fields))
		for _, f := range fields {
			if _, err := strconv.Atoi(f); err != nil {
				allInt = false
			}
			id := base.ID(f)
			items = append(items, id)
		}
		seen := make(map[int32]bool, len(items))
		for _, id := range items {
			if !seen[id] {
				seen[id] = true
				base.Observe(id, 1)
			}
		}
		txns = append(txns, apriori.Transaction{Items: items, Weight: 1})
	}
	if err := sc.Err(); err != nil {
		return nil, false, fmt.Errorf("apriori: reading transactions: %w", err)
	}
	return txns, allInt, nil
}
