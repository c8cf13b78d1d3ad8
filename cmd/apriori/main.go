// Command apriori is a batch frequent-itemset and association-rule miner:
// it reads transactions from a file (or stdin), mines them with the
// apriori package, and writes the extracted itemsets or rules.
package main

import (
	"fmt"
	"os"

	"github.com/freqmine/apriori/x/cli"
)

func main() {
	opts, err := cli.ParseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if err := cli.Run(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
