// This file contains code to help debugging, and is
// separated in from the rest in order not to litter
// the main code with debugging stuff

package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/524D/targetdecoy/internal/qvalue"
)

var debugRanks *string // Print debug output for given rank range

func init() {
	debugRanks = flag.String("debug", "",
		"Print the FDR curve for given rank `range` e.g. 0:20 (best score is rank 0)")
}

// debugLogRanks prints, for the ranks in the debug range, how the q-value
// was derived
func debugLogRanks(w io.Writer, d qvalue.Detail, obs observations) {
	if *debugRanks == `` {
		return
	}
	n := len(d.Order)
	debugMin, debugMax, _ := parseIntRange(*debugRanks, 0, n-1)
	fmt.Fprintf(w, "rank\tid\tscore\tlabel\tn\tfdr\tgroup_fdr\tqvalue\n")
	for k := debugMin; k <= debugMax && k < n; k++ {
		i := d.Order[k]
		// Mark the first rank of a group of equal scores
		s := ' '
		if k == 0 || d.Scores[k] != d.Scores[k-1] {
			s = '*'
		}
		fmt.Fprintf(w, "%d%c\t%s\t%g\t%s\t%g\t%f\t%f\t%f\n",
			k, s, obs.ids[i], d.Scores[k], obs.labelStr[i],
			d.NumTotal[k], d.FDR[k], d.GroupFDR[k], d.Ranked[k])
	}
}
