// Copyright 2018 Rob Marissen.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/524D/targetdecoy/internal/mzidentml"
	"github.com/524D/targetdecoy/internal/psmtable"
	"github.com/524D/targetdecoy/internal/qvalue"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Program name and version, written to the curve report
const progName = "targetdecoy"

var progVersion = `Unknown`

// Format of the curve report, if it ever changes we should still be able
// to parse output from old versions
const outputFormatVersion = "1.0"

const defaultScoreFilter = "MS:1002257(:)MS:1002053(:)MS:1001330(:)MS:1001159(:)MS:1001172(:)MS:1002466(:)"

const (
	infoDefault = iota
	infoSilent
	infoVerbose
)

// Estimation methods
const (
	methodTDC        = `TDC`
	methodWalzthoeni = `Walzthoeni`
)

// Command line parameters
type params struct {
	inFilename    *string
	outFilename   *string // q-values per identification (TSV)
	curveFilename *string // accepted targets per q-value (JSON)
	scoreFilter   *string // score to use, with accepted range
	order         *string // desc, asc or auto
	desc          bool    // resolved score orientation
	autoOrder     bool    // orientation must be derived from the score
	threshold     *float64
	crossLink     *bool   // Walzthoeni estimation on cross-linked pairs (mzid)
	pairs         *bool   // Label column holds pair target counts (tsv)
	allRanks      *bool   // Use all ranks instead of only the top hit (mzid)
	idCol         *string // TSV column names
	scoreCol      *string
	labelCol      *string
	verbosity     int      // Verbosity of progress messages (infoDefault...)
	args          []string // Additional values passed on the command line
	debug         bool     // Add debug info to the curve report (TARGETDECOY_DEBUG=1)
}

type scoreRange struct {
	minScore float64 // Minimum score to accept
	maxScore float64 // Maximum score to accept
	priority int     // Priority of the score, lowest is best
}

type scoreFilter map[string]scoreRange

// terms returns the score names of the filter, best priority first
func (sf scoreFilter) terms() []string {
	terms := make([]string, 0, len(sf))
	for name := range sf {
		terms = append(terms, name)
	}
	sort.Slice(terms, func(i, j int) bool {
		return sf[terms[i]].priority < sf[terms[j]].priority
	})
	return terms
}

// Scores for which the better direction is known
type knownScore struct {
	accession string
	name      string
	desc      bool // Higher is better
}

var knownScores = []knownScore{
	{`MS:1002257`, `Comet:expectation value`, false},
	{`MS:1002252`, `Comet:xcorr`, true},
	{`MS:1002049`, `MS-GF:RawScore`, true},
	{`MS:1002053`, `MS-GF:EValue`, false},
	{`MS:1001330`, `X!Tandem:expect`, false},
	{`MS:1001159`, `SEQUEST:expectation value`, false},
	{`MS:1001155`, `SEQUEST:xcorr`, true},
	{`MS:1001171`, `Mascot:score`, true},
	{`MS:1001172`, `Mascot:expectation value`, false},
	{`MS:1002466`, `PeptideShaker PSM score`, true},
}

var (
	ErrRangeSpec    = errors.New("invalid range specified")
	ErrUnknownOrder = errors.New("score orientation unknown, use -order")
	ErrNoData       = errors.New("no scored identifications")
)

// observations are the scored identifications that go into the estimation
type observations struct {
	ids       []string
	scores    []float64
	labels    qvalue.Labels
	isTarget  []bool   // Target-target for pairs
	labelStr  []string // Label as written to the output
	scoreTerm string   // Score that was used, empty for tables
	method    string
	skipped   int       // Identifications without usable score
	info      []psmInfo // Peptide details, nil for tables
}

// psmInfo is written next to the q-value for mzIdentML input
type psmInfo struct {
	pepSeq  string
	pepID   string
	modMass float64
	charge  int
	rt      float64 // -1 if unknown
}

func newPsmInfo(ident *mzidentml.Identification) psmInfo {
	return psmInfo{
		pepSeq:  ident.PepSeq,
		pepID:   ident.PepID,
		modMass: ident.ModMass,
		charge:  ident.Charge,
		rt:      ident.RetentionTime,
	}
}

// pairInfo joins the peptides of a cross-link as "A-B"
func pairInfo(a, b *mzidentml.Identification) psmInfo {
	info := newPsmInfo(a)
	info.pepSeq += `-` + b.PepSeq
	info.pepID += `-` + b.PepID
	info.modMass += b.ModMass
	return info
}

// curveReport is written as JSON to the curve file
type curveReport struct {
	// Version of the report format
	TargetDecoyVersion string
	Method             string
	ScoreTerm          string `json:",omitempty"`
	Descending         bool
	Threshold          float64
	Accepted           int // Targets accepted at Threshold
	Curve              []qvalue.Point
	DebugInfo          *reportDebugInfo `json:",omitempty"`
}

type reportDebugInfo struct {
	Observations int
	Targets      int
	Skipped      int
	MinQValue    float64
}

// Parse string like "-12:6" into 2 values, -12 and 6
// Parameters min and max are the "default" min/max values,
// when a value is not specified (e.g. "-12:"), the default is assigned
func parseIntRange(r string, min int, max int) (int, int, error) {
	re := regexp.MustCompile(`\s*(\-?\d*):(\-?\d*)`)
	m := re.FindStringSubmatch(r)
	minOut := min
	maxOut := max
	if len(m) >= 2 && m[1] != "" {
		minOut, _ = strconv.Atoi(m[1])
		if minOut < min {
			minOut = min
		}
	}
	if len(m) >= 3 && m[2] != "" {
		maxOut, _ = strconv.Atoi(m[2])
		if maxOut > max {
			maxOut = max
		}
	}
	var err error
	if minOut > maxOut {
		err = ErrRangeSpec
		minOut = maxOut
	}
	return minOut, maxOut, err
}

// Parse string like "-12.01e1:+6" into 2 values, -120.1 and 6.0
// Parameters min and max are the "default" min/max values,
// when a value is not specified (e.g. "-12.01e1:"), the default is assigned
func parseFloat64Range(r string, min float64, max float64) (
	float64, float64, error) {
	re := regexp.MustCompile(`\s*([-+]?[0-9]*\.?[0-9]*([eE][-+]?[0-9]+)?):([-+]?[0-9]*\.?[0-9]*([eE][-+]?[0-9]+)?)`)
	m := re.FindStringSubmatch(r)
	minOut := min
	maxOut := max
	if len(m) >= 2 && m[1] != "" {
		minOut, _ = strconv.ParseFloat(m[1], 64)
		if minOut < min {
			minOut = min
		}
	}
	if len(m) >= 4 && m[3] != "" {
		maxOut, _ = strconv.ParseFloat(m[3], 64)
		if maxOut > max {
			maxOut = max
		}
	}
	var err error
	if minOut > maxOut {
		err = ErrRangeSpec
		minOut = maxOut
	}
	return minOut, maxOut, err
}

func parseScoreFilter(scoreFilterStr string) (scoreFilter, error) {
	scoreFilt := make(scoreFilter)

	re := regexp.MustCompile(`([^\(]+)\(([^\)]*)\)`)
	matchedStringsList := re.FindAllStringSubmatch(scoreFilterStr, -1)
	for n, matchedStrings := range matchedStringsList {

		scoreName := strings.TrimSpace(matchedStrings[1])
		scoreRangeStr := matchedStrings[2]
		_, ok := scoreFilt[scoreName]
		if ok {
			return nil, errors.New(scoreName + ` defined more than once.`)
		}
		minScore, maxScore, err := parseFloat64Range(scoreRangeStr,
			-math.MaxFloat64, math.MaxFloat64)

		if err != nil {
			return nil, errors.New(`Invalid range for score ` + scoreName)
		}
		scRange := scoreRange{minScore: minScore, maxScore: maxScore, priority: n}
		scoreFilt[scoreName] = scRange
	}
	if len(scoreFilt) == 0 {
		return nil, fmt.Errorf("%w: empty score filter %q", qvalue.ErrConfig, scoreFilterStr)
	}

	return scoreFilt, nil
}

// scoreOrientation looks up whether higher values of a score are better
func scoreOrientation(term string) (bool, error) {
	for _, ks := range knownScores {
		if term == ks.accession || term == ks.name {
			return ks.desc, nil
		}
	}
	return false, fmt.Errorf("%w: %s", ErrUnknownOrder, term)
}

// scoreFromIdent returns the score of the identification that has the best
// priority in the filter, and whether it lies within the accepted range.
// If none of the scores in the filter is present, the error is
// mzidentml.ErrNoScore.
func scoreFromIdent(ident *mzidentml.Identification, scoreFilt scoreFilter) (
	float64, string, bool, error) {
	score, term, err := ident.Score(scoreFilt.terms())
	if err != nil {
		return 0, ``, false, err
	}
	filt := scoreFilt[term]
	return score, term, score >= filt.minScore && score <= filt.maxScore, nil
}

// readMzIdentMLObs collects the top ranking identifications from an
// mzIdentML file, or the cross-linked pairs if par.crossLink is set.
func readMzIdentMLObs(par params) (observations, error) {
	var obs observations
	scoreFilt, err := parseScoreFilter(*par.scoreFilter)
	if err != nil {
		return obs, err
	}

	f, err := os.Open(*par.inFilename)
	if err != nil {
		return obs, err
	}
	defer f.Close()
	mzIdentML, err := mzidentml.Read(f)
	if err != nil {
		return obs, fmt.Errorf("mzidentml.Read: %w", err)
	}

	if *par.crossLink {
		return crossLinkObs(&mzIdentML, scoreFilt, par)
	}

	obs.method = methodTDC
	var isTarget []bool
	crossLinked := 0
	for i := 0; i < mzIdentML.NumIdents(); i++ {
		ident, err := mzIdentML.Ident(i)
		if err != nil {
			return obs, err
		}
		if ident.CrossLinkRef != `` {
			crossLinked++
			continue
		}
		if !*par.allRanks && ident.Rank != 1 {
			continue
		}
		score, term, ok, err := scoreFromIdent(&ident, scoreFilt)
		if errors.Is(err, mzidentml.ErrNoScore) {
			obs.skipped++
			continue
		}
		if err != nil {
			return obs, fmt.Errorf("identification %s: %w", ident.ID, err)
		}
		if !ok {
			obs.skipped++
			continue
		}
		if obs.scoreTerm == `` {
			obs.scoreTerm = term
		} else if term != obs.scoreTerm {
			// Scores of different types can't be ranked together
			return obs, fmt.Errorf("identification %s scored by %s, expected %s",
				ident.ID, term, obs.scoreTerm)
		}
		obs.ids = append(obs.ids, ident.ID)
		obs.scores = append(obs.scores, score)
		isTarget = append(isTarget, !ident.IsDecoy)
		obs.info = append(obs.info, newPsmInfo(&ident))
		if ident.IsDecoy {
			obs.labelStr = append(obs.labelStr, `decoy`)
		} else {
			obs.labelStr = append(obs.labelStr, `target`)
		}
	}
	if crossLinked > 0 {
		log.Warn().Int("count", crossLinked).
			Msg("Cross-linked identifications ignored, use -crosslink to estimate them")
	}
	obs.labels = qvalue.TDC(isTarget)
	obs.isTarget = isTarget
	return obs, nil
}

func crossLinkObs(mzIdentML *mzidentml.MzIdentML, scoreFilt scoreFilter,
	par params) (observations, error) {
	var obs observations
	obs.method = methodWalzthoeni

	pairs, unpaired, err := mzIdentML.CrossLinkPairs()
	if err != nil {
		return obs, err
	}
	if len(unpaired) > 0 {
		log.Warn().Int("count", len(unpaired)).
			Msg("Cross-linked identifications without exactly one partner ignored")
	}

	var pairTargets []int
	for _, pair := range pairs {
		ident, err := mzIdentML.Ident(pair.Idents[0])
		if err != nil {
			return obs, err
		}
		if !*par.allRanks && ident.Rank != 1 {
			continue
		}
		partner, err := mzIdentML.Ident(pair.Idents[1])
		if err != nil {
			return obs, err
		}
		score, term, ok, err := scoreFromIdent(&ident, scoreFilt)
		if errors.Is(err, mzidentml.ErrNoScore) {
			// Some search engines only annotate the score on one peptide
			score, term, ok, err = scoreFromIdent(&partner, scoreFilt)
		}
		if errors.Is(err, mzidentml.ErrNoScore) {
			obs.skipped++
			continue
		}
		if err != nil {
			return obs, fmt.Errorf("cross-link %s/%s: %w", pair.SpecID, pair.Ref, err)
		}
		if !ok {
			obs.skipped++
			continue
		}
		if obs.scoreTerm == `` {
			obs.scoreTerm = term
		} else if term != obs.scoreTerm {
			return obs, fmt.Errorf("cross-link %s/%s scored by %s, expected %s",
				pair.SpecID, pair.Ref, term, obs.scoreTerm)
		}
		obs.ids = append(obs.ids, pair.SpecID+`:`+pair.Ref)
		obs.scores = append(obs.scores, score)
		pairTargets = append(pairTargets, pair.NumTargets)
		obs.isTarget = append(obs.isTarget, pair.NumTargets == 2)
		obs.labelStr = append(obs.labelStr, strconv.Itoa(pair.NumTargets))
		obs.info = append(obs.info, pairInfo(&ident, &partner))
	}
	obs.labels = qvalue.Walzthoeni(pairTargets)
	return obs, nil
}

// readTableObs reads identifications from a tab separated table
func readTableObs(par params) (observations, error) {
	var obs observations
	f, err := os.Open(*par.inFilename)
	if err != nil {
		return obs, err
	}
	defer f.Close()
	tab, err := psmtable.Read(f, psmtable.Columns{
		ID:    *par.idCol,
		Score: *par.scoreCol,
		Label: *par.labelCol,
	})
	if err != nil {
		return obs, err
	}
	obs.ids = tab.IDs
	obs.scores = tab.Scores
	obs.labelStr = tab.Labels
	if *par.pairs {
		obs.method = methodWalzthoeni
		pairTargets, err := qvalue.ParsePairLabels(tab.Labels)
		if err != nil {
			return obs, err
		}
		obs.labels = qvalue.Walzthoeni(pairTargets)
		obs.isTarget = make([]bool, len(pairTargets))
		for i, n := range pairTargets {
			obs.isTarget[i] = n == 2
		}
		return obs, nil
	}
	obs.method = methodTDC
	isTarget, err := qvalue.ParseBoolLabels(tab.Labels)
	if err != nil {
		return obs, err
	}
	obs.labels = qvalue.TDC(isTarget)
	obs.isTarget = isTarget
	return obs, nil
}

func isMzIdentML(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == `.mzid` || ext == `.mzidentml`
}

// writeQValues writes one line per identification, in input order.
// Peptide columns are empty for table input.
func writeQValues(obs observations, q []float64, par params) error {
	f, err := os.Create(*par.outFilename)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	w.Comma = '\t'
	err = w.Write([]string{`id`, `score`, `label`, `qvalue`,
		`peptide`, `peptide_ref`, `modmass`, `charge`, `rt`})
	if err != nil {
		return err
	}
	for i := range q {
		rec := []string{
			obs.ids[i],
			strconv.FormatFloat(obs.scores[i], 'g', -1, 64),
			obs.labelStr[i],
			strconv.FormatFloat(q[i], 'g', -1, 64),
			``, ``, ``, ``, ``,
		}
		if obs.info != nil {
			info := obs.info[i]
			rec[4] = info.pepSeq
			rec[5] = info.pepID
			rec[6] = strconv.FormatFloat(info.modMass, 'f', -1, 64)
			rec[7] = strconv.Itoa(info.charge)
			if info.rt >= 0 {
				rec[8] = strconv.FormatFloat(info.rt, 'f', -1, 64)
			}
		}
		err = w.Write(rec)
		if err != nil {
			return err
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func makeCurveReport(obs observations, q []float64, par params) (curveReport, error) {
	var rep curveReport
	rep.TargetDecoyVersion = outputFormatVersion
	rep.Method = obs.method
	rep.ScoreTerm = obs.scoreTerm
	rep.Descending = par.desc
	rep.Threshold = *par.threshold

	var err error
	rep.Curve, err = qvalue.AcceptedTargets(q, obs.isTarget, *par.threshold)
	if err != nil {
		return rep, err
	}
	rep.Accepted, err = qvalue.Accepted(q, obs.isTarget, *par.threshold)
	if err != nil {
		return rep, err
	}
	if par.debug {
		di := reportDebugInfo{
			Observations: len(q),
			Skipped:      obs.skipped,
			MinQValue:    1,
		}
		for i, v := range q {
			if obs.isTarget[i] {
				di.Targets++
			}
			di.MinQValue = math.Min(di.MinQValue, v)
		}
		rep.DebugInfo = &di
	}
	return rep, nil
}

func writeCurveReport(rep curveReport, par params) error {
	f, err := os.Create(*par.curveFilename)
	if err != nil {
		return err
	}
	defer f.Close()
	e := json.NewEncoder(f)
	e.SetIndent(``, `  `) // Make output easier to read for humans
	if err = e.Encode(rep); err != nil {
		return err
	}
	return f.Close()
}

// run glues together all the steps to produce q-values:
// Read identifications (mzIdentML or table)
// Estimate q-values
// Write q-values and the accepted targets curve
func run(par params) error {
	t := time.Now()

	var obs observations
	var err error
	if isMzIdentML(*par.inFilename) {
		obs, err = readMzIdentMLObs(par)
	} else {
		obs, err = readTableObs(par)
	}
	if err != nil {
		return err
	}
	if len(obs.scores) == 0 {
		return fmt.Errorf("%w in %s", ErrNoData, *par.inFilename)
	}
	log.Debug().Str("file", *par.inFilename).Int("count", len(obs.scores)).
		Int("skipped", obs.skipped).Dur("elapsed", time.Since(t)).
		Msg("Read identifications")

	if par.autoOrder {
		if obs.scoreTerm == `` {
			return fmt.Errorf("%w: score column %s", ErrUnknownOrder, *par.scoreCol)
		}
		par.desc, err = scoreOrientation(obs.scoreTerm)
		if err != nil {
			return err
		}
	}

	t = time.Now()
	d, err := qvalue.Trace(obs.scores, obs.labels, par.desc)
	if err != nil {
		return err
	}
	debugLogRanks(os.Stdout, d, obs)
	log.Debug().Str("method", obs.method).Bool("descending", par.desc).
		Dur("elapsed", time.Since(t)).Msg("Estimated q-values")

	if err = writeQValues(obs, d.QValues, par); err != nil {
		return err
	}
	rep, err := makeCurveReport(obs, d.QValues, par)
	if err != nil {
		return err
	}
	if err = writeCurveReport(rep, par); err != nil {
		return err
	}
	if par.verbosity != infoSilent {
		log.Info().Int("accepted", rep.Accepted).Float64("threshold", rep.Threshold).
			Int("total", len(d.QValues)).Msg("Accepted targets")
	}
	return nil
}

// sanatizeParams does some checks on parameters, and fills missing
// filenames if possible
func sanatizeParams(par *params) error {
	if len(par.args) != 1 {
		return fmt.Errorf("%w: last argument must be name of mzIdentML or TSV file",
			qvalue.ErrConfig)
	}

	in := par.args[0]
	par.inFilename = &in
	var extension = filepath.Ext(in)
	var startName = in[0 : len(in)-len(extension)]

	if *par.outFilename == "" {
		*par.outFilename = startName + "-qvalues.tsv"
	}
	if *par.curveFilename == "" {
		*par.curveFilename = startName + "-curve.json"
	}

	var err error
	par.desc, par.autoOrder, err = qvalue.ParseOrder(*par.order)
	if err != nil {
		return err
	}
	if par.autoOrder && !isMzIdentML(in) {
		// Tables from rescoring tools have higher-is-better scores
		par.desc = true
		par.autoOrder = false
	}
	if math.IsNaN(*par.threshold) || *par.threshold < 0 || *par.threshold > 1 {
		return fmt.Errorf("%w: threshold must be in range 0:1", qvalue.ErrConfig)
	}
	if *par.crossLink && !isMzIdentML(in) {
		return fmt.Errorf("%w: -crosslink needs an mzIdentML file, use -pairs for tables",
			qvalue.ErrConfig)
	}
	return nil
}

func initLogging(verbosity int) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch verbosity {
	case infoVerbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case infoSilent:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func usage() {
	exeName := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr,
		`USAGE:
  %s [options] <mzid or tsv file>

  This program estimates q-values for target and decoy identifications
  using target-decoy competition.

OPTIONS:
`, exeName)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr,
		`
KNOWN SCORES:
  With "-order auto" the score orientation is taken from this list:
`)
	for _, ks := range knownScores {
		order := `lower is better`
		if ks.desc {
			order = `higher is better`
		}
		fmt.Fprintf(os.Stderr, "     %s (%s): %s\n", ks.accession, ks.name, order)
	}

	fmt.Fprintf(os.Stderr,
		`
ENVIRONMENT VARIABLES:
    Variables can also be set in a .env file in the working directory.
    TARGETDECOY_DEBUG=1 adds extra information to the curve JSON file.
    TARGETDECOY_SCORE sets the default of option "score".

USAGE EXAMPLES:
  %s yeast.mzid
    Estimate q-values for the top ranking PSMs in yeast.mzid, write them to
    yeast-qvalues.tsv and the accepted targets curve to yeast-curve.json.

  %s -scorecol score -labelcol Label -idcol SpecId yeast.pin
    Idem, for a Percolator input file. Higher scores are assumed to be better.

  %s -crosslink -score 'MS:1002252(:)' xl.mzid
    Estimate q-values for cross-linked pairs with the Walzthoeni method.
`, exeName, exeName, exeName)
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(2)
	}
	scoreDefault := defaultScoreFilter
	if s := os.Getenv("TARGETDECOY_SCORE"); s != `` {
		scoreDefault = s
	}

	var par params
	par.outFilename = flag.String("o",
		"",
		"`filename` of q-value output (TSV)")
	par.curveFilename = flag.String("curve",
		"",
		"`filename` for output of the accepted targets curve (JSON)")
	par.scoreFilter = flag.String("score",
		scoreDefault,
		`score to estimate q-values from, for mzIdentML input. Format:
<CVterm1|scorename1>([<minscore1>]:[<maxscore1>])...
When multiple score names/CV terms are specified, the first one on the list
that matches a score in the input file will be used. Identifications with a
score outside the range are left out.`)
	par.order = flag.String("order", "auto",
		`auto: derive from the score (mzIdentML) or desc (tables)
desc: higher scores are better
asc: lower scores are better`)
	par.threshold = flag.Float64("threshold", 0.1,
		`q-value threshold for reporting accepted targets`)
	par.crossLink = flag.Bool("crosslink", false,
		`estimate q-values of cross-linked pairs with the Walzthoeni method`)
	par.pairs = flag.Bool("pairs", false,
		`the label column of a table holds the number of targets (0, 1 or 2) in
a cross-linked pair`)
	par.allRanks = flag.Bool("allranks", false,
		`use all identifications of a spectrum, not only rank 1`)
	par.idCol = flag.String("idcol", "",
		"table `column` with identifiers. Default: line number")
	par.scoreCol = flag.String("scorecol", "score",
		"table `column` with scores")
	par.labelCol = flag.String("labelcol", "label",
		"table `column` with target/decoy labels")
	version := flag.Bool("version", false,
		`Show software version`)
	verbose := flag.Bool("verbose", false,
		`Print more verbose progress information`)
	quiet := flag.Bool("quiet", false,
		`Don't print any output except for errors`)
	flag.Usage = usage
	flag.Parse()
	if *version {
		fmt.Fprintf(os.Stderr, "%s version %s\n", progName, progVersion)
		return
	}
	if *verbose {
		par.verbosity = infoVerbose
	}
	if *quiet {
		par.verbosity = infoSilent
	}
	initLogging(par.verbosity)
	par.args = flag.Args()
	// Check if debug output should be enabled
	par.debug = os.Getenv("TARGETDECOY_DEBUG") == `1`

	if err := sanatizeParams(&par); err != nil {
		fmt.Fprintf(os.Stderr, "%v\nType %s --help for usage\n",
			err, filepath.Base(os.Args[0]))
		os.Exit(2)
	}
	if err := run(par); err != nil {
		log.Fatal().Err(err).Str("file", *par.inFilename).Msg("Estimation failed")
	}
}
