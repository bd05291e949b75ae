package mzidentml

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"

	"golang.org/x/net/html/charset"
)

// Read reads mzIdentML content from io.reader
func Read(reader io.Reader) (MzIdentML, error) {
	var mzIdentML MzIdentML
	d := xml.NewDecoder(reader)
	d.CharsetReader = charset.NewReaderLabel
	err := d.Decode(&mzIdentML.content)
	if err != nil {
		return mzIdentML, err
	}
	mzIdentML.buildPepID2Sequence()
	mzIdentML.buildEvidenceDecoy()
	mzIdentML.buildIdentList()
	return mzIdentML, err
}

func (m *MzIdentML) buildPepID2Sequence() {
	m.seqID2PepIdx = make(map[string]int, len(m.content.Peptide))
	for i, p := range m.content.Peptide {
		m.seqID2PepIdx[p.ID] = i
	}
}

func (m *MzIdentML) buildEvidenceDecoy() {
	m.evidenceDecoy = make(map[string]bool, len(m.content.PeptideEvidence))
	for _, pe := range m.content.PeptideEvidence {
		m.evidenceDecoy[pe.ID] = pe.IsDecoy
	}
}

func (m *MzIdentML) buildIdentList() {
	for i := range m.content.SpectrumIdentificationResult {
		for j := range m.content.SpectrumIdentificationResult[i].SpectrumIdentificationItem {
			var iRef identRef
			iRef.specResultIdx = i
			iRef.specItemIdx = j
			m.identList = append(m.identList, iRef)
		}
	}
}

// NumIdents returns the total number of identifications in the mzIdentML file
// Note that for some spectra, multiple identifications may be present
// The identifications can be accessed using the Ident() method, which takes
// an index as argument. The index runs from 0 to NumIdents()-1
func (m *MzIdentML) NumIdents() int {
	return len(m.identList)
}

// Ident returns a spectrum identification from the mzIdentML file.
// Parameter i is the index of the identification to return. The index runs
// from 0 to NumIdents()-1
func (m *MzIdentML) Ident(i int) (Identification, error) {

	var ident Identification

	if i < 0 || i >= len(m.identList) {
		return ident, ErrInvalidIdentIndex
	}
	result := &m.content.SpectrumIdentificationResult[m.identList[i].specResultIdx]
	item := &result.SpectrumIdentificationItem[m.identList[i].specItemIdx]

	pepIdx, ok := m.seqID2PepIdx[item.PeptideRef]
	if !ok {
		return ident, fmt.Errorf("%w: %s", ErrUnknownPeptide, item.PeptideRef)
	}
	ident.ID = item.ID
	ident.PepSeq = m.content.Peptide[pepIdx].PeptideSequence
	ident.PepID = m.content.Peptide[pepIdx].ID
	ident.ModMass = float64(0)
	ident.Charge = item.ChargeState
	ident.Rank = item.Rank
	for _, mod := range m.content.Peptide[pepIdx].Modification {
		ident.ModMass += mod.MonoisotopicMassDelta
	}
	ident.SpecID = result.SpectrumID
	ident.IsDecoy = m.isDecoy(item)

	ident.RetentionTime = retentionTime(result.CvPar)

	// Collect CV terms/values for the identification, the scores are in there
	for _, cv := range item.CvPar {
		if cv.Accession == cvCrossLinkItem {
			ident.CrossLinkRef = cv.Value
		}
		ident.Cv = append(ident.Cv, cv)
	}

	return ident, nil
}

// isDecoy reports whether every peptide evidence of the item is a decoy.
// A peptide shared between target and decoy proteins counts as target.
func (m *MzIdentML) isDecoy(item *spectrumIdentificationItem) bool {
	if len(item.PeptideEvidenceRef) == 0 {
		return false
	}
	for _, ref := range item.PeptideEvidenceRef {
		if !m.evidenceDecoy[ref.PeptideEvidenceRef] {
			return false
		}
	}
	return true
}

// retentionTime returns the retention time in seconds, or -1 if none
// of the known CV terms has a valid value.
func retentionTime(cvs []CVParam) float64 {
	rt := float64(-1)
	prio := math.MaxInt32
	for _, cv := range cvs {
		// There are multiple CV terms that can be used to report the
		// retention time. In order of decreasing preference we use:
		// 1. MS:1000016 - scan start time
		// 2. MS:1000894 - retention time
		// 3. MS:1000826 - elution time
		// 4. MS:1001114 - retention time (deprecated)
		p := 0
		switch cv.Accession {
		case "MS:1000016":
			p = 1
		case "MS:1000894":
			p = 2
		case "MS:1000826":
			p = 3
		case "MS:1001114":
			p = 4
		}
		if p == 0 || p >= prio {
			continue
		}
		t, err := strconv.ParseFloat(cv.Value, 64)
		if err != nil {
			// Fall back to a lower priority term, if any
			continue
		}
		prio = p
		// Check if the retention time is in minutes, otherwise assume it's seconds
		if cv.UnitAccession == "UO:0000031" || cv.UnitAccession == "MS:1000038" {
			t *= 60
		}
		rt = t
	}
	return rt
}

// Score returns the value of the first CV term in terms (matched on
// accession or name) that is present in the identification, together
// with the matching term.
func (ident *Identification) Score(terms []string) (float64, string, error) {
	for _, term := range terms {
		for _, cv := range ident.Cv {
			if cv.Accession != term && cv.Name != term {
				continue
			}
			score, err := strconv.ParseFloat(cv.Value, 64)
			if err != nil {
				return 0, term, fmt.Errorf("invalid score value %q for %s: %w", cv.Value, term, err)
			}
			return score, term, nil
		}
	}
	return 0, ``, ErrNoScore
}

// CrossLinkPair is a cross-linked identification made of two peptides
type CrossLinkPair struct {
	SpecID string
	Ref    string // Value of the cross-link CV term shared by both items
	Idents [2]int // Identification indices, as used by Ident()
	// NumTargets is the number of peptides in the pair that are targets
	NumTargets int
}

// CrossLinkPairs groups cross-linked identifications by spectrum and
// cross-link reference. Groups that do not contain exactly two peptides
// are returned separately by index, so that the caller can report them.
func (m *MzIdentML) CrossLinkPairs() ([]CrossLinkPair, []int, error) {
	type key struct {
		result int
		ref    string
	}
	groups := make(map[key][]int)
	var keys []key
	for i, iRef := range m.identList {
		ident, err := m.Ident(i)
		if err != nil {
			return nil, nil, err
		}
		if ident.CrossLinkRef == `` {
			continue
		}
		k := key{result: iRef.specResultIdx, ref: ident.CrossLinkRef}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], i)
	}

	var pairs []CrossLinkPair
	var unpaired []int
	for _, k := range keys {
		idx := groups[k]
		if len(idx) != 2 {
			unpaired = append(unpaired, idx...)
			continue
		}
		pair := CrossLinkPair{
			SpecID: m.content.SpectrumIdentificationResult[k.result].SpectrumID,
			Ref:    k.ref,
			Idents: [2]int{idx[0], idx[1]},
		}
		for _, i := range idx {
			iRef := m.identList[i]
			item := &m.content.SpectrumIdentificationResult[iRef.specResultIdx].SpectrumIdentificationItem[iRef.specItemIdx]
			if !m.isDecoy(item) {
				pair.NumTargets++
			}
		}
		pairs = append(pairs, pair)
	}
	return pairs, unpaired, nil
}
