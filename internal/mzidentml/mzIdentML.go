package mzidentml

import (
	"encoding/xml"
	"errors"
)

// Types for parsing mzIdentML

// MzIdentML holds only the part of mzIdentML files
// in which we are interrested
type MzIdentML struct {
	seqID2PepIdx  map[string]int
	evidenceDecoy map[string]bool
	identList     []identRef
	content       mzIdentMLContent
}

type identRef struct {
	specResultIdx int // Index into SpectrumIdentificationResult
	specItemIdx   int // Index into SpectrumIdentificationItem
}

// Identification is a single peptide-spectrum match
type Identification struct {
	ID            string
	PepSeq        string
	PepID         string
	Charge        int
	Rank          int
	ModMass       float64
	SpecID        string
	RetentionTime float64
	// IsDecoy is true when all peptide evidences of the match are decoys
	IsDecoy bool
	// CrossLinkRef pairs the two peptides of a cross-linked match,
	// empty for linear peptides
	CrossLinkRef string
	Cv           []CVParam
}

// CVParam is a controlled vocabulary term with its value
type CVParam struct {
	Accession     string `xml:"accession,attr"`
	Name          string `xml:"name,attr"`
	Value         string `xml:"value,attr"`
	UnitAccession string `xml:"unitAccession,attr"`
}

type mzIdentMLContent struct {
	XMLName                      xml.Name                       `xml:"MzIdentML"`
	Peptide                      []peptide                      `xml:"SequenceCollection>Peptide"`
	PeptideEvidence              []peptideEvidence              `xml:"SequenceCollection>PeptideEvidence"`
	SpectrumIdentificationResult []spectrumIdentificationResult `xml:"DataCollection>AnalysisData>SpectrumIdentificationList>SpectrumIdentificationResult"`
}

type peptide struct {
	ID              string `xml:"id,attr"`
	PeptideSequence string
	Modification    []modification
}

type modification struct {
	// Note: monoisotopicMassDelta is optional according the the schema, but
	// appears to be no other way to determine mass shift, as other
	// corresponding cvParam's don't carry this info either
	MonoisotopicMassDelta float64 `xml:"monoisotopicMassDelta,attr"`
}

type peptideEvidence struct {
	ID      string `xml:"id,attr"`
	IsDecoy bool   `xml:"isDecoy,attr"`
}

type spectrumIdentificationResult struct {
	SpectrumID                 string `xml:"spectrumID,attr"`
	SpectrumIdentificationItem []spectrumIdentificationItem
	CvPar                      []CVParam `xml:"cvParam"`
}

type spectrumIdentificationItem struct {
	ID                 string               `xml:"id,attr"`
	ChargeState        int                  `xml:"chargeState,attr"`
	Rank               int                  `xml:"rank,attr"`
	PeptideRef         string               `xml:"peptide_ref,attr"`
	PeptideEvidenceRef []peptideEvidenceRef `xml:"PeptideEvidenceRef"`
	CvPar              []CVParam            `xml:"cvParam"`
}

type peptideEvidenceRef struct {
	PeptideEvidenceRef string `xml:"peptideEvidence_ref,attr"`
}

// CV term that links the two peptides of a cross-linked identification
const cvCrossLinkItem = `MS:1002511`

var (
	ErrInvalidIdentIndex = errors.New("mzIdentML: invalid identification index")
	ErrUnknownPeptide    = errors.New("mzIdentML: reference to unknown peptide")
	ErrNoScore           = errors.New("mzIdentML: no matching score")
)
