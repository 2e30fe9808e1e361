package hww

import (
	"encoding/xml"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
)

// NumCategories is the number of training categories, and weight files,
// of each scoring model.
const NumCategories = 6

const (
	EGammaModelName  = "EGammaTrigMVA"
	MuonIsoModelName = "MuonIso_BDTG_IsoRings"
)

// ScoringModel maps the feature vector of a lepton in a given training
// category to a discriminant value. Implementations must be safe for
// concurrent use once loaded.
type ScoringModel interface {
	Score(category int, features []float64) float64
}

// Estimator holds one boosted decision tree forest per category.
type Estimator struct {
	Name   string
	NVars  int
	forest [NumCategories]*BDT
}

func (e *Estimator) Score(category int, features []float64) float64 {
	return e.forest[category].Evaluate(features)
}

func LoadEGammaEstimator(paths []string) (*Estimator, error) {
	return LoadEstimator(EGammaModelName, ElectronFeatureCount, paths)
}

func LoadMuonIsoEstimator(paths []string) (*Estimator, error) {
	return LoadEstimator(MuonIsoModelName, MuonFeatureCount, paths)
}

// LoadEstimator reads the weight files in category order. Any unreadable or
// malformed file fails the whole load.
func LoadEstimator(name string, nVars int, paths []string) (*Estimator, error) {
	if len(paths) != NumCategories {
		return nil, &ErrModelPaths{Model: name, Got: len(paths)}
	}
	e := &Estimator{Name: name, NVars: nVars}
	for i, path := range paths {
		bdt, err := ReadBDT(path)
		if err != nil {
			return nil, err
		}
		if bdt.NVars != nVars {
			err := fmt.Errorf("expected %d input variables, found %d", nVars, bdt.NVars)
			return nil, &ErrLoadModel{Path: path, Err: err}
		}
		e.forest[i] = bdt
		if configuration.Verbosity > 0 {
			message := fmt.Sprintf("%s category %d: %d trees from %s", name, i, len(bdt.trees), path)
			logger.Info(message, "mva")
		}
	}
	return e, nil
}

// BDT is a boosted decision tree forest read from a TMVA weight file.
type BDT struct {
	Method string
	NVars  int
	grad   bool
	trees  []tree
}

type tree struct {
	weight float64
	nodes  []treeNode
}

type treeNode struct {
	ivar    int
	cut     float64
	cutType bool
	left    int
	right   int
	res     float64
	nType   int
}

func (n treeNode) leaf() bool {
	return n.left < 0 && n.right < 0
}

// Evaluate returns the forest response. Gradient boosted forests are mapped
// to [-1, 1]; AdaBoost forests return the weighted average leaf type.
func (b *BDT) Evaluate(features []float64) float64 {
	if b.grad {
		sum := 0.0
		for _, t := range b.trees {
			sum += t.leaf(features).res
		}
		return 2.0/(1.0+math.Exp(-2.0*sum)) - 1.0
	}
	sum, norm := 0.0, 0.0
	for _, t := range b.trees {
		sum += t.weight * float64(t.leaf(features).nType)
		norm += t.weight
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

func (t tree) leaf(features []float64) treeNode {
	n := t.nodes[0]
	for !n.leaf() {
		goRight := (features[n.ivar] >= n.cut) == n.cutType
		next := n.left
		if goRight {
			next = n.right
		}
		if next < 0 {
			break
		}
		n = t.nodes[next]
	}
	return n
}

type tmvaMethodSetup struct {
	XMLName   xml.Name      `xml:"MethodSetup"`
	Method    string        `xml:"Method,attr"`
	Options   []tmvaOption  `xml:"Options>Option"`
	Variables tmvaVariables `xml:"Variables"`
	Weights   tmvaWeights   `xml:"Weights"`
}

type tmvaOption struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type tmvaVariables struct {
	NVar      int            `xml:"NVar,attr"`
	Variables []tmvaVariable `xml:"Variable"`
}

type tmvaVariable struct {
	Index      int    `xml:"VarIndex,attr"`
	Expression string `xml:"Expression,attr"`
}

type tmvaWeights struct {
	NTrees int        `xml:"NTrees,attr"`
	Trees  []tmvaTree `xml:"BinaryTree"`
}

type tmvaTree struct {
	BoostWeight float64  `xml:"boostWeight,attr"`
	Root        tmvaNode `xml:"Node"`
}

type tmvaNode struct {
	Pos      string     `xml:"pos,attr"`
	IVar     int        `xml:"IVar,attr"`
	Cut      float64    `xml:"Cut,attr"`
	CType    int        `xml:"cType,attr"`
	Res      float64    `xml:"res,attr"`
	NType    int        `xml:"nType,attr"`
	Children []tmvaNode `xml:"Node"`
}

func ReadBDT(path string) (*BDT, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ErrLoadModel{Path: path, Err: err}
	}
	bdt, err := parseBDT(data)
	if err != nil {
		return nil, &ErrLoadModel{Path: path, Err: err}
	}
	return bdt, nil
}

func parseBDT(data []byte) (*BDT, error) {
	var setup tmvaMethodSetup
	if err := xml.Unmarshal(data, &setup); err != nil {
		return nil, fmt.Errorf("error parsing weight file: %w", err)
	}
	if len(setup.Weights.Trees) == 0 {
		return nil, errors.New("weight file has no trees")
	}

	nVars := setup.Variables.NVar
	if nVars == 0 {
		nVars = len(setup.Variables.Variables)
	}
	bdt := &BDT{Method: setup.Method, NVars: nVars}
	for _, opt := range setup.Options {
		if opt.Name == "BoostType" && strings.TrimSpace(opt.Value) == "Grad" {
			bdt.grad = true
		}
	}

	for i, t := range setup.Weights.Trees {
		var nodes []treeNode
		if err := flattenNode(t.Root, nVars, &nodes); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		bdt.trees = append(bdt.trees, tree{weight: t.BoostWeight, nodes: nodes})
	}
	return bdt, nil
}

// flattenNode appends n and its subtree to nodes and returns n's position.
func flattenNode(n tmvaNode, nVars int, nodes *[]treeNode) error {
	idx := len(*nodes)
	*nodes = append(*nodes, treeNode{
		ivar:    n.IVar,
		cut:     n.Cut,
		cutType: n.CType == 1,
		left:    -1,
		right:   -1,
		res:     n.Res,
		nType:   n.NType,
	})
	for _, child := range n.Children {
		childIdx := len(*nodes)
		if err := flattenNode(child, nVars, nodes); err != nil {
			return err
		}
		switch child.Pos {
		case "l":
			(*nodes)[idx].left = childIdx
		case "r":
			(*nodes)[idx].right = childIdx
		default:
			return fmt.Errorf("unknown node position %q", child.Pos)
		}
	}
	if !(*nodes)[idx].leaf() && (n.IVar < 0 || n.IVar >= nVars) {
		return fmt.Errorf("cut on variable %d out of %d", n.IVar, nVars)
	}
	return nil
}
