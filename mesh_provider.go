package mesh2rn

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FeatureResult is outcome of reading single source feature: either Feature or Err
type FeatureResult struct {
	Name    string
	Feature *Feature
	Err     error
}

// MeshProvider supplies source features
type MeshProvider interface {
	Features() ([]FeatureResult, error)
}

// TreeMeshProvider turns in-memory node tree into features. Every node with a mesh becomes a feature;
// its attribute record is looked up by node name, then by names of ancestors
type TreeMeshProvider struct {
	Nodes      []*MeshNode
	Attributes AttributeLookup
}

// NewTreeMeshProvider returns provider over given nodes
func NewTreeMeshProvider(nodes []*MeshNode, attributes AttributeLookup) *TreeMeshProvider {
	return &TreeMeshProvider{Nodes: nodes, Attributes: attributes}
}

func (provider *TreeMeshProvider) Features() ([]FeatureResult, error) {
	if len(provider.Nodes) == 0 {
		return nil, ErrNoFeatures
	}
	ans := []FeatureResult{}
	var walk func(node *MeshNode, inherited *Attribute)
	walk = func(node *MeshNode, inherited *Attribute) {
		if node == nil {
			return
		}
		attr := inherited
		if provider.Attributes != nil {
			if own, ok := provider.Attributes.Lookup(node.Name); ok {
				attr = &own
			}
		}
		if node.Mesh != nil {
			ans = append(ans, newFeatureResult(node, attr))
		}
		for _, child := range node.Children {
			walk(child, attr)
		}
	}
	for _, node := range provider.Nodes {
		walk(node, nil)
	}
	return ans, nil
}

func newFeatureResult(node *MeshNode, attr *Attribute) FeatureResult {
	res := FeatureResult{Name: node.Name}
	if attr == nil {
		res.Err = errors.Wrapf(ErrNoAttribute, "Can't find attribute for node '%s'", node.Name)
		return res
	}
	if err := node.Mesh.Validate(); err != nil {
		res.Err = errors.Wrapf(err, "Can't use mesh of node '%s'", node.Name)
		return res
	}
	res.Feature = &Feature{
		Name:      node.Name,
		Attribute: *attr,
		RoadType:  ParseRoadType(attr.Function),
		Mesh:      node.Mesh,
	}
	return res
}

// meshDocument is on-disk layout of mesh interchange file
type meshDocument struct {
	Nodes      []*MeshNode          `json:"nodes" yaml:"nodes"`
	Attributes map[string]Attribute `json:"attributes" yaml:"attributes"`
}

// FileMeshProvider reads node tree and attributes from JSON or YAML file
type FileMeshProvider struct {
	FileName string
}

// NewFileMeshProvider returns provider for given file. Format is guessed by extension
func NewFileMeshProvider(fileName string) *FileMeshProvider {
	return &FileMeshProvider{FileName: fileName}
}

func (provider *FileMeshProvider) Features() ([]FeatureResult, error) {
	doc, err := readMeshDocument(provider.FileName)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read mesh file")
	}
	return NewTreeMeshProvider(doc.Nodes, AttributeMap(doc.Attributes)).Features()
}

func readMeshDocument(fileName string) (*meshDocument, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "File open")
	}
	doc := meshDocument{}
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".json":
		err = json.Unmarshal(data, &doc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		return nil, errors.Wrap(ErrUnsupportedFormat, fmt.Sprintf("File extension '%s' for file '%s' is not handled yet", ext, fileName))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "Can't decode '%s'", fileName)
	}
	return &doc, nil
}
