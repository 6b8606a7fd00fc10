// Package treeviz renders a trained tree to Graphviz, demo tooling only
// and never imported by the sherwood package itself. It follows the
// teacher's ebl.OneTree.DrawGraph/recurrentDraw pattern: walk the tree
// recursively, create one cgraph node per tree node, label leaves and
// split candidates differently, and let the caller pick an output
// format via graphviz.Format.
package treeviz

import (
	"fmt"
	"path"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/tarstars/sherwood/sherwood"
)

// Draw builds a Graphviz graph for tree, the generic counterpart of the
// teacher's OneTree.DrawGraph.
func Draw[F sherwood.Feature, S sherwood.Aggregator[S]](tree *sherwood.Tree[F, S]) (*graphviz.Graphviz, *cgraph.Graph, error) {
	graphViz := graphviz.New()
	graph, err := graphViz.Graph()
	if err != nil {
		return nil, nil, err
	}
	if err := recurrentDraw(graph, tree, 0, nil); err != nil {
		return nil, nil, err
	}
	return graphViz, graph, nil
}

func recurrentDraw[F sherwood.Feature, S sherwood.Aggregator[S]](g *cgraph.Graph, tree *sherwood.Tree[F, S], nodeIndex int, parent *cgraph.Node) error {
	node := tree.GetNode(nodeIndex)
	current, err := g.CreateNode(fmt.Sprint(nodeIndex))
	if err != nil {
		return err
	}
	if parent != nil {
		if _, err := g.CreateEdge("", parent, current); err != nil {
			return err
		}
	}

	switch node.Status {
	case sherwood.Leaf:
		current.Set("label", fmt.Sprintf("leaf\n%v", node.Stats))
		current.Set("shape", "box")
		return nil
	case sherwood.SplitCandidate:
		current.Set("label", fmt.Sprintf("%v\n< %.4g", node.Feature, node.Threshold))
		left, right := sherwood.LeftChild(nodeIndex), sherwood.RightChild(nodeIndex)
		if err := recurrentDraw(g, tree, left, current); err != nil {
			return err
		}
		return recurrentDraw(g, tree, right, current)
	default:
		current.Set("label", "null")
		return nil
	}
}

// RenderTreeToFile renders one tree to directory/prefix.format, mirroring
// the teacher's EBooster.RenderTrees but for a single already-selected
// tree rather than looping over a whole forest (the demo CLI calls this
// once, for forest.Trees[0] only).
func RenderTreeToFile[F sherwood.Feature, S sherwood.Aggregator[S]](tree *sherwood.Tree[F, S], format graphviz.Format, directory, prefix string) error {
	graphViz, graph, err := Draw(tree)
	if err != nil {
		return err
	}
	filename := fmt.Sprintf("%s.%s", prefix, formatExtension(format))
	return graphViz.RenderFilename(graph, format, path.Join(directory, filename))
}

func formatExtension(format graphviz.Format) string {
	switch format {
	case graphviz.PNG:
		return "png"
	case graphviz.SVG:
		return "svg"
	case graphviz.JPG:
		return "jpg"
	default:
		return "out"
	}
}
