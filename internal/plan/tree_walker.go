package plan

import (
	"fmt"
	"strings"
)

// StepKey is the metadata key holding the pipeline step or source name of a node.
const StepKey = "step"

// WalkTree recursively walks the plan tree depth first, calling visitor for
// each node before its children
func WalkTree(node Node, visitor func(Node) error) error {
	if node == nil {
		return nil
	}
	if err := visitor(node); err != nil {
		return err
	}
	for _, child := range node.Children() {
		if err := WalkTree(child, visitor); err != nil {
			return err
		}
	}
	return nil
}

// PrintTree renders the plan tree, one node per line, children indented
// under their parent. Nodes carrying a step name print it after the type.
func PrintTree(node Node) string {
	var sb strings.Builder
	printTreeHelper(node, 0, &sb)
	return sb.String()
}

func printTreeHelper(node Node, depth int, sb *strings.Builder) {
	if node == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(node.NodeType())
	if step, ok := node.Metadata()[StepKey].(string); ok && step != "" {
		fmt.Fprintf(sb, " [%s]", step)
	}
	sb.WriteByte('\n')
	for _, child := range node.Children() {
		printTreeHelper(child, depth+1, sb)
	}
}

// CountNodes counts the total number of nodes in the tree
func CountNodes(node Node) int {
	count := 0
	_ = WalkTree(node, func(Node) error {
		count++
		return nil
	})
	return count
}

// Sources returns the distinct source names scanned by the tree, in visit order
func Sources(node Node) []string {
	seen := make(map[string]bool)
	var names []string
	_ = WalkTree(node, func(n Node) error {
		if scan, ok := n.(*ScanNode); ok && !seen[scan.Source] {
			seen[scan.Source] = true
			names = append(names, scan.Source)
		}
		return nil
	})
	return names
}
