package scaffold

import (
	"fmt"
	"strings"
)

// Tree renders the structure as an ASCII tree. It shows every node, with
// optional components and conditions annotated, and substitutes nothing.
func (s *Structure) Tree() string {
	var lines []string
	lines = append(lines, nodeHeader(s.Root))
	lines = treeLines(s.Root, "", lines)
	return strings.Join(lines, "\n") + "\n"
}

func treeLines(n *Node, prefix string, lines []string) []string {
	for i, f := range n.Files {
		last := i == len(n.Files)-1 && len(n.Children) == 0
		lines = append(lines, prefix+connector(last)+fileLabel(f))
	}
	for i, c := range n.Children {
		last := i == len(n.Children)-1
		lines = append(lines, prefix+connector(last)+nodeHeader(c))
		next := prefix + "│   "
		if last {
			next = prefix + "    "
		}
		lines = treeLines(c, next, lines)
	}
	return lines
}

func connector(last bool) string {
	if last {
		return "└── "
	}
	return "├── "
}

func nodeHeader(n *Node) string {
	var bits []string
	if n.ID != "" {
		bits = append(bits, "id="+n.ID)
	}
	if n.Optional {
		bits = append(bits, "optional")
	}
	if len(bits) == 0 {
		return n.Dir
	}
	return fmt.Sprintf("%s [%s]", n.Dir, strings.Join(bits, ", "))
}

func fileLabel(f FileEntry) string {
	label := f.Name
	if f.From != "" {
		label += " <- " + f.From
	}
	if f.OnlyIf != "" {
		label += "  (only_if: " + f.OnlyIf + ")"
	}
	return label
}
