package dom

import "strings"

// classAttr is the attribute holding the space-separated label set.
const classAttr = "class"

// Classes returns the node's class labels in document order. Nil when none.
func (n *Node) Classes() []string {
	v, ok := n.attrs[classAttr]
	if !ok {
		return nil
	}
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// HasClass reports whether name is in the node's class set.
func (n *Node) HasClass(name string) bool {
	for _, c := range n.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass adds name to the class set if not already present.
func (n *Node) AddClass(name string) {
	if name == "" || n.HasClass(name) {
		return
	}
	classes := append(n.Classes(), name)
	n.SetAttr(classAttr, strings.Join(classes, " "))
}

// RemoveClass removes name from the class set. The class attribute is dropped
// entirely when the set becomes empty.
func (n *Node) RemoveClass(name string) {
	classes := n.Classes()
	out := classes[:0]
	for _, c := range classes {
		if c != name {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		n.DelAttr(classAttr)
		return
	}
	n.SetAttr(classAttr, strings.Join(out, " "))
}

// SetClasses replaces the class set wholesale. An empty set drops the
// attribute.
func (n *Node) SetClasses(names []string) {
	if len(names) == 0 {
		n.DelAttr(classAttr)
		return
	}
	n.SetAttr(classAttr, strings.Join(names, " "))
}
