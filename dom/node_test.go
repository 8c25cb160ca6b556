package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeKinds(t *testing.T) {
	text := NewText("hello")
	void := NewVoid("br")
	box := NewContainer("p", text, void)

	assert.Equal(t, KindText, text.Kind())
	assert.Equal(t, KindVoid, void.Kind())
	assert.Equal(t, KindContainer, box.Kind())
	assert.True(t, text.IsLeaf())
	assert.True(t, void.IsLeaf())
	assert.False(t, box.IsLeaf())
	assert.Equal(t, "br", void.Tag())
	assert.Equal(t, "p", box.Tag())
	assert.Equal(t, "hello", text.Text())
	assert.Equal(t, "", box.Text(), "containers have no payload")
}

func TestLenCountsRunes(t *testing.T) {
	assert.Equal(t, 5, NewText("héllo").Len())
	assert.Equal(t, 0, NewVoid("img").Len())

	box := NewContainer("div",
		NewText("ab"),
		NewContainer("span", NewText("cd"), NewVoid("br")),
		NewText("é"),
	)
	assert.Equal(t, 5, box.Len(), "container length is the sum over children")
}

func TestTextContent(t *testing.T) {
	box := NewContainer("div",
		NewText("ab"),
		NewContainer("span", NewText("cd")),
		NewVoid("br"),
		NewText("ef"),
	)
	assert.Equal(t, "abcdef", box.TextContent())
}

func TestParentChildLinks(t *testing.T) {
	a := NewText("a")
	b := NewText("b")
	box := NewContainer("p", a, b)

	assert.Equal(t, box, a.Parent())
	assert.Equal(t, 0, a.ChildIndex())
	assert.Equal(t, 1, b.ChildIndex())
	assert.Equal(t, -1, box.ChildIndex(), "detached nodes have no index")
	assert.Equal(t, a, box.FirstChild())
	assert.Equal(t, b, box.LastChild())
	assert.Equal(t, 2, box.ChildCount())
}

func TestContains(t *testing.T) {
	leaf := NewText("x")
	inner := NewContainer("span", leaf)
	root := NewContainer("div", inner)
	other := NewText("y")

	assert.True(t, root.Contains(leaf))
	assert.True(t, root.Contains(root))
	assert.True(t, inner.Contains(leaf))
	assert.False(t, inner.Contains(root))
	assert.False(t, root.Contains(other))
}

func TestAttrs(t *testing.T) {
	n := NewContainer("div")
	_, ok := n.Attr("type")
	assert.False(t, ok)
	assert.Equal(t, "fallback", n.AttrOr("type", "fallback"))

	n.SetAttr("type", "blackbox")
	v, ok := n.Attr("type")
	assert.True(t, ok)
	assert.Equal(t, "blackbox", v)

	n.DelAttr("type")
	_, ok = n.Attr("type")
	assert.False(t, ok)

	n.SetAttr("a", "1")
	n.SetAttr("b", "2")
	copied := n.Attrs()
	copied["a"] = "mutated"
	assert.Equal(t, "1", n.AttrOr("a", ""), "Attrs returns a copy")
}

func TestWalkSkipsSubtree(t *testing.T) {
	inner := NewContainer("span", NewText("hidden"))
	inner.SetAttr("skip", "true")
	root := NewContainer("div", NewText("a"), inner, NewText("b"))

	var visited []string
	root.Walk(func(n *Node) bool {
		if _, ok := n.Attr("skip"); ok {
			return false
		}
		if n.Kind() == KindText {
			visited = append(visited, n.Text())
		}
		return true
	})
	assert.Equal(t, []string{"a", "b"}, visited)
}

func TestFindAll(t *testing.T) {
	root := NewContainer("div",
		NewText("a"),
		NewContainer("span", NewText("b")),
		NewVoid("br"),
	)
	texts := root.FindAll(func(n *Node) bool { return n.Kind() == KindText })
	assert.Len(t, texts, 2)
	assert.Equal(t, "a", texts[0].Text())
	assert.Equal(t, "b", texts[1].Text())
}

func TestClassSet(t *testing.T) {
	n := NewContainer("span")
	assert.Nil(t, n.Classes())
	assert.False(t, n.HasClass("note"))

	n.AddClass("note")
	n.AddClass("urgent")
	n.AddClass("note") // no duplicate
	assert.Equal(t, []string{"note", "urgent"}, n.Classes())
	assert.True(t, n.HasClass("urgent"))

	n.RemoveClass("note")
	assert.Equal(t, []string{"urgent"}, n.Classes())

	n.RemoveClass("urgent")
	assert.Nil(t, n.Classes())
	_, ok := n.Attr("class")
	assert.False(t, ok, "empty class set drops the attribute")

	n.SetClasses([]string{"x", "y"})
	assert.Equal(t, []string{"x", "y"}, n.Classes())
	n.SetClasses(nil)
	_, ok = n.Attr("class")
	assert.False(t, ok)
}
