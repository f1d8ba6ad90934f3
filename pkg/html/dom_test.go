package html

import "testing"

func makeTree() *Node {
	root := NewElement("div")
	a := NewElement("p")
	b := NewElement("span")
	c := NewElement("em")
	root.AddChild(a)
	root.AddChild(b)
	root.AddChild(c)
	a.AppendText("hello")
	return root
}

func TestRemoveChild(t *testing.T) {
	root := makeTree()
	b := root.Children[1]
	if removed := root.RemoveChild(b); removed != b {
		t.Fatalf("expected removed child to be returned")
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children))
	}
	if b.Parent != nil {
		t.Errorf("expected removed child parent to be nil")
	}
	if root.RemoveChild(b) != nil {
		t.Errorf("removing a non-child should return nil")
	}
}

func TestInsertBefore(t *testing.T) {
	root := makeTree()
	x := NewElement("b")
	root.InsertBefore(x, root.Children[1])
	if root.Children[1] != x || x.Parent != root {
		t.Fatalf("expected inserted node at index 1")
	}
	if len(root.Children) != 4 {
		t.Errorf("expected 4 children, got %d", len(root.Children))
	}
}

func TestInsertBeforeNilRefAppends(t *testing.T) {
	root := makeTree()
	x := NewElement("b")
	root.InsertBefore(x, nil)
	if root.Children[len(root.Children)-1] != x {
		t.Errorf("expected node appended at end")
	}
}

func TestAddChildReparents(t *testing.T) {
	root := makeTree()
	other := NewElement("section")
	moved := root.Children[0]
	other.AddChild(moved)
	if moved.Parent != other {
		t.Errorf("expected parent to be updated")
	}
	if len(root.Children) != 2 {
		t.Errorf("expected old parent to lose child, has %d", len(root.Children))
	}
}

func TestContainsAndIndex(t *testing.T) {
	root := makeTree()
	text := root.Children[0].Children[0]
	if !root.Contains(text) {
		t.Errorf("root should contain nested text")
	}
	if root.Children[1].Contains(text) {
		t.Errorf("sibling should not contain text")
	}
	if got := root.Children[2].IndexInParent(); got != 2 {
		t.Errorf("expected index 2, got %d", got)
	}
	if root.IndexInParent() != -1 {
		t.Errorf("detached node should have index -1")
	}
}

func TestTextContent(t *testing.T) {
	root := makeTree()
	root.Children[2].AppendText(" world")
	if got := root.TextContent(); got != "hello world" {
		t.Errorf("expected 'hello world', got %q", got)
	}
}

func TestSerialize(t *testing.T) {
	root := NewElement("div")
	img := NewElement("img")
	img.SetAttribute("src", "a.png")
	img.SetAttribute("alt", `"q"`)
	p := NewElement("p")
	p.AppendText("1 < 2 & 3")
	root.AddChild(img)
	root.AddChild(p)

	want := `<img alt="&quot;q&quot;" src="a.png"><p>1 &lt; 2 &amp; 3</p>`
	if got := root.Serialize(); got != want {
		t.Errorf("Serialize:\n got %s\nwant %s", got, want)
	}
	if got := p.SerializeOuter(); got != "<p>1 &lt; 2 &amp; 3</p>" {
		t.Errorf("SerializeOuter: got %s", got)
	}
}

func TestCloneDeep(t *testing.T) {
	div := NewElement("div")
	div.SetAttribute("id", "a")
	div.AppendText("hi")

	c := div.Clone(true)
	if c.Parent != nil || len(c.Children) != 1 || c.Children[0].Parent != c {
		t.Fatalf("bad clone structure: %+v", c)
	}
	c.SetAttribute("id", "b")
	if id, _ := div.GetAttribute("id"); id != "a" {
		t.Errorf("clone shares attributes with the original")
	}
	if shallow := div.Clone(false); len(shallow.Children) != 0 {
		t.Errorf("shallow clone copied %d children", len(shallow.Children))
	}
}
