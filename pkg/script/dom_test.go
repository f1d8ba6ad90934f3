package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDOM_Lookup(t *testing.T) {
	doc := run(t, `<div id="a" class="x y">one</div><div class="x">two</div><p>three</p>`, `
		var a = document.getElementById("a");
		if (a === null) throw new Error("missing");
		if (a !== document.getElementById("a")) throw new Error("proxy identity");
		if (a.tagName !== "DIV") throw new Error("tagName " + a.tagName);
		if (document.getElementsByTagName("div").length !== 2) throw new Error("by tag");
		if (document.getElementsByClassName("x").length !== 2) throw new Error("by class");
		if (document.getElementsByClassName("x y").length !== 1) throw new Error("by classes");
		if (document.getElementById("nope") !== null) throw new Error("expected null");
		if (document.body.tagName !== "BODY") throw new Error("body");
		a.setAttribute("data-ok", "1");
	`)
	v, ok := byID(doc, "a").GetAttribute("data-ok")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestDOM_Selectors(t *testing.T) {
	run(t, `<div id="outer"><p class="c">a</p><span><p class="c" id="deep">b</p></span></div><p>c</p>`, `
		var outer = document.querySelector("#outer");
		if (outer.querySelectorAll("p.c").length !== 2) throw new Error("scoped qsa");
		if (document.querySelectorAll("p, span").length !== 4) throw new Error("group");
		var deep = document.querySelector("div span p");
		if (deep.id !== "deep") throw new Error("descendant " + deep.id);
		if (!deep.matches(".c")) throw new Error("matches");
		if (deep.closest("div") !== outer) throw new Error("closest");
		if (document.querySelector("p:hover") !== null) throw new Error("pseudo classes never match");
	`)
}

func TestDOM_Mutation(t *testing.T) {
	doc := run(t, `<ul id="list"><li id="one">1</li></ul>`, `
		var list = document.getElementById("list");
		var two = document.createElement("LI");
		two.textContent = "2";
		list.appendChild(two);
		var zero = document.createElement("li");
		zero.id = "zero";
		list.insertBefore(zero, document.getElementById("one"));
		list.append("tail");
		document.getElementById("one").remove();
		if (list.childElementCount !== 2) throw new Error("count " + list.childElementCount);
		if (list.firstElementChild !== zero) throw new Error("first");
		if (zero.nextElementSibling !== two) throw new Error("sibling");
		if (two.parentNode !== list) throw new Error("parent");
	`)
	assert.Equal(t, `<li id="zero"></li><li>2</li>tail`, byID(doc, "list").Serialize())
}

func TestDOM_InnerHTML(t *testing.T) {
	doc := run(t, `<div id="d">old</div>`, `
		var d = document.getElementById("d");
		d.innerHTML = "<b>bold</b> and <i>it</i>";
		if (d.children.length !== 2) throw new Error("children " + d.children.length);
		if (d.textContent !== "bold and it") throw new Error("text " + d.textContent);
	`)
	d := byID(doc, "d")
	require.Len(t, d.Children, 3)
	assert.Equal(t, d, d.Children[0].Parent)
	assert.Equal(t, `<div id="d"><b>bold</b> and <i>it</i></div>`, d.SerializeOuter())
}

func TestDOM_AppendRejectsAncestor(t *testing.T) {
	doc := parseDoc(t, `<div id="a"><div id="b"></div></div>`)
	doc.Scripts = append(doc.Scripts, `document.getElementById("b").appendChild(document.getElementById("a"))`)
	assert.Error(t, New().Execute(t.Context(), doc))
}

func TestDOM_CloneNode(t *testing.T) {
	doc := run(t, `<div id="src"><span>x</span></div>`, `
		var src = document.getElementById("src");
		var deep = src.cloneNode(true);
		var shallow = src.cloneNode(false);
		if (deep.parentNode !== null) throw new Error("clone attached");
		if (deep.childNodes.length !== 1 || shallow.childNodes.length !== 0) throw new Error("depth");
		deep.id = "copy";
		document.body.appendChild(deep);
	`)
	require.NotNil(t, byID(doc, "copy"))
	assert.NotNil(t, byID(doc, "src"))
}

func TestDOM_Style(t *testing.T) {
	doc := run(t, `<div id="d" style="color: red; width: 10px"></div>`, `
		var s = document.getElementById("d").style;
		if (s.color !== "red") throw new Error("read " + s.color);
		s.backgroundColor = "blue";
		s.width = "";
		s.color = "green";
	`)
	style, _ := byID(doc, "d").GetAttribute("style")
	assert.Equal(t, "color: green; background-color: blue", style)
}

func TestDOM_ClassList(t *testing.T) {
	doc := run(t, `<div id="d" class="a b"></div>`, `
		var cl = document.getElementById("d").classList;
		if (cl.length !== 2 || cl[1] !== "b") throw new Error("read");
		cl.add("c", "a");
		cl.remove("b");
		if (cl.toggle("d") !== true) throw new Error("toggle on");
		if (cl.toggle("a") !== false) throw new Error("toggle off");
		if (!cl.replace("c", "e")) throw new Error("replace");
		if (!cl.contains("e")) throw new Error("contains");
	`)
	class, _ := byID(doc, "d").GetAttribute("class")
	assert.Equal(t, "e d", class)
}

func TestDOM_ClassListRejectsWhitespace(t *testing.T) {
	doc := parseDoc(t, `<div id="d"></div>`)
	doc.Scripts = append(doc.Scripts, `document.getElementById("d").classList.add("a b")`)
	assert.Error(t, New().Execute(t.Context(), doc))
}

func TestKebab(t *testing.T) {
	for in, want := range map[string]string{
		"color":           "color",
		"backgroundColor": "background-color",
		"borderTopWidth":  "border-top-width",
		"cssFloat":        "float",
	} {
		assert.Equal(t, want, kebab(in), in)
	}
}
