package script

import (
	"strings"

	"github.com/dop251/goja"

	"boxwright/pkg/html"
)

// bindings holds the per-document proxy caches so the same node always maps
// to the same JS object and === works.
type bindings struct {
	vm       *goja.Runtime
	doc      *html.Document
	document *goja.Object
	proxies  map[*html.Node]*goja.Object
	nodes    map[*goja.Object]*html.Node
}

func registerDocument(vm *goja.Runtime, doc *html.Document) *bindings {
	b := &bindings{
		vm:      vm,
		doc:     doc,
		proxies: make(map[*html.Node]*goja.Object),
		nodes:   make(map[*goja.Object]*html.Node),
	}
	d := vm.NewObject()
	b.document = d
	root := doc.Root

	d.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		return b.proxyOrNull(elementByID(root, call.Argument(0).String()))
	})
	d.Set("getElementsByTagName", func(call goja.FunctionCall) goja.Value {
		return b.array(elementsByTag(root, call.Argument(0).String()))
	})
	d.Set("getElementsByClassName", func(call goja.FunctionCall) goja.Value {
		return b.array(elementsByClass(root, call.Argument(0).String()))
	})
	d.Set("querySelector", func(call goja.FunctionCall) goja.Value {
		return b.proxyOrNull(queryFirst(root, b.selectorArg(call, "querySelector")))
	})
	d.Set("querySelectorAll", func(call goja.FunctionCall) goja.Value {
		return b.array(queryAll(root, b.selectorArg(call, "querySelectorAll")))
	})
	d.Set("createElement", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(vm.NewTypeError("createElement: 1 argument required"))
		}
		return b.proxy(html.NewElement(call.Arguments[0].String()))
	})
	d.Set("createTextNode", func(call goja.FunctionCall) goja.Value {
		return b.proxy(html.NewText(call.Argument(0).String()))
	})

	live := func(name string, find func() *html.Node) {
		getter := vm.ToValue(func(goja.FunctionCall) goja.Value { return b.proxyOrNull(find()) })
		d.DefineAccessorProperty(name, getter, nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	}
	live("documentElement", func() *html.Node { return firstTag(root, "html") })
	live("head", func() *html.Node { return firstTag(root, "head") })
	live("body", func() *html.Node { return firstTag(root, "body") })
	d.DefineAccessorProperty("title", vm.ToValue(func(goja.FunctionCall) goja.Value {
		if t := firstTag(root, "title"); t != nil {
			return vm.ToValue(strings.TrimSpace(t.TextContent()))
		}
		return vm.ToValue("")
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	vm.Set("document", d)
	return b
}

func (b *bindings) proxy(n *html.Node) *goja.Object {
	if o, ok := b.proxies[n]; ok {
		return o
	}
	o := b.vm.NewDynamicObject(&nodeProxy{b: b, node: n})
	b.proxies[n] = o
	b.nodes[o] = n
	return o
}

func (b *bindings) proxyOrNull(n *html.Node) goja.Value {
	if n == nil {
		return goja.Null()
	}
	return b.proxy(n)
}

// unwrap returns the node behind a proxy, or nil for any other value.
func (b *bindings) unwrap(v goja.Value) *html.Node {
	o, ok := v.(*goja.Object)
	if !ok {
		return nil
	}
	return b.nodes[o]
}

// mustNode unwraps argument i or throws a TypeError naming method.
func (b *bindings) mustNode(call goja.FunctionCall, i int, method string) *html.Node {
	n := b.unwrap(call.Argument(i))
	if n == nil {
		panic(b.vm.NewTypeError(method + ": parameter is not a Node"))
	}
	return n
}

func (b *bindings) array(nodes []*html.Node) goja.Value {
	vals := make([]any, len(nodes))
	for i, n := range nodes {
		vals[i] = b.proxy(n)
	}
	return b.vm.NewArray(vals...)
}

// nodeArgs converts arguments of append/prepend/before/after: nodes are
// detached and strings become text nodes.
func (b *bindings) nodeArgs(args []goja.Value) []*html.Node {
	out := make([]*html.Node, 0, len(args))
	for _, a := range args {
		n := b.unwrap(a)
		if n == nil {
			n = html.NewText(a.String())
		} else if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		out = append(out, n)
	}
	return out
}

func (b *bindings) parentValue(n *html.Node) goja.Value {
	switch {
	case n.Parent == nil:
		return goja.Null()
	case n.Parent == b.doc.Root:
		return b.document
	}
	return b.proxy(n.Parent)
}

func elementByID(root *html.Node, id string) *html.Node {
	var found *html.Node
	root.Walk(func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if v, ok := n.GetAttribute("id"); ok && v == id && n.Type == html.ElementNode {
			found = n
		}
		return found == nil
	})
	return found
}

func firstTag(root *html.Node, tag string) *html.Node {
	var found *html.Node
	root.Walk(func(n *html.Node) bool {
		if found == nil && n.IsElement(tag) {
			found = n
		}
		return found == nil
	})
	return found
}

// descendants collects elements below root (excluding root) accepted by keep.
func descendants(root *html.Node, keep func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	root.Walk(func(n *html.Node) bool {
		if n != root && n.Type == html.ElementNode && keep(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

func elementsByTag(root *html.Node, tag string) []*html.Node {
	tag = strings.ToLower(tag)
	return descendants(root, func(n *html.Node) bool { return tag == "*" || n.TagName == tag })
}

func elementsByClass(root *html.Node, names string) []*html.Node {
	want := strings.Fields(names)
	if len(want) == 0 {
		return nil
	}
	return descendants(root, func(n *html.Node) bool {
		have := classTokens(n)
		for _, w := range want {
			if indexOf(have, w) < 0 {
				return false
			}
		}
		return true
	})
}
