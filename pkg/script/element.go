package script

import (
	"sort"
	"strings"

	"github.com/dop251/goja"

	"boxwright/pkg/html"
)

// nodeProxy is the JS face of one element or text node.
type nodeProxy struct {
	b    *bindings
	node *html.Node
}

type method func(p *nodeProxy, call goja.FunctionCall) goja.Value

var properties = []string{
	"nodeType", "nodeName", "nodeValue", "tagName", "id", "className",
	"textContent", "innerHTML", "outerHTML", "style", "classList",
	"children", "childNodes", "childElementCount", "parentNode", "parentElement",
	"firstChild", "lastChild", "firstElementChild", "lastElementChild",
	"nextSibling", "previousSibling", "nextElementSibling", "previousElementSibling",
}

var methods map[string]method

func init() {
	methods = map[string]method{
		"getAttribute": func(p *nodeProxy, call goja.FunctionCall) goja.Value {
			if v, ok := p.node.GetAttribute(strings.ToLower(call.Argument(0).String())); ok {
				return p.b.vm.ToValue(v)
			}
			return goja.Null()
		},
		"setAttribute": func(p *nodeProxy, call goja.FunctionCall) goja.Value {
			p.node.SetAttribute(strings.ToLower(call.Argument(0).String()), call.Argument(1).String())
			return goja.Undefined()
		},
		"hasAttribute": func(p *nodeProxy, call goja.FunctionCall) goja.Value {
			_, ok := p.node.GetAttribute(strings.ToLower(call.Argument(0).String()))
			return p.b.vm.ToValue(ok)
		},
		"removeAttribute": func(p *nodeProxy, call goja.FunctionCall) goja.Value {
			delete(p.node.Attributes, strings.ToLower(call.Argument(0).String()))
			return goja.Undefined()
		},
		"appendChild": func(p *nodeProxy, call goja.FunctionCall) goja.Value {
			child := p.b.mustNode(call, 0, "appendChild")
			if child.Contains(p.node) {
				panic(p.b.vm.NewTypeError("appendChild: the new child contains the parent"))
			}
			p.node.AddChild(child)
			return p.b.proxy(child)
		},
		"removeChild": func(p *nodeProxy, call goja.FunctionCall) goja.Value {
			child := p.b.mustNode(call, 0, "removeChild")
			if p.node.RemoveChild(child) == nil {
				panic(p.b.vm.NewTypeError("removeChild: the node is not a child of this node"))
			}
			return p.b.proxy(child)
		},
		"insertBefore": func(p *nodeProxy, call goja.FunctionCall) goja.Value {
			child := p.b.mustNode(call, 0, "insertBefore")
			p.node.InsertBefore(child, p.b.unwrap(call.Argument(1)))
			return p.b.proxy(child)
		},
		"replaceChild": func(p *nodeProxy, call goja.FunctionCall) goja.Value {
			next := p.b.mustNode(call, 0, "replaceChild")
			old := p.b.mustNode(call, 1, "replaceChild")
			if old.Parent != p.node {
				panic(p.b.vm.NewTypeError("replaceChild: the node is not a child of this node"))
			}
			p.node.InsertBefore(next, old)
			p.node.RemoveChild(old)
			return p.b.proxy(old)
		},
		"remove": func(p *nodeProxy, _ goja.FunctionCall) goja.Value {
			if p.node.Parent != nil {
				p.node.Parent.RemoveChild(p.node)
			}
			return goja.Undefined()
		},
		"append": func(p *nodeProxy, call goja.FunctionCall) goja.Value {
			for _, n := range p.b.nodeArgs(call.Arguments) {
				p.node.AddChild(n)
			}
			return goja.Undefined()
		},
		"prepend": func(p *nodeProxy, call goja.FunctionCall) goja.Value {
			var ref *html.Node
			if len(p.node.Children) > 0 {
				ref = p.node.Children[0]
			}
			for _, n := range p.b.nodeArgs(call.Arguments) {
				p.node.InsertBefore(n, ref)
			}
			return goja.Undefined()
		},
		"before": func(p *nodeProxy, call goja.FunctionCall) goja.Value {
			if parent := p.node.Parent; parent != nil {
				for _, n := range p.b.nodeArgs(call.Arguments) {
					parent.InsertBefore(n, p.node)
				}
			}
			return goja.Undefined()
		},
		"after": func(p *nodeProxy, call goja.FunctionCall) goja.Value {
			parent := p.node.Parent
			if parent == nil {
				return goja.Undefined()
			}
			ref := nextSibling(p.node)
			for _, n := range p.b.nodeArgs(call.Arguments) {
				parent.InsertBefore(n, ref)
			}
			return goja.Undefined()
		},
		"replaceWith": func(p *nodeProxy, call goja.FunctionCall) goja.Value {
			parent := p.node.Parent
			if parent == nil {
				return goja.Undefined()
			}
			ref := nextSibling(p.node)
			nodes := p.b.nodeArgs(call.Arguments)
			parent.RemoveChild(p.node)
			for _, n := range nodes {
				parent.InsertBefore(n, ref)
			}
			return goja.Undefined()
		},
		"replaceChildren": func(p *nodeProxy, call goja.FunctionCall) goja.Value {
			nodes := p.b.nodeArgs(call.Arguments)
			clearChildren(p.node)
			for _, n := range nodes {
				p.node.AddChild(n)
			}
			return goja.Undefined()
		},
		"cloneNode": func(p *nodeProxy, call goja.FunctionCall) goja.Value {
			return p.b.proxy(p.node.Clone(call.Argument(0).ToBoolean()))
		},
		"contains": func(p *nodeProxy, call goja.FunctionCall) goja.Value {
			other := p.b.unwrap(call.Argument(0))
			return p.b.vm.ToValue(other != nil && p.node.Contains(other))
		},
		"hasChildNodes": func(p *nodeProxy, _ goja.FunctionCall) goja.Value {
			return p.b.vm.ToValue(len(p.node.Children) > 0)
		},
		"getElementsByTagName": func(p *nodeProxy, call goja.FunctionCall) goja.Value {
			return p.b.array(elementsByTag(p.node, call.Argument(0).String()))
		},
		"getElementsByClassName": func(p *nodeProxy, call goja.FunctionCall) goja.Value {
			return p.b.array(elementsByClass(p.node, call.Argument(0).String()))
		},
		"querySelector": func(p *nodeProxy, call goja.FunctionCall) goja.Value {
			return p.b.proxyOrNull(queryFirst(p.node, p.b.selectorArg(call, "querySelector")))
		},
		"querySelectorAll": func(p *nodeProxy, call goja.FunctionCall) goja.Value {
			return p.b.array(queryAll(p.node, p.b.selectorArg(call, "querySelectorAll")))
		},
		"matches": func(p *nodeProxy, call goja.FunctionCall) goja.Value {
			return p.b.vm.ToValue(matchesAny(p.node, p.b.selectorArg(call, "matches")))
		},
		"closest": func(p *nodeProxy, call goja.FunctionCall) goja.Value {
			return p.b.proxyOrNull(closest(p.node, p.b.selectorArg(call, "closest")))
		},
	}
}

func (p *nodeProxy) Get(key string) goja.Value {
	vm := p.b.vm
	n := p.node
	isText := n.Type == html.TextNode

	if m, ok := methods[key]; ok {
		return vm.ToValue(func(call goja.FunctionCall) goja.Value { return m(p, call) })
	}

	switch key {
	case "nodeType":
		if isText {
			return vm.ToValue(3)
		}
		return vm.ToValue(1)
	case "nodeName", "tagName":
		if isText {
			if key == "tagName" {
				return goja.Undefined()
			}
			return vm.ToValue("#text")
		}
		return vm.ToValue(strings.ToUpper(n.TagName))
	case "nodeValue":
		if isText {
			return vm.ToValue(n.Text)
		}
		return goja.Null()
	case "id":
		v, _ := n.GetAttribute("id")
		return vm.ToValue(v)
	case "className":
		v, _ := n.GetAttribute("class")
		return vm.ToValue(v)
	case "textContent":
		return vm.ToValue(n.TextContent())
	case "innerHTML":
		return vm.ToValue(n.Serialize())
	case "outerHTML":
		return vm.ToValue(n.SerializeOuter())
	case "style":
		return vm.NewDynamicObject(&styleProxy{vm: vm, node: n})
	case "classList":
		return vm.NewDynamicObject(&classListProxy{vm: vm, node: n})
	case "children":
		return p.b.array(elementChildren(n))
	case "childNodes":
		return p.b.array(n.Children)
	case "childElementCount":
		return vm.ToValue(len(elementChildren(n)))
	case "parentNode":
		return p.b.parentValue(n)
	case "parentElement":
		if n.Parent != nil && n.Parent.Type == html.ElementNode {
			return p.b.proxy(n.Parent)
		}
		return goja.Null()
	case "firstChild":
		if len(n.Children) > 0 {
			return p.b.proxy(n.Children[0])
		}
		return goja.Null()
	case "lastChild":
		if len(n.Children) > 0 {
			return p.b.proxy(n.Children[len(n.Children)-1])
		}
		return goja.Null()
	case "firstElementChild":
		kids := elementChildren(n)
		if len(kids) > 0 {
			return p.b.proxy(kids[0])
		}
		return goja.Null()
	case "lastElementChild":
		kids := elementChildren(n)
		if len(kids) > 0 {
			return p.b.proxy(kids[len(kids)-1])
		}
		return goja.Null()
	case "nextSibling":
		return p.b.proxyOrNull(nextSibling(n))
	case "previousSibling":
		return p.b.proxyOrNull(sibling(n, -1, false))
	case "nextElementSibling":
		return p.b.proxyOrNull(sibling(n, 1, true))
	case "previousElementSibling":
		return p.b.proxyOrNull(sibling(n, -1, true))
	}
	return goja.Undefined()
}

func (p *nodeProxy) Set(key string, val goja.Value) bool {
	n := p.node
	switch key {
	case "textContent":
		clearChildren(n)
		if n.Type == html.TextNode {
			n.Text = val.String()
		} else {
			n.AppendText(val.String())
		}
	case "nodeValue":
		if n.Type == html.TextNode {
			n.Text = val.String()
		}
	case "id":
		n.SetAttribute("id", val.String())
	case "className":
		n.SetAttribute("class", val.String())
	case "innerHTML":
		nodes, err := html.ParseFragment(val.String())
		if err != nil {
			panic(p.b.vm.NewGoError(err))
		}
		clearChildren(n)
		for _, c := range nodes {
			n.AddChild(c)
		}
	default:
		return false
	}
	return true
}

func (p *nodeProxy) Has(key string) bool {
	if _, ok := methods[key]; ok {
		return true
	}
	return indexOf(properties, key) >= 0
}

func (p *nodeProxy) Delete(string) bool { return false }

func (p *nodeProxy) Keys() []string {
	keys := append([]string(nil), properties...)
	for k := range methods {
		keys = append(keys, k)
	}
	sort.Strings(keys[len(properties):])
	return keys
}

func elementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for _, c := range n.Children {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func nextSibling(n *html.Node) *html.Node { return sibling(n, 1, false) }

// sibling steps from n in direction dir, optionally skipping text nodes.
func sibling(n *html.Node, dir int, elementsOnly bool) *html.Node {
	i := n.IndexInParent()
	if i < 0 {
		return nil
	}
	kids := n.Parent.Children
	for i += dir; i >= 0 && i < len(kids); i += dir {
		if !elementsOnly || kids[i].Type == html.ElementNode {
			return kids[i]
		}
	}
	return nil
}

func clearChildren(n *html.Node) {
	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = n.Children[:0]
}
