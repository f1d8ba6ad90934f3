package script

import (
	"github.com/dop251/goja"

	"boxwright/pkg/css"
	"boxwright/pkg/html"
)

// selectorArg parses argument 0 as a selector group, throwing a TypeError
// when it is missing.
func (b *bindings) selectorArg(call goja.FunctionCall, method string) []css.Selector {
	if len(call.Arguments) == 0 {
		panic(b.vm.NewTypeError(method + ": 1 argument required"))
	}
	var group []css.Selector
	for _, raw := range css.SplitSelectorGroup(call.Arguments[0].String()) {
		group = append(group, css.ParseSelector(raw))
	}
	return group
}

func matchesAny(n *html.Node, group []css.Selector) bool {
	for _, sel := range group {
		if css.MatchesSelector(n, sel) {
			return true
		}
	}
	return false
}

func queryAll(root *html.Node, group []css.Selector) []*html.Node {
	return descendants(root, func(n *html.Node) bool { return matchesAny(n, group) })
}

func queryFirst(root *html.Node, group []css.Selector) *html.Node {
	var found *html.Node
	root.Walk(func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n != root && matchesAny(n, group) {
			found = n
		}
		return found == nil
	})
	return found
}

// closest walks from n up through its element ancestors.
func closest(n *html.Node, group []css.Selector) *html.Node {
	for ; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && matchesAny(n, group) {
			return n
		}
	}
	return nil
}
