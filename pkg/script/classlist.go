package script

import (
	"strconv"
	"strings"

	"github.com/dop251/goja"

	"boxwright/pkg/html"
)

// classListProxy is element.classList over the class attribute.
type classListProxy struct {
	vm   *goja.Runtime
	node *html.Node
}

func classTokens(n *html.Node) []string {
	attr, _ := n.GetAttribute("class")
	return strings.Fields(attr)
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func (c *classListProxy) set(tokens []string) {
	c.node.SetAttribute("class", strings.Join(tokens, " "))
}

func (c *classListProxy) token(v goja.Value) string {
	t := v.String()
	if t == "" || strings.ContainsAny(t, " \t\n\f\r") {
		panic(c.vm.NewTypeError("classList: invalid token " + strconv.Quote(t)))
	}
	return t
}

func (c *classListProxy) Get(key string) goja.Value {
	vm := c.vm
	tokens := classTokens(c.node)
	if i, err := strconv.Atoi(key); err == nil {
		if i >= 0 && i < len(tokens) {
			return vm.ToValue(tokens[i])
		}
		return goja.Undefined()
	}

	fn := func(f func(goja.FunctionCall) goja.Value) goja.Value { return vm.ToValue(f) }
	switch key {
	case "length":
		return vm.ToValue(len(tokens))
	case "value":
		return vm.ToValue(strings.Join(tokens, " "))
	case "contains":
		return fn(func(call goja.FunctionCall) goja.Value {
			return vm.ToValue(indexOf(classTokens(c.node), call.Argument(0).String()) >= 0)
		})
	case "item":
		return fn(func(call goja.FunctionCall) goja.Value {
			i := int(call.Argument(0).ToInteger())
			if t := classTokens(c.node); i >= 0 && i < len(t) {
				return vm.ToValue(t[i])
			}
			return goja.Null()
		})
	case "add":
		return fn(func(call goja.FunctionCall) goja.Value {
			t := classTokens(c.node)
			for _, a := range call.Arguments {
				if tok := c.token(a); indexOf(t, tok) < 0 {
					t = append(t, tok)
				}
			}
			c.set(t)
			return goja.Undefined()
		})
	case "remove":
		return fn(func(call goja.FunctionCall) goja.Value {
			t := classTokens(c.node)
			for _, a := range call.Arguments {
				if i := indexOf(t, c.token(a)); i >= 0 {
					t = append(t[:i], t[i+1:]...)
				}
			}
			c.set(t)
			return goja.Undefined()
		})
	case "toggle":
		return fn(func(call goja.FunctionCall) goja.Value {
			tok := c.token(call.Argument(0))
			t := classTokens(c.node)
			i := indexOf(t, tok)
			want := i < 0
			if len(call.Arguments) > 1 {
				want = call.Arguments[1].ToBoolean()
			}
			switch {
			case want && i < 0:
				t = append(t, tok)
			case !want && i >= 0:
				t = append(t[:i], t[i+1:]...)
			}
			c.set(t)
			return vm.ToValue(want)
		})
	case "replace":
		return fn(func(call goja.FunctionCall) goja.Value {
			old, next := c.token(call.Argument(0)), c.token(call.Argument(1))
			t := classTokens(c.node)
			i := indexOf(t, old)
			if i < 0 {
				return vm.ToValue(false)
			}
			if indexOf(t, next) >= 0 {
				t = append(t[:i], t[i+1:]...)
			} else {
				t[i] = next
			}
			c.set(t)
			return vm.ToValue(true)
		})
	}
	return goja.Undefined()
}

func (c *classListProxy) Set(key string, val goja.Value) bool {
	if key == "value" {
		c.node.SetAttribute("class", val.String())
		return true
	}
	return false
}

func (c *classListProxy) Has(key string) bool {
	switch key {
	case "length", "value", "contains", "item", "add", "remove", "toggle", "replace":
		return true
	}
	i, err := strconv.Atoi(key)
	return err == nil && i >= 0 && i < len(classTokens(c.node))
}

func (c *classListProxy) Delete(string) bool { return false }

func (c *classListProxy) Keys() []string {
	keys := make([]string, len(classTokens(c.node)))
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}
	return keys
}
