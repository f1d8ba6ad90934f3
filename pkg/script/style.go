package script

import (
	"strings"
	"unicode"

	"github.com/dop251/goja"

	"boxwright/pkg/html"
)

// styleProxy maps element.style.fooBar to the foo-bar declaration of the
// inline style attribute. Declaration order is preserved across writes.
type styleProxy struct {
	vm   *goja.Runtime
	node *html.Node
}

type declaration struct{ property, value string }

func (s *styleProxy) declarations() []declaration {
	attr, _ := s.node.GetAttribute("style")
	var out []declaration
	for _, part := range strings.Split(attr, ";") {
		prop, val, ok := strings.Cut(part, ":")
		prop = strings.ToLower(strings.TrimSpace(prop))
		if !ok || prop == "" {
			continue
		}
		out = append(out, declaration{prop, strings.TrimSpace(val)})
	}
	return out
}

func (s *styleProxy) store(decls []declaration) {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.property + ": " + d.value
	}
	s.node.SetAttribute("style", strings.Join(parts, "; "))
}

func (s *styleProxy) Get(key string) goja.Value {
	if key == "cssText" {
		attr, _ := s.node.GetAttribute("style")
		return s.vm.ToValue(attr)
	}
	prop := kebab(key)
	for _, d := range s.declarations() {
		if d.property == prop {
			return s.vm.ToValue(d.value)
		}
	}
	return s.vm.ToValue("")
}

func (s *styleProxy) Set(key string, val goja.Value) bool {
	if key == "cssText" {
		s.node.SetAttribute("style", val.String())
		return true
	}
	prop, value := kebab(key), val.String()
	decls := s.declarations()
	for i, d := range decls {
		if d.property == prop {
			if value == "" {
				decls = append(decls[:i], decls[i+1:]...)
			} else {
				decls[i].value = value
			}
			s.store(decls)
			return true
		}
	}
	if value != "" {
		s.store(append(decls, declaration{prop, value}))
	}
	return true
}

func (s *styleProxy) Has(string) bool { return true }

func (s *styleProxy) Delete(key string) bool {
	return s.Set(key, s.vm.ToValue(""))
}

func (s *styleProxy) Keys() []string {
	decls := s.declarations()
	keys := make([]string, len(decls))
	for i, d := range decls {
		keys[i] = d.property
	}
	return keys
}

// kebab converts backgroundColor to background-color.
func kebab(s string) string {
	if s == "cssFloat" {
		return "float"
	}
	var sb strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
