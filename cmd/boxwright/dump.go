package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"boxwright/pkg/html"
	"boxwright/pkg/layout"
)

func newDumpCmd(a *app) *cobra.Command {
	var lines bool
	cmd := &cobra.Command{
		Use:   "dump <file.html>",
		Short: "Print the laid-out box tree.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, _, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			dumpBox(cmd.OutOrStdout(), page.Tree, page.Tree.Root, 0, lines)
			return nil
		},
	}
	cmd.Flags().BoolVar(&lines, "lines", true, "print the lines of text boxes")
	return cmd
}

func dumpBox(w io.Writer, tree *layout.Tree, id layout.BoxID, depth int, lines bool) {
	b := tree.Box(id)
	if b == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	f := b.Frame
	fmt.Fprintf(w, "%s%s [%s,%s %sx%s]", indent, label(b.Node), num(f.X), num(f.Y), num(f.Width), num(f.Height))
	if b.IsScrollable() {
		fmt.Fprintf(w, " scroll=%s/%s", num(b.ScrollY), num(b.ScrollableHeight))
	}
	fmt.Fprintln(w)
	if lines {
		for _, l := range b.Lines {
			fmt.Fprintf(w, "%s  %q @%s,%s w=%s\n", indent, l.Text, num(l.X), num(l.Y), num(l.Width))
		}
	}
	for _, c := range b.Children {
		dumpBox(w, tree, c, depth+1, lines)
	}
}

// label names a node like a selector: tag#id.class, or #text.
func label(n *html.Node) string {
	switch {
	case n == nil:
		return "anonymous"
	case n.Type == html.TextNode:
		return "#text"
	case n.Type == html.DocumentNode:
		return "#document"
	}
	var sb strings.Builder
	sb.WriteString(n.TagName)
	if id, ok := n.GetAttribute("id"); ok && id != "" {
		sb.WriteString("#" + id)
	}
	if class, ok := n.GetAttribute("class"); ok {
		for _, c := range strings.Fields(class) {
			sb.WriteString("." + c)
		}
	}
	return sb.String()
}

// num prints v with at most two decimals.
func num(v float64) string { return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64) }
