/*
Package tagdbg implements helpers to debug a tag tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tagdbg

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"text/template"

	"github.com/webfirmframework/wff-sub006/tag"
)

// Parameters for GraphViz drawing.
type graphParams struct {
	Fontname   string
	Attributes bool
	NodeTmpl   *template.Template
	EdgeTmpl   *template.Template
	AttrTmpl   *template.Template
}

type node struct {
	T    *tag.Tag
	Name string
}

type edge struct {
	N1, N2 node
}

type attrGroup struct {
	Name  string
	Attrs []*tag.Attribute
}

// ToGraphViz outputs a diagram of the tag tree at root, in GraphViz (DOT)
// format. If withAttributes is set, every element is connected to a table
// of its attributes.
func ToGraphViz(root *tag.Tag, w io.Writer, withAttributes bool) error {
	head := template.Must(template.New("tags").Parse(graphHeadTmpl))
	params := graphParams{Fontname: "Helvetica", Attributes: withAttributes}
	params.NodeTmpl = template.Must(template.New("tagnode").Funcs(
		template.FuncMap{
			"shortstring": shortText,
		}).Parse(tagNodeTmpl))
	params.EdgeTmpl = template.Must(template.New("tagedge").Parse(tagEdgeTmpl))
	params.AttrTmpl = template.Must(template.New("attrs").Parse(attrGroupTmpl))
	if err := head.Execute(w, params); err != nil {
		return err
	}
	dict := make(map[*tag.Tag]string, 64)
	if err := nodes(root, w, dict, &params); err != nil {
		return err
	}
	_, err := w.Write([]byte("}\n"))
	return err
}

// Dotty is a helper for testing. Given a tag and a testing.T, it will
// create a GraphViz image of the tree under root and write it to a file in
// the current folder, choosing a unique file name. The image is in SVG
// format.
//
// If an error occurs, t.Error(…) will be set, causing the test to fail.
func Dotty(root *tag.Tag, t *testing.T) {
	tmpfile, err := os.CreateTemp(".", "tags.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name())
	}()
	t.Logf("writing tag digraph to %s\n", tmpfile.Name())
	if err := ToGraphViz(root, tmpfile, true); err != nil {
		t.Error(err)
		return
	}
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

func nameOf(t *tag.Tag, dict map[*tag.Tag]string) string {
	name := dict[t]
	if name == "" {
		name = fmt.Sprintf("node%05d", len(dict)+1)
		dict[t] = name
	}
	return name
}

func nodes(t *tag.Tag, w io.Writer, dict map[*tag.Tag]string, params *graphParams) error {
	n := node{t, nameOf(t, dict)}
	if err := params.NodeTmpl.Execute(w, n); err != nil {
		return err
	}
	if params.Attributes && !t.IsText() {
		if attrs := t.Attributes(); len(attrs) > 0 {
			if err := params.AttrTmpl.Execute(w, attrGroup{n.Name, attrs}); err != nil {
				return err
			}
		}
	}
	for _, ch := range t.Children() {
		if err := nodes(ch, w, dict, params); err != nil {
			return err
		}
		e := edge{n, node{ch, nameOf(ch, dict)}}
		if err := params.EdgeTmpl.Execute(w, e); err != nil {
			return err
		}
	}
	return nil
}

func shortText(t *tag.Tag) string {
	s := t.Text()
	if len(s) > 10 {
		s = s[:10] + "..."
	}
	s = strings.Replace(s, `"`, `\"`, -1)
	s = strings.Replace(s, "\n", `\\n`, -1)
	s = strings.Replace(s, "\t", `\\t`, -1)
	s = strings.Replace(s, " ", "␣", -1)
	return `"\"` + s + `\""`
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const tagNodeTmpl = `{{ if .T.IsText }}
{{ .Name }}	[ label={{ shortstring .T }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else }}
{{ .Name }}	[ label={{ printf "%q" .T.String }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const tagEdgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1] ;
`

const attrGroupTmpl = `{{ .Name }}_attrs [ style="filled" penwidth=1 fillcolor="ivory3" shape="Mrecord" fontsize=12
    label=<<table border="0" cellborder="0" cellpadding="2" cellspacing="0" bgcolor="ivory3">
      {{ range .Attrs }}
      <tr><td align="right">{{ .Name }}:</td><td>{{ .Value }}</td></tr>
      {{ end }}
    </table>> ] ;
{{ .Name }} -> {{ .Name }}_attrs [dir=none weight=1 style="dashed"] ;
`
