// Package export serializes graphs to Turtle and N-Triples with
// prefix-compacted, deterministically ordered output.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/opendata-cz/cubepipe/rdf"
	"github.com/opendata-cz/cubepipe/vocabulary/core"
	"github.com/opendata-cz/cubepipe/vocabulary/dcat"
	"github.com/opendata-cz/cubepipe/vocabulary/provo"
	"github.com/opendata-cz/cubepipe/vocabulary/qb"
	"github.com/opendata-cz/cubepipe/vocabulary/sdmx"
	"github.com/opendata-cz/cubepipe/vocabulary/skos"
)

// DefaultPrefixes returns the namespace prefixes shared by every document
// the pipeline emits.
func DefaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":            core.RDFNamespace,
		"rdfs":           core.RDFSNamespace,
		"owl":            core.OWLNamespace,
		"xsd":            core.XSDNamespace,
		"dcterms":        core.DCTermsNamespace,
		"foaf":           core.FOAFNamespace,
		"qb":             qb.Namespace,
		"skos":           skos.Namespace,
		"prov":           provo.Namespace,
		"dcat":           dcat.Namespace,
		"vcard":          dcat.VCardNamespace,
		"sdmx-dimension": sdmx.DimensionNamespace,
		"sdmx-concept":   sdmx.ConceptNamespace,
		"sdmx-measure":   sdmx.MeasureNamespace,
		"sdmx-code":      sdmx.CodeNamespace,
	}
}

// Writer serializes graphs with a configured prefix table.
type Writer struct {
	prefixes map[string]string
}

// NewWriter returns a writer with the default prefixes.
func NewWriter() *Writer {
	return &Writer{prefixes: DefaultPrefixes()}
}

// Bind adds or replaces a prefix binding.
func (w *Writer) Bind(prefix, namespace string) {
	w.prefixes[prefix] = namespace
}

// Turtle serializes the graph to Turtle. Subjects, predicates, and objects
// are sorted so output is stable across runs.
func (w *Writer) Turtle(g *rdf.Graph) string {
	var sb strings.Builder

	prefixes := make([]string, 0, len(w.prefixes))
	for p := range w.prefixes {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	for _, p := range prefixes {
		fmt.Fprintf(&sb, "@prefix %s: <%s> .\n", p, w.prefixes[p])
	}
	sb.WriteString("\n")

	bySubject := groupBySubject(g)
	subjects := make([]rdf.Term, 0, len(bySubject))
	for s := range bySubject {
		subjects = append(subjects, s)
	}
	sortTerms(subjects)

	for _, s := range subjects {
		w.writeSubject(&sb, s, bySubject[s])
		sb.WriteString("\n")
	}
	return sb.String()
}

// NTriples serializes the graph to sorted N-Triples.
func (w *Writer) NTriples(g *rdf.Graph) string {
	lines := make([]string, 0, g.Len())
	for _, t := range g.Triples() {
		lines = append(lines, fmt.Sprintf("%s %s %s .",
			w.renderFull(t.S), w.renderFull(t.P), w.renderFull(t.O)))
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n") + "\n"
}

func (w *Writer) writeSubject(sb *strings.Builder, s rdf.Term, pos map[rdf.Term][]rdf.Term) {
	fmt.Fprintf(sb, "%s\n", w.render(s))

	preds := make([]rdf.Term, 0, len(pos))
	for p := range pos {
		preds = append(preds, p)
	}
	sortTerms(preds)

	for pi, p := range preds {
		objects := pos[p]
		sortTerms(objects)
		for oi, o := range objects {
			fmt.Fprintf(sb, "    %s %s", w.render(p), w.render(o))
			last := pi == len(preds)-1 && oi == len(objects)-1
			if last {
				sb.WriteString(" .\n")
			} else {
				sb.WriteString(" ;\n")
			}
		}
	}
}

func (w *Writer) render(t rdf.Term) string {
	switch t.Kind {
	case rdf.KindIRI:
		if t.Value == core.RDFType {
			return "a"
		}
		if compact, ok := w.compact(t.Value); ok {
			return compact
		}
		return "<" + t.Value + ">"
	case rdf.KindBlank:
		return "_:" + t.Value
	default:
		return w.renderLiteral(t, true)
	}
}

func (w *Writer) renderFull(t rdf.Term) string {
	switch t.Kind {
	case rdf.KindIRI:
		return "<" + t.Value + ">"
	case rdf.KindBlank:
		return "_:" + t.Value
	default:
		return w.renderLiteral(t, false)
	}
}

func (w *Writer) renderLiteral(t rdf.Term, compactDatatype bool) string {
	quoted := "\"" + escapeString(t.Value) + "\""
	switch {
	case t.Lang != "":
		return quoted + "@" + t.Lang
	case t.Datatype != "":
		if compactDatatype {
			if c, ok := w.compact(t.Datatype); ok {
				return quoted + "^^" + c
			}
		}
		return quoted + "^^<" + t.Datatype + ">"
	default:
		return quoted
	}
}

// compact shortens an IRI to prefix:local when the local part is a simple
// name; IRIs with slashes or other separators past the namespace stay
// fully written, which keeps the output valid without a Turtle-local-name
// escaper.
func (w *Writer) compact(iri string) (string, bool) {
	for prefix, ns := range w.prefixes {
		if !strings.HasPrefix(iri, ns) {
			continue
		}
		local := iri[len(ns):]
		if local == "" || !simpleLocalName(local) {
			continue
		}
		return prefix + ":" + local, true
	}
	return "", false
}

func simpleLocalName(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}

func groupBySubject(g *rdf.Graph) map[rdf.Term]map[rdf.Term][]rdf.Term {
	out := make(map[rdf.Term]map[rdf.Term][]rdf.Term)
	for _, t := range g.Triples() {
		pos := out[t.S]
		if pos == nil {
			pos = make(map[rdf.Term][]rdf.Term)
			out[t.S] = pos
		}
		pos[t.P] = append(pos[t.P], t.O)
	}
	return out
}

func sortTerms(terms []rdf.Term) {
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Kind != terms[j].Kind {
			return terms[i].Kind < terms[j].Kind
		}
		if terms[i].Value != terms[j].Value {
			return terms[i].Value < terms[j].Value
		}
		if terms[i].Datatype != terms[j].Datatype {
			return terms[i].Datatype < terms[j].Datatype
		}
		return terms[i].Lang < terms[j].Lang
	})
}
