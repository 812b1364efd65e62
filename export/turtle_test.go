package export

import (
	"strings"
	"testing"

	"github.com/opendata-cz/cubepipe/rdf"
	"github.com/opendata-cz/cubepipe/vocabulary/core"
	"github.com/opendata-cz/cubepipe/vocabulary/qb"
	"github.com/opendata-cz/cubepipe/vocabulary/skos"
)

func sampleGraph() *rdf.Graph {
	g := rdf.NewGraph()
	ds := rdf.IRI("https://example.org/resources/dataset")
	g.Add(ds, rdf.IRI(core.RDFType), rdf.IRI(qb.DataSet))
	g.Add(ds, rdf.IRI(core.DCTitle), rdf.LangLiteral("Vaccine usage", "en"))
	g.Add(ds, rdf.IRI(core.DCIssued), rdf.TypedLiteral("2024-04-22", core.XSDDate))
	g.Add(ds, rdf.IRI(skos.PropNote), rdf.Literal("A \"quoted\" note\nwith newline"))
	return g
}

func TestTurtleRoundTrip(t *testing.T) {
	g := sampleGraph()
	out := NewWriter().Turtle(g)

	back, err := rdf.Decode(strings.NewReader(out), rdf.FormatTurtle)
	if err != nil {
		t.Fatalf("re-parse of Turtle output: %v\noutput:\n%s", err, out)
	}
	if back.Len() != g.Len() {
		t.Fatalf("round trip lost triples: got %d, want %d", back.Len(), g.Len())
	}
	for _, tr := range g.Triples() {
		if !back.Has(tr.S, tr.P, tr.O) {
			t.Errorf("round trip missing %s", tr)
		}
	}
}

func TestTurtleUsesPrefixes(t *testing.T) {
	out := NewWriter().Turtle(sampleGraph())

	if !strings.Contains(out, "@prefix qb: <"+qb.Namespace+"> .") {
		t.Error("missing qb prefix declaration")
	}
	if !strings.Contains(out, "a qb:DataSet") {
		t.Errorf("rdf:type not compacted to 'a':\n%s", out)
	}
	if !strings.Contains(out, "dcterms:title") {
		t.Error("dcterms:title not compacted")
	}
	if !strings.Contains(out, `^^xsd:date`) {
		t.Error("xsd:date datatype not compacted")
	}
}

func TestTurtleDeterministic(t *testing.T) {
	a := NewWriter().Turtle(sampleGraph())
	b := NewWriter().Turtle(sampleGraph())
	if a != b {
		t.Error("Turtle output differs between runs for the same graph")
	}
}

func TestNTriples(t *testing.T) {
	g := rdf.NewGraph()
	s := rdf.IRI("https://example.org/obs-001")
	g.Add(s, rdf.IRI(core.RDFType), rdf.IRI(qb.Observation))
	out := NewWriter().NTriples(g)

	want := "<https://example.org/obs-001> <" + core.RDFType + "> <" + qb.Observation + "> .\n"
	if out != want {
		t.Errorf("NTriples output:\n%s\nwant:\n%s", out, want)
	}
}

func TestCompactSkipsSlashLocalNames(t *testing.T) {
	g := rdf.NewGraph()
	s := rdf.IRI("https://example.org/r/date/15")
	g.Add(s, rdf.IRI(core.RDFType), rdf.IRI(skos.Concept))
	w := NewWriter()
	w.Bind("ex", "https://example.org/r/")
	out := w.Turtle(g)

	if strings.Contains(out, "ex:date/15") {
		t.Errorf("local name with slash was wrongly compacted:\n%s", out)
	}
	if !strings.Contains(out, "<https://example.org/r/date/15>") {
		t.Errorf("subject not written in full form:\n%s", out)
	}
}
