package rdf

import (
	"strings"
	"testing"
)

var (
	alice = IRI("http://example.org/alice")
	bob   = IRI("http://example.org/bob")
	carol = IRI("http://example.org/carol")
	knows = IRI("http://example.org/knows")
	name  = IRI("http://example.org/name")
)

func TestGraphAddDeduplicates(t *testing.T) {
	g := NewGraph()
	g.Add(alice, knows, bob)
	g.Add(alice, knows, bob)
	g.Add(alice, knows, carol)

	if got := g.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	if !g.Has(alice, knows, bob) {
		t.Error("Has(alice knows bob) = false, want true")
	}
	if g.Has(bob, knows, alice) {
		t.Error("Has(bob knows alice) = true, want false")
	}
}

func TestGraphObjectsAndSubjects(t *testing.T) {
	g := NewGraph()
	g.Add(alice, knows, bob)
	g.Add(alice, knows, carol)
	g.Add(bob, knows, carol)

	if got := g.Objects(alice, knows); len(got) != 2 {
		t.Errorf("Objects(alice, knows) = %v, want 2 terms", got)
	}
	if got := g.Subjects(knows, carol); len(got) != 2 {
		t.Errorf("Subjects(knows, carol) = %v, want 2 terms", got)
	}
	if got := g.Object(bob, knows); got != carol {
		t.Errorf("Object(bob, knows) = %v, want %v", got, carol)
	}
	if got := g.Object(carol, knows); !got.Zero() {
		t.Errorf("Object(carol, knows) = %v, want zero term", got)
	}
}

func TestGraphPathObjects(t *testing.T) {
	g := NewGraph()
	g.Add(alice, knows, bob)
	g.Add(bob, knows, carol)
	g.Add(carol, name, Literal("Carol"))

	got := g.PathObjects(alice, knows, knows, name)
	if len(got) != 1 || got[0] != Literal("Carol") {
		t.Fatalf("PathObjects = %v, want [\"Carol\"]", got)
	}

	if got := g.PathObjects(alice, name); len(got) != 0 {
		t.Errorf("PathObjects over missing edge = %v, want empty", got)
	}
}

func TestGraphReachable(t *testing.T) {
	g := NewGraph()
	g.Add(alice, knows, bob)
	g.Add(bob, knows, carol)
	// Cycle back to alice; the walk must still terminate.
	g.Add(carol, knows, alice)

	tests := []struct {
		name    string
		start   Term
		target  Term
		inverse bool
		want    bool
	}{
		{"zero hops", alice, alice, false, true},
		{"forward two hops", alice, carol, false, true},
		{"forward through cycle", bob, alice, false, true},
		{"inverse one hop", bob, alice, true, true},
		{"unrelated node", alice, IRI("http://example.org/dave"), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got bool
			if tt.inverse {
				got = g.ReachableInverse(tt.start, knows, tt.target)
			} else {
				got = g.Reachable(tt.start, knows, tt.target)
			}
			if got != tt.want {
				t.Errorf("reachable = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTermString(t *testing.T) {
	tests := []struct {
		term Term
		want string
	}{
		{IRI("http://example.org/a"), "<http://example.org/a>"},
		{Blank("b0"), "_:b0"},
		{Literal("plain"), `"plain"`},
		{LangLiteral("ahoj", "cs"), `"ahoj"@cs`},
		{TypedLiteral("4", "http://www.w3.org/2001/XMLSchema#int"), `"4"^^<http://www.w3.org/2001/XMLSchema#int>`},
	}
	for _, tt := range tests {
		if got := tt.term.String(); got != tt.want {
			t.Errorf("String() = %s, want %s", got, tt.want)
		}
	}
}

func TestDecodeTurtle(t *testing.T) {
	doc := `@prefix ex: <http://example.org/> .
ex:alice ex:knows ex:bob ;
         ex:name "Alice"@en ;
         ex:age "30"^^<http://www.w3.org/2001/XMLSchema#integer> .
`
	g, err := Decode(strings.NewReader(doc), FormatTurtle)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if g.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", g.Len())
	}
	if !g.Has(alice, knows, bob) {
		t.Error("missing ex:alice ex:knows ex:bob")
	}
	if !g.Has(alice, IRI("http://example.org/age"), TypedLiteral("30", "http://www.w3.org/2001/XMLSchema#integer")) {
		t.Error("missing typed age literal")
	}
	if !g.Has(alice, name, LangLiteral("Alice", "en")) {
		t.Error("missing language-tagged name literal")
	}
}

func TestDecodeMalformed(t *testing.T) {
	if _, err := Decode(strings.NewReader("this is not turtle @@"), FormatTurtle); err == nil {
		t.Fatal("Decode of malformed document succeeded, want error")
	}
}

func TestFormatForPath(t *testing.T) {
	if got := FormatForPath("cube.ttl"); got != FormatTurtle {
		t.Errorf("FormatForPath(cube.ttl) = %v", got)
	}
	if got := FormatForPath("dump.nt"); got != FormatNTriples {
		t.Errorf("FormatForPath(dump.nt) = %v", got)
	}
	if got := FormatForPath("unknown.bin"); got != FormatTurtle {
		t.Errorf("FormatForPath default = %v", got)
	}
}
