package catalog

import (
	"sort"
	"time"

	"github.com/opendata-cz/cubepipe/rdf"
	"github.com/opendata-cz/cubepipe/vocabulary/core"
	"github.com/opendata-cz/cubepipe/vocabulary/dcat"
)

// DatasetFormat pairs a dataset with one format of its distributions.
type DatasetFormat struct {
	Dataset string
	Format  string
}

// DatasetFormats lists, for every dcat:Dataset in the graph, the formats
// it is distributed in.
func DatasetFormats(g *rdf.Graph) []DatasetFormat {
	var out []DatasetFormat
	for _, ds := range g.SubjectsOfType(rdf.IRI(dcat.Dataset)) {
		for _, format := range rdf.Distinct(g.PathObjects(ds, rdf.IRI(dcat.PropDistribution), rdf.IRI(core.DCFormat))) {
			out = append(out, DatasetFormat{Dataset: ds.Value, Format: format.Value})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Dataset != out[j].Dataset {
			return out[i].Dataset < out[j].Dataset
		}
		return out[i].Format < out[j].Format
	})
	return out
}

// RecentCreators lists the creators of datasets issued in the calendar
// month before now.
func RecentCreators(g *rdf.Graph, now time.Time) []string {
	lastMonth := now.Month() - 1
	if now.Month() == time.January {
		lastMonth = time.December
	}

	seen := make(map[string]struct{})
	var out []string
	for _, ds := range g.SubjectsOfType(rdf.IRI(dcat.Dataset)) {
		creators := g.Objects(ds, rdf.IRI(core.DCCreator))
		if len(creators) == 0 {
			continue
		}
		issued := false
		for _, lit := range g.Objects(ds, rdf.IRI(core.DCIssued)) {
			if t, ok := parseDateTime(lit.Value); ok && t.Month() == lastMonth {
				issued = true
				break
			}
		}
		if !issued {
			continue
		}
		for _, c := range creators {
			if _, dup := seen[c.Value]; dup {
				continue
			}
			seen[c.Value] = struct{}{}
			out = append(out, c.Value)
		}
	}
	sort.Strings(out)
	return out
}

func parseDateTime(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
