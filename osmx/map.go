package osmx

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/bsm/georegion/geo"
	osm "github.com/glaslos/go-osm"
)

// Map wraps an osm.Map along with its primary relation.
type Map struct {
	*osm.Map
	rel osm.Relation
}

// Decode reads OSM XML and wraps the result.
func Decode(r io.Reader) (*Map, error) {
	parent, err := osm.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("osmx: %w", err)
	}
	return WrapMap(parent)
}

// WrapMap selects the first relation with way members as the primary
// relation and sorts nodes and ways for lookup.
func WrapMap(parent *osm.Map) (*Map, error) {
	if len(parent.Relations) == 0 {
		return nil, errors.New("osmx: map contains no relations")
	}

	var m *Map
	for _, rel := range parent.Relations {
		if hasWays(rel) {
			m = &Map{Map: parent, rel: rel}
			break
		}
	}
	if m == nil {
		return nil, errors.New("osmx: map contains no valid relations")
	}

	sort.Slice(m.Nodes, func(i, j int) bool { return m.Nodes[i].ID < m.Nodes[j].ID })
	sort.Slice(m.Ways, func(i, j int) bool { return m.Ways[i].ID < m.Ways[j].ID })
	return m, nil
}

// Rel returns the primary relation.
func (m *Map) Rel() *osm.Relation { return &m.rel }

// Tag returns the value of a tag of the primary relation, or an empty
// string if it does not exist.
func (m *Map) Tag(key string) string {
	for _, tag := range m.rel.Tags {
		if tag.Key == key {
			return tag.Value
		}
	}
	return ""
}

// FindNode finds a node by its ID.
func (m *Map) FindNode(id int64) (*osm.Node, error) {
	if pos := sort.Search(len(m.Nodes), func(i int) bool { return m.Nodes[i].ID >= id }); pos < len(m.Nodes) && m.Nodes[pos].ID == id {
		return &m.Nodes[pos], nil
	}
	return nil, fmt.Errorf("osmx: node #%d not found", id)
}

// FindWay finds a way by its ID. Ways without nodes are not found.
func (m *Map) FindWay(id int64) (*osm.Way, error) {
	if pos := sort.Search(len(m.Ways), func(i int) bool { return m.Ways[i].ID >= id }); pos < len(m.Ways) && m.Ways[pos].ID == id {
		if way := &m.Ways[pos]; len(way.Nds) != 0 {
			return way, nil
		}
	}
	return nil, fmt.Errorf("osmx: way #%d not found", id)
}

// GenerateMultiPolygon stitches the outer and inner way members of the
// primary relation into rings. Each inner is attached to the smallest
// outer enclosing it.
func (m *Map) GenerateMultiPolygon() (*geo.MultiPolygon, error) {
	paths, err := m.memberPaths()
	if err != nil {
		return nil, err
	}

	outers, inners, err := paths.Reduce().Rings()
	if err != nil {
		return nil, err
	}

	rings, err := geo.AttachHoles(outers, inners)
	if err != nil {
		return nil, fmt.Errorf("osmx: relation #%d: %w", m.rel.ID, err)
	}
	return geo.New(rings), nil
}

func (m *Map) memberPaths() (pathSlice, error) {
	res := make(pathSlice, 0, len(m.rel.Members))
	for _, mem := range m.rel.Members {
		if mem.Type != "way" {
			continue
		}

		way, err := m.FindWay(mem.Ref)
		if err != nil {
			return nil, err
		}

		p := &memberPath{Role: mem.Role, Path: make([]*osm.Node, 0, len(way.Nds))}
		for _, nd := range way.Nds {
			node, err := m.FindNode(nd.ID)
			if err != nil {
				return nil, err
			}
			p.Path = append(p.Path, node)
		}

		if p.IsValid() {
			res = append(res, p)
		}
	}
	return res, nil
}

func hasWays(rel osm.Relation) bool {
	for _, mem := range rel.Members {
		if mem.Type == "way" {
			return true
		}
	}
	return false
}
