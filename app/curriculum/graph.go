package curriculum

import (
	"context"
	"sort"

	"github.com/isina-nej/unipath/app/database"
	"github.com/isina-nej/unipath/app/metrics"
	"github.com/isina-nej/unipath/app/models"
)

// CourseRef points at another course from inside a graph node. Missing is set
// when the id does not match any known course; the reference is kept anyway.
type CourseRef struct {
	ID      int64  `json:"id"`
	Name    string `json:"name,omitempty"`
	Units   int    `json:"units,omitempty"`
	Missing bool   `json:"missing,omitempty"`
}

// Node is the denormalized view of one course.
type Node struct {
	Course                models.Course `json:"course"`
	Prerequisites         []CourseRef   `json:"prerequisites"`
	Corequisites          []CourseRef   `json:"corequisites"`
	Dependents            []CourseRef   `json:"dependent_courses"`
	CorequisiteDependents []CourseRef   `json:"corequisite_dependents"`
}

// Graph holds forward and reverse requisite lookups. Slot targets are opaque
// keys: dangling and self references are kept and never cause an error.
type Graph struct {
	courses []models.Course
	byID    map[int64]models.Course

	prerequisites map[int64]models.RequisiteLink
	corequisites  map[int64]models.RequisiteLink

	dependents            map[int64][]int64
	corequisiteDependents map[int64][]int64
}

// BuildGraph indexes courses and link rows. The first pass keys every link row
// by its owning course, a later row for the same owner replacing an earlier
// one; the second walks the kept rows in owner id order and files the owner
// under each of its three slot values. courses must be in ascending id order,
// which is the order Nodes reports them in.
func BuildGraph(courses []models.Course, prereqs, coreqs []models.RequisiteLink) *Graph {
	g := &Graph{
		courses:       courses,
		byID:          make(map[int64]models.Course, len(courses)),
		prerequisites: make(map[int64]models.RequisiteLink, len(prereqs)),
		corequisites:  make(map[int64]models.RequisiteLink, len(coreqs)),
	}
	for _, c := range courses {
		g.byID[c.ID] = c
	}

	for _, link := range prereqs {
		g.prerequisites[link.CourseID] = link
	}
	for _, link := range coreqs {
		g.corequisites[link.CourseID] = link
	}

	g.dependents = reverseIndex(g.prerequisites)
	g.corequisiteDependents = reverseIndex(g.corequisites)
	return g
}

func reverseIndex(forward map[int64]models.RequisiteLink) map[int64][]int64 {
	owners := make([]int64, 0, len(forward))
	for owner := range forward {
		owners = append(owners, owner)
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i] < owners[j] })

	reverse := make(map[int64][]int64)
	for _, owner := range owners {
		indexReverse(reverse, forward[owner])
	}
	return reverse
}

// indexReverse files link.CourseID under each filled slot. A course naming the
// same target twice is listed once.
func indexReverse(reverse map[int64][]int64, link models.RequisiteLink) {
	if link.Slot1 != nil {
		addReverse(reverse, *link.Slot1, link.CourseID)
	}
	if link.Slot2 != nil {
		addReverse(reverse, *link.Slot2, link.CourseID)
	}
	if link.Slot3 != nil {
		addReverse(reverse, *link.Slot3, link.CourseID)
	}
}

// addReverse relies on owners arriving in order, so a repeat can only be the
// last entry.
func addReverse(reverse map[int64][]int64, target, owner int64) {
	owners := reverse[target]
	if n := len(owners); n > 0 && owners[n-1] == owner {
		return
	}
	reverse[target] = append(owners, owner)
}

// Courses returns the courses in ascending id order.
func (g *Graph) Courses() []models.Course {
	return g.courses
}

// Course looks up a known course.
func (g *Graph) Course(id int64) (models.Course, bool) {
	c, ok := g.byID[id]
	return c, ok
}

// Prerequisites returns the ids in the course's filled prerequisite slots.
func (g *Graph) Prerequisites(id int64) []int64 {
	return g.prerequisites[id].Targets()
}

// Corequisites returns the ids in the course's filled corequisite slots.
func (g *Graph) Corequisites(id int64) []int64 {
	return g.corequisites[id].Targets()
}

// Dependents returns the courses naming id in a prerequisite slot. id need
// not be a known course.
func (g *Graph) Dependents(id int64) []int64 {
	return nonNil(g.dependents[id])
}

// CorequisiteDependents returns the courses naming id in a corequisite slot.
func (g *Graph) CorequisiteDependents(id int64) []int64 {
	return nonNil(g.corequisiteDependents[id])
}

// Node resolves every relation of one course into CourseRefs.
func (g *Graph) Node(c models.Course) Node {
	return Node{
		Course:                c,
		Prerequisites:         g.refs(g.Prerequisites(c.ID)),
		Corequisites:          g.refs(g.Corequisites(c.ID)),
		Dependents:            g.refs(g.Dependents(c.ID)),
		CorequisiteDependents: g.refs(g.CorequisiteDependents(c.ID)),
	}
}

// Nodes returns one node per course in ascending course id order.
func (g *Graph) Nodes() []Node {
	nodes := make([]Node, 0, len(g.courses))
	for _, c := range g.courses {
		nodes = append(nodes, g.Node(c))
	}
	return nodes
}

func (g *Graph) refs(ids []int64) []CourseRef {
	refs := make([]CourseRef, 0, len(ids))
	for _, id := range ids {
		c, ok := g.byID[id]
		if !ok {
			refs = append(refs, CourseRef{ID: id, Missing: true})
			continue
		}
		refs = append(refs, CourseRef{ID: c.ID, Name: c.Name, Units: c.Units})
	}
	return refs
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

// graphRows is everything BuildGraph needs, read in one go.
type graphRows struct {
	courses []models.Course
	prereqs []models.RequisiteLink
	coreqs  []models.RequisiteLink
}

func loadGraphRows(ctx context.Context, q database.Querier) (graphRows, error) {
	var (
		rows graphRows
		err  error
	)
	if rows.courses, err = database.ListCourses(ctx, q); err != nil {
		return rows, err
	}
	if rows.prereqs, err = database.ListRequisiteLinks(ctx, q, models.Prerequisite); err != nil {
		return rows, err
	}
	if rows.coreqs, err = database.ListRequisiteLinks(ctx, q, models.Corequisite); err != nil {
		return rows, err
	}
	return rows, nil
}

// BuildGraph reads every course and link row and indexes them.
func (s *Service) BuildGraph(ctx context.Context) (*Graph, error) {
	var rows graphRows
	err := s.inTx(ctx, "build_graph", func(q database.Querier) error {
		var err error
		rows, err = loadGraphRows(ctx, q)
		return err
	})
	if err != nil {
		return nil, err
	}

	g := BuildGraph(rows.courses, rows.prereqs, rows.coreqs)
	metrics.GraphCourses.Set(float64(len(g.courses)))
	return g, nil
}
