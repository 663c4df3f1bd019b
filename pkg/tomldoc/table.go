package tomldoc

import (
	"slices"
	"strings"
)

// Table is a view of one top-level table of a [Document]. It covers the
// key/value entries under the table's own header, dotted keys at the document
// root that start with the table name (dependencies.serde = "1") and every
// sub-table section whose header starts with the table name, e.g.
// [dependencies.serde].
type Table struct {
	doc  *Document
	name string
}

// Table returns the top-level table called name. It reports false when the
// document defines name in none of the forms above, which includes the cases
// where name is absent, a scalar, an array, an inline table or an array of
// tables.
func (d *Document) Table(name string) (*Table, bool) {
	t := &Table{doc: d, name: name}
	for _, sec := range d.sections {
		if h := sec.header; h != nil && h.kind == exprArrayTable && len(h.key) == 1 && h.key[0] == name {
			return nil, false
		}
	}
	if t.section() == nil && len(t.runs()) == 0 && len(t.dotted()) == 0 {
		return nil, false
	}
	return t, true
}

// Keys returns the table's keys in document order.
func (t *Table) Keys() []string {
	var keys []string
	seen := make(map[string]bool)
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for _, e := range t.dotted() {
		add(e.name)
	}
	if sec := t.section(); sec != nil {
		entries, _ := splitEntries(sec.body)
		for _, e := range entries {
			add(e.name)
		}
	}
	for _, r := range t.runs() {
		for _, sec := range t.doc.sections[r[0]:r[1]] {
			add(sec.header.key[1])
		}
	}
	return keys
}

// Sort orders the table's entries by key and reports whether anything
// moved. Key/value entries under the table header are sorted among
// themselves, as are dotted root keys and each contiguous run of sub-table
// sections. Comments directly above an entry or sub-table header move with
// it; blank lines separating entries stay where they are. Values are never
// touched.
func (t *Table) Sort() bool {
	changed := t.sortDotted()
	if sec := t.section(); sec != nil && sortBody(sec) {
		changed = true
	}
	for _, r := range t.runs() {
		if sortSections(t.doc.sections[r[0]:r[1]]) {
			changed = true
		}
	}
	return changed
}

// section returns the section headed by [name], if any.
func (t *Table) section() *section {
	for _, sec := range t.doc.sections {
		h := sec.header
		if h != nil && h.kind == exprTable && len(h.key) == 1 && h.key[0] == t.name {
			return sec
		}
	}
	return nil
}

// dotted returns the root entries keyed name.<key>, named by <key>.
func (t *Table) dotted() []entry {
	entries, _ := splitEntries(t.doc.sections[0].body)
	var out []entry
	for _, e := range entries {
		if t.isDotted(e.key) {
			e.name = e.key[1]
			out = append(out, e)
		}
	}
	return out
}

func (t *Table) isDotted(k Key) bool {
	return len(k) > 1 && k[0] == t.name
}

// sortDotted sorts the dotted root entries among the slots they occupy;
// other root keys keep their positions.
func (t *Table) sortDotted() bool {
	root := t.doc.sections[0]
	entries, trailing := splitEntries(root.body)

	var slots []int
	var dotted []entry
	for i, e := range entries {
		if t.isDotted(e.key) {
			e.name = e.key[1]
			slots = append(slots, i)
			dotted = append(dotted, e)
		}
	}
	if !sortEntries(dotted) {
		return false
	}
	for j, i := range slots {
		entries[i] = dotted[j]
	}
	root.body = joinEntries(entries, trailing)
	return true
}

// runs returns [start, end) index pairs of contiguous sub-table sections.
func (t *Table) runs() [][2]int {
	var runs [][2]int
	start := -1
	for i, sec := range t.doc.sections {
		if t.isSubTable(sec) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, [2]int{start, i})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, [2]int{start, len(t.doc.sections)})
	}
	return runs
}

func (t *Table) isSubTable(sec *section) bool {
	h := sec.header
	return h != nil && len(h.key) > 1 && h.key[0] == t.name
}

// entry is a key/value expression with the trivia directly above it. name is
// the key segment it sorts by.
type entry struct {
	name  string
	key   Key
	exprs []expr
}

func compareEntries(a, b entry) int {
	return strings.Compare(a.name, b.name)
}

// splitEntries groups body into entries named by their first key segment;
// trivia after the last key/value is returned separately and stays at the end.
func splitEntries(body []expr) (entries []entry, trailing []expr) {
	var pending []expr
	for _, e := range body {
		pending = append(pending, e)
		if e.kind == exprKeyValue {
			entries = append(entries, entry{name: e.key[0], key: e.key, exprs: pending})
			pending = nil
		}
	}
	return entries, pending
}

func joinEntries(entries []entry, trailing []expr) []expr {
	var body []expr
	for _, e := range entries {
		body = append(body, e.exprs...)
	}
	return append(body, trailing...)
}

// splitBlank returns the blank lines at the start of exprs and the rest.
func splitBlank(exprs []expr) (blank, rest []expr) {
	i := 0
	for i < len(exprs) && exprs[i].kind == exprBlank {
		i++
	}
	return exprs[:i], exprs[i:]
}

// sortEntries stable-sorts entries in place. Leading blank lines stay with
// the slot, not the entry.
func sortEntries(entries []entry) bool {
	if slices.IsSortedFunc(entries, compareEntries) {
		return false
	}
	gaps := make([][]expr, len(entries))
	for i := range entries {
		gaps[i], entries[i].exprs = splitBlank(entries[i].exprs)
	}
	slices.SortStableFunc(entries, compareEntries)
	for i := range entries {
		entries[i].exprs = slices.Concat(gaps[i], entries[i].exprs)
	}
	return true
}

func sortBody(sec *section) bool {
	entries, trailing := splitEntries(sec.body)
	if !sortEntries(entries) {
		return false
	}
	sec.body = joinEntries(entries, trailing)
	return true
}

// sortSections stable-sorts a run of sub-table sections in place. As with
// entries, blank lines above a header stay with the slot.
func sortSections(run []*section) bool {
	cmpSection := func(a, b *section) int {
		return strings.Compare(a.header.key[1], b.header.key[1])
	}
	if slices.IsSortedFunc(run, cmpSection) {
		return false
	}
	gaps := make([][]expr, len(run))
	for i, sec := range run {
		gaps[i], sec.lead = splitBlank(sec.lead)
	}
	slices.SortStableFunc(run, cmpSection)
	for i, sec := range run {
		sec.lead = slices.Concat(gaps[i], sec.lead)
	}
	return true
}
