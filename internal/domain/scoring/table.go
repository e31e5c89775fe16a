package scoring

// Table accumulates integer evidence per label. Labels keep the order in
// which they were declared; that order breaks ties.
type Table struct {
	labels []string
	scores map[string]int
}

// NewTable returns a zeroed table over labels.
func NewTable(labels ...string) *Table {
	t := &Table{labels: labels, scores: make(map[string]int, len(labels))}
	for _, l := range labels {
		t.scores[l] = 0
	}
	return t
}

// Add adds n to label. Unknown labels are ignored.
func (t *Table) Add(label string, n int) {
	if _, ok := t.scores[label]; ok {
		t.scores[label] += n
	}
}

// Score returns the accumulated score of label.
func (t *Table) Score(label string) int { return t.scores[label] }

// Best returns the label with the strictly highest positive score. When
// several labels share it, the first declared wins. With no positive score it
// returns "".
func (t *Table) Best() string {
	best, top := "", 0
	for _, l := range t.labels {
		if s := t.scores[l]; s > top {
			best, top = l, s
		}
	}
	return best
}
