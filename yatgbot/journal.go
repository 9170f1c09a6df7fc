package yatgbot

// Entry is the raw outcome of one handler.
type Entry struct {
	Label   string
	Outcome Outcome
}

// Journal records handler outcomes of one dispatch in execution order.
type Journal struct {
	entries []Entry
	stopped bool
}

func newJournal(capacity int) *Journal {
	return &Journal{
		entries: make([]Entry, 0, capacity),
	}
}

func (j *Journal) record(label string, outcome Outcome) {
	j.entries = append(j.entries, Entry{
		Label:   label,
		Outcome: outcome,
	})
}

// Entries returns a copy of the recorded outcomes.
func (j *Journal) Entries() []Entry {
	entries := make([]Entry, len(j.entries))
	copy(entries, j.entries)

	return entries
}

// Get returns the outcome recorded under label.
func (j *Journal) Get(label string) (Outcome, bool) {
	for _, entry := range j.entries {
		if entry.Label == label {
			return entry.Outcome, true
		}
	}

	return nil, false
}

func (j *Journal) Len() int {
	return len(j.entries)
}

// Stopped reports whether a falsy outcome ended the chain early.
func (j *Journal) Stopped() bool {
	return j.stopped
}
