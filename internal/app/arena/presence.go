package arena

// presenceTable maps display names to connection session IDs. At most one
// connection per display name: a second join with the same name overwrites the
// mapping and the earlier connection is orphaned from presence tracking.
// Owned by the hub loop.
type presenceTable struct {
	byName map[string]string
}

func newPresenceTable() *presenceTable {
	return &presenceTable{byName: make(map[string]string)}
}

// join records name -> sessionID, last join wins. It returns the online count.
func (p *presenceTable) join(name, sessionID string) int {
	p.byName[name] = sessionID
	return len(p.byName)
}

// leave removes name's mapping, but only while it still points at sessionID;
// a mapping taken over by a newer connection is left alone. It reports whether
// the mapping was removed and the resulting count.
func (p *presenceTable) leave(name, sessionID string) (bool, int) {
	if current, ok := p.byName[name]; ok && current == sessionID {
		delete(p.byName, name)
		return true, len(p.byName)
	}
	return false, len(p.byName)
}

// count returns the number of distinct display names online.
func (p *presenceTable) count() int {
	return len(p.byName)
}
