package domain

// LockFormatVersion is the current Lingo.lock schema version.
const LockFormatVersion = 1

// LockSource is the origin descriptor of a lock record.
type LockSource struct {
	Type OriginKind
	URI  string
}

// LockRecord is the persisted form of one Selection entry.
type LockRecord struct {
	Name     string
	Version  Version
	Source   LockSource
	Tag      string
	Rev      string
	Checksum string
	// Direct marks packages listed in the project manifest.
	Direct bool
}

// Origin rebuilds the origin the record was fetched from, pinned to its revision.
func (r LockRecord) Origin() Origin {
	o := Origin{Kind: r.Source.Type, Location: r.Source.URI, Tag: r.Tag}
	if r.Source.Type == OriginGit {
		o.Rev = r.Rev
	}
	return o
}

// Lock is the persisted record of a Selection.
type Lock struct {
	Version  int
	Packages []LockRecord
}

// NewLock converts a selection into lock records, preserving its order.
func NewLock(sel Selection) *Lock {
	l := &Lock{
		Version:  LockFormatVersion,
		Packages: make([]LockRecord, 0, len(sel)),
	}
	for _, n := range sel {
		l.Packages = append(l.Packages, LockRecord{
			Name:    n.Name,
			Version: n.Version,
			Source: LockSource{
				Type: n.Ref.Origin.Kind,
				URI:  n.Ref.Origin.Location,
			},
			Tag:      n.Ref.Origin.Tag,
			Rev:      n.Revision,
			Checksum: n.Hash,
			Direct:   n.Direct,
		})
	}
	return l
}

// Record returns the record for name.
func (l *Lock) Record(name string) (LockRecord, bool) {
	for _, r := range l.Packages {
		if r.Name == name {
			return r, true
		}
	}
	return LockRecord{}, false
}
