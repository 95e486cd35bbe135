package models

// Sharing is the set of users an item is visible to besides its author.
//
// Invariants:
//   - the author is implicit: never a member, never removable
//   - membership is a set: adding twice leaves one entry
//
// Members are referenced by email value, never by owning pointer, so the
// relation cannot form ownership cycles with identities.
type Sharing struct {
	author  string
	members map[string]struct{}
}

// NewSharing builds an empty sharing set for the authoring owner. Any seed
// emails go through Add, so author and duplicate entries are filtered.
func NewSharing(author string, seed ...string) *Sharing {
	s := &Sharing{author: author, members: make(map[string]struct{})}
	for _, addr := range seed {
		s.Add(addr)
	}
	return s
}

func (s *Sharing) Author() string { return s.author }

// Add inserts an email into the set. Adding the author or an existing
// member is a no-op; Add never fails.
func (s *Sharing) Add(addr string) {
	if addr == "" || addr == s.author {
		return
	}
	s.members[addr] = struct{}{}
}

// Remove deletes an email if present. Removing a non-member or the author
// is a no-op.
func (s *Sharing) Remove(addr string) {
	delete(s.members, addr)
}

// Contains reports membership. The author is not a member.
func (s *Sharing) Contains(addr string) bool {
	_, ok := s.members[addr]
	return ok
}

// Members returns the shared emails, excluding the author, in no
// particular order.
func (s *Sharing) Members() []string {
	out := make([]string, 0, len(s.members))
	for addr := range s.members {
		out = append(out, addr)
	}
	return out
}

func (s *Sharing) Len() int { return len(s.members) }
