package tlex

import (
	"github.com/llxisdsh/pb"
)

type profilePtr[P any] interface {
	*P
	Add(*P)
	Consistent(uint64) bool
}

// ProfileSet hands out labelled profile blocks and sums them after the
// workers join. Get is safe for concurrent use; the block it returns is
// not, so every worker should ask for its own label. The zero value is
// ready to use.
//
// Usually instantiated through one of the aliases:
//
//	var profs tlex.HTMProfileSet
//	go worker(m.NewHandle(profs.Get("worker-0")))
//	...
//	total := profs.Sum()
type ProfileSet[P any, PP profilePtr[P]] struct {
	m pb.MapOf[string, PP]
}

// ProfileSet aliases for the three profile kinds.
type (
	NullProfileSet  = ProfileSet[NullProfile, *NullProfile]
	PlainProfileSet = ProfileSet[Profile, *Profile]
	HTMProfileSet   = ProfileSet[HTMProfile, *HTMProfile]
)

// Get returns the profile block registered under label, creating it on
// first use.
func (s *ProfileSet[P, PP]) Get(label string) PP {
	p, _ := s.m.ProcessEntry(label,
		func(l *pb.EntryOf[string, PP]) (*pb.EntryOf[string, PP], PP, bool) {
			if l != nil {
				return nil, l.Value, true
			}
			v := PP(new(P))
			return &pb.EntryOf[string, PP]{Value: v}, v, false
		})
	return p
}

// Range calls f for each registered block until f returns false.
func (s *ProfileSet[P, PP]) Range(f func(label string, p PP) bool) {
	s.m.Range(f)
}

// Sum returns a fresh block holding the totals of every registered block.
// Only meaningful once the workers using the blocks have stopped.
func (s *ProfileSet[P, PP]) Sum() PP {
	total := PP(new(P))
	s.m.Range(func(_ string, p PP) bool {
		total.Add((*P)(p))
		return true
	})
	return total
}
