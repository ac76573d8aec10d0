package library

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SearchType selects which publication field FindPublications matches.
type SearchType string

const (
	SearchByTitle  SearchType = "title"
	SearchByAuthor SearchType = "author"
	SearchByGenre  SearchType = "genre"
)

// Library is the aggregate root. It owns the member, publication and loan
// collections; all mutations go through its methods. It is not safe for
// concurrent use.
type Library struct {
	members      []*Member
	publications []Publication
	loans        []*Loan

	now func() time.Time
}

// New creates an empty library. The clock supplies "now" for history
// timestamps and overdue checks; pass nil to use time.Now.
func New(now func() time.Time) *Library {
	if now == nil {
		now = time.Now
	}
	return &Library{now: now}
}

// ------------------ Members ------------------

// AddMember registers a member. Duplicate IDs are not rejected; lookups
// resolve to the earliest-added match.
func (l *Library) AddMember(m *Member) {
	l.members = append(l.members, m)
}

// RemoveMember deletes every member with the given id. Removing an unknown
// id succeeds silently, but removal is refused while the member still has
// an active loan so that no active loan dangles.
func (l *Library) RemoveMember(memberID string) error {
	for _, loan := range l.loans {
		if !loan.Returned && loan.Member.ID == memberID {
			return fmt.Errorf("remove member %s: %w", memberID, ErrMemberHasLoans)
		}
	}
	kept := l.members[:0]
	for _, m := range l.members {
		if m.ID != memberID {
			kept = append(kept, m)
		}
	}
	l.members = kept
	return nil
}

// UpdateMember looks the member up by id and applies the new profile,
// recording the change in the member's history.
func (l *Library) UpdateMember(memberID, name, contact string) error {
	m := l.FindMember(memberID)
	if m == nil {
		return fmt.Errorf("member %s: %w", memberID, ErrNotFound)
	}
	m.UpdateInfo(name, contact, l.now())
	return nil
}

// FindMember returns the first member with the given id, or nil.
func (l *Library) FindMember(memberID string) *Member {
	for _, m := range l.members {
		if m.ID == memberID {
			return m
		}
	}
	return nil
}

// ------------------ Publications ------------------

// AddPublication adds an item to the catalog. Publications are never
// removed or edited once added.
func (l *Library) AddPublication(p Publication) {
	l.publications = append(l.publications, p)
}

// FindPublications returns every publication whose selected field contains
// term, case-insensitively, in catalog order. Genre searches match books
// only; an unknown search type matches nothing.
func (l *Library) FindPublications(term string, by SearchType) []Publication {
	matches := []Publication{}
	switch by {
	case SearchByTitle, SearchByAuthor, SearchByGenre:
	default:
		return matches
	}

	term = strings.ToLower(term)
	for _, p := range l.publications {
		var field string
		switch by {
		case SearchByTitle:
			field = p.Info().Title
		case SearchByAuthor:
			field = p.Info().Author
		case SearchByGenre:
			b, ok := p.(*Book)
			if !ok {
				continue
			}
			field = b.Genre
		}
		if strings.Contains(strings.ToLower(field), term) {
			matches = append(matches, p)
		}
	}
	return matches
}

func (l *Library) findPublicationByTitle(title string) Publication {
	for _, p := range l.publications {
		if p.Info().Title == title {
			return p
		}
	}
	return nil
}

// ------------------ Circulation ------------------

// BorrowPublication loans the named publication to the member. Both dates
// must be YYYY-MM-DD. When several publications share a title, the
// earliest-added one is loaned; a publication with an active loan cannot
// be borrowed again until it is returned.
func (l *Library) BorrowPublication(memberID, title, loanDate, dueDate string) (*Loan, error) {
	for _, d := range []string{loanDate, dueDate} {
		if _, err := time.Parse(DateFormat, d); err != nil {
			return nil, fmt.Errorf("date %q: %w", d, ErrInvalidDate)
		}
	}

	member := l.FindMember(memberID)
	if member == nil {
		return nil, fmt.Errorf("member %s: %w", memberID, ErrNotFound)
	}
	pub := l.findPublicationByTitle(title)
	if pub == nil {
		return nil, fmt.Errorf("publication %q: %w", title, ErrNotFound)
	}
	if l.activeLoanByTitle(title) != nil {
		return nil, fmt.Errorf("publication %q: %w", title, ErrAlreadyLoaned)
	}

	loan := &Loan{
		ID:          uuid.NewString(),
		Member:      member,
		Publication: pub,
		LoanDate:    loanDate,
		DueDate:     dueDate,
	}
	l.loans = append(l.loans, loan)
	return loan, nil
}

// ReturnPublication marks the first active loan for the title as returned.
func (l *Library) ReturnPublication(title string) error {
	loan := l.activeLoanByTitle(title)
	if loan == nil {
		return fmt.Errorf("publication %q: %w", title, ErrNoActiveLoan)
	}
	loan.Returned = true
	return nil
}

func (l *Library) activeLoanByTitle(title string) *Loan {
	for _, loan := range l.loans {
		if !loan.Returned && loan.Publication.Info().Title == title {
			return loan
		}
	}
	return nil
}

// ------------------ Reports ------------------

// GenerateOverdueReport lists every active loan whose due date lies before
// the current time, one Display line each. A malformed stored due date is
// reported as ErrInvalidDate instead of aborting report generation.
func (l *Library) GenerateOverdueReport() (string, error) {
	today := l.now()
	var lines []string
	for _, loan := range l.loans {
		if loan.Returned {
			continue
		}
		due, err := time.Parse(DateFormat, loan.DueDate)
		if err != nil {
			return "", fmt.Errorf("due date %q: %w", loan.DueDate, ErrInvalidDate)
		}
		if due.Before(today) {
			lines = append(lines, loan.Display())
		}
	}
	if len(lines) == 0 {
		return "No overdue loans.", nil
	}
	return strings.Join(lines, "\n"), nil
}

// GenerateLoanReport lists every active loan, one Display line each.
func (l *Library) GenerateLoanReport() string {
	var lines []string
	for _, loan := range l.loans {
		if !loan.Returned {
			lines = append(lines, loan.Display())
		}
	}
	if len(lines) == 0 {
		return "No active loans."
	}
	return strings.Join(lines, "\n")
}

// MemberHistory collects the member's profile, loans partitioned by
// status, and the profile change log.
func (l *Library) MemberHistory(memberID string) (*MemberHistory, error) {
	m := l.FindMember(memberID)
	if m == nil {
		return nil, fmt.Errorf("member %s: %w", memberID, ErrNotFound)
	}
	h := &MemberHistory{Member: m, UpdateHistory: m.UpdateHistory}
	for _, loan := range l.loans {
		if loan.Member.ID != memberID {
			continue
		}
		if loan.Returned {
			h.ReturnedLoans = append(h.ReturnedLoans, loan)
		} else {
			h.ActiveLoans = append(h.ActiveLoans, loan)
		}
	}
	return h, nil
}

// ------------------ Listing ------------------

// Members returns the registered members in insertion order.
func (l *Library) Members() []*Member { return l.members }

// Publications returns the catalog in insertion order.
func (l *Library) Publications() []Publication { return l.publications }

// Loans returns every loan ever created, oldest first. Returned loans are
// kept as history.
func (l *Library) Loans() []*Loan { return l.loans }

// LoadCatalog appends every book in the seed catalog to the library and
// reports how many were loaded.
func (l *Library) LoadCatalog(c *Catalog) (int, error) {
	books, err := c.Books()
	if err != nil {
		return 0, err
	}
	for _, b := range books {
		l.AddPublication(b)
	}
	return len(books), nil
}
