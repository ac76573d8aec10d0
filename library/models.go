package library

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the calendar-date encoding used for loan and due dates.
const DateFormat = "2006-01-02"

// historyTimeFormat stamps profile change-log entries.
const historyTimeFormat = "2006-01-02 15:04:05"

// Member represents a registered library member. The ID is caller-supplied
// and acts as the member's primary key.
type Member struct {
	ID      string
	Name    string
	Contact string

	// UpdateHistory is append-only: entries are added by UpdateInfo and
	// never removed.
	UpdateHistory []string
}

// NewMember creates a member with an empty change history.
func NewMember(id, name, contact string) *Member {
	return &Member{ID: id, Name: name, Contact: contact}
}

// Display formats the member's current profile on one line.
func (m *Member) Display() string {
	return fmt.Sprintf("Member ID: %s, Name: %s, Contact: %s", m.ID, m.Name, m.Contact)
}

// UpdateInfo applies a new name and contact. All fields changed by one call
// are described in a single timestamped history entry; if nothing changed,
// no entry is recorded.
func (m *Member) UpdateInfo(name, contact string, now time.Time) {
	var changes []string
	if m.Name != name {
		changes = append(changes, fmt.Sprintf("Name: %s -> %s", m.Name, name))
		m.Name = name
	}
	if m.Contact != contact {
		changes = append(changes, fmt.Sprintf("Contact: %s -> %s", m.Contact, contact))
		m.Contact = contact
	}
	if len(changes) > 0 {
		entry := fmt.Sprintf("[%s] %s", now.Format(historyTimeFormat), strings.Join(changes, ", "))
		m.UpdateHistory = append(m.UpdateHistory, entry)
	}
}

// PublicationInfo is the metadata shared by every publication variant.
type PublicationInfo struct {
	Title  string
	Author string
	Year   int
}

// Publication is implemented by every catalog item variant. Fields are set
// at construction and never mutated; the library exposes no edit operation.
type Publication interface {
	// Info returns the shared metadata.
	Info() PublicationInfo
	// Display formats the publication for search results and loan lines.
	Display() string
	// Kind returns a short variant tag, e.g. "Book".
	Kind() string
}

// Book is currently the only publication variant.
type Book struct {
	PublicationInfo
	ISBN  string
	Genre string
}

// NewBook creates a book.
func NewBook(title, author string, year int, isbn, genre string) *Book {
	return &Book{
		PublicationInfo: PublicationInfo{Title: title, Author: author, Year: year},
		ISBN:            isbn,
		Genre:           genre,
	}
}

func (b *Book) Info() PublicationInfo { return b.PublicationInfo }

func (b *Book) Display() string {
	return fmt.Sprintf("Book: %s by %s (%d), Genre: %s, ISBN: %s",
		b.Title, b.Author, b.Year, b.Genre, b.ISBN)
}

func (b *Book) Kind() string { return "Book" }

// Loan records one borrow transaction. It references the member and
// publication held by the Library rather than copying them, so profile
// updates stay visible through existing loans.
type Loan struct {
	ID          string
	Member      *Member
	Publication Publication
	LoanDate    string
	DueDate     string
	Returned    bool
}

// Display formats the loan with its current status.
func (l *Loan) Display() string {
	status := "Active"
	if l.Returned {
		status = "Returned"
	}
	return fmt.Sprintf("%s loaned to %s from %s to %s - %s",
		l.Publication.Display(), l.Member.Name, l.LoanDate, l.DueDate, status)
}

// MemberHistory bundles everything known about a member: the profile, the
// member's loans partitioned by status, and the profile change log.
type MemberHistory struct {
	Member        *Member
	ActiveLoans   []*Loan
	ReturnedLoans []*Loan
	UpdateHistory []string
}
