package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"library-catalog/library"

	"github.com/spf13/cobra"
)

const configFile = "librarian.yaml"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:          "librarian",
		Short:        "Interactive library catalog manager",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if catalogPath != "" {
				cfg.Catalog = catalogPath
			}

			lib := library.New(nil)
			if cfg.Catalog != "" {
				cat, err := library.OpenCatalog(cfg.Catalog)
				if err != nil {
					return fmt.Errorf("open catalog: %w", err)
				}
				n, err := lib.LoadCatalog(cat)
				cat.Close()
				if err != nil {
					return fmt.Errorf("load catalog: %w", err)
				}
				fmt.Printf("Loaded %d book(s) from %s\n", n, cfg.Catalog)
			}

			runConsole(lib, cfg)
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "SQLite catalog to seed the library from")
	return cmd
}

func runConsole(lib *library.Library, cfg Config) {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Welcome to the Library Catalog Manager!")
	fmt.Println("Available commands:")
	fmt.Println("  Members: add member, update member, remove member, member history, list members")
	fmt.Println("  Books: add book, list books, search")
	fmt.Println("  Loans: borrow, return")
	fmt.Println("  Reports: loan report, overdue report")
	fmt.Println("  System: exit")

	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		cmd := strings.TrimSpace(scanner.Text())

		switch cmd {
		case "add member":
			handleAddMember(scanner, lib)
		case "update member":
			handleUpdateMember(scanner, lib)
		case "remove member":
			handleRemoveMember(scanner, lib)
		case "member history":
			handleMemberHistory(scanner, lib)
		case "list members":
			handleListMembers(lib)
		case "add book":
			handleAddBook(scanner, lib)
		case "list books":
			handleListBooks(lib)
		case "search":
			handleSearch(scanner, lib)
		case "borrow":
			handleBorrow(scanner, lib, cfg.LoanPeriodDays)
		case "return":
			handleReturn(scanner, lib)
		case "loan report":
			fmt.Println(lib.GenerateLoanReport())
		case "overdue report":
			handleOverdueReport(lib)
		case "exit":
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Println("Unknown command. Type one of the available commands listed above.")
		}
	}
}

// prompt prints a label and reads one trimmed line. ok is false when input
// has been closed.
func prompt(sc *bufio.Scanner, label string) (value string, ok bool) {
	fmt.Print(label)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

func handleAddMember(sc *bufio.Scanner, lib *library.Library) {
	id, ok := prompt(sc, "Member ID: ")
	if !ok {
		return
	}
	name, ok := prompt(sc, "Name: ")
	if !ok {
		return
	}
	contact, ok := prompt(sc, "Contact: ")
	if !ok {
		return
	}

	lib.AddMember(library.NewMember(id, name, contact))
	fmt.Printf("Member %s added successfully.\n", name)
}

func handleUpdateMember(sc *bufio.Scanner, lib *library.Library) {
	id, ok := prompt(sc, "Member ID: ")
	if !ok {
		return
	}
	name, ok := prompt(sc, "New name: ")
	if !ok {
		return
	}
	contact, ok := prompt(sc, "New contact: ")
	if !ok {
		return
	}

	if err := lib.UpdateMember(id, name, contact); err != nil {
		fmt.Println("Error: Member not found!")
		return
	}
	fmt.Println("Member information updated successfully.")
}

func handleRemoveMember(sc *bufio.Scanner, lib *library.Library) {
	id, ok := prompt(sc, "Member ID: ")
	if !ok {
		return
	}

	if err := lib.RemoveMember(id); err != nil {
		fmt.Println("Error: Member still has active loans. Return them first.")
		return
	}
	fmt.Println("Member removed successfully.")
}

func handleMemberHistory(sc *bufio.Scanner, lib *library.Library) {
	id, ok := prompt(sc, "Member ID: ")
	if !ok {
		return
	}

	history, err := lib.MemberHistory(id)
	if err != nil {
		fmt.Println("Error: Member not found!")
		return
	}

	fmt.Println(history.Member.Display())

	fmt.Println("\nProfile updates:")
	if len(history.UpdateHistory) == 0 {
		fmt.Println("  (none)")
	}
	for _, entry := range history.UpdateHistory {
		fmt.Printf("  %s\n", entry)
	}

	fmt.Println("\nActive loans:")
	if len(history.ActiveLoans) == 0 {
		fmt.Println("  (none)")
	}
	for _, loan := range history.ActiveLoans {
		fmt.Printf("  %s (Due: %s)\n", loan.Publication.Info().Title, loan.DueDate)
	}

	fmt.Println("\nReturned loans:")
	if len(history.ReturnedLoans) == 0 {
		fmt.Println("  (none)")
	}
	for _, loan := range history.ReturnedLoans {
		fmt.Printf("  %s\n", loan.Publication.Info().Title)
	}
}

func handleListMembers(lib *library.Library) {
	members := lib.Members()
	if len(members) == 0 {
		fmt.Println("No members registered.")
		return
	}

	fmt.Printf("%-10s %-30s %-30s\n", "ID", "Name", "Contact")
	fmt.Println(strings.Repeat("-", 72))
	for _, m := range members {
		fmt.Printf("%-10s %-30s %-30s\n", m.ID, truncateString(m.Name, 30), truncateString(m.Contact, 30))
	}
}

func handleAddBook(sc *bufio.Scanner, lib *library.Library) {
	title, ok := prompt(sc, "Title: ")
	if !ok {
		return
	}
	author, ok := prompt(sc, "Author: ")
	if !ok {
		return
	}
	yearStr, ok := prompt(sc, "Year: ")
	if !ok {
		return
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		fmt.Println("Invalid year format!")
		return
	}
	isbn, ok := prompt(sc, "ISBN: ")
	if !ok {
		return
	}
	genre, ok := prompt(sc, "Genre: ")
	if !ok {
		return
	}

	lib.AddPublication(library.NewBook(title, author, year, isbn, genre))
	fmt.Printf("Publication '%s' added successfully.\n", title)
}

func handleListBooks(lib *library.Library) {
	pubs := lib.Publications()
	if len(pubs) == 0 {
		fmt.Println("No publications in library.")
		return
	}

	// Titles with an active loan are shown as on loan.
	onLoan := make(map[string]bool)
	for _, loan := range lib.Loans() {
		if !loan.Returned {
			onLoan[loan.Publication.Info().Title] = true
		}
	}

	fmt.Printf("%-30s %-25s %-6s %-10s %s\n", "Title", "Author", "Year", "Status", "Details")
	fmt.Println(strings.Repeat("-", 100))
	for _, p := range pubs {
		info := p.Info()
		status := "Available"
		if onLoan[info.Title] {
			status = "On loan"
		}
		details := p.Kind()
		if b, okBook := p.(*library.Book); okBook {
			details = fmt.Sprintf("%s, ISBN %s", b.Genre, b.ISBN)
		}
		fmt.Printf("%-30s %-25s %-6d %-10s %s\n",
			truncateString(info.Title, 30), truncateString(info.Author, 25), info.Year, status, details)
	}
}

func handleSearch(sc *bufio.Scanner, lib *library.Library) {
	term, ok := prompt(sc, "Search term: ")
	if !ok {
		return
	}
	byStr, ok := prompt(sc, "Search by (title/author/genre): ")
	if !ok {
		return
	}

	results := lib.FindPublications(term, library.SearchType(byStr))
	if len(results) == 0 {
		fmt.Println("No publications found.")
		return
	}

	fmt.Printf("Found %d publication(s) matching '%s':\n", len(results), term)
	for _, p := range results {
		fmt.Println(p.Display())
	}
}

func handleBorrow(sc *bufio.Scanner, lib *library.Library, loanPeriodDays int) {
	memberID, ok := prompt(sc, "Member ID: ")
	if !ok {
		return
	}
	title, ok := prompt(sc, "Publication title: ")
	if !ok {
		return
	}
	loanDate, ok := prompt(sc, "Loan date (YYYY-MM-DD, blank for today): ")
	if !ok {
		return
	}
	dueDate, ok := prompt(sc, fmt.Sprintf("Due date (YYYY-MM-DD, blank for +%d days): ", loanPeriodDays))
	if !ok {
		return
	}

	if loanDate == "" {
		loanDate = time.Now().Format(library.DateFormat)
	}
	if dueDate == "" {
		start, err := time.Parse(library.DateFormat, loanDate)
		if err != nil {
			fmt.Println("Invalid date format! Use YYYY-MM-DD.")
			return
		}
		dueDate = start.AddDate(0, 0, loanPeriodDays).Format(library.DateFormat)
	}

	loan, err := lib.BorrowPublication(memberID, title, loanDate, dueDate)
	switch {
	case err == nil:
		fmt.Printf("%s borrowed '%s'.\n", loan.Member.Name, loan.Publication.Info().Title)
	case errors.Is(err, library.ErrAlreadyLoaned):
		fmt.Println("Publication is already loaned!")
	case errors.Is(err, library.ErrInvalidDate):
		fmt.Println("Invalid date format! Use YYYY-MM-DD.")
	default:
		fmt.Println("Member or publication not found!")
	}
}

func handleReturn(sc *bufio.Scanner, lib *library.Library) {
	title, ok := prompt(sc, "Publication title: ")
	if !ok {
		return
	}

	if err := lib.ReturnPublication(title); err != nil {
		fmt.Println("No active loan found for this publication!")
		return
	}
	fmt.Printf("'%s' returned successfully.\n", title)
}

func handleOverdueReport(lib *library.Library) {
	report, err := lib.GenerateOverdueReport()
	if err != nil {
		fmt.Printf("Error generating report: %v\n", err)
		return
	}
	fmt.Println(report)
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength-3] + "..."
}
