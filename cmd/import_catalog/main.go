package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"library-catalog/library"
)

// import_catalog builds a SQLite seed catalog from a CSV file with rows of
// title,author,year,isbn,genre. A header row is skipped automatically.
func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <books.csv> <catalog.db>\n", os.Args[0])
		os.Exit(1)
	}
	csvPath, dbPath := os.Args[1], os.Args[2]

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	catalog, err := library.OpenCatalog(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening catalog: %v\n", err)
		os.Exit(1)
	}
	defer catalog.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 5

	successCount := 0
	errorCount := 0
	line := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			fmt.Printf("Line %d: ERROR - %v\n", line, err)
			errorCount++
			continue
		}

		title := strings.TrimSpace(record[0])
		author := strings.TrimSpace(record[1])
		yearStr := strings.TrimSpace(record[2])
		isbn := strings.TrimSpace(record[3])
		genre := strings.TrimSpace(record[4])

		year, err := strconv.Atoi(yearStr)
		if err != nil {
			if line == 1 {
				// Header row
				continue
			}
			fmt.Printf("Line %d: ERROR - invalid year %q\n", line, yearStr)
			errorCount++
			continue
		}

		fmt.Printf("Importing: %s by %s... ", title, author)
		id, err := catalog.AddBook(library.NewBook(title, author, year, isbn, genre))
		if err != nil {
			fmt.Printf("ERROR - %v\n", err)
			errorCount++
			continue
		}
		fmt.Printf("SUCCESS (ID: %d)\n", id)
		successCount++
	}

	fmt.Printf("\nImport complete!\n")
	fmt.Printf("Successfully imported: %d books\n", successCount)
	fmt.Printf("Errors: %d\n", errorCount)

	if successCount > 0 {
		fmt.Println("\nCatalog contents:")
		books, err := catalog.Books()
		if err != nil {
			fmt.Printf("Error retrieving books: %v\n", err)
			return
		}
		fmt.Printf("%-40s %-25s %-6s %-15s %s\n", "Title", "Author", "Year", "ISBN", "Genre")
		fmt.Println(strings.Repeat("-", 100))
		for _, b := range books {
			fmt.Printf("%-40s %-25s %-6d %-15s %s\n",
				truncateString(b.Title, 40), truncateString(b.Author, 25), b.Year, b.ISBN, b.Genre)
		}
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
