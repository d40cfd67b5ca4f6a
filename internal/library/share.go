package library

import (
	"fmt"
	"strings"

	"github.com/mrlokans/quotevault/internal/entities"
)

// ShareText renders a quote for share targets:
//
//	"<content>"
//
//	— <author>, <title> (Page <n>)
//
// The page suffix is present only when the quote has a page.
func ShareText(q entities.Quote, b entities.Book) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "\"%s\"\n\n— %s, %s", q.Content, b.Author, b.Title)
	if q.Page != nil {
		fmt.Fprintf(&builder, " (Page %d)", *q.Page)
	}
	return builder.String()
}
