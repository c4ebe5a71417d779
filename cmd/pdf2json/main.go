// Command pdf2json converts a PDF into a JSON document of pages, paragraphs
// and tables.
package main

import (
	"os"

	"github.com/pyhub-apps/pdf2json/internal/app"
)

func main() {
	os.Exit(app.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
