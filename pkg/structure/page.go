package structure

// PageSource is what the PDF collaborator reports for one page. An empty Text
// means the page has no extractable text.
type PageSource struct {
	Text   string
	Tables []RawTable
}

// AssemblePage builds the content of one page with DefaultRules: paragraphs
// from the text first, then one table item per raw table in reported order
func AssemblePage(number int, src PageSource) Page {
	return assemblePage(defaultClassifier, number, src)
}

func assemblePage(classifier *Classifier, number int, src PageSource) Page {
	page := Page{
		PageNumber: number,
		Content:    make([]ContentItem, 0),
	}

	if src.Text != "" {
		for _, para := range segment(classifier, src.Text) {
			page.Content = append(page.Content, para)
		}
	}

	for i, rows := range src.Tables {
		page.Content = append(page.Content, NewTable(i, rows))
	}

	return page
}
