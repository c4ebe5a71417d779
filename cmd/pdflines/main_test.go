package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/pdf2json/internal/pdftest"
	"github.com/pyhub-apps/pdf2json/pkg/pdf"
	"github.com/pyhub-apps/pdf2json/pkg/structure"
)

func TestReport(t *testing.T) {
	path := pdftest.WriteFile(t, "doc.pdf", pdftest.Text(72, 720, "OVERVIEW", "Plain body text"))

	doc, err := pdf.Open(path)
	require.NoError(t, err)
	defer doc.Close()

	var buf bytes.Buffer
	report(&buf, doc, structure.NewClassifier(), true)

	out := buf.String()
	assert.Contains(t, out, "=== Page 1 ===")
	assert.Contains(t, out, "section (upper-case)")
	assert.Regexp(t, `(?m)^body\s+Plain body text$`, out)
	assert.Contains(t, out, "Characters:")
}

func TestReport_SubsectionFirst(t *testing.T) {
	path := pdftest.WriteFile(t, "doc.pdf", pdftest.Text(72, 720, "OVERVIEW"))

	doc, err := pdf.Open(path)
	require.NoError(t, err)
	defer doc.Close()

	var buf bytes.Buffer
	report(&buf, doc, structure.NewClassifier(structure.SubsectionFirstRules()...), false)

	assert.Contains(t, buf.String(), "subsection (short-upper-case)")
	assert.NotContains(t, buf.String(), "Characters:")
}

func TestCommand_RejectsUnknownPrecedence(t *testing.T) {
	path := pdftest.WriteFile(t, "doc.pdf", pdftest.Text(72, 720, "x"))

	cmd := newCommand()
	cmd.SetArgs([]string{"--precedence", "bogus", path})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}
