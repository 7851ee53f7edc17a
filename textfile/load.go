package textfile

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/npillmayer/linetrack/delimit"
	"github.com/npillmayer/linetrack/document"
)

// Load reads a file, which must be a UTF-8 text file, into a new document.
// Lines are delimited by scan, which defaults to delimit.Default() if nil.
func Load(name string, scan delimit.Scanner) (*document.Document, error) {
	file, err := openFile(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	doc, err := Read(file, scan)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	T().Debugf("textfile: loaded %q with %d lines", name, doc.Lines().NumberOfLines())
	return doc, nil
}

// openFile opens an OS file for reading, checking that it is a regular file.
func openFile(name string) (*os.File, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, name)
	}
	return os.Open(name) // just open for read access
}

// Read reads UTF-8 text from r into a new document.
func Read(r io.Reader, scan delimit.Scanner) (*document.Document, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(content) {
		return nil, ErrNotText
	}
	return document.FromString(string(content), scan), nil
}

// Save writes the text of a document to a file, creating or truncating it.
func Save(doc *document.Document, name string) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	if _, err = doc.WriteTo(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
