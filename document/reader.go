package document

import "io"

// Reader returns a reader for the bytes of a document's text, starting at
// offset. The document must not be modified while reading.
func (doc *Document) Reader(offset int) io.Reader {
	return &docReader{doc: doc, cursor: offset}
}

type docReader struct {
	doc    *Document
	cursor int
}

func (dr *docReader) Read(p []byte) (n int, err error) {
	l := len(p)
	if dr.cursor+l > dr.doc.Len() {
		l = dr.doc.Len() - dr.cursor
		if l <= 0 {
			return 0, io.EOF
		}
	}
	s, err := dr.doc.Get(dr.cursor, l)
	if err != nil {
		return 0, err
	}
	n = copy(p, s)
	dr.cursor += n
	return n, nil
}
