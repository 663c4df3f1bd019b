package tomldoc

import (
	"bytes"
)

// section is a table header together with the expressions that follow it up
// to the next header. The root section has no header.
type section struct {
	lead   []expr // comments and blank lines directly above the header
	header *expr
	body   []expr
}

func (s *section) writeTo(buf *bytes.Buffer) {
	for _, e := range s.lead {
		buf.Write(e.text)
	}
	if s.header != nil {
		buf.Write(s.header.text)
	}
	for _, e := range s.body {
		buf.Write(e.text)
	}
}

// bom is the UTF-8 byte order mark. TOML allows it at the start of a file.
var bom = []byte("\xef\xbb\xbf")

// Document is a parsed TOML document that remembers its exact source text.
type Document struct {
	sections []*section
	trailing []expr // comments and blank lines after the last expression
	newline  string
	bom      bool
	// trimEOL is set when the source did not end with a newline. Parse gives
	// the last expression one so that it can be moved safely, and Bytes
	// takes it off again.
	trimEOL bool
}

// Parse splits src into expressions and groups them by table header.
// It does not validate values; see the package documentation.
func Parse(src []byte) (*Document, error) {
	d := &Document{}
	if bytes.HasPrefix(src, bom) {
		d.bom = true
		src = src[len(bom):]
	}

	s := &scanner{src: src}
	var exprs []expr
	for !s.eof() {
		e, err := s.next()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}

	d.newline = detectNewline(src)
	if n := len(exprs); n > 0 && !bytes.HasSuffix(exprs[n-1].text, []byte("\n")) {
		exprs[n-1].text = append(exprs[n-1].text, d.newline...)
		d.trimEOL = true
	}
	d.sections, d.trailing = groupSections(exprs)
	return d, nil
}

// Bytes serializes the document. For a document that was never reordered the
// result equals the parsed source.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	if d.bom {
		buf.Write(bom)
	}
	for _, sec := range d.sections {
		sec.writeTo(&buf)
	}
	for _, e := range d.trailing {
		buf.Write(e.text)
	}
	out := buf.Bytes()
	if d.trimEOL {
		out = bytes.TrimSuffix(out, []byte(d.newline))
	}
	return out
}

// groupSections splits exprs at table headers. Trivia directly above a
// header becomes that section's lead; trivia after the last expression is
// returned separately.
func groupSections(exprs []expr) ([]*section, []expr) {
	cur := &section{}
	sections := []*section{cur}
	var pending []expr
	for _, e := range exprs {
		switch {
		case e.isTrivia():
			pending = append(pending, e)
		case e.isHeader():
			h := e
			cur = &section{lead: pending, header: &h}
			sections = append(sections, cur)
			pending = nil
		default:
			cur.body = append(cur.body, pending...)
			cur.body = append(cur.body, e)
			pending = nil
		}
	}
	return sections, pending
}

func detectNewline(src []byte) string {
	if i := bytes.IndexByte(src, '\n'); i > 0 && src[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
