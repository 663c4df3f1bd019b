// Package tomldoc provides a format-preserving view of TOML documents.
//
// # Overview
//
// A [Document] keeps every byte of its source. The text is split into
// expressions (key/value pairs, table headers, comments and blank lines) which
// are grouped into sections, one per table header. Nothing is re-encoded: an
// untouched document serializes back to exactly the input.
//
// The only mutation offered is reordering. [Table.Sort] moves key/value
// expressions and sub-table sections so their keys appear in ascending byte
// order. Comments directly above an entry travel with it; blank lines that
// separate entries, and trivia at the end of the document, stay put. A
// leading UTF-8 byte order mark is kept.
//
// # Usage
//
//	doc, err := tomldoc.Parse(src)
//	if err != nil {
//	    return err
//	}
//	if t, ok := doc.Table("dependencies"); ok {
//	    t.Sort()
//	}
//	out := doc.Bytes()
//
// # Limitations
//
// The scanner assumes syntactically valid input. Callers that accept untrusted
// files should validate them with a full decoder first; see the manifest
// package. Inline tables are values, not tables, and are never reordered.
package tomldoc
