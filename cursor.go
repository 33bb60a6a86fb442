package tmx

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"
)

// handlerFunc is called with a child start tag. It may consume the child's
// content from the cursor (or not, the cursor skips whatever is left).
type handlerFunc func(start xml.StartElement) error

// handlers maps child tag names to the func that parses them.
type handlers map[string]handlerFunc

// cursor pulls tokens from a TMX document one at a time.
type cursor struct {
	dec *xml.Decoder
	log *zap.Logger
}

func newCursor(r io.Reader, log *zap.Logger) *cursor {
	return &cursor{dec: xml.NewDecoder(r), log: log}
}

// next returns the next token in the document.
// Char data is only valid until the following call.
func (c *cursor) next() (xml.Token, error) {
	tok, err := c.dec.Token()
	if err == nil {
		return tok, nil
	}
	if isEOF(err) {
		return nil, newError(ErrPrematureEnd, nil, "document ended before we expected")
	}
	return nil, newError(ErrXMLDecoding, err, "")
}

// run hands every child start tag with a registered name to its handler until
// the end tag `closing` is read. That end tag is the only way out besides an
// error. Children without a handler are passed over, but their own children
// are still visited.
func (c *cursor) run(closing string, hs handlers) error {
	for {
		tok, err := c.next()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			h, ok := hs[t.Name.Local]
			if !ok {
				c.log.Debug("skipping tag", zap.String("parent", closing), zap.String("tag", t.Name.Local))
				continue
			}
			if err := h(t); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == closing {
				return nil
			}
		}
	}
}

// text reads all character data of the current element up to & including its
// end tag. Text inside nested elements is ignored.
func (c *cursor) text() (string, error) {
	buf := strings.Builder{}
	depth := 0
	for {
		tok, err := c.next()
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.CharData:
			if depth == 0 {
				buf.Write(t)
			}
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				return buf.String(), nil
			}
			depth--
		}
	}
}

// skip consumes the rest of the current element, children included, up to
// & including its end tag.
func (c *cursor) skip() error {
	depth := 0
	for {
		tok, err := c.next()
		if err != nil {
			return err
		}

		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
}

// skipTag is a handlerFunc for tags whose content (properties included)
// belongs to something we don't model.
func (c *cursor) skipTag(start xml.StartElement) error {
	c.log.Debug("skipping tag content", zap.String("tag", start.Name.Local))
	return c.skip()
}

// isEOF reports whether err means the input ran out. encoding/xml reports
// running out inside an open element as a syntax error rather than io.EOF.
func isEOF(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var serr *xml.SyntaxError
	return errors.As(err, &serr) && serr.Msg == "unexpected EOF"
}
