package portal

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Error is a rejection reported by the portal itself, as opposed to a
// transport failure reaching it.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("portal: submission rejected: %s", e.Message)
}

// AsError unwraps err into a portal-side rejection, if it is one.
func AsError(err error) (*Error, bool) {
	var perr *Error
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}

// checkResponse inspects the portal's XML answer. A document whose root
// element is <Error> signals a rejected submission; anything else counts as
// accepted.
func checkResponse(body []byte) error {
	decoder := xml.NewDecoder(bytes.NewReader(body))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("portal: parse response: %w", err)
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "Error" {
			return nil
		}

		var message struct {
			Text string `xml:",chardata"`
		}
		if err := decoder.DecodeElement(&message, &start); err != nil {
			return fmt.Errorf("portal: parse error response: %w", err)
		}
		return &Error{Message: strings.TrimSpace(message.Text)}
	}
}
