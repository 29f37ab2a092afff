package soap

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

const (
	// EnvelopeNamespace пространство имен конверта SOAP 1.1
	EnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"

	ContentType = "text/xml; charset=utf-8"

	FaultClient = "soap:Client"
	FaultServer = "soap:Server"
)

var (
	ErrMalformedEnvelope = errors.New("malformed soap envelope")
	ErrEmptyBody         = errors.New("soap body is empty")
)

type envelope struct {
	XMLName xml.Name `xml:"soap:Envelope"`
	SoapNS  string   `xml:"xmlns:soap,attr"`
	Body    body     `xml:"soap:Body"`
}

// Content сериализуется под именем из своего XMLName
type body struct {
	Content any
}

type faultElement struct {
	XMLName xml.Name `xml:"soap:Fault"`
	Code    string   `xml:"faultcode"`
	String  string   `xml:"faultstring"`
	Detail  string   `xml:"detail,omitempty"`
}

// Fault - SOAP 1.1 fault, полученный от сервера или подготовленный для ответа
type Fault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
	Detail string `xml:"detail"`
}

func (f *Fault) Error() string {
	return fmt.Sprintf("soap fault %s: %s", f.Code, f.String)
}

// Marshal оборачивает content в конверт SOAP 1.1
func Marshal(content any) ([]byte, error) {
	return marshalEnvelope(content)
}

// MarshalFault собирает конверт с soap:Fault
func MarshalFault(code, message, detail string) ([]byte, error) {
	return marshalEnvelope(faultElement{Code: code, String: message, Detail: detail})
}

func marshalEnvelope(content any) ([]byte, error) {
	env := envelope{
		SoapNS: EnvelopeNamespace,
		Body:   body{Content: content},
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(env); err != nil {
		return nil, fmt.Errorf("failed to marshal soap envelope: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadBody читает конверт до первого дочернего элемента soap:Body.
// Возвращает декодер, стоящий сразу после открывающего тега этого элемента.
// soap:Header пропускается.
func ReadBody(r io.Reader) (*xml.Decoder, xml.StartElement, error) {
	d := xml.NewDecoder(r)

	start, err := nextStart(d)
	if err != nil {
		return nil, xml.StartElement{}, err
	}
	if !isEnvelopeElement(start.Name, "Envelope") {
		return nil, xml.StartElement{}, fmt.Errorf("%w: root element is %s", ErrMalformedEnvelope, start.Name.Local)
	}

	for {
		start, err = nextStart(d)
		if err != nil {
			return nil, xml.StartElement{}, err
		}
		if isEnvelopeElement(start.Name, "Body") {
			break
		}
		if err := d.Skip(); err != nil {
			return nil, xml.StartElement{}, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
		}
	}

	for {
		tok, err := d.Token()
		if err != nil {
			return nil, xml.StartElement{}, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return d, t, nil
		case xml.EndElement:
			return nil, xml.StartElement{}, ErrEmptyBody
		}
	}
}

// Unmarshal декодирует содержимое soap:Body в out.
// Если в теле fault, возвращается *Fault.
func Unmarshal(r io.Reader, out any) error {
	d, start, err := ReadBody(r)
	if err != nil {
		return err
	}

	if isEnvelopeElement(start.Name, "Fault") {
		var fault Fault
		if err := d.DecodeElement(&fault, &start); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
		}
		return &fault
	}

	if err := d.DecodeElement(out, &start); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	return nil
}

func nextStart(d *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return xml.StartElement{}, fmt.Errorf("%w: unexpected end of document", ErrMalformedEnvelope)
			}
			return xml.StartElement{}, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return t, nil
		case xml.EndElement:
			return xml.StartElement{}, fmt.Errorf("%w: unexpected </%s>", ErrMalformedEnvelope, t.Name.Local)
		}
	}
}

func isEnvelopeElement(name xml.Name, local string) bool {
	return name.Space == EnvelopeNamespace && name.Local == local
}
