package soap

import (
	"bytes"
	"encoding/xml"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	XMLName xml.Name `xml:"urn:test echo"`
	Text    string   `xml:"text"`
	Items   []string `xml:"items"`
}

func TestMarshal_RoundTrip(t *testing.T) {
	data, err := Marshal(echoRequest{Text: "hello", Items: []string{"a", "b"}})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), xml.Header))
	assert.Contains(t, string(data), `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">`)
	assert.Contains(t, string(data), `<echo xmlns="urn:test">`)

	var out echoRequest
	require.NoError(t, Unmarshal(bytes.NewReader(data), &out))
	assert.Equal(t, "hello", out.Text)
	assert.Equal(t, []string{"a", "b"}, out.Items)
}

func TestMarshalFault_DecodesAsError(t *testing.T) {
	data, err := MarshalFault(FaultClient, "workspace not found", "id=42")
	require.NoError(t, err)
	assert.Contains(t, string(data), "<soap:Fault>")

	var out echoRequest
	err = Unmarshal(bytes.NewReader(data), &out)

	var fault *Fault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, FaultClient, fault.Code)
	assert.Equal(t, "workspace not found", fault.String)
	assert.Equal(t, "id=42", fault.Detail)
}

func TestReadBody_SkipsHeader(t *testing.T) {
	doc := `<?xml version="1.0"?>
<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/" xmlns:c="urn:test">
  <s:Header><c:token>abc</c:token></s:Header>
  <s:Body>
    <c:echo><text>hi</text></c:echo>
  </s:Body>
</s:Envelope>`

	d, start, err := ReadBody(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "urn:test", start.Name.Space)
	assert.Equal(t, "echo", start.Name.Local)

	var out echoRequest
	require.NoError(t, d.DecodeElement(&out, &start))
	assert.Equal(t, "hi", out.Text)
}

func TestReadBody_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name:    "not xml",
			doc:     "{\"workspaceId\": 1}",
			wantErr: ErrMalformedEnvelope,
		},
		{
			name:    "wrong root",
			doc:     `<echo xmlns="urn:test"><text>hi</text></echo>`,
			wantErr: ErrMalformedEnvelope,
		},
		{
			name:    "soap 1.2 envelope",
			doc:     `<env:Envelope xmlns:env="http://www.w3.org/2003/05/soap-envelope"><env:Body/></env:Envelope>`,
			wantErr: ErrMalformedEnvelope,
		},
		{
			name:    "no body",
			doc:     `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"></soap:Envelope>`,
			wantErr: ErrMalformedEnvelope,
		},
		{
			name:    "empty body",
			doc:     `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>  </soap:Body></soap:Envelope>`,
			wantErr: ErrEmptyBody,
		},
		{
			name:    "truncated",
			doc:     `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>`,
			wantErr: ErrMalformedEnvelope,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadBody(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUnmarshal_WrongElement(t *testing.T) {
	doc := `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body><other xmlns="urn:test"/></soap:Body></soap:Envelope>`

	var out echoRequest
	err := Unmarshal(strings.NewReader(doc), &out)

	assert.ErrorIs(t, err, ErrMalformedEnvelope)
}
