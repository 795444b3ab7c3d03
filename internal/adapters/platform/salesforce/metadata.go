package salesforce

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"text/template"

	"github.com/clbanning/mxj/v2"

	"github.com/olusolaa/picklist-drift-detector/internal/errors"
)

const (
	MetadataTypeCustomField    = "CustomField"
	MetadataTypeGlobalValueSet = "GlobalValueSet"
)

var readMetadataTemplate = template.Must(template.New("readMetadata").Funcs(template.FuncMap{
	"xml": escapeXML,
}).Parse(`<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:met="http://soap.sforce.com/2006/04/metadata">
  <soapenv:Header>
    <met:SessionHeader><met:sessionId>{{ xml .SessionID }}</met:sessionId></met:SessionHeader>
  </soapenv:Header>
  <soapenv:Body>
    <met:readMetadata>
      <met:type>{{ xml .Type }}</met:type>
      <met:fullNames>{{ xml .FullName }}</met:fullNames>
    </met:readMetadata>
  </soapenv:Body>
</soapenv:Envelope>
`))

func escapeXML(s string) (string, error) {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return "", err
	}
	return b.String(), nil
}

func readMetadataEnvelope(sessionID, metadataType, fullName string) ([]byte, error) {
	var buf bytes.Buffer
	err := readMetadataTemplate.Execute(&buf, struct {
		SessionID, Type, FullName string
	}{sessionID, metadataType, fullName})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadMetadata reads one component through the Metadata API and returns its
// record as a generic map. Element text is kept as strings.
func (c *Client) ReadMetadata(ctx context.Context, metadataType, fullName string) (map[string]any, error) {
	subject := fmt.Sprintf("%s '%s'", metadataType, fullName)

	body, err := c.call(ctx, "readMetadata", subject, func(ctx context.Context, s Session) ([]byte, error) {
		envelope, err := readMetadataEnvelope(s.AccessToken, metadataType, fullName)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to build readMetadata request")
		}
		resp, err := c.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "text/xml; charset=UTF-8").
			SetHeader("SOAPAction", "readMetadata").
			SetBody(envelope).
			Post(fmt.Sprintf("%s/services/Soap/m/%s", s.InstanceURL, c.version(s)))
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, soapFault(resp.StatusCode(), resp.Body())
		}
		return resp.Body(), nil
	})
	if err != nil {
		return nil, err
	}

	record, err := firstRecord(body)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeResponseParse, fmt.Sprintf("failed to parse readMetadata response for %s", subject))
	}
	if record == nil {
		return nil, errors.New(errors.CodeResourceNotFound, fmt.Sprintf("%s not found", subject))
	}
	return record, nil
}

// firstRecord returns the first <records> element carrying a fullName. Salesforce
// answers unknown names with an empty or nil record rather than a fault.
func firstRecord(body []byte) (map[string]any, error) {
	m, err := mxj.NewMapXml(body)
	if err != nil {
		return nil, err
	}
	values, err := m.ValuesForKey("records")
	if err != nil || len(values) == 0 {
		return nil, nil
	}
	for _, v := range values {
		rec, ok := v.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := rec["fullName"].(string); ok && name != "" {
			return rec, nil
		}
	}
	return nil, nil
}

// globalValueSetName returns the name of the global value set a field
// references when it carries no inline values.
func globalValueSetName(record map[string]any) string {
	valueSet, ok := record["valueSet"].(map[string]any)
	if !ok {
		return ""
	}
	if _, inline := valueSet["valueSetDefinition"]; inline {
		return ""
	}
	name, _ := valueSet["valueSetName"].(string)
	return name
}

// inlineGlobalValues copies the custom values of a global value set into the
// field record where inline values would live.
func inlineGlobalValues(record, globalSet map[string]any) {
	valueSet, ok := record["valueSet"].(map[string]any)
	if !ok {
		return
	}
	valueSet["valueSetDefinition"] = map[string]any{"value": globalSet["customValue"]}
}
