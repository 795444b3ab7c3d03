package salesforce

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/olusolaa/picklist-drift-detector/internal/core/domain"
	"github.com/olusolaa/picklist-drift-detector/internal/errors"
)

var picklistTypes = map[string]bool{
	"picklist":      true,
	"multipicklist": true,
}

// DescribePicklistFields lists the picklist and multi-select picklist fields
// of an object through the REST describe call, in describe order.
func (c *Client) DescribePicklistFields(ctx context.Context, object string) ([]domain.FieldInfo, error) {
	subject := fmt.Sprintf("object '%s'", object)

	body, err := c.call(ctx, "describe", subject, func(ctx context.Context, s Session) ([]byte, error) {
		resp, err := c.http.R().
			SetContext(ctx).
			SetAuthToken(s.AccessToken).
			SetHeader("Accept", "application/json").
			Get(fmt.Sprintf("%s/services/data/v%s/sobjects/%s/describe", s.InstanceURL, c.version(s), url.PathEscape(object)))
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, restFault(resp.StatusCode(), resp.Body())
		}
		return resp.Body(), nil
	})
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, errors.New(errors.CodeResponseParse, fmt.Sprintf("describe response for %s is not valid JSON", subject))
	}

	fields := make([]domain.FieldInfo, 0)
	gjson.GetBytes(body, "fields").ForEach(func(_, field gjson.Result) bool {
		fieldType := field.Get("type").String()
		if picklistTypes[fieldType] {
			fields = append(fields, domain.FieldInfo{
				Name:  field.Get("name").String(),
				Label: field.Get("label").String(),
				Type:  fieldType,
			})
		}
		return true
	})
	return fields, nil
}
