package salesforce

import (
	"context"
	"fmt"

	"github.com/olusolaa/picklist-drift-detector/internal/config"
	"github.com/olusolaa/picklist-drift-detector/internal/core/domain"
	"github.com/olusolaa/picklist-drift-detector/internal/core/ports"
	"github.com/olusolaa/picklist-drift-detector/internal/errors"
)

// Provider reads picklist definitions from a live org.
type Provider struct {
	providerType string
	client       *Client
	logger       ports.Logger
}

// NewProvider builds a provider for the sfcli or token provider types. The
// CLI is not invoked until the first call.
func NewProvider(cfg config.OrgConfig, logger ports.Logger, runner CommandRunner, opts ...ClientOption) (*Provider, error) {
	if logger == nil {
		return nil, errors.New(errors.CodeConfigValidation, "logger cannot be nil for Salesforce provider")
	}

	var session SessionSource
	switch cfg.Provider {
	case config.ProviderSFCLI:
		if cfg.Alias == "" {
			return nil, errors.NewUserFacing(errors.CodeConfigValidation, "org alias is required for the sfcli provider",
				"Set source.alias / target.alias or SF_ORG_A_ALIAS / SF_ORG_B_ALIAS.")
		}
		session = NewCLISession(cfg.Alias, runner)
	case config.ProviderToken:
		if cfg.InstanceURL == "" || cfg.AccessToken == "" {
			return nil, errors.NewUserFacing(errors.CodeConfigValidation, "instance_url and access_token are required for the token provider", "")
		}
		session = NewStaticSession(cfg.InstanceURL, cfg.AccessToken)
	default:
		return nil, errors.New(errors.CodeConfigValidation, fmt.Sprintf("provider type '%s' is not served by the Salesforce adapter", cfg.Provider))
	}

	client := NewClient(session, cfg.APIVersion, cfg.RateLimitRPS, cfg.Timeout, logger, opts...)
	return NewProviderWithClient(cfg.Provider, client, logger), nil
}

func NewProviderWithClient(providerType string, client *Client, logger ports.Logger) *Provider {
	return &Provider{providerType: providerType, client: client, logger: logger}
}

func (p *Provider) Type() string {
	return p.providerType
}

// FetchField reads the CustomField definition of attr. Fields bound to a
// global value set get that set's values inlined so they normalize like any
// other field.
func (p *Provider) FetchField(ctx context.Context, attr domain.AttributeRef) (domain.RawPayload, error) {
	p.logger.Debugf(ctx, "Reading %s metadata for %s", MetadataTypeCustomField, attr)

	record, err := p.client.ReadMetadata(ctx, MetadataTypeCustomField, attr.FullName())
	if err != nil {
		return nil, err
	}

	if name := globalValueSetName(record); name != "" {
		p.logger.Debugf(ctx, "%s uses global value set %s", attr, name)
		globalSet, err := p.client.ReadMetadata(ctx, MetadataTypeGlobalValueSet, name)
		if err != nil {
			return nil, err
		}
		inlineGlobalValues(record, globalSet)
	}

	return domain.RawPayload(record), nil
}

func (p *Provider) DescribePicklistFields(ctx context.Context, object string) ([]domain.FieldInfo, error) {
	fields, err := p.client.DescribePicklistFields(ctx, object)
	if err != nil {
		return nil, err
	}
	p.logger.Debugf(ctx, "Described %s: %d picklist fields", object, len(fields))
	return fields, nil
}
