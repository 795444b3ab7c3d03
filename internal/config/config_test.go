package config

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_ValidOnceOrgsAreNamed(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	cfg := DefaultConfig()
	err := validate.Struct(cfg)
	require.Error(t, err, "default sfcli orgs need aliases")

	cfg.Source.Alias = "prod"
	cfg.Target.Alias = "uat"
	cfg.Object = "Account"
	assert.NoError(t, validate.Struct(cfg))

	cfg.Object = ""
	cfg.Interactive = true
	assert.NoError(t, validate.Struct(cfg))

	cfg.Interactive = false
	assert.Error(t, validate.Struct(cfg), "nothing to select from")

	cfg.Fields = []string{"Account.Industry", "Case.Origin"}
	assert.NoError(t, validate.Struct(cfg), "qualified fields name their own object")
}

func TestOrgConfig_Label(t *testing.T) {
	assert.Equal(t, "prod", OrgConfig{Provider: ProviderSFCLI, Alias: "prod"}.Label())
	assert.Equal(t, "https://acme.my.salesforce.com", OrgConfig{Provider: ProviderToken, InstanceURL: "https://acme.my.salesforce.com"}.Label())
	assert.Equal(t, "./baseline", OrgConfig{Provider: ProviderSnapshot, SnapshotDir: "./baseline"}.Label())
}
