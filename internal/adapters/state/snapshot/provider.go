// Package snapshot serves picklist definitions from files on disk, so one side
// of a comparison can be a retrieved or hand-written baseline instead of a
// live org.
package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/olusolaa/picklist-drift-detector/internal/config"
	"github.com/olusolaa/picklist-drift-detector/internal/core/domain"
	"github.com/olusolaa/picklist-drift-detector/internal/core/ports"
	"github.com/olusolaa/picklist-drift-detector/internal/errors"
)

const ProviderTypeSnapshot = config.ProviderSnapshot

// Extensions are tried in this order when several files exist for one field.
var Extensions = []string{".json", ".yaml", ".yml", ".xml"}

type Provider struct {
	dir    string
	loader *fileLoader
	logger ports.Logger
}

func NewProvider(cfg config.OrgConfig, logger ports.Logger) (*Provider, error) {
	if cfg.SnapshotDir == "" {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation, "snapshot_dir is required for the snapshot provider", "")
	}
	info, err := os.Stat(cfg.SnapshotDir)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeSnapshotReadError,
			fmt.Sprintf("snapshot directory %s is not accessible", cfg.SnapshotDir), "")
	}
	if !info.IsDir() {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("snapshot_dir %s is not a directory", cfg.SnapshotDir), "")
	}

	plog := logger.WithFields(map[string]any{
		"provider":     ProviderTypeSnapshot,
		"snapshot_dir": cfg.SnapshotDir,
	})
	return &Provider{
		dir:    cfg.SnapshotDir,
		loader: newFileLoader(plog),
		logger: plog,
	}, nil
}

func (p *Provider) Type() string { return ProviderTypeSnapshot }

// FetchField loads <Object>.<Field>.<ext> from the snapshot directory, falling
// back to the source-format path objects/<Object>/fields/<Field>.field-meta.xml.
func (p *Provider) FetchField(ctx context.Context, attr domain.AttributeRef) (domain.RawPayload, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	path, ok := p.locate(attr)
	if !ok {
		return nil, errors.New(errors.CodeResourceNotFound,
			fmt.Sprintf("no snapshot for %s in %s", attr, p.dir))
	}
	return p.loader.load(ctx, path)
}

func (p *Provider) locate(attr domain.AttributeRef) (string, bool) {
	candidates := make([]string, 0, len(Extensions)+1)
	for _, ext := range Extensions {
		candidates = append(candidates, filepath.Join(p.dir, attr.FullName()+ext))
	}
	candidates = append(candidates, filepath.Join(p.dir, "objects", attr.Object, "fields", attr.Field+fieldMetaSuffix))

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, true
		}
	}
	return "", false
}

// DescribePicklistFields lists the picklist fields of object that have a
// snapshot, sorted by name. Snapshots without a type are assumed to be
// picklists.
func (p *Provider) DescribePicklistFields(ctx context.Context, object string) ([]domain.FieldInfo, error) {
	names, err := p.fieldNames(object)
	if err != nil {
		return nil, err
	}

	fields := make([]domain.FieldInfo, 0, len(names))
	for _, name := range names {
		payload, err := p.FetchField(ctx, domain.AttributeRef{Object: object, Field: name})
		if err != nil {
			return nil, err
		}
		label, _ := payload["label"].(string)
		fieldType, _ := payload["type"].(string)
		describeType, ok := picklistType(fieldType)
		if !ok {
			p.logger.Debugf(ctx, "Skipping %s.%s: type %s is not a picklist", object, name, fieldType)
			continue
		}
		fields = append(fields, domain.FieldInfo{Name: name, Label: label, Type: describeType})
	}
	p.logger.Debugf(ctx, "Found %d snapshot fields for %s", len(fields), object)
	return fields, nil
}

func (p *Provider) fieldNames(object string) ([]string, error) {
	seen := make(map[string]struct{})

	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSnapshotReadError, fmt.Sprintf("failed to list %s", p.dir))
	}
	prefix := object + "."
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		rest := strings.TrimPrefix(e.Name(), prefix)
		ext := filepath.Ext(rest)
		if !supported(ext) {
			continue
		}
		if field := strings.TrimSuffix(rest, ext); field != "" && !strings.Contains(field, ".") {
			seen[field] = struct{}{}
		}
	}

	sourceDir := filepath.Join(p.dir, "objects", object, "fields")
	if entries, err := os.ReadDir(sourceDir); err == nil {
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), fieldMetaSuffix) {
				seen[strings.TrimSuffix(e.Name(), fieldMetaSuffix)] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func supported(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// picklistType maps Metadata API field types onto the describe names.
func picklistType(metadataType string) (string, bool) {
	switch strings.ToLower(metadataType) {
	case "", "picklist":
		return "picklist", true
	case "multiselectpicklist", "multipicklist":
		return "multipicklist", true
	}
	return "", false
}
