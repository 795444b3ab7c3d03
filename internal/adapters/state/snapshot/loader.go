package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/clbanning/mxj/v2"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/olusolaa/picklist-drift-detector/internal/core/domain"
	"github.com/olusolaa/picklist-drift-detector/internal/core/ports"
	"github.com/olusolaa/picklist-drift-detector/internal/errors"
)

// Numbers decode as json.Number so large integer keys keep every digit.
var json = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// fieldMetaSuffix is the file suffix of a field in Salesforce source format.
const fieldMetaSuffix = ".field-meta.xml"

type cacheEntry struct {
	payload domain.RawPayload
	err     error
}

// fileLoader parses snapshot files once and serves later reads from memory.
type fileLoader struct {
	mu     sync.RWMutex
	cache  map[string]cacheEntry
	logger ports.Logger
}

func newFileLoader(logger ports.Logger) *fileLoader {
	return &fileLoader{
		cache:  make(map[string]cacheEntry),
		logger: logger.WithFields(map[string]any{"component": "snapshot_loader"}),
	}
}

func (l *fileLoader) load(ctx context.Context, path string) (domain.RawPayload, error) {
	l.mu.RLock()
	if entry, ok := l.cache[path]; ok {
		l.mu.RUnlock()
		return entry.payload, entry.err
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	if entry, ok := l.cache[path]; ok {
		return entry.payload, entry.err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	payload, err := parseFile(path)
	l.cache[path] = cacheEntry{payload: payload, err: err}
	if err == nil {
		l.logger.Debugf(ctx, "Parsed snapshot file %s", path)
	}
	return payload, err
}

func parseFile(path string) (domain.RawPayload, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSnapshotReadError, fmt.Sprintf("failed to read snapshot file %s", path))
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, errors.NewUserFacing(errors.CodeSnapshotParseError, fmt.Sprintf("snapshot file %s is empty", path), "")
	}

	var payload map[string]any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(raw, &payload)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &payload)
	case ".xml":
		payload, err = parseXML(raw)
	default:
		return nil, errors.New(errors.CodeSnapshotParseError, fmt.Sprintf("unsupported snapshot format '%s'", ext))
	}
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeSnapshotParseError,
			fmt.Sprintf("invalid snapshot file %s", path),
			"Snapshot files must hold a single field definition as a JSON, YAML or XML object.")
	}
	if payload == nil {
		return nil, errors.NewUserFacing(errors.CodeSnapshotParseError,
			fmt.Sprintf("snapshot file %s does not contain an object", path), "")
	}
	return domain.RawPayload(payload), nil
}

// parseXML accepts a field definition as written by a metadata retrieve,
// i.e. wrapped in a single <CustomField> root, and returns the inner element.
func parseXML(raw []byte) (map[string]any, error) {
	m, err := mxj.NewMapXml(raw)
	if err != nil {
		return nil, err
	}
	if len(m) != 1 {
		return m, nil
	}
	for _, root := range m {
		if inner, ok := root.(map[string]any); ok {
			return inner, nil
		}
	}
	return nil, fmt.Errorf("root element has no children")
}
