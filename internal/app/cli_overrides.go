package app

import (
	"strings"
)

// parseFieldsOverride reads the --fields flag. It accepts either a plain list
// ("Industry,Rating") for the configured object, or per-object groups
// ("Account=Industry,Rating;Case=Origin") which yield qualified names.
func parseFieldsOverride(override string) []string {
	if strings.TrimSpace(override) == "" {
		return nil
	}

	var fields []string
	for _, group := range strings.Split(override, ";") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}

		object := ""
		list := group
		if parts := strings.SplitN(group, "=", 2); len(parts) == 2 {
			object = strings.TrimSpace(parts[0])
			list = parts[1]
			if object == "" {
				continue
			}
		}

		for _, f := range strings.Split(list, ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			if object != "" {
				f = object + "." + f
			}
			fields = append(fields, f)
		}
	}
	return fields
}
