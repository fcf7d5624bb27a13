package upstream

import (
	"encoding/json"
	"strings"
)

// idAliases maps a request path fragment to the entity-specific identifier
// alias synthesized on create/update responses. Downstream code historically
// expects either the generic "id" or the alias, so both are kept. Order
// matters: the first matching fragment wins.
var idAliases = []struct {
	fragment string
	alias    string
}{
	{"/properties", "idProperty"},
	{"/owners", "idOwner"},
	{"/property-images", "idPropertyImage"},
	{"/property-traces", "idPropertyTrace"},
}

// remapID copies a generic "id" field in data to the entity-specific alias
// for the request path. Non-object payloads, payloads without an id, and
// paths outside the alias table pass through untouched.
func remapID(data json.RawMessage, path string) json.RawMessage {
	if len(data) == 0 {
		return data
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return data
	}

	id, ok := obj["id"]
	if !ok || id == nil {
		return data
	}

	for _, m := range idAliases {
		if strings.Contains(path, m.fragment) {
			obj[m.alias] = id
			remapped, err := json.Marshal(obj)
			if err != nil {
				return data
			}
			return remapped
		}
	}

	return data
}
