package schema

import "encoding/json"

// fieldSet is a bit set of optional JSON keys, indexed by optionalFields.
type fieldSet uint16

var optionalFields = map[string]fieldSet{
	"requestable":       1 << 0,
	"displayable":       1 << 1,
	"resolveDependency": 1 << 2,
	"lookupTable":       1 << 3,
	"regex":             1 << 4,
	"representation":    1 << 5,
	"resolveDepth":      1 << 6,
}

func (s fieldSet) has(field string) bool {
	bit, ok := optionalFields[field]
	return ok && s&bit != 0
}

// absentKeys returns the subset of fields that are not keys of the JSON object data.
func absentKeys(data []byte, fields ...string) (fieldSet, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return 0, err
	}
	var s fieldSet
	for _, f := range fields {
		if _, ok := keys[f]; !ok {
			s |= optionalFields[f]
		}
	}
	return s, nil
}

func (s *fieldSet) clear(field string) {
	*s &^= optionalFields[field]
}
