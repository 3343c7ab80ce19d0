package codec

import (
	"encoding/json"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/julianstephens/hearth/internal/models"
	"github.com/julianstephens/hearth/internal/utils"
)

var (
	errNotString    = errors.New("must be a string")
	errNotBool      = errors.New("must be a boolean")
	errNotArray     = errors.New("must be an array")
	errNotDateKey   = errors.New("must be a date in YYYY-MM-DD format")
	errNotTimestamp = errors.New("must be an RFC3339 timestamp")
)

// IsString accepts JSON strings only.
var IsString = validation.By(func(v interface{}) error {
	if _, ok := v.(string); !ok {
		return errNotString
	}
	return nil
})

// IsBool accepts JSON booleans only.
var IsBool = validation.By(func(v interface{}) error {
	if _, ok := v.(bool); !ok {
		return errNotBool
	}
	return nil
})

// IsArray accepts JSON arrays only.
var IsArray = validation.By(func(v interface{}) error {
	if _, ok := v.([]interface{}); !ok {
		return errNotArray
	}
	return nil
})

// IsTimestampOrNull accepts null or an RFC3339 string.
var IsTimestampOrNull = validation.By(func(v interface{}) error {
	if v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return errNotTimestamp
	}
	if _, err := time.Parse(time.RFC3339Nano, s); err != nil {
		return errNotTimestamp
	}
	return nil
})

// IsDateKey accepts a YYYY-MM-DD string naming a real calendar day.
var IsDateKey = validation.By(func(v interface{}) error {
	s, ok := v.(string)
	if !ok || !utils.ValidDateKey(s) {
		return errNotDateKey
	}
	return nil
})

// EntryRule is the stored shape of a checklist or todo entry: id, title
// and completedAt are required, dueDate and createdAt are optional.
var EntryRule = validation.Map(
	validation.Key("id", IsString),
	validation.Key("title", IsString),
	validation.Key("completedAt", IsTimestampOrNull),
	validation.Key("dueDate", validation.By(func(v interface{}) error {
		if s, ok := v.(string); ok && s == "" {
			return nil
		}
		return IsDateKey.Validate(v)
	})).Optional(),
	validation.Key("createdAt", IsTimestampOrNull).Optional(),
).AllowExtraKeys()

// entryAliases maps older key names onto the entry shape. Night routine
// snapshots from earlier builds record completion as checkedAt.
var entryAliases = map[string]string{"checkedAt": "completedAt"}

var entryObject = ObjectShape[models.Entry](EntryRule)

// EntryShape validates and converts one stored entry.
var EntryShape Shape[models.Entry] = func(raw json.RawMessage) (models.Entry, error) {
	return entryObject(withAliases(raw, entryAliases))
}

// EntryID keys entries for duplicate detection.
func EntryID(e models.Entry) string { return e.ID }

// withAliases copies each aliased key to its current name when the current
// name is missing. Anything that is not an object is returned untouched.
func withAliases(raw json.RawMessage, aliases map[string]string) json.RawMessage {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return raw
	}
	changed := false
	for old, current := range aliases {
		v, ok := fields[old]
		if !ok {
			continue
		}
		if _, has := fields[current]; has {
			continue
		}
		fields[current] = v
		changed = true
	}
	if !changed {
		return raw
	}
	out, err := json.Marshal(fields)
	if err != nil {
		return raw
	}
	return out
}

// StringValue accepts a JSON string value.
func StringValue(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", errNotString
	}
	return s, nil
}
