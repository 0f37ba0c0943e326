package ownerships

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ownsvc "ledger-admin/internal/application/ownership"
	"ledger-admin/internal/domain"
)

// Layouts accepted for start_date and end_date. Values without an offset are UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// requestBody keeps the raw JSON object so that an absent key, an explicit
// null and a value can be told apart.
type requestBody map[string]interface{}

func (b requestBody) has(key string) bool {
	_, ok := b[key]
	return ok
}

func (b requestBody) requiredInt(key string) (int64, error) {
	v, ok := b[key]
	if !ok || v == nil || v == "" {
		return 0, fmt.Errorf("Missing required field: %s", key)
	}
	n, ok := asInt64(v)
	if !ok {
		return 0, fmt.Errorf("Invalid %s", key)
	}
	return n, nil
}

// date returns nil for an absent or null key.
func (b requestBody) date(key string) (*time.Time, error) {
	v := b[key]
	if v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("Invalid %s", key)
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, fmt.Errorf("Invalid %s: %q", key, s)
	}
	return &t, nil
}

// comment keeps "" distinct from null.
func (b requestBody) comment() (*string, error) {
	v := b["ownership_comment"]
	if v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("Invalid ownership_comment")
	}
	return &s, nil
}

func (b requestBody) ownerInput() (ownsvc.TemporaryOwnerInput, error) {
	var in ownsvc.TemporaryOwnerInput
	var err error
	if in.ContactID, err = b.requiredInt("contact"); err != nil {
		return in, err
	}
	if in.StartDate, err = b.date("start_date"); err != nil {
		return in, err
	}
	if in.StartDate == nil {
		return in, fmt.Errorf("Missing required field: start_date")
	}
	if in.EndDate, err = b.date("end_date"); err != nil {
		return in, err
	}
	if in.Comment, err = b.comment(); err != nil {
		return in, err
	}
	return in, nil
}

// role reads "role", falling back to the legacy is_backup_owner flag.
func (b requestBody) role() (domain.OwnershipRole, error) {
	if b.has("role") {
		return domain.ParseOwnershipRole(asString(b["role"]))
	}
	switch v := b["is_backup_owner"].(type) {
	case bool:
		if v {
			return domain.RoleBackup, nil
		}
		return domain.RolePrimary, nil
	case nil:
		return "", fmt.Errorf("Missing required field: role")
	}
	return "", fmt.Errorf("Invalid is_backup_owner")
}

func (b requestBody) patch() (domain.OwnershipPatch, error) {
	var p domain.OwnershipPatch
	if b.has("start_date") {
		t, err := b.date("start_date")
		if err != nil {
			return p, err
		}
		if t == nil {
			return p, fmt.Errorf("start_date cannot be null")
		}
		p.StartDate = domain.Some(*t)
	}
	if b.has("end_date") {
		t, err := b.date("end_date")
		if err != nil {
			return p, err
		}
		p.EndDate = domain.Some(t)
	}
	if b.has("ownership_comment") {
		s, err := b.comment()
		if err != nil {
			return p, err
		}
		p.Comment = domain.Some(s)
	}
	return p, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v != nil {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func asInt64(v interface{}) (int64, bool) {
	switch x := v.(type) {
	case float64:
		if x != float64(int64(x)) {
			return 0, false
		}
		return int64(x), true
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		return n, err == nil
	}
	return 0, false
}
