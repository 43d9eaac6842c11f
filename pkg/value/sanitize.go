package value

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugcPolicyOnce sync.Once
	ugcPolicy     *bluemonday.Policy
)

// Sanitized returns the raw serialization filtered through a user-generated
// content sanitization policy. It is the middle ground between the escaped
// default and the raw bypass: markup survives, script vectors do not.
func (v *Value) Sanitized() string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(sanitizer().Sanitize(v.rawString()))
}

func sanitizer() *bluemonday.Policy {
	ugcPolicyOnce.Do(func() {
		ugcPolicy = bluemonday.UGCPolicy()
	})
	return ugcPolicy
}
