package html

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// sanitizer allows the markup the document template emits and nothing else
// beyond bluemonday's user-generated-content baseline.
func sanitizer() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowElements("section")
		p.AllowAttrs("class").OnElements("section", "h2", "p", "dl", "dt", "dd")
		p.AllowDataAttributes()
		policy = p
	})
	return policy
}
