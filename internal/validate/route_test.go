package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteTable(t *testing.T) {
	assert.Equal(t, Routing{StatusPass, QueueQuickApproval}, Route(true, true, true, true, true))
	assert.Equal(t, Routing{StatusNeedsReview, QueueDetailedReview}, Route(true, true, true, true, false))
	assert.Equal(t, Routing{StatusFail, QueueRejected}, Route(false, true, true, true, true))
	assert.Equal(t, Routing{StatusFail, QueueRejected}, Route(true, false, true, true, true))
	assert.Equal(t, Routing{StatusFail, QueueRejected}, Route(true, true, false, true, false))
}

func TestRouteExhaustive(t *testing.T) {
	// Walk all 2^5 combinations: any invalid field forces FAIL/rejected
	// regardless of existence, and the status/queue pairing is one-to-one.
	for mask := 0; mask < 32; mask++ {
		sapOK := mask&1 != 0
		nameOK := mask&2 != 0
		emailOK := mask&4 != 0
		phoneOK := mask&8 != 0
		exists := mask&16 != 0

		r := Route(sapOK, nameOK, emailOK, phoneOK, exists)

		switch {
		case sapOK && nameOK && emailOK && phoneOK && exists:
			assert.Equal(t, Routing{StatusPass, QueueQuickApproval}, r)
		case sapOK && nameOK && emailOK && phoneOK:
			assert.Equal(t, Routing{StatusNeedsReview, QueueDetailedReview}, r)
		default:
			assert.Equal(t, Routing{StatusFail, QueueRejected}, r)
		}
	}
}
