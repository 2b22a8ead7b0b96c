package checkin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAppendRoutesFailuresToPending(t *testing.T) {
	s := NewStore()
	s.Append(Record{Nickname: "小明", Passed: true})
	s.Append(Record{Nickname: "小红", Passed: false})

	assert.Equal(t, 2, s.Len())
	pending := s.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "小红", pending[0].Nickname)
}

func TestApproveAllPendingFlipsStoredRecords(t *testing.T) {
	s := NewStore()
	s.Append(Record{Nickname: "小红", Passed: false})
	s.Append(Record{Nickname: "小刚", Passed: false})

	assert.Equal(t, 2, s.ApproveAllPending())
	assert.Zero(t, s.PendingLen())
	for _, r := range s.Records() {
		assert.True(t, r.Passed)
	}
}

func TestApproveAllPendingIdempotent(t *testing.T) {
	s := NewStore()
	s.Append(Record{Nickname: "小红", Passed: false})
	assert.Equal(t, 1, s.ApproveAllPending())
	assert.Equal(t, 0, s.ApproveAllPending())
	assert.Zero(t, s.PendingLen())
}

func TestPendingReentryAfterOverride(t *testing.T) {
	s := NewStore()
	s.Append(Record{Nickname: "小红", Passed: false})
	s.ApproveAllPending()

	// Records added afterwards are evaluated on their own and may re-enter.
	s.Append(Record{Nickname: "小红", Passed: false})
	assert.Equal(t, 1, s.PendingLen())
	assert.Equal(t, 2, s.Len())
}

func TestClearResetsEverything(t *testing.T) {
	s := NewStore()
	s.Append(Record{Passed: false})
	s.Append(Record{Passed: true})
	s.Clear()
	assert.Zero(t, s.Len())
	assert.Zero(t, s.PendingLen())
	assert.Empty(t, s.Records())
}

func TestRegistryIsolatesSessions(t *testing.T) {
	reg := NewRegistry()
	a := reg.Get("alice")
	b := reg.Get("bob")
	assert.NotSame(t, a, b)
	assert.Same(t, a, reg.Get("alice"))

	a.Append(Record{Passed: true})
	assert.Equal(t, 1, a.Len())
	assert.Zero(t, b.Len())
}
