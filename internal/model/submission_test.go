package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	// pending 可批可驳
	assert.True(t, StatusPending.CanTransition(StatusApproved))
	assert.True(t, StatusPending.CanTransition(StatusRejected))

	// rejected 可重开
	assert.True(t, StatusRejected.CanTransition(StatusPending))
	assert.False(t, StatusRejected.CanTransition(StatusApproved))

	// approved 为终态
	assert.False(t, StatusApproved.CanTransition(StatusPending))
	assert.False(t, StatusApproved.CanTransition(StatusRejected))

	// 原地流转视为合法（幂等重放）
	assert.True(t, StatusPending.CanTransition(StatusPending))
	assert.True(t, StatusApproved.CanTransition(StatusApproved))
	assert.True(t, StatusRejected.CanTransition(StatusRejected))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus("pending"))
	assert.True(t, ValidStatus("approved"))
	assert.True(t, ValidStatus("rejected"))

	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("PENDING"))
	assert.False(t, ValidStatus("deleted"))
}
