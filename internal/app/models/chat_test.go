package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatKey_OrderIndependent(t *testing.T) {
	assert.Equal(t, "3_7", ChatKey(3, 7))
	assert.Equal(t, "3_7", ChatKey(7, 3))
	assert.Equal(t, ChatKey(12, 5), ChatKey(5, 12))
}

func TestChatKey_SameUser(t *testing.T) {
	assert.Equal(t, "4_4", ChatKey(4, 4))
}
