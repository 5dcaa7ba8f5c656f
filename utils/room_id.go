package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewRoomID 生成唯一 Room ID（8 位）
func NewRoomID() string {
	uuidStr := uuid.New().String()
	return strings.ReplaceAll(uuidStr, "-", "")[:8]
}
