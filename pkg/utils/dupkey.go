package utils

import "strings"

// IsDupKey 按错误文案判断唯一键冲突。
// 不依赖 gorm.ErrDuplicatedKey，避免驱动/版本差异导致漏判。
func IsDupKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "unique failed")
}
