package utils

import (
	"github.com/google/uuid"
)

// RequestIDHeader header mang request id
const RequestIDHeader = "X-Request-ID"

// GenerateUUID tạo UUID v4
func GenerateUUID() string {
	return uuid.New().String()
}

// GenerateRequestID tạo UUID v7, sắp xếp được theo thời gian
func GenerateRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return GenerateUUID()
	}
	return id.String()
}

// IsValidUUID kiểm tra request id nhận từ client
func IsValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
