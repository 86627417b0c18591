package response

import "time"

const (
	StatusSuccess = "SUCCESS"
	StatusFailure = "FAILURE"
)

// Envelope 统一响应包体。data 失败时为 null；
// 唯一例外是重复注册用户，FAILURE 包体携带已有记录（对外契约）。
type Envelope struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

func Success(msg string, data any) Envelope {
	return Envelope{Status: StatusSuccess, Message: msg, Data: data, Timestamp: time.Now()}
}

func Failure(msg string, data any) Envelope {
	return Envelope{Status: StatusFailure, Message: msg, Data: data, Timestamp: time.Now()}
}
