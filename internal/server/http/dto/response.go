package dto

// Response is the common envelope of API replies.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Failure builds unsuccessful envelope.
func Failure(message string) Response {
	return Response{Success: false, Message: message}
}

// BackupResponse is returned after a successful backup.
type BackupResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	BackupPath string `json:"backupPath"`
}
