package models

// AnalyzeResponse is the body returned by POST /analyze/new.
type AnalyzeResponse struct {
	ConversationID string `json:"conversation_id"`
	Title          string `json:"title"`
	UserID         string `json:"user_id"`
	// ScannedOutput keeps the scan verdict opaque; its shape is owned by
	// the backend and consumers navigate it with gjson.
	ScannedOutput string `json:"-"`
}

// FileScanReport is the result of POST /file/files/scan for one uploaded
// file.
type FileScanReport struct {
	Status   string        `json:"status"`
	MimeInfo MimeInfo      `json:"mime_info"`
	ClamAV   ClamAVResult  `json:"clamav"`
	Prompt   PromptVerdict `json:"prompt_injection"`
	Metadata FileMetadata  `json:"metadata"`
}

// MimeInfo describes the detected content type of a scanned file.
type MimeInfo struct {
	Detected string `json:"detected"`
	Declared string `json:"declared,omitempty"`
	Match    bool   `json:"match"`
}

// ClamAVResult is the antivirus verdict for a scanned file.
type ClamAVResult struct {
	Infected  bool   `json:"infected"`
	Signature string `json:"signature,omitempty"`
}

// PromptVerdict reports heuristic prompt-injection findings in a file's
// text content.
type PromptVerdict struct {
	Suspicious bool     `json:"suspicious"`
	Findings   []string `json:"findings,omitempty"`
}

// FileMetadata carries identity details of a scanned file.
type FileMetadata struct {
	SHA256 string `json:"sha256"`
	Size   int64  `json:"size"`
	Path   string `json:"path"`
}

// Clean reports whether the scan produced no findings of any kind.
func (r *FileScanReport) Clean() bool {
	return !r.ClamAV.Infected && !r.Prompt.Suspicious
}
