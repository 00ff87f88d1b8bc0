package backend

type Session struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type ChatMessage struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	SessionID string `json:"session_id"`
}

// ChatRequest starts a new session on the backend when SessionID is empty.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
	Context   string `json:"context,omitempty"`
}

type ChatResponse struct {
	Message   ChatMessage `json:"message"`
	SessionID string      `json:"session_id"`
	Status    string      `json:"status"`
}

type ChatHistory struct {
	SessionID    string        `json:"session_id"`
	Messages     []ChatMessage `json:"messages"`
	MessageCount int           `json:"message_count"`
}

type ExpertAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type PageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type UploadResult struct {
	FileID     string   `json:"file_id"`
	Filename   string   `json:"filename"`
	TotalPages int      `json:"total_pages"`
	PageSize   PageSize `json:"page_size"`
	PageImages []string `json:"page_images"`
	Message    string   `json:"message"`
}

type TextBlock struct {
	ID         string    `json:"id,omitempty"`
	Text       string    `json:"text"`
	BBox       []float64 `json:"bbox,omitempty"`
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	Width      float64   `json:"width"`
	Height     float64   `json:"height"`
	FontSize   float64   `json:"font_size,omitempty"`
	FontFamily string    `json:"font_family,omitempty"`
}

type PageText struct {
	FileID     string      `json:"file_id"`
	Page       int         `json:"page"`
	TextBlocks []TextBlock `json:"text_blocks"`
	PageSize   PageSize    `json:"page_size"`
}

type UpdateResult struct {
	Message    string `json:"message"`
	OutputPath string `json:"output_path"`
	FileID     string `json:"file_id"`
}

type pageRequest struct {
	FileID     string      `json:"file_id"`
	Page       int         `json:"page"`
	TextBlocks []TextBlock `json:"text_blocks,omitempty"`
}
