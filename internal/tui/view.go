package tui

const unknownViewType = "unknown"

// ViewType represents which page is active.
type ViewType int

const (
	ViewUpload ViewType = iota
	ViewAnalysis
	ViewChat
)

// String returns the lowercase name of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewUpload:
		return "upload"
	case ViewAnalysis:
		return "analysis"
	case ViewChat:
		return "chat"
	default:
		return unknownViewType
	}
}
