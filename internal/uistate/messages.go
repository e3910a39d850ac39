package uistate

// Messages are the user-facing notice texts
type Messages struct {
	LoadFailed       string
	Downloading      string // formatted with the asset name
	DownloadComplete string
	Shared           string
	LinkCopied       string
	ShareFailed      string
}

// DefaultMessages returns the English texts
func DefaultMessages() Messages {
	return Messages{
		LoadFailed:       "Failed to load data",
		Downloading:      "Downloading %s...",
		DownloadComplete: "Download Complete!",
		Shared:           "Shared successfully!",
		LinkCopied:       "Link copied to clipboard!",
		ShareFailed:      "Failed to share",
	}
}
