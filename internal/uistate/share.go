package uistate

import "github.com/drovic/drovic-backend/internal/domain"

// Share methods
const (
	ShareNative    = "native"
	ShareClipboard = "clipboard"
)

// ShareResult tells the browser how to share and what happened
type ShareResult struct {
	Method  string              `json:"method"`
	Payload domain.SharePayload `json:"payload"`
	Notice  domain.Notice       `json:"notice"`
}

// SharePayloadFor builds the native share payload of a gallery item
func SharePayloadFor(item *domain.GalleryItem) domain.SharePayload {
	return domain.SharePayload{
		Title: item.Title,
		Text:  "Check this out!",
		URL:   item.URL,
	}
}

// Share records the outcome of a share attempt: the native share sheet when the
// browser has one, the clipboard otherwise. failed reports that the attempt errored.
func Share(t *Toaster, msgs Messages, item *domain.GalleryItem, nativeAvailable, failed bool) ShareResult {
	res := ShareResult{Payload: SharePayloadFor(item), Method: ShareClipboard}
	if nativeAvailable {
		res.Method = ShareNative
	}

	switch {
	case failed:
		res.Notice = t.Show(msgs.ShareFailed, domain.SeverityError)
	case nativeAvailable:
		res.Notice = t.Show(msgs.Shared, domain.SeveritySuccess)
	default:
		res.Notice = t.Show(msgs.LinkCopied, domain.SeveritySuccess)
	}
	return res
}
