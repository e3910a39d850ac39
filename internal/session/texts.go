package session

import (
	"github.com/drovic/drovic-backend/internal/render"
	"github.com/drovic/drovic-backend/internal/uistate"
	"github.com/drovic/drovic-backend/pkg/i18n"
)

// texts are the localized strings of one session
type texts struct {
	notices      uistate.Messages
	loadFailed   map[render.Page]string
	placeholders map[render.Page]string
}

var pages = []render.Page{render.PageAssets, render.PageGallery, render.PageLeaderboards, render.PageTeam}

func textsFor(bundle *i18n.Bundle, locale i18n.Locale) texts {
	t := texts{
		notices:      uistate.DefaultMessages(),
		loadFailed:   make(map[render.Page]string, len(pages)),
		placeholders: make(map[render.Page]string, len(pages)),
	}
	for _, p := range pages {
		t.loadFailed[p] = t.notices.LoadFailed
		t.placeholders[p] = render.Placeholder(p)
	}
	if bundle == nil {
		return t
	}

	t.notices = uistate.Messages{
		LoadFailed:       lookup(bundle, locale, "error.load_failed", t.notices.LoadFailed),
		Downloading:      lookup(bundle, locale, "notice.downloading", t.notices.Downloading),
		DownloadComplete: lookup(bundle, locale, "notice.download_complete", t.notices.DownloadComplete),
		Shared:           lookup(bundle, locale, "notice.shared", t.notices.Shared),
		LinkCopied:       lookup(bundle, locale, "notice.link_copied", t.notices.LinkCopied),
		ShareFailed:      lookup(bundle, locale, "notice.share_failed", t.notices.ShareFailed),
	}
	for _, p := range pages {
		t.loadFailed[p] = lookup(bundle, locale, "notice.load_failed."+string(p), t.notices.LoadFailed)
		t.placeholders[p] = lookup(bundle, locale, "placeholder."+string(p), t.placeholders[p])
	}
	return t
}

// lookup returns the raw format string for key, or def when the bundle lacks it
func lookup(bundle *i18n.Bundle, locale i18n.Locale, key, def string) string {
	if msg := bundle.Raw(locale, key); msg != key {
		return msg
	}
	return def
}
