package i18n

// DefaultMessages returns built-in translations for all supported locales.
// These can be overridden by loading JSON files from a directory.
func DefaultMessages() map[Locale]map[string]string {
	return map[Locale]map[string]string{
		LocaleEn: enMessages,
		LocaleID: idMessages,
	}
}

var enMessages = map[string]string{
	"error.not_found":            "The requested resource was not found",
	"error.bad_request":          "Invalid request",
	"error.internal":             "An internal server error occurred",
	"error.too_many_requests":    "Too many requests. Please try again later",
	"error.load_failed":          "Failed to load data",
	"error.download_in_progress": "Another download is already in progress",
	"error.nothing_pending":      "There is no download waiting for confirmation",
	"rate_limit.exceeded":        "Rate limit exceeded. Please try again in %d seconds",

	"session.not_found": "Session not found or expired",

	"notice.load_failed.assets":       "Failed to load assets",
	"notice.load_failed.gallery":      "Failed to load gallery items",
	"notice.load_failed.leaderboards": "Failed to load leaderboard",
	"notice.load_failed.team":         "Failed to load team members",
	"notice.downloading":              "Downloading %s...",
	"notice.download_complete":        "Download Complete!",
	"notice.shared":                   "Shared successfully!",
	"notice.link_copied":              "Link copied to clipboard!",
	"notice.share_failed":             "Failed to share",

	"placeholder.assets":       "No assets found",
	"placeholder.gallery":      "No gallery items yet",
	"placeholder.leaderboards": "No data for this period",
	"placeholder.team":         "No team members yet",
}

var idMessages = map[string]string{
	"error.not_found":            "Sumber daya yang diminta tidak ditemukan",
	"error.bad_request":          "Permintaan tidak valid",
	"error.internal":             "Terjadi kesalahan pada server",
	"error.too_many_requests":    "Terlalu banyak permintaan. Silakan coba lagi nanti",
	"error.load_failed":          "Gagal memuat data",
	"error.download_in_progress": "Unduhan lain sedang berlangsung",
	"error.nothing_pending":      "Tidak ada unduhan yang menunggu konfirmasi",
	"rate_limit.exceeded":        "Batas permintaan terlampaui. Coba lagi dalam %d detik",

	"session.not_found": "Sesi tidak ditemukan atau sudah kedaluwarsa",

	"notice.load_failed.assets":       "Gagal memuat assets database",
	"notice.load_failed.gallery":      "Gagal memuat item galeri",
	"notice.load_failed.leaderboards": "Gagal memuat leaderboard",
	"notice.load_failed.team":         "Gagal memuat anggota tim",
	"notice.downloading":              "Mengunduh %s...",
	"notice.download_complete":        "Unduhan selesai!",
	"notice.shared":                   "Berhasil dibagikan!",
	"notice.link_copied":              "Tautan disalin ke clipboard!",
	"notice.share_failed":             "Gagal membagikan",

	"placeholder.assets":       "Aset tidak ditemukan",
	"placeholder.gallery":      "Belum ada item galeri",
	"placeholder.leaderboards": "Tidak ada data untuk periode ini",
	"placeholder.team":         "Belum ada anggota tim",
}
