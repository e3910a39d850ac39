package middleware

import (
	"github.com/drovic/drovic-backend/pkg/i18n"
	"github.com/gin-gonic/gin"
)

const localeKey = "locale"

// I18n detects the visitor's language from ?lang= or Accept-Language
// and stores it in the gin context.
func I18n() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Accept-Language")
		if lang := c.Query("lang"); lang != "" {
			header = lang
		}
		locale := i18n.ParseAcceptLanguage(header)
		c.Set(localeKey, locale)
		c.Header("Content-Language", string(locale))
		c.Next()
	}
}

// GetLocale returns the locale set by I18n, or the default locale
func GetLocale(c *gin.Context) i18n.Locale {
	if v, exists := c.Get(localeKey); exists {
		if locale, ok := v.(i18n.Locale); ok {
			return locale
		}
	}
	return i18n.ParseAcceptLanguage("")
}
