package middleware

import (
	"net/http"

	pnet "lingo/internal/platform/net"
)

// LocaleResolveFunc turns request language signals into a locale code
// implementations live above the platform layer, this package only carries the seam
type LocaleResolveFunc func(acceptLanguage, country string) string

// CountryHeader is where upstream proxies report the request country
const CountryHeader = "CF-IPCountry"

// LocaleResolver resolves a locale per request and stashes it on the context
// a nil resolve func makes the middleware a pass-through
func LocaleResolver(resolve LocaleResolveFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if resolve == nil {
				next.ServeHTTP(w, r)
				return
			}
			code := resolve(r.Header.Get("Accept-Language"), r.Header.Get(CountryHeader))
			next.ServeHTTP(w, r.WithContext(pnet.WithLocale(r.Context(), code)))
		})
	}
}
