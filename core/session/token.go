package session

import (
	"net/http"
	"strings"

	"github.com/forgeworks/conduit/core/handler"
)

// CookieToken places the session token in an HTTP cookie.
type CookieToken struct {
	name string
	opts cookieOptions
}

type cookieOptions struct {
	path     string
	domain   string
	maxAge   int
	secure   bool
	httpOnly bool
	sameSite http.SameSite
}

// CookieOption configures the session cookie.
type CookieOption func(*cookieOptions)

// WithPath sets the cookie path. Default "/".
func WithPath(path string) CookieOption {
	return func(o *cookieOptions) { o.path = path }
}

// WithDomain sets the cookie domain.
func WithDomain(domain string) CookieOption {
	return func(o *cookieOptions) { o.domain = domain }
}

// WithMaxAge sets the cookie max age in seconds.
func WithMaxAge(seconds int) CookieOption {
	return func(o *cookieOptions) { o.maxAge = seconds }
}

// WithSecure marks the cookie secure.
func WithSecure(secure bool) CookieOption {
	return func(o *cookieOptions) { o.secure = secure }
}

// WithHTTPOnly controls the HttpOnly flag. Default true.
func WithHTTPOnly(httpOnly bool) CookieOption {
	return func(o *cookieOptions) { o.httpOnly = httpOnly }
}

// WithSameSite sets the SameSite mode. Default Lax.
func WithSameSite(mode http.SameSite) CookieOption {
	return func(o *cookieOptions) { o.sameSite = mode }
}

// NewCookieToken creates a cookie token transport with secure defaults
// (path "/", HttpOnly, SameSite=Lax).
func NewCookieToken(name string, opts ...CookieOption) *CookieToken {
	o := cookieOptions{
		path:     "/",
		httpOnly: true,
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &CookieToken{name: name, opts: o}
}

// FindToken reads the session cookie from the request, or "".
func (t *CookieToken) FindToken(ctx handler.Context) string {
	header := ctx.Header("Cookie")
	if header.IsMissing() {
		return ""
	}
	for _, line := range header.Values() {
		cookies, err := http.ParseCookie(line)
		if err != nil {
			continue
		}
		for _, c := range cookies {
			if c.Name == t.name {
				return c.Value
			}
		}
	}
	return ""
}

// SaveToken writes the session cookie to the response.
func (t *CookieToken) SaveToken(ctx handler.Context, token string) error {
	c := t.cookie(token, t.opts.maxAge)
	if err := c.Valid(); err != nil {
		return err
	}
	ctx.SetHeader("Set-Cookie", c.String())
	return nil
}

// DeleteToken expires the session cookie.
func (t *CookieToken) DeleteToken(ctx handler.Context, token string) error {
	c := t.cookie("", -1)
	ctx.SetHeader("Set-Cookie", c.String())
	return nil
}

func (t *CookieToken) cookie(val string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     t.name,
		Value:    val,
		Path:     t.opts.path,
		Domain:   t.opts.domain,
		MaxAge:   maxAge,
		Secure:   t.opts.secure,
		HttpOnly: t.opts.httpOnly,
		SameSite: t.opts.sameSite,
	}
}

// HeaderToken places the session token in a response header and reads it
// back from the request, optionally with a Bearer prefix.
type HeaderToken struct {
	name   string
	bearer bool
}

// NewHeaderToken creates a header token transport. With bearer set, the
// header value is "Bearer <token>" as in Authorization headers.
func NewHeaderToken(name string, bearer bool) *HeaderToken {
	if name == "" {
		name = "Authorization"
	}
	return &HeaderToken{name: name, bearer: bearer}
}

// FindToken reads the token header from the request, or "".
func (t *HeaderToken) FindToken(ctx handler.Context) string {
	raw := ctx.Header(t.name).String()
	if raw == "" {
		return ""
	}
	if t.bearer {
		scheme, token, ok := strings.Cut(raw, " ")
		if !ok || scheme != "Bearer" {
			return ""
		}
		return token
	}
	return raw
}

// SaveToken writes the token header to the response.
func (t *HeaderToken) SaveToken(ctx handler.Context, token string) error {
	if t.bearer {
		token = "Bearer " + token
	}
	ctx.SetHeader(t.name, token)
	return nil
}

// DeleteToken blanks the token header on the response.
func (t *HeaderToken) DeleteToken(ctx handler.Context, token string) error {
	ctx.SetHeader(t.name, "")
	return nil
}
