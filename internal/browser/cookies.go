package browser

import (
	"encoding/json"
	"os"

	"github.com/playwright-community/playwright-go"
)

// Cookie represents a browser cookie from the saved auth state file.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
	SameSite string  `json:"sameSite"`
}

// authState matches the Playwright storage-state layout the save-session
// command writes: {"cookies": [...], ...}. A bare cookie array is accepted
// too.
type authState struct {
	Cookies []Cookie `json:"cookies"`
}

// LoadCookies reads the auth state file and converts its cookies for
// injection into a browser context.
func LoadCookies(path string) ([]playwright.OptionalCookie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var state authState
	if err := json.Unmarshal(data, &state); err != nil || len(state.Cookies) == 0 {
		// fall back to a bare array of cookies
		if err := json.Unmarshal(data, &state.Cookies); err != nil {
			return nil, err
		}
	}

	pwCookies := make([]playwright.OptionalCookie, len(state.Cookies))
	for i, c := range state.Cookies {
		pwCookies[i] = c.ToPlaywright()
	}
	return pwCookies, nil
}

// HasAuthSession reports whether the auth state file exists and carries an
// auth token cookie. Collector calls refuse to run without it.
func HasAuthSession(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	var state authState
	if err := json.Unmarshal(data, &state); err != nil || len(state.Cookies) == 0 {
		if err := json.Unmarshal(data, &state.Cookies); err != nil {
			return false
		}
	}

	for _, c := range state.Cookies {
		if c.Name == "auth_token" && c.Value != "" {
			return true
		}
	}
	return false
}

func (c Cookie) ToPlaywright() playwright.OptionalCookie {
	pwCookie := playwright.OptionalCookie{
		Name:   c.Name,
		Value:  c.Value,
		Domain: playwright.String(c.Domain),
		Path:   playwright.String(c.Path),
	}

	if c.Expires > 0 {
		pwCookie.Expires = playwright.Float(c.Expires)
	}

	if c.HTTPOnly {
		pwCookie.HttpOnly = playwright.Bool(true)
	}

	if c.Secure {
		pwCookie.Secure = playwright.Bool(true)
	}

	switch c.SameSite {
	case "Lax":
		pwCookie.SameSite = playwright.SameSiteAttributeLax
	case "Strict":
		pwCookie.SameSite = playwright.SameSiteAttributeStrict
	case "None":
		pwCookie.SameSite = playwright.SameSiteAttributeNone
	}

	return pwCookie
}
